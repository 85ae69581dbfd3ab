package stream

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}

func TestCombineLatest3(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := make(chan int)
	b := make(chan string)
	c := make(chan bool)
	out := CombineLatest3(ctx, a, b, c, func(x int, y string, z bool) string {
		return fmt.Sprintf("%d-%s-%t", x, y, z)
	})

	a <- 1
	b <- "x"
	// Nothing is emitted until c has a value; the next send would block
	// forever if the join tried to emit early.
	c <- true
	assert.Equal(t, "1-x-true", receive(t, out))

	a <- 2
	assert.Equal(t, "2-x-true", receive(t, out))

	b <- "y"
	assert.Equal(t, "2-y-true", receive(t, out))

	c <- false
	assert.Equal(t, "2-y-false", receive(t, out))
}

func TestCombineLatest3_ClosesWhenInputsClose(t *testing.T) {
	a := make(chan int)
	b := make(chan int)
	c := make(chan int)
	out := CombineLatest3(context.Background(), a, b, c, func(x, y, z int) int { return x + y + z })

	close(a)
	close(b)
	close(c)

	select {
	case _, ok := <-out:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("output not closed")
	}
}

func TestCombineLatest3_KeepsEmittingAfterOneInputCloses(t *testing.T) {
	a := make(chan int, 1)
	b := make(chan int, 1)
	c := make(chan int)
	out := CombineLatest3(context.Background(), a, b, c, func(x, y, z int) int { return x + y + z })

	a <- 1
	b <- 2
	close(a)
	c <- 3
	assert.Equal(t, 6, receive(t, out))

	c <- 10
	assert.Equal(t, 13, receive(t, out))
	close(b)
	close(c)
}

func TestCombineLatest3_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	a := make(chan int)
	b := make(chan int)
	c := make(chan int)
	out := CombineLatest3(ctx, a, b, c, func(x, y, z int) int { return x + y + z })

	cancel()

	select {
	case _, ok := <-out:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("output not closed after cancel")
	}
}
