package models

import (
	"fmt"
	"time"
)

// DiaryType classifies a visit.
type DiaryType string

const (
	DiaryPee        DiaryType = "pee"
	DiaryPoop       DiaryType = "poop"
	DiaryPeeAndPoop DiaryType = "peeAndPoop"
	DiaryOther      DiaryType = "other"
)

// ParseDiaryType validates s against the known visit types.
func ParseDiaryType(s string) (DiaryType, error) {
	switch t := DiaryType(s); t {
	case DiaryPee, DiaryPoop, DiaryPeeAndPoop, DiaryOther:
		return t, nil
	}
	return "", fmt.Errorf("unknown diary type %q", s)
}

// DiaryEntry is a single logged visit.
type DiaryEntry struct {
	ID          string    `json:"id" firestore:"-"`
	Sender      string    `json:"sender" firestore:"sender"`
	Type        DiaryType `json:"toilet_diary_type" firestore:"toilet_diary_type"`
	Date        time.Time `json:"date" firestore:"date"`
	Memo        string    `json:"memo" firestore:"memo"`
	Latitude    float64   `json:"latitude" firestore:"latitude"`
	Longitude   float64   `json:"longitude" firestore:"longitude"`
	ToiletID    string    `json:"toilet_id,omitempty" firestore:"toilet_id"`
	AtHome      bool      `json:"at_home" firestore:"at_home"`
	SharedUsers []string  `json:"shared_users" firestore:"shared_users"`
	CreatedAt   time.Time `json:"created_at" firestore:"created_at"`
}

// Location returns where the visit happened.
func (d DiaryEntry) Location() Location {
	return Location{Latitude: d.Latitude, Longitude: d.Longitude}
}

// DiaryDay summarises one calendar day of entries.
type DiaryDay struct {
	Date           string       `json:"date"`
	Entries        []DiaryEntry `json:"entries"`
	MostUsedToilet string       `json:"most_used_toilet,omitempty"`
}
