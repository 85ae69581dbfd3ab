package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema holds the statements that create every table the postgres backend
// uses. Each statement is idempotent.
//
// lat_key/lon_key hold the coordinates rounded to eight decimals so place
// identity is an exact equality lookup.
var Schema = []string{
	`CREATE EXTENSION IF NOT EXISTS postgis`,
	`CREATE TABLE IF NOT EXISTS toilets (
		id TEXT PRIMARY KEY,
		sender TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL DEFAULT '',
		detail TEXT NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		lat_key DOUBLE PRECISION NOT NULL,
		lon_key DOUBLE PRECISION NOT NULL,
		geom GEOGRAPHY(POINT, 4326) GENERATED ALWAYS AS (
			ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography
		) STORED,
		search_tsvector TSVECTOR GENERATED ALWAYS AS (
			to_tsvector('simple', name || ' ' || detail)
		) STORED,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS toilets_key_idx ON toilets (lat_key, lon_key)`,
	`CREATE INDEX IF NOT EXISTS toilets_geom_idx ON toilets USING GIST (geom)`,
	`CREATE INDEX IF NOT EXISTS toilets_search_tsvector_idx ON toilets USING GIN (search_tsvector)`,
	`CREATE INDEX IF NOT EXISTS toilets_sender_idx ON toilets (sender, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS archived_toilets (
		id TEXT PRIMARY KEY,
		owner_uid TEXT NOT NULL,
		toilet_id TEXT NOT NULL REFERENCES toilets(id) ON DELETE CASCADE,
		name TEXT NOT NULL DEFAULT '',
		detail TEXT NOT NULL DEFAULT '',
		memo TEXT NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (owner_uid, toilet_id)
	)`,
	`CREATE INDEX IF NOT EXISTS archived_toilets_owner_idx ON archived_toilets (owner_uid, updated_at DESC)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id TEXT PRIMARY KEY,
		toilet_id TEXT NOT NULL REFERENCES toilets(id) ON DELETE CASCADE,
		sender_uid TEXT NOT NULL,
		can_use BOOLEAN NOT NULL,
		is_free BOOLEAN NOT NULL,
		has_washlet BOOLEAN NOT NULL,
		has_accessible_restroom BOOLEAN NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (toilet_id, sender_uid)
	)`,
	`CREATE INDEX IF NOT EXISTS reviews_sender_idx ON reviews (sender_uid, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS home_toilets (
		owner_uid TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		detail TEXT NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS toilet_diaries (
		id TEXT PRIMARY KEY,
		sender TEXT NOT NULL,
		diary_type TEXT NOT NULL,
		date TIMESTAMPTZ NOT NULL,
		memo TEXT NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		toilet_id TEXT NOT NULL DEFAULT '',
		at_home BOOLEAN NOT NULL DEFAULT false,
		shared_users TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS toilet_diaries_shared_idx ON toilet_diaries USING GIN (shared_users)`,
}

// EnsureSchema applies Schema through database/sql.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range Schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("repository: failed to apply schema statement %d: %w", i, err)
		}
	}
	return nil
}
