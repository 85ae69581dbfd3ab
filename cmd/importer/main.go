package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"toiletmap-api/internal/config"
	"toiletmap-api/internal/geo"
	"toiletmap-api/internal/identity"
	"toiletmap-api/internal/logging"
	"toiletmap-api/internal/models"
	"toiletmap-api/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Expected columns: name, detail, latitude, longitude. A header row is
// required and skipped.
const minColumns = 4

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	sender := flag.String("sender", "importer", "Sender recorded on imported toilets")
	snapshot := flag.Int("snapshot", 100000, "Number of stored toilets to check for duplicates")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if *file == "" {
		log.Fatal().Msg("--file flag is required")
	}
	log.Info().Str("file", *file).Msg("starting import")

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open file")
	}
	defer f.Close()

	records, err := parseCSV(f, *sender)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse CSV")
	}
	log.Info().Int("records", len(records)).Msg("parsed")

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer pool.Close()

	repo := repository.NewRepository(pool)
	known, err := repo.FetchAllToilets(ctx, *snapshot)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load existing toilets")
	}

	fresh := dedupe(records, known, identity.NewResolver(repo))
	log.Info().Int("new", len(fresh)).Int("skipped", len(records)-len(fresh)).Msg("deduplicated")

	n, err := insertRecords(ctx, pool, fresh)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot insert records")
	}
	log.Info().Int64("inserted", n).Msg("import finished")
}

func parseCSV(r io.Reader, sender string) ([]models.ToiletRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []models.ToiletRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		if len(row) < minColumns {
			return nil, fmt.Errorf("line %d: expected at least %d columns, got %d", line, minColumns, len(row))
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid latitude: %s", line, row[2])
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid longitude: %s", line, row[3])
		}

		rec := models.ToiletRecord{
			Sender:    sender,
			Name:      strings.TrimSpace(row[0]),
			Detail:    strings.TrimSpace(row[1]),
			Latitude:  lat,
			Longitude: lon,
		}
		if !rec.Location().Valid() {
			return nil, fmt.Errorf("line %d: coordinates out of range: %s,%s", line, row[2], row[3])
		}
		records = append(records, rec)
	}
	return records, nil
}

// dedupe drops rows whose place already exists in known or earlier in
// records, and assigns ids to the rest.
func dedupe(records []models.ToiletRecord, known []models.ToiletRecord, resolver *identity.Resolver) []models.ToiletRecord {
	seen := append([]models.ToiletRecord(nil), known...)
	var fresh []models.ToiletRecord
	for _, rec := range records {
		id, isNew := resolver.Resolve(rec.Location(), seen)
		if !isNew {
			continue
		}
		rec.ID = id
		seen = append(seen, rec)
		fresh = append(fresh, rec)
	}
	return fresh
}

func insertRecords(ctx context.Context, pool *pgxpool.Pool, records []models.ToiletRecord) (int64, error) {
	now := time.Now().UTC()
	return pool.CopyFrom(
		ctx,
		pgx.Identifier{"toilets"},
		[]string{"id", "sender", "name", "detail", "latitude", "longitude", "lat_key", "lon_key", "created_at", "updated_at"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			key := geo.KeyOf(r.Location())
			return []any{r.ID, r.Sender, r.Name, r.Detail, r.Latitude, r.Longitude, key.Lat, key.Lon, now, now}, nil
		}),
	)
}
