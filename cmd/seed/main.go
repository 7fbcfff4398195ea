// Package main provides a tool to seed the catalog database from a YAML fixture.
//
// Database settings come from the same environment variables the server reads.
// Re-running with the same fixture is safe: existing tags and entries with a
// fixed id are kept.
//
// Usage:
//
//	go run ./cmd/seed -fixture cmd/seed/testdata/seed.yaml
//	DB_DRIVER=postgres DATABASE_URL=postgres://... go run ./cmd/seed -fixture frames.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/framearchive/framearchive/internal/config"
	"github.com/framearchive/framearchive/internal/logger"
	"github.com/framearchive/framearchive/internal/store"
	"github.com/framearchive/framearchive/internal/store/sqldb"
	"github.com/framearchive/framearchive/internal/validation"
)

var fixturePath = flag.String("fixture", "cmd/seed/testdata/seed.yaml", "Path to the YAML fixture")

func main() {
	flag.Parse()

	cfg, err := config.Load(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Environment: cfg.App.Environment,
		Level:       logger.ParseLevel(cfg.Logger.Level),
	})

	flog := log.WithField("fixture", *fixturePath)

	f, err := os.Open(*fixturePath)
	if err != nil {
		flog.Error("Failed to open fixture", "error", err)
		exit(log, 1)
	}
	fixture, err := ParseFixture(f, validation.New())
	_ = f.Close()
	if err != nil {
		flog.Error("Invalid fixture", "error", err)
		exit(log, 1)
	}

	if cfg.Database.Driver == sqldb.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.URL), 0o750); err != nil {
			log.Fatal("Failed to create database directory", "error", err)
		}
	}

	s, err := sqldb.Open(sqldb.Options{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.URL,
		Logger: log.Logger,
	})
	if err != nil {
		log.Fatal("Failed to open store", "error", err)
	}

	res, err := Seed(context.Background(), s, fixture)
	_ = s.Close()
	if err != nil {
		flog.WithError(err).Error("Seeding failed",
			"tags_created", res.TagsCreated,
			"entries_created", res.EntriesCreated,
		)
		exit(log, 1)
	}

	flog.Info("Seed complete",
		"tags_created", res.TagsCreated,
		"entries_created", res.EntriesCreated,
		"entries_skipped", res.EntriesSkipped,
	)
	_ = log.Close()
}

// exit closes log files before leaving with code.
func exit(log *logger.Logger, code int) {
	_ = log.Close()
	os.Exit(code)
}

// Result counts what a seed run changed.
type Result struct {
	TagsCreated    int
	EntriesCreated int
	EntriesSkipped int
}

// Seed writes the fixture into the catalog. Tags are matched by slug and
// entries by id; rows that already exist are left untouched.
func Seed(ctx context.Context, s *sqldb.Store, fixture *Fixture) (Result, error) {
	var res Result

	for _, ft := range fixture.Tags {
		err := s.CreateTag(ctx, tagFromFixture(ft))
		switch {
		case err == nil:
			res.TagsCreated++
		case errors.Is(err, store.ErrAlreadyExists):
		default:
			return res, fmt.Errorf("create tag %s: %w", ft.Slug, err)
		}
	}

	tags, err := s.ListTags(ctx)
	if err != nil {
		return res, err
	}
	tagIDs := make(map[string]string, len(tags))
	for _, t := range tags {
		tagIDs[t.Slug] = t.ID
	}

	for _, fe := range fixture.Entries {
		e := fe.Entry()
		err := s.CreateEntry(ctx, e)
		switch {
		case err == nil:
			res.EntriesCreated++
		case errors.Is(err, store.ErrAlreadyExists):
			res.EntriesSkipped++
			continue
		default:
			return res, fmt.Errorf("create entry %s: %w", fe.Name, err)
		}

		rows, err := entryTags(e, fe.Tags, tagIDs)
		if err != nil {
			return res, err
		}
		for _, et := range rows {
			if err := s.AddTagToEntry(ctx, et); err != nil {
				return res, fmt.Errorf("tag entry %s with %s: %w", e.ID, et.TagID, err)
			}
		}
	}

	return res, nil
}
