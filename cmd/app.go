package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingoz/internal/config"
	"github.com/abhisek/lingoz/internal/content"
	"github.com/abhisek/lingoz/internal/persist"
	"github.com/abhisek/lingoz/internal/progress"
	"github.com/abhisek/lingoz/internal/scoring"
	"github.com/abhisek/lingoz/internal/session"
	"github.com/abhisek/lingoz/internal/spacedrep"
	"github.com/abhisek/lingoz/internal/store"
	"github.com/abhisek/lingoz/internal/streak"
)

// app holds the wired components for one command invocation.
type app struct {
	cfg    config.Config
	logger *log.Logger
	st     *store.Store
	db     *persist.Store

	reviews *spacedrep.Store
	scores  *scoring.Engine
	streak  *streak.Tracker
}

func newLogger(cfg config.Config) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Prefix: "lingoz", Level: cfg.Level()})
}

// openApp loads config, opens the store and builds every component.
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg)

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", "path", dbPath)

	ctx := cmd.Context()
	db := persist.New(st.RecordRepo(), logger)
	return &app{
		cfg:     cfg,
		logger:  logger,
		st:      st,
		db:      db,
		reviews: spacedrep.Open(ctx, db),
		scores:  scoring.NewEngine(db),
		streak:  streak.NewTracker(db),
	}, nil
}

func (a *app) Close() error {
	return a.st.Close()
}

func (a *app) loadCourse(cmd *cobra.Command) (*content.Course, error) {
	path := resolveCoursePath(cmd, a.cfg)
	c, err := content.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	a.logger.Debug("course loaded", "id", c.ID, "version", c.Version, "units", len(c.Units))
	return c, nil
}

func (a *app) builder() *session.Builder {
	return session.NewBuilder(session.NewRand(a.cfg.Seed))
}

func (a *app) runner(opts session.Options) *session.Runner {
	seed := a.cfg.Seed
	if seed != 0 {
		// Distinct stream from the builder's.
		seed++
	}
	return session.NewRunner(opts, session.Deps{
		Reviews: a.reviews,
		Streak:  a.streak,
		Scorer:  a.scores,
		Audio:   audioPlayer{logger: a.logger},
		Rand:    session.NewRand(seed),
		Logger:  a.logger,
	})
}

func (a *app) progress() *progress.Aggregator {
	return progress.NewAggregator(a.scores, a.streak, a.reviews)
}

// reset clears every persisted record, in memory and on disk.
func (a *app) reset(ctx context.Context) error {
	if err := a.reviews.Reset(ctx); err != nil {
		return err
	}
	return a.db.Reset(ctx)
}

// audioPlayer stands in for a sound backend; it only logs the clip.
type audioPlayer struct {
	logger *log.Logger
}

func (p audioPlayer) PlayAudio(id string) {
	p.logger.Debug("play audio", "clip", id)
}
