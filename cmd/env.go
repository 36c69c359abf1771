package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/courseway/internal/catalog"
	"github.com/abhisek/courseway/internal/config"
	"github.com/abhisek/courseway/internal/logging"
	"github.com/abhisek/courseway/internal/progress"
	"github.com/abhisek/courseway/internal/store"
)

// session bundles everything a command needs to read or change progress.
type session struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *store.Store
	catalog  *catalog.Catalog
	progress *progress.Store

	closeLog func()
}

// openSession resolves configuration, opens the database and loads the
// learner's progress for a plain CLI command.
func openSession(cmd *cobra.Command) (*session, error) {
	return newSession(cmd, false)
}

// openTUISession is openSession for the interactive UI, which owns the
// terminal, so logs only go to the file.
func openTUISession(cmd *cobra.Command) (*session, error) {
	return newSession(cmd, true)
}

func newSession(cmd *cobra.Command, tui bool) (*session, error) {
	dir, _ := cmd.Flags().GetString("config")
	if dir == "" {
		dir = config.DefaultDir()
	}
	cfg, err := config.Load(settings, dir)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	logFile := cfg.LogFile
	if logFile == "" {
		logFile = logging.DefaultFile(dbPath)
	}
	logOpts := logging.Options{File: logFile, Level: cfg.LogLevel}
	if cfg.LogStderr && !tui {
		logOpts.Console = cmd.ErrOrStderr()
	}
	log, closeLog, err := logging.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open store: %w", err)
	}

	ps := progress.New(st.KVRepo(), cat, progress.Options{
		Key:          cfg.StorageKey,
		MultiLevel:   cfg.MultiLevel,
		DefaultLevel: cfg.Level(),
		Events:       st.EventRepo(),
		Logger:       log.Named("progress"),
	})
	ps.Load(cmd.Context())

	log.Debug("session opened",
		zap.String("db", dbPath),
		zap.String("key", ps.Key()),
		zap.Bool("multi_level", ps.MultiLevel()))

	return &session{
		cfg:      cfg,
		log:      log,
		store:    st,
		catalog:  cat,
		progress: ps,
		closeLog: closeLog,
	}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.log.Warn("close store", zap.Error(err))
	}
	s.closeLog()
}

// resolveDBPath returns the configured database path (--db flag or
// COURSEWAY_DB), else the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.ContentDir != "" {
		return catalog.Load(os.DirFS(cfg.ContentDir))
	}
	return catalog.Default()
}
