// Package backend decides which store serves the process: the remote
// Firestore collection when a real project id is configured, or the local
// sqlite fallback otherwise. The decision is made once from injected
// configuration, not re-read from the environment at call sites.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/store"
	fsstore "fintrack/internal/store/firestore"
	"fintrack/internal/store/local"
)

// Type identifies the active backend.
type Type string

const (
	RemoteBackend Type = "firestore"
	LocalBackend  Type = "local"
)

// placeholderProjectID is the sample value shipped in .env templates; it
// counts as "not configured".
const placeholderProjectID = "demo-project"

// Config holds what backend selection needs.
type Config struct {
	// Firestore
	ProjectID       string
	CredentialsFile string

	// Local fallback
	SQLiteDBPath string
}

// RemoteConfigured reports whether the Firestore credential is present and
// not a placeholder. Cheap and deterministic; callers may evaluate it per
// request without caching.
func (c Config) RemoteConfigured() bool {
	return c.ProjectID != "" && c.ProjectID != placeholderProjectID
}

// Type returns the backend the config selects.
func (c Config) Type() Type {
	if c.RemoteConfigured() {
		return RemoteBackend
	}
	return LocalBackend
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result carries the selected store and its cleanup function.
type Result struct {
	Store   store.ItemStore
	Type    Type
	Cleanup CleanupFunc
}

// Factory creates the store selected by the configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

func (f *Factory) CreateStore(ctx context.Context, cfg Config) (*Result, error) {
	switch cfg.Type() {
	case RemoteBackend:
		return f.createRemote(ctx, cfg)
	default:
		return f.createLocal(cfg)
	}
}

func (f *Factory) createRemote(ctx context.Context, cfg Config) (*Result, error) {
	s, err := fsstore.New(ctx, fsstore.Config{
		ProjectID:       cfg.ProjectID,
		CredentialsFile: cfg.CredentialsFile,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize firestore backend: %w", err)
	}

	f.logger.Info("Initialized Firestore backend", "project_id", cfg.ProjectID)

	return &Result{Store: s, Type: RemoteBackend, Cleanup: s.Close}, nil
}

func (f *Factory) createLocal(cfg Config) (*Result, error) {
	dbPath := cfg.SQLiteDBPath
	if dbPath == "" {
		dbPath = "./data/fintrack.db"
	}

	s, err := local.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initialize local backend: %w", err)
	}

	f.logger.Info("Initialized local backend", "db_path", dbPath)

	return &Result{Store: s, Type: LocalBackend, Cleanup: s.Close}, nil
}
