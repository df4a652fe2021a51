// Package history records solver runs so they can be listed and inspected
// later.
//
// A [Store] keeps one [Record] per run. [SQLiteStore] is the default for the
// CLI and a single API instance; [MongoStore] lets several API instances
// share one history. [NullStore] disables recording.
package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrNotFound is returned by Get for unknown run IDs.
var ErrNotFound = errors.New("run not found")

// DefaultListLimit is used by List when limit is not positive.
const DefaultListLimit = 20

// Record summarises one solver run.
type Record struct {
	ID         string    `json:"id" bson:"_id"`
	Domain     string    `json:"domain" bson:"domain"`
	Strategy   string    `json:"strategy" bson:"strategy"`
	Start      string    `json:"start" bson:"start"`
	Goal       string    `json:"goal" bson:"goal"`
	Found      bool      `json:"found" bson:"found"`
	Status     string    `json:"status" bson:"status"`
	PathLength int       `json:"path_length" bson:"path_length"`
	Cost       int       `json:"cost" bson:"cost"`
	Expanded   int       `json:"expanded" bson:"expanded"`
	Generated  int       `json:"generated" bson:"generated"`
	DurationMS int64     `json:"duration_ms" bson:"duration_ms"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// Store persists run records.
type Store interface {
	Save(ctx context.Context, r Record) error
	Get(ctx context.Context, id string) (Record, error)
	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]Record, error)
	Close() error
}

// DefaultPath returns $XDG_DATA_HOME/statesearch/history.db, falling back to
// ~/.local/share.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "statesearch", "history.db"), nil
}

// NullStore discards records.
type NullStore struct{}

func (NullStore) Save(context.Context, Record) error { return nil }

func (NullStore) Get(context.Context, string) (Record, error) { return Record{}, ErrNotFound }

func (NullStore) List(context.Context, int) ([]Record, error) { return nil, nil }

func (NullStore) Close() error { return nil }

var _ Store = NullStore{}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
