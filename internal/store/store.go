// Package store persists tracked visits and user accounts. The enrichment
// pipeline has no dependency on it; the HTTP layer writes a visit after a
// successful verdict and reads it back for diagnostics.
package store

import (
	"fmt"
	"time"

	"leadscope/internal/model"
)

// Store is the persistence interface, backed by SQLite or MySQL.
type Store interface {
	SaveVisit(v *model.Visit) error
	RecentVisits(limit int) ([]model.Visit, error)
	CountVisits() int

	CreateUser(email, passwordHash, role string) (*model.User, error)
	UserByEmail(email string) (*model.User, bool)
	CountUsers() int

	Cleanup()
	Close() error
}

// New opens a store of the given type. retention bounds how long visits are
// kept; the backend prunes older rows hourly.
func New(storeType, dsn string, retention time.Duration) (Store, error) {
	switch storeType {
	case "sqlite":
		return NewSQLite(dsn, retention)
	case "mysql":
		return NewMySQL(dsn, retention)
	default:
		return nil, fmt.Errorf("store: unknown store type %q", storeType)
	}
}
