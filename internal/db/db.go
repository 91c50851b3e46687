// Package db holds the employee record store and its drivers.
//
// The driver is chosen from the connection URL scheme: postgres:// and
// postgresql:// use a pgx pool, sqlite:// uses sqlx over go-sqlite3 and
// memory:// keeps records in process.
package db

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"employee-management/internal/models"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("employee not found")

	// ErrDuplicateEmail is returned when a write would reuse another record's email.
	ErrDuplicateEmail = errors.New("email already exists")
)

// EmployeeStore is the record store used by the handlers. Every method is a
// single statement or transaction against the backing database.
type EmployeeStore interface {
	// Find returns all records ordered by creation time.
	Find(ctx context.Context) ([]models.Employee, error)
	FindByID(ctx context.Context, id string) (*models.Employee, error)
	// Insert assigns identity and timestamps to e and stores it.
	Insert(ctx context.Context, e *models.Employee) error
	// Update applies the present fields of patch and returns the stored record.
	Update(ctx context.Context, id string, patch models.EmployeePatch) (*models.Employee, error)
	Delete(ctx context.Context, id string) error
	// Migrate creates the employees collection if it does not exist.
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close()
}

// Open connects to the store named by databaseURL.
func Open(ctx context.Context, databaseURL string) (EmployeeStore, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}

	switch u.Scheme {
	case "postgres", "postgresql":
		return NewPostgresStore(ctx, databaseURL)
	case "sqlite":
		// sqlite://file.db is relative (host+path), sqlite:///abs/path is absolute
		path := u.Path
		if u.Host != "" {
			path = u.Host + u.Path
		}
		return NewSQLiteStore(path)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported database scheme: %q (expected postgres, sqlite or memory)", u.Scheme)
	}
}

// prepareInsert fills the fields the store owns.
func prepareInsert(e *models.Employee, now time.Time) {
	e.ID = NewID()
	if e.JoiningDate.IsZero() {
		e.JoiningDate = now
	}
	e.CreatedAt = now
	e.UpdatedAt = now
}

// NewID generates a UUIDv7 record id, time ordered so inserts stay clustered.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// validID reports whether id could name a record. Lookups with malformed ids
// are answered with ErrNotFound without touching the database.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
