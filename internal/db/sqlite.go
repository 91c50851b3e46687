package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"employee-management/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/qustavo/dotsql"
)

//go:embed queries/*.sql
var queriesFS embed.FS

//go:embed schema/sqlite.sql
var sqliteSchema string

// SQLiteStore keeps employees in a SQLite file. Queries are named entries in
// the embedded queries/*.sql files.
type SQLiteStore struct {
	db  *sqlx.DB
	dot *dotsql.DotSql
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path is empty")
	}

	db, err := sqlx.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	dot, err := loadQueries()
	if err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, dot: dot}, nil
}

func loadQueries() (*dotsql.DotSql, error) {
	var combined strings.Builder
	err := fs.WalkDir(queriesFS, "queries", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".sql" {
			return nil
		}
		content, err := queriesFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		combined.Write(content)
		combined.WriteString("\n")
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load query files: %w", err)
	}

	dot, err := dotsql.LoadFromString(combined.String())
	if err != nil {
		return nil, fmt.Errorf("failed to parse queries: %w", err)
	}
	return dot, nil
}

func (s *SQLiteStore) query(name string) (string, error) {
	q, err := s.dot.Raw(name)
	if err != nil {
		return "", fmt.Errorf("query not found: %s", name)
	}
	return s.db.Rebind(q), nil
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Find(ctx context.Context) ([]models.Employee, error) {
	q, err := s.query("list-employees")
	if err != nil {
		return nil, err
	}
	list := []models.Employee{}
	if err := s.db.SelectContext(ctx, &list, q); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return list, nil
}

func (s *SQLiteStore) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	return s.get(ctx, s.db, id)
}

type getter interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func (s *SQLiteStore) get(ctx context.Context, g getter, id string) (*models.Employee, error) {
	q, err := s.query("get-employee")
	if err != nil {
		return nil, err
	}
	var e models.Employee
	if err := g.GetContext(ctx, &e, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, e *models.Employee) error {
	q, err := s.query("insert-employee")
	if err != nil {
		return err
	}
	prepareInsert(e, time.Now().UTC())
	_, err = s.db.ExecContext(ctx, q,
		e.ID, e.Name, e.Email, e.Phone, e.Designation, e.Department, e.Salary, e.JoiningDate, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert employee: %w", mapSQLiteErr(err))
	}
	return nil
}

// Update runs the patch and the read-back in one transaction.
func (s *SQLiteStore) Update(ctx context.Context, id string, patch models.EmployeePatch) (*models.Employee, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	q, err := s.query("update-employee")
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, q,
		patch.Name, patch.Email, patch.Phone, patch.Designation, patch.Department, patch.Salary, time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("update employee: %w", mapSQLiteErr(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	e, err := s.get(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return e, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	q, err := s.query("delete-employee")
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	q, err := s.query("ping")
	if err != nil {
		return err
	}
	var one int
	return s.db.GetContext(ctx, &one, q)
}

func (s *SQLiteStore) Close() {
	s.db.Close()
}

func mapSQLiteErr(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique &&
		strings.Contains(sqliteErr.Error(), "employees.email") {
		return ErrDuplicateEmail
	}
	return err
}
