package db

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"employee-management/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema/postgres.sql
var postgresSchema string

const employeeColumns = `id, name, email, phone, designation, department, salary, joining_date, created_at, updated_at`

// PostgresStore keeps employees in a PostgreSQL table through a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, `SET application_name = 'ems-backend'`)
		return err
	}

	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping failed: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context) ([]models.Employee, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Employee])
	if err != nil {
		return nil, fmt.Errorf("scan employees: %w", err)
	}
	return list, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	rows, err := s.pool.Query(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return collectOne(rows)
}

func (s *PostgresStore) Insert(ctx context.Context, e *models.Employee) error {
	prepareInsert(e, time.Now().UTC())
	_, err := s.pool.Exec(ctx, `
		INSERT INTO employees (`+employeeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, e.ID, e.Name, e.Email, e.Phone, e.Designation, e.Department, e.Salary, e.JoiningDate, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert employee: %w", mapPgErr(err))
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, patch models.EmployeePatch) (*models.Employee, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	rows, err := s.pool.Query(ctx, `
		UPDATE employees SET
			name        = COALESCE($2, name),
			email       = COALESCE($3, email),
			phone       = COALESCE($4, phone),
			designation = COALESCE($5, designation),
			department  = COALESCE($6, department),
			salary      = COALESCE($7, salary),
			updated_at  = $8
		WHERE id = $1
		RETURNING `+employeeColumns,
		id, patch.Name, patch.Email, patch.Phone, patch.Designation, patch.Department, patch.Salary, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update employee: %w", mapPgErr(err))
	}
	e, err := collectOne(rows)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("update employee: %w", err)
	}
	return e, err
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	ct, err := s.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func collectOne(rows pgx.Rows) (*models.Employee, error) {
	e, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Employee])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapPgErr(err)
	}
	return e, nil
}

// mapPgErr turns constraint violations the handlers care about into sentinels.
func mapPgErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "employees_email_key" {
		return ErrDuplicateEmail
	}
	return err
}
