package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jjimmyk/planningp/internal/db"
	"github.com/jjimmyk/planningp/internal/domain"
)

// SQLitePeriodRepo implements PeriodRepo.
type SQLitePeriodRepo struct {
	db db.DBTX
}

func NewSQLitePeriodRepo(conn db.DBTX) *SQLitePeriodRepo {
	return &SQLitePeriodRepo{db: conn}
}

const periodColumns = `id, name, incident_name, starts_at, ends_at, active_phase, created_at, updated_at`

func (r *SQLitePeriodRepo) Create(ctx context.Context, p *domain.OperationalPeriod) error {
	query := `INSERT INTO operational_periods (` + periodColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.IncidentName,
		nullableTimeToString(p.StartsAt, timeLayout),
		nullableTimeToString(p.EndsAt, timeLayout),
		string(p.ActivePhase),
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting operational period: %w", err)
	}
	return nil
}

func (r *SQLitePeriodRepo) GetByID(ctx context.Context, id string) (*domain.OperationalPeriod, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+periodColumns+` FROM operational_periods WHERE id = ?`, id)
	p, err := scanPeriod(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("operational period", id)
	}
	return p, err
}

// List returns periods ordered by start, then creation. Periods without a
// start sort last.
func (r *SQLitePeriodRepo) List(ctx context.Context) ([]*domain.OperationalPeriod, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+periodColumns+` FROM operational_periods
		ORDER BY starts_at IS NULL, starts_at, created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing operational periods: %w", err)
	}
	defer rows.Close()

	var periods []*domain.OperationalPeriod
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating operational periods: %w", err)
	}
	return periods, nil
}

func (r *SQLitePeriodRepo) Update(ctx context.Context, p *domain.OperationalPeriod) error {
	query := `UPDATE operational_periods
		SET name = ?, incident_name = ?, starts_at = ?, ends_at = ?, active_phase = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.IncidentName,
		nullableTimeToString(p.StartsAt, timeLayout),
		nullableTimeToString(p.EndsAt, timeLayout),
		string(p.ActivePhase),
		formatTime(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating operational period: %w", err)
	}
	return requireOneRow(res, "operational period", p.ID)
}

func (r *SQLitePeriodRepo) SetActivePhase(ctx context.Context, id string, phase domain.PhaseID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE operational_periods SET active_phase = ?, updated_at = ? WHERE id = ?`,
		string(phase), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("setting active phase: %w", err)
	}
	return requireOneRow(res, "operational period", id)
}

// Delete removes the period; its bag and history go with it.
func (r *SQLitePeriodRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM operational_periods WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting operational period: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPeriod(s scanner) (*domain.OperationalPeriod, error) {
	var (
		p                    domain.OperationalPeriod
		phase                string
		startsAt, endsAt     sql.NullString
		createdAt, updatedAt string
	)
	err := s.Scan(&p.ID, &p.Name, &p.IncidentName, &startsAt, &endsAt, &phase, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning operational period: %w", err)
	}
	p.ActivePhase = domain.PhaseID(phase)
	p.StartsAt = parseNullableTime(startsAt, timeLayout)
	p.EndsAt = parseNullableTime(endsAt, timeLayout)
	if p.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &p, nil
}

func requireOneRow(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s update: %w", entity, err)
	}
	if n == 0 {
		return domain.NewNotFoundError(entity, id)
	}
	return nil
}
