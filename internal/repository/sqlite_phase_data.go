package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jjimmyk/planningp/internal/db"
	"github.com/jjimmyk/planningp/internal/domain"
)

// SQLitePhaseDataRepo implements PhaseDataRepo. The bag is stored as a
// single JSON document; every save bumps the revision and appends the same
// document to phase_data_history.
type SQLitePhaseDataRepo struct {
	db db.DBTX
}

func NewSQLitePhaseDataRepo(conn db.DBTX) *SQLitePhaseDataRepo {
	return &SQLitePhaseDataRepo{db: conn}
}

// Init creates the empty bag row for a new period at revision 0.
func (r *SQLitePhaseDataRepo) Init(ctx context.Context, periodID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO phase_data (period_id, payload, revision, updated_at) VALUES (?, '{}', 0, ?)`,
		periodID, nowUTC())
	if err != nil {
		return fmt.Errorf("initialising phase data: %w", err)
	}
	return nil
}

// Load returns the current bag and its revision.
func (r *SQLitePhaseDataRepo) Load(ctx context.Context, periodID string) (domain.PhaseDataBag, int, error) {
	var (
		payload  string
		revision int
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT payload, revision FROM phase_data WHERE period_id = ?`, periodID).Scan(&payload, &revision)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PhaseDataBag{}, 0, domain.NewNotFoundError("phase data", periodID)
		}
		return domain.PhaseDataBag{}, 0, fmt.Errorf("loading phase data: %w", err)
	}
	bag, err := decodeBag(payload)
	if err != nil {
		return domain.PhaseDataBag{}, 0, err
	}
	return bag, revision, nil
}

// Save writes bag as the next revision and returns that revision. The
// period must already have a bag row.
func (r *SQLitePhaseDataRepo) Save(ctx context.Context, periodID string, bag domain.PhaseDataBag) (int, error) {
	payload, err := json.Marshal(bag)
	if err != nil {
		return 0, fmt.Errorf("encoding phase data: %w", err)
	}
	now := nowUTC()

	res, err := r.db.ExecContext(ctx,
		`UPDATE phase_data SET payload = ?, revision = revision + 1, updated_at = ? WHERE period_id = ?`,
		string(payload), now, periodID)
	if err != nil {
		return 0, fmt.Errorf("updating phase data: %w", err)
	}
	if err := requireOneRow(res, "phase data", periodID); err != nil {
		return 0, err
	}

	var revision int
	err = r.db.QueryRowContext(ctx, `SELECT revision FROM phase_data WHERE period_id = ?`, periodID).Scan(&revision)
	if err != nil {
		return 0, fmt.Errorf("reading phase data revision: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO phase_data_history (period_id, revision, payload, saved_at) VALUES (?, ?, ?, ?)`,
		periodID, revision, string(payload), now)
	if err != nil {
		return 0, fmt.Errorf("inserting phase data history: %w", err)
	}
	return revision, nil
}

// History lists saved revisions, newest first.
func (r *SQLitePhaseDataRepo) History(ctx context.Context, periodID string) ([]domain.BagRevision, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT revision, payload, saved_at FROM phase_data_history WHERE period_id = ? ORDER BY revision DESC`,
		periodID)
	if err != nil {
		return nil, fmt.Errorf("listing phase data history: %w", err)
	}
	defer rows.Close()

	var out []domain.BagRevision
	for rows.Next() {
		rev, err := scanRevision(rows, periodID)
		if err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phase data history: %w", err)
	}
	return out, nil
}

func (r *SQLitePhaseDataRepo) LoadRevision(ctx context.Context, periodID string, revision int) (domain.BagRevision, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT revision, payload, saved_at FROM phase_data_history WHERE period_id = ? AND revision = ?`,
		periodID, revision)
	rev, err := scanRevision(row, periodID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.BagRevision{}, domain.NewNotFoundError("revision", fmt.Sprintf("%s@%d", periodID, revision))
	}
	return rev, err
}

func scanRevision(s scanner, periodID string) (domain.BagRevision, error) {
	var (
		rev     = domain.BagRevision{PeriodID: periodID}
		payload string
		savedAt string
	)
	if err := s.Scan(&rev.Revision, &payload, &savedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rev, err
		}
		return rev, fmt.Errorf("scanning phase data revision: %w", err)
	}
	var err error
	if rev.SavedAt, err = parseTime(savedAt, "saved_at"); err != nil {
		return rev, err
	}
	if rev.Bag, err = decodeBag(payload); err != nil {
		return rev, err
	}
	return rev, nil
}

func decodeBag(payload string) (domain.PhaseDataBag, error) {
	var bag domain.PhaseDataBag
	if err := json.Unmarshal([]byte(payload), &bag); err != nil {
		return domain.PhaseDataBag{}, fmt.Errorf("decoding phase data: %w", err)
	}
	return bag, nil
}

// BagPersister is the persistence collaborator for one period. Each Save
// runs in its own transaction so a failed history insert leaves the
// previous revision in place.
type BagPersister struct {
	uow      db.UnitOfWork
	periodID string
	onSave   func(revision int, at time.Time)
}

func NewBagPersister(uow db.UnitOfWork, periodID string) *BagPersister {
	return &BagPersister{uow: uow, periodID: periodID}
}

// OnSave registers a callback invoked after each committed save.
func (p *BagPersister) OnSave(fn func(revision int, at time.Time)) {
	p.onSave = fn
}

func (p *BagPersister) Save(ctx context.Context, bag domain.PhaseDataBag) error {
	var revision int
	err := p.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		revision, err = NewSQLitePhaseDataRepo(tx).Save(ctx, p.periodID, bag)
		return err
	})
	if err != nil {
		return fmt.Errorf("saving period %s: %w", p.periodID, err)
	}
	if p.onSave != nil {
		p.onSave(revision, time.Now().UTC())
	}
	return nil
}
