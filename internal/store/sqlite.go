package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/finsight/scenario-engine/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS scenarios (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	template      TEXT NOT NULL,
	parameters    TEXT NOT NULL DEFAULT '{}',
	active        INTEGER NOT NULL DEFAULT 0,
	created_at    TIMESTAMP NOT NULL,
	last_modified TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS accounts (
	id      TEXT PRIMARY KEY,
	name    TEXT NOT NULL,
	type    TEXT NOT NULL,
	balance TEXT NOT NULL
);
`

// SQLiteStore is a file-backed Store. Scenario parameters are stored as a
// JSON blob since they are loosely typed by design.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (and initializes) a store at path. Use ":memory:" for an
// ephemeral store.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// SaveScenario inserts or updates a scenario. A blank ID is assigned a
// fresh ULID; LastModified is always bumped so effect-cache keys roll.
func (st *SQLiteStore) SaveScenario(ctx context.Context, s *domain.Scenario) error {
	now := time.Now().UTC()
	if s.ID == "" {
		s.ID = ulid.Make().String()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.Touch(now)

	params, err := json.Marshal(s.Parameters)
	if err != nil {
		return fmt.Errorf("encode parameters: %w", err)
	}

	_, err = st.db.ExecContext(ctx, `
		INSERT INTO scenarios (id, name, template, parameters, active, created_at, last_modified)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			template = excluded.template,
			parameters = excluded.parameters,
			active = excluded.active,
			last_modified = excluded.last_modified`,
		s.ID, s.Name, string(s.TemplateType), string(params), s.IsActive, s.CreatedAt, s.LastModified,
	)
	return err
}

// GetScenario returns the scenario with the given id, or (nil, nil).
func (st *SQLiteStore) GetScenario(ctx context.Context, id string) (*domain.Scenario, error) {
	row := st.db.QueryRowContext(ctx, `
		SELECT id, name, template, parameters, active, created_at, last_modified
		FROM scenarios WHERE id = ?`, id)

	s, err := scanScenario(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListScenarios returns scenarios matching the filter, oldest first (ULIDs
// sort by creation time).
func (st *SQLiteStore) ListScenarios(ctx context.Context, filter ScenarioFilter) ([]domain.Scenario, error) {
	query := `SELECT id, name, template, parameters, active, created_at, last_modified FROM scenarios`
	var args []any
	var where []string
	if filter.ActiveOnly {
		where = append(where, "active = 1")
	}
	if filter.Template != "" {
		where = append(where, "template = ?")
		args = append(args, string(filter.Template))
	}
	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY id"

	rows, err := st.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scenarios []domain.Scenario
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, *s)
	}
	return scenarios, rows.Err()
}

// SetScenarioActive toggles activation, bumping last_modified.
func (st *SQLiteStore) SetScenarioActive(ctx context.Context, id string, active bool) error {
	res, err := st.db.ExecContext(ctx,
		`UPDATE scenarios SET active = ?, last_modified = ? WHERE id = ?`,
		active, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("scenario %q not found", id)
	}
	return nil
}

// DeleteScenario removes a scenario; deleting an unknown id is a no-op.
func (st *SQLiteStore) DeleteScenario(ctx context.Context, id string) error {
	_, err := st.db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?`, id)
	return err
}

// SaveAccount inserts or updates an account snapshot row.
func (st *SQLiteStore) SaveAccount(ctx context.Context, a domain.Account) error {
	if a.ID == "" {
		a.ID = ulid.Make().String()
	}
	_, err := st.db.ExecContext(ctx, `
		INSERT INTO accounts (id, name, type, balance)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			balance = excluded.balance`,
		a.ID, a.Name, string(a.Type), a.Balance.String(),
	)
	return err
}

// ListAccounts returns the stored account snapshot.
func (st *SQLiteStore) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := st.db.QueryContext(ctx, `SELECT id, name, type, balance FROM accounts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		var typ, balance string
		if err := rows.Scan(&a.ID, &a.Name, &typ, &balance); err != nil {
			return nil, err
		}
		a.Type = domain.AccountType(typ)
		a.Balance, err = decimal.NewFromString(balance)
		if err != nil {
			return nil, fmt.Errorf("account %q: bad balance %q: %w", a.ID, balance, err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// Close releases the underlying database handle.
func (st *SQLiteStore) Close() error {
	return st.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScenario(row rowScanner) (*domain.Scenario, error) {
	var s domain.Scenario
	var template, params string
	if err := row.Scan(&s.ID, &s.Name, &template, &params, &s.IsActive, &s.CreatedAt, &s.LastModified); err != nil {
		return nil, err
	}
	s.TemplateType = domain.TemplateType(template)
	if err := json.Unmarshal([]byte(params), &s.Parameters); err != nil {
		return nil, fmt.Errorf("scenario %q: bad parameters: %w", s.ID, err)
	}
	return &s, nil
}
