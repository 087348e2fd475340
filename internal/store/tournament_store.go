package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/AdamBeresnev/fc-knockout/internal/bracket"
	"github.com/jmoiron/sqlx"
)

type TournamentStore struct {
	db *sqlx.DB
}

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db}
}

type tournamentRow struct {
	ID           string    `db:"id"`
	Phase        string    `db:"phase"`
	CurrentRound int       `db:"current_round"`
	Snapshot     string    `db:"snapshot"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

const (
	insertTournamentQuery = `INSERT INTO tournaments (id, phase, current_round, snapshot, created_at, updated_at)
		VALUES (:id, :phase, :current_round, :snapshot, :created_at, :updated_at)`
	upsertTournamentQuery = insertTournamentQuery + `
		ON CONFLICT(id) DO UPDATE SET
		phase = excluded.phase,
		current_round = excluded.current_round,
		snapshot = excluded.snapshot,
		updated_at = excluded.updated_at`
	updateTournamentQuery = `UPDATE tournaments SET
		phase = :phase,
		current_round = :current_round,
		snapshot = :snapshot,
		updated_at = :updated_at
		WHERE id = :id`
	getTournamentQuery   = "SELECT * FROM tournaments WHERE id = ?"
	listTournamentsQuery = "SELECT * FROM tournaments ORDER BY updated_at DESC"
)

func toRow(t *bracket.Tournament) (*tournamentRow, error) {
	snapshot, err := EncodeSnapshot(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return &tournamentRow{
		ID:           t.ID.String(),
		Phase:        string(t.Phase),
		CurrentRound: t.CurrentRound,
		Snapshot:     string(snapshot),
		CreatedAt:    t.CreatedAt.UTC(),
		UpdatedAt:    time.Now().UTC(),
	}, nil
}

func (r *tournamentRow) tournament() (*bracket.Tournament, error) {
	t, err := DecodeSnapshot([]byte(r.Snapshot))
	if err != nil {
		return nil, fmt.Errorf("stored tournament %s: %w", r.ID, err)
	}
	return t, nil
}

func (s *TournamentStore) CreateTournament(ctx context.Context, tx *sqlx.Tx, t *bracket.Tournament) error {
	row, err := toRow(t)
	if err != nil {
		return err
	}
	_, err = tx.NamedExecContext(ctx, insertTournamentQuery, row)
	return err
}

// SaveTournament overwrites the snapshot of an existing tournament, sql.ErrNoRows if there is none
func (s *TournamentStore) SaveTournament(ctx context.Context, tx *sqlx.Tx, t *bracket.Tournament) error {
	row, err := toRow(t)
	if err != nil {
		return err
	}
	res, err := tx.NamedExecContext(ctx, updateTournamentQuery, row)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpsertTournament stores an imported snapshot, replacing the one with the same id
func (s *TournamentStore) UpsertTournament(ctx context.Context, tx *sqlx.Tx, t *bracket.Tournament) error {
	row, err := toRow(t)
	if err != nil {
		return err
	}
	_, err = tx.NamedExecContext(ctx, upsertTournamentQuery, row)
	return err
}

func (s *TournamentStore) GetTournament(ctx context.Context, id string) (*bracket.Tournament, error) {
	var row tournamentRow
	if err := s.db.GetContext(ctx, &row, getTournamentQuery, id); err != nil {
		return nil, err
	}
	return row.tournament()
}

func (s *TournamentStore) GetTournamentTx(ctx context.Context, tx *sqlx.Tx, id string) (*bracket.Tournament, error) {
	var row tournamentRow
	if err := tx.GetContext(ctx, &row, getTournamentQuery, id); err != nil {
		return nil, err
	}
	return row.tournament()
}

// ListTournaments returns every readable snapshot, newest first. Rows that fail to decode are logged and left out.
func (s *TournamentStore) ListTournaments(ctx context.Context) ([]bracket.Tournament, error) {
	var rows []tournamentRow
	if err := s.db.SelectContext(ctx, &rows, listTournamentsQuery); err != nil {
		return nil, err
	}

	tournaments := make([]bracket.Tournament, 0, len(rows))
	for i := range rows {
		t, err := rows[i].tournament()
		if err != nil {
			slog.Warn("skipping unreadable tournament", "tournament_id", rows[i].ID, "error", err)
			continue
		}
		tournaments = append(tournaments, *t)
	}
	return tournaments, nil
}

func (s *TournamentStore) DeleteTournament(ctx context.Context, tx *sqlx.Tx, id string) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM tournaments WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
