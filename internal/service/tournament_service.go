package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/AdamBeresnev/fc-knockout/internal/bracket"
	"github.com/AdamBeresnev/fc-knockout/internal/storage"
	"github.com/AdamBeresnev/fc-knockout/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// TournamentService loads a snapshot, runs one engine step on it and stores the result,
// all inside a single transaction.
type TournamentService struct {
	db       *sqlx.DB
	store    *store.TournamentStore
	engine   *Engine
	uploader storage.Uploader
}

func NewTournamentService(db *sqlx.DB, store *store.TournamentStore, engine *Engine, uploader storage.Uploader) *TournamentService {
	if engine == nil {
		engine = NewEngine(nil)
	}
	return &TournamentService{db: db, store: store, engine: engine, uploader: uploader}
}

func (s *TournamentService) CreateTournament(ctx context.Context, playerNames []string) (*bracket.Tournament, error) {
	t, err := s.engine.SetPlayers(s.engine.NewTournament(), playerNames)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.store.CreateTournament(ctx, tx, t); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	slog.Info("tournament created", "tournament_id", t.ID, "players", t.PlayerCount)
	return t, nil
}

func (s *TournamentService) GetTournament(ctx context.Context, id uuid.UUID) (*bracket.Tournament, error) {
	return s.store.GetTournament(ctx, id.String())
}

func (s *TournamentService) ListTournaments(ctx context.Context) ([]bracket.Tournament, error) {
	return s.store.ListTournaments(ctx)
}

// update runs step against the stored snapshot. A failing step leaves the stored one untouched.
func (s *TournamentService) update(ctx context.Context, id uuid.UUID, step func(*bracket.Tournament) (*bracket.Tournament, error)) (*bracket.Tournament, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	current, err := s.store.GetTournamentTx(ctx, tx, id.String())
	if err != nil {
		return nil, err
	}

	next, err := step(current)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveTournament(ctx, tx, next); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if next.Phase != current.Phase {
		slog.Info("tournament phase changed", "tournament_id", id, "from", current.Phase, "to", next.Phase)
	}
	if next.CurrentRound != current.CurrentRound {
		slog.Info("round advanced", "tournament_id", id, "round", next.RoundName(next.CurrentRound))
	}
	return next, nil
}

// SetPlayers renames the players before any team is picked, which drops their old ids
func (s *TournamentService) SetPlayers(ctx context.Context, id uuid.UUID, names []string) (*bracket.Tournament, error) {
	return s.update(ctx, id, func(t *bracket.Tournament) (*bracket.Tournament, error) {
		return s.engine.SetPlayers(t, names)
	})
}

func (s *TournamentService) SetTeamCount(ctx context.Context, id uuid.UUID, teamCount int) (*bracket.Tournament, error) {
	return s.update(ctx, id, func(t *bracket.Tournament) (*bracket.Tournament, error) {
		return s.engine.SetTeamCount(t, teamCount)
	})
}

func (s *TournamentService) PickTeams(ctx context.Context, id uuid.UUID, pot1, pot2 []string) (*bracket.Tournament, error) {
	return s.update(ctx, id, func(t *bracket.Tournament) (*bracket.Tournament, error) {
		return s.engine.PickTeams(t, pot1, pot2)
	})
}

func (s *TournamentService) AssignTeam(ctx context.Context, id, playerID uuid.UUID, teamID string) (*bracket.Tournament, error) {
	return s.update(ctx, id, func(t *bracket.Tournament) (*bracket.Tournament, error) {
		return s.engine.AssignTeam(t, playerID, teamID)
	})
}

func (s *TournamentService) UnassignTeam(ctx context.Context, id, playerID uuid.UUID, teamID string) (*bracket.Tournament, error) {
	return s.update(ctx, id, func(t *bracket.Tournament) (*bracket.Tournament, error) {
		return s.engine.UnassignTeam(t, playerID, teamID)
	})
}

func (s *TournamentService) RandomizeAssignment(ctx context.Context, id uuid.UUID) (*bracket.Tournament, error) {
	return s.update(ctx, id, s.engine.RandomizeAssignment)
}

func (s *TournamentService) GenerateBracket(ctx context.Context, id uuid.UUID) (*bracket.Tournament, error) {
	return s.update(ctx, id, s.engine.GenerateBracket)
}

func (s *TournamentService) ChooseTeam(ctx context.Context, id, matchID uuid.UUID, teamID string) (*bracket.Tournament, error) {
	t, err := s.update(ctx, id, func(t *bracket.Tournament) (*bracket.Tournament, error) {
		return s.engine.ChooseTeam(t, matchID, teamID)
	})
	if err != nil {
		return nil, err
	}

	if m := t.Match(matchID); m != nil && m.Transfer != nil {
		slog.Info("self-play resolved",
			"tournament_id", id,
			"match_id", matchID,
			"kept", m.Transfer.ChosenTeamID,
			"transferred", m.Transfer.TransferredTeamID,
			"to_player", m.Transfer.ToPlayerID,
		)
	}
	return t, nil
}

func (s *TournamentService) StartMatch(ctx context.Context, id, matchID uuid.UUID) (*bracket.Tournament, error) {
	return s.update(ctx, id, func(t *bracket.Tournament) (*bracket.Tournament, error) {
		return s.engine.StartMatch(t, matchID)
	})
}

func (s *TournamentService) CompleteMatch(ctx context.Context, id, matchID uuid.UUID, homeScore, awayScore int) (*bracket.Tournament, error) {
	t, err := s.update(ctx, id, func(t *bracket.Tournament) (*bracket.Tournament, error) {
		return s.engine.CompleteMatch(t, matchID, homeScore, awayScore)
	})
	if err != nil {
		return nil, err
	}

	if t.Phase == bracket.PhaseCompleted && t.Winner != nil {
		slog.Info("tournament won", "tournament_id", id, "winner", t.Winner.Name)
	}
	return t, nil
}

// ImportTournament adopts a validated snapshot, replacing a stored tournament with the same id
func (s *TournamentService) ImportTournament(ctx context.Context, t *bracket.Tournament) error {
	if err := t.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.store.UpsertTournament(ctx, tx, t); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	slog.Info("tournament imported", "tournament_id", t.ID, "phase", t.Phase)
	return nil
}

// ArchiveTournament uploads the current snapshot under tournaments/{id}.json
func (s *TournamentService) ArchiveTournament(ctx context.Context, id uuid.UUID) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrArchiveUnavailable
	}

	t, err := s.store.GetTournament(ctx, id.String())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := store.ExportSnapshot(&buf, t); err != nil {
		return nil, fmt.Errorf("failed to export tournament %s: %w", id, err)
	}

	res, err := s.uploader.Upload(ctx, archiveKey(id), "application/json", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to archive tournament %s: %w", id, err)
	}

	slog.Info("tournament archived", "tournament_id", id, "location", res.Location)
	return res, nil
}

func (s *TournamentService) DeleteTournament(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.store.DeleteTournament(ctx, tx, id.String()); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	slog.Info("tournament deleted", "tournament_id", id)

	if s.uploader != nil {
		if err := s.uploader.Delete(ctx, archiveKey(id)); err != nil {
			slog.Warn("failed to remove archived snapshot", "tournament_id", id, "error", err)
		}
	}
	return nil
}

func archiveKey(id uuid.UUID) string {
	return "tournaments/" + id.String() + ".json"
}
