package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/AdamBeresnev/fc-knockout/internal/bracket"
	"github.com/AdamBeresnev/fc-knockout/internal/catalog"
	"github.com/AdamBeresnev/fc-knockout/internal/httputil"
	"github.com/AdamBeresnev/fc-knockout/internal/middleware"
	"github.com/AdamBeresnev/fc-knockout/internal/service"
	"github.com/AdamBeresnev/fc-knockout/internal/store"
	"github.com/AdamBeresnev/fc-knockout/views"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
)

type playersRequest struct {
	Players []string `json:"players"`
}

type teamCountRequest struct {
	TeamCount int `json:"teamCount"`
}

type pickTeamsRequest struct {
	Pot1 []string `json:"pot1"`
	Pot2 []string `json:"pot2"`
}

type assignRequest struct {
	PlayerID uuid.UUID `json:"playerId"`
	TeamID   string    `json:"teamId"`
}

type chooseTeamRequest struct {
	TeamID string `json:"teamId"`
}

// Scores stay raw until ParseScore has checked them
type resultRequest struct {
	HomeScore json.Number `json:"homeScore"`
	AwayScore json.Number `json:"awayScore"`
}

var (
	notFoundErrors = []error{service.ErrMatchNotFound, service.ErrPlayerNotFound}
	badInputErrors = []error{
		service.ErrNegativeScore, service.ErrNonIntegerScore, service.ErrScoreOutOfRange, service.ErrDrawNotAllowed,
		service.ErrInvalidTeamChoice, service.ErrInvalidConfig, service.ErrTeamNotSelected,
		service.ErrInvalidPots, bracket.ErrInvalidSnapshot, bracket.ErrInvalidCounts,
	}
	conflictErrors = []error{
		service.ErrSelfPlayPending, service.ErrMatchCompleted, service.ErrNotSelfPlay,
		service.ErrNoReceivingPlayer, service.ErrTournamentCompleted, service.ErrWrongPhase,
		service.ErrTeamAlreadyAssigned, service.ErrPlayerFull, service.ErrAssignmentIncomplete,
	}
)

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func serviceError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		httputil.NotFound(w, "Tournament not found", err)
	case isAny(err, notFoundErrors):
		httputil.NotFound(w, err.Error(), err)
	case isAny(err, badInputErrors):
		httputil.BadRequest(w, err.Error(), err)
	case isAny(err, conflictErrors):
		httputil.Conflict(w, err.Error(), err)
	default:
		httputil.InternalServerError(w, msg, err)
	}
}

func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		httputil.BadRequest(w, fmt.Sprintf("Invalid %s", name), err)
		return uuid.Nil, false
	}
	return id, true
}

func respond(w http.ResponseWriter, status int, data any) {
	if err := httputil.WriteJSON(w, status, data); err != nil {
		httputil.InternalServerError(w, "Failed to write response", err)
	}
}

func newRouter(sessionManager *scs.SessionManager, tournaments *service.TournamentService, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.LoadActiveTournament(sessionManager))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		list, err := tournaments.ListTournaments(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to list tournaments", err)
			return
		}
		views.Render(w, r, views.Index(list))
	})

	r.Get("/tournaments/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := uuidParam(w, r, "id")
		if !ok {
			return
		}
		t, err := tournaments.GetTournament(r.Context(), id)
		if err != nil {
			serviceError(w, "Failed to get tournament", err)
			return
		}
		middleware.SetActiveTournament(r.Context(), sessionManager, id)
		views.Render(w, r, views.BracketPage(t))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/teams", func(w http.ResponseWriter, r *http.Request) {
			league := r.URL.Query().Get("league")
			if league == "" {
				respond(w, http.StatusOK, catalog.Teams())
				return
			}
			respond(w, http.StatusOK, catalog.ByLeague(league))
		})

		r.Get("/tournaments", func(w http.ResponseWriter, r *http.Request) {
			list, err := tournaments.ListTournaments(r.Context())
			if err != nil {
				httputil.InternalServerError(w, "Failed to list tournaments", err)
				return
			}
			respond(w, http.StatusOK, list)
		})

		r.Get("/tournaments/active", func(w http.ResponseWriter, r *http.Request) {
			id, ok := middleware.GetActiveTournamentID(r.Context())
			if !ok {
				httputil.NotFound(w, "No active tournament", nil)
				return
			}
			t, err := tournaments.GetTournament(r.Context(), id)
			if err != nil {
				serviceError(w, "Failed to get tournament", err)
				return
			}
			respond(w, http.StatusOK, t)
		})

		r.Post("/tournaments", func(w http.ResponseWriter, r *http.Request) {
			var req playersRequest
			if err := httputil.ReadJSON(w, r, &req); err != nil {
				httputil.BadRequest(w, err.Error(), err)
				return
			}
			t, err := tournaments.CreateTournament(r.Context(), req.Players)
			if err != nil {
				serviceError(w, "Failed to create tournament", err)
				return
			}
			middleware.SetActiveTournament(r.Context(), sessionManager, t.ID)
			respond(w, http.StatusCreated, t)
		})

		r.Post("/tournaments/import", func(w http.ResponseWriter, r *http.Request) {
			t, err := store.ImportSnapshot(r.Body)
			if err != nil {
				serviceError(w, "Failed to read snapshot", err)
				return
			}
			if err := tournaments.ImportTournament(r.Context(), t); err != nil {
				serviceError(w, "Failed to import tournament", err)
				return
			}
			middleware.SetActiveTournament(r.Context(), sessionManager, t.ID)
			respond(w, http.StatusOK, t)
		})

		r.Route("/tournaments/{id}", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "id")
				if !ok {
					return
				}
				t, err := tournaments.GetTournament(r.Context(), id)
				if err != nil {
					serviceError(w, "Failed to get tournament", err)
					return
				}
				respond(w, http.StatusOK, t)
			})

			r.Delete("/", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "id")
				if !ok {
					return
				}
				if err := tournaments.DeleteTournament(r.Context(), id); err != nil {
					serviceError(w, "Failed to delete tournament", err)
					return
				}
				middleware.ClearActiveTournament(r.Context(), sessionManager, id)
				w.WriteHeader(http.StatusNoContent)
			})

			r.Put("/players", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "id")
				if !ok {
					return
				}
				var req playersRequest
				if err := httputil.ReadJSON(w, r, &req); err != nil {
					httputil.BadRequest(w, err.Error(), err)
					return
				}
				t, err := tournaments.SetPlayers(r.Context(), id, req.Players)
				if err != nil {
					serviceError(w, "Failed to set players", err)
					return
				}
				respond(w, http.StatusOK, t)
			})

			r.Put("/team-count", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "id")
				if !ok {
					return
				}
				var req teamCountRequest
				if err := httputil.ReadJSON(w, r, &req); err != nil {
					httputil.BadRequest(w, err.Error(), err)
					return
				}
				t, err := tournaments.SetTeamCount(r.Context(), id, req.TeamCount)
				if err != nil {
					serviceError(w, "Failed to set team count", err)
					return
				}
				respond(w, http.StatusOK, t)
			})

			r.Put("/teams", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "id")
				if !ok {
					return
				}
				var req pickTeamsRequest
				if err := httputil.ReadJSON(w, r, &req); err != nil {
					httputil.BadRequest(w, err.Error(), err)
					return
				}
				t, err := tournaments.PickTeams(r.Context(), id, req.Pot1, req.Pot2)
				if err != nil {
					serviceError(w, "Failed to pick teams", err)
					return
				}
				respond(w, http.StatusOK, t)
			})

			r.Post("/assignments", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "id")
				if !ok {
					return
				}
				var req assignRequest
				if err := httputil.ReadJSON(w, r, &req); err != nil {
					httputil.BadRequest(w, err.Error(), err)
					return
				}
				t, err := tournaments.AssignTeam(r.Context(), id, req.PlayerID, req.TeamID)
				if err != nil {
					serviceError(w, "Failed to assign team", err)
					return
				}
				respond(w, http.StatusOK, t)
			})

			r.Delete("/assignments/{playerID}/{teamID}", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "id")
				if !ok {
					return
				}
				playerID, ok := uuidParam(w, r, "playerID")
				if !ok {
					return
				}
				t, err := tournaments.UnassignTeam(r.Context(), id, playerID, chi.URLParam(r, "teamID"))
				if err != nil {
					serviceError(w, "Failed to unassign team", err)
					return
				}
				respond(w, http.StatusOK, t)
			})

			r.Post("/assignments/random", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "id")
				if !ok {
					return
				}
				t, err := tournaments.RandomizeAssignment(r.Context(), id)
				if err != nil {
					serviceError(w, "Failed to distribute teams", err)
					return
				}
				respond(w, http.StatusOK, t)
			})

			r.Post("/bracket", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "id")
				if !ok {
					return
				}
				t, err := tournaments.GenerateBracket(r.Context(), id)
				if err != nil {
					serviceError(w, "Failed to generate bracket", err)
					return
				}
				respond(w, http.StatusOK, t)
			})

			r.Post("/matches/{matchID}/choose", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "id")
				if !ok {
					return
				}
				matchID, ok := uuidParam(w, r, "matchID")
				if !ok {
					return
				}
				var req chooseTeamRequest
				if err := httputil.ReadJSON(w, r, &req); err != nil {
					httputil.BadRequest(w, err.Error(), err)
					return
				}
				t, err := tournaments.ChooseTeam(r.Context(), id, matchID, req.TeamID)
				if err != nil {
					serviceError(w, "Failed to resolve self-play", err)
					return
				}
				respond(w, http.StatusOK, t)
			})

			r.Post("/matches/{matchID}/start", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "id")
				if !ok {
					return
				}
				matchID, ok := uuidParam(w, r, "matchID")
				if !ok {
					return
				}
				t, err := tournaments.StartMatch(r.Context(), id, matchID)
				if err != nil {
					serviceError(w, "Failed to start match", err)
					return
				}
				respond(w, http.StatusOK, t)
			})

			r.Post("/matches/{matchID}/result", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "id")
				if !ok {
					return
				}
				matchID, ok := uuidParam(w, r, "matchID")
				if !ok {
					return
				}
				var req resultRequest
				if err := httputil.ReadJSON(w, r, &req); err != nil {
					httputil.BadRequest(w, err.Error(), err)
					return
				}
				homeScore, err := service.ParseScore(req.HomeScore.String())
				if err != nil {
					httputil.BadRequest(w, err.Error(), err)
					return
				}
				awayScore, err := service.ParseScore(req.AwayScore.String())
				if err != nil {
					httputil.BadRequest(w, err.Error(), err)
					return
				}
				t, err := tournaments.CompleteMatch(r.Context(), id, matchID, homeScore, awayScore)
				if err != nil {
					serviceError(w, "Failed to complete match", err)
					return
				}
				respond(w, http.StatusOK, t)
			})

			r.Get("/export", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "id")
				if !ok {
					return
				}
				t, err := tournaments.GetTournament(r.Context(), id)
				if err != nil {
					serviceError(w, "Failed to get tournament", err)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "tournament-"+id.String()+".json"))
				if err := store.ExportSnapshot(w, t); err != nil {
					httputil.InternalServerError(w, "Failed to export tournament", err)
				}
			})

			r.Post("/archive", func(w http.ResponseWriter, r *http.Request) {
				id, ok := uuidParam(w, r, "id")
				if !ok {
					return
				}
				res, err := tournaments.ArchiveTournament(r.Context(), id)
				if err != nil {
					serviceError(w, "Failed to archive tournament", err)
					return
				}
				respond(w, http.StatusOK, res)
			})
		})
	})

	return r
}
