package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
)

type ContextKey string

const ActiveTournamentKey ContextKey = "activeTournamentID"

const activeTournamentSessionKey = "activeTournamentID"

// LoadActiveTournament puts the tournament the browser last worked on into the request context
func LoadActiveTournament(sessionManager *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idStr := sessionManager.GetString(r.Context(), activeTournamentSessionKey)
			if idStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := uuid.Parse(idStr)
			if err != nil {
				sessionManager.Remove(r.Context(), activeTournamentSessionKey)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ActiveTournamentKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SetActiveTournament(ctx context.Context, sessionManager *scs.SessionManager, id uuid.UUID) {
	sessionManager.Put(ctx, activeTournamentSessionKey, id.String())
}

func ClearActiveTournament(ctx context.Context, sessionManager *scs.SessionManager, id uuid.UUID) {
	if sessionManager.GetString(ctx, activeTournamentSessionKey) == id.String() {
		sessionManager.Remove(ctx, activeTournamentSessionKey)
	}
}

func GetActiveTournamentID(ctx context.Context) (uuid.UUID, bool) {
	val := ctx.Value(ActiveTournamentKey)
	if val == nil {
		return uuid.Nil, false
	}

	id, ok := val.(uuid.UUID)
	return id, ok
}
