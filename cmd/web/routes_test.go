package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AdamBeresnev/fc-knockout/internal/bracket"
	"github.com/AdamBeresnev/fc-knockout/internal/db"
	"github.com/AdamBeresnev/fc-knockout/internal/service"
	"github.com/AdamBeresnev/fc-knockout/internal/storage"
	"github.com/AdamBeresnev/fc-knockout/internal/store"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClient struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.RunMigrations(database.DB, "file://../../migrations"))

	uploader, err := storage.NewLocalUploader(t.TempDir())
	require.NoError(t, err)

	tournaments := service.NewTournamentService(database, store.NewTournamentStore(database), nil, uploader)
	server := httptest.NewServer(newRouter(scs.New(), tournaments, []string{"*"}))
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testClient{t: t, server: server, client: &http.Client{Jar: jar}}
}

func (c *testClient) do(method, path, body string) (*http.Response, []byte) {
	c.t.Helper()

	req, err := http.NewRequest(method, c.server.URL+path, strings.NewReader(body))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	require.NoError(c.t, err)
	defer res.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(res.Body)
	require.NoError(c.t, err)
	return res, buf.Bytes()
}

func (c *testClient) tournament(method, path, body string, wantStatus int) *bracket.Tournament {
	c.t.Helper()

	res, data := c.do(method, path, body)
	require.Equal(c.t, wantStatus, res.StatusCode, string(data))

	var t bracket.Tournament
	require.NoError(c.t, json.Unmarshal(data, &t))
	return &t
}

func (c *testClient) errorFor(method, path, body string) (int, string) {
	c.t.Helper()

	res, data := c.do(method, path, body)
	var payload map[string]string
	require.NoError(c.t, json.Unmarshal(data, &payload), string(data))
	return res.StatusCode, payload["error"]
}

func TestAPITournamentFlow(t *testing.T) {
	c := newTestClient(t)

	created := c.tournament(http.MethodPost, "/api/tournaments", `{"players":["Alice","Bob"]}`, http.StatusCreated)
	base := "/api/tournaments/" + created.ID.String()

	active := c.tournament(http.MethodGet, "/api/tournaments/active", "", http.StatusOK)
	assert.Equal(t, created.ID, active.ID)

	c.tournament(http.MethodPut, base+"/team-count", `{"teamCount":4}`, http.StatusOK)
	c.tournament(http.MethodPut, base+"/teams", `{"pot1":["1","9"],"pot2":["17","23"]}`, http.StatusOK)
	c.tournament(http.MethodPost, base+"/assignments/random", "", http.StatusOK)
	seeded := c.tournament(http.MethodPost, base+"/bracket", "", http.StatusOK)
	require.Len(t, seeded.Matches, 2)

	match := seeded.Matches[0]
	matchPath := base + "/matches/" + match.ID.String()

	status, msg := c.errorFor(http.MethodPost, matchPath+"/result", `{"homeScore":2,"awayScore":2}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, msg, "draw")

	status, msg = c.errorFor(http.MethodPost, matchPath+"/result", `{"homeScore":1.5,"awayScore":0}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, msg, "whole number")

	status, _ = c.errorFor(http.MethodPost, matchPath+"/result", `{"homeScore":-1,"awayScore":0}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, msg = c.errorFor(http.MethodPost, matchPath+"/result", `{"homeScore":1e20,"awayScore":0}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, msg, "too large")

	started := c.tournament(http.MethodPost, matchPath+"/start", "", http.StatusOK)
	assert.Equal(t, bracket.MatchOngoing, started.Match(match.ID).Status)

	done := c.tournament(http.MethodPost, matchPath+"/result", `{"homeScore":3,"awayScore":1}`, http.StatusOK)
	assert.Equal(t, bracket.MatchCompleted, done.Match(match.ID).Status)

	status, _ = c.errorFor(http.MethodPost, matchPath+"/result", `{"homeScore":3,"awayScore":1}`)
	assert.Equal(t, http.StatusConflict, status)

	res, exported := c.do(http.MethodGet, base+"/export", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Disposition"), "attachment")

	imported := c.tournament(http.MethodPost, "/api/tournaments/import", string(exported), http.StatusOK)
	assert.Equal(t, created.ID, imported.ID)

	res, _ = c.do(http.MethodPost, base+"/archive", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, page := c.do(http.MethodGet, "/tournaments/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(page), "Semi Finals")

	res, _ = c.do(http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	status, _ = c.errorFor(http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPIErrors(t *testing.T) {
	c := newTestClient(t)

	status, _ := c.errorFor(http.MethodGet, "/api/tournaments/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = c.errorFor(http.MethodGet, "/api/tournaments/active", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = c.errorFor(http.MethodPost, "/api/tournaments", `{"players":["Solo","Duo","Trio"]}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, msg := c.errorFor(http.MethodPost, "/api/tournaments", `{"names":["A","B"]}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, msg, "unknown key")

	created := c.tournament(http.MethodPost, "/api/tournaments", `{"players":["A","B"]}`, http.StatusCreated)
	status, _ = c.errorFor(http.MethodPost, "/api/tournaments/"+created.ID.String()+"/bracket", "")
	assert.Equal(t, http.StatusConflict, status)

	status, _ = c.errorFor(http.MethodPost, "/api/tournaments/import", `{"id":"x"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPITeams(t *testing.T) {
	c := newTestClient(t)

	res, data := c.do(http.MethodGet, "/api/teams?league=Serie%20A", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var teams []bracket.Team
	require.NoError(t, json.Unmarshal(data, &teams))
	require.NotEmpty(t, teams)
	for _, team := range teams {
		assert.Equal(t, "Serie A", team.League)
	}
}
