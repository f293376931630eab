package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ivanjurin/yamb-backend/internal/session"
	"github.com/ivanjurin/yamb-backend/internal/types"
)

func newTestServer(t *testing.T) (*httptest.Server, *session.Session) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	s := session.New(ctx, zap.NewNop())
	srv := httptest.NewServer(SetupRoutes(s, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv, s
}

func join(s *session.Session, clientID, uuid, name string) {
	out := make(chan types.ServerMessage, 8)
	s.Inbox() <- session.Join{ClientID: clientID, Identity: uuid, Name: name, Outbox: out}
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestPlayersJSON(t *testing.T) {
	srv, s := newTestServer(t)
	join(s, "c1", "ana", "Ana")
	join(s, "c2", "bruno", "Bruno")

	resp, err := http.Get(srv.URL + "/admin/players-json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var v session.PlayersView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	assert.Equal(t, 1, v.CurrentTurn)
	require.Len(t, v.Players, 2)
	assert.Equal(t, 1, v.Players["ana"].Turn)
	assert.Equal(t, "Bruno", v.Players["bruno"].Name)
	assert.NotNil(t, v.Players["ana"].Totals)
}

func TestSetTurn(t *testing.T) {
	srv, s := newTestServer(t)
	join(s, "c1", "ana", "Ana")
	join(s, "c2", "bruno", "Bruno")

	cases := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "swap succeeds", body: `{"uuid":"bruno","newTurn":1}`, wantStatus: http.StatusOK},
		{name: "unknown player", body: `{"uuid":"ghost","newTurn":1}`, wantStatus: http.StatusNotFound},
		{name: "turn out of range", body: `{"uuid":"ana","newTurn":3}`, wantStatus: http.StatusBadRequest},
		{name: "non-numeric turn", body: `{"uuid":"ana","newTurn":"first"}`, wantStatus: http.StatusBadRequest},
		{name: "missing turn", body: `{"uuid":"ana"}`, wantStatus: http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/admin/turn", tc.body)
			defer resp.Body.Close()
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}

	// The successful swap above moved bruno to turn 1.
	resp, err := http.Get(srv.URL + "/admin/players-json")
	require.NoError(t, err)
	defer resp.Body.Close()
	var v session.PlayersView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	assert.Equal(t, 1, v.Players["bruno"].Turn)
	assert.Equal(t, 2, v.Players["ana"].Turn)
}

func TestSetTicket(t *testing.T) {
	srv, s := newTestServer(t)
	join(s, "c1", "ana", "Ana")

	resp := postJSON(t, srv.URL+"/admin/ticket", `{"uuid":"ana","ticket":{"F-yamb":"90"}}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	missing := postJSON(t, srv.URL+"/admin/ticket", `{"uuid":"ghost","ticket":{}}`)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	players, err := http.Get(srv.URL + "/admin/players-json")
	require.NoError(t, err)
	defer players.Body.Close()
	var v session.PlayersView
	require.NoError(t, json.NewDecoder(players.Body).Decode(&v))
	assert.Equal(t, "90", v.Players["ana"].Ticket["F-yamb"])
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminPageServed(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/admin")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}
