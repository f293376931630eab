// Package httpapi is the administrative collaborator surface: a JSON
// snapshot of the table and wholesale turn/ticket overrides.
package httpapi

import (
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ivanjurin/yamb-backend/internal/session"
)

//go:embed admin.html
var adminPage []byte

func AdminPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(adminPage)
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func PlayersJSON(s *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply := make(chan session.PlayersView, 1)
		s.Inbox() <- session.PlayersJSON{Reply: reply}
		writeJSON(w, http.StatusOK, <-reply)
	}
}

func SetTurn(s *session.Session, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UUID    string `json:"uuid"`
			NewTurn *int   `json:"newTurn"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.NewTurn == nil {
			writeError(w, http.StatusBadRequest, "Invalid turn number")
			return
		}

		reply := make(chan session.AssignResult, 1)
		s.Inbox() <- session.AssignTurn{Identity: body.UUID, NewTurn: *body.NewTurn, Reply: reply}
		res := <-reply

		switch {
		case errors.Is(res.Err, session.ErrUnknownPlayer):
			writeError(w, http.StatusNotFound, "Player not found")
		case errors.Is(res.Err, session.ErrInvalidTurn):
			writeError(w, http.StatusBadRequest, "Invalid turn number")
		case res.Err != nil:
			writeError(w, http.StatusInternalServerError, res.Err.Error())
		default:
			log.Info("admin turn override", zap.String("uuid", body.UUID), zap.Int("turn", *body.NewTurn))
			writeJSON(w, http.StatusOK, struct {
				Success bool               `json:"success"`
				Player  session.PlayerInfo `json:"player"`
			}{true, res.Player})
		}
	}
}

func SetTicket(s *session.Session, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UUID   string            `json:"uuid"`
			Ticket map[string]string `json:"ticket"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid body")
			return
		}

		reply := make(chan error, 1)
		s.Inbox() <- session.ReplaceTicket{Identity: body.UUID, Ticket: body.Ticket, Reply: reply}

		if err := <-reply; err != nil {
			writeError(w, http.StatusNotFound, "Player not found")
			return
		}
		log.Info("admin ticket override", zap.String("uuid", body.UUID))
		writeJSON(w, http.StatusOK, struct {
			Success bool `json:"success"`
		}{true})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{msg})
}
