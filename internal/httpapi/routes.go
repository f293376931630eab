package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ivanjurin/yamb-backend/internal/session"
	"github.com/ivanjurin/yamb-backend/internal/ws"
)

func SetupRoutes(s *session.Session, log *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(cors)

	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(s, log))

	r.Get("/admin", AdminPage)
	r.Get("/admin/players-json", PlayersJSON(s))
	r.Post("/admin/turn", SetTurn(s, log))
	r.Post("/admin/ticket", SetTicket(s, log))
	return r
}

// cors mirrors the permissive policy the clients expect; the table and
// the admin panel are served from other origins.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
