// Package ws is the real-time channel endpoint. One connection, one
// role: the reserved identity "dice" feeds device events in, every
// other identity is a player that receives sheet and roll pushes.
package ws

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/ivanjurin/yamb-backend/internal/session"
	"github.com/ivanjurin/yamb-backend/internal/types"
)

const writeTimeout = 3 * time.Second

func Handler(s *session.Session, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uuid := r.URL.Query().Get("uuid")
		if uuid == "" {
			http.Error(w, "missing uuid", http.StatusBadRequest)
			return
		}
		username := r.URL.Query().Get("username")

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true, // the admin panel and clients are cross-origin
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		if uuid == session.DeviceIdentity {
			deviceLoop(r.Context(), conn, s, log)
			return
		}
		playerLoop(r.Context(), conn, s, uuid, username, log)
	}
}

// deviceLoop ingests telemetry. The device gets no pushes, so no outbox
// and no session registration.
func deviceLoop(ctx context.Context, conn *websocket.Conn, s *session.Session, log *zap.Logger) {
	log.Info("device connected")
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			log.Info("device disconnected")
			return
		}

		var cm types.ClientMessage
		if err := json.Unmarshal(data, &cm); err != nil {
			sendError(ctx, conn, "bad json")
			continue
		}

		msg, ok := toDeviceMsg(cm, data)
		if !ok {
			sendError(ctx, conn, "unsupported device message")
			continue
		}
		s.Inbox() <- msg
	}
}

func playerLoop(ctx context.Context, conn *websocket.Conn, s *session.Session, uuid, username string, log *zap.Logger) {
	out := make(chan types.ServerMessage, 8)
	clientID := randID(6)

	s.Inbox() <- session.Join{ClientID: clientID, Identity: uuid, Name: username, Outbox: out}
	defer func() { s.Inbox() <- session.Leave{ClientID: clientID} }()

	// Writer goroutine drains the session outbox until it closes.
	writeCtx, writeCancel := context.WithCancel(ctx)
	defer writeCancel()
	go func() {
		for msg := range out {
			payload, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			wctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
			_ = conn.Write(wctx, websocket.MessageText, payload)
			cancel()
		}
	}()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			// Clean close or broken pipe either way; Leave runs in
			// the defer.
			return
		}

		var cm types.ClientMessage
		if err := json.Unmarshal(data, &cm); err != nil {
			sendError(ctx, conn, "bad json")
			continue
		}

		msg, ok := toPlayerMsg(cm, uuid)
		if !ok {
			sendError(ctx, conn, "unsupported message")
			continue
		}
		s.Inbox() <- msg
	}
}

func toDeviceMsg(cm types.ClientMessage, raw []byte) (session.Msg, bool) {
	switch cm.Type {
	case types.MsgDiceData:
		return session.RawTelemetry{Payload: json.RawMessage(raw)}, true
	case types.MsgDiceColor:
		if cm.Dice == "" {
			return nil, false
		}
		return session.BindColor{Color: cm.Color, DieID: cm.Dice}, true
	case types.MsgBatteryLevel:
		if cm.Dice == "" {
			return nil, false
		}
		return session.Battery{DieID: cm.Dice, Level: cm.Level}, true
	case types.MsgStable, types.MsgFakeStable, types.MsgMoveStable:
		var value int
		if cm.Dice == "" || json.Unmarshal(cm.Value, &value) != nil {
			return nil, false
		}
		return session.Face{DieID: cm.Dice, Value: value}, true
	default:
		return nil, false
	}
}

func toPlayerMsg(cm types.ClientMessage, uuid string) (session.Msg, bool) {
	switch cm.Type {
	case types.MsgWrite:
		var value string
		if cm.Target == "" || json.Unmarshal(cm.Value, &value) != nil {
			return nil, false
		}
		return session.Write{Identity: uuid, Target: cm.Target, Value: value}, true
	default:
		return nil, false
	}
}

func sendError(ctx context.Context, conn *websocket.Conn, text string) {
	payload, _ := json.Marshal(types.ServerMessage{Type: types.MsgError, Error: text})
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	_ = conn.Write(wctx, websocket.MessageText, payload)
	cancel()
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
