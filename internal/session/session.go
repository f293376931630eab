// Package session is the authoritative game coordinator: one goroutine
// owns the player registry, the dice set and the active turn, and
// processes every inbound message to completion before the next. No
// handler yields mid-mutation, so no locks.
package session

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/ivanjurin/yamb-backend/internal/dice"
	"github.com/ivanjurin/yamb-backend/internal/ticket"
	"github.com/ivanjurin/yamb-backend/internal/types"
)

var ErrUnknownPlayer = errors.New("unknown player")
var ErrInvalidTurn = errors.New("invalid turn number")

// DeviceIdentity is the reserved connect identity of the dice bridge.
const DeviceIdentity = "dice"

// Player is one registered participant. Turn numbers across all
// players always form the permutation 1..N.
type Player struct {
	Identity string
	Name     string
	Turn     int
	Ticket   ticket.Ticket
}

type client struct {
	identity string
	out      chan types.ServerMessage
}

type Session struct {
	inbox   chan Msg
	players map[string]*Player
	byTurn  map[int]*Player
	dice    *dice.Set
	turn    int
	clients map[string]client
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(parent context.Context, log *zap.Logger) *Session {
	ctx, cancel := context.WithCancel(parent)
	s := &Session{
		inbox:   make(chan Msg, 64),
		players: make(map[string]*Player),
		byTurn:  make(map[int]*Player),
		dice:    dice.NewSet(),
		turn:    1,
		clients: make(map[string]client),
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}
	go s.loop()
	return s
}

func (s *Session) Inbox() chan<- Msg { return s.inbox }

func (s *Session) loop() {
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Join:
				s.handleJoin(msg)
			case Leave:
				delete(s.clients, msg.ClientID)
			case Write:
				s.handleWrite(msg)
			case BindColor:
				if !s.dice.BindColor(msg.Color, msg.DieID) {
					s.log.Debug("bind for unknown color channel",
						zap.Int("color", msg.Color), zap.String("die", msg.DieID))
				}
			case Battery:
				if !s.dice.SetBattery(msg.DieID, msg.Level) {
					s.log.Debug("battery report for unknown die", zap.String("die", msg.DieID))
				}
			case Face:
				s.handleFace(msg)
			case RawTelemetry:
				s.log.Info("dice telemetry", zap.ByteString("payload", msg.Payload))
			case PlayersJSON:
				msg.Reply <- s.playersView()
			case AssignTurn:
				msg.Reply <- s.handleAssignTurn(msg)
			case ReplaceTicket:
				msg.Reply <- s.handleReplaceTicket(msg)
			case GetState:
				msg.Reply <- s.view()
			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

func (s *Session) handleJoin(m Join) {
	p := s.players[m.Identity]
	if p == nil {
		p = &Player{
			Identity: m.Identity,
			Name:     m.Name,
			Turn:     len(s.players) + 1,
			Ticket:   ticket.New(),
		}
		s.players[p.Identity] = p
		s.byTurn[p.Turn] = p
		s.log.Info("player joined",
			zap.String("uuid", p.Identity), zap.String("name", p.Name), zap.Int("turn", p.Turn))
	} else {
		p.Name = m.Name
		s.log.Info("player reconnected",
			zap.String("uuid", p.Identity), zap.String("name", p.Name))
	}

	s.clients[m.ClientID] = client{identity: m.Identity, out: m.Outbox}

	s.push(p.Identity, ticketMsg(p))
	if p.Turn == s.turn {
		s.push(p.Identity, s.rollMsg(p))
	} else {
		s.push(p.Identity, nullRoll())
	}
}

func (s *Session) handleWrite(m Write) {
	p := s.players[m.Identity]
	if p == nil {
		s.log.Debug("write from unknown identity", zap.String("uuid", m.Identity))
		return
	}
	if p.Turn != s.turn {
		s.log.Debug("write out of turn",
			zap.String("uuid", m.Identity), zap.Int("turn", p.Turn), zap.Int("current", s.turn))
		return
	}
	if err := p.Ticket.Commit(m.Target, m.Value); err != nil {
		s.log.Debug("write rejected",
			zap.String("uuid", m.Identity), zap.String("target", m.Target), zap.Error(err))
		return
	}

	s.log.Info("cell committed",
		zap.String("uuid", m.Identity), zap.String("target", m.Target), zap.String("value", m.Value))

	// Writer's turn is over: fresh sheet, no active roll.
	s.push(p.Identity, ticketMsg(p))
	s.push(p.Identity, nullRoll())
	s.advance()
}

func (s *Session) advance() {
	n := len(s.players)
	if n == 0 {
		return
	}
	s.turn = s.turn%n + 1
	if next := s.byTurn[s.turn]; next != nil {
		s.push(next.Identity, s.rollMsg(next))
	}
}

func (s *Session) handleFace(m Face) {
	if !s.dice.SetFace(m.DieID, m.Value) {
		s.log.Debug("settle report for unknown die", zap.String("die", m.DieID))
	}
	// The active player sees every settle as it lands.
	if p := s.byTurn[s.turn]; p != nil {
		s.push(p.Identity, s.rollMsg(p))
	}
}

func (s *Session) handleAssignTurn(m AssignTurn) AssignResult {
	p := s.players[m.Identity]
	if p == nil {
		return AssignResult{Err: ErrUnknownPlayer}
	}
	if m.NewTurn < 1 || m.NewTurn > len(s.players) {
		return AssignResult{Err: ErrInvalidTurn}
	}
	if m.NewTurn != p.Turn {
		// Swap with the current holder to keep turn numbers a
		// permutation of 1..N.
		other := s.byTurn[m.NewTurn]
		other.Turn = p.Turn
		s.byTurn[other.Turn] = other
		p.Turn = m.NewTurn
		s.byTurn[p.Turn] = p
		s.log.Info("turn reassigned",
			zap.String("uuid", p.Identity), zap.Int("turn", p.Turn),
			zap.String("swapped", other.Identity))
	}
	return AssignResult{Player: s.info(p)}
}

func (s *Session) handleReplaceTicket(m ReplaceTicket) error {
	p := s.players[m.Identity]
	if p == nil {
		return ErrUnknownPlayer
	}
	p.Ticket = ticket.FromMap(m.Ticket)
	s.push(p.Identity, ticketMsg(p))
	s.log.Info("ticket replaced", zap.String("uuid", p.Identity))
	return nil
}

// push delivers to every connection bound to an identity. A full outbox
// drops that connection.
func (s *Session) push(identity string, msg types.ServerMessage) {
	for id, c := range s.clients {
		if c.identity != identity {
			continue
		}
		select {
		case c.out <- msg:
		default:
			close(c.out)
			delete(s.clients, id)
			s.log.Warn("dropped slow client", zap.String("uuid", identity))
		}
	}
}

func (s *Session) shutdown() {
	for id, c := range s.clients {
		close(c.out)
		delete(s.clients, id)
	}
	s.cancel()
}

func ticketMsg(p *Player) types.ServerMessage {
	return types.ServerMessage{Type: types.MsgUpdateTicket, Ticket: p.Ticket.Snapshot()}
}

func (s *Session) rollMsg(p *Player) types.ServerMessage {
	return types.ServerMessage{
		Type:  types.MsgRoll,
		Dice:  s.dice.Snapshot(),
		Hints: p.Ticket.Hints(s.dice.Values()),
	}
}

func nullRoll() types.ServerMessage {
	return types.ServerMessage{Type: types.MsgRoll}
}

func (s *Session) info(p *Player) PlayerInfo {
	return PlayerInfo{
		Identity: p.Identity,
		Name:     p.Name,
		Turn:     p.Turn,
		Ticket:   p.Ticket.Snapshot(),
		Totals:   p.Ticket.Aggregates(),
		Score:    p.Ticket.Total(),
	}
}

func (s *Session) playersView() PlayersView {
	v := PlayersView{
		CurrentTurn: s.turn,
		Players:     make(map[string]PlayerInfo, len(s.players)),
	}
	for id, p := range s.players {
		v.Players[id] = s.info(p)
	}
	return v
}

func (s *Session) view() View {
	v := View{
		CurrentTurn: s.turn,
		NumClients:  len(s.clients),
		Players:     make(map[string]PlayerInfo, len(s.players)),
		Dice:        s.dice.Values(),
	}
	for id, p := range s.players {
		v.Players[id] = s.info(p)
	}
	return v
}
