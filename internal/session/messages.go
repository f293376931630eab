package session

import (
	"encoding/json"

	"github.com/ivanjurin/yamb-backend/internal/types"
)

type Msg interface{ isSessionMsg() }

// Join registers a player connection. A new identity gets the next
// turn number; a known one keeps its sheet and turn and only refreshes
// the display name.
type Join struct {
	ClientID string
	Identity string
	Name     string
	Outbox   chan types.ServerMessage
}

// Leave drops a connection's outbox. The player record survives.
type Leave struct{ ClientID string }

// Write asks to commit a value to one sheet cell.
type Write struct {
	Identity string
	Target   string
	Value    string
}

// BindColor pairs a color channel with a stable die identity.
type BindColor struct {
	Color int
	DieID string
}

// Battery is a device battery report.
type Battery struct {
	DieID string
	Level int
}

// Face is a settle report; all three device settle variants arrive as
// this message.
type Face struct {
	DieID string
	Value int
}

// RawTelemetry is unparsed device output, logged only.
type RawTelemetry struct{ Payload json.RawMessage }

// PlayersJSON asks for the admin snapshot.
type PlayersJSON struct{ Reply chan PlayersView }

// AssignTurn swaps the target player's turn number with whichever
// player currently holds NewTurn.
type AssignTurn struct {
	Identity string
	NewTurn  int
	Reply    chan AssignResult
}

// ReplaceTicket swaps a player's whole sheet, admin override.
type ReplaceTicket struct {
	Identity string
	Ticket   map[string]string
	Reply    chan error
}

// GetState is test-only: a race-free view of the session internals.
type GetState struct{ Reply chan View }

type Shutdown struct{}

func (Join) isSessionMsg()          {}
func (Leave) isSessionMsg()         {}
func (Write) isSessionMsg()         {}
func (BindColor) isSessionMsg()     {}
func (Battery) isSessionMsg()       {}
func (Face) isSessionMsg()          {}
func (RawTelemetry) isSessionMsg()  {}
func (PlayersJSON) isSessionMsg()   {}
func (AssignTurn) isSessionMsg()    {}
func (ReplaceTicket) isSessionMsg() {}
func (GetState) isSessionMsg()      {}
func (Shutdown) isSessionMsg()      {}

// PlayerInfo is the admin-facing player record, derived totals
// included.
type PlayerInfo struct {
	Identity string            `json:"uuid"`
	Name     string            `json:"name"`
	Turn     int               `json:"turn"`
	Ticket   map[string]string `json:"ticket"`
	Totals   map[string]string `json:"totals"`
	Score    int               `json:"score"`
}

// PlayersView is the players-json response body.
type PlayersView struct {
	CurrentTurn int                   `json:"currentTurn"`
	Players     map[string]PlayerInfo `json:"players"`
}

type AssignResult struct {
	Player PlayerInfo
	Err    error
}

// View reflects internal state for tests without data races.
type View struct {
	CurrentTurn int
	NumClients  int
	Players     map[string]PlayerInfo
	Dice        []int
}
