// Package types defines the wire schema of the real-time channel. One
// tagged message shape per direction, shared by emission and boundary
// validation.
package types

import (
	"encoding/json"

	"github.com/ivanjurin/yamb-backend/internal/dice"
)

// Inbound tags. The three settle variants report a face value and are
// handled identically.
const (
	MsgDiceData     = "dice_data"
	MsgDiceColor    = "dice_color"
	MsgBatteryLevel = "battery_level"
	MsgStable       = "stable"
	MsgFakeStable   = "fake_stable"
	MsgMoveStable   = "move_stable"
	MsgWrite        = "write"
)

// Outbound tags.
const (
	MsgUpdateTicket = "update_ticket"
	MsgRoll         = "roll"
	MsgError        = "error"
)

// ClientMessage is every inbound message. Value is raw because its type
// depends on the tag: an integer face value for settle reports, a
// string for writes. Decoding per tag happens at the boundary.
type ClientMessage struct {
	Type   string          `json:"type"`
	Color  int             `json:"color,omitempty"`
	Dice   string          `json:"dice,omitempty"`
	Level  int             `json:"level,omitempty"`
	Value  json.RawMessage `json:"value,omitempty"`
	Target string          `json:"target,omitempty"`
}

// ServerMessage is every outbound message. For "roll", a null Dice
// field means no roll is active for the receiver; Hints accompany the
// dice only for the player holding the turn.
type ServerMessage struct {
	Type   string            `json:"type"`
	Ticket map[string]string `json:"ticket,omitempty"`
	Dice   []dice.Die        `json:"dice"`
	Hints  map[string]int    `json:"hints,omitempty"`
	Error  string            `json:"error,omitempty"`
}
