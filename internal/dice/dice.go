// Package dice tracks the shared set of connected dice. The set trusts
// device input; physical plausibility is the device's problem.
package dice

// Die is one physical or simulated die. ID is the stable logical name;
// Color is the channel the device pairing reports.
type Die struct {
	ID      string `json:"id"`
	Value   int    `json:"value"`
	Color   int    `json:"color"`
	Battery int    `json:"battery"`
}

// Set owns the six dice, indexed by identity with color as a secondary
// pairing key.
type Set struct {
	dice    []*Die
	byID    map[string]*Die
	byColor map[int]*Die
}

// NewSet seeds the six dice with placeholder identities. Device pairing
// rebinds the real identities over the color channels.
func NewSet() *Set {
	s := &Set{
		dice: []*Die{
			{ID: "n1", Value: 6, Color: 0, Battery: 90},
			{ID: "n2", Value: 6, Color: 1, Battery: 70},
			{ID: "n3", Value: 3, Color: 2, Battery: 50},
			{ID: "n4", Value: 4, Color: 3, Battery: 40},
			{ID: "n5", Value: 5, Color: 4, Battery: 20},
			{ID: "n6", Value: 6, Color: 5, Battery: 10},
		},
		byID:    make(map[string]*Die, 6),
		byColor: make(map[int]*Die, 6),
	}
	for _, d := range s.dice {
		s.byID[d.ID] = d
		s.byColor[d.Color] = d
	}
	return s
}

// BindColor renames the die on a color channel to a stable device
// identity. Unknown channels are ignored; the last binding for a
// channel wins.
func (s *Set) BindColor(color int, id string) bool {
	d, ok := s.byColor[color]
	if !ok {
		return false
	}
	delete(s.byID, d.ID)
	d.ID = id
	s.byID[id] = d
	return true
}

// SetBattery records a battery report for a named die.
func (s *Set) SetBattery(id string, level int) bool {
	d, ok := s.byID[id]
	if !ok {
		return false
	}
	d.Battery = level
	return true
}

// SetFace records a face-value report for a named die. Last report
// wins.
func (s *Set) SetFace(id string, value int) bool {
	d, ok := s.byID[id]
	if !ok {
		return false
	}
	d.Value = value
	return true
}

// Snapshot returns a value copy of all dice, safe to broadcast.
func (s *Set) Snapshot() []Die {
	out := make([]Die, len(s.dice))
	for i, d := range s.dice {
		out[i] = *d
	}
	return out
}

// Values returns the current face values in set order.
func (s *Set) Values() []int {
	out := make([]int, len(s.dice))
	for i, d := range s.dice {
		out[i] = d.Value
	}
	return out
}
