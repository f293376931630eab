package score

// Row describes one line of the scoring sheet. Bonus is added on top of
// a defined, nonzero base value; Max is the best result the row can
// reach including its bonus.
type Row struct {
	ID       string
	Playable bool
	Bonus    int
	Max      int
}

// Rows lists the sheet top to bottom, aggregate lines included.
var Rows = []Row{
	{ID: "1", Playable: true, Max: 5},
	{ID: "2", Playable: true, Max: 10},
	{ID: "3", Playable: true, Max: 15},
	{ID: "4", Playable: true, Max: 20},
	{ID: "5", Playable: true, Max: 25},
	{ID: "6", Playable: true, Max: 30},
	{ID: "sum1"},
	{ID: "max", Playable: true, Max: 30},
	{ID: "min", Playable: true, Max: 5},
	{ID: "sum2"},
	{ID: "pair", Playable: true, Bonus: 10, Max: 32},
	{ID: "tris", Playable: true, Bonus: 20, Max: 38},
	{ID: "straight", Playable: true, Max: 50},
	{ID: "full", Playable: true, Bonus: 40, Max: 68},
	{ID: "poker", Playable: true, Bonus: 50, Max: 74},
	{ID: "yamb", Playable: true, Bonus: 60, Max: 90},
	{ID: "sum3"},
}

// Sum3Rows are the committed rows that feed the bottom aggregate.
var Sum3Rows = []string{"pair", "tris", "straight", "full", "poker", "yamb"}

// PlayableRows is the fixed fill order the down/up column rules walk.
// It is the only authority on row sequencing.
var PlayableRows = playableIDs()

var rowsByID = indexRows()

func playableIDs() []string {
	ids := make([]string, 0, len(Rows))
	for _, r := range Rows {
		if r.Playable {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

func indexRows() map[string]Row {
	m := make(map[string]Row, len(Rows))
	for _, r := range Rows {
		m[r.ID] = r
	}
	return m
}

// RowByID looks a row up by its sheet identifier.
func RowByID(id string) (Row, bool) {
	r, ok := rowsByID[id]
	return r, ok
}

// PlayableIndex returns the position of a row within the fill order,
// or -1 for aggregate and unknown rows.
func PlayableIndex(id string) int {
	for i, r := range PlayableRows {
		if r == id {
			return i
		}
	}
	return -1
}
