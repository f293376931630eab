// Package ticket holds one player's scoring sheet and its write rules.
package ticket

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ivanjurin/yamb-backend/internal/score"
)

var ErrBadCell = errors.New("malformed cell identifier")
var ErrNotWritable = errors.New("cell not writable")

// Blocked is the marker a player writes to give a row up.
const Blocked = "X"

// Columns in sheet order: down, up, free, announced. Announced is
// enforced identically to free here.
var Columns = []string{"D", "U", "F", "A"}

// Ticket maps "col-row" cell identifiers to committed values. Committed
// cells are immutable for the rest of the session.
type Ticket map[string]string

func New() Ticket {
	return Ticket{}
}

// FromMap adopts a wholesale replacement mapping, as the admin surface
// supplies it.
func FromMap(cells map[string]string) Ticket {
	t := make(Ticket, len(cells))
	for k, v := range cells {
		t[k] = v
	}
	return t
}

// Snapshot returns a value copy safe to hand to another goroutine.
func (t Ticket) Snapshot() map[string]string {
	out := make(map[string]string, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Cell builds the canonical identifier for a column and row.
func Cell(col, row string) string {
	return col + "-" + row
}

// SplitCell parses a cell identifier into its column and row.
func SplitCell(target string) (col, row string, ok bool) {
	col, row, ok = strings.Cut(target, "-")
	if !ok || col == "" || row == "" {
		return "", "", false
	}
	return col, row, true
}

func (t Ticket) empty(col, row string) bool {
	return t[Cell(col, row)] == ""
}

// Writable reports whether the owning player may commit a value to the
// cell right now: the row must be playable, the cell empty, and the
// column's fill order satisfied. Down fills top to bottom, up bottom to
// top, free and announced in any order.
func (t Ticket) Writable(col, row string) bool {
	r, found := score.RowByID(row)
	if !found || !r.Playable {
		return false
	}
	if !t.empty(col, row) {
		return false
	}

	switch col {
	case "D":
		if row == score.PlayableRows[0] {
			return true
		}
		i := score.PlayableIndex(row)
		return !t.empty(col, score.PlayableRows[i-1])
	case "U":
		if row == score.PlayableRows[len(score.PlayableRows)-1] {
			return true
		}
		i := score.PlayableIndex(row)
		return !t.empty(col, score.PlayableRows[i+1])
	case "F", "A":
		return true
	}

	return false
}

// Commit writes a value to a cell, enforcing Writable authoritatively.
func (t Ticket) Commit(target, value string) error {
	col, row, ok := SplitCell(target)
	if !ok {
		return ErrBadCell
	}
	if !t.Writable(col, row) {
		return ErrNotWritable
	}
	t[target] = value
	return nil
}

// Hints computes the advisory value for every cell the given hand could
// be written to right now. Hints are never stored.
func (t Ticket) Hints(dice []int) map[string]int {
	hints := make(map[string]int)
	for _, col := range Columns {
		for _, row := range score.PlayableRows {
			if !t.Writable(col, row) {
				continue
			}
			if v, ok := score.Hint(row, dice); ok {
				hints[Cell(col, row)] = v
			}
		}
	}
	return hints
}

// cellValue parses a committed cell: the numeric value, or 0 for empty
// and blocked cells. blocked reports the marker explicitly.
func (t Ticket) cellValue(col, row string) (n int, blocked bool) {
	v := t[Cell(col, row)]
	if v == Blocked {
		return 0, true
	}
	n, _ = strconv.Atoi(v)
	return n, false
}

// Aggregates derives the sum rows for every column from committed cells
// only. sum2 stays empty until its three inputs are committed nonzero
// numbers and shows the blocked marker when any input is blocked.
func (t Ticket) Aggregates() map[string]string {
	out := make(map[string]string, 3*len(Columns))
	for _, col := range Columns {
		digits := make([]int, 0, 6)
		for _, row := range []string{"1", "2", "3", "4", "5", "6"} {
			n, _ := t.cellValue(col, row)
			digits = append(digits, n)
		}
		out[Cell(col, "sum1")] = strconv.Itoa(score.Sum1(digits))

		ones, onesBlocked := t.cellValue(col, "1")
		max, maxBlocked := t.cellValue(col, "max")
		min, minBlocked := t.cellValue(col, "min")
		switch {
		case onesBlocked || maxBlocked || minBlocked:
			out[Cell(col, "sum2")] = Blocked
		case ones != 0 && max != 0 && min != 0:
			out[Cell(col, "sum2")] = strconv.Itoa(score.Sum2(ones, max, min))
		default:
			out[Cell(col, "sum2")] = ""
		}

		lower := make([]int, 0, len(score.Sum3Rows))
		for _, row := range score.Sum3Rows {
			n, _ := t.cellValue(col, row)
			lower = append(lower, n)
		}
		out[Cell(col, "sum3")] = strconv.Itoa(score.Sum3(lower))
	}
	return out
}

// Total is the whole-sheet score: every derived sum cell added up, with
// blocked and pending sums counting zero.
func (t Ticket) Total() int {
	total := 0
	for _, v := range t.Aggregates() {
		n, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		total += n
	}
	return total
}
