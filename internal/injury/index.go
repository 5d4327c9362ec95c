// ABOUTME: Per-player injury interval index for date containment queries.
// ABOUTME: Keeps the strict blanking test and the inclusive overlay test separate.
package injury

import (
	"time"

	"github.com/harperreed/pitchside/internal/models"
)

// Index answers range queries over injury intervals, grouped by player in
// input order.
type Index struct {
	byPlayer map[int][]models.Injury
}

// NewIndex builds an index over injuries.
func NewIndex(injuries []models.Injury) *Index {
	idx := &Index{byPlayer: make(map[int][]models.Injury)}
	for _, inj := range injuries {
		idx.byPlayer[inj.PlayerID] = append(idx.byPlayer[inj.PlayerID], inj)
	}
	return idx
}

// Active returns the injury whose interval strictly contains date
// (injury_date < date < return_date), or nil. Both boundary days count as
// available. When intervals overlap, the last one in input order wins.
func (x *Index) Active(playerID int, date time.Time) *models.Injury {
	var found *models.Injury
	list := x.byPlayer[playerID]
	for i := range list {
		if list[i].InjuryDate.Before(date) && date.Before(list[i].ReturnDate) {
			found = &list[i]
		}
	}
	return found
}

// Overlapping returns the injuries intersecting the inclusive window
// [start, end], each clipped to the window. Unlike Active, boundary days are
// part of the band.
func (x *Index) Overlapping(playerID int, start, end time.Time) []models.InjuryBand {
	var bands []models.InjuryBand
	for _, inj := range x.byPlayer[playerID] {
		if inj.InjuryDate.After(end) || inj.ReturnDate.Before(start) {
			continue
		}
		from, to := inj.InjuryDate, inj.ReturnDate
		if from.Before(start) {
			from = start
		}
		if to.After(end) {
			to = end
		}
		bands = append(bands, models.InjuryBand{Injury: inj, From: from, To: to})
	}
	return bands
}

// StartingOn returns the injuries that began on date.
func (x *Index) StartingOn(playerID int, date time.Time) []models.Injury {
	var out []models.Injury
	for _, inj := range x.byPlayer[playerID] {
		if inj.InjuryDate.Equal(date) {
			out = append(out, inj)
		}
	}
	return out
}

// ForPlayer returns a player's injuries in input order.
func (x *Index) ForPlayer(playerID int) []models.Injury {
	return append([]models.Injury(nil), x.byPlayer[playerID]...)
}

// Len returns the number of indexed intervals.
func (x *Index) Len() int {
	n := 0
	for _, list := range x.byPlayer {
		n += len(list)
	}
	return n
}
