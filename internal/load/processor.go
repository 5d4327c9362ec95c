// ABOUTME: Training load processor turning GPS sessions into load records.
// ABOUTME: Blanks injured days, computes TRIMP, rolling acute/chronic loads, and ACWR.
package load

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/harperreed/pitchside/internal/injury"
	"github.com/harperreed/pitchside/internal/models"
)

const (
	// AcuteDays is the trailing window for acute load, current day included.
	AcuteDays = 7
	// ChronicDays is the trailing window for chronic load, current day included.
	ChronicDays = 28
	// ChronicWeeks turns the chronic sum into a weekly-equivalent average.
	ChronicWeeks = 4
	// MatchMinutesCap is the longest day_duration kept for a match day.
	MatchMinutesCap = 90.0
)

// Options configures a Processor.
type Options struct {
	// WindowStart and WindowEnd bound session dates, inclusive. A zero value
	// leaves that side open.
	WindowStart time.Time
	WindowEnd   time.Time
	// Workers caps concurrent per-player window computations. Zero or less
	// means no limit.
	Workers int
}

// Processor derives load records from sessions.
type Processor struct {
	opts     Options
	injuries *injury.Index
	logos    map[string]string
}

// NewProcessor creates a processor. Teams provide opponent logos, looked up
// by the session's full opposition name.
func NewProcessor(opts Options, injuries *injury.Index, teams []models.Team) *Processor {
	if injuries == nil {
		injuries = injury.NewIndex(nil)
	}
	logos := make(map[string]string, len(teams))
	for _, t := range teams {
		if _, ok := logos[t.Name]; !ok {
			logos[t.Name] = t.PictureURL
		}
	}
	return &Processor{opts: opts, injuries: injuries, logos: logos}
}

// Process returns one load record per in-window session. Records are grouped
// by player in order of first appearance and sorted by date within a player.
func (p *Processor) Process(ctx context.Context, sessions []models.Session) ([]models.LoadRecord, error) {
	var order []int
	byPlayer := make(map[int][]models.LoadRecord)

	for i := range sessions {
		s := sessions[i]
		if !p.inWindow(s.Date) {
			continue
		}

		inj := p.injuries.Active(s.PlayerID, s.Date)
		if inj != nil {
			s.Blank()
		}
		rec := models.NewLoadRecord(&s)
		if inj != nil {
			rec.WithInjury(inj)
		}
		rec.TRIMPEdwards = TRIMP(rec.HRZones)

		if _, ok := byPlayer[s.PlayerID]; !ok {
			order = append(order, s.PlayerID)
		}
		byPlayer[s.PlayerID] = append(byPlayer[s.PlayerID], *rec)
	}

	g, gctx := errgroup.WithContext(ctx)
	if p.opts.Workers > 0 {
		g.SetLimit(p.opts.Workers)
	}
	groups := make([][]models.LoadRecord, len(order))
	for i, id := range order {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("rolling loads for player %d: %w", id, err)
			}
			records := byPlayer[id]
			sort.SliceStable(records, func(a, b int) bool {
				return records[a].Date.Before(records[b].Date)
			})
			RollingLoads(records)
			groups[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]models.LoadRecord, 0, len(sessions))
	for _, records := range groups {
		out = append(out, records...)
	}

	for i := range out {
		rec := &out[i]
		rec.ACWR = ACWR(rec.AcuteLoad, rec.ChronicLoad)
		rec.RiskZone = models.ClassifyACWR(rec.ACWR)
		rec.OpponentLogoURL = p.logos[rec.OppositionFull]
		rec.DistanceKM = rec.Distance / 1000
		if rec.IsMatchDay && rec.DayDuration > MatchMinutesCap {
			rec.DayDuration = MatchMinutesCap
		}
	}
	return out, nil
}

func (p *Processor) inWindow(d time.Time) bool {
	if !p.opts.WindowStart.IsZero() && d.Before(p.opts.WindowStart) {
		return false
	}
	if !p.opts.WindowEnd.IsZero() && d.After(p.opts.WindowEnd) {
		return false
	}
	return true
}

// TRIMP returns the Edwards training impulse: minutes in zone k weighted by k.
func TRIMP(zones [models.ZoneCount]models.ZoneDuration) float64 {
	var total float64
	for i, z := range zones {
		total += float64(i+1) * z.Minutes()
	}
	return total
}

// ACWR returns acute/chronic, or 0 when chronic is not positive.
func ACWR(acute, chronic float64) float64 {
	if chronic <= 0 {
		return 0
	}
	return acute / chronic
}

// RollingLoads fills AcuteLoad and ChronicLoad on one player's records, which
// must be sorted by date. Each window covers the trailing calendar days up to
// and including the record's own row, so later rows on the same date are not
// counted.
func RollingLoads(records []models.LoadRecord) {
	var acuteSum, chronicSum float64
	acuteTail, chronicTail := 0, 0

	for i := range records {
		cur := records[i].Date
		acuteSum += records[i].TRIMPEdwards
		chronicSum += records[i].TRIMPEdwards

		for models.DaysBetween(records[acuteTail].Date, cur) >= AcuteDays {
			acuteSum -= records[acuteTail].TRIMPEdwards
			acuteTail++
		}
		for models.DaysBetween(records[chronicTail].Date, cur) >= ChronicDays {
			chronicSum -= records[chronicTail].TRIMPEdwards
			chronicTail++
		}

		records[i].AcuteLoad = acuteSum
		records[i].ChronicLoad = chronicSum / ChronicWeeks
	}
}
