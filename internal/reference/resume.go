// ABOUTME: Builds one player resume per player from the reference tables.
// ABOUTME: Joins season aggregates and country pictures, and derives age.
package reference

import (
	"time"

	"github.com/harperreed/pitchside/internal/models"
)

// BuildResumes joins players with their season aggregate and country picture.
// Players without a matching aggregate or country keep empty fields. Only the
// first row per player_id is kept.
func BuildResumes(players []models.Player, seasons []models.SeasonAggregate, countries []models.Country, today time.Time) []models.PlayerResume {
	statsByPlayer := make(map[int]map[string]float64, len(seasons))
	for _, s := range seasons {
		if _, ok := statsByPlayer[s.PlayerID]; !ok {
			statsByPlayer[s.PlayerID] = s.Stats
		}
	}
	pictureByCountry := make(map[int]string, len(countries))
	for _, c := range countries {
		if _, ok := pictureByCountry[c.CountryID]; !ok {
			pictureByCountry[c.CountryID] = c.PictureURL
		}
	}

	seen := make(map[int]bool, len(players))
	out := make([]models.PlayerResume, 0, len(players))
	for _, p := range players {
		if seen[p.PlayerID] {
			continue
		}
		seen[p.PlayerID] = true

		out = append(out, models.PlayerResume{
			PlayerID:          p.PlayerID,
			Name:              p.Name,
			Number:            p.Number,
			Group:             p.Group,
			GroupID:           p.GroupID,
			Foot:              p.Foot,
			Height:            p.Height,
			Weight:            p.Weight,
			PictureURL:        p.PictureURL,
			CountryID:         p.CountryID,
			CountryPictureURL: pictureByCountry[p.CountryID],
			Birthdate:         p.Birthdate,
			Age:               Age(p.Birthdate, today),
			Stats:             copyStats(statsByPlayer[p.PlayerID]),
		})
	}
	return out
}

// Age returns the number of whole years between birthdate and today.
func Age(birthdate, today time.Time) int {
	if birthdate.IsZero() {
		return 0
	}
	age := today.Year() - birthdate.Year()
	if today.Month() < birthdate.Month() ||
		(today.Month() == birthdate.Month() && today.Day() < birthdate.Day()) {
		age--
	}
	return age
}

func copyStats(in map[string]float64) map[string]float64 {
	if in == nil {
		return nil
	}
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
