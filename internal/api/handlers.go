// ABOUTME: HTTP handlers reading players, load, injuries, and recovery tables.
// ABOUTME: Player routes validate the id and 404 on unknown players.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/harperreed/pitchside/internal/models"
	"github.com/harperreed/pitchside/internal/pipeline"
)

// Handler serves a pipeline result.
type Handler struct {
	res *pipeline.Result
}

// NewHandler creates a handler over res.
func NewHandler(res *pipeline.Result) *Handler {
	return &Handler{res: res}
}

// SeasonsResponse lists the selectable seasons of each chart family.
type SeasonsResponse struct {
	Load     []string `json:"load"`
	Recovery []string `json:"recovery"`
}

// InjuriesResponse carries the availability bands and ACWR markers.
type InjuriesResponse struct {
	Bands   []models.InjuryBand   `json:"bands"`
	Markers []models.InjuryMarker `json:"markers"`
}

// HealthCheck reports liveness.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// Seasons lists load seasons ascending and recovery seasons descending.
func (h *Handler) Seasons(c *gin.Context) {
	RespondOK(c, SeasonsResponse{
		Load:     nonNil(h.res.LoadSeasons()),
		Recovery: nonNil(h.res.RecoverySeasons()),
	})
}

// ListPlayers returns every player resume.
func (h *Handler) ListPlayers(c *gin.Context) {
	RespondOK(c, nonNil(h.res.Players()))
}

// GetPlayer returns one player resume.
func (h *Handler) GetPlayer(c *gin.Context) {
	p, ok := h.player(c)
	if !ok {
		return
	}
	RespondOK(c, p)
}

// LastMatches returns the player's rows among the most recent matches.
func (h *Handler) LastMatches(c *gin.Context) {
	p, ok := h.player(c)
	if !ok {
		return
	}
	RespondOK(c, nonNil(h.res.LastMatches(p.PlayerID)))
}

// Load returns the player's load records, optionally for one season.
func (h *Handler) Load(c *gin.Context) {
	p, ok := h.player(c)
	if !ok {
		return
	}
	RespondOK(c, nonNil(h.res.Load(p.PlayerID, c.Query("season"))))
}

// Injuries returns unavailability bands and ACWR injury markers.
func (h *Handler) Injuries(c *gin.Context) {
	p, ok := h.player(c)
	if !ok {
		return
	}
	season := c.Query("season")
	RespondOK(c, InjuriesResponse{
		Bands:   nonNil(h.res.UnavailabilityBands(p.PlayerID, season)),
		Markers: nonNil(h.res.InjuryMarkers(p.PlayerID, season)),
	})
}

// RecoveryDaily returns the daily recovery pivot.
func (h *Handler) RecoveryDaily(c *gin.Context) {
	p, ok := h.player(c)
	if !ok {
		return
	}
	RespondOK(c, nonNil(h.res.Daily(p.PlayerID, c.Query("season"))))
}

// RecoveryHeatmap returns the monthly heatmap rows.
func (h *Handler) RecoveryHeatmap(c *gin.Context) {
	p, ok := h.player(c)
	if !ok {
		return
	}
	RespondOK(c, nonNil(h.res.Heatmap(p.PlayerID, c.Query("season"))))
}

// RecoveryWeekly returns the weekly recovery means.
func (h *Handler) RecoveryWeekly(c *gin.Context) {
	p, ok := h.player(c)
	if !ok {
		return
	}
	RespondOK(c, nonNil(h.res.Weekly(p.PlayerID, c.Query("season"))))
}

// RecoverySummary returns the trailing 7-day summary.
func (h *Handler) RecoverySummary(c *gin.Context) {
	p, ok := h.player(c)
	if !ok {
		return
	}
	RespondOK(c, nonNil(h.res.Summary(p.PlayerID)))
}

// player resolves the :id parameter, writing the error response itself.
func (h *Handler) player(c *gin.Context) (models.PlayerResume, bool) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, fmt.Errorf("invalid player id %q", raw))
		return models.PlayerResume{}, false
	}
	p, ok := h.res.Resume(id)
	if !ok {
		RespondError(c, http.StatusNotFound, CodeNotFound, errors.New("player not found"))
		return models.PlayerResume{}, false
	}
	return p, true
}

// nonNil keeps empty tables as [] rather than null in JSON.
func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
