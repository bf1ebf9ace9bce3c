package server

import (
	"net/http"
	"time"
)

// HealthHandler reports liveness and whether Spotify credentials are present.
type HealthHandler struct {
	configured func() bool
	now        func() time.Time
}

func NewHealthHandler(configured func() bool, now func() time.Time) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{configured: configured, now: now}
}

type healthBody struct {
	Status            string `json:"status"`
	Message           string `json:"message"`
	Timestamp         string `json:"timestamp"`
	SpotifyConfigured bool   `json:"spotify_configured"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{
		Status:            "OK",
		Message:           "Listening Tracker server is running!",
		Timestamp:         h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		SpotifyConfigured: h.configured != nil && h.configured(),
	})
}
