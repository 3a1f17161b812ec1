package controllers

import (
	"fmt"
	"net/http"
	"odh/internal/providers"
	"odh/internal/structures"
	"time"

	json "github.com/goccy/go-json"
)

type HealthController struct {
	conf      *structures.Config
	cache     providers.CacheProviderInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	CacheEnabled  bool    `json:"cache_enabled"`
	CacheEntries  int64   `json:"cache_entries"`
	Upstream      string  `json:"upstream"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		CacheEnabled:  hc.conf.Cache.Enabled,
		CacheEntries:  hc.cache.Count(),
		Upstream:      hc.conf.Upstream.BaseURL,
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// Info serves the root endpoint: service identity plus an index of the
// API for people poking at it by hand.
func (hc *HealthController) Info(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"service": hc.conf.AppName,
		"endpoints": map[string]string{
			"health":         "/health",
			"user_courses":   "/users/{username}",
			"active_staff":   "/users/{username}/active-staff",
			"user_status":    "/users/{username}/status",
			"course_details": "/courses/{school}/{slug}",
			"course_users":   "/courses/{school}/{slug}/users",
		},
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(conf *structures.Config, cache providers.CacheProviderInterface) *HealthController {
	return &HealthController{
		conf:      conf,
		cache:     cache,
		startTime: time.Now(),
	}
}
