package controllers

import (
	"fmt"
	"garage/internal/seed"
	"garage/internal/storage"
	"garage/internal/store"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

type HealthController struct {
	store     store.StoreInterface
	loader    seed.LoaderInterface
	slots     storage.SlotStorage
	startTime time.Time
}

type healthResponse struct {
	Status        string         `json:"status"`
	Uptime        string         `json:"uptime"`
	UptimeSeconds float64        `json:"uptime_seconds"`
	Storage       string         `json:"storage"`
	Seeded        bool           `json:"seeded"`
	Records       map[string]int `json:"records"`
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
		Storage:       hc.slots.Driver(),
		Seeded:        hc.loader.Seeded(),
	}

	status := http.StatusOK
	ds, err := hc.store.Load(r.Context())
	if err != nil {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	} else {
		resp.Records = ds.Counts()
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(st store.StoreInterface, loader seed.LoaderInterface, slots storage.SlotStorage) *HealthController {
	return &HealthController{
		store:     st,
		loader:    loader,
		slots:     slots,
		startTime: time.Now(),
	}
}
