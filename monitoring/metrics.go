package monitoring

import (
	"context"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_logins_total",
			Help: "Total login attempts by outcome",
		},
		[]string{"status"},
	)

	bookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_bookings_created_total",
			Help: "Total booking rows created",
		},
	)

	calendarArtifacts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_calendar_artifacts_total",
			Help: "Total calendar artifacts generated and served",
		},
	)

	mediaUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_media_uploads_total",
			Help: "Total staged media uploads by kind and outcome",
		},
		[]string{"kind", "status"},
	)

	collectionRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "portal_collection_records",
			Help: "Current record count per backend collection",
		},
		[]string{"collection"},
	)
)

// TrackLogin records a login attempt outcome (success, failure, invalid,
// throttled).
func TrackLogin(status string) {
	logins.WithLabelValues(status).Inc()
}

// TrackBooking records a created booking row.
func TrackBooking() {
	bookingsCreated.Inc()
}

// TrackCalendarArtifact records a generated calendar download.
func TrackCalendarArtifact() {
	calendarArtifacts.Inc()
}

// TrackMediaUpload records a staged upload attempt.
func TrackMediaUpload(kind, status string) {
	mediaUploads.WithLabelValues(kind, status).Inc()
}

// Monitor periodically samples record counts for the portal collections.
type Monitor struct {
	app      core.App
	interval time.Duration
}

var portalCollections = []string{"events", "bookings", "audioGuides", "directory", "infoBoxes", "users"}

func NewMonitor(app core.App, interval time.Duration) *Monitor {
	return &Monitor{app: app, interval: interval}
}

// Run samples until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.collect()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.collect()
		}
	}
}

func (m *Monitor) collect() {
	for _, name := range portalCollections {
		total, err := m.app.CountRecords(name)
		if err != nil {
			continue
		}
		collectionRecords.WithLabelValues(name).Set(float64(total))
	}
}
