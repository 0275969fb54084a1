package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// RecognitionsTotal counts recognition calls by engine and result arm.
	RecognitionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "breedlens",
		Subsystem: "recognize",
		Name:      "recognitions_total",
		Help:      "Total number of breed recognition calls, labeled by engine and result arm.",
	}, []string{"engine", "result"})

	// RecognitionDurationSeconds is end-to-end time per recognition call.
	RecognitionDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "breedlens",
		Subsystem: "recognize",
		Name:      "recognition_duration_seconds",
		Help:      "End-to-end time of one recognition call, including the upstream model round trip.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 60, 120},
	}, []string{"engine"})

	// TelegramUpdatesTotal counts bot updates that reached the router.
	TelegramUpdatesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "breedlens",
		Subsystem: "bot",
		Name:      "telegram_updates_total",
		Help:      "Total number of Telegram updates handled by the bot.",
	})
)

// Register registers the collectors with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			RecognitionsTotal,
			RecognitionDurationSeconds,
			TelegramUpdatesTotal,
		)
	})
}

// Outcome maps a result arm to its metric label.
func Outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
