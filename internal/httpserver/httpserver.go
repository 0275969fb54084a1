// Package httpserver exposes the bot's plain HTTP surface: health, metrics
// and, in webhook mode, the Telegram webhook registered on the default mux.
package httpserver

import (
	"net/http"

	"github.com/apex/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Start blocks serving on addr. The webhook handler, when enabled, is
// attached to http.DefaultServeMux before this is called.
func Start(addr, banner string) error {
	http.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(banner))
	})

	log.Infof("http server listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}
