package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"breedlens/internal/breed"
	"breedlens/internal/config"
	"breedlens/internal/metrics"
	"breedlens/internal/middleware"
)

type Handler struct {
	cfg  *config.Config
	engs *breed.Engines
}

func New(cfg *config.Config, engs *breed.Engines) *Handler {
	return &Handler{cfg: cfg, engs: engs}
}

// RecognizeRequest is the POST /api/v1/recognize body. Image carries the
// base64 payload, optionally as a data URL.
type RecognizeRequest struct {
	Image    string `json:"image" binding:"required"`
	MimeType string `json:"mime_type"`
	Engine   string `json:"engine"`
}

// Recognize runs one identification and always answers 200 with a result,
// success or failure arm alike. 400 is reserved for requests the service
// cannot even hand to an engine.
func (h *Handler) Recognize(c *gin.Context) {
	var req RecognizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: image is required"})
		return
	}

	name := strings.TrimSpace(req.Engine)
	if name == "" {
		name = h.cfg.DefaultEngine
	}
	eng, err := h.engs.Get(name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	res := breed.Recognize(c.Request.Context(), eng, req.Image, req.MimeType)
	elapsed := time.Since(start)

	metrics.RecognitionsTotal.WithLabelValues(eng.Name(), metrics.Outcome(res.OK())).Inc()
	metrics.RecognitionDurationSeconds.WithLabelValues(eng.Name()).Observe(elapsed.Seconds())

	log.WithFields(log.Fields{
		"request_id": c.GetString(middleware.RequestIDKey),
		"engine":     eng.Name(),
		"ok":         res.OK(),
		"elapsed":    elapsed.String(),
	}).Info("recognize.request")

	c.JSON(http.StatusOK, res)
}

type engineInfo struct {
	Name    string `json:"name"`
	Model   string `json:"model"`
	Default bool   `json:"default"`
}

// Engines lists the engines this instance can route to.
func (h *Handler) Engines(c *gin.Context) {
	var out []engineInfo
	for _, e := range h.engs.List() {
		out = append(out, engineInfo{
			Name:    e.Name(),
			Model:   e.GetModel(),
			Default: e.Name() == h.cfg.DefaultEngine,
		})
	}
	c.JSON(http.StatusOK, gin.H{"engines": out})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "breedlens",
	})
}
