package telegram

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/apex/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"breedlens/internal/breed"
	"breedlens/internal/metrics"
	"breedlens/internal/util"
)

// acceptPhoto takes the largest rendition of an incoming photo and runs one
// recognition for it. A chat holds a single recognition slot; photos sent
// while it is taken are turned away immediately.
func (r *Router) acceptPhoto(msg tgbotapi.Message) {
	cid := msg.Chat.ID
	if !beginWork(cid) {
		r.send(cid, "⏳ Still working on your previous photo. Send the next one once I reply.")
		return
	}

	ph := msg.Photo[len(msg.Photo)-1]
	r.send(cid, "📷 Photo received. Identifying the breed…")

	go func() {
		defer endWork(cid)
		r.processPhoto(cid, ph.FileID)
	}()
}

func (r *Router) processPhoto(cid int64, fileID string) {
	file, err := r.Bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		r.SendError(cid, err)
		return
	}
	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", r.Bot.Token, file.FilePath)
	imgBytes, err := download(url)
	if err != nil {
		r.SendError(cid, err)
		return
	}

	eng := r.EngManager.Get(cid)
	mime := util.SniffMimeHTTP(imgBytes)
	b64 := base64.StdEncoding.EncodeToString(imgBytes)

	start := time.Now()
	res := breed.Recognize(context.Background(), eng, b64, mime)
	elapsed := time.Since(start)

	metrics.RecognitionsTotal.WithLabelValues(eng.Name(), metrics.Outcome(res.OK())).Inc()
	metrics.RecognitionDurationSeconds.WithLabelValues(eng.Name()).Observe(elapsed.Seconds())

	log.WithFields(log.Fields{
		"chat_id": cid,
		"engine":  eng.Name(),
		"ok":      res.OK(),
		"elapsed": elapsed.String(),
	}).Info("bot.recognize")

	r.SendResult(cid, res)
}

func download(url string) ([]byte, error) {
	resp, err := httpClient().Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(resp.Body)
}

func httpClient() *http.Client {
	return &http.Client{Timeout: 60 * time.Second}
}
