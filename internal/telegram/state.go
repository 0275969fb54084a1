package telegram

import "sync"

var inflight sync.Map // chatID -> struct{}

// beginWork marks chatID busy. It returns false when a recognition is
// already running for that chat.
func beginWork(chatID int64) bool {
	_, loaded := inflight.LoadOrStore(chatID, struct{}{})
	return !loaded
}

func endWork(chatID int64) { inflight.Delete(chatID) }
