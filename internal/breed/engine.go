package breed

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Engine is one recognition backend. Identify sends a single request carrying
// the shared instruction and the image, and returns the model's raw JSON text.
// Implementations must be safe for concurrent use.
type Engine interface {
	Name() string
	GetModel() string
	Identify(ctx context.Context, image []byte, mimeType string) (string, error)
}

type Engines struct {
	Gemini Engine
	OpenAI Engine
	Stub   Engine
}

func (e *Engines) Get(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gemini":
		if e.Gemini == nil {
			return nil, errors.New("gemini engine is not configured")
		}
		return e.Gemini, nil
	case "gpt", "openai":
		if e.OpenAI == nil {
			return nil, errors.New("openai engine is not configured")
		}
		return e.OpenAI, nil
	case "stub":
		if e.Stub == nil {
			return nil, errors.New("stub engine is not configured")
		}
		return e.Stub, nil
	default:
		return nil, errors.New("unknown engine; use 'gemini', 'openai' or 'stub'")
	}
}

// List returns the configured engines in a stable order.
func (e *Engines) List() []Engine {
	out := make([]Engine, 0, 3)
	for _, eng := range []Engine{e.Gemini, e.OpenAI, e.Stub} {
		if eng != nil {
			out = append(out, eng)
		}
	}
	return out
}

// Manager keeps a per-chat engine choice with a shared default.
type Manager struct {
	def Engine
	m   sync.Map // chatID -> Engine
}

func NewManager(defaultEngine Engine) *Manager {
	return &Manager{def: defaultEngine}
}

func (m *Manager) Get(chatID int64) Engine {
	if v, ok := m.m.Load(chatID); ok {
		return v.(Engine)
	}
	return m.def
}

func (m *Manager) Set(chatID int64, e Engine) {
	m.m.Store(chatID, e)
}
