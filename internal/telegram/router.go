package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"breedlens/internal/breed"
	"breedlens/internal/metrics"
)

type Router struct {
	Bot        *tgbotapi.BotAPI
	Engines    *breed.Engines
	EngManager *breed.Manager
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	metrics.TelegramUpdatesTotal.Inc()

	if upd.CallbackQuery != nil {
		r.handleCallback(*upd.CallbackQuery)
		return
	}
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		r.handleCommand(cid, upd.Message)
		return
	}
	if len(upd.Message.Photo) > 0 {
		r.acceptPhoto(*upd.Message)
		return
	}
	if upd.Message.Text != "" {
		r.send(cid, "Send me a photo of a cow to identify its breed. /help for commands.")
	}
}

func (r *Router) handleCommand(cid int64, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		r.send(cid, "Hi! "+helpText())
	case "help":
		r.send(cid, helpText())
	case "health":
		r.send(cid, "✅ OK")
	case "engine":
		r.handleEngineCommand(cid, msg.Text)
	default:
		r.send(cid, "Unknown command. /help for the list.")
	}
}

// handleEngineCommand shows the current engine with a picker, or switches
// directly when a name is given:
//
//	/engine
//	/engine gemini
//	/engine gpt
//	/engine stub
func (r *Router) handleEngineCommand(cid int64, cmd string) {
	args := strings.Fields(strings.TrimSpace(strings.TrimPrefix(cmd, "/engine")))
	if len(args) == 0 {
		cur := r.EngManager.Get(cid)
		msg := tgbotapi.NewMessage(cid, "Current engine: "+cur.Name()+" ("+cur.GetModel()+")\nPick another:")
		msg.ReplyMarkup = makeEngineKeyboard(r.engineNames())
		_, _ = r.Bot.Send(msg)
		return
	}
	r.switchEngine(cid, strings.ToLower(args[0]))
}

func (r *Router) switchEngine(cid int64, name string) {
	eng, err := r.Engines.Get(name)
	if err != nil {
		r.send(cid, "❌ "+err.Error())
		return
	}
	r.EngManager.Set(cid, eng)
	r.send(cid, "✅ Engine: "+eng.Name()+" ("+eng.GetModel()+")")
}

func (r *Router) engineNames() []string {
	var names []string
	for _, e := range r.Engines.List() {
		names = append(names, e.Name())
	}
	return names
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	_, _ = r.Bot.Send(msg)
}

func (r *Router) SendResult(chatID int64, res breed.Result) {
	if !res.OK() {
		r.send(chatID, "⚠️ "+res.Err)
		return
	}
	msg := tgbotapi.NewMessage(chatID, breedCard(res))
	msg.ParseMode = "Markdown"
	_, _ = r.Bot.Send(msg)
}

func (r *Router) SendError(chatID int64, err error) {
	r.send(chatID, "⚠️ "+err.Error())
}
