// Package telegram is a chat front-end: every text message is proofread and
// answered with the list of corrections.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"proofreader/api/internal/proofread"
)

// maxMessageLen keeps replies under Telegram's 4096 character limit.
const maxMessageLen = 3900

// Sender is satisfied by *tgbotapi.BotAPI.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Router struct {
	Bot         Sender
	Proofreader *proofread.Proofreader
	Timeout     time.Duration
	Log         *slog.Logger

	// chat id -> engine name chosen with /engine
	engines sync.Map
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	if upd.Message.IsCommand() {
		r.HandleCommand(upd)
		return
	}
	if strings.TrimSpace(upd.Message.Text) == "" {
		return
	}
	r.proofread(upd.Message.Chat.ID, upd.Message.MessageID, upd.Message.Text)
}

func (r *Router) HandleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start", "help":
		r.send(cid, "Send me any text and I will list its grammar and spelling mistakes.\nCommands: /health, /engine [name]")
	case "health":
		r.send(cid, "✅ OK")
	case "engine":
		r.handleEngineCommand(cid, upd.Message.CommandArguments())
	default:
		r.send(cid, "Unknown command")
	}
}

func (r *Router) handleEngineCommand(chatID int64, args string) {
	engs := r.Proofreader.Engines()
	name := strings.ToLower(strings.TrimSpace(args))
	if name == "" {
		r.send(chatID, fmt.Sprintf("Current engine: %s\nAvailable: %s", r.engineFor(chatID), strings.Join(engs.Names(), " | ")))
		return
	}
	eng, err := engs.GetEngine(name)
	if err != nil {
		r.send(chatID, "❌ "+err.Error())
		return
	}
	r.engines.Store(chatID, eng.Name())
	r.send(chatID, fmt.Sprintf("✅ Engine: %s (%s)", eng.Name(), eng.Model()))
}

func (r *Router) engineFor(chatID int64) string {
	if v, ok := r.engines.Load(chatID); ok {
		return v.(string)
	}
	return r.Proofreader.Engines().Default
}

func (r *Router) proofread(chatID int64, replyTo int, text string) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, err := r.Proofreader.ProofreadWith(ctx, r.engineFor(chatID), text)
	if err != nil {
		r.logger().Warn("telegram: proofread failed", "chat_id", chatID, "kind", proofread.Kind(err), "err", err)
		r.reply(chatID, replyTo, errorText(err))
		return
	}
	r.reply(chatID, replyTo, Render(text, out))
}

func errorText(err error) string {
	switch {
	case errors.Is(err, proofread.ErrUpstream):
		return "⚠️ The language model is unavailable right now, try again later."
	case errors.Is(err, proofread.ErrMalformedOutput), errors.Is(err, proofread.ErrBounds):
		return "⚠️ The language model returned an unusable answer, try again."
	default:
		return "⚠️ Error: " + err.Error()
	}
}

func (r *Router) send(chatID int64, text string) {
	r.reply(chatID, 0, text)
}

func (r *Router) reply(chatID int64, replyTo int, text string) {
	msg := tgbotapi.NewMessage(chatID, clamp(text, maxMessageLen))
	msg.ReplyToMessageID = replyTo
	if _, err := r.Bot.Send(msg); err != nil {
		r.logger().Error("telegram: send", "chat_id", chatID, "err", err)
	}
}

func (r *Router) logger() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}

// clamp cuts s to at most max runes.
func clamp(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max]) + "…"
}
