package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"proofreader/api/internal/bootstrap"
	"proofreader/api/internal/config"
	"proofreader/api/internal/proofread"
	"proofreader/api/internal/telegram"
)

func main() {
	cfgFile := flag.String("config", "", "config file")
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.TelegramBotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is empty")
	}
	logger := bootstrap.NewLogger(os.Stdout, cfg.LogLevel, true)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	engs, closeEngines, err := bootstrap.Engines(ctx, cfg)
	if err != nil {
		log.Fatalf("engines: %v", err)
	}
	defer closeEngines()

	rec, db, err := bootstrap.Recorder(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}
	bot.Debug = false

	r := &telegram.Router{
		Bot:         bot,
		Proofreader: proofread.New(engs, proofread.WithRecorder(rec), proofread.WithLogger(logger)),
		Timeout:     cfg.RequestTimeout,
		Log:         logger,
	}

	// tgbotapi.ListenForWebhook registers on DefaultServeMux, so healthz lives there too.
	http.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if db != nil {
			pctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(pctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("db: not ok\n" + err.Error()))
				return
			}
		}
		_, _ = w.Write([]byte("ok"))
	})

	addr := net.JoinHostPort("0.0.0.0", cfg.Port)
	if webhookURL := strings.TrimSpace(cfg.WebhookURL); webhookURL != "" {
		startWebhookMode(ctx, addr, bot, r, webhookURL, logger)
	} else {
		startPollingMode(ctx, addr, bot, r, logger)
	}
}

func startWebhookMode(ctx context.Context, addr string, bot *tgbotapi.BotAPI, r *telegram.Router, baseURL string, logger *slog.Logger) {
	path := "/webhook/" + shortHash(bot.Token)
	public := strings.TrimRight(baseURL, "/") + path

	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		log.Fatal(err)
	}
	wh.DropPendingUpdates = true
	if _, err := bot.Request(wh); err != nil {
		log.Fatal(err)
	}

	updates := bot.ListenForWebhook(path)
	go func() {
		for upd := range updates {
			go r.HandleUpdate(upd)
		}
		logger.Info("webhook updates channel closed")
	}()

	srv := &http.Server{Addr: addr, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	logger.Info("webhook mode", "addr", addr, "path", path)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func startPollingMode(ctx context.Context, addr string, bot *tgbotapi.BotAPI, r *telegram.Router, logger *slog.Logger) {
	go func() {
		logger.Info("health server listening", "addr", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			logger.Error("health server", "err", err)
		}
	}()

	runPolling(ctx, bot, logger, func(upd tgbotapi.Update) {
		go r.HandleUpdate(upd)
	})
}

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

func retryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") {
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 2 * time.Second
	}
	return 1 * time.Second
}

func runPolling(ctx context.Context, bot *tgbotapi.BotAPI, logger *slog.Logger, handle func(tgbotapi.Update)) {
	offset := 0
	const (
		baseDelay = 1 * time.Second
		maxDelay  = 15 * time.Second
	)

	for {
		select {
		case <-ctx.Done():
			logger.Info("polling: context cancelled")
			return
		default:
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = 30

		updates, err := bot.GetUpdates(u)
		if err != nil {
			d := min(max(retryDelayFromError(err), baseDelay), maxDelay)
			logger.Warn("polling error", "err", err, "retry_in", d)
			sleep(ctx, d)
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			handle(upd)
		}

		if len(updates) == 0 {
			sleep(ctx, 200*time.Millisecond)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// shortHash is a stable FNV-1a hex of the token for the webhook path.
func shortHash(s string) string {
	h := uint64(1469598103934665603)
	const prime = 1099511628211
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	const hexdigits = "0123456789abcdef"
	out := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		out[i] = hexdigits[h&0xF]
		h >>= 4
	}
	return string(out)
}
