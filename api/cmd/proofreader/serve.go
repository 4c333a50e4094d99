package main

import (
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"proofreader/api/internal/bootstrap"
	"proofreader/api/internal/handle"
	"proofreader/api/internal/httpserver"
	"proofreader/api/internal/proofread"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API.

Routes:
  POST /proofread, /v1/proofread   {"input": "...", "llm_name": "gemini|openai"}
  GET  /healthz
  GET  /v1/schema
  GET  /v1/engines
  GET  /metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := bootstrap.NewLogger(os.Stdout, cfg.LogLevel, true)

		engs, closeEngines, err := bootstrap.Engines(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeEngines()

		rec, db, err := bootstrap.Recorder(ctx, cfg, log)
		if err != nil {
			return err
		}
		opts := handle.Options{
			Timeout:      cfg.RequestTimeout,
			MaxBodyBytes: cfg.MaxBodyBytes,
			Logger:       log,
		}
		if db != nil {
			defer db.Close()
			opts.DB = db
		}

		pr := proofread.New(engs, proofread.WithRecorder(rec), proofread.WithLogger(log))
		h := handle.New(pr, opts)

		srv := &http.Server{
			Addr:              net.JoinHostPort("", cfg.Port),
			Handler:           httpserver.NewRouter(h, httpserver.Options{CORSOrigins: cfg.CORSOrigins, Logger: log}),
			ReadHeaderTimeout: 10 * time.Second,
			// the upstream call may take up to RequestTimeout
			WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		}
		log.Info("engines ready", "default", engs.Default, "available", engs.Names())
		return httpserver.Serve(ctx, srv, log)
	},
}
