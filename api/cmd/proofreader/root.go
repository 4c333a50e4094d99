package main

import (
	"github.com/spf13/cobra"

	"proofreader/api/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "proofreader",
	Short: "Grammar and spelling checker backed by a language model",
	Long: `proofreader sends text to a language model with a fixed proofreading
instruction and a structured response schema, then validates every returned
correction against the original text before handing it out.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml); env vars and .env are always read")

	rootCmd.AddCommand(serveCmd, checkCmd, schemaCmd, failuresCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
