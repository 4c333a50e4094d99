package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"proofreader/api/internal/bootstrap"
	"proofreader/api/internal/proofread"
)

var checkEngine string

var checkCmd = &cobra.Command{
	Use:   "check [text]",
	Short: "Proofread text from the arguments or stdin and print the result as JSON",
	Example: `  proofreader check "Their going too the store."
  echo "i has a apple" | proofreader check --engine openai`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		input, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := bootstrap.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, false)

		engs, closeEngines, err := bootstrap.Engines(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeEngines()

		ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
		defer cancel()

		out, err := proofread.New(engs, proofread.WithLogger(log)).ProofreadWith(ctx, checkEngine, input)
		if err != nil {
			return fmt.Errorf("%s: %w", proofread.Kind(err), err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(out)
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkEngine, "engine", "", "engine name (default: DEFAULT_ENGINE)")
}

// readInput joins args, or reads stdin when there are none. The text is
// otherwise passed through unchanged.
func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if f, ok := stdin.(*os.File); ok {
		if st, err := f.Stat(); err == nil && st.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("no input: pass text as an argument or pipe it on stdin")
		}
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if len(b) == 0 {
		return "", fmt.Errorf("no input: stdin is empty")
	}
	return string(b), nil
}
