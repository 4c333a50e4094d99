package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"proofreader/api/internal/config"
	"proofreader/api/internal/store"
)

var (
	failuresKind  string
	failuresLimit int
	failuresPurge time.Duration
)

var failuresCmd = &cobra.Command{
	Use:   "failures",
	Short: "List or purge rejected model outputs kept in the diagnostics store",
	Example: `  proofreader failures --kind bounds --limit 5
  proofreader failures --purge 720h`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL", config.ErrMissing)
		}
		db, err := store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		repo := store.NewFailureRepo(db)

		if failuresPurge > 0 {
			n, err := repo.PurgeOlderThan(ctx, failuresPurge)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d row(s)\n", n)
			return nil
		}

		rows, err := repo.Recent(ctx, failuresKind, failuresLimit)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTIME\tENGINE\tKIND\tERROR")
		for _, r := range rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.CreatedAt.Format(time.RFC3339), r.Engine, r.Kind, r.Error)
		}
		return tw.Flush()
	},
}

func init() {
	failuresCmd.Flags().StringVar(&failuresKind, "kind", "", "filter by kind: malformed_output or bounds")
	failuresCmd.Flags().IntVar(&failuresLimit, "limit", 20, "max rows")
	failuresCmd.Flags().DurationVar(&failuresPurge, "purge", 0, "delete rows older than this instead of listing")
}
