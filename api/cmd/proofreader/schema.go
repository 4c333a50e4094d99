package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"proofreader/api/internal/proofread/types"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema the model output must satisfy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var buf bytes.Buffer
		if err := json.Indent(&buf, types.JSONSchema(), "", "  "); err != nil {
			return err
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), buf.String())
		return err
	},
}
