// internal/cli/chat.go
package ragai

import (
	"github.com/spf13/cobra"

	"github.com/danielaScattarella/rag-ai/internal/chat"
)

// chatCmd starts the interactive chat TUI over the indexed catalog.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session over the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		p, err := buildPipeline(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer p.close()

		chat.Run(cmd.Context(), cfg, p.composer)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
