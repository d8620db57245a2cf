// internal/cli/retrieve.go
package ragai

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
)

// retrieveCmd previews retrieval for a query without calling the chat model.
var retrieveCmd = &cobra.Command{
	Use:   "retrieve <query>",
	Short: "Preview catalog retrieval and ranking for a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return fmt.Errorf("query is required")
		}

		cfg := GetConfig()
		p, err := buildPipeline(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer p.close()

		status := func(format string, args ...any) {
			msg := fmt.Sprintf(format, args...)
			log.Print(msg)
			fmt.Println(msg)
		}

		status("[RAG] query: %s", query)
		status("[RAG] topK: %d", cfg.TopK)

		units, logs, err := p.retriever.RetrieveWithLogs(cmd.Context(), query, cfg.TopK)
		if err != nil {
			return err
		}
		status("[RAG] retrieved %d chunks", len(units))

		for _, entry := range logs {
			status("[RAG] chunk %d score=%.6f source=%s", entry.Rank, entry.Score, entry.Source)
			status("[RAG] chunk %d text: %s", entry.Rank, entry.Snippet)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(retrieveCmd)
}
