// internal/cli/ask.go
package ragai

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var answerHeading = color.New(color.FgGreen, color.Bold).SprintFunc()
var sourceHeading = color.New(color.FgCyan).SprintFunc()

// askCmd answers a single question against the indexed catalog and exits.
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask one question against the earthquake catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(strings.Join(args, " "))
		if question == "" {
			return fmt.Errorf("question is required")
		}

		p, err := buildPipeline(cmd.Context(), GetConfig())
		if err != nil {
			return err
		}
		defer p.close()

		result, err := p.composer.Answer(cmd.Context(), question)
		if err != nil {
			return err
		}

		fmt.Println(answerHeading("Risposta:"))
		fmt.Println(result.Answer)

		if len(result.SourceDocuments) > 0 {
			seen := make(map[string]struct{})
			var ids []string
			for _, unit := range result.SourceDocuments {
				id := unit.Metadata.EventID
				if id == "" {
					continue
				}
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
			fmt.Println()
			fmt.Println(sourceHeading(fmt.Sprintf("Basata su %d frammenti del catalogo.", len(result.SourceDocuments))))
			if len(ids) > 0 {
				fmt.Println(sourceHeading("Eventi: " + strings.Join(ids, ", ")))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
