package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openspaces/spaces-cli/pkg/session"
)

// Ask command flags.
var (
	askSpaceID int64
)

// NewAskCommand creates the ask command.
func NewAskCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a one-shot question against a space",
		Long: `Ask a single question against a space's ingested documents.

The answer is printed and the command exits. For a continuing conversation
use 'spaces chat'.

Examples:
  spaces ask --space 3 "What is mitosis?"
  spaces ask --space 3 "Summarize chapter 2" -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps)
			if err != nil {
				return err
			}
			c, err := deps.InitClient(cfg)
			if err != nil {
				return err
			}

			chat := session.NewChatSession(askSpaceID, c, newLogger(cfg))
			if err := chat.SubmitQuery(cmd.Context(), strings.Join(args, " ")); err != nil {
				return err
			}

			msgs := chat.Messages()
			answer := msgs[len(msgs)-1]

			out := cmd.OutOrStdout()
			return printOutput(out, cfg.OutputFormat, answer, func() error {
				fmt.Fprintln(out, answer.Content)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&askSpaceID, "space", 0, "space ID")
	_ = cmd.MarkFlagRequired("space")
	return cmd
}
