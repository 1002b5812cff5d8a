package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Ingest command flags.
var (
	ingestSpaceID int64
)

// NewIngestCommand creates the ingest command.
func NewIngestCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest uploaded documents",
		Long: `Trigger ingestion of a space's uploaded documents.

Ingestion indexes the documents so that questions and podcast generation
can draw on them. Running it again after further uploads is safe.

Examples:
  spaces ingest --space 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps)
			if err != nil {
				return err
			}
			c, err := deps.InitClient(cfg)
			if err != nil {
				return err
			}

			if err := c.TriggerIngestion(cmd.Context(), ingestSpaceID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ingestion started for space %d\n", ingestSpaceID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&ingestSpaceID, "space", 0, "space ID")
	_ = cmd.MarkFlagRequired("space")
	return cmd
}
