package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// Doc command flags.
var (
	docSpaceID int64
)

// NewDocCommand creates the doc command group.
func NewDocCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Manage space documents",
		Long: `Manage the document collection of a space.

Uploaded documents become part of the space but are not searchable until
ingestion runs ('spaces ingest').

Examples:
  # List documents in space 3
  spaces doc list --space 3

  # Upload one or more files
  spaces doc upload --space 3 notes.pdf syllabus.pdf`,
	}

	cmd.PersistentFlags().Int64Var(&docSpaceID, "space", 0, "space ID")
	_ = cmd.MarkPersistentFlagRequired("space")

	cmd.AddCommand(newDocListCommand(deps))
	cmd.AddCommand(newDocUploadCommand(deps))
	return cmd
}

func newDocListCommand(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List documents in a space",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps)
			if err != nil {
				return err
			}
			c, err := deps.InitClient(cfg)
			if err != nil {
				return err
			}

			docs, err := c.ListDocuments(cmd.Context(), docSpaceID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return printOutput(out, cfg.OutputFormat, docs, func() error {
				fmt.Fprintln(out, headerStyle.Render(docs.SpaceName))
				if len(docs.Documents) == 0 {
					fmt.Fprintln(out, "  (no documents)")
					return nil
				}
				for _, name := range docs.Documents {
					fmt.Fprintf(out, "  %s\n", name)
				}
				return nil
			})
		},
	}
}

func newDocUploadCommand(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload documents to a space",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps)
			if err != nil {
				return err
			}
			c, err := deps.InitClient(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("opening %s: %w", path, err)
				}

				name := filepath.Base(path)
				err = c.UploadDocument(cmd.Context(), docSpaceID, name, f)
				f.Close()
				if err != nil {
					return fmt.Errorf("uploading %s: %w", name, err)
				}
				fmt.Fprintf(out, "Uploaded %s\n", name)
			}

			fmt.Fprintln(out, dimStyle.Render("Run 'spaces ingest --space "+
				fmt.Sprintf("%d", docSpaceID)+"' to make the documents searchable."))
			return nil
		},
	}
}
