package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSpaceCommand creates the space command group.
func NewSpaceCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	cmd := &cobra.Command{
		Use:   "space",
		Short: "Manage spaces",
		Long: `Manage spaces on the knowledge service.

A space is a workspace holding one document collection, one chat history,
and at most one podcast episode.

Examples:
  # List all spaces
  spaces space list

  # Create a new space
  spaces space create "Biology 101"

  # JSON output for scripting
  spaces space list -o json`,
	}

	cmd.AddCommand(newSpaceListCommand(deps))
	cmd.AddCommand(newSpaceCreateCommand(deps))
	return cmd
}

func newSpaceListCommand(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all spaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps)
			if err != nil {
				return err
			}
			c, err := deps.InitClient(cfg)
			if err != nil {
				return err
			}

			spaces, err := c.ListSpaces(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return printOutput(out, cfg.OutputFormat, spaces, func() error {
				if len(spaces) == 0 {
					fmt.Fprintln(out, "No spaces found.")
					return nil
				}
				fmt.Fprintln(out, headerStyle.Render("Spaces"))
				for _, s := range spaces {
					fmt.Fprintf(out, "  %s  %s\n", dimStyle.Render(fmt.Sprintf("#%d", s.ID)), s.Name)
				}
				return nil
			})
		},
	}
}

func newSpaceCreateCommand(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps)
			if err != nil {
				return err
			}
			c, err := deps.InitClient(cfg)
			if err != nil {
				return err
			}

			space, err := c.CreateSpace(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return printOutput(out, cfg.OutputFormat, space, func() error {
				fmt.Fprintf(out, "Created space %s (#%d)\n", space.Name, space.ID)
				return nil
			})
		},
	}
}
