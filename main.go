// Package main provides the spaces CLI entry point.
// spaces is the command-line interface for an AI document-assistant service:
// it manages spaces, their documents, question answering, and podcast
// generation from ingested content.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openspaces/spaces-cli/cmd"
	"github.com/openspaces/spaces-cli/pkg/buildinfo"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "spaces",
	Short: "Spaces CLI - document assistant workspaces",
	Long: `spaces is the command-line interface for an AI document assistant.

A space holds a document collection, a chat history, and at most one
generated podcast episode. Upload documents, ingest them, then ask
questions or turn the material into audio.

COMMON WORKFLOWS:
  Create a space:    spaces space create "Biology 101"
  Add material:      spaces doc upload --space 3 notes.pdf  →  spaces ingest --space 3
  Ask questions:     spaces ask --space 3 "What is mitosis?"  |  spaces chat --space 3
  Make a podcast:    spaces podcast generate --space 3  →  spaces podcast play --space 3

DISCOVERY:
  spaces <command> --help    Subcommands, flags, and examples for any command`,
	SilenceUsage: true,
}

// Version command flags.
var versionOutputJSON bool

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the version, commit hash, and build time of the spaces CLI.

Examples:
  spaces version
  spaces version --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionOutputJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(buildinfo.Get())
		}
		fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		return nil
	},
}

func init() {
	cmd.RegisterGlobalFlags(rootCmd)

	versionCmd.Flags().BoolVar(&versionOutputJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(versionCmd)

	rootCmd.AddCommand(cmd.NewSpaceCommand(nil))
	rootCmd.AddCommand(cmd.NewDocCommand(nil))
	rootCmd.AddCommand(cmd.NewIngestCommand(nil))
	rootCmd.AddCommand(cmd.NewAskCommand(nil))
	rootCmd.AddCommand(cmd.NewChatCommand(nil))
	rootCmd.AddCommand(cmd.NewPodcastCommand(nil))
	rootCmd.AddCommand(cmd.NewAuthCommand())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
