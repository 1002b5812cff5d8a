package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openspaces/spaces-cli/credentials"
)

// Auth command flags.
var (
	authServer string
)

// NewAuthCommand creates the auth command group.
func NewAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication",
		Long: `Manage the API key used for knowledge service requests.

The key is stored encrypted in ~/.spaces/credentials.yaml; the encryption
key lives in the system keyring. The SPACES_API_KEY environment variable
takes precedence over the stored key.

Examples:
  spaces auth set-key sk-abc123...
  spaces auth show
  spaces auth clear`,
	}

	cmd.AddCommand(newAuthSetKeyCommand())
	cmd.AddCommand(newAuthShowCommand())
	cmd.AddCommand(newAuthClearCommand())
	return cmd
}

func newAuthSetKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-key <api-key>",
		Short: "Store an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := credentials.NewStore()
			if err != nil {
				return fmt.Errorf("initializing credential store: %w", err)
			}

			creds := &credentials.Credentials{
				APIKey:        args[0],
				ServerAddress: authServer,
			}
			if err := store.Save(creds); err != nil {
				return fmt.Errorf("saving credentials: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Stored API key %s\n", credentials.MaskAPIKey(creds.APIKey))
			if path, err := credentials.CredentialsPath(); err == nil {
				fmt.Fprintln(out, dimStyle.Render("Credentials file: "+path))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&authServer, "server", "", "server address to associate with the key")
	return cmd
}

func newAuthShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored API key (masked)",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := credentials.NewStore()
			if err != nil {
				return fmt.Errorf("initializing credential store: %w", err)
			}

			out := cmd.OutOrStdout()
			creds, err := store.Load()
			if err != nil {
				if errors.Is(err, credentials.ErrNoCredentials) {
					fmt.Fprintln(out, "No API key stored.")
					return nil
				}
				return err
			}

			fmt.Fprintf(out, "API key: %s\n", credentials.MaskAPIKey(creds.APIKey))
			if creds.ServerAddress != "" {
				fmt.Fprintf(out, "Server:  %s\n", creds.ServerAddress)
			}
			fmt.Fprintf(out, "Updated: %s\n", creds.LastUpdated.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func newAuthClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := credentials.NewStore()
			if err != nil {
				return fmt.Errorf("initializing credential store: %w", err)
			}
			if err := store.Delete(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Credentials cleared.")
			return nil
		},
	}
}
