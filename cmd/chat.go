package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openspaces/spaces-cli/pkg/session"
)

// Chat command flags.
var (
	chatSpaceID int64
)

// NewChatCommand creates the interactive chat command.
func NewChatCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open an interactive chat with a space",
		Long: `Open an interactive question-and-answer session against a space.

Each line you type is sent as a question; the answer is printed below it.
Lines starting with / are session commands:

  /docs            List the space's documents
  /upload <file>   Upload a document into the space
  /ingest          Trigger ingestion of uploaded documents
  /quit            Leave the chat

Examples:
  spaces chat --space 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps)
			if err != nil {
				return err
			}
			c, err := deps.InitClient(cfg)
			if err != nil {
				return err
			}

			s, err := session.NewSpaceSession(cmd.Context(), chatSpaceID, c, nil, newLogger(cfg))
			if err != nil {
				return err
			}
			return runChatLoop(cmd, s)
		},
	}

	cmd.Flags().Int64Var(&chatSpaceID, "space", 0, "space ID")
	_ = cmd.MarkFlagRequired("space")
	return cmd
}

// runChatLoop reads lines from the command's input until EOF or /quit.
func runChatLoop(cmd *cobra.Command, s *session.SpaceSession) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s\n",
		headerStyle.Render(s.SpaceName()),
		dimStyle.Render(fmt.Sprintf("%d document(s), /quit to leave", len(s.Documents()))))

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := runChatCommand(cmd, s, line); quit {
				return nil
			}
			continue
		}

		if err := s.Chat.SubmitQuery(cmd.Context(), line); err != nil {
			fmt.Fprintln(out, errorStyle.Render(err.Error()))
			continue
		}
		msgs := s.Chat.Messages()
		fmt.Fprintln(out, msgs[len(msgs)-1].Content)
	}
}

// runChatCommand handles a /-prefixed session command. It returns true when
// the session should end.
func runChatCommand(cmd *cobra.Command, s *session.SpaceSession, line string) bool {
	out := cmd.OutOrStdout()
	fields := strings.Fields(line)

	switch fields[0] {
	case "/quit", "/exit":
		return true

	case "/docs":
		docs := s.Documents()
		if len(docs) == 0 {
			fmt.Fprintln(out, "(no documents)")
			break
		}
		for _, name := range docs {
			fmt.Fprintf(out, "  %s\n", name)
		}

	case "/upload":
		if len(fields) < 2 {
			fmt.Fprintln(out, "usage: /upload <file>")
			break
		}
		path := fields[1]
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render(err.Error()))
			break
		}
		name := filepath.Base(path)
		err = s.UploadDocument(cmd.Context(), name, f)
		f.Close()
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render(err.Error()))
			break
		}
		fmt.Fprintf(out, "Uploaded %s\n", name)

	case "/ingest":
		if err := s.Ingestion.TriggerIngestion(cmd.Context()); err != nil {
			fmt.Fprintln(out, errorStyle.Render(err.Error()))
			break
		}
		fmt.Fprintln(out, "Ingestion started")

	default:
		fmt.Fprintf(out, "unknown command %s\n", fields[0])
	}
	return false
}
