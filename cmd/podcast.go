package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/openspaces/spaces-cli/client"
	"github.com/openspaces/spaces-cli/config"
	"github.com/openspaces/spaces-cli/pkg/audio"
	"github.com/openspaces/spaces-cli/pkg/transcript"
)

// Podcast command flags.
var (
	podcastSpaceID int64
	podcastFocus   string
)

// NewPodcastCommand creates the podcast command group.
func NewPodcastCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}

	cmd := &cobra.Command{
		Use:   "podcast",
		Short: "Generate and play space podcasts",
		Long: `Generate and play a podcast episode from a space's ingested documents.

A space holds at most one episode; generating a new one replaces it.

Examples:
  # Show the current episode's transcript
  spaces podcast show --space 3

  # Generate a new episode, optionally focused on a topic
  spaces podcast generate --space 3 --focus "cell division"

  # Play the current episode
  spaces podcast play --space 3`,
	}

	cmd.PersistentFlags().Int64Var(&podcastSpaceID, "space", 0, "space ID")
	_ = cmd.MarkPersistentFlagRequired("space")

	cmd.AddCommand(newPodcastShowCommand(deps))
	cmd.AddCommand(newPodcastGenerateCommand(deps))
	cmd.AddCommand(newPodcastPlayCommand(deps))
	return cmd
}

func newPodcastShowCommand(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current episode",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps)
			if err != nil {
				return err
			}
			c, err := deps.InitClient(cfg)
			if err != nil {
				return err
			}

			ep, err := c.FetchLatestPodcast(cmd.Context(), podcastSpaceID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if ep == nil {
				fmt.Fprintln(out, "No podcast episode yet. Generate one with 'spaces podcast generate'.")
				return nil
			}
			return outputEpisode(cmd, cfg.OutputFormat, ep)
		},
	}
}

func newPodcastGenerateCommand(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new episode",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps)
			if err != nil {
				return err
			}
			c, err := deps.InitClient(cfg)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("Generating podcast, this can take a while..."))
			ep, err := c.GeneratePodcast(cmd.Context(), podcastSpaceID, podcastFocus)
			if err != nil {
				return err
			}
			return outputEpisode(cmd, cfg.OutputFormat, ep)
		},
	}

	cmd.Flags().StringVar(&podcastFocus, "focus", "", "topic to focus the episode on")
	return cmd
}

// outputEpisode renders an episode's audio location and transcript.
func outputEpisode(cmd *cobra.Command, format config.OutputFormat, ep *client.PodcastEpisode) error {
	out := cmd.OutOrStdout()
	return printOutput(out, format, ep, func() error {
		fmt.Fprintln(out, headerStyle.Render("Audio: ")+ep.AudioURL)
		fmt.Fprintln(out)
		renderTranscript(out, transcript.Parse(ep.Transcript))
		return nil
	})
}

func newPodcastPlayCommand(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the current episode",
		Long: `Play the current episode through an external audio player.

The player command comes from the config (player_command) or is auto-detected
from afplay, mpv, or ffplay. During playback:

  p          Pause or resume
  s <sec>    Seek to an offset in seconds
  q          Quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(deps)
			if err != nil {
				return err
			}
			c, err := deps.InitClient(cfg)
			if err != nil {
				return err
			}

			ep, err := c.FetchLatestPodcast(cmd.Context(), podcastSpaceID)
			if err != nil {
				return err
			}
			if ep == nil {
				return fmt.Errorf("space %d has no podcast episode yet", podcastSpaceID)
			}
			return runPlayback(cmd, cfg, ep)
		},
	}
}

// runPlayback drives the audio player with a small line-based control loop.
func runPlayback(cmd *cobra.Command, cfg *config.CLIConfig, ep *client.PodcastEpisode) error {
	out := cmd.OutOrStdout()
	log := newLogger(cfg)

	var player *audio.Player
	ended := make(chan struct{})
	var endOnce sync.Once
	dev, err := audio.NewCommandDevice(cfg.PlayerCommand, func(ev audio.Event) {
		if player != nil {
			player.HandleEvent(ev)
		}
		if ev.Kind == audio.EventEnded {
			endOnce.Do(func() { close(ended) })
		}
	}, log)
	if err != nil {
		return err
	}
	defer dev.Close()

	player = audio.NewPlayer(dev, log)
	if err := player.Load(ep.AudioURL); err != nil {
		return err
	}
	if err := player.TogglePlayPause(); err != nil {
		return err
	}
	fmt.Fprintln(out, dimStyle.Render("Playing. p=pause/resume, s <sec>=seek, q=quit"))

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-ended:
			fmt.Fprintln(out, "Playback finished.")
			return nil

		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := runPlaybackCommand(out, player, line); quit {
				return nil
			}
		}
	}
}

// runPlaybackCommand handles one control line. It returns true on quit.
func runPlaybackCommand(out io.Writer, player *audio.Player, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		renderPlayerState(out, player.State())
		return false
	}

	switch fields[0] {
	case "q", "quit":
		return true

	case "p":
		if err := player.TogglePlayPause(); err != nil {
			fmt.Fprintln(out, errorStyle.Render(err.Error()))
			break
		}
		renderPlayerState(out, player.State())

	case "s":
		if len(fields) < 2 {
			fmt.Fprintln(out, "usage: s <seconds>")
			break
		}
		sec, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			fmt.Fprintln(out, "usage: s <seconds>")
			break
		}
		if err := player.Seek(sec); err != nil {
			fmt.Fprintln(out, errorStyle.Render(err.Error()))
			break
		}
		renderPlayerState(out, player.State())

	default:
		fmt.Fprintln(out, "p=pause/resume, s <sec>=seek, q=quit")
	}
	return false
}
