// Package cli implements the sound command line: the daemon itself and
// the one-shot commands that talk to it.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llehouerou/sound/internal/config"
	"github.com/llehouerou/sound/internal/ipc"
)

// options are the persistent flags shared by every command.
type options struct {
	socket     string
	configPath string
}

// load reads the config and applies flag overrides.
func (o *options) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.socket != "" {
		cfg.SocketPath = o.socket
	}
	return cfg, nil
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "sound",
		Short: "Audio playback daemon controlled over a unix socket",
		Long: fmt.Sprintf(`sound plays audio files in the background.

Start the daemon once, then control it from any shell:

  sound daemon &
  sound play ~/music/intro.flac
  sound queue ~/music/next.mp3
  sound current

Daemon commands: %s.
Supported formats: mp3, flac, wav, ogg (vorbis).`, strings.Join(ipc.ActionNames(), ", ")),
		Version:      version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&o.socket, "socket", "", "control socket path (overrides config)")
	root.PersistentFlags().StringVar(&o.configPath, "config", "", "config file loaded after the default locations")

	root.AddCommand(
		daemonCmd(o),
		stopCmd(o),
		trackCmd(o, "play", "Replace what is loaded with a track and start it"),
		trackCmd(o, "queue", "Append a track after what is loaded"),
		simpleCmd(o, "pause", "Pause playback"),
		simpleCmd(o, "resume", "Resume paused playback"),
		simpleCmd(o, "clear", "Stop playback and empty the queue"),
		simpleCmd(o, "skip", "Skip the current track"),
		simpleCmd(o, "current", "Show the track being played"),
	)

	return root
}

// Execute runs the command line.
func Execute(version string) error {
	return NewRootCmd(version).Execute()
}
