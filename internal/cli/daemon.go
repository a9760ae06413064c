package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/llehouerou/sound/internal/daemon"
	"github.com/llehouerou/sound/internal/errmsg"
	"github.com/llehouerou/sound/internal/logging"
	"github.com/llehouerou/sound/internal/stderr"
)

func daemonCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the playback daemon in the foreground",
		Long: `Run the playback daemon in the foreground.

The daemon listens on the control socket until it receives SIGINT or
SIGTERM, or until a client connects and closes without sending a
request (see "sound stop").`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.load()
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
			}

			log := logging.New(cfg.GetLogConfig(), stderr.Original())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return daemon.Run(ctx, cfg, log)
		},
	}
}
