package cli

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/llehouerou/sound/internal/errmsg"
	"github.com/llehouerou/sound/internal/ipc"
)

// trackCmd builds a command that sends a track path with the request.
func trackCmd(o *options, action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <track>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd.OutOrStdout())
			// The daemon resolves paths against its own working directory.
			track, err := filepath.Abs(args[0])
			if err != nil {
				p.fail(errmsg.FormatWith(errmsg.OpTrackResolve, args[0], err))
				return nil
			}
			return send(cmd, o, p, action, track)
		},
	}
}

// simpleCmd builds a command whose request carries no track.
func simpleCmd(o *options, action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return send(cmd, o, newPrinter(cmd.OutOrStdout()), action, "")
		},
	}
}

// send performs one exchange and prints the outcome. Daemon failures are
// printed, not returned: the exit status does not reflect them.
func send(cmd *cobra.Command, o *options, p *printer, action, track string) error {
	cfg, err := o.load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	req := ipc.Request{Action: action}
	if track != "" {
		req.Track = &track
	}

	client := ipc.NewClient(cfg.SocketPath, cfg.GetDialTimeout())
	resp, err := client.Send(cmd.Context(), req)
	if err != nil {
		p.unreachable(err)
		return nil
	}
	p.response(resp)
	return nil
}

func stopCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Ask the daemon to exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := newPrinter(cmd.OutOrStdout())
			cfg, err := o.load()
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
			}
			if err := ipc.NewClient(cfg.SocketPath, cfg.GetDialTimeout()).Shutdown(cmd.Context()); err != nil {
				p.unreachable(err)
				return nil
			}
			p.ok("Stop requested")
			return nil
		},
	}
}
