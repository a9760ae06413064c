// Package daemon runs the playback daemon: one audio sink, one queue and
// a unix socket serving commands against them.
package daemon

import (
	"context"
	"net"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/sound/internal/config"
	"github.com/llehouerou/sound/internal/errmsg"
	"github.com/llehouerou/sound/internal/ipc"
	"github.com/llehouerou/sound/internal/mpris"
	"github.com/llehouerou/sound/internal/notify"
	"github.com/llehouerou/sound/internal/player"
	"github.com/llehouerou/sound/internal/stderr"
)

// Run opens the audio device, binds the control socket and serves
// requests until ctx is done or a client asks the daemon to stop.
func Run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	if err := stderr.Start(func(line string) {
		log.WithField("source", "stderr").Warn(line)
	}); err != nil {
		log.WithError(err).Warn("Could not capture stderr")
	}
	defer stderr.Stop()

	l, err := ipc.Listen(cfg.SocketPath)
	if err != nil {
		return &OpError{Op: errmsg.OpSocketListen, Context: cfg.SocketPath, Err: err}
	}

	audio := cfg.GetAudioConfig()
	sink, err := player.NewSpeaker(player.SpeakerConfig{
		SampleRate:      audio.SampleRate,
		Buffer:          audio.BufferDuration(),
		ResampleQuality: audio.ResampleQuality,
	}, log)
	if err != nil {
		l.Close()
		return &OpError{Op: errmsg.OpAudioInit, Err: err}
	}
	defer sink.Close()

	ctrl := NewController(sink, player.NewFileDecoder(log), log)

	if cfg.Notify.Enabled {
		n, err := notify.New()
		if err != nil {
			log.WithError(err).Warn("Desktop notifications unavailable")
		} else {
			a := notify.NewAnnouncer(n, cfg.GetNotifyTimeout(), log)
			defer a.Dismiss()
			ctrl.SetAnnouncer(a)
		}
	}

	if cfg.MPRIS.Enabled {
		m, err := mpris.New(ctrl, log)
		if err != nil {
			log.WithError(err).Warn("MPRIS unavailable")
		} else {
			defer m.Close()
		}
	}

	return serve(ctx, l, ctrl, cfg, log)
}

// serve answers requests on l until the server stops.
func serve(ctx context.Context, l net.Listener, ctrl *Controller, cfg *config.Config, log logrus.FieldLogger) error {
	srv := ipc.NewServer(l, ctrl, ipc.ServerConfig{
		MaxRequestBytes: cfg.GetMaxRequestBytes(),
		ReadTimeout:     cfg.GetReadTimeout(),
	}, log)

	log.WithField("socket", cfg.SocketPath).Info("Daemon started")
	defer log.Info("Daemon stopped")

	return srv.Serve(ctx)
}
