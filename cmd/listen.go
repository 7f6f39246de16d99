package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/voxctl/voxctl/internal/audio"
	"github.com/voxctl/voxctl/internal/colors"
	"github.com/voxctl/voxctl/internal/engine"
	"github.com/voxctl/voxctl/internal/transcribe"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Listen to the microphone and dispatch voice commands",
	RunE:  runListen,
}

func init() {
	rootCmd.AddCommand(listenCmd)
}

func runListen(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(true)
	if err != nil {
		return err
	}
	defer rt.close()

	modelPath := rt.cfg.Get("", "model", "path")
	if modelPath == "" {
		return fmt.Errorf("model.path is not set; add it to the config file or export VOXCTL_MODEL")
	}

	if err := audio.Initialize(); err != nil {
		return fmt.Errorf("initialize audio: %w", err)
	}
	defer audio.Terminate()

	source, err := audio.OpenDefaultSource(
		rt.cfg.GetInt(audio.DefaultSampleRate, "audio", "sample_rate"),
		rt.cfg.GetInt(audio.DefaultChannels, "audio", "channels"),
		rt.cfg.GetInt(audio.DefaultFrameSamples, "audio", "buffer_samples"),
	)
	if err != nil {
		return err
	}
	defer source.Close()

	listener := audio.NewListener(rt.cfg, source, rt.fs, rt.bus, rt.logger)

	transcriber := transcribe.NewWhisper(modelPath, rt.cfg.Get("en", "model", "language"), rt.logger)
	defer transcriber.Close()

	eng, err := engine.New(&engine.Config{
		Settings:       rt.cfg,
		Bus:            rt.bus,
		Registry:       rt.registry,
		Processor:      rt.processor,
		Parser:         rt.parser,
		CommandContext: rt.cmdCtx,
		Listener:       listener,
		Transcriber:    transcriber,
		Logger:         rt.logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	colors.Info("listening; press ctrl-c to stop")
	if err := eng.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
