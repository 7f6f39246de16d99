package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voxctl/voxctl/internal/colors"
	"github.com/voxctl/voxctl/internal/engine"
	"github.com/voxctl/voxctl/internal/transcribe"
)

var processWav string

var processCmd = &cobra.Command{
	Use:   "process [text]...",
	Short: "Dispatch text or a wav recording through the command pipeline",
	Long: `Run the command pipeline once without the microphone. Text
arguments are dispatched directly; with --wav the recording is
transcribed first.`,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVar(&processWav, "wav", "", "transcribe this wav file instead of using text arguments")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(true)
	if err != nil {
		return err
	}
	defer rt.close()

	text := strings.Join(args, " ")
	if processWav != "" {
		text, err = transcribeFile(cmd, rt, processWav)
		if err != nil {
			return err
		}
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("nothing to process: pass text arguments or --wav")
	}

	eng, err := engine.New(&engine.Config{
		Settings:       rt.cfg,
		Bus:            rt.bus,
		Registry:       rt.registry,
		Processor:      rt.processor,
		Parser:         rt.parser,
		CommandContext: rt.cmdCtx,
		Logger:         rt.logger,
	})
	if err != nil {
		return err
	}
	return eng.ProcessText(text)
}

func transcribeFile(cmd *cobra.Command, rt *runtime, path string) (string, error) {
	modelPath := rt.cfg.Get("", "model", "path")
	if modelPath == "" {
		return "", fmt.Errorf("model.path is not set; add it to the config file or export VOXCTL_MODEL")
	}

	buf, err := transcribe.ReadWAV(rt.fs, path)
	if err != nil {
		return "", err
	}

	transcriber := transcribe.NewWhisper(modelPath, rt.cfg.Get("en", "model", "language"), rt.logger)
	defer transcriber.Close()

	if err := transcriber.WaitReady(cmd.Context()); err != nil {
		return "", err
	}
	text, err := transcriber.Transcribe(transcribe.Samples16(buf))
	if err != nil {
		return "", err
	}
	colors.Info("transcribed: " + text)
	return text, nil
}
