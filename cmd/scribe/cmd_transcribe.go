package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/meeting-scribe/internal/processor"
	"github.com/spf13/cobra"
)

func newTranscribeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "transcribe <recording>",
		Short: "Transcribe a recording into a speaker-labeled WEBVTT file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, true)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			defer a.close(ctx)

			res, err := transcribeFile(cmd, a, args[0])
			if err != nil {
				return err
			}

			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				name := filepath.Base(args[0])
				out = strings.TrimSuffix(name, filepath.Ext(name)) + ".vtt"
			}
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(res.Document)
				return err
			}
			if err := os.WriteFile(out, res.Document, 0644); err != nil {
				return fmt.Errorf("write transcript: %w", err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d segments, %d speakers, %d unknown\n",
				out, len(res.Segments), res.Speakers, res.Unknown)
			return nil
		},
	}
	c.Flags().StringP("out", "o", "", "output .vtt path, - for stdout (default <recording>.vtt)")
	return c
}

func transcribeFile(cmd *cobra.Command, a *app, path string) (*processor.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()
	return a.proc.Transcribe(cmd.Context(), filepath.Base(path), f)
}
