package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/meeting-scribe/internal/processor"
	"github.com/spf13/cobra"
)

func newProcessCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "process <recording>",
		Short: "Transcribe a recording and summarize the transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, true)
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			if !processor.IsSupported(args[0]) {
				return fmt.Errorf("%s: unsupported recording format", args[0])
			}

			res, err := transcribeFile(cmd, a, args[0])
			if err != nil {
				return err
			}

			name := filepath.Base(args[0])
			vttPath := filepath.Join(a.cfg.Paths.Output, strings.TrimSuffix(name, filepath.Ext(name))+".vtt")
			if err := os.MkdirAll(a.cfg.Paths.Output, 0755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			if err := os.WriteFile(vttPath, res.Document, 0644); err != nil {
				return fmt.Errorf("write transcript: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "transcript: %s\n", vttPath)

			src, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open recording: %w", err)
			}
			defer src.Close()

			req := summaryRequest(cmd, args[0], res.Document)
			req.Source = src
			sum, err := a.proc.Summarize(cmd.Context(), req)
			if err != nil {
				return err
			}
			printSummary(cmd, sum)
			return nil
		},
	}
	addSummaryFlags(c)
	return c
}
