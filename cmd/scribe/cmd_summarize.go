package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/meeting-scribe/internal/processor"
	"github.com/spf13/cobra"
)

func newSummarizeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "summarize <transcript.vtt>",
		Short: "Summarize a WEBVTT transcript with Gemini",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read transcript: %w", err)
			}

			sum, err := a.proc.Summarize(cmd.Context(), summaryRequest(cmd, args[0], data))
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

func addSummaryFlags(c *cobra.Command) {
	c.Flags().StringP("user", "u", "", "archive summaries under this user (default from config)")
	c.Flags().StringP("prompt", "p", "", "summary prompt; {context} is replaced by the transcript")
}

func summaryRequest(cmd *cobra.Command, path string, transcript []byte) processor.SummaryRequest {
	user, _ := cmd.Flags().GetString("user")
	prompt, _ := cmd.Flags().GetString("prompt")
	return processor.SummaryRequest{
		Name:       filepath.Base(path),
		Transcript: transcript,
		Prompt:     prompt,
		User:       user,
		SourceName: filepath.Base(path),
	}
}

func printSummary(cmd *cobra.Command, sum *processor.Summary) {
	fmt.Fprintln(cmd.OutOrStdout(), sum.Text)
	fmt.Fprintf(cmd.ErrOrStderr(), "summary: %s, %s\n", sum.Markdown, sum.Docx)
}
