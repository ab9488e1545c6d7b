package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "scribe",
		Short:         "Speaker-attributed meeting transcripts and summaries",
		Long:          "Transcribe recordings into speaker-labeled WEBVTT, summarize transcripts with Gemini, or watch a folder and do both.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "config.yaml", "path to the YAML config file")

	rootCmd.AddCommand(newTranscribeCmd())
	rootCmd.AddCommand(newSummarizeCmd())
	rootCmd.AddCommand(newProcessCmd())
	rootCmd.AddCommand(newWatchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
