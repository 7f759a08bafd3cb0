package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/motivation-cli/internal/model"
	"github.com/sells-group/motivation-cli/internal/report"
)

var (
	analyzeUser   string
	analyzeFormat string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a single call transcript",
	Long:  "Scores a transcript file for seller motivation. Pass - to read the transcript from stdin.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		transcript, err := readTranscript(args[0])
		if err != nil {
			return err
		}

		env, err := initRunner(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		resp, err := env.Runner.AnalyzeTranscript(ctx, analyzeUser, transcript)
		if err != nil {
			return err
		}

		return writeAnalysis(cmd.OutOrStdout(), resp.Analysis, resp.Transcript, analyzeFormat)
	},
}

func readTranscript(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", eris.Wrap(err, "read stdin")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", eris.Wrapf(err, "read transcript %s", path)
	}
	return string(data), nil
}

func writeAnalysis(w io.Writer, analysis *model.AnalysisResult, transcript, format string) error {
	switch format {
	case "text":
		_, err := io.WriteString(w, report.Render(analysis, transcript))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(analysis), "encode json")
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return eris.Wrap(enc.Encode(analysis), "encode yaml")
	default:
		return fmt.Errorf("unknown format %q (want text, json, or yaml)", format)
	}
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeUser, "user", "default", "user id for usage accounting")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "text", "output format: text, json, yaml")
	rootCmd.AddCommand(analyzeCmd)
}
