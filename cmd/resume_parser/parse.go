package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-parser/internal/observability"
	"github.com/jonathan/resume-parser/internal/pipeline"
	"github.com/jonathan/resume-parser/internal/skills"
)

var (
	parseOutputFile string
	parseVerbose    bool
	parseValidate   bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a resume into a structured JSON record",
	Long:  "Extract text from a PDF, DOCX, TXT or image resume and resolve it into a JSON record.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Write the record to this file instead of stdout")
	parseCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Print progress and a summary of the record")
	parseCmd.Flags().BoolVar(&parseValidate, "validate", false, "Validate the record against the output schema")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, appConfig)
	if err != nil {
		return err
	}
	defer a.Close()

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	if parseVerbose {
		a.Pipeline.OnProgress = func(e pipeline.ProgressEvent) {
			printer.PrintStage(e.Stage, e.Message)
		}
	}
	if parseValidate {
		a.Pipeline.ValidateOutput = true
	}

	rec, err := a.Pipeline.ProcessFile(ctx, args[0])
	if err != nil {
		return err
	}

	if parseVerbose {
		printer.PrintResumeRecord(rec)
		if ext, ok := a.Models.Skills.(*skills.Extractor); ok {
			printer.PrintSkillCategories(ext.Vocab.Categorize(rec.Skills))
		}
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	if parseOutputFile == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(parseOutputFile, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Record written to %s\n", parseOutputFile)
	return nil
}
