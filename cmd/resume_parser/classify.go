package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-parser/internal/models"
	"github.com/jonathan/resume-parser/internal/types"
)

// Classifier kinds accepted by --kind.
const (
	kindExperience = "experience"
	kindJobRole    = "job-role"
)

var classifyKind string

var classifyCmd = &cobra.Command{
	Use:   "classify <file>",
	Short: "Run a single local classifier over a resume",
	Long:  "Extract text from a resume and print the experience level or job role predicted by the trained classifiers, without calling the AI extractor.",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&classifyKind, "kind", kindExperience, "Classifier to run: experience or job-role")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if classifyKind != kindExperience && classifyKind != kindJobRole {
		return fmt.Errorf("unknown classifier kind %q (want %s or %s)", classifyKind, kindExperience, kindJobRole)
	}

	doc, err := newDocumentExtractor(appConfig).ExtractFile(ctx, args[0])
	if err != nil {
		return err
	}

	objects, err := objectStore(appConfig)
	if err != nil {
		return err
	}

	var label string
	switch classifyKind {
	case kindExperience:
		exp, err := models.LoadExperience(ctx, appConfig.Models.Experience, objectGetter(objects))
		if err != nil {
			return fmt.Errorf("failed to load experience classifier: %w", err)
		}
		if label, err = exp.Predict(ctx, doc.Text); err != nil {
			return err
		}
	case kindJobRole:
		role, err := models.LoadJobRole(appConfig.Models.JobRole, objectGetter(objects))
		if err != nil {
			return fmt.Errorf("failed to load job-role classifier: %w", err)
		}
		if label, err = role.PredictRole(ctx, doc.Text); err != nil {
			return err
		}
	}
	if types.IsMissing(label) {
		label = types.NotSpecified
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), label)
	return err
}
