package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"dropclassify/internal/imaging"
	"dropclassify/internal/labels"
	"dropclassify/internal/logger"
)

var showScores bool

var classifyCmd = &cobra.Command{
	Use:   "classify <image>",
	Short: "Classify one image without opening a window",
	Long: `Loads the model, classifies a single image file and prints the
prediction exactly as the window would show it.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&showScores, "scores", false, "print the raw score for every label")
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// stdout carries the prediction only; failures are logged to stderr.
	level := zerolog.ErrorLevel
	if cfg.LogLevel == "debug" {
		level = zerolog.DebugLevel
	}
	log := logger.NewWriter(cmd.ErrOrStderr(), level, cfg.JSONLogs)

	predictor, err := newPredictor(cfg, log)
	if err != nil {
		log.Error("Classify", err, nil)
		return err
	}
	defer predictor.Close()

	path := args[0]
	out := cmd.OutOrStdout()

	if !imaging.IsSupported(path) {
		fmt.Fprintln(out, "Not a supported image file.")
		return nil
	}

	if !showScores {
		fmt.Fprintf(out, "Prediction: %s\n", predictor.Predict(path))
		return nil
	}

	result, err := predictor.Classify(path)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	fmt.Fprintf(out, "Prediction: %s\n", result.Label)
	table := labels.FromConfig(cfg.Labels)
	for i, score := range result.Scores {
		fmt.Fprintf(out, "  %-20s %.4f\n", table.Name(i), score)
	}
	return nil
}
