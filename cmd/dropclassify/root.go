package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dropclassify/internal/app"
	"dropclassify/internal/config"
	"dropclassify/internal/debug/timing"
	"dropclassify/internal/imaging"
	"dropclassify/internal/inference"
	"dropclassify/internal/labels"
	"dropclassify/internal/logger"
)

var (
	configPath string
	modelPath  string
	backend    string
	debugLogs  bool

	// openBackend is swapped out in tests.
	openBackend = func(cfg config.Config) (inference.Backend, error) {
		return inference.OpenBackend(cfg)
	}
)

var rootCmd = &cobra.Command{
	Use:   "dropclassify",
	Short: "Drag & drop image classifier",
	Long: `Opens a window that accepts a dropped image file and shows which of the
known identities the pretrained model predicts for it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGUI,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVarP(&modelPath, "model", "m", "", "model file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "inference backend: onnx or opencv")
	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "enable debug logging")

	rootCmd.AddCommand(classifyCmd)
}

// loadConfig layers flags over file and environment settings.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}

	if modelPath != "" {
		cfg.ModelPath = modelPath
	}
	if backend != "" {
		cfg.Backend = backend
	}
	if debugLogs {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newPredictor loads the model once. Any failure here is fatal for the caller.
func newPredictor(cfg config.Config, log logger.Logger) (*inference.Predictor, error) {
	layout, err := imaging.ParseLayout(cfg.Layout)
	if err != nil {
		return nil, err
	}

	log.Info("Startup", "loading model", logger.PathFields(cfg.ModelPath, map[string]interface{}{
		"backend": cfg.Backend,
	}))

	b, err := openBackend(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", cfg.ModelPath, err)
	}

	// Timings are only collected when someone is going to look at them.
	tracker := timing.NewTracker()
	tracker.SetEnabled(cfg.LogLevel == "debug")

	return inference.NewPredictor(b, inference.Options{
		Labels:    labels.FromConfig(cfg.Labels),
		ImageSize: cfg.ImageSize,
		Layout:    layout,
		Logger:    log,
		Timing:    tracker,
	}), nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Level(), cfg.JSONLogs)

	predictor, err := newPredictor(cfg, log)
	if err != nil {
		log.Error("Startup", err, nil)
		return err
	}

	application := app.NewApplication(cfg, predictor, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			log.Info("Startup", "shutdown signal received", nil)
			application.Quit()
		case <-done:
		}
	}()

	return application.Run()
}
