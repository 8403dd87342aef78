package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-stickers/internal/alignment"
	"github.com/kozaktomas/face-stickers/internal/config"
	"github.com/kozaktomas/face-stickers/internal/logging"
	"github.com/kozaktomas/face-stickers/internal/overlay"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "face-stickers",
	Short: "Overlay stickers on detected faces and score their alignment",
	Long: `Face Stickers places sticker images (glasses, mustache, ears, ...) on faces
using their 68 facial landmarks and measures how well each sticker covers the
facial feature it is meant to cover.

Frames are processed from a directory together with a track file holding the
detected faces, one at a time through the place command, or over HTTP.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}

// engine bundles what every processing command needs.
type engine struct {
	cfg    *config.Config
	log    *logrus.Logger
	store  *overlay.Store
	scorer *alignment.Scorer
}

// newEngine loads the configuration and builds the logger, sticker store and
// scorer. A non-empty metric overrides STICKERS_IOU_METRIC.
func newEngine(metric string) (*engine, error) {
	cfg := config.Load()
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if metric != "" {
		cfg.Scoring.Metric = metric
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	m, err := alignment.ParseMetric(cfg.Scoring.Metric)
	if err != nil {
		return nil, err
	}

	files, err := overlay.ParseManifest(cfg.Stickers.Files())
	if err != nil {
		return nil, fmt.Errorf("invalid sticker manifest: %w", err)
	}

	return &engine{
		cfg:    cfg,
		log:    log,
		store:  overlay.NewStore(cfg.Stickers.Dir, files),
		scorer: alignment.NewScorer(m),
	}, nil
}
