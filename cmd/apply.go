package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-stickers/internal/constants"
	"github.com/kozaktomas/face-stickers/internal/frames"
	"github.com/kozaktomas/face-stickers/internal/landmarks"
	"github.com/kozaktomas/face-stickers/internal/overlay"
	"github.com/kozaktomas/face-stickers/internal/pipeline"
	"github.com/kozaktomas/face-stickers/internal/placement"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply a sticker to every frame of a sequence",
	Long: `Apply a sticker to every frame in a directory.

Faces are read from a track file (YAML or JSON) keyed by frame file name.
Frames without an entry have no faces. Processed frames are written to
result_frames_<sticker> next to the input directory unless --output is set.
WebP frames are written as PNG.

A frame is aborted when its landmarks name an unknown feature. Aborted frames
are logged and not written, so the output sequence has a gap for each of them.

At the end the mean alignment score of all scored frames is printed, and with
--expect-faces the share of frames where the expected number of faces was
detected.

Examples:
  face-stickers apply --frames ./clip --track ./clip.yaml --sticker glasses
  face-stickers apply --frames ./clip --track ./clip.yaml --sticker cat --iou standard
  face-stickers apply --frames ./clip --track ./clip.yaml --annotate --expect-faces 2`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().String("frames", "", "Directory with input frames (required)")
	applyCmd.Flags().String("track", "", "Track file with detected faces per frame")
	applyCmd.Flags().String("sticker", "none", "Sticker to apply: "+kindList())
	applyCmd.Flags().Bool("annotate", false, "Draw face rectangles and landmarks")
	applyCmd.Flags().Int("expect-faces", constants.DisableFaceCountCheck, "Expected faces per frame (-1 disables the check)")
	applyCmd.Flags().String("output", "", "Output directory (default: result_frames_<sticker> next to --frames)")
	applyCmd.Flags().String("iou", "", "IoU variant: snapped or standard (overrides STICKERS_IOU_METRIC)")
	_ = applyCmd.MarkFlagRequired("frames")
}

func runApply(cmd *cobra.Command, args []string) error {
	input := mustGetString(cmd, "frames")
	trackPath := mustGetString(cmd, "track")
	annotate := mustGetBool(cmd, "annotate")
	expectFaces := mustGetInt(cmd, "expect-faces")
	output := mustGetString(cmd, "output")

	kind, err := overlay.ParseKind(mustGetString(cmd, "sticker"))
	if err != nil {
		return err
	}

	eng, err := newEngine(mustGetString(cmd, "iou"))
	if err != nil {
		return err
	}

	files, err := frames.ListFrames(input)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no frames found in %s", input)
	}

	var track *frames.Track
	if trackPath != "" {
		if track, err = frames.LoadTrack(trackPath); err != nil {
			return err
		}
	}

	if output == "" {
		if output, err = frames.OutputDir(input, kind); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(output, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	runID := uuid.New().String()
	log := eng.log.WithFields(logrus.Fields{
		"run":     runID,
		"sticker": kind,
	})

	proc := pipeline.New(
		placement.NewPlacer(eng.store, eng.scorer, log),
		pipeline.Options{Kind: kind, Annotate: annotate, ExpectFaces: expectFaces},
		log,
	)
	session := pipeline.NewSession(proc)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Run %s: %d frames, sticker %s, IoU %s\n", runID, len(files), kind, eng.scorer.Metric())
	fmt.Printf("Writing to %s\n\n", output)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Applying stickers"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("frames"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)

	var counts applyCounts
	interrupted := false
	for _, path := range files {
		if ctx.Err() != nil {
			interrupted = true
			break
		}

		var faces []landmarks.Face
		if track != nil {
			faces = track.Faces(path)
		}

		if err := counts.record(applyFrame(session, path, output, faces, log)); err != nil {
			return err
		}
		bar.Add(1)
	}
	fmt.Println()

	if interrupted {
		fmt.Println("Interrupted, stopping after the current frame")
	}
	printApplySummary(session.Summary(), runID, counts)
	return nil
}

// applyCounts tracks the outcome of every frame of a run.
type applyCounts struct {
	written int
	aborted int
}

// record counts the result of one frame. Aborted frames are counted and
// swallowed; any other error stops the run and is returned.
func (c *applyCounts) record(err error) error {
	switch {
	case err == nil:
		c.written++
	case errors.Is(err, landmarks.ErrUnknownFeature):
		c.aborted++
	default:
		return err
	}
	return nil
}

// applyFrame processes one frame and writes it to the output directory.
// Frames aborted by the pipeline are logged and not written.
func applyFrame(session *pipeline.Session, path, output string, faces []landmarks.Face, log logrus.FieldLogger) error {
	frame, err := frames.Load(path)
	if err != nil {
		return err
	}

	name := filepath.Base(path)
	res, mean, ok, err := session.Frame(frame, faces)
	if err != nil {
		log.WithError(err).WithField("frame", name).Error("frame aborted")
		return err
	}

	entry := log.WithFields(logrus.Fields{
		"frame":    name,
		"faces":    res.Faces,
		"failures": len(res.Failures),
	})
	if ok {
		entry = entry.WithField("score", mean)
	}
	entry.Debug("frame processed")

	return frames.Save(filepath.Join(output, frames.OutputName(name)), frame)
}

func printApplySummary(sum pipeline.Summary, runID string, counts applyCounts) {
	fmt.Printf("\nRun %s finished in %s\n", runID, sum.Elapsed.Round(time.Millisecond))
	fmt.Printf("  Frames written:    %d\n", counts.written)
	if counts.aborted > 0 {
		fmt.Printf("  Frames aborted:    %d\n", counts.aborted)
	}
	fmt.Printf("  Faces:             %d\n", sum.Faces)
	if sum.Failures > 0 {
		fmt.Printf("  Faces skipped:     %d\n", sum.Failures)
	}
	if sum.DetectionChecked {
		fmt.Printf("  Detection:         %.2f%%\n", sum.DetectionPercent)
	}
	if sum.ScoredFrames > 0 {
		fmt.Printf("  Alignment (IoU):   %.2f%% over %d frames\n", sum.AlignmentPercent, sum.ScoredFrames)
	} else {
		fmt.Println("  Alignment (IoU):   no frames scored")
	}
}
