package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kozaktomas/face-stickers/internal/alignment"
	"github.com/kozaktomas/face-stickers/internal/constants"
	"github.com/kozaktomas/face-stickers/internal/frames"
	"github.com/kozaktomas/face-stickers/internal/overlay"
	"github.com/kozaktomas/face-stickers/internal/pipeline"
	"github.com/kozaktomas/face-stickers/internal/placement"
)

var placeCmd = &cobra.Command{
	Use:   "place <image>",
	Short: "Apply a sticker to a single image",
	Long: `Apply a sticker to the faces of a single image and print the alignment
score of every placed sticker.

Faces are read from a YAML or JSON file holding a list of {rect, points}
records. The result is written next to the image as <name>_<sticker><ext>
unless --output is set. WebP input is written as PNG.

Examples:
  face-stickers place photo.jpg --faces photo.faces.json --sticker mustache
  face-stickers place photo.jpg --faces photo.faces.json --sticker mouse --json`,
	Args: cobra.ExactArgs(1),
	RunE: runPlace,
}

func init() {
	rootCmd.AddCommand(placeCmd)

	placeCmd.Flags().String("faces", "", "File with detected faces (required)")
	placeCmd.Flags().String("sticker", "none", "Sticker to apply: "+kindList())
	placeCmd.Flags().Bool("annotate", false, "Draw face rectangles and landmarks")
	placeCmd.Flags().String("output", "", "Output image path")
	placeCmd.Flags().String("iou", "", "IoU variant: snapped or standard (overrides STICKERS_IOU_METRIC)")
	placeCmd.Flags().Bool("json", false, "Output as JSON")
	_ = placeCmd.MarkFlagRequired("faces")
}

// PlaceOutput is the JSON result of the place command.
type PlaceOutput struct {
	Image      string           `json:"image"`
	Output     string           `json:"output"`
	Sticker    string           `json:"sticker"`
	Metric     string           `json:"metric"`
	Faces      int              `json:"faces"`
	Placements []PlacementEntry `json:"placements"`
	Failures   []string         `json:"failures,omitempty"`
	Score      *float64         `json:"score,omitempty"`
}

// PlacementEntry describes one placed sticker.
type PlacementEntry struct {
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Angle  float64 `json:"angle"`
	Score  float64 `json:"score"`
}

func runPlace(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := mustGetString(cmd, "output")
	jsonOutput := mustGetBool(cmd, "json")

	kind, err := overlay.ParseKind(mustGetString(cmd, "sticker"))
	if err != nil {
		return err
	}

	eng, err := newEngine(mustGetString(cmd, "iou"))
	if err != nil {
		return err
	}

	records, err := loadFaceRecords(mustGetString(cmd, "faces"))
	if err != nil {
		return err
	}
	faces, err := frames.ToFaces(records)
	if err != nil {
		return err
	}

	frame, err := frames.Load(input)
	if err != nil {
		return err
	}

	log := eng.log.WithField("sticker", kind)
	proc := pipeline.New(
		placement.NewPlacer(eng.store, eng.scorer, log),
		pipeline.Options{Kind: kind, Annotate: mustGetBool(cmd, "annotate"), ExpectFaces: constants.DisableFaceCountCheck},
		log,
	)

	var acc alignment.Accumulator
	res, err := proc.ProcessFrame(frame, faces, &acc)
	if err != nil {
		return err
	}

	if output == "" {
		output = placeOutputPath(input, kind)
	}
	if err := frames.Save(output, frame); err != nil {
		return err
	}

	result := PlaceOutput{
		Image:      input,
		Output:     output,
		Sticker:    kind.String(),
		Metric:     string(eng.scorer.Metric()),
		Faces:      res.Faces,
		Placements: make([]PlacementEntry, 0, len(res.Placements)),
	}
	for _, p := range res.Placements {
		if !p.Placed {
			continue
		}
		r := p.Placement.Rect()
		result.Placements = append(result.Placements, PlacementEntry{
			X:      r.X,
			Y:      r.Y,
			Width:  r.W,
			Height: r.H,
			Angle:  p.Angle,
			Score:  p.Score,
		})
	}
	for _, f := range res.Failures {
		result.Failures = append(result.Failures, fmt.Sprintf("face %d: %v", f.Face, f.Err))
	}
	if mean, ok := acc.Mean(); ok {
		result.Score = &mean
	}

	if jsonOutput {
		return outputJSON(result)
	}
	printPlaceResult(result)
	return nil
}

// loadFaceRecords reads a YAML or JSON list of face records.
func loadFaceRecords(path string) ([]frames.FaceRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read faces file: %w", err)
	}
	var records []frames.FaceRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse faces file: %w", err)
	}
	return records, nil
}

// placeOutputPath returns <dir>/<name>_<sticker><ext> for input. Inputs in
// a format that cannot be written get a .png extension.
func placeOutputPath(input string, kind overlay.Kind) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	return frames.OutputName(fmt.Sprintf("%s_%s%s", base, kind, ext))
}

func printPlaceResult(r PlaceOutput) {
	fmt.Printf("Image:   %s\n", r.Image)
	fmt.Printf("Output:  %s\n", r.Output)
	fmt.Printf("Sticker: %s (IoU %s)\n", r.Sticker, r.Metric)
	fmt.Printf("Faces:   %d\n", r.Faces)

	if len(r.Placements) > 0 {
		fmt.Println("\nPlacements:")
		for i, p := range r.Placements {
			fmt.Printf("  %d. %dx%d at (%d, %d), angle %.1f°, IoU %.4f\n", i+1, p.Width, p.Height, p.X, p.Y, p.Angle, p.Score)
		}
	}
	if len(r.Failures) > 0 {
		fmt.Printf("\nSkipped faces: %d\n", len(r.Failures))
		for _, f := range r.Failures {
			fmt.Printf("  - %s\n", f)
		}
	}
	if r.Score != nil {
		fmt.Printf("\nAlignment: %.2f%%\n", *r.Score*100)
	}
}

func outputJSON(data any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}
