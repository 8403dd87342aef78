package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kozaktomas/face-stickers/internal/overlay"
)

var stickersCmd = &cobra.Command{
	Use:   "stickers",
	Short: "List the available stickers",
	Long: `List every supported sticker with the file it is loaded from and whether
that file exists in the sticker directory (STICKERS_DIR).`,
	Args: cobra.NoArgs,
	RunE: runStickers,
}

func init() {
	rootCmd.AddCommand(stickersCmd)

	stickersCmd.Flags().Bool("json", false, "Output as JSON")
}

// stickerRow is one line of the stickers listing.
type stickerRow struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	File        string `json:"file"`
	Description string `json:"description,omitempty"`
	Available   bool   `json:"available"`
}

func runStickers(cmd *cobra.Command, args []string) error {
	eng, err := newEngine("")
	if err != nil {
		return err
	}

	title := cases.Title(language.English)
	rows := make([]stickerRow, 0, len(overlay.Kinds()))
	for _, k := range overlay.Kinds() {
		path, _ := eng.store.Path(k)
		rows = append(rows, stickerRow{
			Name:        string(k),
			Title:       title.String(string(k)),
			File:        path,
			Description: eng.cfg.Stickers.Manifest[string(k)].Description,
			Available:   eng.store.Available(k),
		})
	}

	if mustGetBool(cmd, "json") {
		return outputJSON(rows)
	}

	fmt.Printf("Stickers in %s:\n\n", eng.cfg.Stickers.Dir)
	for _, r := range rows {
		status := "ok"
		if !r.Available {
			status = "missing"
		}
		fmt.Printf("  %-10s %-8s %s\n", r.Title, status, r.File)
		if r.Description != "" {
			fmt.Printf("             %s\n", r.Description)
		}
	}
	return nil
}

// kindList returns the sticker names accepted on the command line.
func kindList() string {
	names := []string{"none"}
	for _, k := range overlay.Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}
