package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-stickers/internal/constants"
	"github.com/kozaktomas/face-stickers/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the Face Stickers HTTP API.

The API lists the available stickers and applies a sticker to an uploaded
frame, returning the composited PNG together with its alignment score.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "Port to listen on (overrides WEB_PORT)")
	serveCmd.Flags().String("host", "", "Host to bind to (overrides WEB_HOST)")
	serveCmd.Flags().String("iou", "", "IoU variant: snapped or standard (overrides STICKERS_IOU_METRIC)")
}

func runServe(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(mustGetString(cmd, "iou"))
	if err != nil {
		return err
	}

	if port := mustGetInt(cmd, "port"); port > 0 {
		eng.cfg.Web.Port = port
	}
	if host := mustGetString(cmd, "host"); host != "" {
		eng.cfg.Web.Host = host
	}

	server := web.NewServer(eng.cfg, eng.store, eng.scorer, eng.log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, constants.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting Face Stickers API on http://%s:%d\n", eng.cfg.Web.Host, eng.cfg.Web.Port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
