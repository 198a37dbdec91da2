package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"geoheat/internal/config"
	"geoheat/internal/frame"
	"geoheat/internal/tui"
)

func viewCmd() *cobra.Command {
	var (
		watch   bool
		logFile string
	)
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the overlay in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			// the alt screen owns the terminal; logs go to a file or nowhere
			var logOut io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return err
				}
				defer f.Close()
				logOut = f
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(logOut, nil)))

			if cfg.Frames.Path != "" {
				if _, err := buildOverlay(); err != nil {
					slog.Warn("initial overlay", "err", err)
				}
			}
			opts := cfg.Frames.SourceOptions()
			m := tui.New(overlay, cfg.Frames.Path, opts)
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

			if watch && cfg.Frames.Path != "" {
				ctx, cancel := context.WithCancel(cmd.Context())
				defer cancel()
				go watchFrames(ctx, p, cfg.Frames.Path, opts)
			}
			_, err := p.Run()
			return err
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "redraw when the frames file changes")
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file while the view runs")
	return cmd
}

// watchFrames re-reads the frames file on every change and hands the result
// to the running program.
func watchFrames(ctx context.Context, p *tea.Program, path string, opts frame.SourceOptions) {
	err := config.Watch(ctx, func(string) {
		fs, err := frame.LoadFile(path, opts)
		p.Send(tui.FramesMsg{Frames: fs, Err: err})
	}, path)
	if err != nil {
		slog.Error("watch frames", "path", path, "err", err)
	}
}
