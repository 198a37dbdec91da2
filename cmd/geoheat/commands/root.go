package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"geoheat/internal/config"
	"geoheat/internal/frame"
	"geoheat/internal/geom"
	"geoheat/internal/heat"
	"geoheat/internal/panel"
)

var (
	configPath   string
	geometryPath string
	framesPath   string
	framesFormat string
	nameProperty string
	group        string
	logLevel     string

	cfg     *config.Config
	overlay *panel.Panel
)

func Execute() error {
	return newRootCmd(os.Stdout, os.Stderr).Execute()
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "geoheat",
		Short:        "Colour map regions by their latest metric value",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var lvl slog.Level
			if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: lvl})))

			c, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			regions, err := geom.Load(c.Geometry.Path, c.Geometry.NameProperty)
			if err != nil {
				return err
			}
			slog.Debug("geometry loaded", "path", c.Geometry.Path, "features", len(regions.Features))
			cfg = c
			overlay = panel.New(regions, c.Style, frame.GroupID(c.Group))
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "YAML config file")
	pf.StringVarP(&geometryPath, "geometry", "g", "", "region boundaries (.geojson, .kml, .csv, .wkt)")
	pf.StringVarP(&framesPath, "frames", "f", "", "time series file (.json, .prom, .txt)")
	pf.StringVar(&framesFormat, "format", "", "frames format: json | prometheus | lines (default by extension)")
	pf.StringVar(&nameProperty, "name-property", "", "GeoJSON property holding the region id")
	pf.StringVar(&group, "group", "", "group to draw (default first in sorted order)")
	pf.StringVar(&logLevel, "log-level", "info", "debug | info | warn | error")

	root.AddCommand(aggregateCmd(), exportCmd(), renderCmd(), reportCmd(), viewCmd())
	return root
}

// loadConfig reads --config when given, otherwise starts from defaults, then
// applies flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c := config.Defaults()
	if configPath != "" {
		var err error
		if c, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("geometry") {
		c.Geometry.Path = geometryPath
	}
	if flags.Changed("name-property") {
		c.Geometry.NameProperty = nameProperty
	}
	if flags.Changed("frames") {
		c.Frames.Path = framesPath
	}
	if flags.Changed("format") {
		c.Frames.Format = framesFormat
	}
	if flags.Changed("group") {
		c.Group = group
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// readFrames loads the configured frames file.
func readFrames() ([]frame.Frame, error) {
	if cfg.Frames.Path == "" {
		return nil, fmt.Errorf("no frames file: set --frames or frames.path")
	}
	return frame.LoadFile(cfg.Frames.Path, cfg.Frames.SourceOptions())
}

// buildOverlay reads the frames file and refreshes the panel from it.
func buildOverlay() (*heat.Layer, error) {
	fs, err := readFrames()
	if err != nil {
		return nil, err
	}
	l, err := overlay.Refresh(fs)
	if err != nil {
		return nil, err
	}
	for _, s := range l.Skipped {
		slog.Warn("region not drawn", "region", s.Region, "err", s.Err)
	}
	slog.Info("overlay built", "group", overlay.Group(), "shapes", len(l.Shapes), "layer", l.ID)
	return l, nil
}
