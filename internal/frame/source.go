package frame

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Supported source formats.
const (
	FormatJSON       = "json"
	FormatPrometheus = "prometheus"
	FormatLines      = "lines"
)

// Default Prometheus labels used to build a frame name.
const (
	DefaultGroupLabel  = "group"
	DefaultRegionLabel = "region"
)

// SourceOptions controls how a frame source is decoded.
type SourceOptions struct {
	// Format is json, prometheus or lines. Empty selects by file extension.
	Format string

	// GroupLabel and RegionLabel name the Prometheus labels that make up a frame name.
	GroupLabel  string
	RegionLabel string
}

func (o SourceOptions) labels() (string, string) {
	g, r := o.GroupLabel, o.RegionLabel
	if g == "" {
		g = DefaultGroupLabel
	}
	if r == "" {
		r = DefaultRegionLabel
	}
	return g, r
}

// FormatForPath guesses a source format from the file extension.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".prom", ".metrics":
		return FormatPrometheus
	case ".txt", ".lines":
		return FormatLines
	default:
		return FormatJSON
	}
}

// LoadFile reads frames from path.
func LoadFile(path string, opts SourceOptions) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if opts.Format == "" {
		opts.Format = FormatForPath(path)
	}
	return Read(f, opts)
}

// Read decodes frames from r in the format named by opts.
func Read(r io.Reader, opts SourceOptions) ([]Frame, error) {
	switch opts.Format {
	case FormatJSON, "":
		return ReadJSON(r)
	case FormatPrometheus:
		g, rl := opts.labels()
		return ReadPrometheus(r, g, rl)
	case FormatLines:
		return ReadLines(r)
	}
	return nil, fmt.Errorf("frame: unsupported format %q", opts.Format)
}

// ReadJSON decodes a JSON array of {"name": ..., "values": [...]} objects.
func ReadJSON(r io.Reader) ([]Frame, error) {
	var frames []Frame
	if err := json.NewDecoder(r).Decode(&frames); err != nil {
		return nil, fmt.Errorf("frame: decode json: %w", err)
	}
	return frames, nil
}

// ReadLines parses one frame per line: "<group> <region> <v1> <v2> ...".
// Blank lines and lines starting with '#' are ignored.
func ReadLines(r io.Reader) ([]Frame, error) {
	var frames []Frame
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			return nil, fmt.Errorf("frame: line %d: want \"<group> <region> [values...]\"", n)
		}
		f := Frame{Name: parts[0] + " " + parts[1]}
		for _, p := range parts[2:] {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return nil, fmt.Errorf("frame: line %d: %w", n, err)
			}
			f.Values = append(f.Values, v)
		}
		frames = append(frames, f)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return frames, nil
}

// ReadPrometheus turns a Prometheus text exposition into frames. Each sample
// carrying both groupLabel and regionLabel becomes a single-value frame;
// families are visited in name order so later families win on duplicates.
func ReadPrometheus(r io.Reader, groupLabel, regionLabel string) ([]Frame, error) {
	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(r)
	if err != nil && len(mfs) == 0 {
		return nil, fmt.Errorf("frame: parse prometheus text: %w", err)
	}
	names := make([]string, 0, len(mfs))
	for name := range mfs {
		names = append(names, name)
	}
	sort.Strings(names)

	var frames []Frame
	for _, name := range names {
		for _, m := range mfs[name].GetMetric() {
			g, rg := labelValue(m, groupLabel), labelValue(m, regionLabel)
			if g == "" || rg == "" {
				continue
			}
			v, ok := sampleValue(m)
			if !ok {
				continue
			}
			frames = append(frames, Frame{Name: g + " " + rg, Values: []float64{v}})
		}
	}
	if len(frames) == 0 {
		return nil, errors.New("frame: no samples with group and region labels")
	}
	return frames, nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

func sampleValue(m *dto.Metric) (float64, bool) {
	switch {
	case m.Gauge != nil:
		return m.Gauge.GetValue(), true
	case m.Counter != nil:
		return m.Counter.GetValue(), true
	case m.Untyped != nil:
		return m.Untyped.GetValue(), true
	}
	return 0, false
}
