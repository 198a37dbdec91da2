package frame

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const promText = `
# HELP requests_in_flight Requests currently being served.
# TYPE requests_in_flight gauge
requests_in_flight{group="edge",region="DE"} 12
requests_in_flight{group="edge",region="FR"} 3
requests_in_flight{instance="no-labels"} 99

# HELP zz_requests_total Requests served.
# TYPE zz_requests_total counter
zz_requests_total{group="edge",region="DE"} 40
`

func TestReadPrometheus(t *testing.T) {
	frames, err := ReadPrometheus(strings.NewReader(promText), "group", "region")
	require.NoError(t, err)
	require.Len(t, frames, 3)
	assert.Equal(t, Frame{Name: "edge DE", Values: []float64{12}}, frames[0])

	table, skipped := Aggregate(frames)
	assert.Empty(t, skipped)
	// zz_requests_total sorts last and overwrites the gauge for DE.
	assert.Equal(t, ValueTable{"edge": {"DE": 40, "FR": 3}}, table)
}

func TestReadPrometheusNoMatchingLabels(t *testing.T) {
	_, err := ReadPrometheus(strings.NewReader(promText), "tenant", "zone")
	assert.Error(t, err)
}

func TestReadLines(t *testing.T) {
	in := `
# comment
g r1 1 2 3
g r2
`
	frames, err := ReadLines(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []Frame{
		{Name: "g r1", Values: []float64{1, 2, 3}},
		{Name: "g r2"},
	}, frames)

	_, err = ReadLines(strings.NewReader("lonely\n"))
	assert.Error(t, err)

	_, err = ReadLines(strings.NewReader("g r1 x\n"))
	assert.Error(t, err)
}

func TestLoadFileJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frames.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"g r1","values":[1,5]},{"values":[3]}]`), 0o644))

	frames, err := LoadFile(path, SourceOptions{})
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, 5.0, frames[0].Last())
	assert.Equal(t, "", frames[1].Name)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatPrometheus, FormatForPath("a/metrics.prom"))
	assert.Equal(t, FormatLines, FormatForPath("x.TXT"))
	assert.Equal(t, FormatJSON, FormatForPath("frames.json"))
}

func TestReadUnsupportedFormat(t *testing.T) {
	_, err := Read(strings.NewReader(""), SourceOptions{Format: "xml"})
	assert.Error(t, err)
}
