package frame

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// GroupID is the first token of a frame name.
type GroupID string

// RegionID identifies a region; it is matched against a geometry feature name.
type RegionID string

// Frame is one named time series as delivered by the data source.
// Name is expected as "<group> <region>".
type Frame struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Last returns the most recent value, or 0 for an empty series.
func (f Frame) Last() float64 {
	if len(f.Values) == 0 {
		return 0
	}
	return f.Values[len(f.Values)-1]
}

// MalformedNameError reports a frame name that cannot be split into group and region.
type MalformedNameError struct {
	Name string
}

func (e *MalformedNameError) Error() string {
	return fmt.Sprintf("frame: malformed name %q: want \"<group> <region>\"", e.Name)
}

// SplitName splits name on its first space. Everything after that space is
// the region, verbatim, so "g a b" yields group "g" and region "a b".
func SplitName(name string) (GroupID, RegionID, error) {
	group, region, ok := strings.Cut(name, " ")
	if !ok || group == "" || region == "" {
		return "", "", &MalformedNameError{Name: name}
	}
	return GroupID(group), RegionID(region), nil
}

// RegionValues maps a region to its latest value within one group.
type RegionValues map[RegionID]float64

// Value looks up a region. The boolean is false when the region has no value.
func (rv RegionValues) Value(id RegionID) (float64, bool) {
	v, ok := rv[id]
	return v, ok
}

// Regions returns the region ids in sorted order.
func (rv RegionValues) Regions() []RegionID {
	out := make([]RegionID, 0, len(rv))
	for id := range rv {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ValueTable maps group -> region -> latest value.
type ValueTable map[GroupID]RegionValues

// Group returns the values for g, or nil and false when g is absent.
func (t ValueTable) Group(g GroupID) (RegionValues, bool) {
	rv, ok := t[g]
	return rv, ok
}

// Groups returns the group ids in sorted order.
func (t ValueTable) Groups() []GroupID {
	out := make([]GroupID, 0, len(t))
	for g := range t {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (t ValueTable) set(g GroupID, r RegionID, v float64) {
	rv, ok := t[g]
	if !ok {
		rv = RegionValues{}
		t[g] = rv
	}
	rv[r] = v
}

// Aggregate reduces series into a ValueTable. Unnamed frames are ignored and
// frames whose name cannot be split are returned in skipped; neither is an
// error. For duplicate (group, region) pairs the last frame in input order wins.
func Aggregate(series []Frame) (table ValueTable, skipped []*MalformedNameError) {
	table = ValueTable{}
	for _, f := range series {
		if f.Name == "" {
			continue
		}
		g, r, err := SplitName(f.Name)
		if err != nil {
			var mne *MalformedNameError
			if errors.As(err, &mne) {
				skipped = append(skipped, mne)
			}
			continue
		}
		table.set(g, r, f.Last())
	}
	return table, skipped
}

// AggregateStrict is Aggregate but fails on the first malformed name.
// Unnamed frames are still ignored.
func AggregateStrict(series []Frame) (ValueTable, error) {
	table := ValueTable{}
	for i, f := range series {
		if f.Name == "" {
			continue
		}
		g, r, err := SplitName(f.Name)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		table.set(g, r, f.Last())
	}
	return table, nil
}
