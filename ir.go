package pointprep

// The intermediate representation for point annotations and dataset samples.

import (
	"strings"
)

// Point is a single annotated location in absolute pixel coordinates.
type Point struct {
	X int
	Y int
}

// Sample is a matched image / coordinate file pair sharing a filename stem.
type Sample struct {
	Stem      string
	ImagePath string
	CoordPath string
}

// FilterAll is the literal label token that disables label filtering.
const FilterAll = "all"

// LabelFilter is the set of label names to keep. A nil or empty filter keeps
// every label.
type LabelFilter map[string]struct{}

// NewLabelFilter builds a LabelFilter from raw label tokens. A nil/empty token
// list, or the single token "all" (case-insensitive), yields a nil filter that
// keeps everything.
func NewLabelFilter(labels []string) LabelFilter {
	if len(labels) == 0 {
		return nil
	}
	if len(labels) == 1 && strings.EqualFold(labels[0], FilterAll) {
		return nil
	}

	f := make(LabelFilter, len(labels))
	for _, l := range labels {
		f[l] = struct{}{}
	}
	return f
}

// Keep reports whether a shape with the given label passes the filter.
func (f LabelFilter) Keep(label string) bool {
	if len(f) == 0 {
		return true
	}
	_, ok := f[label]
	return ok
}

// Labels returns the filtered label names in unspecified order, or nil when
// the filter keeps everything.
func (f LabelFilter) Labels() []string {
	if len(f) == 0 {
		return nil
	}
	labels := make([]string, 0, len(f))
	for l := range f {
		labels = append(labels, l)
	}
	return labels
}
