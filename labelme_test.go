package pointprep

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDoc writes a JSON document to a temp file and returns its path.
func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFromLabelMe(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name:    "valid document",
			content: `{"shapes":[{"label":"weed","shape_type":"point","points":[[10.7,20.2]]}]}`,
		},
		{
			name:    "empty shapes collection",
			content: `{"shapes":[]}`,
		},
		{
			name:    "missing shapes collection",
			content: `{"imagePath":"a.jpg"}`,
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			content: `{"shapes": [`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := FromLabelMe(writeDoc(t, "a.json", tt.content))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedInput)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, doc.Shapes)
		})
	}
}

func TestFromLabelMeMissingFile(t *testing.T) {
	_, err := FromLabelMe(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedInput)
}

func TestExtractPoints(t *testing.T) {
	doc := LabelMeDocument{Shapes: []LabelMeShape{
		{Label: "weed", ShapeType: "point", Points: [][]float64{{10.7, 20.2}}},
		{Label: "weed", ShapeType: "polygon", Points: [][]float64{{0, 0}, {1, 1}}},
		{Label: "crop", ShapeType: "point", Points: [][]float64{{3.1, 4.9}}},
		{Label: "weed", ShapeType: "rectangle", Points: [][]float64{{5, 5}, {9, 9}}},
	}}

	tests := []struct {
		name   string
		filter LabelFilter
		want   []Point
	}{
		{
			name: "no filter keeps every point shape",
			want: []Point{{10, 20}, {3, 4}},
		},
		{
			name:   "filter by label",
			filter: NewLabelFilter([]string{"weed"}),
			want:   []Point{{10, 20}},
		},
		{
			name:   "all token disables filtering",
			filter: NewLabelFilter([]string{"all"}),
			want:   []Point{{10, 20}, {3, 4}},
		},
		{
			name:   "filter matching nothing",
			filter: NewLabelFilter([]string{"tree"}),
			want:   []Point{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractPoints(doc, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractPointsTruncatesTowardZero(t *testing.T) {
	doc := LabelMeDocument{Shapes: []LabelMeShape{
		{Label: "a", ShapeType: "point", Points: [][]float64{{10.9, 20.1}}},
	}}

	got, err := ExtractPoints(doc, nil)
	require.NoError(t, err)
	assert.Equal(t, []Point{{10, 20}}, got)
}

func TestExtractPointsSkipsEmptyPointShape(t *testing.T) {
	doc := LabelMeDocument{Shapes: []LabelMeShape{
		{Label: "a", ShapeType: "point", Points: [][]float64{}},
		{Label: "b", ShapeType: "point", Points: [][]float64{{1.5, 2.5}}},
	}}

	got, err := ExtractPoints(doc, nil)
	require.NoError(t, err)
	assert.Equal(t, []Point{{1, 2}}, got)
}

func TestExtractPointsMalformedShape(t *testing.T) {
	doc := LabelMeDocument{Shapes: []LabelMeShape{
		{Label: "a"}, // Neither shape_type nor points.
	}}

	_, err := ExtractPoints(doc, nil)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

// Extraction has no hidden randomness: two runs over the same document with
// the same filter yield identical output.
func TestExtractPointsDeterministic(t *testing.T) {
	doc := LabelMeDocument{Shapes: []LabelMeShape{
		{Label: "a", ShapeType: "point", Points: [][]float64{{1.2, 3.4}}},
		{Label: "b", ShapeType: "point", Points: [][]float64{{5.6, 7.8}}},
	}}
	filter := NewLabelFilter([]string{"a", "b"})

	first, err := ExtractPoints(doc, filter)
	require.NoError(t, err)
	second, err := ExtractPoints(doc, filter)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNewLabelFilter(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		label  string
		keep   bool
	}{
		{name: "nil keeps everything", labels: nil, label: "anything", keep: true},
		{name: "all token keeps everything", labels: []string{"all"}, label: "weed", keep: true},
		{name: "all token is case-insensitive", labels: []string{"ALL"}, label: "weed", keep: true},
		{name: "member label kept", labels: []string{"weed", "crop"}, label: "crop", keep: true},
		{name: "non-member label dropped", labels: []string{"weed", "crop"}, label: "tree", keep: false},
		{name: "all among other tokens is a literal label", labels: []string{"all", "weed"}, label: "grass", keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewLabelFilter(tt.labels)
			assert.Equal(t, tt.keep, f.Keep(tt.label))
		})
	}
}
