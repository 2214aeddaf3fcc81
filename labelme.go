package pointprep

// LabelMe specific functionality.

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
)

// ErrMalformedInput reports an annotation document that fails structural
// expectations. Batch callers skip the document and continue.
var ErrMalformedInput = errors.New("malformed annotation document")

// The shape type whose points are extracted. Polygon, rectangle and circle
// shapes are ignored.
const pointShapeType = "point"

// LabelMeShape is a single shape entry within a LabelMe document.
type LabelMeShape struct {
	Label     string      `json:"label"`
	ShapeType string      `json:"shape_type"`
	Points    [][]float64 `json:"points"`
}

// LabelMeDocument defines the LabelMe annotation structure for a single file.
type LabelMeDocument struct {
	Shapes    []LabelMeShape `json:"shapes"`
	ImagePath string         `json:"imagePath,omitempty"`
}

// FromLabelMe reads and parses a LabelMe annotation document from path.
//
// A document that is not valid JSON or that lacks the shapes collection fails
// with an error wrapping ErrMalformedInput.
func FromLabelMe(path string) (LabelMeDocument, error) {
	enc, err := os.ReadFile(path)
	if err != nil {
		return LabelMeDocument{}, err
	}

	var doc LabelMeDocument
	if err := json.Unmarshal(enc, &doc); err != nil {
		return LabelMeDocument{}, fmt.Errorf("%w: failed to parse %q: %v",
			ErrMalformedInput, path, err)
	}
	if doc.Shapes == nil {
		return LabelMeDocument{}, fmt.Errorf("%w: %q has no shapes collection",
			ErrMalformedInput, path)
	}

	return doc, nil
}

// ExtractPoints converts the point shapes of doc that pass the label filter to
// the intermediate representation, in document order.
//
// The first coordinate pair of each point shape is used. Coordinates truncate
// toward zero, matching integer cast semantics. A point shape with an empty
// points list is skipped with a warning. A shape carrying neither a shape type
// nor points makes the document malformed.
func ExtractPoints(doc LabelMeDocument, filter LabelFilter) ([]Point, error) {
	points := make([]Point, 0, len(doc.Shapes))
	for i, s := range doc.Shapes {
		if s.ShapeType == "" && len(s.Points) == 0 {
			return nil, fmt.Errorf("%w: shape %d has neither shape_type nor points",
				ErrMalformedInput, i)
		}
		if s.ShapeType != pointShapeType || !filter.Keep(s.Label) {
			continue
		}
		if len(s.Points) == 0 || len(s.Points[0]) < 2 {
			log.Printf("Point shape %d (label %q) has no usable coordinates, skipping", i, s.Label)
			continue
		}

		points = append(points, Point{X: int(s.Points[0][0]), Y: int(s.Points[0][1])})
	}

	return points, nil
}
