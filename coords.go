package pointprep

// Coordinate file specific functionality.
//
// A coordinate file holds one "x y" line per annotated point, UTF-8,
// newline-terminated, no header. It is the per-image ground truth format
// consumed by point-counting training pipelines.

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CoordExt is the file extension for coordinate files.
const CoordExt = ".txt"

// WriteCoords writes one space-separated "x y" line per point to path,
// overwriting the file if it exists.
func WriteCoords(path string, points []Point) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create coordinate file %q: %v", path, err)
	}
	defer closeWithErrCheck(file, &err)

	for _, p := range points {
		if _, err := fmt.Fprintf(file, "%d %d\n", p.X, p.Y); err != nil {
			return err
		}
	}

	return nil
}

// ReadCoords parses the coordinate file at path back into points, in file
// order. Blank lines are ignored.
func ReadCoords(path string) ([]Point, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	points := make([]Point, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, err := parseCoordLine(line)
		if err != nil {
			return nil, fmt.Errorf("%q: %v", path, err)
		}
		points = append(points, p)
	}

	return points, nil
}

// parseCoordLine parses the pair of values for a single point.
func parseCoordLine(line string) (Point, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 2 {
		return Point{}, fmt.Errorf("expected two coordinates in %q", line)
	}

	x, err := strconv.Atoi(tokens[0])
	if err != nil {
		return Point{}, fmt.Errorf("unexpected value in %q: %v", line, err)
	}
	y, err := strconv.Atoi(tokens[1])
	if err != nil {
		return Point{}, fmt.Errorf("unexpected value in %q: %v", line, err)
	}

	return Point{X: x, Y: y}, nil
}

// ExtractFile extracts the filtered points from the LabelMe document at
// jsonPath and writes them to a coordinate file named by the document's stem.
// The file is placed in outDir, or beside the input when outDir is empty.
//
// When the document yields zero points no file is written and an empty
// outPath is returned.
func ExtractFile(jsonPath, outDir string, filter LabelFilter) (outPath string, n int, err error) {
	doc, err := FromLabelMe(jsonPath)
	if err != nil {
		return "", 0, err
	}

	points, err := ExtractPoints(doc, filter)
	if err != nil {
		return "", 0, fmt.Errorf("%q: %w", jsonPath, err)
	}
	if len(points) == 0 {
		return "", 0, nil
	}

	dir, baseNoExt, _ := splitPath(jsonPath)
	if outDir != "" {
		dir = outDir
	}
	outPath = filepath.Join(dir, baseNoExt+CoordExt)

	if err := WriteCoords(outPath, points); err != nil {
		return "", 0, err
	}

	return outPath, len(points), nil
}

// BatchResult holds the outcome of a batch extraction run.
type BatchResult struct {
	Extracted int // Documents converted to coordinate files.
	Skipped   int // Documents with no matching point shapes.
	Failed    int // Malformed documents.
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Skipped + r.Failed
}

// ExtractDir applies ExtractFile to every .json document found directly in
// srcDir (no recursion), writing the coordinate files to dstDir. The
// destination directory is created if absent.
//
// Malformed documents are logged and counted, never abort the batch.
func ExtractDir(srcDir, dstDir string, filter LabelFilter) (BatchResult, error) {
	jsonFiles, err := filesByExtInDir(srcDir, ".json")
	if err != nil {
		return BatchResult{}, err
	}
	log.Printf("Extracting points from %d annotation documents", len(jsonFiles))

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("cannot create output directory %q: %v", dstDir, err)
	}

	var result BatchResult
	for _, path := range jsonFiles {
		outPath, n, err := ExtractFile(path, dstDir, filter)
		switch {
		case errors.Is(err, ErrMalformedInput):
			log.Printf("Error while parsing, skipping %q: %v", path, err)
			result.Failed++
		case err != nil:
			log.Printf("Failed to extract %q: %v", path, err)
			result.Failed++
		case n == 0:
			log.Printf("No matching point shapes in %q, skipping", path)
			result.Skipped++
		default:
			log.Printf("Extracted %d points from %q to %q", n, path, outPath)
			result.Extracted++
		}
	}

	return result, nil
}
