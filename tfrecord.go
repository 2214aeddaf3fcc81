package pointprep

// TFRecord point annotation specific functionality.
//
// Serialises an assembled dataset group into TFRecord shard files, one
// tensorflow.Example per sample. The raw image bytes are stored as-is; no
// image decoding takes place.

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/protobuf/proto"
	"github.com/ryszard/tfutils/go/example"
	"github.com/ryszard/tfutils/go/tfrecord"
	tensorflow "github.com/ryszard/tfutils/proto/tensorflow/core/example"
)

// TFFeatureMap maps feature names to their values. Values must be convertible
// to tensorflow.Feature.
type TFFeatureMap map[string]interface{}

// toTFExample converts one manifest entry of an assembled dataset to the
// TFRecord feature map. Paths are relative to datasetRoot, forward slashes.
func toTFExample(datasetRoot, imageRel, coordRel string) (TFFeatureMap, error) {
	imgData, err := os.ReadFile(filepath.Join(datasetRoot, filepath.FromSlash(imageRel)))
	if err != nil {
		return nil, fmt.Errorf("failed to read the image: %v", err)
	}

	points, err := ReadCoords(filepath.Join(datasetRoot, filepath.FromSlash(coordRel)))
	if err != nil {
		return nil, fmt.Errorf("failed to read the coordinates: %v", err)
	}

	xs := make([]float32, len(points))
	ys := make([]float32, len(points))
	for i, p := range points {
		xs[i] = float32(p.X)
		ys[i] = float32(p.Y)
	}

	f := make(TFFeatureMap, 8)
	f["image/encoded"] = imgData
	f["image/format"] = strings.TrimPrefix(strings.ToLower(filepath.Ext(imageRel)), ".")
	f["image/filename"] = imageRel
	f["image/source_id"] = imageRel
	f["image/object/point/x"] = xs
	f["image/object/point/y"] = ys
	f["image/object/count"] = len(points)

	return f, nil
}

// WriteTFRecord does a streaming conversion, serialisation and file write of
// the dataset group's samples to one or more TFRecord files stored under
// recordPath (with suffixes added when numShards > 1).
//
// The samples are read from the <group>.list manifest at datasetRoot.
// Per-sample read failures are logged and skipped.
func WriteTFRecord(datasetRoot, group, recordPath string, numShards int) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = fmt.Errorf("conversion to TensorFlow Example failed: %v", e)
		}
	}()

	if numShards <= 0 {
		numShards = 1
	}

	entries, err := readLines(filepath.Join(datasetRoot, group+".list"))
	if err != nil {
		return fmt.Errorf("cannot read the %s manifest: %v", group, err)
	}
	if len(entries) == 0 {
		log.Printf("The %s manifest is empty, nothing to export", group)
		return nil
	}

	fmtShardSuffix := func(idx int) string {
		return fmt.Sprintf("-%05d-of-%05d", idx, numShards)
	}

	var shardFile *os.File
	shardSize := int(math.Ceil(float64(len(entries)) / float64(numShards)))
	shardIdx := -1
	written := 0

	// Convert and serialise one sample at a time.
	for i, entry := range entries {
		// Check if a new shard file needs to be opened for writing.
		if i%shardSize == 0 {
			shardIdx++

			if shardFile != nil {
				_ = shardFile.Close()
				shardFile = nil
			}

			shardPath := recordPath
			if numShards > 1 {
				shardPath += fmtShardSuffix(shardIdx)
			}
			f, err := os.Create(shardPath)
			if err != nil {
				return fmt.Errorf("failed to create shard at %q: %v", shardPath, err)
			}
			shardFile = f
		}

		fields := strings.Fields(entry)
		if len(fields) != 2 {
			log.Printf("Malformed manifest line %q, skipping", entry)
			continue
		}

		f, err := toTFExample(datasetRoot, fields[0], fields[1])
		if err != nil {
			log.Printf("Failed to convert %q: %v", fields[0], err)
			continue
		}

		if err := writeTFRecordExample(shardFile, example.New(f)); err != nil {
			log.Print("Failed to write example: ", err)
			break
		}
		written++
	}

	if shardFile != nil {
		_ = shardFile.Close()
	}

	log.Printf("Wrote %d of %d %s examples to %q", written, len(entries), group, recordPath)
	return nil
}

// writeTFRecordExample serialises the example and writes it as a TFRecord to w.
func writeTFRecordExample(w io.Writer, e *tensorflow.Example) error {
	enc, err := proto.Marshal(e)
	if err != nil {
		return err
	}

	return tfrecord.Write(w, enc)
}
