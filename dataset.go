package pointprep

// Dataset assembly specific functionality.
//
// The assembler matches images to coordinate files by stem, partitions the
// matched set into train and test groups, materialises one subdirectory per
// sample and writes a plain-text manifest per group for the downstream
// training pipeline.

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path"
	"path/filepath"
)

// The dataset group names and their manifest files (<group>.list).
const (
	GroupTrain = "train"
	GroupTest  = "test"
)

// ErrInvalidFraction reports a train fraction outside the open interval (0, 1).
var ErrInvalidFraction = errors.New("train fraction must be in (0, 1)")

// ErrEmptyDataset reports that no image / coordinate file pairs were matched.
var ErrEmptyDataset = errors.New("no matched samples")

// MatchResult holds the outcome of pairing an image directory with a
// coordinate file directory.
type MatchResult struct {
	Samples       []Sample // Matched pairs, in sorted stem order.
	MissingCoords []string // Image stems with no coordinate file.
	MissingImages []string // Coordinate file stems with no image.
}

// CollectSamples pairs the images found directly in imageDir with the
// coordinate files found directly in coordDir, matching by filename stem.
// Stems present in only one directory are reported, not errors.
func CollectSamples(imageDir, coordDir string) (MatchResult, error) {
	imageFiles, err := filesByExtInDir(imageDir, "")
	if err != nil {
		return MatchResult{}, err
	}
	coordFiles, err := filesByExtInDir(coordDir, CoordExt)
	if err != nil {
		return MatchResult{}, err
	}
	coordStems := mapStemsToPaths(coordFiles)

	var result MatchResult
	matched := make(map[string]bool, len(coordStems))
	for _, imgPath := range imageFiles {
		if !isImageFile(imgPath) {
			continue
		}
		_, stem, _ := splitPath(imgPath)

		coordPath, ok := coordStems[stem]
		if !ok {
			result.MissingCoords = append(result.MissingCoords, stem)
			continue
		}
		matched[stem] = true
		result.Samples = append(result.Samples, Sample{
			Stem:      stem,
			ImagePath: imgPath,
			CoordPath: coordPath,
		})
	}

	for stem := range coordStems {
		if !matched[stem] {
			result.MissingImages = append(result.MissingImages, stem)
		}
	}

	return result, nil
}

// SplitSamples randomly partitions samples into train and test groups.
//
// The samples are shuffled with rng and split at round(trainFraction * N),
// clamped so that neither group is empty when N >= 2. The groups are disjoint
// and their union is the input set.
func SplitSamples(samples []Sample, trainFraction float64, rng *rand.Rand) (
	train, test []Sample, err error) {

	if trainFraction <= 0 || trainFraction >= 1 {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFraction, trainFraction)
	}

	shuffled := make([]Sample, len(samples))
	copy(shuffled, samples)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := len(shuffled)
	trainCount := int(math.Round(trainFraction * float64(n)))
	if trainCount > n-1 {
		trainCount = n - 1
	}
	if trainCount < 1 {
		trainCount = 1
	}

	return shuffled[:trainCount], shuffled[trainCount:], nil
}

// GroupResult holds the outcome of materialising one dataset group.
type GroupResult struct {
	Written int // Samples copied into the group and listed in the manifest.
	Failed  int // Samples excluded because a file copy failed.
}

// BuildGroup copies each sample into outRoot/<group>/<stem>/ and writes the
// <group>.list manifest at outRoot, one line per sample in the given order.
// Manifest paths are relative to outRoot with forward-slash separators.
//
// A copy failure excludes the sample from the group and the manifest, never
// aborts the build.
func BuildGroup(outRoot, group string, samples []Sample) (GroupResult, error) {
	groupDir := filepath.Join(outRoot, group)
	if err := os.MkdirAll(groupDir, 0o755); err != nil {
		return GroupResult{}, fmt.Errorf("cannot create group directory %q: %v", groupDir, err)
	}

	var result GroupResult
	manifest := make([]string, 0, len(samples))
	for _, s := range samples {
		if err := copySample(groupDir, s); err != nil {
			log.Printf("Failed to copy sample %q, excluding it from %s: %v", s.Stem, group, err)
			result.Failed++
			continue
		}

		_, _, imgExt := splitPath(s.ImagePath)
		manifest = append(manifest, fmt.Sprintf("%s %s",
			path.Join(group, s.Stem, s.Stem+imgExt),
			path.Join(group, s.Stem, s.Stem+CoordExt)))
		result.Written++
	}

	if err := writeManifest(filepath.Join(outRoot, group+".list"), manifest); err != nil {
		return result, err
	}

	log.Printf("Built group %s with %d samples (%d failed)", group, result.Written, result.Failed)
	return result, nil
}

// copySample copies the image and coordinate file of s into a subdirectory of
// groupDir named after the stem.
func copySample(groupDir string, s Sample) error {
	sampleDir := filepath.Join(groupDir, s.Stem)
	if err := os.MkdirAll(sampleDir, 0o755); err != nil {
		return err
	}

	_, _, imgExt := splitPath(s.ImagePath)
	if err := copyFile(s.ImagePath, filepath.Join(sampleDir, s.Stem+imgExt)); err != nil {
		return err
	}
	return copyFile(s.CoordPath, filepath.Join(sampleDir, s.Stem+CoordExt))
}

// writeManifest writes one manifest line per entry to path, overwriting.
func writeManifest(path string, entries []string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create manifest %q: %v", path, err)
	}
	defer closeWithErrCheck(file, &err)

	for _, line := range entries {
		if _, err := fmt.Fprintln(file, line); err != nil {
			return err
		}
	}

	return nil
}

// AssembleResult holds the outcome of a dataset assembly run.
type AssembleResult struct {
	Matched       int // Image / coordinate pairs found.
	Train         int // Samples written to the train group.
	Test          int // Samples written to the test group.
	Failed        int // Samples excluded because a file copy failed.
	MissingCoords int // Images with no coordinate file.
	MissingImages int // Coordinate files with no image.
}

// Assemble builds a complete train/test dataset under outRoot from the images
// in imageDir and the coordinate files in coordDir.
//
// The matched samples are partitioned by trainFraction using a rand source
// seeded with seed, so identical inputs and seed reproduce an identical
// split. Nothing is written when no samples match or the fraction is invalid.
func Assemble(imageDir, coordDir, outRoot string, trainFraction float64, seed int64) (
	AssembleResult, error) {

	if trainFraction <= 0 || trainFraction >= 1 {
		return AssembleResult{}, fmt.Errorf("%w: %v", ErrInvalidFraction, trainFraction)
	}

	matches, err := CollectSamples(imageDir, coordDir)
	if err != nil {
		return AssembleResult{}, err
	}
	for _, stem := range matches.MissingCoords {
		log.Printf("No coordinate file for image %q, excluding it", stem)
	}
	for _, stem := range matches.MissingImages {
		log.Printf("No image for coordinate file %q, excluding it", stem)
	}
	if len(matches.Samples) == 0 {
		return AssembleResult{}, fmt.Errorf("%w in %q and %q", ErrEmptyDataset, imageDir, coordDir)
	}
	log.Printf("Matched %d samples (%d images without coordinates, %d coordinate files without images)",
		len(matches.Samples), len(matches.MissingCoords), len(matches.MissingImages))

	rng := rand.New(rand.NewSource(seed))
	train, test, err := SplitSamples(matches.Samples, trainFraction, rng)
	if err != nil {
		return AssembleResult{}, err
	}

	if err := os.MkdirAll(outRoot, 0o755); err != nil {
		return AssembleResult{}, fmt.Errorf("cannot create output root %q: %v", outRoot, err)
	}

	trainResult, err := BuildGroup(outRoot, GroupTrain, train)
	if err != nil {
		return AssembleResult{}, err
	}
	testResult, err := BuildGroup(outRoot, GroupTest, test)
	if err != nil {
		return AssembleResult{}, err
	}

	return AssembleResult{
		Matched:       len(matches.Samples),
		Train:         trainResult.Written,
		Test:          testResult.Written,
		Failed:        trainResult.Failed + testResult.Failed,
		MissingCoords: len(matches.MissingCoords),
		MissingImages: len(matches.MissingImages),
	}, nil
}
