package pointprep

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// The image file extensions the assembler recognises when pairing images with
// coordinate files.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

// isImageFile reports whether path has a recognised image file extension.
func isImageFile(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// filesByExtInDir returns all regular files with file extension ext found
// directly in directory dirPath, in directory order. All files are returned if
// ext is empty.
func filesByExtInDir(dirPath, ext string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %q: %v", dirPath, err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		// Regular files and symlinks only.
		if e.Type()&^os.ModeSymlink != 0 || !strings.HasSuffix(name, ext) {
			continue
		}
		files = append(files, filepath.Join(dirPath, name))
	}

	return files, nil
}

// splitPath splits the given file path into the dir name, the base name
// without extension and the extension (with the dot).
func splitPath(path string) (dir, baseNoExt, ext string) {
	dir, file := filepath.Split(path)
	dir = strings.TrimSuffix(dir, string(os.PathSeparator))
	ext = filepath.Ext(file)
	baseNoExt = file[0 : len(file)-len(ext)]
	return dir, baseNoExt, ext
}

// mapStemsToPaths maps the base names of the given file paths, with the file
// type extensions stripped off, to the full path.
func mapStemsToPaths(filePaths []string) map[string]string {
	mapping := make(map[string]string, len(filePaths))
	for _, path := range filePaths {
		_, baseNoExt, _ := splitPath(path)
		mapping[baseNoExt] = path
	}
	return mapping
}

// readLines returns a slice of lines read from the file at path.
func readLines(path string) (lines []string, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file %q: %v", path, err)
	}
	defer closeWithErrCheck(file, &err)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %q as lines: %v", path, err)
	}

	return lines, nil
}

// copyFile copies the regular file at src to dst, overwriting dst if it
// exists. The file content is preserved byte for byte.
func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer closeWithErrCheck(in, &err)

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer closeWithErrCheck(out, &err)

	_, err = io.Copy(out, in)
	return err
}

// closeWithErrCheck calls c.Close(). If it returns an error, and (*e == nil),
// e is set to that error.
func closeWithErrCheck(c io.Closer, e *error) {
	err := c.Close()
	if err != nil && *e == nil {
		*e = err
	}
}
