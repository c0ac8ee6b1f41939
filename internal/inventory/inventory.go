package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotDirectory is returned when an input path exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// FileRecord is one discovered document.
type FileRecord struct {
	// Name is the filename without its extension.
	Name string
	// Path is the absolute location of the file.
	Path string
}

// ListFiles returns the files directly inside dir whose extension equals ext
// (compared case-insensitively), sorted by name.
func ListFiles(dir, ext string) ([]FileRecord, error) {
	entries, err := readDir(dir)
	if err != nil {
		return nil, err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", dir, err)
	}
	files := make([]FileRecord, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || isHidden(name) {
			continue
		}
		fileExt := filepath.Ext(name)
		if !strings.EqualFold(fileExt, ext) {
			continue
		}
		files = append(files, FileRecord{
			Name: strings.TrimSuffix(name, fileExt),
			Path: filepath.Join(absDir, name),
		})
	}
	return files, nil
}

// DiscoverSources returns the names of the non-hidden subdirectories of
// inputDir, sorted.
func DiscoverSources(inputDir string) ([]string, error) {
	entries, err := readDir(inputDir)
	if err != nil {
		return nil, err
	}
	var sources []string
	for _, entry := range entries {
		if !entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		sources = append(sources, entry.Name())
	}
	return sources, nil
}

// FindDatasets returns the files in dir matching pattern, sorted.
func FindDatasets(dir, pattern string) ([]string, error) {
	if _, err := readDir(dir); err != nil {
		return nil, err
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("dataset pattern %q: %w", pattern, err)
	}
	out := matches[:0]
	for _, match := range matches {
		if info, err := os.Stat(match); err == nil && !info.IsDir() {
			out = append(out, match)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Mapping assigns dataset files to sources.
type Mapping struct {
	// Files maps a source name to its dataset path.
	Files map[string]string
	// Shared is set when a single dataset file serves every source.
	Shared bool
}

// Dataset returns the dataset path for source.
func (m Mapping) Dataset(source string) (string, bool) {
	path, ok := m.Files[source]
	return path, ok
}

// MapDatasets finds the dataset files under datasetDir and assigns them to
// sources. A lone dataset file is shared by every source. Otherwise each file
// goes to the first source whose lower-cased name appears in the file's
// lower-cased stem; when several files name the same source the last one in
// sorted order wins. Sources left without a file are absent from the mapping.
func MapDatasets(datasetDir, pattern string, sources []string) (Mapping, error) {
	files, err := FindDatasets(datasetDir, pattern)
	if err != nil {
		return Mapping{}, err
	}
	mapping := Mapping{Files: make(map[string]string, len(sources))}
	if len(files) == 1 {
		mapping.Shared = true
		for _, source := range sources {
			mapping.Files[source] = files[0]
		}
		return mapping, nil
	}
	for _, file := range files {
		base := filepath.Base(file)
		stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
		for _, source := range sources {
			if strings.Contains(stem, strings.ToLower(source)) {
				mapping.Files[source] = file
				break
			}
		}
	}
	return mapping, nil
}

func readDir(dir string) ([]os.DirEntry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q: %w", dir, ErrNotDirectory)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", dir, err)
	}
	return entries, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
