package partition

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pdfmatch/internal/dataset"
	"pdfmatch/internal/matching"
	"pdfmatch/internal/textutil"
)

// DirName returns the output subdirectory holding partitions of kind.
func DirName(kind matching.Kind) string {
	return kind.String()
}

// TargetName returns the location of a source's partition relative to the
// output root.
func TargetName(source string, kind matching.Kind) string {
	return filepath.Join(DirName(kind), textutil.SanitizeFileName(source)+"_"+kind.String()+".csv")
}

// Writer persists partitions under Root.
type Writer struct {
	Root string
}

// Write stores every non-empty partition of set and returns the absolute
// paths written. Empty partitions produce no file; a stale file from an
// earlier run for the same source and kind is removed so it cannot leak
// into aggregation.
func (w Writer) Write(set Set) ([]string, error) {
	var written []string
	for _, p := range set.All() {
		target := filepath.Join(w.Root, p.Target)
		if p.Empty() {
			if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return written, fmt.Errorf("remove stale partition %s: %w", target, err)
			}
			continue
		}
		if err := dataset.WriteCSV(target, p.Headers, p.Rows); err != nil {
			return written, fmt.Errorf("write %s partition for %s: %w", p.Kind, p.Source, err)
		}
		written = append(written, target)
	}
	return written, nil
}

// LoadDir reads every partition of kind under root, sorted by file name. A
// missing kind directory yields no partitions.
func LoadDir(root string, kind matching.Kind) ([]Partition, error) {
	dir := filepath.Join(root, DirName(kind))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	suffix := "_" + kind.String() + ".csv"
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	partitions := make([]Partition, 0, len(names))
	for _, name := range names {
		table, err := dataset.LoadCSV(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		partitions = append(partitions, Partition{
			Source:  SourceFromFileName(name),
			Kind:    kind,
			Headers: table.Headers,
			Rows:    table.Rows,
			Target:  filepath.Join(DirName(kind), name),
		})
	}
	return partitions, nil
}

// SourceFromFileName returns the part of a partition file name before its
// first underscore.
func SourceFromFileName(name string) string {
	base := filepath.Base(name)
	if i := strings.Index(base, "_"); i >= 0 {
		return base[:i]
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
