package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDataset()
	c.normalizeMatching()
	c.normalizeLinks()
	c.normalizeExport()
	c.normalizeLogging()
	return nil
}

// Normalize re-applies path expansion and defaulting after callers mutate a
// loaded config (for example when CLI flags override directories).
func (c *Config) Normalize() error {
	return c.normalize()
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		c.Paths.InputDir = defaultInputDir
	}
	if c.Paths.InputDir, err = expandPath(c.Paths.InputDir); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DatasetDir) == "" {
		c.Paths.DatasetDir = defaultDatasetDir
	}
	if c.Paths.DatasetDir, err = expandPath(c.Paths.DatasetDir); err != nil {
		return fmt.Errorf("paths.dataset_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDataset() {
	c.Dataset.Pattern = strings.TrimSpace(c.Dataset.Pattern)
	if c.Dataset.Pattern == "" {
		c.Dataset.Pattern = defaultDatasetPattern
	}
	c.Dataset.TitleColumn = strings.TrimSpace(c.Dataset.TitleColumn)
	if c.Dataset.TitleColumn == "" {
		c.Dataset.TitleColumn = defaultTitleColumn
	}
	c.Dataset.IdentifierColumn = strings.TrimSpace(c.Dataset.IdentifierColumn)
	if c.Dataset.IdentifierColumn == "" {
		c.Dataset.IdentifierColumn = defaultIdentifierColumn
	}
	ext := strings.ToLower(strings.TrimSpace(c.Dataset.FileExtension))
	if ext == "" {
		ext = defaultFileExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Dataset.FileExtension = ext
}

func (c *Config) normalizeMatching() {
	c.Matching.Sources = normalizeNames(c.Matching.Sources)
	c.Matching.IdentifierSources = normalizeNames(c.Matching.IdentifierSources)
	c.Matching.EncodingSources = normalizeNames(c.Matching.EncodingSources)
}

// normalizeNames trims entries and drops blanks and exact repeats while
// preserving order. Case is kept; profile lookup folds case itself.
func normalizeNames(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func (c *Config) normalizeLinks() {
	c.Links.ResolverBase = strings.TrimRight(strings.TrimSpace(c.Links.ResolverBase), "/")
	if c.Links.ResolverBase == "" {
		c.Links.ResolverBase = defaultResolverBase
	}
}

func (c *Config) normalizeExport() {
	c.Export.WorkbookName = strings.TrimSpace(c.Export.WorkbookName)
	if c.Export.WorkbookName == "" {
		c.Export.WorkbookName = defaultWorkbookName
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
