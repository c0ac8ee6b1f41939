package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	InputDir   string `toml:"input_dir"`
	DatasetDir string `toml:"dataset_dir"`
	OutputDir  string `toml:"output_dir"`
	LogDir     string `toml:"log_dir"`
	StateDir   string `toml:"state_dir"`
}

// Dataset describes how bibliographic datasets are located and read.
type Dataset struct {
	Pattern          string `toml:"pattern"`
	TitleColumn      string `toml:"title_column"`
	IdentifierColumn string `toml:"identifier_column"`
	FileExtension    string `toml:"file_extension"`
}

// Matching contains source selection and per-run profile overrides.
type Matching struct {
	// Sources restricts the run to the named sources. Empty means every
	// subdirectory of paths.input_dir.
	Sources []string `toml:"sources"`
	// IdentifierSources switches identifier matching on for the named sources.
	IdentifierSources []string `toml:"identifier_sources"`
	// EncodingSources switches encoding-artifact stripping on for the named sources.
	EncodingSources       []string `toml:"encoding_sources"`
	RequireAcknowledgment bool     `toml:"require_acknowledgment"`
}

// Profile is a user-supplied naming convention for one source.
type Profile struct {
	HasYearPattern         bool `toml:"has_year_pattern"`
	UsesIdentifierMatching bool `toml:"uses_identifier_matching"`
	UsesSpecialEncoding    bool `toml:"uses_special_encoding"`
}

// Links configures retrieval link generation for unmatched rows.
type Links struct {
	ResolverBase string `toml:"resolver_base"`
}

// Export configures the optional aggregate workbook.
type Export struct {
	Workbook     bool   `toml:"workbook"`
	WorkbookName string `toml:"workbook_name"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for pdfmatch.
//
// Configuration sections by subsystem:
//   - Paths: input, dataset, output, log, and ledger directories
//   - Dataset: dataset file pattern and column names
//   - Matching: source selection and profile override sets
//   - Profiles: naming conventions merged over the built-in table
//   - Links: resolver base for retrieval links
//   - Export: aggregate workbook output
//   - Logging: log format, level, and retention
type Config struct {
	Paths    Paths              `toml:"paths"`
	Dataset  Dataset            `toml:"dataset"`
	Matching Matching           `toml:"matching"`
	Profiles map[string]Profile `toml:"profiles"`
	Links    Links              `toml:"links"`
	Export   Export             `toml:"export"`
	Logging  Logging            `toml:"logging"`
}

const (
	defaultConfigFile = "~/.config/pdfmatch/config.toml"
	projectConfigFile = "pdfmatch.toml"
)

// DefaultConfigPath returns the absolute path of the per-user config file.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigFile)
}

// Load reads the config at path, or the first of the per-user and
// project-local files that exists when path is empty. A missing file yields
// the defaults. The returned config is normalized and validated; the string
// and bool report which file was considered and whether it existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}
	if exists {
		if err := decodeFile(resolved, &cfg); err != nil {
			return nil, "", false, err
		}
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		exists, err := isFile(expanded)
		if err != nil {
			return "", false, err
		}
		return expanded, exists, nil
	}

	candidates := make([]string, 0, 2)
	for _, name := range []string{defaultConfigFile, projectConfigFile} {
		expanded, err := expandPath(name)
		if err != nil {
			return "", false, err
		}
		candidates = append(candidates, expanded)
	}
	for _, candidate := range candidates {
		if ok, _ := isFile(candidate); ok {
			return candidate, true, nil
		}
	}
	return candidates[0], false, nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		return !info.IsDir(), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat config: %w", err)
	}
}

// EnsureDirectories creates the directories a run writes into. Input and
// dataset directories are never created; their absence is reported by
// preflight checks instead.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir, c.Paths.StateDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LedgerPath returns the location of the run ledger database.
func (c *Config) LedgerPath() string {
	return filepath.Join(c.Paths.StateDir, "ledger.db")
}

// WorkbookPath returns the location of the aggregate workbook.
func (c *Config) WorkbookPath() string {
	return filepath.Join(c.Paths.OutputDir, c.Export.WorkbookName)
}

// ExpandPath resolves "~" against the home directory and returns an
// absolute, cleaned path. Empty stays empty.
func ExpandPath(value string) (string, error) {
	return expandPath(value)
}

func expandPath(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if value == "~" || strings.HasPrefix(value, "~/") || strings.HasPrefix(value, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		value = filepath.Join(home, value[1:])
	}
	absolute, err := filepath.Abs(value)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", value, err)
	}
	return absolute, nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
