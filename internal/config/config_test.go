package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"pdfmatch/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	workDir := t.TempDir()
	t.Chdir(workDir)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "pdfmatch")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if !filepath.IsAbs(cfg.Paths.InputDir) || filepath.Base(cfg.Paths.InputDir) != "pdfs" {
		t.Fatalf("unexpected input dir: %q", cfg.Paths.InputDir)
	}
	if cfg.Dataset.TitleColumn != "Title" || cfg.Dataset.IdentifierColumn != "DOI" {
		t.Fatalf("unexpected dataset columns: %+v", cfg.Dataset)
	}
	if cfg.Dataset.Pattern != "scopus_*.csv" {
		t.Fatalf("unexpected dataset pattern: %q", cfg.Dataset.Pattern)
	}
	if len(cfg.Matching.IdentifierSources) != 1 || cfg.Matching.IdentifierSources[0] != "ISJ" {
		t.Fatalf("unexpected identifier sources: %v", cfg.Matching.IdentifierSources)
	}
	if len(cfg.Matching.EncodingSources) != 1 || cfg.Matching.EncodingSources[0] != "ISR" {
		t.Fatalf("unexpected encoding sources: %v", cfg.Matching.EncodingSources)
	}
	if !cfg.Matching.RequireAcknowledgment {
		t.Fatal("expected acknowledgment required by default")
	}
	if cfg.Links.ResolverBase != "https://doi.org" {
		t.Fatalf("unexpected resolver base: %q", cfg.Links.ResolverBase)
	}
	if cfg.Export.Workbook {
		t.Fatal("expected workbook export disabled by default")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.OutputDir, cfg.Paths.LogDir, cfg.Paths.StateDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
	if _, err := os.Stat(cfg.Paths.InputDir); !os.IsNotExist(err) {
		t.Fatalf("input dir must not be created, stat err = %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "pdfmatch.toml")

	type payload struct {
		Paths struct {
			OutputDir string `toml:"output_dir"`
		} `toml:"paths"`
		Dataset struct {
			FileExtension string `toml:"file_extension"`
		} `toml:"dataset"`
		Matching struct {
			IdentifierSources []string `toml:"identifier_sources"`
		} `toml:"matching"`
		Profiles map[string]config.Profile `toml:"profiles"`
		Links    struct {
			ResolverBase string `toml:"resolver_base"`
		} `toml:"links"`
	}
	custom := payload{}
	custom.Paths.OutputDir = filepath.Join(tempDir, "out")
	custom.Dataset.FileExtension = "PDF"
	custom.Matching.IdentifierSources = []string{" isj ", "", "MISQ", "MISQ"}
	custom.Profiles = map[string]config.Profile{"CAIS": {HasYearPattern: true}}
	custom.Links.ResolverBase = "https://dx.doi.org/"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected config at %q, got %q (exists=%v)", configPath, resolved, exists)
	}
	if cfg.Paths.OutputDir != filepath.Join(tempDir, "out") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.Dataset.FileExtension != ".pdf" {
		t.Fatalf("expected extension normalized to .pdf, got %q", cfg.Dataset.FileExtension)
	}
	got := strings.Join(cfg.Matching.IdentifierSources, ",")
	if got != "isj,MISQ" {
		t.Fatalf("unexpected identifier sources: %q", got)
	}
	if !cfg.Profiles["CAIS"].HasYearPattern {
		t.Fatalf("expected CAIS profile to load, got %+v", cfg.Profiles)
	}
	if cfg.Links.ResolverBase != "https://dx.doi.org" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Links.ResolverBase)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"bad pattern", func(c *config.Config) { c.Dataset.Pattern = "scopus_[.csv" }, "dataset.pattern"},
		{"resolver scheme", func(c *config.Config) { c.Links.ResolverBase = "ftp://doi.org" }, "links.resolver_base"},
		{"resolver host", func(c *config.Config) { c.Links.ResolverBase = "https://" }, "links.resolver_base"},
		{"workbook ext", func(c *config.Config) { c.Export.WorkbookName = "all.csv" }, "export.workbook_name"},
		{"workbook path", func(c *config.Config) { c.Export.WorkbookName = "sub/all.xlsx" }, "export.workbook_name"},
		{"log level", func(c *config.Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"title column", func(c *config.Config) { c.Dataset.TitleColumn = " " }, "dataset.title_column"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Dataset.Pattern != "scopus_*.csv" {
		t.Fatalf("unexpected sample pattern: %q", cfg.Dataset.Pattern)
	}
}

func TestLoadFindsProjectConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	workDir := t.TempDir()
	t.Chdir(workDir)

	if err := os.WriteFile("pdfmatch.toml", []byte("[logging]\nlevel = \"debug\"\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}
	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "pdfmatch.toml" {
		t.Fatalf("expected project config, got %q (exists=%v)", resolved, exists)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected project config applied, got level %q", cfg.Logging.Level)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"~", home},
		{"~/logs", filepath.Join(home, "logs")},
		{"/tmp/../var/out/", "/var/out"},
	}
	for _, tt := range tests {
		got, err := config.ExpandPath(tt.input)
		if err != nil {
			t.Fatalf("ExpandPath(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
