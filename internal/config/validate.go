package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDataset(); err != nil {
		return err
	}
	if err := c.validateLinks(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDataset() error {
	if strings.TrimSpace(c.Dataset.TitleColumn) == "" {
		return errors.New("dataset.title_column must be set")
	}
	if strings.TrimSpace(c.Dataset.IdentifierColumn) == "" {
		return errors.New("dataset.identifier_column must be set")
	}
	if _, err := filepath.Match(c.Dataset.Pattern, ""); err != nil {
		return fmt.Errorf("dataset.pattern %q is not a valid glob: %w", c.Dataset.Pattern, err)
	}
	if c.Dataset.FileExtension == "." {
		return errors.New("dataset.file_extension must name an extension")
	}
	return nil
}

func (c *Config) validateLinks() error {
	parsed, err := url.Parse(c.Links.ResolverBase)
	if err != nil {
		return fmt.Errorf("links.resolver_base: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("links.resolver_base must be an http(s) URL, got %q", c.Links.ResolverBase)
	}
	if parsed.Host == "" {
		return fmt.Errorf("links.resolver_base must include a host, got %q", c.Links.ResolverBase)
	}
	return nil
}

func (c *Config) validateExport() error {
	if !strings.EqualFold(filepath.Ext(c.Export.WorkbookName), ".xlsx") {
		return errors.New("export.workbook_name must end in .xlsx")
	}
	if strings.ContainsAny(c.Export.WorkbookName, `/\`) {
		return errors.New("export.workbook_name must be a file name, not a path")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
}
