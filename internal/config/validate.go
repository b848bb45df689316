package config

import (
	"errors"
	"fmt"
	"strings"

	"assetpress/internal/encoding"
)

// Validate ensures the configuration is usable. Each rule fails with its own
// error so the caller can report exactly which parameter is wrong.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateConvert(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateConvert() error {
	if _, err := encoding.ParseFormat(c.Convert.Format); err != nil {
		return fmt.Errorf("convert.format: %w", err)
	}
	if c.Convert.TargetWidth < 1 {
		return errors.New("convert.target_width must be a positive integer")
	}
	if c.Convert.Quality < 0 || c.Convert.Quality > 100 {
		return errors.New("convert.quality must be between 0 and 100")
	}
	if c.Convert.PDFZoom <= 0 {
		return errors.New("convert.pdf_zoom must be a positive number")
	}
	return nil
}

// OutputFormat returns the parsed output format. Only meaningful after
// Validate has passed.
func (c *Config) OutputFormat() encoding.Format {
	format, err := encoding.ParseFormat(c.Convert.Format)
	if err != nil {
		return encoding.FormatInvalid
	}
	return format
}

// WantsPDF reports whether the configured extension set includes documents.
func (c *Config) WantsPDF() bool {
	for _, ext := range c.Convert.Extensions {
		if ext == ".pdf" {
			return true
		}
	}
	return false
}
