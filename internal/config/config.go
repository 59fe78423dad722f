// Package config manages application configuration.
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/roboco-io/hwpxmd/internal/batch"
	"github.com/roboco-io/hwpxmd/internal/document"
	"github.com/roboco-io/hwpxmd/internal/format"
	"github.com/roboco-io/hwpxmd/internal/source"
)

// Environment variables that override the configuration file.
const (
	EnvFormatTables       = "HWPXMD_FORMAT_TABLES"
	EnvPreserveLinebreaks = "HWPXMD_PRESERVE_LINEBREAKS"
	EnvParaHead           = "HWPXMD_PARA_HEAD"
	EnvWorkers            = "HWPXMD_WORKERS"
)

// Config represents the application configuration.
type Config struct {
	Convert   ConvertConfig    `yaml:"convert"`
	TextMarks source.TextMarks `yaml:"text_marks"`
	Batch     BatchConfig      `yaml:"batch"`
	Document  DocumentConfig   `yaml:"document"`
}

// ConvertConfig contains document to Markdown options.
type ConvertConfig struct {
	FormatTables       bool `yaml:"format_tables"`
	PreserveLinebreaks bool `yaml:"preserve_linebreaks"`
	InsertParaHead     bool `yaml:"insert_para_head"`
}

// BatchConfig contains directory conversion options.
type BatchConfig struct {
	OutputFormat string `yaml:"output_format"`
	Recursive    bool   `yaml:"recursive"`
	Overwrite    bool   `yaml:"overwrite"`
	Workers      int    `yaml:"workers"`
}

// DocumentConfig contains Markdown to HWPX options.
type DocumentConfig struct {
	Bullet string `yaml:"bullet"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Convert: ConvertConfig{
			FormatTables:       true,
			PreserveLinebreaks: false,
			InsertParaHead:     false,
		},
		TextMarks: source.DefaultTextMarks(),
		Batch: BatchConfig{
			OutputFormat: string(batch.FormatMarkdown),
			Workers:      batch.DefaultWorkers,
		},
		Document: DocumentConfig{
			Bullet: document.DefaultBullet,
		},
	}
}

// FormatOptions returns the Markdown formatting options.
func (c *Config) FormatOptions() format.Options {
	return format.Options{
		FormatTables:       c.Convert.FormatTables,
		PreserveLinebreaks: c.Convert.PreserveLinebreaks,
	}
}

// SourceOptions returns the text extraction options.
func (c *Config) SourceOptions() source.Options {
	opts := source.DefaultOptions()
	opts.InsertParaHead = c.Convert.InsertParaHead
	opts.Marks = c.TextMarks
	if c.Document.Bullet != "" {
		opts.Bullet = c.Document.Bullet
	}
	return opts
}

// StyleSheet returns the style sheet used to populate HWPX documents.
func (c *Config) StyleSheet() document.StyleSheet {
	sheet := document.DefaultStyleSheet()
	if c.Document.Bullet != "" {
		sheet.Bullet = c.Document.Bullet
	}
	return sheet
}

// ApplyEnv overrides configuration values from HWPXMD_* environment
// variables. Unset variables leave the value unchanged.
func (c *Config) ApplyEnv() error {
	for _, b := range []struct {
		key string
		dst *bool
	}{
		{EnvFormatTables, &c.Convert.FormatTables},
		{EnvPreserveLinebreaks, &c.Convert.PreserveLinebreaks},
		{EnvParaHead, &c.Convert.InsertParaHead},
	} {
		if _, ok := os.LookupEnv(b.key); ok {
			*b.dst = GetEnvBool(b.key)
		}
	}

	if v := GetEnvOrDefault(EnvWorkers, ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid %s: %q", EnvWorkers, v)
		}
		c.Batch.Workers = n
	}
	return nil
}

// setting is one key addressable by "config set".
type setting struct {
	get func(c *Config) string
	set func(c *Config, value string) error
}

func boolSetting(field func(c *Config) *bool) setting {
	return setting{
		get: func(c *Config) string { return strconv.FormatBool(*field(c)) },
		set: func(c *Config, value string) error {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean: %q", value)
			}
			*field(c) = b
			return nil
		},
	}
}

// markSetting reads separators with Go escapes, so "\n" may be typed as
// two characters on the command line.
func markSetting(field func(c *Config) *string) setting {
	return setting{
		get: func(c *Config) string { return strconv.Quote(*field(c)) },
		set: func(c *Config, value string) error {
			s, err := strconv.Unquote(`"` + strings.Trim(value, `"`) + `"`)
			if err != nil {
				return fmt.Errorf("invalid separator: %q", value)
			}
			*field(c) = s
			return nil
		},
	}
}

var settings = map[string]setting{
	"convert.format_tables":       boolSetting(func(c *Config) *bool { return &c.Convert.FormatTables }),
	"convert.preserve_linebreaks": boolSetting(func(c *Config) *bool { return &c.Convert.PreserveLinebreaks }),
	"convert.insert_para_head":    boolSetting(func(c *Config) *bool { return &c.Convert.InsertParaHead }),

	"text_marks.line_break":           markSetting(func(c *Config) *string { return &c.TextMarks.LineBreak }),
	"text_marks.para_separator":       markSetting(func(c *Config) *string { return &c.TextMarks.ParaSeparator }),
	"text_marks.tab":                  markSetting(func(c *Config) *string { return &c.TextMarks.Tab }),
	"text_marks.table_row_separator":  markSetting(func(c *Config) *string { return &c.TextMarks.TableRowSeparator }),
	"text_marks.table_cell_separator": markSetting(func(c *Config) *string { return &c.TextMarks.TableCellSeparator }),

	"batch.output_format": {
		get: func(c *Config) string { return c.Batch.OutputFormat },
		set: func(c *Config, value string) error {
			f, err := batch.ParseOutputFormat(value)
			if err != nil {
				return err
			}
			c.Batch.OutputFormat = string(f)
			return nil
		},
	},
	"batch.recursive": boolSetting(func(c *Config) *bool { return &c.Batch.Recursive }),
	"batch.overwrite": boolSetting(func(c *Config) *bool { return &c.Batch.Overwrite }),
	"batch.workers": {
		get: func(c *Config) string { return strconv.Itoa(c.Batch.Workers) },
		set: func(c *Config, value string) error {
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return fmt.Errorf("workers must be a positive integer: %q", value)
			}
			c.Batch.Workers = n
			return nil
		},
	},

	"document.bullet": {
		get: func(c *Config) string { return c.Document.Bullet },
		set: func(c *Config, value string) error {
			if value == "" {
				return fmt.Errorf("bullet must not be empty")
			}
			c.Document.Bullet = value
			return nil
		},
	},
}

// Keys returns the keys accepted by Get and Set, sorted.
func Keys() []string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a dotted key such as "batch.workers".
func (c *Config) Get(key string) (string, error) {
	s, ok := settings[key]
	if !ok {
		return "", fmt.Errorf("unknown config key: %s", key)
	}
	return s.get(c), nil
}

// Set validates and stores the value of a dotted key.
func (c *Config) Set(key, value string) error {
	s, ok := settings[key]
	if !ok {
		return fmt.Errorf("unknown config key: %s", key)
	}
	if err := s.set(c, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}
