package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"

	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs afero.Fs

	Prompt       string `json:"prompt" validate:"required"`
	HistoryFile  string `json:"history_file"`
	HistoryLimit int    `json:"history_limit" validate:"gte=0,lte=100000"`
	EventLog     string `json:"event_log"`

	QuoteAwareSeparators bool `json:"quote_aware_separators"`

	Color string `json:"color" validate:"oneof=always auto never"`
	Path  string `json:"path"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	return c.configFs
}

// HistoryPath returns the absolute path of the history file, or an empty
// string if history isn't persisted.
func (c *Configuration) HistoryPath() string {
	if c.HistoryFile == "" || c.fs() == nil {
		return ""
	}
	if filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}

	if bp, ok := c.fs().(*afero.BasePathFs); ok {
		if p, err := bp.RealPath(c.HistoryFile); err == nil {
			return p
		}
	}
	return ""
}

// SearchPath returns the program search path, falling back to $PATH.
func (c *Configuration) SearchPath() string {
	if c.Path != "" {
		return c.Path
	}
	return os.Getenv("PATH")
}

// HasEventLog reports whether events should be recorded.
func (c *Configuration) HasEventLog() bool {
	return c.EventLog != "" && c.fs() != nil
}

// OpenEventLog opens the event log in an append only state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.EventLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.EventLog, os.O_RDONLY, 0600)
}

// Default returns the built-in configuration. It isn't backed by a
// directory, so history and the event log are disabled.
func Default() *Configuration {
	return defaultConfig()
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
