package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())

	// Not backed by a directory.
	assert.Empty(t, cfg.HistoryPath())
	assert.False(t, cfg.HasEventLog())
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		modify func(*Configuration)
		field  string
	}{
		"missing prompt":         {func(c *Configuration) { c.Prompt = "" }, "prompt"},
		"negative history limit": {func(c *Configuration) { c.HistoryLimit = -1 }, "history_limit"},
		"huge history limit":     {func(c *Configuration) { c.HistoryLimit = 100001 }, "history_limit"},
		"bad color":              {func(c *Configuration) { c.Color = "sometimes" }, "color"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestLoadFs(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, ConfigurationName, []byte(`
prompt: "$ "
history_file: ""
history_limit: 10
event_log: "log.jsonl"
quote_aware_separators: false
color: never
path: /opt/bin
`), 0600))

		cfg, err := LoadFs(fsys)
		require.NoError(t, err)

		assert.Equal(t, "$ ", cfg.Prompt)
		assert.False(t, cfg.QuoteAwareSeparators)
		assert.Equal(t, "/opt/bin", cfg.SearchPath())
		assert.Empty(t, cfg.HistoryPath())
		assert.True(t, cfg.HasEventLog())

		fd, err := cfg.OpenEventLog()
		require.NoError(t, err)
		_, err = fd.WriteString("{}\n")
		assert.NoError(t, err)
		fd.Close()

		contents, err := afero.ReadFile(fsys, "log.jsonl")
		require.NoError(t, err)
		assert.Equal(t, "{}\n", string(contents))
	})

	t.Run("unknown field", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, ConfigurationName, []byte("prompt: x\ncolour: auto\n"), 0600))

		_, err := LoadFs(fsys)
		assert.Error(t, err)
	})

	t.Run("invalid value", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, ConfigurationName, []byte("prompt: x\ncolor: rainbow\n"), 0600))

		_, err := LoadFs(fsys)
		assert.Error(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadFs(afero.NewMemMapFs())
		assert.Error(t, err)
	})
}

func TestSearchPath(t *testing.T) {
	t.Setenv("PATH", "/from/env")

	cfg := Default()
	assert.Equal(t, "/from/env", cfg.SearchPath())

	cfg.Path = "/override"
	assert.Equal(t, "/override", cfg.SearchPath())
}
