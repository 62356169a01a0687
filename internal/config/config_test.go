package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pikard86/ai-squad-builder/internal/formation"
	"github.com/pikard86/ai-squad-builder/internal/llm"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"port": 9090,
		"formation": "microservices",
		"concurrency": 4,
		"model_advanced": "gemini-exp",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "microservices", cfg.Formation)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "gemini-exp", cfg.ModelAdv)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key-123")
	t.Setenv("PORT", "7000")
	t.Setenv("SQUAD_FORMATION", "integration")
	t.Setenv("SQUAD_CONCURRENCY", "not-a-number")
	t.Setenv("SQUAD_MODEL_LITE", "tiny")

	cfg := FromEnv()
	assert.Equal(t, "key-123", cfg.APIKey)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "integration", cfg.Formation)
	assert.Equal(t, 0, cfg.Concurrency, "unparsable values are ignored")
	assert.Equal(t, "tiny", cfg.ModelLite)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults", cfg: Defaults()},
		{name: "empty", cfg: Config{}},
		{name: "bad port", cfg: Config{Port: 70000}, wantErr: "Port"},
		{name: "bad concurrency", cfg: Config{Concurrency: 100}, wantErr: "Concurrency"},
		{name: "bad temperature", cfg: Config{Temperature: 3}, wantErr: "Temperature"},
		{name: "bad origin", cfg: Config{CORSOrigin: "not a url"}, wantErr: "CORSOrigin"},
		{name: "origin url", cfg: Config{CORSOrigin: "https://squad.example"}},
		{name: "unknown formation", cfg: Config{Formation: "4-4-2"}, wantErr: "unknown formation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Port: 9000, ModelStd: "flash-x"}
	merged := cfg.MergeWithDefaults(Config{Port: 1, Formation: "microservices", APIKey: "k", Verbose: true})

	assert.Equal(t, 9000, merged.Port, "receiver wins")
	assert.Equal(t, "microservices", merged.Formation)
	assert.Equal(t, "k", merged.APIKey)
	assert.Equal(t, "flash-x", merged.ModelStd)
	assert.True(t, merged.Verbose)

	var empty Config
	full := empty.MergeWithDefaults(Defaults())
	assert.Equal(t, DefaultPort, full.Port)
	assert.Equal(t, formation.DefaultID, full.Formation)
	assert.Equal(t, DefaultConcurrency, full.Concurrency)
}

func TestLLMConfig(t *testing.T) {
	cfg := Config{ModelAdv: "gemini-ultra", Temperature: 0.4}
	llmCfg := cfg.LLMConfig()

	assert.Equal(t, "gemini-ultra", llmCfg.GetModel(llm.TierAdvanced))
	assert.Equal(t, llm.DefaultConfig().GetModel(llm.TierLite), llmCfg.GetModel(llm.TierLite))
	assert.InDelta(t, 0.4, llmCfg.Temperature, 1e-6)
}
