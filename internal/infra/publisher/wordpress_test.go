package publisher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() WordPressConfig {
	return WordPressConfig{
		BaseURL:     "https://blog.example.com",
		Username:    "editor",
		AppPassword: "abcd efgh ijkl mnop",
		Timeout:     30 * time.Second,
	}
}

func TestWordPressConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*WordPressConfig)
		wantErr string
	}{
		{"valid", func(*WordPressConfig) {}, ""},
		{"empty base URL", func(c *WordPressConfig) { c.BaseURL = "" }, "base URL"},
		{"non-http scheme", func(c *WordPressConfig) { c.BaseURL = "ftp://blog.example.com" }, "http or https"},
		{"missing host", func(c *WordPressConfig) { c.BaseURL = "https://" }, "valid host"},
		{"missing credentials", func(c *WordPressConfig) { c.Username = "" }, "application password"},
		{"zero timeout", func(c *WordPressConfig) { c.Timeout = 0 }, "timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestNewWordPress_RejectsInvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.BaseURL = "javascript:alert(1)"

	_, err := NewWordPress(cfg)
	assert.Error(t, err)
}
