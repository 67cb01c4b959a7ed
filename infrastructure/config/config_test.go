package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverPlaywright, cfg.Driver)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 9515, cfg.Selenium.Port)
	assert.Equal(t, "chromium", cfg.Playwright.Browser)
	assert.Equal(t, DialogAccept, cfg.Playwright.Dialogs)
}

func TestLoad_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("UI_AUTOMATION_DRIVER", "Selenium")
	t.Setenv("UI_AUTOMATION_TIMEOUT", "3s")
	t.Setenv("UI_AUTOMATION_LOG_LEVEL", "debug")
	t.Setenv("BROWSER_DRIVER_PATH", "/opt/chromedriver")
	t.Setenv("UI_AUTOMATION_PLAYWRIGHT_DIALOGS", "Dismiss")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverSelenium, cfg.Driver)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/opt/chromedriver", cfg.Selenium.DriverPath)
	assert.Equal(t, DialogDismiss, cfg.Playwright.Dialogs)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "config.yaml")
	content := "driver: playwright\nheadless: false\nbase_url: http://localhost:8080/\nplaywright:\n  browser: firefox\n  slow_mo: 250ms\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Headless)
	assert.Equal(t, "http://localhost:8080/", cfg.BaseURL)
	assert.Equal(t, "firefox", cfg.Playwright.Browser)
	assert.Equal(t, 250*time.Millisecond, cfg.Playwright.SlowMo)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("UI_AUTOMATION_BASE_URL=http://dotenv.local/\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("UI_AUTOMATION_BASE_URL") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv.local/", cfg.BaseURL)
}

func TestLoad_MissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Driver:     DriverSelenium,
		Timeout:    time.Second,
		Selenium:   Selenium{Port: 9515},
		Playwright: Playwright{Browser: "webkit", Dialogs: DialogDismiss},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"driver", func(c *Config) { c.Driver = "puppeteer" }},
		{"browser", func(c *Config) { c.Playwright.Browser = "opera" }},
		{"dialogs", func(c *Config) { c.Playwright.Dialogs = "ignore" }},
		{"timeout", func(c *Config) { c.Timeout = 0 }},
		{"port", func(c *Config) { c.Selenium.Port = 70000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
