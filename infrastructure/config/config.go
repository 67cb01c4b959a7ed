// Package config loads runtime settings from .env, an optional config file
// and UI_AUTOMATION_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPlaywright = "playwright"
	DriverSelenium   = "selenium"

	DialogAccept  = "accept"
	DialogDismiss = "dismiss"

	envPrefix = "UI_AUTOMATION"
)

// Config holds every runtime setting
type Config struct {
	Driver   string
	Headless bool
	BaseURL  string
	Timeout  time.Duration

	Log        Log
	Selenium   Selenium
	Playwright Playwright
}

// Log configures the logrus logger
type Log struct {
	Level  string
	Format string // text or json
}

// Selenium configures the chromedriver backed driver
type Selenium struct {
	DriverPath   string
	ChromeBinary string
	Port         int
}

// Playwright configures the playwright backed driver
type Playwright struct {
	Browser  string // chromium, firefox or webkit
	StateDir string
	SlowMo   time.Duration
	Dialogs  string // accept or dismiss, applied as each dialog opens
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("driver", DriverPlaywright)
	v.SetDefault("headless", true)
	v.SetDefault("base_url", "https://ui-playground.xyz/")
	v.SetDefault("timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("selenium.driver_path", "")
	v.SetDefault("selenium.chrome_binary", "")
	v.SetDefault("selenium.port", 9515)
	v.SetDefault("playwright.browser", "chromium")
	v.SetDefault("playwright.state_dir", "")
	v.SetDefault("playwright.slow_mo", time.Duration(0))
	v.SetDefault("playwright.dialogs", DialogAccept)
}

// Load reads configuration. cfgFile may be empty.
func Load(cfgFile string) (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// names used by earlier tooling
	_ = v.BindEnv("selenium.driver_path", envPrefix+"_SELENIUM_DRIVER_PATH", "BROWSER_DRIVER_PATH")
	_ = v.BindEnv("selenium.chrome_binary", envPrefix+"_SELENIUM_CHROME_BINARY", "CHROME_BINARY_PATH")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
	}

	cfg := &Config{
		Driver:   strings.ToLower(v.GetString("driver")),
		Headless: v.GetBool("headless"),
		BaseURL:  v.GetString("base_url"),
		Timeout:  v.GetDuration("timeout"),
		Log: Log{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Selenium: Selenium{
			DriverPath:   v.GetString("selenium.driver_path"),
			ChromeBinary: v.GetString("selenium.chrome_binary"),
			Port:         v.GetInt("selenium.port"),
		},
		Playwright: Playwright{
			Browser:  strings.ToLower(v.GetString("playwright.browser")),
			StateDir: v.GetString("playwright.state_dir"),
			SlowMo:   v.GetDuration("playwright.slow_mo"),
			Dialogs:  strings.ToLower(v.GetString("playwright.dialogs")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverPlaywright, DriverSelenium:
	default:
		return fmt.Errorf("unknown driver %q (want %s or %s)", c.Driver, DriverPlaywright, DriverSelenium)
	}
	switch c.Playwright.Browser {
	case "chromium", "firefox", "webkit":
	default:
		return fmt.Errorf("unknown playwright browser %q", c.Playwright.Browser)
	}
	switch c.Playwright.Dialogs {
	case DialogAccept, DialogDismiss:
	default:
		return fmt.Errorf("unknown dialog policy %q (want %s or %s)", c.Playwright.Dialogs, DialogAccept, DialogDismiss)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Selenium.Port <= 0 || c.Selenium.Port > 65535 {
		return fmt.Errorf("invalid selenium port %d", c.Selenium.Port)
	}
	return nil
}
