package browser

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"ui_automation/domain/interfaces"
	"ui_automation/infrastructure/config"
)

// NewDriver - starts the driver named by cfg.Driver
func NewDriver(cfg *config.Config, logger *logrus.Logger) (interfaces.Driver, error) {
	switch cfg.Driver {
	case config.DriverPlaywright:
		return NewPlaywrightController(cfg, logger)
	case config.DriverSelenium:
		return NewSeleniumController(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}
