package terminal

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ui_automation/application/session"
	"ui_automation/domain/interfaces"
	"ui_automation/infrastructure/browser"
	"ui_automation/infrastructure/config"
	"ui_automation/infrastructure/logging"
)

// DriverFactory starts a browser for the loaded configuration
type DriverFactory func(cfg *config.Config, logger *logrus.Logger) (interfaces.Driver, error)

// TerminalInterface is the cobra command tree of the ui_automation binary
type TerminalInterface struct {
	root      *cobra.Command
	cfgFile   string
	url       string
	steps     []string
	newDriver DriverFactory
}

// NewTerminalInterface - command tree backed by the configured browser driver
func NewTerminalInterface() (*TerminalInterface, error) {
	return newTerminalInterface(browser.NewDriver), nil
}

func newTerminalInterface(factory DriverFactory) *TerminalInterface {
	t := &TerminalInterface{newDriver: factory}

	t.root = &cobra.Command{
		Use:   "ui_automation",
		Short: "Declarative UI element automation",
		Long: `Drives a browser through declaratively described page elements.

Elements are located by attributes (id, text, class, data-*, aria-*) that are
turned into an XPath query. The driver is playwright or selenium, chosen by
the "driver" setting.`,
		SilenceUsage: true,
	}
	t.root.PersistentFlags().StringVar(&t.cfgFile, "config", "", "config file (default: none, .env and UI_AUTOMATION_* env are still read)")

	playground := &cobra.Command{
		Use:   "playground",
		Short: "Walk through the UI playground page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return t.runPlayground(cmd.Context())
		},
	}
	playground.Flags().StringVar(&t.url, "url", "", "playground URL (default: base_url setting)")
	playground.Flags().StringSliceVar(&t.steps, "step", nil, "run only these steps (start, buttons, links, forms, hover, tabs, modal, alerts, drag_and_drop)")
	t.root.AddCommand(playground)

	return t
}

func (t *TerminalInterface) runPlayground(ctx context.Context) error {
	cfg, err := config.Load(t.cfgFile)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}

	url := t.url
	if url == "" {
		url = cfg.BaseURL
	}

	driver, err := t.newDriver(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize browser: %w", err)
	}

	s := session.New(driver, logger, session.WithDefaultTimeout(cfg.Timeout))
	defer func() {
		if err := s.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close browser")
		}
	}()

	return session.RunWith(ctx, s, func(ctx context.Context) error {
		return RunPlayground(ctx, url, t.steps)
	})
}

// Run executes the command line in os.Args
func (t *TerminalInterface) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return t.root.ExecuteContext(ctx)
}
