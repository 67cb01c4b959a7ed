package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"

	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
	"ui_automation/infrastructure/config"
)

const (
	pollInterval = 100 * time.Millisecond
	staleMarker  = "stale element reference"
)

// SeleniumController implements interfaces.Driver on top of chromedriver
type SeleniumController struct {
	wd       selenium.WebDriver
	service  *selenium.Service
	logger   *logrus.Logger
	mu       sync.Mutex
	original string
}

// findChromeDriver - finds ChromeDriver executable path
func findChromeDriver(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured, nil
		}
	}

	commonPaths := []string{
		"/usr/local/bin/chromedriver",
		"/usr/bin/chromedriver",
		"/opt/homebrew/bin/chromedriver",
		filepath.Join(os.Getenv("HOME"), "bin", "chromedriver"),
	}

	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath("chromedriver"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("chromedriver not found. Please install it or set BROWSER_DRIVER_PATH environment variable")
}

// findChromeBinary - finds Chrome/Chromium browser executable path
func findChromeBinary(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	chromePaths := []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		`C:\Program Files\Google\Chrome\Application\chrome.exe`,
		`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
	}

	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	return ""
}

func chromeArgs(headless bool) []string {
	args := []string{
		"--disable-blink-features=AutomationControlled",
		"--disable-dev-shm-usage",
		"--no-sandbox",
		"--window-size=1280,720",
	}
	if headless {
		args = append(args, "--headless=new")
	}
	return args
}

// chromeCapabilities - W3C mode stays off: MoveTo, ButtonDown/ButtonUp,
// Click and DoubleClick use JSON wire endpoints chromedriver only serves
// to legacy sessions
func chromeCapabilities(headless bool, binary string) chrome.Capabilities {
	return chrome.Capabilities{
		Args: chromeArgs(headless),
		Path: binary,
		W3C:  false,
	}
}

// NewSeleniumController - starts chromedriver and opens a Chrome session
func NewSeleniumController(cfg *config.Config, logger *logrus.Logger) (*SeleniumController, error) {
	driverPath, err := findChromeDriver(cfg.Selenium.DriverPath)
	if err != nil {
		return nil, fmt.Errorf("failed to find chromedriver: %w", err)
	}
	logger.Infof("Using ChromeDriver at: %s", driverPath)

	chromeBinary := findChromeBinary(cfg.Selenium.ChromeBinary)
	if chromeBinary != "" {
		logger.Infof("Using Chrome binary at: %s", chromeBinary)
	}

	service, err := selenium.NewChromeDriverService(driverPath, cfg.Selenium.Port)
	if err != nil {
		return nil, fmt.Errorf("failed to start chromedriver: %w", err)
	}

	caps := selenium.Capabilities{
		"browserName": "chrome",
	}
	caps.AddChrome(chromeCapabilities(cfg.Headless, chromeBinary))

	wd, err := selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%d/wd/hub", cfg.Selenium.Port))
	if err != nil {
		service.Stop()
		if strings.Contains(err.Error(), "cannot find Chrome binary") {
			return nil, fmt.Errorf("failed to create webdriver: Chrome browser not found. Please install Google Chrome or set CHROME_BINARY_PATH environment variable. Error: %w", err)
		}
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}

	original, err := wd.CurrentWindowHandle()
	if err != nil {
		wd.Quit()
		service.Stop()
		return nil, fmt.Errorf("failed to read window handle: %w", err)
	}

	return &SeleniumController{
		wd:       wd,
		service:  service,
		logger:   logger,
		original: original,
	}, nil
}

// staleCheck - maps webdriver stale reference errors to interfaces.ErrStaleElement
func staleCheck(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(err.Error()), staleMarker) {
		return fmt.Errorf("%w: %v", interfaces.ErrStaleElement, err)
	}
	return err
}

// script - wraps one of the page-side helpers so ExecuteScript applies it to its arguments
func script(fn string) string {
	return "return (" + fn + ").apply(null, arguments);"
}

// waitFor - polls query until a match satisfies ready, bounded by timeout and ctx
func (s *SeleniumController) waitFor(ctx context.Context, query string, timeout time.Duration, ready func(selenium.WebElement) (bool, error)) (selenium.WebElement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var found selenium.WebElement
	condition := func(wd selenium.WebDriver) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		element, err := wd.FindElement(selenium.ByXPATH, query)
		if err != nil {
			return false, nil
		}
		ok, err := ready(element)
		if err != nil || !ok {
			return false, nil
		}
		found = element
		return true, nil
	}

	if err := s.wd.WaitWithTimeoutAndInterval(condition, timeout, pollInterval); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("element '%s' not found after %s: %w", query, timeout, err)
	}
	return found, nil
}

func (s *SeleniumController) waitVisible(ctx context.Context, query string, timeout time.Duration) (selenium.WebElement, error) {
	return s.waitFor(ctx, query, timeout, func(e selenium.WebElement) (bool, error) {
		return e.IsDisplayed()
	})
}

func (s *SeleniumController) waitPresent(ctx context.Context, query string, timeout time.Duration) (selenium.WebElement, error) {
	return s.waitFor(ctx, query, timeout, func(selenium.WebElement) (bool, error) {
		return true, nil
	})
}

func (s *SeleniumController) waitClickable(ctx context.Context, query string, timeout time.Duration) (selenium.WebElement, error) {
	return s.waitFor(ctx, query, timeout, func(e selenium.WebElement) (bool, error) {
		displayed, err := e.IsDisplayed()
		if err != nil || !displayed {
			return false, err
		}
		return e.IsEnabled()
	})
}

// moveToCenter - moves the pointer over the middle of the element
func moveToCenter(element selenium.WebElement) error {
	size, err := element.Size()
	if err != nil {
		return staleCheck(err)
	}
	return staleCheck(element.MoveTo(size.Width/2, size.Height/2))
}

// ClickElement - waits until clickable then clicks
func (s *SeleniumController) ClickElement(ctx context.Context, query string, timeout time.Duration) error {
	element, err := s.waitClickable(ctx, query, timeout)
	if err != nil {
		return err
	}
	return staleCheck(element.Click())
}

// HoverElement - moves the pointer over the element
func (s *SeleniumController) HoverElement(ctx context.Context, query string, timeout time.Duration) error {
	element, err := s.waitVisible(ctx, query, timeout)
	if err != nil {
		return err
	}
	return moveToCenter(element)
}

// UnhoverElement - moves the pointer to the top-left corner of <body>
func (s *SeleniumController) UnhoverElement(ctx context.Context, timeout time.Duration) error {
	body, err := s.waitPresent(ctx, "//body", timeout)
	if err != nil {
		return err
	}
	return body.MoveTo(0, 0)
}

// ScrollToElement - scrolls until the element is in view
func (s *SeleniumController) ScrollToElement(ctx context.Context, query string, timeout time.Duration) error {
	element, err := s.waitVisible(ctx, query, timeout)
	if err != nil {
		return err
	}
	_, err = s.wd.ExecuteScript(script(scrollIntoViewJS), []interface{}{element})
	return staleCheck(err)
}

// DragAndDrop - press on the source, move to the target, release
func (s *SeleniumController) DragAndDrop(ctx context.Context, sourceQuery, targetQuery string, timeout time.Duration) error {
	source, err := s.waitVisible(ctx, sourceQuery, timeout)
	if err != nil {
		return err
	}
	target, err := s.waitVisible(ctx, targetQuery, timeout)
	if err != nil {
		return err
	}
	return s.drag(source, target)
}

func (s *SeleniumController) drag(source, target selenium.WebElement) error {
	if err := moveToCenter(source); err != nil {
		return err
	}
	if err := s.wd.ButtonDown(); err != nil {
		return err
	}
	if err := moveToCenter(target); err != nil {
		s.wd.ButtonUp()
		return err
	}
	return s.wd.ButtonUp()
}

// WaitForElement - returns the first visible match
func (s *SeleniumController) WaitForElement(ctx context.Context, query string, timeout time.Duration) (interfaces.ElementHandle, error) {
	element, err := s.waitVisible(ctx, query, timeout)
	if err != nil {
		return nil, err
	}
	return &seleniumHandle{wd: s.wd, element: element}, nil
}

// WaitForAllElements - returns every match once at least one is present
func (s *SeleniumController) WaitForAllElements(ctx context.Context, query string, timeout time.Duration) ([]interfaces.ElementHandle, error) {
	if _, err := s.waitPresent(ctx, query, timeout); err != nil {
		return nil, err
	}

	elements, err := s.wd.FindElements(selenium.ByXPATH, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find matches of '%s': %w", query, err)
	}

	handles := make([]interfaces.ElementHandle, 0, len(elements))
	for _, element := range elements {
		handles = append(handles, &seleniumHandle{wd: s.wd, element: element})
	}
	return handles, nil
}

// EnterTextSafely - clears the field then types the text
func (s *SeleniumController) EnterTextSafely(ctx context.Context, query string, text string, timeout time.Duration) error {
	element, err := s.waitClickable(ctx, query, timeout)
	if err != nil {
		return err
	}
	if err := element.Clear(); err != nil {
		return staleCheck(err)
	}
	return staleCheck(element.SendKeys(text))
}

// SetElementValue - assigns the value property and fires input/change
func (s *SeleniumController) SetElementValue(ctx context.Context, query string, value string, timeout time.Duration) error {
	element, err := s.waitVisible(ctx, query, timeout)
	if err != nil {
		return err
	}
	_, err = s.wd.ExecuteScript(script(setValueJS), []interface{}{element, value})
	return staleCheck(err)
}

// UploadFile - sends the path to a file input; the input may be hidden
func (s *SeleniumController) UploadFile(ctx context.Context, query string, path string, timeout time.Duration) error {
	element, err := s.waitPresent(ctx, query, timeout)
	if err != nil {
		return err
	}
	return staleCheck(element.SendKeys(path))
}

func (s *SeleniumController) runOnSelect(ctx context.Context, query string, fn string, arg interface{}, timeout time.Duration) (interface{}, error) {
	element, err := s.waitVisible(ctx, query, timeout)
	if err != nil {
		return nil, err
	}
	args := []interface{}{element}
	if arg != nil {
		args = append(args, arg)
	}
	result, err := s.wd.ExecuteScript(script(fn), args)
	return result, staleCheck(err)
}

// SelectOptionByText - selects an option by visible text
func (s *SeleniumController) SelectOptionByText(ctx context.Context, query string, text string, timeout time.Duration) error {
	_, err := s.runOnSelect(ctx, query, selectOptionJS, optionQuery{By: "text", Key: text, Select: true}.arg(), timeout)
	return err
}

// SelectOptionByValue - selects an option by value attribute
func (s *SeleniumController) SelectOptionByValue(ctx context.Context, query string, value string, timeout time.Duration) error {
	_, err := s.runOnSelect(ctx, query, selectOptionJS, optionQuery{By: "value", Key: value, Select: true}.arg(), timeout)
	return err
}

// SelectOptionByIndex - selects an option by 0-based index
func (s *SeleniumController) SelectOptionByIndex(ctx context.Context, query string, index int, timeout time.Duration) error {
	_, err := s.runOnSelect(ctx, query, selectOptionJS, optionQuery{By: "index", Index: index, Select: true}.arg(), timeout)
	return err
}

// DeselectOptionByText - deselects an option of a multi-select
func (s *SeleniumController) DeselectOptionByText(ctx context.Context, query string, text string, timeout time.Duration) error {
	_, err := s.runOnSelect(ctx, query, selectOptionJS, optionQuery{By: "text", Key: text}.arg(), timeout)
	return err
}

// DeselectAllOptions - clears a multi-select
func (s *SeleniumController) DeselectAllOptions(ctx context.Context, query string, timeout time.Duration) error {
	_, err := s.runOnSelect(ctx, query, deselectAllJS, nil, timeout)
	return err
}

// GetAllSelectedOptionsText - returns selected option texts in document order
func (s *SeleniumController) GetAllSelectedOptionsText(ctx context.Context, query string, timeout time.Duration) ([]string, error) {
	result, err := s.runOnSelect(ctx, query, selectedTextsJS, nil, timeout)
	if err != nil {
		return nil, err
	}
	return toStrings(result), nil
}

// OpenURL - navigates the current window
func (s *SeleniumController) OpenURL(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.Infof("Navigating to: %s", url)
	return s.wd.Get(url)
}

// waitForAlert - polls until an alert is open
func (s *SeleniumController) waitForAlert(ctx context.Context, timeout time.Duration) error {
	condition := func(wd selenium.WebDriver) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		_, err := wd.AlertText()
		return err == nil, nil
	}
	if err := s.wd.WaitWithTimeoutAndInterval(condition, timeout, pollInterval); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("no alert appeared within %s: %w", timeout, err)
	}
	return nil
}

// AcceptAlert - accepts the open alert
func (s *SeleniumController) AcceptAlert(ctx context.Context, timeout time.Duration) error {
	if err := s.waitForAlert(ctx, timeout); err != nil {
		return err
	}
	return s.wd.AcceptAlert()
}

// DismissAlert - dismisses the open alert
func (s *SeleniumController) DismissAlert(ctx context.Context, timeout time.Duration) error {
	if err := s.waitForAlert(ctx, timeout); err != nil {
		return err
	}
	return s.wd.DismissAlert()
}

// SwitchToNewTab - focuses the most recently opened window
func (s *SeleniumController) SwitchToNewTab(ctx context.Context) error {
	handles, err := s.wd.WindowHandles()
	if err != nil {
		return err
	}
	if len(handles) < 2 {
		return fmt.Errorf("no new tab to switch to (available tabs: %d)", len(handles))
	}
	return s.wd.SwitchWindow(handles[len(handles)-1])
}

// SwitchToOriginalTab - focuses the window the session started with
func (s *SeleniumController) SwitchToOriginalTab(ctx context.Context) error {
	s.mu.Lock()
	original := s.original
	s.mu.Unlock()
	return s.wd.SwitchWindow(original)
}

// CloseCurrentTab - closes the focused window and falls back to the original one
func (s *SeleniumController) CloseCurrentTab(ctx context.Context) error {
	current, err := s.wd.CurrentWindowHandle()
	if err != nil {
		return err
	}
	if err := s.wd.CloseWindow(current); err != nil {
		return fmt.Errorf("failed to close tab: %w", err)
	}

	handles, err := s.wd.WindowHandles()
	if err != nil {
		return err
	}
	if len(handles) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range handles {
		if h == s.original {
			return s.wd.SwitchWindow(h)
		}
	}
	s.original = handles[0]
	return s.wd.SwitchWindow(handles[0])
}

// GetCurrentURL - returns current page URL
func (s *SeleniumController) GetCurrentURL(ctx context.Context) (string, error) {
	return s.wd.CurrentURL()
}

// GetPageTitle - returns current page title
func (s *SeleniumController) GetPageTitle(ctx context.Context) (string, error) {
	return s.wd.Title()
}

// TakeScreenshot - takes screenshot of current page
func (s *SeleniumController) TakeScreenshot(ctx context.Context) ([]byte, error) {
	return s.wd.Screenshot()
}

// CloseBrowser - quits the session and stops ChromeDriver
func (s *SeleniumController) CloseBrowser() error {
	var errs []error
	if s.wd != nil {
		if err := s.wd.Quit(); err != nil {
			errs = append(errs, fmt.Errorf("failed to quit webdriver: %w", err))
		}
		s.wd = nil
	}
	if s.service != nil {
		if err := s.service.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop chromedriver: %w", err))
		}
		s.service = nil
	}
	return errors.Join(errs...)
}

func asSeleniumHandle(h interfaces.ElementHandle) (*seleniumHandle, error) {
	sh, ok := h.(*seleniumHandle)
	if !ok {
		return nil, fmt.Errorf("element handle %T was not produced by selenium", h)
	}
	return sh, nil
}

// ClickHandle - native click on a resolved element
func (s *SeleniumController) ClickHandle(ctx context.Context, h interfaces.ElementHandle) error {
	sh, err := asSeleniumHandle(h)
	if err != nil {
		return err
	}
	if err := moveToCenter(sh.element); err != nil {
		return err
	}
	return s.wd.Click(selenium.LeftButton)
}

// DoubleClickHandle - native double click on a resolved element
func (s *SeleniumController) DoubleClickHandle(ctx context.Context, h interfaces.ElementHandle) error {
	sh, err := asSeleniumHandle(h)
	if err != nil {
		return err
	}
	if err := moveToCenter(sh.element); err != nil {
		return err
	}
	return s.wd.DoubleClick()
}

// MoveToHandle - moves the pointer over a resolved element
func (s *SeleniumController) MoveToHandle(ctx context.Context, h interfaces.ElementHandle) error {
	sh, err := asSeleniumHandle(h)
	if err != nil {
		return err
	}
	return moveToCenter(sh.element)
}

// MoveToOrigin - moves the pointer to the top-left corner of <body>
func (s *SeleniumController) MoveToOrigin(ctx context.Context) error {
	body, err := s.wd.FindElement(selenium.ByTagName, "body")
	if err != nil {
		return err
	}
	return body.MoveTo(0, 0)
}

// DragHandle - drags one resolved element onto another
func (s *SeleniumController) DragHandle(ctx context.Context, source, target interfaces.ElementHandle) error {
	src, err := asSeleniumHandle(source)
	if err != nil {
		return err
	}
	dst, err := asSeleniumHandle(target)
	if err != nil {
		return err
	}
	return s.drag(src.element, dst.element)
}

// seleniumHandle wraps one resolved WebElement
type seleniumHandle struct {
	wd      selenium.WebDriver
	element selenium.WebElement
}

// Attribute reads the DOM attribute directly; WebElement.GetAttribute cannot tell absent from empty.
func (h *seleniumHandle) Attribute(name string) (string, bool, error) {
	value, err := h.wd.ExecuteScript(script(getAttributeJS), []interface{}{h.element, name})
	if err != nil {
		return "", false, staleCheck(err)
	}
	if value == nil {
		return "", false, nil
	}
	if s, ok := value.(string); ok {
		return s, true, nil
	}
	return fmt.Sprint(value), true, nil
}

func (h *seleniumHandle) Text() (string, error) {
	text, err := h.element.Text()
	return text, staleCheck(err)
}

func (h *seleniumHandle) TagName() (string, error) {
	tag, err := h.element.TagName()
	return strings.ToLower(tag), staleCheck(err)
}

func (h *seleniumHandle) Location() (entities.Point, error) {
	p, err := h.element.Location()
	if err != nil {
		return entities.Point{}, staleCheck(err)
	}
	return entities.Point{X: p.X, Y: p.Y}, nil
}

func (h *seleniumHandle) Size() (entities.Size, error) {
	size, err := h.element.Size()
	if err != nil {
		return entities.Size{}, staleCheck(err)
	}
	return entities.Size{Width: size.Width, Height: size.Height}, nil
}

func (h *seleniumHandle) IsDisplayed() (bool, error) {
	displayed, err := h.element.IsDisplayed()
	return displayed, staleCheck(err)
}

func (h *seleniumHandle) IsEnabled() (bool, error) {
	enabled, err := h.element.IsEnabled()
	return enabled, staleCheck(err)
}

// Ensure SeleniumController implements the Driver interface
var _ interfaces.Driver = (*SeleniumController)(nil)
