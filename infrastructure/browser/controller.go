package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
	"ui_automation/infrastructure/config"
	"ui_automation/infrastructure/storage"
)

const (
	navigationTimeout = 30 * time.Second
	handleReadTimeout = 2 * time.Second
	dialogBuffer      = 8
)

// PlaywrightController implements interfaces.Driver on top of playwright
type PlaywrightController struct {
	pw         *playwright.Playwright
	browser    playwright.Browser
	context    playwright.BrowserContext
	page       playwright.Page
	original   playwright.Page
	pages      []playwright.Page
	pagesMutex sync.Mutex
	dialogs    *dialogQueue
	state      *storage.BrowserState
	logger     *logrus.Logger
}

// NewPlaywrightController - starts playwright and opens one page
func NewPlaywrightController(cfg *config.Config, logger *logrus.Logger) (*PlaywrightController, error) {
	state, err := storage.NewBrowserState(cfg.Playwright.StateDir)
	if err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	var browserType playwright.BrowserType
	switch cfg.Playwright.Browser {
	case "firefox":
		browserType = pw.Firefox
	case "webkit":
		browserType = pw.WebKit
	default:
		browserType = pw.Chromium
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.Playwright.SlowMo.Milliseconds())),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	contextOptions := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
		AcceptDownloads: playwright.Bool(true),
	}

	saved, err := state.Load()
	if err != nil {
		logger.Warnf("Ignoring saved browser state: %v", err)
	} else if saved != nil {
		contextOptions.StorageState = saved
	}

	bctx, err := browser.NewContext(contextOptions)
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	controller := &PlaywrightController{
		pw:       pw,
		browser:  browser,
		context:  bctx,
		page:     page,
		original: page,
		pages:    []playwright.Page{page},
		dialogs:  newDialogQueue(cfg.Playwright.Dialogs, logger),
		state:    state,
		logger:   logger,
	}
	controller.watchPage(page)

	bctx.OnPage(func(newPage playwright.Page) {
		controller.pagesMutex.Lock()
		defer controller.pagesMutex.Unlock()

		for _, p := range controller.pages {
			if p == newPage {
				return
			}
		}
		controller.pages = append(controller.pages, newPage)
		controller.watchPage(newPage)
	})

	logger.Infof("Playwright %s session started", cfg.Playwright.Browser)
	return controller, nil
}

// watchPage - resolves dialogs by policy and tracks tab closing
func (b *PlaywrightController) watchPage(p playwright.Page) {
	p.OnDialog(func(d playwright.Dialog) {
		b.dialogs.handle(d)
	})

	p.OnClose(func(closedPage playwright.Page) {
		b.pagesMutex.Lock()
		defer b.pagesMutex.Unlock()
		b.forgetPage(closedPage)
	})
}

// forgetPage - drops a closed tab; caller holds pagesMutex
func (b *PlaywrightController) forgetPage(closed playwright.Page) {
	for i, p := range b.pages {
		if p == closed {
			b.pages = append(b.pages[:i], b.pages[i+1:]...)
			break
		}
	}
	if b.page == closed && len(b.pages) > 0 {
		b.page = b.pages[0]
	}
}

func (b *PlaywrightController) currentPage() playwright.Page {
	b.pagesMutex.Lock()
	defer b.pagesMutex.Unlock()
	return b.page
}

func xpathSelector(query string) string {
	return "xpath=" + query
}

func ms(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

func (b *PlaywrightController) locate(query string) playwright.Locator {
	return b.currentPage().Locator(xpathSelector(query)).First()
}

func (b *PlaywrightController) waitState(ctx context.Context, query string, state *playwright.WaitForSelectorState, timeout time.Duration) (playwright.Locator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	locator := b.locate(query)
	err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   state,
		Timeout: ms(timeout),
	})
	if err != nil {
		return nil, fmt.Errorf("element '%s' not found after %s: %w", query, timeout, err)
	}
	return locator, nil
}

func (b *PlaywrightController) waitVisible(ctx context.Context, query string, timeout time.Duration) (playwright.Locator, error) {
	return b.waitState(ctx, query, playwright.WaitForSelectorStateVisible, timeout)
}

// ClickElement - waits for visibility then clicks
func (b *PlaywrightController) ClickElement(ctx context.Context, query string, timeout time.Duration) error {
	locator, err := b.waitVisible(ctx, query, timeout)
	if err != nil {
		return err
	}
	return locator.Click(playwright.LocatorClickOptions{Timeout: ms(timeout)})
}

// HoverElement - moves the pointer over the element
func (b *PlaywrightController) HoverElement(ctx context.Context, query string, timeout time.Duration) error {
	locator, err := b.waitVisible(ctx, query, timeout)
	if err != nil {
		return err
	}
	return locator.Hover(playwright.LocatorHoverOptions{Timeout: ms(timeout)})
}

// UnhoverElement - moves the pointer to the top-left corner of <body>
func (b *PlaywrightController) UnhoverElement(ctx context.Context, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.currentPage().Locator("body").Hover(playwright.LocatorHoverOptions{
		Position: &playwright.Position{X: 0, Y: 0},
		Force:    playwright.Bool(true),
		Timeout:  ms(timeout),
	})
}

// ScrollToElement - scrolls until the element is in view
func (b *PlaywrightController) ScrollToElement(ctx context.Context, query string, timeout time.Duration) error {
	locator, err := b.waitVisible(ctx, query, timeout)
	if err != nil {
		return err
	}
	return locator.ScrollIntoViewIfNeeded(playwright.LocatorScrollIntoViewIfNeededOptions{Timeout: ms(timeout)})
}

// DragAndDrop - drags the source element onto the target element
func (b *PlaywrightController) DragAndDrop(ctx context.Context, sourceQuery, targetQuery string, timeout time.Duration) error {
	source, err := b.waitVisible(ctx, sourceQuery, timeout)
	if err != nil {
		return err
	}
	target, err := b.waitVisible(ctx, targetQuery, timeout)
	if err != nil {
		return err
	}
	return source.DragTo(target, playwright.LocatorDragToOptions{Timeout: ms(timeout)})
}

// WaitForElement - returns the first visible match
func (b *PlaywrightController) WaitForElement(ctx context.Context, query string, timeout time.Duration) (interfaces.ElementHandle, error) {
	locator, err := b.waitVisible(ctx, query, timeout)
	if err != nil {
		return nil, err
	}
	return &playwrightHandle{locator: locator}, nil
}

// WaitForAllElements - returns every match once at least one is attached
func (b *PlaywrightController) WaitForAllElements(ctx context.Context, query string, timeout time.Duration) ([]interfaces.ElementHandle, error) {
	if _, err := b.waitState(ctx, query, playwright.WaitForSelectorStateAttached, timeout); err != nil {
		return nil, err
	}

	all := b.currentPage().Locator(xpathSelector(query))
	count, err := all.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count matches of '%s': %w", query, err)
	}

	handles := make([]interfaces.ElementHandle, 0, count)
	for i := 0; i < count; i++ {
		handles = append(handles, &playwrightHandle{locator: all.Nth(i)})
	}
	return handles, nil
}

// EnterTextSafely - clears the field and fills it
func (b *PlaywrightController) EnterTextSafely(ctx context.Context, query string, text string, timeout time.Duration) error {
	locator, err := b.waitVisible(ctx, query, timeout)
	if err != nil {
		return err
	}
	return locator.Fill(text, playwright.LocatorFillOptions{Timeout: ms(timeout)})
}

// SetElementValue - assigns the value property and fires input/change
func (b *PlaywrightController) SetElementValue(ctx context.Context, query string, value string, timeout time.Duration) error {
	locator, err := b.waitVisible(ctx, query, timeout)
	if err != nil {
		return err
	}
	_, err = locator.Evaluate(setValueJS, value, playwright.LocatorEvaluateOptions{Timeout: ms(timeout)})
	return err
}

// UploadFile - sets the file of an input; the input may be hidden
func (b *PlaywrightController) UploadFile(ctx context.Context, query string, path string, timeout time.Duration) error {
	locator, err := b.waitState(ctx, query, playwright.WaitForSelectorStateAttached, timeout)
	if err != nil {
		return err
	}
	return locator.SetInputFiles([]string{path}, playwright.LocatorSetInputFilesOptions{Timeout: ms(timeout)})
}

func (b *PlaywrightController) evaluateOnSelect(ctx context.Context, query string, script string, arg interface{}, timeout time.Duration) (interface{}, error) {
	locator, err := b.waitVisible(ctx, query, timeout)
	if err != nil {
		return nil, err
	}
	return locator.Evaluate(script, arg, playwright.LocatorEvaluateOptions{Timeout: ms(timeout)})
}

// SelectOptionByText - selects an option by visible text
func (b *PlaywrightController) SelectOptionByText(ctx context.Context, query string, text string, timeout time.Duration) error {
	_, err := b.evaluateOnSelect(ctx, query, selectOptionJS, optionQuery{By: "text", Key: text, Select: true}.arg(), timeout)
	return err
}

// SelectOptionByValue - selects an option by value attribute
func (b *PlaywrightController) SelectOptionByValue(ctx context.Context, query string, value string, timeout time.Duration) error {
	_, err := b.evaluateOnSelect(ctx, query, selectOptionJS, optionQuery{By: "value", Key: value, Select: true}.arg(), timeout)
	return err
}

// SelectOptionByIndex - selects an option by 0-based index
func (b *PlaywrightController) SelectOptionByIndex(ctx context.Context, query string, index int, timeout time.Duration) error {
	_, err := b.evaluateOnSelect(ctx, query, selectOptionJS, optionQuery{By: "index", Index: index, Select: true}.arg(), timeout)
	return err
}

// DeselectOptionByText - deselects an option of a multi-select
func (b *PlaywrightController) DeselectOptionByText(ctx context.Context, query string, text string, timeout time.Duration) error {
	_, err := b.evaluateOnSelect(ctx, query, selectOptionJS, optionQuery{By: "text", Key: text}.arg(), timeout)
	return err
}

// DeselectAllOptions - clears a multi-select
func (b *PlaywrightController) DeselectAllOptions(ctx context.Context, query string, timeout time.Duration) error {
	_, err := b.evaluateOnSelect(ctx, query, deselectAllJS, nil, timeout)
	return err
}

// GetAllSelectedOptionsText - returns selected option texts in document order
func (b *PlaywrightController) GetAllSelectedOptionsText(ctx context.Context, query string, timeout time.Duration) ([]string, error) {
	result, err := b.evaluateOnSelect(ctx, query, selectedTextsJS, nil, timeout)
	if err != nil {
		return nil, err
	}
	return toStrings(result), nil
}

// OpenURL - navigates the current tab
func (b *PlaywrightController) OpenURL(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.logger.Infof("Navigating to: %s", url)
	_, err := b.currentPage().Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   ms(navigationTimeout),
	})
	return err
}

// AcceptAlert - confirms the next dialog was accepted.
// Dialogs are resolved when they open (playwright.dialogs), so this
// fails when the policy is dismiss.
func (b *PlaywrightController) AcceptAlert(ctx context.Context, timeout time.Duration) error {
	return b.dialogs.confirm(ctx, true, timeout)
}

// DismissAlert - confirms the next dialog was dismissed
func (b *PlaywrightController) DismissAlert(ctx context.Context, timeout time.Duration) error {
	return b.dialogs.confirm(ctx, false, timeout)
}

// SwitchToNewTab - focuses the most recently opened tab
func (b *PlaywrightController) SwitchToNewTab(ctx context.Context) error {
	b.pagesMutex.Lock()
	if len(b.pages) < 2 {
		b.pagesMutex.Unlock()
		return fmt.Errorf("no new tab to switch to (available tabs: %d)", len(b.pages))
	}
	b.page = b.pages[len(b.pages)-1]
	page := b.page
	b.pagesMutex.Unlock()

	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateDomcontentloaded,
		Timeout: playwright.Float(5000),
	}); err != nil {
		b.logger.WithError(err).Warn("New tab did not finish loading")
	}
	return page.BringToFront()
}

// SwitchToOriginalTab - focuses the tab the session started with
func (b *PlaywrightController) SwitchToOriginalTab(ctx context.Context) error {
	b.pagesMutex.Lock()
	defer b.pagesMutex.Unlock()

	for _, p := range b.pages {
		if p == b.original {
			b.page = p
			return p.BringToFront()
		}
	}
	return errors.New("original tab is closed")
}

// CloseCurrentTab - closes the focused tab and falls back to the original one
func (b *PlaywrightController) CloseCurrentTab(ctx context.Context) error {
	page := b.currentPage()
	if err := page.Close(); err != nil {
		return fmt.Errorf("failed to close tab: %w", err)
	}

	b.pagesMutex.Lock()
	defer b.pagesMutex.Unlock()
	b.forgetPage(page)
	for _, p := range b.pages {
		if p == b.original {
			b.page = p
		}
	}
	return nil
}

// GetCurrentURL - returns current page URL
func (b *PlaywrightController) GetCurrentURL(ctx context.Context) (string, error) {
	return b.currentPage().URL(), nil
}

// GetPageTitle - returns current page title
func (b *PlaywrightController) GetPageTitle(ctx context.Context) (string, error) {
	return b.currentPage().Title()
}

// TakeScreenshot - captures the full current page
func (b *PlaywrightController) TakeScreenshot(ctx context.Context) ([]byte, error) {
	return b.currentPage().Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
}

// SaveState - saves cookies and local storage for the next session
func (b *PlaywrightController) SaveState() error {
	if b.context == nil || b.state == nil {
		return nil
	}

	_, err := b.context.StorageState(b.state.Path())
	if err != nil {
		if isClosedErr(err) {
			return nil
		}
		return fmt.Errorf("failed to save browser state: %w", err)
	}
	return nil
}

// CloseBrowser - saves state and shuts everything down
func (b *PlaywrightController) CloseBrowser() error {
	var errs []error

	if err := b.SaveState(); err != nil {
		errs = append(errs, err)
	}

	if b.context != nil {
		if err := b.context.Close(); err != nil && !isClosedErr(err) {
			errs = append(errs, fmt.Errorf("failed to close context: %w", err))
		}
		b.context = nil
	}

	if b.browser != nil {
		if err := b.browser.Close(); err != nil && !isClosedErr(err) {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
		b.browser = nil
	}

	if b.pw != nil {
		if err := b.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
		b.pw = nil
	}

	return errors.Join(errs...)
}

func isClosedErr(err error) bool {
	if errors.Is(err, playwright.ErrTargetClosed) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "closed") || strings.Contains(errStr, "target closed")
}

func asPlaywrightHandle(h interfaces.ElementHandle) (*playwrightHandle, error) {
	ph, ok := h.(*playwrightHandle)
	if !ok {
		return nil, fmt.Errorf("element handle %T was not produced by playwright", h)
	}
	return ph, nil
}

// ClickHandle - native click on a resolved element
func (b *PlaywrightController) ClickHandle(ctx context.Context, h interfaces.ElementHandle) error {
	ph, err := asPlaywrightHandle(h)
	if err != nil {
		return err
	}
	return ph.locator.Click()
}

// DoubleClickHandle - native double click on a resolved element
func (b *PlaywrightController) DoubleClickHandle(ctx context.Context, h interfaces.ElementHandle) error {
	ph, err := asPlaywrightHandle(h)
	if err != nil {
		return err
	}
	return ph.locator.Dblclick()
}

// MoveToHandle - moves the pointer over a resolved element
func (b *PlaywrightController) MoveToHandle(ctx context.Context, h interfaces.ElementHandle) error {
	ph, err := asPlaywrightHandle(h)
	if err != nil {
		return err
	}
	return ph.locator.Hover()
}

// MoveToOrigin - moves the pointer to the page origin
func (b *PlaywrightController) MoveToOrigin(ctx context.Context) error {
	return b.currentPage().Mouse().Move(0, 0)
}

// DragHandle - drags one resolved element onto another
func (b *PlaywrightController) DragHandle(ctx context.Context, source, target interfaces.ElementHandle) error {
	src, err := asPlaywrightHandle(source)
	if err != nil {
		return err
	}
	dst, err := asPlaywrightHandle(target)
	if err != nil {
		return err
	}
	return src.locator.DragTo(dst.locator)
}

// playwrightHandle is a locator pinned to one match
type playwrightHandle struct {
	locator playwright.Locator
}

// staleErr - a pinned locator that no longer resolves means the element left the page
func staleErr(err error) error {
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %v", interfaces.ErrStaleElement, err)
	}
	return err
}

func (h *playwrightHandle) Attribute(name string) (string, bool, error) {
	value, err := h.locator.Evaluate(getAttributeJS, name, playwright.LocatorEvaluateOptions{Timeout: ms(handleReadTimeout)})
	if err != nil {
		return "", false, staleErr(err)
	}
	if value == nil {
		return "", false, nil
	}
	if s, ok := value.(string); ok {
		return s, true, nil
	}
	return fmt.Sprint(value), true, nil
}

func (h *playwrightHandle) Text() (string, error) {
	text, err := h.locator.InnerText(playwright.LocatorInnerTextOptions{Timeout: ms(handleReadTimeout)})
	return text, staleErr(err)
}

func (h *playwrightHandle) TagName() (string, error) {
	value, err := h.locator.Evaluate(tagNameJS, nil, playwright.LocatorEvaluateOptions{Timeout: ms(handleReadTimeout)})
	if err != nil {
		return "", staleErr(err)
	}
	tag, _ := value.(string)
	return tag, nil
}

func (h *playwrightHandle) box() (*playwright.Rect, error) {
	rect, err := h.locator.BoundingBox(playwright.LocatorBoundingBoxOptions{Timeout: ms(handleReadTimeout)})
	if err != nil {
		return nil, staleErr(err)
	}
	return rect, nil
}

func (h *playwrightHandle) Location() (entities.Point, error) {
	rect, err := h.box()
	if err != nil || rect == nil {
		return entities.Point{}, err
	}
	return entities.Point{X: int(rect.X), Y: int(rect.Y)}, nil
}

func (h *playwrightHandle) Size() (entities.Size, error) {
	rect, err := h.box()
	if err != nil || rect == nil {
		return entities.Size{}, err
	}
	return entities.Size{Width: int(rect.Width), Height: int(rect.Height)}, nil
}

func (h *playwrightHandle) IsDisplayed() (bool, error) {
	visible, err := h.locator.IsVisible()
	return visible, staleErr(err)
}

func (h *playwrightHandle) IsEnabled() (bool, error) {
	enabled, err := h.locator.IsEnabled(playwright.LocatorIsEnabledOptions{Timeout: ms(handleReadTimeout)})
	return enabled, staleErr(err)
}

// Ensure PlaywrightController implements the Driver interface
var _ interfaces.Driver = (*PlaywrightController)(nil)
