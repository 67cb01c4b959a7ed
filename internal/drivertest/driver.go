// Package drivertest provides an in-memory interfaces.Driver for tests.
//
// Elements are registered against the exact query string a wrapper will
// issue. Every driver call is recorded, and per-method failures can be
// injected with Fail.
package drivertest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
)

// ErrNoSuchElement is returned when a query has no usable match.
var ErrNoSuchElement = errors.New("no such element")

// Option is one <option> of a fake <select>.
type Option struct {
	Text     string
	Value    string
	Selected bool
}

// Element is a fake DOM element. It doubles as the handle returned by waits.
type Element struct {
	Tag      string
	Content  string
	Attrs    map[string]string
	Loc      entities.Point
	Dim      entities.Size
	Hidden   bool
	Disabled bool
	Detached bool

	Multiple bool
	Options  []*Option

	mu sync.Mutex
}

func (e *Element) stale() error {
	if e.Detached {
		return fmt.Errorf("element <%s> detached from page: %w", e.Tag, interfaces.ErrStaleElement)
	}
	return nil
}

func (e *Element) Attribute(name string) (string, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.stale(); err != nil {
		return "", false, err
	}
	v, ok := e.Attrs[name]
	return v, ok, nil
}

func (e *Element) Text() (string, error) {
	if err := e.stale(); err != nil {
		return "", err
	}
	return e.Content, nil
}

func (e *Element) TagName() (string, error) {
	if err := e.stale(); err != nil {
		return "", err
	}
	return e.Tag, nil
}

func (e *Element) Location() (entities.Point, error) {
	if err := e.stale(); err != nil {
		return entities.Point{}, err
	}
	return e.Loc, nil
}

func (e *Element) Size() (entities.Size, error) {
	if err := e.stale(); err != nil {
		return entities.Size{}, err
	}
	return e.Dim, nil
}

func (e *Element) IsDisplayed() (bool, error) {
	if err := e.stale(); err != nil {
		return false, err
	}
	return !e.Hidden, nil
}

func (e *Element) IsEnabled() (bool, error) {
	if err := e.stale(); err != nil {
		return false, err
	}
	return !e.Disabled, nil
}

func (e *Element) setAttr(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Attrs == nil {
		e.Attrs = make(map[string]string)
	}
	e.Attrs[name] = value
}

// Call is one recorded driver invocation
type Call struct {
	Method string
	Args   []any
}

// Driver is an in-memory implementation of interfaces.Driver
type Driver struct {
	mu       sync.Mutex
	elements map[string][]*Element
	failures map[string]error
	calls    []Call

	url     string
	tabs    int
	current int
	alerts  int
	closed  bool
}

// New creates an empty driver with a single open tab
func New() *Driver {
	return &Driver{
		elements: make(map[string][]*Element),
		failures: make(map[string]error),
		tabs:     1,
	}
}

// Logger returns a logger that discards output
func Logger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// NewLogger returns a discarding logger and a hook capturing its entries
func NewLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

// Add registers elements matched by query, in document order
func (d *Driver) Add(query string, els ...*Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements[query] = append(d.elements[query], els...)
}

// Fail makes every later call of method return err
func (d *Driver) Fail(method string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures[method] = err
}

// OpenTab simulates a page opening a new tab
func (d *Driver) OpenTab() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tabs++
}

// RaiseAlert simulates a page opening an alert
func (d *Driver) RaiseAlert() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.alerts++
}

// Calls returns a copy of the recorded calls
func (d *Driver) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}

// Methods returns the recorded method names in call order
func (d *Driver) Methods() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, 0, len(d.calls))
	for _, c := range d.calls {
		names = append(names, c.Method)
	}
	return names
}

// Closed reports whether CloseBrowser was called
func (d *Driver) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// CurrentTab returns the index of the focused tab and the number of tabs
func (d *Driver) CurrentTab() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current, d.tabs
}

func (d *Driver) record(ctx context.Context, method string, args ...any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, Call{Method: method, Args: args})
	if err := ctx.Err(); err != nil {
		return err
	}
	return d.failures[method]
}

func (d *Driver) visible(query string) (*Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, el := range d.elements[query] {
		if !el.Hidden && !el.Detached {
			return el, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoSuchElement, query)
}

func (d *Driver) ClickElement(ctx context.Context, query string, timeout time.Duration) error {
	if err := d.record(ctx, "ClickElement", query, timeout); err != nil {
		return err
	}
	el, err := d.visible(query)
	if err != nil {
		return err
	}
	if el.Disabled {
		return fmt.Errorf("element not interactable: %s", query)
	}
	return nil
}

func (d *Driver) HoverElement(ctx context.Context, query string, timeout time.Duration) error {
	if err := d.record(ctx, "HoverElement", query, timeout); err != nil {
		return err
	}
	_, err := d.visible(query)
	return err
}

func (d *Driver) UnhoverElement(ctx context.Context, timeout time.Duration) error {
	return d.record(ctx, "UnhoverElement", timeout)
}

func (d *Driver) ScrollToElement(ctx context.Context, query string, timeout time.Duration) error {
	if err := d.record(ctx, "ScrollToElement", query, timeout); err != nil {
		return err
	}
	_, err := d.visible(query)
	return err
}

func (d *Driver) DragAndDrop(ctx context.Context, sourceQuery, targetQuery string, timeout time.Duration) error {
	if err := d.record(ctx, "DragAndDrop", sourceQuery, targetQuery, timeout); err != nil {
		return err
	}
	if _, err := d.visible(sourceQuery); err != nil {
		return err
	}
	_, err := d.visible(targetQuery)
	return err
}

func (d *Driver) WaitForElement(ctx context.Context, query string, timeout time.Duration) (interfaces.ElementHandle, error) {
	if err := d.record(ctx, "WaitForElement", query, timeout); err != nil {
		return nil, err
	}
	el, err := d.visible(query)
	if err != nil {
		return nil, err
	}
	return el, nil
}

func (d *Driver) WaitForAllElements(ctx context.Context, query string, timeout time.Duration) ([]interfaces.ElementHandle, error) {
	if err := d.record(ctx, "WaitForAllElements", query, timeout); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	matches := d.elements[query]
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchElement, query)
	}
	handles := make([]interfaces.ElementHandle, 0, len(matches))
	for _, el := range matches {
		handles = append(handles, el)
	}
	return handles, nil
}

func (d *Driver) EnterTextSafely(ctx context.Context, query string, text string, timeout time.Duration) error {
	if err := d.record(ctx, "EnterTextSafely", query, text, timeout); err != nil {
		return err
	}
	el, err := d.visible(query)
	if err != nil {
		return err
	}
	el.setAttr("value", text)
	return nil
}

func (d *Driver) SetElementValue(ctx context.Context, query string, value string, timeout time.Duration) error {
	if err := d.record(ctx, "SetElementValue", query, value, timeout); err != nil {
		return err
	}
	el, err := d.visible(query)
	if err != nil {
		return err
	}
	el.setAttr("value", value)
	return nil
}

func (d *Driver) UploadFile(ctx context.Context, query string, path string, timeout time.Duration) error {
	if err := d.record(ctx, "UploadFile", query, path, timeout); err != nil {
		return err
	}
	el, err := d.visible(query)
	if err != nil {
		return err
	}
	el.setAttr("value", path)
	return nil
}

func (d *Driver) selectOption(query string, match func(i int, o *Option) bool, selected bool) error {
	el, err := d.visible(query)
	if err != nil {
		return err
	}
	el.mu.Lock()
	defer el.mu.Unlock()

	if !selected && !el.Multiple {
		return fmt.Errorf("cannot deselect options of a single select: %s", query)
	}
	for i, o := range el.Options {
		if !match(i, o) {
			continue
		}
		if selected && !el.Multiple {
			for _, other := range el.Options {
				other.Selected = false
			}
		}
		o.Selected = selected
		return nil
	}
	return fmt.Errorf("no matching option in %s", query)
}

func (d *Driver) SelectOptionByText(ctx context.Context, query string, text string, timeout time.Duration) error {
	if err := d.record(ctx, "SelectOptionByText", query, text, timeout); err != nil {
		return err
	}
	return d.selectOption(query, func(_ int, o *Option) bool { return o.Text == text }, true)
}

func (d *Driver) SelectOptionByValue(ctx context.Context, query string, value string, timeout time.Duration) error {
	if err := d.record(ctx, "SelectOptionByValue", query, value, timeout); err != nil {
		return err
	}
	return d.selectOption(query, func(_ int, o *Option) bool { return o.Value == value }, true)
}

func (d *Driver) SelectOptionByIndex(ctx context.Context, query string, index int, timeout time.Duration) error {
	if err := d.record(ctx, "SelectOptionByIndex", query, index, timeout); err != nil {
		return err
	}
	return d.selectOption(query, func(i int, _ *Option) bool { return i == index }, true)
}

func (d *Driver) DeselectOptionByText(ctx context.Context, query string, text string, timeout time.Duration) error {
	if err := d.record(ctx, "DeselectOptionByText", query, text, timeout); err != nil {
		return err
	}
	return d.selectOption(query, func(_ int, o *Option) bool { return o.Text == text }, false)
}

func (d *Driver) DeselectAllOptions(ctx context.Context, query string, timeout time.Duration) error {
	if err := d.record(ctx, "DeselectAllOptions", query, timeout); err != nil {
		return err
	}
	el, err := d.visible(query)
	if err != nil {
		return err
	}
	el.mu.Lock()
	defer el.mu.Unlock()
	if !el.Multiple {
		return fmt.Errorf("cannot deselect options of a single select: %s", query)
	}
	for _, o := range el.Options {
		o.Selected = false
	}
	return nil
}

func (d *Driver) GetAllSelectedOptionsText(ctx context.Context, query string, timeout time.Duration) ([]string, error) {
	if err := d.record(ctx, "GetAllSelectedOptionsText", query, timeout); err != nil {
		return nil, err
	}
	el, err := d.visible(query)
	if err != nil {
		return nil, err
	}
	el.mu.Lock()
	defer el.mu.Unlock()
	texts := []string{}
	for _, o := range el.Options {
		if o.Selected {
			texts = append(texts, o.Text)
		}
	}
	return texts, nil
}

func (d *Driver) OpenURL(ctx context.Context, url string) error {
	if err := d.record(ctx, "OpenURL", url); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.url = url
	return nil
}

func (d *Driver) handleAlert(ctx context.Context, method string, timeout time.Duration) error {
	if err := d.record(ctx, method, timeout); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.alerts == 0 {
		return fmt.Errorf("no alert open after %s", timeout)
	}
	d.alerts--
	return nil
}

func (d *Driver) AcceptAlert(ctx context.Context, timeout time.Duration) error {
	return d.handleAlert(ctx, "AcceptAlert", timeout)
}

func (d *Driver) DismissAlert(ctx context.Context, timeout time.Duration) error {
	return d.handleAlert(ctx, "DismissAlert", timeout)
}

func (d *Driver) SwitchToNewTab(ctx context.Context) error {
	if err := d.record(ctx, "SwitchToNewTab"); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tabs < 2 {
		return errors.New("no new tab to switch to")
	}
	d.current = d.tabs - 1
	return nil
}

func (d *Driver) SwitchToOriginalTab(ctx context.Context) error {
	if err := d.record(ctx, "SwitchToOriginalTab"); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = 0
	return nil
}

func (d *Driver) CloseCurrentTab(ctx context.Context) error {
	if err := d.record(ctx, "CloseCurrentTab"); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tabs == 0 {
		return errors.New("no tab open")
	}
	d.tabs--
	d.current = 0
	return nil
}

func (d *Driver) GetCurrentURL(ctx context.Context) (string, error) {
	if err := d.record(ctx, "GetCurrentURL"); err != nil {
		return "", err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.url, nil
}

func (d *Driver) GetPageTitle(ctx context.Context) (string, error) {
	if err := d.record(ctx, "GetPageTitle"); err != nil {
		return "", err
	}
	return "Fake page", nil
}

func (d *Driver) TakeScreenshot(ctx context.Context) ([]byte, error) {
	if err := d.record(ctx, "TakeScreenshot"); err != nil {
		return nil, err
	}
	return []byte("\x89PNG"), nil
}

func (d *Driver) CloseBrowser() error {
	if err := d.record(context.Background(), "CloseBrowser"); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

func asElement(h interfaces.ElementHandle) (*Element, error) {
	el, ok := h.(*Element)
	if !ok {
		return nil, fmt.Errorf("foreign element handle %T", h)
	}
	return el, el.stale()
}

func (d *Driver) ClickHandle(ctx context.Context, h interfaces.ElementHandle) error {
	if err := d.record(ctx, "ClickHandle", h); err != nil {
		return err
	}
	_, err := asElement(h)
	return err
}

func (d *Driver) DoubleClickHandle(ctx context.Context, h interfaces.ElementHandle) error {
	if err := d.record(ctx, "DoubleClickHandle", h); err != nil {
		return err
	}
	_, err := asElement(h)
	return err
}

func (d *Driver) MoveToHandle(ctx context.Context, h interfaces.ElementHandle) error {
	if err := d.record(ctx, "MoveToHandle", h); err != nil {
		return err
	}
	_, err := asElement(h)
	return err
}

func (d *Driver) MoveToOrigin(ctx context.Context) error {
	return d.record(ctx, "MoveToOrigin")
}

func (d *Driver) DragHandle(ctx context.Context, source, target interfaces.ElementHandle) error {
	if err := d.record(ctx, "DragHandle", source, target); err != nil {
		return err
	}
	if _, err := asElement(source); err != nil {
		return err
	}
	_, err := asElement(target)
	return err
}

var _ interfaces.Driver = (*Driver)(nil)
var _ interfaces.ElementHandle = (*Element)(nil)
