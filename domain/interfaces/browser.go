package interfaces

import (
	"context"
	"errors"
	"time"

	"ui_automation/domain/entities"
)

// ErrStaleElement is wrapped by drivers when a resolved handle no longer
// refers to an element attached to the page.
var ErrStaleElement = errors.New("stale element reference")

// ElementHandle is a resolved element as returned by a driver wait.
type ElementHandle interface {
	// Attribute reads an attribute; ok is false when the element lacks it
	Attribute(name string) (value string, ok bool, err error)

	// Text returns the visible text
	Text() (string, error)

	// TagName returns the lower-case tag name
	TagName() (string, error)

	// Location returns the top-left corner on the page
	Location() (entities.Point, error)

	// Size returns the rendered size
	Size() (entities.Size, error)

	// IsDisplayed reports whether the element is visible
	IsDisplayed() (bool, error)

	// IsEnabled reports whether the element accepts interaction
	IsEnabled() (bool, error)
}

// ElementActions are interactions addressed by query. Each waits for the
// element to become interactable within timeout.
type ElementActions interface {
	ClickElement(ctx context.Context, query string, timeout time.Duration) error
	HoverElement(ctx context.Context, query string, timeout time.Duration) error
	UnhoverElement(ctx context.Context, timeout time.Duration) error
	ScrollToElement(ctx context.Context, query string, timeout time.Duration) error
	DragAndDrop(ctx context.Context, sourceQuery, targetQuery string, timeout time.Duration) error
}

// ElementWaiter resolves queries into handles.
type ElementWaiter interface {
	// WaitForElement blocks until the first match is visible
	WaitForElement(ctx context.Context, query string, timeout time.Duration) (ElementHandle, error)

	// WaitForAllElements returns every match in document order
	WaitForAllElements(ctx context.Context, query string, timeout time.Duration) ([]ElementHandle, error)
}

// TextEntry writes into form controls.
type TextEntry interface {
	EnterTextSafely(ctx context.Context, query string, text string, timeout time.Duration) error
	SetElementValue(ctx context.Context, query string, value string, timeout time.Duration) error
}

// FileUploader attaches a local file to a file input.
type FileUploader interface {
	UploadFile(ctx context.Context, query string, path string, timeout time.Duration) error
}

// OptionSelector drives <select> elements.
type OptionSelector interface {
	SelectOptionByText(ctx context.Context, query string, text string, timeout time.Duration) error
	SelectOptionByValue(ctx context.Context, query string, value string, timeout time.Duration) error
	SelectOptionByIndex(ctx context.Context, query string, index int, timeout time.Duration) error
	DeselectOptionByText(ctx context.Context, query string, text string, timeout time.Duration) error
	DeselectAllOptions(ctx context.Context, query string, timeout time.Duration) error
	GetAllSelectedOptionsText(ctx context.Context, query string, timeout time.Duration) ([]string, error)
}

// Navigator covers page, tab and alert level operations.
type Navigator interface {
	OpenURL(ctx context.Context, url string) error
	AcceptAlert(ctx context.Context, timeout time.Duration) error
	DismissAlert(ctx context.Context, timeout time.Duration) error
	SwitchToNewTab(ctx context.Context) error
	SwitchToOriginalTab(ctx context.Context) error
	CloseCurrentTab(ctx context.Context) error
	GetCurrentURL(ctx context.Context) (string, error)
	GetPageTitle(ctx context.Context) (string, error)
	TakeScreenshot(ctx context.Context) ([]byte, error)

	// CloseBrowser ends the whole session
	CloseBrowser() error
}

// Pointer issues raw gestures against already resolved handles.
type Pointer interface {
	ClickHandle(ctx context.Context, h ElementHandle) error
	DoubleClickHandle(ctx context.Context, h ElementHandle) error
	MoveToHandle(ctx context.Context, h ElementHandle) error
	MoveToOrigin(ctx context.Context) error
	DragHandle(ctx context.Context, source, target ElementHandle) error
}

// Driver is the full capability set a browser backend must provide.
type Driver interface {
	ElementActions
	ElementWaiter
	TextEntry
	FileUploader
	OptionSelector
	Navigator
	Pointer
}
