package element

import (
	"context"

	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
)

// Interactive is the capability set shared by every element kind.
type Interactive interface {
	Locatable
	Kind() Kind
	Click(ctx context.Context, opts ...Option) error
	DoubleClick(ctx context.Context, opts ...Option) error
	Hover(ctx context.Context, opts ...Option) error
	Unhover(ctx context.Context, opts ...Option) error
	ScrollTo(ctx context.Context, opts ...Option) error
	DragTo(ctx context.Context, target Locatable, opts ...Option) error
	WaitFor(ctx context.Context, opts ...Option) (interfaces.ElementHandle, error)
	Properties(ctx context.Context, opts ...Option) (entities.PropertySnapshot, error)
	Attribute(ctx context.Context, name string, opts ...Option) (string, bool, error)
	AllProperties(ctx context.Context, opts ...Option) ([]entities.PropertySnapshot, error)
}

// TextEnterer is added by InputField.
type TextEnterer interface {
	EnterText(ctx context.Context, text string, opts ...Option) error
	SetValue(ctx context.Context, value string, opts ...Option) error
}

// OptionSelector is added by Dropdown.
type OptionSelector interface {
	SelectByText(ctx context.Context, text string, opts ...Option) error
	SelectByValue(ctx context.Context, value string, opts ...Option) error
	SelectByIndex(ctx context.Context, index int, opts ...Option) error
	DeselectByText(ctx context.Context, text string, opts ...Option) error
	DeselectAll(ctx context.Context, opts ...Option) error
	SelectedTexts(ctx context.Context, opts ...Option) ([]string, error)
}

// FileUploader is added by FileInput.
type FileUploader interface {
	UploadFile(ctx context.Context, path string, opts ...Option) error
}

var (
	_ Interactive = (*Element)(nil)
	_ Interactive = (*Button)(nil)
	_ Interactive = (*Text)(nil)
	_ Interactive = (*Link)(nil)
	_ Interactive = (*Image)(nil)
	_ Interactive = (*Container)(nil)
	_ Interactive = (*InputField)(nil)
	_ Interactive = (*Dropdown)(nil)
	_ Interactive = (*FileInput)(nil)

	_ TextEnterer    = (*InputField)(nil)
	_ OptionSelector = (*Dropdown)(nil)
	_ FileUploader   = (*FileInput)(nil)
)
