package element

import (
	"context"

	"ui_automation/domain/entities"
	"ui_automation/domain/locator"
)

// InputField covers <input>, <textarea> and range sliders.
type InputField struct{ *Element }

// NewInputField - text input or textarea located from the session in ctx
func NewInputField(ctx context.Context, attrs ...locator.Attribute) (*InputField, error) {
	e, err := newElement(ctx, KindInput, attrs)
	if err != nil {
		return nil, err
	}
	return &InputField{e}, nil
}

// EnterText clears the field and types text into it.
func (f *InputField) EnterText(ctx context.Context, text string, opts ...Option) error {
	o := f.resolve(opts)
	f.logger.Infof("Entering text '%s' into: %s", text, f.locator)
	return f.act(entities.ActionEnterText, o, func() error {
		return f.driver().EnterTextSafely(ctx, f.locator, text, o.timeout)
	})
}

// SetValue assigns the value directly instead of simulating keystrokes.
// Use it for controls like <input type="range"> or color pickers.
func (f *InputField) SetValue(ctx context.Context, value string, opts ...Option) error {
	o := f.resolve(opts)
	f.logger.Infof("Setting value '%s' for: %s", value, f.locator)
	return f.act(entities.ActionSetValue, o, func() error {
		return f.driver().SetElementValue(ctx, f.locator, value, o.timeout)
	})
}
