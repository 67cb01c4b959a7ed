package element

import (
	"context"

	"ui_automation/domain/entities"
	"ui_automation/domain/locator"
)

// Dropdown is a <select>, single or multiple.
type Dropdown struct{ *Element }

// NewDropdown - <select> element, single or multiple
func NewDropdown(ctx context.Context, attrs ...locator.Attribute) (*Dropdown, error) {
	e, err := newElement(ctx, KindDropdown, attrs)
	if err != nil {
		return nil, err
	}
	return &Dropdown{e}, nil
}

// SelectByText selects the option with the given visible text. On a
// multi-select the existing selection is kept.
func (d *Dropdown) SelectByText(ctx context.Context, text string, opts ...Option) error {
	o := d.resolve(opts)
	d.logger.Infof("Selecting '%s' by text from: %s", text, d.locator)
	return d.act(entities.ActionSelectText, o, func() error {
		return d.driver().SelectOptionByText(ctx, d.locator, text, o.timeout)
	})
}

// SelectByValue selects the option whose value attribute matches.
func (d *Dropdown) SelectByValue(ctx context.Context, value string, opts ...Option) error {
	o := d.resolve(opts)
	d.logger.Infof("Selecting value '%s' from: %s", value, d.locator)
	return d.act(entities.ActionSelectValue, o, func() error {
		return d.driver().SelectOptionByValue(ctx, d.locator, value, o.timeout)
	})
}

// SelectByIndex selects the option at the 0-based index.
func (d *Dropdown) SelectByIndex(ctx context.Context, index int, opts ...Option) error {
	o := d.resolve(opts)
	d.logger.Infof("Selecting index %d from: %s", index, d.locator)
	return d.act(entities.ActionSelectIndex, o, func() error {
		return d.driver().SelectOptionByIndex(ctx, d.locator, index, o.timeout)
	})
}

// DeselectByText deselects an option of a multi-select by visible text.
func (d *Dropdown) DeselectByText(ctx context.Context, text string, opts ...Option) error {
	o := d.resolve(opts)
	d.logger.Infof("Deselecting '%s' by text from: %s", text, d.locator)
	return d.act(entities.ActionDeselectText, o, func() error {
		return d.driver().DeselectOptionByText(ctx, d.locator, text, o.timeout)
	})
}

// DeselectAll clears a multi-select.
func (d *Dropdown) DeselectAll(ctx context.Context, opts ...Option) error {
	o := d.resolve(opts)
	d.logger.Infof("Deselecting all options from: %s", d.locator)
	return d.act(entities.ActionDeselectAll, o, func() error {
		return d.driver().DeselectAllOptions(ctx, d.locator, o.timeout)
	})
}

// SelectedTexts returns the visible text of every selected option, in the
// order the driver reports them.
func (d *Dropdown) SelectedTexts(ctx context.Context, opts ...Option) ([]string, error) {
	o := d.resolve(opts)
	d.logger.Infof("Getting selected texts from: %s", d.locator)

	var texts []string
	err := d.act(entities.ActionSelectedTexts, o, func() error {
		var err error
		texts, err = d.driver().GetAllSelectedOptionsText(ctx, d.locator, o.timeout)
		return err
	})
	if err != nil {
		return nil, err
	}
	return texts, nil
}
