package element

import (
	"context"

	"ui_automation/domain/locator"
)

// Button is an interactive control such as <button> or <input type="submit">.
type Button struct{ *Element }

// Text is read-only text such as <span>, <p> or <h1>.
type Text struct{ *Element }

// Link is a hyperlink (<a>).
type Link struct{ *Element }

// Image is an <img>.
type Image struct{ *Element }

// Container is a generic grouping element such as <div> or <section>.
type Container struct{ *Element }

// NewButton - clickable element located from the session in ctx
func NewButton(ctx context.Context, attrs ...locator.Attribute) (*Button, error) {
	e, err := newElement(ctx, KindButton, attrs)
	if err != nil {
		return nil, err
	}
	return &Button{e}, nil
}

// NewText - read-only text element
func NewText(ctx context.Context, attrs ...locator.Attribute) (*Text, error) {
	e, err := newElement(ctx, KindText, attrs)
	if err != nil {
		return nil, err
	}
	return &Text{e}, nil
}

// NewLink - anchor element
func NewLink(ctx context.Context, attrs ...locator.Attribute) (*Link, error) {
	e, err := newElement(ctx, KindLink, attrs)
	if err != nil {
		return nil, err
	}
	return &Link{e}, nil
}

// NewImage - image element
func NewImage(ctx context.Context, attrs ...locator.Attribute) (*Image, error) {
	e, err := newElement(ctx, KindImage, attrs)
	if err != nil {
		return nil, err
	}
	return &Image{e}, nil
}

// NewContainer - grouping element such as a div or section
func NewContainer(ctx context.Context, attrs ...locator.Attribute) (*Container, error) {
	e, err := newElement(ctx, KindContainer, attrs)
	if err != nil {
		return nil, err
	}
	return &Container{e}, nil
}
