package element

import (
	"context"
	"fmt"
	"os"

	"ui_automation/domain/entities"
	"ui_automation/domain/locator"
)

// FileInput is an <input type="file">.
type FileInput struct{ *Element }

// NewFileInput - <input type="file"> element
func NewFileInput(ctx context.Context, attrs ...locator.Attribute) (*FileInput, error) {
	e, err := newElement(ctx, KindFileInput, attrs)
	if err != nil {
		return nil, err
	}
	return &FileInput{e}, nil
}

// UploadFile attaches the local file at path. The file must exist.
func (f *FileInput) UploadFile(ctx context.Context, path string, opts ...Option) error {
	o := f.resolve(opts)
	f.logger.Infof("Uploading file '%s' to: %s", path, f.locator)
	return f.act(entities.ActionUploadFile, o, func() error {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("upload source: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("upload source %s is a directory", path)
		}
		return f.driver().UploadFile(ctx, f.locator, path, o.timeout)
	})
}
