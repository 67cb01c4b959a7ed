package element_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ui_automation/application/element"
	"ui_automation/domain/locator"
	"ui_automation/internal/drivertest"
)

func TestInputField(t *testing.T) {
	ctx, d, _ := setup(t)
	d.Add("//*[@id='range-input']", &drivertest.Element{Tag: "input", Attrs: map[string]string{"type": "range"}})
	d.Add("//*[@id='text-input']", &drivertest.Element{Tag: "input"})

	rng, err := element.NewInputField(ctx, locator.ID("range-input"))
	require.NoError(t, err)
	require.NoError(t, rng.SetValue(ctx, "73"))

	v, ok, err := rng.Attribute(ctx, "value")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "73", v)

	txt, err := element.NewInputField(ctx, locator.ID("text-input"))
	require.NoError(t, err)
	require.NoError(t, txt.EnterText(ctx, "Texto de teste"))

	assert.Equal(t, []string{"SetElementValue", "WaitForElement", "EnterTextSafely"}, d.Methods())
}

func TestInputField_Missing(t *testing.T) {
	ctx, _, _ := setup(t)

	f, err := element.NewInputField(ctx, locator.ID("nope"))
	require.NoError(t, err)

	err = f.EnterText(ctx, "x")
	assert.ErrorIs(t, err, element.ErrInteractionFailed)
}

func newMultiSelect(d *drivertest.Driver) {
	d.Add("//*[@id='multi-dropdown']", &drivertest.Element{
		Tag:      "select",
		Multiple: true,
		Options: []*drivertest.Option{
			{Text: "Opção 1", Value: "1"},
			{Text: "Opção 2", Value: "2"},
			{Text: "Opção 3", Value: "3"},
		},
	})
}

func TestDropdown_MultiSelect(t *testing.T) {
	ctx, d, _ := setup(t)
	newMultiSelect(d)

	dd, err := element.NewDropdown(ctx, locator.ID("multi-dropdown"))
	require.NoError(t, err)

	require.NoError(t, dd.SelectByText(ctx, "Opção 1"))
	require.NoError(t, dd.SelectByIndex(ctx, 2))

	got, err := dd.SelectedTexts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Opção 1", "Opção 3"}, got)

	require.NoError(t, dd.DeselectByText(ctx, "Opção 1"))
	got, err = dd.SelectedTexts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Opção 3"}, got)

	require.NoError(t, dd.SelectByValue(ctx, "2"))
	require.NoError(t, dd.DeselectAll(ctx))
	got, err = dd.SelectedTexts(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDropdown_SingleSelect(t *testing.T) {
	ctx, d, _ := setup(t)
	d.Add("//*[@id='dropdown']", &drivertest.Element{
		Tag: "select",
		Options: []*drivertest.Option{
			{Text: "Opção 1", Value: "1", Selected: true},
			{Text: "Opção 2", Value: "2"},
		},
	})

	dd, err := element.NewDropdown(ctx, locator.ID("dropdown"))
	require.NoError(t, err)

	require.NoError(t, dd.SelectByText(ctx, "Opção 2"))
	got, err := dd.SelectedTexts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Opção 2"}, got)

	err = dd.DeselectAll(ctx)
	assert.ErrorIs(t, err, element.ErrInteractionFailed)
}

func TestDropdown_UnknownOption(t *testing.T) {
	ctx, d, _ := setup(t)
	newMultiSelect(d)

	dd, err := element.NewDropdown(ctx, locator.ID("multi-dropdown"))
	require.NoError(t, err)

	err = dd.SelectByText(ctx, "Opção 9")
	require.Error(t, err)
	assert.ErrorIs(t, err, element.ErrInteractionFailed)
	assert.Contains(t, err.Error(), "select_by_text")
}

func TestFileInput(t *testing.T) {
	ctx, d, _ := setup(t)
	d.Add("//*[@id='file-input']", &drivertest.Element{Tag: "input", Attrs: map[string]string{"type": "file"}})

	path := filepath.Join(t.TempDir(), "dummy_upload.txt")
	require.NoError(t, os.WriteFile(path, []byte("This is a dummy text file to test file upload."), 0o644))

	fi, err := element.NewFileInput(ctx, locator.ID("file-input"))
	require.NoError(t, err)
	require.NoError(t, fi.UploadFile(ctx, path))

	calls := d.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "UploadFile", calls[0].Method)
	assert.Equal(t, path, calls[0].Args[1])
}

func TestFileInput_MissingSource(t *testing.T) {
	ctx, d, _ := setup(t)

	fi, err := element.NewFileInput(ctx, locator.ID("file-input"))
	require.NoError(t, err)

	err = fi.UploadFile(ctx, filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, element.ErrInteractionFailed)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, d.Calls())
}
