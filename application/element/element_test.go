package element_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ui_automation/application/element"
	"ui_automation/application/session"
	"ui_automation/domain/entities"
	"ui_automation/domain/locator"
	"ui_automation/internal/drivertest"
)

func setup(t *testing.T) (context.Context, *drivertest.Driver, *test.Hook) {
	t.Helper()
	d := drivertest.New()
	logger, hook := drivertest.NewLogger()
	s := session.New(d, logger)
	return session.WithActive(context.Background(), s), d, hook
}

func TestNew_WithoutSession(t *testing.T) {
	_, err := element.NewButton(context.Background(), locator.ID("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrNoActiveSession)
}

func TestNew_BuildsLocatorOnce(t *testing.T) {
	ctx, _, _ := setup(t)

	e, err := element.New(ctx)
	require.NoError(t, err)
	assert.Equal(t, "//*", e.Locator())

	btn, err := element.NewButton(ctx, locator.ID("submit-btn"), locator.ClassName("btn-primary"), locator.Text("Submit"))
	require.NoError(t, err)
	assert.Equal(t, "//*[@id='submit-btn' and @class='btn-primary' and contains(text(), 'Submit')]", btn.Locator())
	assert.Equal(t, element.KindButton, btn.Kind())
}

func TestNew_ExplicitSessionOverride(t *testing.T) {
	ctx, _, _ := setup(t)
	other := session.New(drivertest.New(), drivertest.Logger())

	e, err := element.New(session.WithActive(ctx, other), locator.ID("x"))
	require.NoError(t, err)
	assert.Same(t, other, e.Session())
}

func TestVariantKinds(t *testing.T) {
	ctx, _, _ := setup(t)
	id := locator.ID("x")

	kinds := map[element.Kind]func() (element.Interactive, error){
		element.KindButton:    func() (element.Interactive, error) { return element.NewButton(ctx, id) },
		element.KindText:      func() (element.Interactive, error) { return element.NewText(ctx, id) },
		element.KindLink:      func() (element.Interactive, error) { return element.NewLink(ctx, id) },
		element.KindImage:     func() (element.Interactive, error) { return element.NewImage(ctx, id) },
		element.KindContainer: func() (element.Interactive, error) { return element.NewContainer(ctx, id) },
		element.KindInput:     func() (element.Interactive, error) { return element.NewInputField(ctx, id) },
		element.KindDropdown:  func() (element.Interactive, error) { return element.NewDropdown(ctx, id) },
		element.KindFileInput: func() (element.Interactive, error) { return element.NewFileInput(ctx, id) },
	}
	for kind, build := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			e, err := build()
			require.NoError(t, err)
			assert.Equal(t, kind, e.Kind())
			assert.Equal(t, "//*[@id='x']", e.Locator())
		})
	}
}

func TestClick(t *testing.T) {
	ctx, d, hook := setup(t)
	d.Add("//*[@id='go']", &drivertest.Element{Tag: "button"})

	btn, err := element.NewButton(ctx, locator.ID("go"))
	require.NoError(t, err)
	require.NoError(t, btn.Click(ctx))

	calls := d.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "ClickElement", calls[0].Method)
	assert.Equal(t, []any{"//*[@id='go']", element.DefaultTimeout}, calls[0].Args)

	entries := hook.AllEntries()
	require.NotEmpty(t, entries)
	assert.Equal(t, logrus.InfoLevel, entries[0].Level)
	assert.Contains(t, entries[0].Message, "Attempting to click")
}

func TestClick_SessionDefaultTimeout(t *testing.T) {
	d := drivertest.New()
	d.Add("//*[@id='go']", &drivertest.Element{Tag: "button"})
	s := session.New(d, drivertest.Logger(), session.WithDefaultTimeout(3*time.Second))
	ctx := session.WithActive(context.Background(), s)

	btn, err := element.NewButton(ctx, locator.ID("go"))
	require.NoError(t, err)
	require.NoError(t, btn.Click(ctx))
	require.NoError(t, btn.Click(ctx, element.WithTimeout(time.Second)))

	calls := d.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, []any{"//*[@id='go']", 3 * time.Second}, calls[0].Args)
	assert.Equal(t, []any{"//*[@id='go']", time.Second}, calls[1].Args)
}

func TestClick_Failure(t *testing.T) {
	ctx, d, hook := setup(t)
	boom := errors.New("element not interactable")
	d.Fail("ClickElement", boom)

	btn, err := element.NewButton(ctx, locator.ID("go"))
	require.NoError(t, err)

	err = btn.Click(ctx, element.WithTimeout(3*time.Second))
	require.Error(t, err)
	assert.ErrorIs(t, err, element.ErrInteractionFailed)
	assert.ErrorIs(t, err, boom)

	var ie *element.InteractionError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, entities.ActionClick, ie.Op)
	assert.Equal(t, "//*[@id='go']", ie.Locator)
	assert.Equal(t, 3*time.Second, ie.Timeout)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.ErrorLevel, last.Level)
}

func TestDoubleClick(t *testing.T) {
	ctx, d, _ := setup(t)
	d.Add("//*[@id='go']", &drivertest.Element{Tag: "button"})

	btn, err := element.NewButton(ctx, locator.ID("go"))
	require.NoError(t, err)
	require.NoError(t, btn.DoubleClick(ctx, element.WithInterClickDelay(time.Millisecond)))

	assert.Equal(t, []string{"ClickElement", "ClickElement"}, d.Methods())
}

func TestDoubleClick_FirstClickFails(t *testing.T) {
	ctx, d, _ := setup(t)

	btn, err := element.NewButton(ctx, locator.ID("missing"))
	require.NoError(t, err)

	err = btn.DoubleClick(ctx, element.WithInterClickDelay(0))
	require.Error(t, err)
	assert.ErrorIs(t, err, drivertest.ErrNoSuchElement)
	assert.Equal(t, []string{"ClickElement"}, d.Methods())
}

func TestPointerActions(t *testing.T) {
	ctx, d, _ := setup(t)
	d.Add("//*[@id='src']", &drivertest.Element{Tag: "div"})
	d.Add("//*[@id='dst']", &drivertest.Element{Tag: "div"})

	src, err := element.NewContainer(ctx, locator.ID("src"))
	require.NoError(t, err)
	dst, err := element.NewContainer(ctx, locator.ID("dst"))
	require.NoError(t, err)

	require.NoError(t, src.Hover(ctx))
	require.NoError(t, src.Unhover(ctx))
	require.NoError(t, src.ScrollTo(ctx))
	require.NoError(t, src.DragTo(ctx, dst))

	assert.Equal(t, []string{"HoverElement", "UnhoverElement", "ScrollToElement", "DragAndDrop"}, d.Methods())
	drag := d.Calls()[3]
	assert.Equal(t, []any{"//*[@id='src']", "//*[@id='dst']", element.DefaultTimeout}, drag.Args)
}

func TestWaitFor_Timeout(t *testing.T) {
	ctx, _, _ := setup(t)

	e, err := element.New(ctx, locator.ID("missing"))
	require.NoError(t, err)

	_, err = e.WaitFor(ctx, element.WithTimeout(2*time.Second))
	require.Error(t, err)
	assert.ErrorIs(t, err, element.ErrNotVisible)
	assert.Contains(t, err.Error(), "//*[@id='missing']")
	assert.Contains(t, err.Error(), "2s")

	var wt *element.WaitTimeoutError
	require.True(t, errors.As(err, &wt))
	assert.Equal(t, 2*time.Second, wt.Timeout)
	assert.ErrorIs(t, err, drivertest.ErrNoSuchElement)
}

func TestWaitFor_SkipsHiddenMatches(t *testing.T) {
	ctx, d, _ := setup(t)
	hidden := &drivertest.Element{Tag: "div", Hidden: true}
	shown := &drivertest.Element{Tag: "div", Content: "visible"}
	d.Add("//*[@class='row']", hidden, shown)

	e, err := element.New(ctx, locator.Attr("class", "row"))
	require.NoError(t, err)

	h, err := e.WaitFor(ctx)
	require.NoError(t, err)
	text, err := h.Text()
	require.NoError(t, err)
	assert.Equal(t, "visible", text)
}

func TestProperties(t *testing.T) {
	ctx, d, _ := setup(t)
	d.Add("//*[@id='logo']", &drivertest.Element{
		Tag:   "img",
		Attrs: map[string]string{"id": "logo", "src": "/logo.png", "alt": "", "data-x": "1"},
		Loc:   entities.Point{X: 4, Y: 8},
		Dim:   entities.Size{Width: 100, Height: 50},
	})

	img, err := element.NewImage(ctx, locator.ID("logo"))
	require.NoError(t, err)

	snap, err := img.Properties(ctx)
	require.NoError(t, err)
	assert.Equal(t, "img", snap.TagName)
	assert.Equal(t, map[string]string{"id": "logo", "src": "/logo.png", "alt": ""}, snap.Attributes)
	_, hasHref := snap.Attribute("href")
	assert.False(t, hasHref)
	assert.Equal(t, entities.Point{X: 4, Y: 8}, snap.Location)
	assert.Equal(t, entities.Size{Width: 100, Height: 50}, snap.Size)
	assert.True(t, snap.Displayed)
	assert.True(t, snap.Enabled)
}

func TestProperties_RequeriesEveryCall(t *testing.T) {
	ctx, d, _ := setup(t)
	msg := &drivertest.Element{Tag: "p", Content: "before"}
	d.Add("//*[@id='msg']", msg)

	txt, err := element.NewText(ctx, locator.ID("msg"))
	require.NoError(t, err)

	first, err := txt.Properties(ctx)
	require.NoError(t, err)
	msg.Content = "after"
	second, err := txt.Properties(ctx)
	require.NoError(t, err)

	assert.Equal(t, "before", first.Text)
	assert.Equal(t, "after", second.Text)
	assert.Equal(t, []string{"WaitForElement", "WaitForElement"}, d.Methods())
}

func TestProperties_DisabledButton(t *testing.T) {
	ctx, d, _ := setup(t)
	d.Add("//*[@id='disabled-btn']", &drivertest.Element{Tag: "button", Disabled: true})

	btn, err := element.NewButton(ctx, locator.ID("disabled-btn"))
	require.NoError(t, err)

	snap, err := btn.Properties(ctx)
	require.NoError(t, err)
	assert.False(t, snap.Enabled)
}

func TestAttribute(t *testing.T) {
	ctx, d, _ := setup(t)
	d.Add("//*[@id='field']", &drivertest.Element{
		Tag:   "input",
		Attrs: map[string]string{"value": "42", "data-state": "ready"},
	})

	f, err := element.NewInputField(ctx, locator.ID("field"))
	require.NoError(t, err)

	v, ok, err := f.Attribute(ctx, "data-state")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ready", v)

	_, ok, err = f.Attribute(ctx, "placeholder")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAllProperties(t *testing.T) {
	ctx, d, _ := setup(t)
	d.Add("//*[@class='item']",
		&drivertest.Element{Tag: "li", Content: "one"},
		&drivertest.Element{Tag: "li", Content: "two", Hidden: true},
		&drivertest.Element{Tag: "li", Content: "three"},
	)

	items, err := element.New(ctx, locator.ClassName("item"))
	require.NoError(t, err)

	snaps, err := items.AllProperties(ctx)
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	assert.Equal(t, "one", snaps[0].Text)
	assert.Equal(t, "two", snaps[1].Text)
	assert.False(t, snaps[1].Displayed)
	assert.Equal(t, "three", snaps[2].Text)
}

func TestAllProperties_NoMatch(t *testing.T) {
	ctx, _, hook := setup(t)

	items, err := element.New(ctx, locator.ClassName("nothing"))
	require.NoError(t, err)

	_, err = items.AllProperties(ctx)
	assert.ErrorIs(t, err, element.ErrNotVisible)
	assert.Contains(t, hook.LastEntry().Message, "Failed to all_properties: ")
}

func TestWaitFor_LogsAction(t *testing.T) {
	ctx, _, hook := setup(t)

	e, err := element.New(ctx, locator.ID("missing"))
	require.NoError(t, err)

	_, err = e.WaitFor(ctx, element.WithTimeout(time.Second))
	require.Error(t, err)
	assert.Equal(t, "Failed to wait_for: //*[@id='missing']", hook.LastEntry().Message)
}
