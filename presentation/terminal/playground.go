package terminal

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ui_automation/application/browser"
	"ui_automation/application/element"
	"ui_automation/application/session"
	"ui_automation/domain/locator"
)

// step is one page of the UI playground walkthrough
type step struct {
	name string
	run  func(ctx context.Context) error
}

var playgroundSteps = []step{
	{"start", playStart},
	{"buttons", playButtons},
	{"links", playLinks},
	{"forms", playForms},
	{"hover", playHover},
	{"tabs", playTabs},
	{"modal", playModal},
	{"alerts", playAlerts},
	{"drag_and_drop", playDragAndDrop},
}

// selectSteps - returns the named steps in walkthrough order, or all of them
func selectSteps(names []string) ([]step, error) {
	if len(names) == 0 {
		return playgroundSteps, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	var out []step
	for _, s := range playgroundSteps {
		if wanted[s.name] {
			out = append(out, s)
			delete(wanted, s.name)
		}
	}
	for n := range wanted {
		return nil, fmt.Errorf("unknown playground step %q", n)
	}
	return out, nil
}

// RunPlayground opens url and walks through the selected steps using the session in ctx.
func RunPlayground(ctx context.Context, url string, names []string) error {
	steps, err := selectSteps(names)
	if err != nil {
		return err
	}

	s, err := session.Active(ctx)
	if err != nil {
		return err
	}
	logger := s.Logger()

	if err := browser.OpenURL(ctx, url); err != nil {
		return err
	}

	for _, st := range steps {
		logger.Infof("Running playground step: %s", st.name)
		if err := st.run(ctx); err != nil {
			return fmt.Errorf("step %s: %w", st.name, err)
		}
	}

	logger.Infof("Playground walkthrough finished (%d steps)", len(steps))
	return nil
}

func clickButton(ctx context.Context, attrs ...locator.Attribute) error {
	btn, err := element.NewButton(ctx, attrs...)
	if err != nil {
		return err
	}
	return btn.Click(ctx)
}

func next(ctx context.Context) error {
	return clickButton(ctx, locator.Text("Próximo"))
}

func textOf(ctx context.Context, attrs ...locator.Attribute) (string, error) {
	txt, err := element.NewText(ctx, attrs...)
	if err != nil {
		return "", err
	}
	props, err := txt.Properties(ctx)
	if err != nil {
		return "", err
	}
	return props.Text, nil
}

func expectText(ctx context.Context, want string, attrs ...locator.Attribute) error {
	got, err := textOf(ctx, attrs...)
	if err != nil {
		return err
	}
	if !strings.Contains(got, want) {
		return fmt.Errorf("expected %q in text %q", want, got)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func playStart(ctx context.Context) error {
	return clickButton(ctx, locator.ID("start-btn"), locator.Text("Começar"))
}

func playButtons(ctx context.Context) error {
	for _, b := range []struct{ id, label string }{
		{"primary-btn", "Botão Primário"},
		{"secondary-btn", "Botão Secundário"},
		{"danger-btn", "Botão Perigo"},
	} {
		if err := clickButton(ctx, locator.ID(b.id), locator.Text(b.label)); err != nil {
			return err
		}
		if err := expectText(ctx, b.label, locator.ID("button-click-message")); err != nil {
			return err
		}
	}

	disabled, err := element.NewButton(ctx, locator.ID("disabled-btn"))
	if err != nil {
		return err
	}
	props, err := disabled.Properties(ctx)
	if err != nil {
		return err
	}
	if props.Enabled {
		return fmt.Errorf("expected %s to be disabled", disabled)
	}

	return next(ctx)
}

func clickLink(ctx context.Context, attrs ...locator.Attribute) error {
	link, err := element.NewLink(ctx, attrs...)
	if err != nil {
		return err
	}
	return link.Click(ctx)
}

func playLinks(ctx context.Context) error {
	if err := clickLink(ctx, locator.ID("simple-link")); err != nil {
		return err
	}
	if err := browser.AcceptAlert(ctx); err != nil {
		return err
	}

	if err := clickLink(ctx, locator.ID("new-tab-link"), locator.Text("Link em Nova Aba")); err != nil {
		return err
	}
	if err := browser.AcceptAlert(ctx); err != nil {
		return err
	}
	if err := browser.SwitchToNewTab(ctx); err != nil {
		return err
	}
	if err := browser.CloseCurrentTab(ctx); err != nil {
		return err
	}

	if err := clickLink(ctx, locator.ID("download-link"), locator.Text("Link de Download")); err != nil {
		return err
	}
	if err := sleep(ctx, 500*time.Millisecond); err != nil {
		return err
	}
	return next(ctx)
}

func enterText(ctx context.Context, text string, attrs ...locator.Attribute) error {
	field, err := element.NewInputField(ctx, attrs...)
	if err != nil {
		return err
	}
	return field.EnterText(ctx, text)
}

func setAndCheck(ctx context.Context, id, value string) error {
	field, err := element.NewInputField(ctx, locator.ID(id))
	if err != nil {
		return err
	}
	if err := field.SetValue(ctx, value); err != nil {
		return err
	}
	got, _, err := field.Attribute(ctx, "value")
	if err != nil {
		return err
	}
	if !strings.EqualFold(got, value) {
		return fmt.Errorf("%s: expected value %q, got %q", id, value, got)
	}
	return nil
}

func expectSelected(ctx context.Context, d *element.Dropdown, want ...string) error {
	got, err := d.SelectedTexts(ctx)
	if err != nil {
		return err
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		return fmt.Errorf("%s: expected selection %v, got %v", d, want, got)
	}
	return nil
}

func playForms(ctx context.Context) error {
	dir, err := os.MkdirTemp("", "ui_automation")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	upload := filepath.Join(dir, "dummy_upload.txt")
	if err := os.WriteFile(upload, []byte("This is a dummy text file to test file upload."), 0644); err != nil {
		return err
	}

	for _, in := range []struct {
		text  string
		attrs []locator.Attribute
	}{
		{"Texto de teste", []locator.Attribute{locator.ID("text-input")}},
		{"teste@exemplo.com", []locator.Attribute{locator.ID("email-input")}},
		{"senha123", []locator.Attribute{locator.ID("password-input")}},
		{strconv.Itoa(rand.Intn(100) + 1), []locator.Attribute{locator.ID("number-input")}},
		{"11121999", []locator.Attribute{locator.ID("date-input"), locator.Name("date-input")}},
	} {
		if err := enterText(ctx, in.text, in.attrs...); err != nil {
			return err
		}
	}

	if err := setAndCheck(ctx, "color-input", "#EEFF00"); err != nil {
		return err
	}

	fileInput, err := element.NewFileInput(ctx, locator.ID("file-input"))
	if err != nil {
		return err
	}
	if err := fileInput.UploadFile(ctx, upload); err != nil {
		return err
	}

	if err := setAndCheck(ctx, "range-input", strconv.Itoa(rand.Intn(100)+1)); err != nil {
		return err
	}

	if err := enterText(ctx,
		"Lorem ipsum dolor sit amet, consectetur adipiscing elit. Vivamus eget nisi quam.",
		locator.ID("textarea-input"), locator.Name("textarea-input"),
	); err != nil {
		return err
	}

	for _, attrs := range [][]locator.Attribute{
		{locator.Type("checkbox"), locator.Value("opcao2")},
		{locator.Type("checkbox"), locator.Value("opcao1")},
		{locator.Type("radio"), locator.Value("opcao2")},
	} {
		box, err := element.NewInputField(ctx, attrs...)
		if err != nil {
			return err
		}
		if err := box.Click(ctx); err != nil {
			return err
		}
	}

	single, err := element.NewDropdown(ctx, locator.ID("dropdown"))
	if err != nil {
		return err
	}
	if err := single.ScrollTo(ctx); err != nil {
		return err
	}
	if err := single.SelectByText(ctx, "Opção 2"); err != nil {
		return err
	}
	if err := expectSelected(ctx, single, "Opção 2"); err != nil {
		return err
	}

	multi, err := element.NewDropdown(ctx, locator.ID("multi-dropdown"))
	if err != nil {
		return err
	}
	if err := multi.SelectByText(ctx, "Opção 1"); err != nil {
		return err
	}
	if err := multi.SelectByIndex(ctx, 2); err != nil {
		return err
	}
	if err := expectSelected(ctx, multi, "Opção 1", "Opção 3"); err != nil {
		return err
	}
	if err := multi.DeselectByText(ctx, "Opção 1"); err != nil {
		return err
	}
	if err := expectSelected(ctx, multi, "Opção 3"); err != nil {
		return err
	}

	if err := clickButton(ctx, locator.Type("submit"), locator.ID("submit-btn")); err != nil {
		return err
	}
	if err := expectText(ctx, "dummy_upload.txt", locator.ID("form-data")); err != nil {
		return err
	}
	return next(ctx)
}

func playHover(ctx context.Context) error {
	target, err := element.New(ctx, locator.ID("hover-div"))
	if err != nil {
		return err
	}
	status := locator.ID("hover-status")

	if err := expectText(ctx, "não está", status); err != nil {
		return err
	}
	for i := 0; i < 3; i++ {
		if err := target.Hover(ctx); err != nil {
			return err
		}
		if err := expectText(ctx, "está sobre", status); err != nil {
			return err
		}
		if err := sleep(ctx, 500*time.Millisecond); err != nil {
			return err
		}
		if err := target.Unhover(ctx); err != nil {
			return err
		}
		if err := expectText(ctx, "não está", status); err != nil {
			return err
		}
	}
	return next(ctx)
}

func playTabs(ctx context.Context) error {
	if err := expectText(ctx, "primeira", locator.ID("tab1")); err != nil {
		return err
	}
	for _, tab := range []struct{ id, want string }{
		{"tab2", "segunda"},
		{"tab3", "terceira"},
	} {
		header, err := element.New(ctx, locator.Data("tab", tab.id))
		if err != nil {
			return err
		}
		if err := header.Click(ctx); err != nil {
			return err
		}
		if err := expectText(ctx, tab.want, locator.ID(tab.id)); err != nil {
			return err
		}
	}
	return next(ctx)
}

func playModal(ctx context.Context) error {
	if err := clickButton(ctx, locator.ID("open-modal-btn"), locator.Text("Abrir Modal")); err != nil {
		return err
	}

	modal, err := element.New(ctx, locator.Attr("class", "modal"), locator.ID("test-modal"))
	if err != nil {
		return err
	}
	props, err := modal.Properties(ctx)
	if err != nil {
		return err
	}
	if !strings.Contains(props.Text, "modal simples que pode ser") || !props.Displayed {
		return fmt.Errorf("modal not shown: %+v", props)
	}

	closeBtn, err := element.NewButton(ctx, locator.Attr("class", "close"))
	if err != nil {
		return err
	}
	props, err = closeBtn.Properties(ctx)
	if err != nil {
		return err
	}
	if !props.Displayed {
		return fmt.Errorf("%s is not displayed", closeBtn)
	}
	if err := closeBtn.Click(ctx); err != nil {
		return err
	}
	return next(ctx)
}

func playAlerts(ctx context.Context) error {
	for _, a := range []struct {
		button string
		want   string
		attrs  []locator.Attribute
	}{
		{"success-alert-btn", "Sucesso!", []locator.Attribute{locator.Attr("class", "alert alert-success")}},
		{"warning-alert-btn", "Aviso!", []locator.Attribute{locator.Attr("class", "alert alert-warning")}},
		{"info-alert-btn", "Informação!", []locator.Attribute{locator.Attr("class", "alert alert-info")}},
		{"error-alert-btn", "Erro!", []locator.Attribute{locator.Attr("class", "alert alert-danger")}},
		{"toast-btn", "toast!", []locator.Attribute{locator.ID("toast"), locator.Attr("class", "toast show-toast")}},
	} {
		if err := clickButton(ctx, locator.ID(a.button)); err != nil {
			return err
		}
		if err := expectText(ctx, a.want, a.attrs...); err != nil {
			return err
		}
	}
	return next(ctx)
}

func playDragAndDrop(ctx context.Context) error {
	source, err := element.New(ctx, locator.ID("drag-source"), locator.Attr("draggable", "true"))
	if err != nil {
		return err
	}
	target, err := element.New(ctx, locator.ID("drop-target"))
	if err != nil {
		return err
	}
	status := locator.ID("dragdrop-status")

	if err := expectText(ctx, "Nenhuma", status); err != nil {
		return err
	}
	if err := source.DragTo(ctx, target); err != nil {
		return err
	}
	if err := sleep(ctx, 5*time.Second); err != nil {
		return err
	}
	return expectText(ctx, "solto", status)
}
