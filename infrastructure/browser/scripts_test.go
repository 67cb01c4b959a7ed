package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"

	"ui_automation/domain/interfaces"
	"ui_automation/infrastructure/config"
)

func TestScriptWrapsHelper(t *testing.T) {
	assert.Equal(t,
		"return ("+getAttributeJS+").apply(null, arguments);",
		script(getAttributeJS))
}

func TestOptionQueryArg(t *testing.T) {
	arg := optionQuery{By: "text", Key: "Opção 1", Select: true}.arg()
	assert.Equal(t, map[string]interface{}{
		"by":     "text",
		"key":    "Opção 1",
		"index":  0,
		"select": true,
	}, arg)
}

func TestToStrings(t *testing.T) {
	assert.Equal(t, []string{"Opção 1", "Opção 3"}, toStrings([]interface{}{"Opção 1", "Opção 3"}))
	assert.Equal(t, []string{}, toStrings(nil))
	assert.Equal(t, []string{"a"}, toStrings([]interface{}{"a", 1}))
}

func TestStaleCheck(t *testing.T) {
	assert.NoError(t, staleCheck(nil))

	err := staleCheck(errors.New("stale element reference: element is not attached to the page document"))
	assert.ErrorIs(t, err, interfaces.ErrStaleElement)

	plain := errors.New("no such element")
	assert.Same(t, plain, staleCheck(plain))
}

func TestChromeArgs(t *testing.T) {
	assert.Contains(t, chromeArgs(true), "--headless=new")
	assert.NotContains(t, chromeArgs(false), "--headless=new")
}

func TestChromeCapabilities_LegacyProtocol(t *testing.T) {
	caps := selenium.Capabilities{}
	caps.AddChrome(chromeCapabilities(true, "/usr/bin/chromium"))

	chromeCaps, ok := caps[chrome.CapabilitiesKey].(chrome.Capabilities)
	require.True(t, ok)
	assert.False(t, chromeCaps.W3C)
	assert.Equal(t, "/usr/bin/chromium", chromeCaps.Path)
	assert.Contains(t, chromeCaps.Args, "--headless=new")
}

func TestXPathSelector(t *testing.T) {
	assert.Equal(t, "xpath=//*[@id='submit']", xpathSelector("//*[@id='submit']"))
}

func TestNewDriver_Unknown(t *testing.T) {
	_, err := NewDriver(&config.Config{Driver: "lynx"}, nil)
	assert.EqualError(t, err, `unknown driver "lynx"`)
}
