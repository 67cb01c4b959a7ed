package locator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name  string
		attrs []Attribute
		want  string
	}{
		{"no attributes", nil, "//*"},
		{"single id", []Attribute{ID("submit-btn")}, "//*[@id='submit-btn']"},
		{
			"id class text in order",
			[]Attribute{ID("submit-btn"), ClassName("btn-primary"), Text("Submit")},
			"//*[@id='submit-btn' and @class='btn-primary' and contains(text(), 'Submit')]",
		},
		{
			"order preserved",
			[]Attribute{Text("Submit"), ID("submit-btn")},
			"//*[contains(text(), 'Submit') and @id='submit-btn']",
		},
		{"plain class key", []Attribute{Attr("class", "card")}, "//*[@class='card']"},
		{"underscores become hyphens", []Attribute{Data("test_id", "save")}, "//*[@data-test-id='save']"},
		{"aria", []Attribute{Aria("label", "Close")}, "//*[@aria-label='Close']"},
		{
			"type and value",
			[]Attribute{Type("checkbox"), Value("opcao2")},
			"//*[@type='checkbox' and @value='opcao2']",
		},
		{
			"duplicate keys are all kept",
			[]Attribute{Name("a"), Name("b")},
			"//*[@name='a' and @name='b']",
		},
		{"quote is not escaped", []Attribute{Text("it's")}, "//*[contains(text(), 'it's')]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.attrs...))
		})
	}
}

func TestBuild_Idempotent(t *testing.T) {
	attrs := []Attribute{ID("x"), ClassName("y"), Text("z")}
	assert.Equal(t, Build(attrs...), Build(attrs...))
}
