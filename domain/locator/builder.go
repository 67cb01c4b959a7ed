// Package locator turns semantic element attributes into XPath queries.
package locator

import (
	"fmt"
	"strings"
)

// AnyElement matches every element in the document.
const AnyElement = "//*"

// Attribute is one named condition on an element. Names use underscores
// where the DOM uses hyphens, so aria_label targets aria-label.
type Attribute struct {
	Name  string
	Value string
}

// Attr builds an arbitrary attribute condition
func Attr(name, value string) Attribute { return Attribute{Name: name, Value: value} }

// ID matches on the id attribute
func ID(value string) Attribute { return Attr("id", value) }

// Text matches elements whose own text contains value
func Text(value string) Attribute { return Attr("text", value) }

// ClassName matches the class attribute exactly
func ClassName(value string) Attribute { return Attr("class_name", value) }

// Name matches on the name attribute
func Name(value string) Attribute { return Attr("name", value) }

// Type matches on the type attribute
func Type(value string) Attribute { return Attr("type", value) }

// Value matches on the value attribute
func Value(value string) Attribute { return Attr("value", value) }

// Data matches a custom data-* attribute, e.g. Data("testid", "save").
func Data(name, value string) Attribute { return Attr("data_"+name, value) }

// Aria matches an aria-* attribute, e.g. Aria("label", "Close").
func Aria(name, value string) Attribute { return Attr("aria_"+name, value) }

// Build returns the XPath for the conjunction of attrs, in the given order.
// With no attributes it returns AnyElement.
//
// Values are inserted verbatim; a value containing a single quote produces
// a malformed query.
func Build(attrs ...Attribute) string {
	if len(attrs) == 0 {
		return AnyElement
	}

	conditions := make([]string, 0, len(attrs))
	for _, a := range attrs {
		conditions = append(conditions, condition(a))
	}

	return AnyElement + "[" + strings.Join(conditions, " and ") + "]"
}

func condition(a Attribute) string {
	key := normalize(a.Name)
	switch {
	case key == "text":
		return fmt.Sprintf("contains(text(), '%s')", a.Value)
	case isClassKey(key):
		return fmt.Sprintf("@class='%s'", a.Value)
	default:
		return fmt.Sprintf("@%s='%s'", key, a.Value)
	}
}

// normalize - converts keyword style names to XPath attribute names
func normalize(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

// isClassKey covers class itself and keyword spellings such as class_name
func isClassKey(key string) bool {
	return key == "class" || strings.Contains(key, "class-")
}
