package browser

// Page-side helpers shared by both drivers. Each is a function taking the
// element first, so playwright can pass it to Locator.Evaluate and selenium
// can apply it to the arguments of ExecuteScript.
const (
	getAttributeJS = `function (el, name) { return el.getAttribute(name); }`

	tagNameJS = `function (el) { return el.tagName.toLowerCase(); }`

	scrollIntoViewJS = `function (el) { el.scrollIntoView({ block: 'center', inline: 'nearest' }); return true; }`

	setValueJS = `function (el, value) {
		const desc = Object.getOwnPropertyDescriptor(Object.getPrototypeOf(el), 'value');
		if (desc && desc.set) {
			desc.set.call(el, value);
		} else {
			el.value = value;
		}
		el.dispatchEvent(new Event('input', { bubbles: true }));
		el.dispatchEvent(new Event('change', { bubbles: true }));
	}`

	// arg: {by: "text"|"value"|"index", key: string, index: number, select: bool}
	selectOptionJS = `function (el, arg) {
		if (el.tagName.toLowerCase() !== 'select') {
			throw new Error('element is not a <select>');
		}
		if (!arg.select && !el.multiple) {
			throw new Error('cannot deselect options of a single select');
		}
		const options = Array.from(el.options);
		let option;
		if (arg.by === 'text') {
			option = options.find(o => o.text.trim() === arg.key);
		} else if (arg.by === 'value') {
			option = options.find(o => o.value === arg.key);
		} else {
			option = options[arg.index];
		}
		if (!option) {
			throw new Error('no matching option: ' + (arg.by === 'index' ? arg.index : arg.key));
		}
		option.selected = arg.select;
		el.dispatchEvent(new Event('input', { bubbles: true }));
		el.dispatchEvent(new Event('change', { bubbles: true }));
	}`

	deselectAllJS = `function (el) {
		if (!el.multiple) {
			throw new Error('cannot deselect options of a single select');
		}
		Array.from(el.options).forEach(o => { o.selected = false; });
		el.dispatchEvent(new Event('input', { bubbles: true }));
		el.dispatchEvent(new Event('change', { bubbles: true }));
	}`

	selectedTextsJS = `function (el) { return Array.from(el.selectedOptions).map(o => o.text.trim()); }`
)

type optionQuery struct {
	By     string `json:"by"`
	Key    string `json:"key"`
	Index  int    `json:"index"`
	Select bool   `json:"select"`
}

func (q optionQuery) arg() map[string]interface{} {
	return map[string]interface{}{
		"by":     q.By,
		"key":    q.Key,
		"index":  q.Index,
		"select": q.Select,
	}
}

// toStrings - converts a script result holding a JS string array
func toStrings(result interface{}) []string {
	items, ok := result.([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
