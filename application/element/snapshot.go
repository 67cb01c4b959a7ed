package element

import (
	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
)

// ExtractProperties reads a PropertySnapshot from h. Only attributes in
// entities.SnapshotAttributes that the element actually carries are recorded.
// Driver errors, stale references included, are returned as is.
func ExtractProperties(h interfaces.ElementHandle) (entities.PropertySnapshot, error) {
	attrs := make(map[string]string, len(entities.SnapshotAttributes))
	for _, name := range entities.SnapshotAttributes {
		v, ok, err := h.Attribute(name)
		if err != nil {
			return entities.PropertySnapshot{}, err
		}
		if ok {
			attrs[name] = v
		}
	}

	text, err := h.Text()
	if err != nil {
		return entities.PropertySnapshot{}, err
	}
	tag, err := h.TagName()
	if err != nil {
		return entities.PropertySnapshot{}, err
	}
	loc, err := h.Location()
	if err != nil {
		return entities.PropertySnapshot{}, err
	}
	size, err := h.Size()
	if err != nil {
		return entities.PropertySnapshot{}, err
	}
	displayed, err := h.IsDisplayed()
	if err != nil {
		return entities.PropertySnapshot{}, err
	}
	enabled, err := h.IsEnabled()
	if err != nil {
		return entities.PropertySnapshot{}, err
	}

	return entities.PropertySnapshot{
		Text:       text,
		TagName:    tag,
		Attributes: attrs,
		Location:   loc,
		Size:       size,
		Displayed:  displayed,
		Enabled:    enabled,
	}, nil
}
