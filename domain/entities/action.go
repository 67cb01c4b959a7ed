package entities

// ActionType names an operation performed against an element or the browser.
// It shows up in log lines and in error messages.
type ActionType string

const (
	ActionClick         ActionType = "click"
	ActionDoubleClick   ActionType = "double_click"
	ActionHover         ActionType = "hover"
	ActionUnhover       ActionType = "unhover"
	ActionScrollTo      ActionType = "scroll_to"
	ActionDragTo        ActionType = "drag_to"
	ActionWaitFor       ActionType = "wait_for"
	ActionProperties    ActionType = "properties"
	ActionGetAttribute  ActionType = "get_attribute"
	ActionAllProperties ActionType = "all_properties"
	ActionEnterText     ActionType = "enter_text"
	ActionSetValue      ActionType = "set_value"
	ActionUploadFile    ActionType = "upload_file"
	ActionSelectText    ActionType = "select_by_text"
	ActionSelectValue   ActionType = "select_by_value"
	ActionSelectIndex   ActionType = "select_by_index"
	ActionDeselectText  ActionType = "deselect_by_text"
	ActionDeselectAll   ActionType = "deselect_all"
	ActionSelectedTexts ActionType = "selected_texts"

	ActionNavigate       ActionType = "navigate"
	ActionCurrentURL     ActionType = "current_url"
	ActionTitle          ActionType = "title"
	ActionAcceptAlert    ActionType = "accept_alert"
	ActionDismissAlert   ActionType = "dismiss_alert"
	ActionSwitchNewTab   ActionType = "switch_to_new_tab"
	ActionSwitchOriginal ActionType = "switch_to_original_tab"
	ActionCloseTab       ActionType = "close_current_tab"
	ActionCloseBrowser   ActionType = "close_browser"
	ActionScreenshot     ActionType = "screenshot"
)
