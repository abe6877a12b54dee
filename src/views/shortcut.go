package views

// Shortcut is a dashboard button that jumps to a filtered history view.
type Shortcut struct {
	Filter string
	Label  string
}

var Shortcuts = []Shortcut{
	{Filter: "expenses", Label: "Expenses"},
	{Filter: "income", Label: "Income"},
	{Filter: "transfers", Label: "Transfers"},
}

// ShortcutQuery maps a dashboard filter category to the history query string.
// Unknown categories map to no query at all.
func ShortcutQuery(filter string) string {
	switch filter {
	case "expenses":
		return "?type=debit"
	case "income":
		return "?type=credit"
	case "transfers":
		return "?type=transfer"
	}
	return ""
}

// ShortcutURL is the history location a shortcut navigates to.
func ShortcutURL(filter string) string {
	return "/history" + ShortcutQuery(filter)
}
