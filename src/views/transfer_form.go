package views

import "bankweb/src/models"

// Option is an entry of a select field.
type Option struct {
	Value string
	Label string
}

// Field is a recipient input on the transfer form.
type Field struct {
	ID          string
	Name        string
	Kind        string // "select" or "text"
	Placeholder string
	Options     []Option
}

// TransferForm tracks which recipient input the transfer page shows.
// The internal dropdown exists from construction; the external input is
// built on the first external selection and reused after that.
type TransferForm struct {
	Kind      models.TransferKind
	Accounts  []Option
	Dropdown  *Field
	External  *Field
	ShowNotes bool

	externalBuilds int
}

func NewTransferForm(accounts []models.Account) *TransferForm {
	opts := make([]Option, 0, len(accounts))
	for _, a := range accounts {
		opts = append(opts, Option{Value: a.ID, Label: a.Name + " (" + FormatAmount(a.Balance) + ")"})
	}
	f := &TransferForm{
		Accounts: opts,
		Dropdown: &Field{
			ID:      "toAccount",
			Name:    "toAccount",
			Kind:    "select",
			Options: opts,
		},
	}
	f.Select(models.TransferInternal)
	return f
}

// Select switches the form to kind. Anything other than external selects
// the internal state. Repeated selections are no-ops.
func (f *TransferForm) Select(kind models.TransferKind) {
	if kind != models.TransferExternal {
		f.Kind = models.TransferInternal
		f.ShowNotes = false
		return
	}
	if f.External == nil {
		f.External = &Field{
			ID:          "toAccount",
			Name:        "toAccount",
			Kind:        "text",
			Placeholder: "Recipient account number",
		}
		f.externalBuilds++
	}
	f.Kind = models.TransferExternal
	f.ShowNotes = true
}

// Recipient returns the input currently shown for the recipient.
func (f *TransferForm) Recipient() *Field {
	if f.Kind == models.TransferExternal {
		return f.External
	}
	return f.Dropdown
}

func (f *TransferForm) IsExternal() bool {
	return f.Kind == models.TransferExternal
}

// ExternalBuilds reports how many times the external input was constructed.
func (f *TransferForm) ExternalBuilds() int {
	return f.externalBuilds
}
