package util

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"bankweb/src/models"

	"github.com/shopspring/decimal"
)

// User-facing messages. The page scripts alert the same strings.
const (
	MsgLoginFields        = "Please fill in all fields."
	MsgRegisterFields     = "Please fill out all fields."
	MsgPasswordMismatch   = "Passwords do not match. Please try again."
	MsgInvalidEmail       = "invalid email format"
	MsgInvalidUsername    = "username must be between 3 and 30 characters"
	MsgFromAccount        = "Please select the account to transfer from."
	MsgRecipient          = "Please enter the recipient account number."
	MsgAmount             = "Please enter a valid amount greater than 0."
	MsgTransferKind       = "Please choose an internal or external transfer."
	MsgFrequency          = "Please choose how often to repeat the transfer."
	MsgRecipientAccount   = "Please select a recipient account."
	MsgSameAccount        = "Please choose a different recipient account."
	MsgPasswordWeak       = "Password too weak"
	MsgPasswordStrong     = "Password is strong"
	MinStrongPasswordSize = 6
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError carries the message shown to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func ValidateUsername(username string) bool {
	n := utf8.RuneCountInString(username)
	return n >= 3 && n <= 30
}

// ValidateLogin expects the username already trimmed. The password is
// trimmed only for the blank check.
func ValidateLogin(username, password string) error {
	if username == "" {
		return invalid("username", MsgLoginFields)
	}
	if strings.TrimSpace(password) == "" {
		return invalid("password", MsgLoginFields)
	}
	return nil
}

// ValidateRegistration checks presence and confirmation. A password is
// stored untrimmed but must not be blank once trimmed, matching the login
// check. An empty ConfirmPassword skips the match check.
func ValidateRegistration(req models.RegisterRequest) error {
	switch {
	case req.Username == "":
		return invalid("username", MsgRegisterFields)
	case req.Email == "":
		return invalid("email", MsgRegisterFields)
	case strings.TrimSpace(req.Password) == "":
		return invalid("password", MsgRegisterFields)
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		return invalid("confirmPassword", MsgPasswordMismatch)
	}
	if !ValidateEmail(req.Email) {
		return invalid("email", MsgInvalidEmail)
	}
	if !ValidateUsername(req.Username) {
		return invalid("username", MsgInvalidUsername)
	}
	return nil
}

// ParseAmount accepts a finite decimal strictly greater than zero.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, invalid("amount", MsgAmount)
	}
	return amount, nil
}

// TransferInput holds the raw form values of a transfer submission.
type TransferInput struct {
	Kind        string
	FromAccount string
	ToAccount   string
	Amount      string
	Notes       string
	Frequency   string
}

// ValidateTransfer checks the fields in the order the transfer page does and
// returns the normalized request. Ownership of the accounts is checked by
// the caller.
func ValidateTransfer(in TransferInput) (*models.TransferRequest, error) {
	kind := models.TransferKind(strings.TrimSpace(in.Kind))
	switch kind {
	case "":
		kind = models.TransferInternal
	case models.TransferInternal, models.TransferExternal:
	default:
		return nil, invalid("transferType", MsgTransferKind)
	}

	from := strings.TrimSpace(in.FromAccount)
	if from == "" {
		return nil, invalid("fromAccount", MsgFromAccount)
	}
	to := strings.TrimSpace(in.ToAccount)
	if to == "" {
		return nil, invalid("toAccount", MsgRecipient)
	}
	amount, err := ParseAmount(in.Amount)
	if err != nil {
		return nil, err
	}

	frequency := models.Frequency(strings.TrimSpace(in.Frequency))
	if frequency == "" {
		frequency = models.FrequencyOnce
	}
	known := false
	for _, f := range models.Frequencies {
		if f == frequency {
			known = true
			break
		}
	}
	if !known {
		return nil, invalid("frequency", MsgFrequency)
	}

	req := &models.TransferRequest{
		Kind:        kind,
		FromAccount: from,
		ToAccount:   to,
		Amount:      amount,
		Frequency:   frequency,
	}
	// notes are only shown for external transfers
	if kind == models.TransferExternal {
		req.Notes = strings.TrimSpace(in.Notes)
	}
	return req, nil
}

type Strength struct {
	Strong  bool
	Message string
	Color   string
}

func PasswordStrength(password string) Strength {
	if utf8.RuneCountInString(password) < MinStrongPasswordSize {
		return Strength{Strong: false, Message: MsgPasswordWeak, Color: "red"}
	}
	return Strength{Strong: true, Message: MsgPasswordStrong, Color: "green"}
}
