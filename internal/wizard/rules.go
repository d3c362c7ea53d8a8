package wizard

import "strings"

// OtherChoice is the sentinel a choice step uses for free-text answers.
const OtherChoice = "other"

// RuleError is a user-facing validation failure. Title/Description map
// straight onto the landing page toast.
type RuleError struct {
	Title       string
	Description string
}

func (e *RuleError) Error() string {
	return e.Title + ": " + e.Description
}

// ChoiceMessages carries the per-field copy for a single-choice step.
type ChoiceMessages struct {
	Missing       RuleError
	MissingCustom RuleError
}

// ValidateEmail passes any non-empty string containing '@'. Deliberately
// permissive, the mail provider is the real authority on deliverability.
func ValidateEmail(email string) *RuleError {
	if email == "" || !strings.Contains(email, "@") {
		return &RuleError{
			Title:       "Invalid email",
			Description: "Please enter a valid email address",
		}
	}
	return nil
}

// ValidateSingleChoice requires a selection, and a non-blank custom text
// when the selection is OtherChoice.
func ValidateSingleChoice(selected, customText string, msgs ChoiceMessages) *RuleError {
	if selected == "" {
		e := msgs.Missing
		return &e
	}
	if selected == OtherChoice && strings.TrimSpace(customText) == "" {
		e := msgs.MissingCustom
		return &e
	}
	return nil
}
