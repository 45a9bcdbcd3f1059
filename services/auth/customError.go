package auth

import "fmt"

// ValidationError is a field-level signup validation failure. It is shown
// inline and never propagates past the form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ProviderError is a failure reported by the identity provider. Messages
// pass through verbatim except for the duplicate-email case, which is
// remapped to a friendlier string.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}

const providerEmailExists = "EMAIL_EXISTS"

// EmailInUseMessage replaces the provider's duplicate-email phrasing.
const EmailInUseMessage = "User already exists with this email."

// friendlyProviderMessage remaps the special-cased provider errors; all
// others surface verbatim.
func friendlyProviderMessage(err *ProviderError) string {
	if err.Code == providerEmailExists {
		return EmailInUseMessage
	}
	return err.Message
}
