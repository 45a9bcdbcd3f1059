package auth

import (
	"regexp"
	"strings"
)

var (
	nameRegex  = regexp.MustCompile(`^[A-Za-z]+$`)
	emailRegex = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	digitRegex = regexp.MustCompile(`[^0-9]`)
)

const passwordSymbols = "@$!%*?&"

// SignupInput carries the signup form fields.
type SignupInput struct {
	FirstName       string `json:"fname"`
	LastName        string `json:"lname"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Terms           bool   `json:"terms"`
	Newsletter      bool   `json:"newsletter"`
}

// ValidateSignup applies the client-side signup rules. The first failing
// field is reported; errors are field-level and do not propagate further.
func ValidateSignup(input SignupInput) *ValidationError {
	if input.FirstName == "" {
		return &ValidationError{Field: "fname", Message: "First name is required"}
	}
	if !nameRegex.MatchString(input.FirstName) {
		return &ValidationError{Field: "fname", Message: "First name should contain only alphabets"}
	}
	if input.LastName == "" {
		return &ValidationError{Field: "lname", Message: "Last name is required"}
	}
	if !nameRegex.MatchString(input.LastName) {
		return &ValidationError{Field: "lname", Message: "Last name should contain only alphabets"}
	}
	if input.Email == "" {
		return &ValidationError{Field: "email", Message: "Email is required"}
	}
	if !emailRegex.MatchString(input.Email) {
		return &ValidationError{Field: "email", Message: "Enter a valid email address"}
	}
	if input.Phone == "" {
		return &ValidationError{Field: "phone", Message: "Phone number is required"}
	}
	if !ValidDanishPhone(input.Phone) {
		return &ValidationError{Field: "phone", Message: "Phone number must be 8 digits (including +45)"}
	}
	if input.Password == "" {
		return &ValidationError{Field: "password", Message: "Password is required"}
	}
	if !StrongPassword(input.Password) {
		return &ValidationError{
			Field:   "password",
			Message: "Password must be at least 8 characters long and include uppercase, lowercase, number, and special character.",
		}
	}
	if input.ConfirmPassword != input.Password {
		return &ValidationError{Field: "confirmPassword", Message: "Passwords do not match"}
	}
	if !input.Terms {
		return &ValidationError{Field: "terms", Message: "You must agree to the terms and privacy policies"}
	}
	return nil
}

// FormatDanishPhone normalizes a phone value to the Denmark format
// "+45 XX XX XX XX". Any existing "+45" prefix is folded in.
func FormatDanishPhone(value string) string {
	digits := digitRegex.ReplaceAllString(value, "")
	digits = strings.TrimPrefix(digits, "45")
	if len(digits) > 8 {
		digits = digits[:8]
	}

	formatted := "+45"
	for i := 0; i < len(digits); i += 2 {
		end := i + 2
		if end > len(digits) {
			end = len(digits)
		}
		formatted += " " + digits[i:end]
	}
	return formatted
}

// ValidDanishPhone reports whether the value holds exactly 10 digits: the
// "45" country code plus an 8-digit subscriber number.
func ValidDanishPhone(value string) bool {
	digits := digitRegex.ReplaceAllString(value, "")
	return len(digits) == 10 && strings.HasPrefix(digits, "45")
}

// StrongPassword enforces the signup password rule: at least 8 characters
// with lowercase, uppercase, a digit, and one of the allowed symbols, drawn
// only from those classes.
func StrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		default:
			return false
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
