package usecase

import (
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	nonDigitRegex = regexp.MustCompile(`\D`)
	pincodeRegex  = regexp.MustCompile(`^\d{6}$`)
)

func ValidateContactFormInput(input ContactFormInput) []FieldError {
	var errors []FieldError

	if runeLen(input.Name) < 2 {
		errors = append(errors, FieldError{"name", "must be at least 2 characters"})
	}

	if !isValidPhoneNumber(input.Phone) {
		errors = append(errors, FieldError{"phone", "must be at least 10 digits"})
	}

	if email := strings.TrimSpace(input.Email); email != "" && !isValidEmail(email) {
		errors = append(errors, FieldError{"email", "invalid email address"})
	}

	if strings.TrimSpace(input.Service) == "" {
		errors = append(errors, FieldError{"service", "please select a service"})
	}

	if runeLen(input.Message) < 10 {
		errors = append(errors, FieldError{"message", "must be at least 10 characters"})
	}

	if !pincodeRegex.MatchString(strings.TrimSpace(input.Pincode)) {
		errors = append(errors, FieldError{"pincode", "must be exactly 6 digits"})
	}

	if runeLen(input.Address) < 10 {
		errors = append(errors, FieldError{"address", "must be at least 10 characters"})
	}

	return errors
}

func runeLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

func isValidPhoneNumber(phone string) bool {
	cleaned := nonDigitRegex.ReplaceAllString(phone, "")
	return len(cleaned) >= 10
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// ParseAddress aceita "Nome <a@b>"; o formulário só aceita o endereço puro.
	return addr.Address == email
}

// parsePincode assume entrada já validada.
func parsePincode(raw string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(raw))
	return n
}
