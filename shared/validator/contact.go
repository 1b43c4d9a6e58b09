package validator

import "regexp"

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s+()-]{8,}$`)
)

// IsValidEmail checks the local@domain.tld shape only. Deliverability is not checked.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPhone accepts digits, spaces and "+()-", at least eight characters long.
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
