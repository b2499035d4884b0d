package domain

import (
	"net/mail"
	"strings"
)

// ContactInfo is the delivery contact snapshotted onto the order. The order
// keeps its own copy so later profile edits don't rewrite history.
type ContactInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (c ContactInfo) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return &InvalidContactError{Field: "first_name", Reason: "first name is required"}
	}
	if strings.TrimSpace(c.LastName) == "" {
		return &InvalidContactError{Field: "last_name", Reason: "last name is required"}
	}
	if strings.TrimSpace(c.Email) == "" {
		return &InvalidContactError{Field: "email", Reason: "email is required"}
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return &InvalidContactError{Field: "email", Reason: "email is not a valid address"}
	}
	if phone := strings.TrimSpace(c.Phone); phone != "" && !validPhone(phone) {
		return &InvalidContactError{Field: "phone", Reason: "phone may contain only digits, spaces, and +-()"}
	}
	return nil
}

func validPhone(phone string) bool {
	digits := 0
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == '-' || r == '(' || r == ')' || r == ' ':
		default:
			return false
		}
	}
	return digits >= 5
}
