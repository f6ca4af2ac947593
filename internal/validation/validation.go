package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks if a name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	return nil
}

// ValidateHoles checks a round's hole count
func ValidateHoles(holes int) error {
	if holes != 9 && holes != 18 {
		return ValidationError{Field: "holes", Message: "holes must be 9 or 18"}
	}
	return nil
}

// ValidateScore checks a round score is plausible
func ValidateScore(score, holes int) error {
	if score < holes {
		return ValidationError{Field: "score", Message: "score is too low for the hole count"}
	}
	if score > holes*12 {
		return ValidationError{Field: "score", Message: "score is too high for the hole count"}
	}
	return nil
}

// ValidateCounter checks a per-round counter is within 0..holes
func ValidateCounter(field string, value, holes int) error {
	if value < 0 {
		return ValidationError{Field: field, Message: "must not be negative"}
	}
	if value > holes {
		return ValidationError{Field: field, Message: "exceeds the number of holes"}
	}
	return nil
}

// ValidateDayIndex checks a plan day index
func ValidateDayIndex(day int) error {
	if day < 0 || day > 6 {
		return ValidationError{Field: "day", Message: "day must be between 0 and 6"}
	}
	return nil
}

// ValidatePracticeMinutes checks a day's practice budget: 0-480 minutes in
// 15-minute steps
func ValidatePracticeMinutes(minutes int) error {
	if minutes < 0 || minutes > 480 {
		return ValidationError{Field: "minutes", Message: "minutes must be between 0 and 480"}
	}
	if minutes%15 != 0 {
		return ValidationError{Field: "minutes", Message: "minutes must be a multiple of 15"}
	}
	return nil
}
