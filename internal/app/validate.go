package app

import (
	"fmt"
	"regexp"

	"github.com/pscheid92/reviewpulse/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,7}$`)

// IsValidEmail reports whether email fully matches the accepted address pattern.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateSubmission checks that every field is present and the email is well
// formed. The returned error names the failing field for logging; clients only
// ever see a generic message.
func ValidateSubmission(s domain.ReviewSubmission) error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidSubmission)
	}
	if s.Email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrInvalidSubmission)
	}
	if !IsValidEmail(s.Email) {
		return fmt.Errorf("%w: email is malformed", domain.ErrInvalidSubmission)
	}
	if s.Review == "" {
		return fmt.Errorf("%w: review is required", domain.ErrInvalidSubmission)
	}
	return nil
}
