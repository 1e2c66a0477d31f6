package domain

import "regexp"

// Profile is the authenticated courier's own user record.
type Profile struct {
	ID        string
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Zone      string
	Vehicle   string
}

// PartialProfileUpdate carries optional fields to update a profile.
// A nil field means “do not change” that attribute.
type PartialProfileUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Zone      *string
	Vehicle   *string
}

// rePhone is a regex to validate phone numbers
var rePhone = regexp.MustCompile(`^\+[0-9]{9,14}$`)

// ValidatePhone validates the phone number format
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}
