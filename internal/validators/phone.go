package validators

import "regexp"

var phonePattern = regexp.MustCompile(`^\d{9,15}$`)

// IsPhoneValid accepts 9 to 15 digits and nothing else.
func IsPhoneValid(phone string) bool {
	return phonePattern.MatchString(phone)
}
