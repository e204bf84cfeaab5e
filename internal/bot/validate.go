package bot

import "regexp"

var (
	nameRegex     = regexp.MustCompile(`^[A-Za-zА-Яа-яЁё\s\-']{2,100}$`)
	emailRegex    = regexp.MustCompile(`^[\w.\-]+@[\w.\-]+\.\w{2,}$`)
	phoneRegex    = regexp.MustCompile(`^\+?\d{7,15}$`)
	usernameRegex = regexp.MustCompile(`^@?[A-Za-z0-9_]{5,32}$`)
)

// IsValidName accepts names in the supported alphabets with spaces, hyphen
// and apostrophe, 2 to 100 characters. Input is expected to be trimmed.
func IsValidName(name string) bool {
	return nameRegex.MatchString(name)
}

// IsValidContact accepts an email address, a phone number or a Telegram
// username. Input is expected to be trimmed.
func IsValidContact(contact string) bool {
	return emailRegex.MatchString(contact) ||
		phoneRegex.MatchString(contact) ||
		usernameRegex.MatchString(contact)
}
