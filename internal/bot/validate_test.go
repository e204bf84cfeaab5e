package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Latin", "Jane Doe", true},
		{"Cyrillic", "Иван Петров", true},
		{"Hyphenated", "Anne-Marie", true},
		{"Apostrophe", "O'Brien", true},
		{"SingleLetter", "J", false},
		{"Digits", "12", false},
		{"MixedWithDigits", "Jane2", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidName(tt.input))
		})
	}
}

func TestIsValidContact(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Email", "jane@example.com", true},
		{"EmailSubdomain", "jane.doe@mail.example.org", true},
		{"PhonePlain", "79001234567", true},
		{"PhonePlus", "+79001234567", true},
		{"PhoneTooShort", "1234", false},
		{"TwoDigits", "12", false},
		{"FiveDigitsIsAValidHandle", "12345", true},
		{"PhoneTooLong", "+1234567890123456", false},
		{"Username", "@janedoe", true},
		{"UsernameNoAt", "janedoe", true},
		{"UsernameTooShort", "@abc", false},
		{"EmailNoTLD", "jane@example", false},
		{"Garbage", "???", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidContact(tt.input))
		})
	}
}
