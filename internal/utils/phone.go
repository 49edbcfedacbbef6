package utils

import (
	"regexp"
	"strings"
)

var nonDigitRegex = regexp.MustCompile(`\D`)

// NormalizePhone strips everything but digits and prefixes "+". A leading
// domestic 8 on an 11-digit Russian number is rewritten to country code 7.
func NormalizePhone(phone string) string {
	digits := nonDigitRegex.ReplaceAllString(phone, "")
	if digits == "" {
		return ""
	}

	if len(digits) == 11 && strings.HasPrefix(digits, "8") && !strings.HasPrefix(strings.TrimSpace(phone), "+") {
		digits = "7" + digits[1:]
	}

	return "+" + digits
}

func IsValidPhone(phone string) bool {
	normalized := NormalizePhone(phone)
	digits := len(normalized) - 1
	return digits >= MinPhoneDigits && digits <= MaxPhoneDigits
}

func MaskPhone(phone string) string {
	if len(phone) < 4 {
		return phone
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
