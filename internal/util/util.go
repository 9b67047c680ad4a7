package util

import "strings"

// MaskPhoneNumber obscures a phone number for display to other users,
// showing only the first and last few digits.
func MaskPhoneNumber(phone string) string {
	phone = strings.TrimSpace(phone)
	if len(phone) > 6 {
		return phone[:3] + "****" + phone[len(phone)-3:]
	} else if len(phone) > 2 {
		return phone[:1] + "****" + phone[len(phone)-1:]
	}
	return phone
}

// MaskIBAN obscures an IBAN for logging purposes.
func MaskIBAN(iban string) string {
	iban = strings.TrimSpace(iban)
	if len(iban) > 8 {
		return iban[:4] + "..." + iban[len(iban)-4:]
	} else if len(iban) > 4 {
		return iban[:2] + "..." + iban[len(iban)-2:]
	}
	return iban
}
