package validators

import (
	"net"
	"regexp"
	"strings"
)

func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

// Rwandan mobile numbers: 07XXXXXXXX locally or +2507XXXXXXXX.
var rwandaPhonePattern = regexp.MustCompile(`^(\+?250)?0?7[2389]\d{7}$`)

func IsRwandanPhone(phone string) bool {
	phone = strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	return rwandaPhonePattern.MatchString(phone)
}
