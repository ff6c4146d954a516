package tools

import "regexp"

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidateGender aceita os gêneros suportados pelo matching.
func ValidateGender(gender string) bool {
	switch gender {
	case "male", "female", "other":
		return true
	}
	return false
}
