package userservice

import (
	"regexp"
	"strings"

	"github.com/sushihentaime/newsportal/internal/common"
)

// tokenLength is the base32 length of the 16 random bytes behind every token.
const tokenLength = 26

var (
	emailRX    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRX = regexp.MustCompile(`^[a-zA-Z0-9@.+\-_]+$`)
	upperRX    = regexp.MustCompile("[A-Z]")
	lowerRX    = regexp.MustCompile("[a-z]")
	digitRX    = regexp.MustCompile("[0-9]")
	symbolRX   = regexp.MustCompile(`[#?!@$%^&*_\\-]`)
)

// validateSignup checks the signup form fields; the password may not contain the username.
func validateSignup(v *common.Validator, username, email, password string) {
	validateUsername(v, username)
	validateEmail(v, email)
	validatePassword(v, password)

	if username != "" && password != "" {
		v.Check(!strings.Contains(strings.ToLower(password), strings.ToLower(username)), "password", "must not contain the username")
	}
}

// validateUsername allows letters, digits and @ . + - _ only.
func validateUsername(v *common.Validator, username string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(v.CheckStringLength(username, 3, 150), "username", "must be between 3 and 150 characters long")
	v.Check(usernameRX.MatchString(username), "username", "may only contain letters, digits and @/./+/-/_")
}

func validateEmail(v *common.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(emailRX.MatchString(email), "email", "must be a valid email address")
}

func validatePassword(v *common.Validator, password string) {
	v.Check(password != "", "password", "must be provided")

	strong := v.CheckStringLength(password, 8, 72) &&
		upperRX.MatchString(password) &&
		lowerRX.MatchString(password) &&
		digitRX.MatchString(password) &&
		symbolRX.MatchString(password)
	v.Check(strong, "password", "must be between 8 and 72 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one symbol")
}

func validateToken(v *common.Validator, token string) {
	v.Check(token != "", "token", "must be provided")
	v.Check(len(token) == tokenLength, "token", "invalid token")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
