package userservice

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// passwordCost applies to new hashes only. Stored hashes keep the cost they were made with.
const passwordCost = 12

// unknownUserHash is compared against when a login names no account, so the failure
// takes as long as a wrong password does.
var unknownUserHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("no such user"), passwordCost)
	if err != nil {
		panic(err)
	}
	return hash
})

func (p *Password) set(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), passwordCost)
	if err != nil {
		return err
	}

	p.Plain, p.hash = plain, hash

	return nil
}

// matches reports whether plain hashes to the stored hash. A malformed hash is an error, a mismatch is not.
func (p *Password) matches(plain string) (bool, error) {
	return compareHash(p.hash, plain)
}

// rejectUnknownUser burns one bcrypt comparison and always fails.
func rejectUnknownUser(plain string) error {
	compareHash(unknownUserHash(), plain)
	return ErrAuthenticationFailure
}

func compareHash(hash []byte, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(hash, []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}
