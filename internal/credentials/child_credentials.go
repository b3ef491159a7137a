package credentials

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// ChildUsername builds a child's login name from their own name and the
// parent's username: {first}{last}_{parentusername}, lowercased, spaces
// stripped.
func ChildUsername(firstName, lastName, parentUsername string) string {
	first := strings.ReplaceAll(strings.ToLower(firstName), " ", "")
	last := strings.ReplaceAll(strings.ToLower(lastName), " ", "")
	parent := strings.ReplaceAll(strings.ToLower(parentUsername), " ", "")
	return first + last + "_" + parent
}

const passwordChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateChildPassword generates a random 8-character password using
// letters and numbers
func GenerateChildPassword() (string, error) {
	password := make([]byte, 8)
	for i := range password {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordChars))))
		if err != nil {
			return "", err
		}
		password[i] = passwordChars[num.Int64()]
	}
	return string(password), nil
}
