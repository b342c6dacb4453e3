package game

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"
)

// GenerateSessionCode creates a random session code
func GenerateSessionCode() string {
	code := make([]byte, SessionCodeLength)
	for i := range code {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(SessionCodeChars))))
		if err != nil {
			// fallback to math/rand if crypto fails
			code[i] = SessionCodeChars[rand.Intn(len(SessionCodeChars))]
			continue
		}
		code[i] = SessionCodeChars[n.Int64()]
	}
	return string(code)
}

// UniqueSessionCode generates a session code that does not collide with an
// existing one, retrying a bounded number of times. After the last attempt
// the code is returned regardless; collision is a rare residual risk the
// caller's uniqueness check surfaces.
func UniqueSessionCode(exists func(string) bool) string {
	var code string
	for i := 0; i < SessionCodeAttempts; i++ {
		code = GenerateSessionCode()
		if !exists(code) {
			return code
		}
	}
	return code
}
