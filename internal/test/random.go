package test

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString returns a pseudo-random alphanumeric string with length
// in [minLen, maxLen].
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}

	rngMu.Lock()
	defer rngMu.Unlock()
	length := minLen + rng.Intn(maxLen-minLen+1)
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = asciiLetters[rng.Intn(len(asciiLetters))]
	}
	return string(buf)
}

// RandomEmail returns a plausible, collision-unlikely address for
// registration tests.
func RandomEmail() string {
	return fmt.Sprintf("%s@%s.test", RandomASCIIString(6, 12), RandomASCIIString(4, 8))
}

// RandomPassword returns a password that satisfies the registration rules.
func RandomPassword() string {
	return RandomASCIIString(10, 24)
}
