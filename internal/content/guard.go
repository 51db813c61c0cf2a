package content

import (
	"errors"
	"sync/atomic"
)

var ErrInvalidToken = errors.New("content pipeline started without a guard token")

// Guard admits one pipeline run per page context. Create one per page and
// hand it to every injection of the script.
type Guard struct {
	ran atomic.Bool
}

func NewGuard() *Guard {
	return &Guard{}
}

// Token proves that its holder won the guard. The zero Token is invalid.
type Token struct {
	guard *Guard
}

func (t Token) valid() bool { return t.guard != nil }

// Acquire returns a token on the first call and false on every later one.
func (g *Guard) Acquire() (Token, bool) {
	if !g.ran.CompareAndSwap(false, true) {
		return Token{}, false
	}
	return Token{guard: g}, true
}
