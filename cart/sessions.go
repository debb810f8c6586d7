package cart

import (
	"sync"
	"time"

	"braseiro/utils"
)

const sessionIdleTTL = 2 * time.Hour

type session struct {
	cart    *Cart
	touched time.Time
}

// Sessions holds one cart per browsing session. Carts are deliberately not
// persisted; navigating away loses them, matching the ephemeral contract.
type Sessions struct {
	mu    sync.Mutex
	carts map[string]*session
}

func NewSessions() *Sessions {
	s := &Sessions{carts: make(map[string]*session)}
	go s.janitor()
	return s
}

// New issues a fresh session token with an empty cart.
func (s *Sessions) New() string {
	token := utils.GenerateRandomString(12)
	s.mu.Lock()
	s.carts[token] = &session{cart: &Cart{}, touched: time.Now()}
	s.mu.Unlock()
	return token
}

// Get returns the cart for a session token, refreshing its idle timer.
func (s *Sessions) Get(token string) (*Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.carts[token]
	if !ok {
		return nil, false
	}
	sess.touched = time.Now()
	return sess.cart, true
}

// Drop discards a session entirely.
func (s *Sessions) Drop(token string) {
	s.mu.Lock()
	delete(s.carts, token)
	s.mu.Unlock()
}

func (s *Sessions) janitor() {
	ticker := time.NewTicker(15 * time.Minute)
	for range ticker.C {
		cutoff := time.Now().Add(-sessionIdleTTL)
		s.mu.Lock()
		for token, sess := range s.carts {
			if sess.touched.Before(cutoff) {
				delete(s.carts, token)
			}
		}
		s.mu.Unlock()
	}
}

// Store is the process-wide session registry used by the HTTP handlers.
var Store = NewSessions()
