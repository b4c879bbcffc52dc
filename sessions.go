// sessions.go - one contact form controller per visitor
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/metrics"
)

const (
	sessionCookie = "contact_session"
	sessionKey    = "contact_session"
)

// ControllerFactory builds the controller for a newly mounted form.
type ControllerFactory func(sessionID string) *contact.Controller

type session struct {
	id       string
	ctrl     *contact.Controller
	lastSeen time.Time
}

// Sessions tracks mounted contact forms. A session is created when a visitor
// loads the form and closed when they leave it or it sits idle past the TTL.
type Sessions struct {
	mu      sync.Mutex
	entries map[string]*session

	factory ControllerFactory
	ttl     time.Duration
	salt    string
	log     *slog.Logger
	now     func() time.Time
}

func NewSessions(log *slog.Logger, ttl time.Duration, factory ControllerFactory) *Sessions {
	return &Sessions{
		entries: make(map[string]*session),
		factory: factory,
		ttl:     ttl,
		salt:    generateSalt(),
		log:     log,
		now:     time.Now,
	}
}

func generateSalt() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		panic("failed to generate salt: " + err.Error())
	}
	return hex.EncodeToString(bytes)
}

// clientTag hashes an IP so logs can correlate requests without storing it.
func (s *Sessions) clientTag(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + s.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

// Mount creates a session with a fresh controller.
func (s *Sessions) Mount() *session {
	id := uuid.NewString()
	sess := &session{id: id, ctrl: s.factory(id), lastSeen: s.now()}

	s.mu.Lock()
	s.entries[id] = sess
	s.mu.Unlock()

	metrics.ActiveSessions.Inc()
	s.log.Debug("Contact form mounted", "session", id)
	return sess
}

// Lookup returns the live session for id and marks it as used.
func (s *Sessions) Lookup(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.entries[id]
	if ok {
		sess.lastSeen = s.now()
	}
	return sess, ok
}

// Unmount closes and forgets the session. It reports whether it existed.
func (s *Sessions) Unmount(id string) bool {
	s.mu.Lock()
	sess, ok := s.entries[id]
	delete(s.entries, id)
	s.mu.Unlock()
	if !ok {
		return false
	}
	sess.ctrl.Close()
	metrics.ActiveSessions.Dec()
	s.log.Debug("Contact form unmounted", "session", id)
	return true
}

// Sweep closes sessions idle for longer than the TTL and returns how many
// were removed.
func (s *Sessions) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var expired []*session
	for id, sess := range s.entries {
		if sess.lastSeen.Before(cutoff) {
			expired = append(expired, sess)
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.ctrl.Close()
		metrics.ActiveSessions.Dec()
	}
	if len(expired) > 0 {
		s.log.Info("Expired idle contact sessions", "count", len(expired))
	}
	return len(expired)
}

// Len returns the number of mounted sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Run sweeps on every tick until ctx is cancelled, then closes every
// remaining session.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.CloseAll()
			return ctx.Err()
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// CloseAll unmounts every session.
func (s *Sessions) CloseAll() {
	s.mu.Lock()
	all := s.entries
	s.entries = make(map[string]*session)
	s.mu.Unlock()

	for _, sess := range all {
		sess.ctrl.Close()
		metrics.ActiveSessions.Dec()
	}
}

// sessionMiddleware attaches the visitor's session to the request, mounting a
// new one when the cookie is missing or stale.
func (s *Sessions) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := c.Cookie(sessionCookie); err == nil {
			if sess, ok := s.Lookup(id); ok {
				c.Set(sessionKey, sess)
				c.Next()
				return
			}
		}
		sess := s.Mount()
		s.setCookie(c, sess.id)
		s.log.Info("Contact session started", "client", s.clientTag(c.ClientIP()))
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func (s *Sessions) setCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, int(s.ttl.Seconds()), "/", "", false, true)
}

func (s *Sessions) clearCookie(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}

func sessionFrom(c *gin.Context) *session {
	return c.MustGet(sessionKey).(*session)
}
