// Package session persists the client-held {token, user} pair in cookies.
package session

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

// Cookie names.
const (
	TokenCookie = "token"
	UserCookie  = "user"
)

// Policy controls cookie lifetime and flags.
type Policy struct {
	TTL         time.Duration // default lifetime (7 days)
	RememberTTL time.Duration // lifetime with "remember me" (30 days)
	Secure      bool          // set in production
	Domain      string
}

// DefaultPolicy returns the 7-day / 30-day policy.
func DefaultPolicy(secure bool) Policy {
	return Policy{TTL: 7 * 24 * time.Hour, RememberTTL: 30 * 24 * time.Hour, Secure: secure}
}

func (p Policy) lifetime(remember bool) time.Duration {
	if remember && p.RememberTTL > 0 {
		return p.RememberTTL
	}
	if p.TTL > 0 {
		return p.TTL
	}
	return 7 * 24 * time.Hour
}

// Write stores s in the token and user cookies.
func (p Policy) Write(w http.ResponseWriter, s model.Session, remember bool, now time.Time) error {
	profile, err := json.Marshal(s.User)
	if err != nil {
		return err
	}
	ttl := p.lifetime(remember)
	expires := now.Add(ttl)
	http.SetCookie(w, p.cookie(TokenCookie, s.Token, true, expires, int(ttl/time.Second)))
	http.SetCookie(w, p.cookie(UserCookie, url.QueryEscape(string(profile)), false, expires, int(ttl/time.Second)))
	return nil
}

// Clear expires both cookies together.
func (p Policy) Clear(w http.ResponseWriter) {
	http.SetCookie(w, p.cookie(TokenCookie, "", true, time.Unix(0, 0), -1))
	http.SetCookie(w, p.cookie(UserCookie, "", false, time.Unix(0, 0), -1))
}

func (p Policy) cookie(name, value string, httpOnly bool, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   p.Domain,
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: httpOnly,
		Secure:   p.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// Token returns the session token from the token cookie.
func Token(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	c, err := r.Cookie(TokenCookie)
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(c.Value)
	return v, v != ""
}

// Read returns the session stored in the cookies.  The user snapshot is
// optional; a token alone is a valid session.
func Read(r *http.Request) (model.Session, bool) {
	tok, ok := Token(r)
	if !ok {
		return model.Session{}, false
	}
	s := model.Session{Token: tok}
	if c, err := r.Cookie(UserCookie); err == nil && c.Value != "" {
		if raw, err := url.QueryUnescape(c.Value); err == nil {
			_ = json.Unmarshal([]byte(raw), &s.User)
		}
	}
	return s, true
}
