package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	wrap "github.com/Temutjin2k/geo-attendance/pkg/logger/wrapper"
)

const basicRealm = `Basic realm="Login Required"`

var ErrEmptyPassword = errors.New("admin password is empty")

// Credentials holds the lecturer login. The password is kept only as a bcrypt hash.
type Credentials struct {
	Username     string
	PasswordHash []byte
}

// NewCredentials prefers hash and falls back to hashing password.
func NewCredentials(username, password, hash string) (Credentials, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return Credentials{}, err
		}
		return Credentials{Username: username, PasswordHash: []byte(hash)}, nil
	}
	if password == "" {
		return Credentials{}, ErrEmptyPassword
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{Username: username, PasswordHash: h}, nil
}

func (c Credentials) match(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	passOK := bcrypt.CompareHashAndPassword(c.PasswordHash, []byte(password)) == nil
	return userOK && passOK
}

// BasicAuth guards lecturer pages with HTTP Basic credentials.
func (m *Middleware) BasicAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok || !m.admin.match(username, password) {
			if ok {
				m.log.Warn(wrap.WithAction(r.Context(), "admin_auth"), "invalid admin credentials", "username", username)
			}
			w.Header().Set("WWW-Authenticate", basicRealm)
			http.Error(w,
				"Could not verify your access level for that URL.\nYou have to login with proper credentials",
				http.StatusUnauthorized,
			)
			return
		}

		next.ServeHTTP(w, r)
	})
}
