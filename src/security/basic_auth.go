package security

import (
	"crypto/subtle"
	"net/http"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const realm = `Basic realm="faultproducer-ops"`

// HashPassword returns the bcrypt hash to put in OPS_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// OpsAuth guards operational routes with HTTP basic auth. Without configured
// credentials the routes stay open.
func OpsAuth(config Config) func(http.Handler) http.Handler {
	if !config.Enabled() {
		logger.Warn("OPS_USER/OPS_PASSWORD_HASH not set, operational routes are unauthenticated")
		return func(next http.Handler) http.Handler { return next }
	}

	hash := []byte(config.OpsPasswordHash)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, password, ok := r.BasicAuth()
			if !ok ||
				subtle.ConstantTimeCompare([]byte(user), []byte(config.OpsUser)) != 1 ||
				bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
				logger.WithField("path", r.URL.Path).Warn("rejected operational request")
				w.Header().Set("WWW-Authenticate", realm)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
