package middlewares

import (
	"crypto/subtle"
	"net/http"
	"os"

	"freelancehub/utils"
)

// AutomationKey authenticates webhook requests with the static shared secret
// in the x-api-key header. Any mismatch fails the whole request before any
// event work happens, with no detail beyond unauthorized.
func AutomationKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secret := os.Getenv(utils.AUTOMATION_API_KEY)
		provided := r.Header.Get("x-api-key")

		if secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			utils.SendResponse(w, http.StatusUnauthorized, nil, "unauthorized", 0)
			return
		}

		next.ServeHTTP(w, r)
	})
}
