package middlewares

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"freelancehub/utils"
)

type contextKey string

const UserContextKey = contextKey("auth_user")

type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SessionAuth validates the bearer token against the external auth service
// and injects the authenticated user into the request context. The user id
// is the tenant every store operation is scoped by.
func SessionAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			utils.SendResponse(w, http.StatusUnauthorized, nil, "unauthorized", 0)
			return
		}

		authURL := os.Getenv(utils.AUTH_API_URL)
		if authURL == "" {
			authURL = "http://localhost:9999"
		}
		userURL := fmt.Sprintf("%s/auth/v1/user", authURL)

		req, err := http.NewRequest("GET", userURL, nil)
		if err != nil {
			utils.SendResponse(w, http.StatusInternalServerError, nil, "failed to build auth request", 0)
			return
		}
		req.Header.Set("Authorization", token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			utils.SendResponse(w, http.StatusBadGateway, nil, "failed to reach the auth service", 0)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			utils.SendResponse(w, http.StatusUnauthorized, nil, "unauthorized", 0)
			return
		}

		user := AuthUser{}
		err = json.NewDecoder(resp.Body).Decode(&user)
		if err != nil || user.ID == "" {
			utils.SendResponse(w, http.StatusUnauthorized, nil, "unauthorized", 0)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromRequest returns the authenticated user placed by SessionAuth.
func UserFromRequest(r *http.Request) (AuthUser, bool) {
	user, ok := r.Context().Value(UserContextKey).(AuthUser)
	return user, ok
}
