// Package middleware provides HTTP middleware for the AURA API.
package middleware

import "net/http"

// CORS returns middleware that handles CORS headers for the given origins.
// "*" allows any origin. Credentials are never allowed; the API carries no
// cookies or auth.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Same-origin requests carry no Origin header; write nothing for
			// them rather than an empty allow value.
			if origin := r.Header.Get("Origin"); origin != "" {
				allowed := ""
				for _, o := range allowedOrigins {
					if o == "*" {
						allowed = "*"
						break
					}
					if o == origin {
						allowed = origin
						break
					}
				}
				if allowed != "" {
					w.Header().Set("Access-Control-Allow-Origin", allowed)
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
