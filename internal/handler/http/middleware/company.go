package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/nexo-seguridad/nexo-backend-go/internal/handler/http/response"
)

// RequireCompany rejects tokens without a tenant claim. Simulation reads
// and writes are always scoped to a company.
func RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		companyID, ok := claims["company_id"].(string)
		if !ok || companyID == "" {
			response.Unauthorized(w, "Company membership required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
