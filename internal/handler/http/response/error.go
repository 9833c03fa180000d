package response

import (
	"errors"
	"net/http"

	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/auth"
	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/legalparams"
	"github.com/nexo-seguridad/nexo-backend-go/internal/domain/payroll"
	"github.com/nexo-seguridad/nexo-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")

	// Legal-parameter store errors: fatal configuration problems, never
	// converted into zero-valued results.
	case errors.Is(err, legalparams.ErrNoActiveVersion):
		NotFound(w, "No active legal parameter version configured")
	case errors.Is(err, legalparams.ErrVersionNotFound):
		NotFound(w, "Legal parameter version not found")
	case errors.Is(err, legalparams.ErrNoVersionForDate):
		NotFound(w, "No legal parameter version covers the requested date")
	case errors.Is(err, legalparams.ErrNoIndexAvailable):
		NotFound(w, "No UF/UTM value available at or before the requested date")

	// Payroll engine errors
	case errors.Is(err, payroll.ErrSimulationNotFound):
		NotFound(w, "Simulation not found")
	case errors.Is(err, payroll.ErrUnknownAFPFund):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, payroll.ErrInvalidContractType),
		errors.Is(err, payroll.ErrInvalidHealthSystem),
		errors.Is(err, payroll.ErrInvalidRiskTier):
		UnprocessableEntity(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
