package model

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Standard error codes
const (
	ErrCodeInvalidJSON           = "INVALID_JSON"
	ErrCodeMissingName           = "MISSING_NAME"
	ErrCodeMissingDescription    = "MISSING_DESCRIPTION"
	ErrCodeMissingShortDesc      = "MISSING_SHORT_DESCRIPTION"
	ErrCodeInvalidPrice          = "INVALID_PRICE"
	ErrCodeMissingImage          = "MISSING_IMAGE"
	ErrCodeMissingCustomCategory = "MISSING_CUSTOM_CATEGORY"
	ErrCodeProductNotFound       = "PRODUCT_NOT_FOUND"
	ErrCodeSessionNotFound       = "SESSION_NOT_FOUND"
	ErrCodeSessionExpired        = "SESSION_EXPIRED"
	ErrCodeInvalidPassword       = "INVALID_PASSWORD"
	ErrCodeUnauthorised          = "UNAUTHORIZED"
	ErrCodePermissionDenied      = "PERMISSION_DENIED"
	ErrCodeAlreadyExists         = "ALREADY_EXISTS"
	ErrCodeUnavailable           = "UNAVAILABLE"
	ErrCodeInternalError         = "INTERNAL_ERROR"
)

// DomainError carries a stable code alongside a developer-facing message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Validation errors: raised before any gateway call is made.
var (
	ErrMissingName             = NewDomainError(ErrCodeMissingName, "Product name is required")
	ErrMissingDescription      = NewDomainError(ErrCodeMissingDescription, "Product description is required")
	ErrMissingShortDescription = NewDomainError(ErrCodeMissingShortDesc, "Product short description is required")
	ErrInvalidPrice            = NewDomainError(ErrCodeInvalidPrice, "Product price must be greater than zero")
	ErrMissingImage            = NewDomainError(ErrCodeMissingImage, "Product needs at least one image")
	ErrMissingCustomCategory   = NewDomainError(ErrCodeMissingCustomCategory, "Custom category label is required for category 'otro'")
)

// Lookup and session errors.
var (
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrSessionNotFound = NewDomainError(ErrCodeSessionNotFound, "Session not found")
	ErrSessionExpired  = NewDomainError(ErrCodeSessionExpired, "Session has expired")
	ErrInvalidPassword = NewDomainError(ErrCodeInvalidPassword, "Invalid password")
	ErrUnauthorised    = NewDomainError(ErrCodeUnauthorised, "Authentication required")
)

// UserMessage translates any error into the short Spanish string shown to
// the admin UI. Remote-store failures are classified by SQLSTATE class;
// everything unrecognised falls through to the generic retry message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case ErrCodeProductNotFound, ErrCodeSessionNotFound:
			return "El elemento solicitado no fue encontrado"
		case ErrCodePermissionDenied, ErrCodeUnauthorised:
			return "No tienes permisos para realizar esta acción"
		case ErrCodeAlreadyExists:
			return "El elemento ya existe"
		case ErrCodeUnavailable:
			return "Servicio temporalmente no disponible. Intenta de nuevo."
		default:
			return "Error inesperado. Por favor intenta de nuevo."
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42501": // insufficient_privilege
			return "No tienes permisos para realizar esta acción"
		case "23505": // unique_violation
			return "El elemento ya existe"
		case "57P03", "53300", "08006", "08001": // cannot_connect_now, too_many_connections, connection failures
			return "Servicio temporalmente no disponible. Intenta de nuevo."
		default:
			return "Error inesperado. Por favor intenta de nuevo."
		}
	}

	return "Error de conexión. Verifica tu conexión a internet."
}
