// Defines a standard way to define routers
package api

import (
	"github.com/go-chi/chi/v5"
)

// A API Router, not to be confused with Router which routes the actual routes
type APIRouter interface {
	Routes(r *chi.Mux)
	Tag() (string, string)
}
