// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/construinmuniza/cotizador/internal/catalog"
	"github.com/construinmuniza/cotizador/internal/extract"
	"github.com/construinmuniza/cotizador/internal/quote"
	"github.com/construinmuniza/cotizador/internal/session"
)

// RespondError maps domain errors to HTTP responses using RFC7807.
// Every failure here is local and recoverable; nothing maps to a fatal
// condition for the process.
func RespondError(w http.ResponseWriter, err error) {
	var loadErr *catalog.LoadError
	switch {
	case errors.Is(err, session.ErrNotFound):
		Problem(w, http.StatusNotFound, "Session Not Found", err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, catalog.ErrEmpty):
		Problem(w, http.StatusConflict, "Catalog Not Loaded", err.Error())
	case errors.As(err, &loadErr):
		Problem(w, http.StatusBadRequest, "Catalog Load Failed", err.Error())
	case errors.Is(err, extract.ErrNoPriceFound):
		Problem(w, http.StatusUnprocessableEntity, "No Price Found", err.Error())
	case errors.Is(err, quote.ErrNoItems), errors.Is(err, quote.ErrBadDiscount):
		Problem(w, http.StatusBadRequest, "Invalid Quotation Request", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
