package controllers

import (
	"net/http"

	"github.com/swiftcargo/swiftcargo-backend/api/responses"
	"github.com/swiftcargo/swiftcargo-backend/api/validators"
	quotesvc "github.com/swiftcargo/swiftcargo-backend/internal/quotes"
	pkgerrors "github.com/swiftcargo/swiftcargo-backend/pkg/errors"
	"github.com/swiftcargo/swiftcargo-backend/pkg/logger"
)

// QuoteCreate prices a shipment without booking it.
func QuoteCreate(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		var payload quotesvc.QuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.Quote(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, snapshot)
	}
}
