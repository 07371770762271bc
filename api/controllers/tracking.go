package controllers

import (
	"net/http"

	"github.com/swiftcargo/swiftcargo-backend/api/responses"
	shipmentsvc "github.com/swiftcargo/swiftcargo-backend/internal/shipments"
	pkgerrors "github.com/swiftcargo/swiftcargo-backend/pkg/errors"
	"github.com/swiftcargo/swiftcargo-backend/pkg/logger"
)

// Track is the public tracking lookup. No authentication; the reference is
// the capability.
func Track(svc shipmentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipment service unavailable"))
			return
		}

		reference, err := shipmentReference(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tracking, err := svc.Track(r.Context(), reference)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tracking)
	}
}
