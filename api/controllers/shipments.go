package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/swiftcargo/swiftcargo-backend/api/middleware"
	"github.com/swiftcargo/swiftcargo-backend/api/responses"
	"github.com/swiftcargo/swiftcargo-backend/api/validators"
	shipmentsvc "github.com/swiftcargo/swiftcargo-backend/internal/shipments"
	pkgerrors "github.com/swiftcargo/swiftcargo-backend/pkg/errors"
	"github.com/swiftcargo/swiftcargo-backend/pkg/logger"
)

// ShipmentBook prices and books a shipment, freezing the quote at the booked
// price.
func ShipmentBook(svc shipmentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipment service unavailable"))
			return
		}

		var payload shipmentsvc.BookingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		booking, err := svc.Book(r.Context(), payload, middleware.RoleFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, booking)
	}
}

// ShipmentScan appends a checkpoint scan. The actor role comes from the
// authenticated caller, never from the payload.
func ShipmentScan(svc shipmentsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload shipmentsvc.ScanRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tracking, err := svc.SubmitScan(r.Context(), reference, payload, middleware.RoleFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tracking)
	}
}

// ShipmentList returns the admin shipment listing page.
func ShipmentList(svc shipmentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipment service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// ScanEdit applies an operator correction to one historical scan and returns
// the recomputed shipment view.
func ScanEdit(svc shipmentsvc.Service, logg *logger.Logger) http.HandlerFunc {
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
		scanID, err := scanIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload shipmentsvc.ScanEditRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tracking, err := svc.EditScan(r.Context(), reference, scanID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tracking)
	}
}

// ScanDelete removes one scan and returns the recomputed shipment view.
func ScanDelete(svc shipmentsvc.Service, logg *logger.Logger) http.HandlerFunc {
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
		scanID, err := scanIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tracking, err := svc.DeleteScan(r.Context(), reference, scanID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tracking)
	}
}

type paymentRequest struct {
	PaymentRef    string `json:"payment_ref" validate:"required"`
	PaymentStatus string `json:"payment_status" validate:"required,oneof=pending paid refunded failed"`
}

// ShipmentPayment records an external payment reference against a shipment.
func ShipmentPayment(svc shipmentsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload paymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RecordPayment(r.Context(), reference, payload.PaymentRef, payload.PaymentStatus); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "recorded"})
	}
}

func shipmentReference(r *http.Request) (string, error) {
	reference := strings.TrimSpace(chi.URLParam(r, "reference"))
	if reference == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "shipment reference is required")
	}
	return reference, nil
}

func scanIDParam(r *http.Request) (uuid.UUID, error) {
	scanID, err := uuid.Parse(chi.URLParam(r, "scanId"))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid scan id")
	}
	return scanID, nil
}
