package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/swiftcargo/swiftcargo-backend/api/responses"
	"github.com/swiftcargo/swiftcargo-backend/api/validators"
	ratesvc "github.com/swiftcargo/swiftcargo-backend/internal/rates"
	"github.com/swiftcargo/swiftcargo-backend/pkg/db/models"
	pkgerrors "github.com/swiftcargo/swiftcargo-backend/pkg/errors"
	"github.com/swiftcargo/swiftcargo-backend/pkg/logger"
)

type tariffPayload struct {
	ServiceLevel           string            `json:"service_level" validate:"required,oneof=economy standard express"`
	OriginZone             string            `json:"origin_zone" validate:"required"`
	DestinationZone        string            `json:"destination_zone" validate:"required"`
	Currency               string            `json:"currency" validate:"required,oneof=USD EUR GBP"`
	BaseFee                string            `json:"base_fee" validate:"required"`
	MinCharge              string            `json:"min_charge" validate:"required"`
	Tiers                  []models.RateTier `json:"tiers" validate:"required,min=1"`
	FuelSurchargePct       float64           `json:"fuel_surcharge_pct" validate:"gte=0"`
	RemoteAreaSurchargePct float64           `json:"remote_area_surcharge_pct" validate:"gte=0"`
	TransitDays            int               `json:"transit_days" validate:"gte=0"`
	IsActive               bool              `json:"is_active"`
	EffectiveFrom          time.Time         `json:"effective_from" validate:"required"`
	EffectiveTo            *time.Time        `json:"effective_to,omitempty"`
}

func (p tariffPayload) toInput() ratesvc.TariffInput {
	return ratesvc.TariffInput{
		ServiceLevel:           p.ServiceLevel,
		OriginZone:             p.OriginZone,
		DestinationZone:        p.DestinationZone,
		Currency:               p.Currency,
		BaseFee:                p.BaseFee,
		MinCharge:              p.MinCharge,
		Tiers:                  p.Tiers,
		FuelSurchargePct:       p.FuelSurchargePct,
		RemoteAreaSurchargePct: p.RemoteAreaSurchargePct,
		TransitDays:            p.TransitDays,
		IsActive:               p.IsActive,
		EffectiveFrom:          p.EffectiveFrom,
		EffectiveTo:            p.EffectiveTo,
	}
}

// TariffCreate registers a new rate card.
func TariffCreate(svc ratesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rates service unavailable"))
			return
		}

		var payload tariffPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tariff, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, tariff)
	}
}

// TariffUpdate replaces an existing rate card's fields.
func TariffUpdate(svc ratesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rates service unavailable"))
			return
		}

		id, err := tariffIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload tariffPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tariff, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tariff)
	}
}

// TariffGet fetches one rate card.
func TariffGet(svc ratesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rates service unavailable"))
			return
		}

		id, err := tariffIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tariff, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tariff)
	}
}

// TariffList pages through rate cards.
func TariffList(svc ratesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rates service unavailable"))
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

func tariffIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "tariffId"))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tariff id")
	}
	return id, nil
}
