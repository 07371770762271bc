package rates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swiftcargo/swiftcargo-backend/pkg/db/models"
	pkgerrors "github.com/swiftcargo/swiftcargo-backend/pkg/errors"
	"github.com/swiftcargo/swiftcargo-backend/pkg/pagination"
)

// Service exposes tariff administration. Tariff rows written here are
// immutable inputs to the pricing engine.
type Service interface {
	Create(ctx context.Context, input TariffInput) (*models.Tariff, error)
	Update(ctx context.Context, id uuid.UUID, input TariffInput) (*models.Tariff, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Tariff, error)
	List(ctx context.Context, params pagination.Params) (*TariffList, error)
}

type service struct {
	repo Repository
}

// NewService builds the tariff admin service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rates repository required")
	}
	return &service{repo: repo}, nil
}

// TariffInput carries the fields accepted on tariff create/update.
type TariffInput struct {
	ServiceLevel           string
	OriginZone             string
	DestinationZone        string
	Currency               string
	BaseFee                string
	MinCharge              string
	Tiers                  []models.RateTier
	FuelSurchargePct       float64
	RemoteAreaSurchargePct float64
	TransitDays            int
	IsActive               bool
	EffectiveFrom          time.Time
	EffectiveTo            *time.Time
}

func (s *service) Create(ctx context.Context, input TariffInput) (*models.Tariff, error) {
	tariff, err := buildTariff(input)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, tariff)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create tariff")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input TariffInput) (*models.Tariff, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tariff not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tariff")
	}

	replacement, err := buildTariff(input)
	if err != nil {
		return nil, err
	}
	replacement.ID = existing.ID
	replacement.CreatedAt = existing.CreatedAt

	updated, err := s.repo.Update(ctx, replacement)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update tariff")
	}
	return updated, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Tariff, error) {
	tariff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tariff not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tariff")
	}
	return tariff, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*TariffList, error) {
	list, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tariffs")
	}
	return list, nil
}
