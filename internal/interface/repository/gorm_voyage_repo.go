package repository

import (
	"context"
	"errors"
	"time"

	"cargotracker-service/internal/domain/entity"
	"cargotracker-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormVoyageRepository implements the VoyageRepository interface
type GormVoyageRepository struct {
	db *gorm.DB
}

// NewGormVoyageRepository creates a new GORM voyage repository
func NewGormVoyageRepository(db *gorm.DB) repository.VoyageRepository {
	return &GormVoyageRepository{
		db: db,
	}
}

// Voyages GORM model for database mapping
type Voyages struct {
	ID           uint   `gorm:"primaryKey"`
	VoyageNumber string `gorm:"column:voyage_number;unique"`
	Movements    []CarrierMovements `gorm:"foreignKey:VoyageID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the default table name
func (Voyages) TableName() string {
	return "m_voyages"
}

// CarrierMovements GORM model for database mapping
type CarrierMovements struct {
	ID                uint   `gorm:"primaryKey"`
	VoyageID          uint   `gorm:"column:voyage_id;index"`
	Sequence          int    `gorm:"column:sequence"`
	DepartureLocation string `gorm:"column:departure_location"`
	ArrivalLocation   string `gorm:"column:arrival_location"`
	DepartureTime     time.Time
	ArrivalTime       time.Time
}

// TableName overrides the default table name
func (CarrierMovements) TableName() string {
	return "m_carrier_movements"
}

// Find looks a voyage up by number, returning nil when unknown
func (r *GormVoyageRepository) Find(ctx context.Context, number entity.VoyageNumber) (*entity.Voyage, error) {
	var row Voyages
	result := r.db.WithContext(ctx).
		Preload("Movements", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence")
		}).
		Where("voyage_number = ?", string(number)).
		First(&row)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}

	movements := make([]entity.CarrierMovement, 0, len(row.Movements))
	for _, m := range row.Movements {
		movements = append(movements, entity.CarrierMovement{
			DepartureLocation: entity.UNLocode(m.DepartureLocation),
			ArrivalLocation:   entity.UNLocode(m.ArrivalLocation),
			DepartureTime:     m.DepartureTime,
			ArrivalTime:       m.ArrivalTime,
		})
	}

	return &entity.Voyage{
		Number:    entity.VoyageNumber(row.VoyageNumber),
		Movements: movements,
	}, nil
}

// Require resolves a voyage or fails with ErrVoyageNotFound
func (r *GormVoyageRepository) Require(ctx context.Context, number entity.VoyageNumber) (*entity.Voyage, error) {
	voyage, err := r.Find(ctx, number)
	if err != nil {
		return nil, err
	}
	if voyage == nil {
		return nil, repository.ErrVoyageNotFound
	}
	return voyage, nil
}
