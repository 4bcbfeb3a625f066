package repository

import (
	"context"
	"errors"
	"time"

	"cargotracker-service/internal/domain/entity"
	"cargotracker-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormLocationRepository implements the LocationRepository interface
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GORM location repository
func NewGormLocationRepository(db *gorm.DB) repository.LocationRepository {
	return &GormLocationRepository{
		db: db,
	}
}

// Locations GORM model for database mapping
type Locations struct {
	ID        uint   `gorm:"primaryKey"`
	UNLocode  string `gorm:"column:unlocode;unique"`
	Name      string `gorm:"column:name"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Locations) TableName() string {
	return "m_locations"
}

// Find looks a location up by UN locode, returning nil when unknown
func (r *GormLocationRepository) Find(ctx context.Context, locode entity.UNLocode) (*entity.Location, error) {
	var row Locations
	result := r.db.WithContext(ctx).Where("unlocode = ?", string(locode)).First(&row)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}

	return &entity.Location{
		UNLocode: entity.UNLocode(row.UNLocode),
		Name:     row.Name,
	}, nil
}

// Require resolves a location or fails with ErrLocationNotFound
func (r *GormLocationRepository) Require(ctx context.Context, locode entity.UNLocode) (*entity.Location, error) {
	location, err := r.Find(ctx, locode)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, repository.ErrLocationNotFound
	}
	return location, nil
}

// ListAll returns every known location
func (r *GormLocationRepository) ListAll(ctx context.Context) ([]entity.Location, error) {
	var rows []Locations
	result := r.db.WithContext(ctx).Order("unlocode").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	locations := make([]entity.Location, 0, len(rows))
	for _, row := range rows {
		locations = append(locations, entity.Location{
			UNLocode: entity.UNLocode(row.UNLocode),
			Name:     row.Name,
		})
	}
	return locations, nil
}
