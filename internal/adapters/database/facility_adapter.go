package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
	"github.com/lifeline-health/bedfinder/internal/domain/entities"
	"github.com/lifeline-health/bedfinder/internal/domain/repositories"
	"github.com/lifeline-health/bedfinder/internal/infrastructure/clients/postgres"
	"github.com/lifeline-health/bedfinder/internal/infrastructure/observability"
	apperrors "github.com/lifeline-health/bedfinder/pkg/errors"
)

var facilityColumns = []interface{}{
	"id", "name", "address", "latitude", "longitude", "contact",
	"establishment_year", "achievements",
	"general_total", "general_available", "icu_total", "icu_available",
	"last_updated", "created_at",
}

// FacilityAdapter implements the FacilityRepository interface
type FacilityAdapter struct {
	client  *postgres.Client
	db      *goqu.Database
	metrics *observability.Metrics
}

// NewFacilityAdapter creates a new facility adapter. A nil metrics turns
// query timing into a no-op.
func NewFacilityAdapter(client *postgres.Client, metrics *observability.Metrics) repositories.FacilityRepository {
	return &FacilityAdapter{
		client:  client,
		db:      goqu.New("postgres", client.DB()),
		metrics: metrics,
	}
}

// Create creates a new facility
func (a *FacilityAdapter) Create(ctx context.Context, facility *entities.Facility) error {
	record := goqu.Record{
		"id":        facility.ID,
		"name":      facility.Name,
		"address":   facility.Address,
		"latitude":  facility.Location.Latitude,
		"longitude": facility.Location.Longitude,
		"contact":   facility.Contact,
		"establishment_year": sql.NullInt64{
			Int64: func() int64 {
				if facility.EstablishmentYear != nil {
					return int64(*facility.EstablishmentYear)
				}
				return 0
			}(),
			Valid: facility.EstablishmentYear != nil,
		},
		"achievements":      pq.Array(facility.Achievements),
		"general_total":     facility.GeneralBeds.Total,
		"general_available": facility.GeneralBeds.Available,
		"icu_total":         facility.ICUBeds.Total,
		"icu_available":     facility.ICUBeds.Available,
		"last_updated":      facility.LastUpdated,
		"created_at":        facility.CreatedAt,
	}

	query, args, err := a.db.Insert("facilities").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	start := time.Now()
	_, err = a.client.DB().ExecContext(ctx, query, args...)
	observability.RecordDBQuery(ctx, a.metrics, "facilities.insert", time.Since(start))
	if err != nil {
		return apperrors.NewInternalError("failed to create facility", err)
	}

	return nil
}

// GetByID retrieves a facility by ID
func (a *FacilityAdapter) GetByID(ctx context.Context, id string) (*entities.Facility, error) {
	query, args, err := a.db.Select(facilityColumns...).
		From("facilities").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	start := time.Now()
	facility, err := scanFacility(a.client.DB().QueryRowContext(ctx, query, args...))
	observability.RecordDBQuery(ctx, a.metrics, "facilities.get", time.Since(start))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("facility with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get facility", err)
	}

	return facility, nil
}

// List retrieves all facilities in insertion order
func (a *FacilityAdapter) List(ctx context.Context) ([]*entities.Facility, error) {
	query, args, err := a.db.Select(facilityColumns...).
		From("facilities").
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	start := time.Now()
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	observability.RecordDBQuery(ctx, a.metrics, "facilities.list", time.Since(start))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list facilities", err)
	}
	defer rows.Close()

	var facilities []*entities.Facility
	for rows.Next() {
		facility, err := scanFacility(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan facility", err)
		}
		facilities = append(facilities, facility)
	}

	return facilities, nil
}

// AdjustBeds applies a clamped delta to one bed pool. The clamp happens in
// SQL so concurrent adjustments cannot push the count outside [0, total].
// The last-updated timestamp moves on every matched row.
func (a *FacilityAdapter) AdjustBeds(ctx context.Context, facilityID string, bedType entities.BedType, delta int) (*entities.Facility, error) {
	availableCol := "general_available"
	totalCol := "general_total"
	if bedType == entities.BedTypeICU {
		availableCol = "icu_available"
		totalCol = "icu_total"
	}

	query, args, err := a.db.Update("facilities").
		Set(goqu.Record{
			availableCol:   goqu.L(fmt.Sprintf("GREATEST(0, LEAST(%s, %s + ?))", totalCol, availableCol), delta),
			"last_updated": goqu.L("NOW()"),
		}).
		Where(goqu.Ex{"id": facilityID}).
		Returning(facilityColumns...).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build update query", err)
	}

	start := time.Now()
	facility, err := scanFacility(a.client.DB().QueryRowContext(ctx, query, args...))
	observability.RecordDBQuery(ctx, a.metrics, "facilities.adjust_beds", time.Since(start))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("facility with id %s not found", facilityID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to adjust beds", err)
	}

	return facility, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFacility(row rowScanner) (*entities.Facility, error) {
	facility := &entities.Facility{}
	var establishmentYear sql.NullInt64
	var achievements pq.StringArray

	err := row.Scan(
		&facility.ID,
		&facility.Name,
		&facility.Address,
		&facility.Location.Latitude,
		&facility.Location.Longitude,
		&facility.Contact,
		&establishmentYear,
		&achievements,
		&facility.GeneralBeds.Total,
		&facility.GeneralBeds.Available,
		&facility.ICUBeds.Total,
		&facility.ICUBeds.Available,
		&facility.LastUpdated,
		&facility.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if establishmentYear.Valid {
		year := int(establishmentYear.Int64)
		facility.EstablishmentYear = &year
	}
	if len(achievements) > 0 {
		facility.Achievements = []string(achievements)
	}

	return facility, nil
}
