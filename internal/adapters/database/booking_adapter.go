package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lifeline-health/bedfinder/internal/domain/entities"
	"github.com/lifeline-health/bedfinder/internal/domain/repositories"
	"github.com/lifeline-health/bedfinder/internal/infrastructure/clients/postgres"
	"github.com/lifeline-health/bedfinder/internal/infrastructure/observability"
	apperrors "github.com/lifeline-health/bedfinder/pkg/errors"
)

// BookingAdapter implements the BookingRepository interface
type BookingAdapter struct {
	client  *postgres.Client
	db      *goqu.Database
	metrics *observability.Metrics
}

// NewBookingAdapter creates a new booking adapter. A nil metrics turns
// query timing into a no-op.
func NewBookingAdapter(client *postgres.Client, metrics *observability.Metrics) repositories.BookingRepository {
	return &BookingAdapter{
		client:  client,
		db:      goqu.New("postgres", client.DB()),
		metrics: metrics,
	}
}

// Create appends a new booking to the ledger
func (a *BookingAdapter) Create(ctx context.Context, booking *entities.Booking) error {
	record := goqu.Record{
		"id":             booking.ID,
		"facility_id":    booking.FacilityID,
		"patient_name":   booking.PatientName,
		"contact_number": booking.ContactNumber,
		"emergency_type": booking.EmergencyType,
		"status":         string(booking.Status),
		"created_at":     booking.CreatedAt,
	}

	query, args, err := a.db.Insert("bookings").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	start := time.Now()
	_, err = a.client.DB().ExecContext(ctx, query, args...)
	observability.RecordDBQuery(ctx, a.metrics, "bookings.insert", time.Since(start))
	if err != nil {
		return apperrors.NewInternalError("failed to create booking", err)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (a *BookingAdapter) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	query, args, err := a.db.Select(
		"id", "facility_id", "patient_name", "contact_number",
		"emergency_type", "status", "created_at",
	).From("bookings").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	booking := &entities.Booking{}
	var status string
	start := time.Now()
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.FacilityID,
		&booking.PatientName,
		&booking.ContactNumber,
		&booking.EmergencyType,
		&status,
		&booking.CreatedAt,
	)
	observability.RecordDBQuery(ctx, a.metrics, "bookings.get", time.Since(start))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}
	booking.Status = entities.BookingStatus(status)

	return booking, nil
}

// List retrieves bookings matching the filter, oldest first
func (a *BookingAdapter) List(ctx context.Context, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	ds := a.db.Select(
		"id", "facility_id", "patient_name", "contact_number",
		"emergency_type", "status", "created_at",
	).From("bookings").
		Order(goqu.I("created_at").Asc())

	if filter.FacilityID != "" {
		ds = ds.Where(goqu.Ex{"facility_id": filter.FacilityID})
	}
	if filter.Status != nil {
		ds = ds.Where(goqu.Ex{"status": string(*filter.Status)})
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	start := time.Now()
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	observability.RecordDBQuery(ctx, a.metrics, "bookings.list", time.Since(start))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	defer rows.Close()

	var bookings []*entities.Booking
	for rows.Next() {
		booking := &entities.Booking{}
		var status string
		err := rows.Scan(
			&booking.ID,
			&booking.FacilityID,
			&booking.PatientName,
			&booking.ContactNumber,
			&booking.EmergencyType,
			&status,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan booking", err)
		}
		booking.Status = entities.BookingStatus(status)
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

// UpdateStatus sets the status of a booking
func (a *BookingAdapter) UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) error {
	query, args, err := a.db.Update("bookings").
		Set(goqu.Record{"status": string(status)}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	start := time.Now()
	result, err := a.client.DB().ExecContext(ctx, query, args...)
	observability.RecordDBQuery(ctx, a.metrics, "bookings.update_status", time.Since(start))
	if err != nil {
		return apperrors.NewInternalError("failed to update booking status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}

	return nil
}
