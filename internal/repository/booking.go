package repository

import (
	"context"
	"fmt"

	"github.com/travelease/travelease/internal/model"
)

const bookingColumns = "id, reference, vehicle_id, buyer_email, start_date, end_date, total_price, status, created_at"

// InsertBooking inserts a new booking record.
func (r *Repository) InsertBooking(ctx context.Context, b *model.Booking) error {
	query := `
		INSERT INTO bookings (id, reference, vehicle_id, buyer_email, start_date, end_date, total_price, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		b.ID,
		b.Reference,
		b.VehicleID,
		b.BuyerEmail,
		b.StartDate,
		b.EndDate,
		b.TotalPrice,
		b.Status,
		b.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return nil
}

// ListBookingsByBuyer retrieves all bookings made by the given email,
// newest first.
func (r *Repository) ListBookingsByBuyer(ctx context.Context, buyerEmail string) ([]*model.Booking, error) {
	query := fmt.Sprintf("SELECT %s FROM bookings WHERE buyer_email = $1 ORDER BY created_at DESC, id DESC", bookingColumns)

	rows, err := r.pool.Query(ctx, query, buyerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

// DeleteOwnedBooking removes the booking matching both the id and the
// buyer email and returns the number of rows deleted. The compound
// filter keeps one buyer from cancelling another's booking without
// revealing whether the id exists.
func (r *Repository) DeleteOwnedBooking(ctx context.Context, id, buyerEmail string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM bookings WHERE id = $1 AND buyer_email = $2", id, buyerEmail)
	if err != nil {
		return 0, fmt.Errorf("failed to delete booking: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanBooking(row rowScanner) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.VehicleID,
		&b.BuyerEmail,
		&b.StartDate,
		&b.EndDate,
		&b.TotalPrice,
		&b.Status,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
