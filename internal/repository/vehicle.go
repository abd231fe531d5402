package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/travelease/travelease/internal/model"
)

// ErrVehicleNotFound is returned when no vehicle matches a lookup.
var ErrVehicleNotFound = errors.New("vehicle not found")

// VehicleFilter defines filters for the public vehicle listing.
type VehicleFilter struct {
	// Search matches name or location, case-insensitive substring.
	Search   string
	Category string
	// SortColumn must be one of the vehicleSortColumns keys.
	SortColumn string
	Descending bool
	// Limit caps the result set; zero means no cap.
	Limit int
}

// vehicleSortColumns whitelists sortable columns. Query parameters are
// mapped to these keys before a query is built; anything else falls back
// to created_at.
var vehicleSortColumns = map[string]bool{
	"created_at":    true,
	"price_per_day": true,
	"name":          true,
}

// vehiclePatchColumns is the set of columns a vehicle patch may touch.
// Ownership and identity columns are never patchable.
var vehiclePatchColumns = map[string]bool{
	"name":          true,
	"model":         true,
	"category":      true,
	"location":      true,
	"price_per_day": true,
	"seat_count":    true,
	"description":   true,
	"image_url":     true,
	"features":      true,
	"available":     true,
}

const vehicleColumns = "id, owner_email, name, model, category, location, price_per_day, seat_count, description, image_url, features, available, created_at, updated_at"

// InsertVehicle inserts a new vehicle record.
func (r *Repository) InsertVehicle(ctx context.Context, v *model.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, owner_email, name, model, category, location, price_per_day, seat_count, description, image_url, features, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.pool.Exec(ctx, query,
		v.ID,
		v.OwnerEmail,
		v.Name,
		v.Model,
		v.Category,
		v.Location,
		v.PricePerDay,
		v.SeatCount,
		v.Description,
		v.ImageURL,
		pq.Array(v.Features),
		v.Available,
		v.CreatedAt,
		v.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert vehicle: %w", err)
	}

	return nil
}

// GetVehicleByID retrieves a vehicle by its ID.
func (r *Repository) GetVehicleByID(ctx context.Context, id string) (*model.Vehicle, error) {
	query := fmt.Sprintf("SELECT %s FROM vehicles WHERE id = $1", vehicleColumns)

	v, err := scanVehicle(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle by ID: %w", err)
	}

	return v, nil
}

// ListVehicles retrieves vehicles matching the filter, newest first
// unless the filter says otherwise.
func (r *Repository) ListVehicles(ctx context.Context, filter VehicleFilter) ([]*model.Vehicle, error) {
	query := fmt.Sprintf("SELECT %s FROM vehicles WHERE 1=1", vehicleColumns)
	var args []any
	argIndex := 1

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR location ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIndex)
		args = append(args, filter.Category)
		argIndex++
	}

	sortColumn := filter.SortColumn
	if !vehicleSortColumns[sortColumn] {
		sortColumn = "created_at"
	}
	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s, id %s", sortColumn, direction, direction)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
	}

	return r.queryVehicles(ctx, query, args...)
}

// ListVehiclesByOwner retrieves all vehicles owned by the given email,
// newest first.
func (r *Repository) ListVehiclesByOwner(ctx context.Context, ownerEmail string) ([]*model.Vehicle, error) {
	query := fmt.Sprintf("SELECT %s FROM vehicles WHERE owner_email = $1 ORDER BY created_at DESC, id DESC", vehicleColumns)
	return r.queryVehicles(ctx, query, ownerEmail)
}

// UpdateOwnedVehicle applies a field-level patch to the vehicle matching
// both the id and the owner email, and returns the number of rows
// matched. A zero return means no such vehicle exists for that owner;
// the two causes are deliberately not distinguished.
func (r *Repository) UpdateOwnedVehicle(ctx context.Context, id, ownerEmail string, patch map[string]any) (int64, error) {
	if len(patch) == 0 {
		return 0, nil
	}

	setClauses := make([]string, 0, len(patch)+1)
	args := make([]any, 0, len(patch)+3)
	argIndex := 1

	for column, value := range patch {
		if !vehiclePatchColumns[column] {
			return 0, fmt.Errorf("column %q is not patchable", column)
		}
		if features, ok := value.([]string); ok {
			value = pq.Array(features)
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, time.Now().UTC())
	argIndex++

	query := fmt.Sprintf("UPDATE vehicles SET %s WHERE id = $%d AND owner_email = $%d",
		strings.Join(setClauses, ", "), argIndex, argIndex+1)
	args = append(args, id, ownerEmail)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update vehicle: %w", err)
	}

	return tag.RowsAffected(), nil
}

// DeleteOwnedVehicle removes the vehicle matching both the id and the
// owner email and returns the number of rows deleted. Idempotent.
func (r *Repository) DeleteOwnedVehicle(ctx context.Context, id, ownerEmail string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM vehicles WHERE id = $1 AND owner_email = $2", id, ownerEmail)
	if err != nil {
		return 0, fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) queryVehicles(ctx context.Context, query string, args ...any) ([]*model.Vehicle, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*model.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vehicles: %w", err)
	}

	return vehicles, nil
}

func scanVehicle(row rowScanner) (*model.Vehicle, error) {
	var v model.Vehicle
	err := row.Scan(
		&v.ID,
		&v.OwnerEmail,
		&v.Name,
		&v.Model,
		&v.Category,
		&v.Location,
		&v.PricePerDay,
		&v.SeatCount,
		&v.Description,
		&v.ImageURL,
		pq.Array(&v.Features),
		&v.Available,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// isUniqueViolation checks for a PostgreSQL unique constraint violation
// (error code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
