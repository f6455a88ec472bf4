package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/parkhaus/parkhaus/internal/domain"
)

// ApartmentRepository implements domain.ApartmentRepository.
type ApartmentRepository struct {
	db *sql.DB
}

const apartmentColumns = `id, title, description, address, city, state, zip_code,
	price_cents, bedrooms, bathrooms, square_feet, status, owner_id, created_at, updated_at`

func (r *ApartmentRepository) Create(ctx context.Context, a domain.Apartment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO apartments (`+apartmentColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Title, a.Description, a.Address, a.City, a.State, a.ZipCode,
		a.PriceCents, a.Bedrooms, a.Bathrooms, a.SquareFeet, string(a.Status),
		nullable(a.OwnerID),
		a.CreatedAt.Format(timeFormat),
		a.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		return writeErr("inserting apartment", err)
	}
	return nil
}

func (r *ApartmentRepository) GetByID(ctx context.Context, id string) (domain.Apartment, error) {
	a, err := scanApartmentRow(r.db.QueryRowContext(ctx,
		`SELECT `+apartmentColumns+` FROM apartments WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return domain.Apartment{}, domain.ErrApartmentNotFound
	}
	return a, err
}

func (r *ApartmentRepository) List(ctx context.Context, filter domain.ApartmentFilter) ([]domain.Apartment, error) {
	query := `SELECT ` + apartmentColumns + ` FROM apartments`
	var conds []string
	var args []any

	if filter.Status != nil {
		conds = append(conds, `status = ?`)
		args = append(args, string(*filter.Status))
	}
	if filter.OwnerID != "" {
		conds = append(conds, `owner_id = ?`)
		args = append(args, filter.OwnerID)
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}

	query += ` ORDER BY created_at DESC, id`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing apartments: %w", err)
	}
	defer rows.Close()

	var apartments []domain.Apartment
	for rows.Next() {
		a, err := scanApartmentRow(rows)
		if err != nil {
			return nil, err
		}
		apartments = append(apartments, a)
	}

	return apartments, rows.Err()
}

func (r *ApartmentRepository) Update(ctx context.Context, a domain.Apartment) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE apartments SET title = ?, description = ?, address = ?, city = ?,
		 state = ?, zip_code = ?, price_cents = ?, bedrooms = ?, bathrooms = ?,
		 square_feet = ?, status = ?, owner_id = ?, updated_at = ?
		 WHERE id = ?`,
		a.Title, a.Description, a.Address, a.City, a.State, a.ZipCode,
		a.PriceCents, a.Bedrooms, a.Bathrooms, a.SquareFeet, string(a.Status),
		nullable(a.OwnerID),
		time.Now().UTC().Format(timeFormat), a.ID,
	)
	if err != nil {
		return writeErr("updating apartment", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrApartmentNotFound
	}

	return nil
}

func (r *ApartmentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM apartments WHERE id = ?`, id)
	if err != nil {
		return writeErr("deleting apartment", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrApartmentNotFound
	}

	return nil
}

func (r *ApartmentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM apartments`).Scan(&n); err != nil {
		if isBusy(err) {
			return 0, fmt.Errorf("counting apartments: %w", domain.ErrStoreUnavailable)
		}
		return 0, fmt.Errorf("counting apartments: %w", err)
	}
	return n, nil
}

func scanApartmentRow(sc rowScanner) (domain.Apartment, error) {
	var a domain.Apartment
	var status, createdAt, updatedAt string
	var ownerID sql.NullString

	err := sc.Scan(&a.ID, &a.Title, &a.Description, &a.Address, &a.City,
		&a.State, &a.ZipCode, &a.PriceCents, &a.Bedrooms, &a.Bathrooms,
		&a.SquareFeet, &status, &ownerID, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Apartment{}, err
		}
		return domain.Apartment{}, fmt.Errorf("scanning apartment: %w", err)
	}

	a.Status = domain.ApartmentStatus(status)
	a.OwnerID = ownerID.String
	a.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	a.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)

	return a, nil
}
