package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/parkhaus/parkhaus/internal/domain"
)

// ParkingRepository implements domain.ParkingRepository. Claim and Release
// are single conditional statements so concurrent admissions can never
// split the status/assignment invariant.
type ParkingRepository struct {
	db *sql.DB
}

const parkingColumns = `id, space_number, location, monthly_fee_cents, type, status,
	covered, electric_charging, max_vehicle_length, max_vehicle_width, notes,
	tenant_id, created_at, updated_at`

func (r *ParkingRepository) Create(ctx context.Context, p domain.ParkingSpace) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO parking_spaces (`+parkingColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.SpaceNumber, p.Location, p.MonthlyFeeCents, string(p.Type),
		string(p.Status), p.Covered, p.ElectricCharging, p.MaxVehicleLength,
		p.MaxVehicleWidth, p.Notes, nullable(p.TenantID),
		p.CreatedAt.Format(timeFormat),
		p.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return &domain.SpaceNumberConflictError{SpaceNumber: p.SpaceNumber}
		}
		return writeErr("inserting parking space", err)
	}
	return nil
}

func (r *ParkingRepository) GetByID(ctx context.Context, id string) (domain.ParkingSpace, error) {
	p, err := scanParkingRow(r.db.QueryRowContext(ctx,
		`SELECT `+parkingColumns+` FROM parking_spaces WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return domain.ParkingSpace{}, domain.ErrParkingSpaceNotFound
	}
	return p, err
}

func (r *ParkingRepository) GetBySpaceNumber(ctx context.Context, spaceNumber string) (domain.ParkingSpace, error) {
	p, err := scanParkingRow(r.db.QueryRowContext(ctx,
		`SELECT `+parkingColumns+` FROM parking_spaces WHERE space_number = ?`, spaceNumber,
	))
	if err == sql.ErrNoRows {
		return domain.ParkingSpace{}, domain.ErrParkingSpaceNotFound
	}
	return p, err
}

func (r *ParkingRepository) List(ctx context.Context, filter domain.ParkingFilter) ([]domain.ParkingSpace, error) {
	query := `SELECT ` + parkingColumns + ` FROM parking_spaces`
	var conds []string
	var args []any

	if filter.Status != nil {
		conds = append(conds, `status = ?`)
		args = append(args, string(*filter.Status))
	}
	if filter.TenantID != "" {
		conds = append(conds, `tenant_id = ?`)
		args = append(args, filter.TenantID)
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}

	query += ` ORDER BY space_number ASC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	return r.queryParking(ctx, query, args...)
}

// AvailableUnassigned returns the candidate set for automatic assignment,
// ordered by ascending space number so selection is deterministic.
func (r *ParkingRepository) AvailableUnassigned(ctx context.Context) ([]domain.ParkingSpace, error) {
	return r.queryParking(ctx,
		`SELECT `+parkingColumns+` FROM parking_spaces
		 WHERE status = ? AND tenant_id IS NULL
		 ORDER BY space_number ASC`,
		string(domain.ParkingAvailable),
	)
}

// Claim atomically marks a space occupied by the given tenant. The WHERE
// clause makes the claim conditional: it succeeds only if the space is
// still available and unassigned at write time. A lost race returns
// domain.ErrSpaceClaimed so the caller can retry against a refreshed
// candidate set.
func (r *ParkingRepository) Claim(ctx context.Context, spaceID, tenantID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE parking_spaces SET status = ?, tenant_id = ?, updated_at = ?
		 WHERE id = ? AND status = ? AND tenant_id IS NULL`,
		string(domain.ParkingOccupied), tenantID,
		time.Now().UTC().Format(timeFormat),
		spaceID, string(domain.ParkingAvailable),
	)
	if err != nil {
		return writeErr("claiming parking space", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		// Either the space vanished or someone else claimed it first.
		if _, err := r.GetByID(ctx, spaceID); err != nil {
			return err
		}
		return domain.ErrSpaceClaimed
	}

	return nil
}

// Release clears the assignment and returns the space to available in one
// write. Releasing an already-unassigned space is a no-op that succeeds.
func (r *ParkingRepository) Release(ctx context.Context, spaceID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE parking_spaces SET status = ?, tenant_id = NULL, updated_at = ?
		 WHERE id = ?`,
		string(domain.ParkingAvailable),
		time.Now().UTC().Format(timeFormat),
		spaceID,
	)
	if err != nil {
		return writeErr("releasing parking space", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrParkingSpaceNotFound
	}

	return nil
}

// Update persists the full row, status and assignment together.
func (r *ParkingRepository) Update(ctx context.Context, p domain.ParkingSpace) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE parking_spaces SET location = ?, monthly_fee_cents = ?, type = ?,
		 status = ?, covered = ?, electric_charging = ?, max_vehicle_length = ?,
		 max_vehicle_width = ?, notes = ?, tenant_id = ?, updated_at = ?
		 WHERE id = ?`,
		p.Location, p.MonthlyFeeCents, string(p.Type), string(p.Status),
		p.Covered, p.ElectricCharging, p.MaxVehicleLength, p.MaxVehicleWidth,
		p.Notes, nullable(p.TenantID),
		time.Now().UTC().Format(timeFormat), p.ID,
	)
	if err != nil {
		return writeErr("updating parking space", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrParkingSpaceNotFound
	}

	return nil
}

func (r *ParkingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM parking_spaces`).Scan(&n); err != nil {
		if isBusy(err) {
			return 0, fmt.Errorf("counting parking spaces: %w", domain.ErrStoreUnavailable)
		}
		return 0, fmt.Errorf("counting parking spaces: %w", err)
	}
	return n, nil
}

func (r *ParkingRepository) queryParking(ctx context.Context, query string, args ...any) ([]domain.ParkingSpace, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing parking spaces: %w", err)
	}
	defer rows.Close()

	var spaces []domain.ParkingSpace
	for rows.Next() {
		p, err := scanParkingRow(rows)
		if err != nil {
			return nil, err
		}
		spaces = append(spaces, p)
	}

	return spaces, rows.Err()
}

func scanParkingRow(sc rowScanner) (domain.ParkingSpace, error) {
	var p domain.ParkingSpace
	var typ, status, createdAt, updatedAt string
	var tenantID sql.NullString

	err := sc.Scan(&p.ID, &p.SpaceNumber, &p.Location, &p.MonthlyFeeCents,
		&typ, &status, &p.Covered, &p.ElectricCharging, &p.MaxVehicleLength,
		&p.MaxVehicleWidth, &p.Notes, &tenantID, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.ParkingSpace{}, err
		}
		return domain.ParkingSpace{}, fmt.Errorf("scanning parking space: %w", err)
	}

	p.Type = domain.ParkingType(typ)
	p.Status = domain.ParkingStatus(status)
	p.TenantID = tenantID.String
	p.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	p.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)

	return p, nil
}
