package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/parkhaus/parkhaus/internal/domain"
)

// TenantRepository implements domain.TenantRepository.
type TenantRepository struct {
	db *sql.DB
}

const tenantColumns = `id, username, email, password_hash, first_name, last_name,
	phone, role, capabilities, active, created_at, updated_at`

func (r *TenantRepository) Create(ctx context.Context, t domain.Tenant) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tenants (`+tenantColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Username, t.Email, t.PasswordHash, t.FirstName, t.LastName,
		t.Phone, string(t.Role), encodeCapabilities(t.Capabilities), t.Active,
		t.CreatedAt.Format(timeFormat),
		t.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		if col, ok := uniqueViolation(err); ok {
			value := t.Username
			if col == "email" {
				value = t.Email
			}
			return &domain.DuplicateIdentityError{Field: col, Value: value}
		}
		return writeErr("inserting tenant", err)
	}
	return nil
}

func (r *TenantRepository) GetByID(ctx context.Context, id string) (domain.Tenant, error) {
	return r.scanTenant(r.db.QueryRowContext(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE id = ?`, id,
	))
}

func (r *TenantRepository) GetByUsername(ctx context.Context, username string) (domain.Tenant, error) {
	return r.scanTenant(r.db.QueryRowContext(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE username = ?`, username,
	))
}

func (r *TenantRepository) List(ctx context.Context, filter domain.TenantFilter) ([]domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants`
	var conds []string
	var args []any

	if filter.Role != nil {
		conds = append(conds, `role = ?`)
		args = append(args, string(*filter.Role))
	}
	if filter.Active != nil {
		conds = append(conds, `active = ?`)
		args = append(args, *filter.Active)
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}

	query += ` ORDER BY username ASC`

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
		return nil, fmt.Errorf("listing tenants: %w", err)
	}
	defer rows.Close()

	var tenants []domain.Tenant
	for rows.Next() {
		t, err := scanTenantRow(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}

	return tenants, rows.Err()
}

func (r *TenantRepository) Update(ctx context.Context, t domain.Tenant) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tenants SET email = ?, password_hash = ?, first_name = ?,
		 last_name = ?, phone = ?, role = ?, capabilities = ?, active = ?,
		 updated_at = ?
		 WHERE id = ?`,
		t.Email, t.PasswordHash, t.FirstName, t.LastName, t.Phone,
		string(t.Role), encodeCapabilities(t.Capabilities), t.Active,
		time.Now().UTC().Format(timeFormat), t.ID,
	)
	if err != nil {
		if col, ok := uniqueViolation(err); ok {
			return &domain.DuplicateIdentityError{Field: col, Value: t.Email}
		}
		return writeErr("updating tenant", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrTenantNotFound
	}

	return nil
}

// Count doubles as the seeder's store readiness probe.
func (r *TenantRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tenants`).Scan(&n); err != nil {
		if isBusy(err) {
			return 0, fmt.Errorf("counting tenants: %w", domain.ErrStoreUnavailable)
		}
		return 0, fmt.Errorf("counting tenants: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *TenantRepository) scanTenant(row *sql.Row) (domain.Tenant, error) {
	t, err := scanTenantRow(row)
	if err == sql.ErrNoRows {
		return domain.Tenant{}, domain.ErrTenantNotFound
	}
	return t, err
}

func scanTenantRow(sc rowScanner) (domain.Tenant, error) {
	var t domain.Tenant
	var role, caps, createdAt, updatedAt string

	err := sc.Scan(&t.ID, &t.Username, &t.Email, &t.PasswordHash,
		&t.FirstName, &t.LastName, &t.Phone, &role, &caps, &t.Active,
		&createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Tenant{}, err
		}
		return domain.Tenant{}, fmt.Errorf("scanning tenant: %w", err)
	}

	t.Role = domain.Role(role)
	t.Capabilities = decodeCapabilities(caps)
	t.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	t.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)

	return t, nil
}

// Capabilities are stored as a comma-separated column; the set is small
// and fixed, and the store never queries by capability.
func encodeCapabilities(caps domain.Capabilities) string {
	if len(caps) == 0 {
		return ""
	}
	out := make([]string, 0, len(caps))
	for _, c := range []domain.Capability{
		domain.CapabilityAgent,
		domain.CapabilityAppraiser,
		domain.CapabilityConcierge,
	} {
		if caps.Has(c) {
			out = append(out, string(c))
		}
	}
	return strings.Join(out, ",")
}

func decodeCapabilities(s string) domain.Capabilities {
	caps := make(domain.Capabilities)
	if s == "" {
		return caps
	}
	for _, part := range strings.Split(s, ",") {
		caps.Grant(domain.Capability(part))
	}
	return caps
}
