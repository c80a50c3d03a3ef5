package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"verifybot/internal/models"
)

const bindingColumns = `requester_id, requester_label, external_id, external_label, created_at, updated_at`

type BindingPostgres struct {
	db *sql.DB
}

func NewBindingPostgres(db *sql.DB) *BindingPostgres {
	return &BindingPostgres{db: db}
}

func (r *BindingPostgres) FindByExternalID(ctx context.Context, externalID string) (*models.IdentityBinding, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+bindingColumns+`
		FROM identity_bindings
		WHERE external_id = $1
	`, externalID)

	b, err := scanBinding(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get binding by external id: %w", err)
	}
	return b, nil
}

func (r *BindingPostgres) FindByRequesterID(ctx context.Context, requesterID string) (*models.IdentityBinding, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+bindingColumns+`
		FROM identity_bindings
		WHERE requester_id = $1
	`, requesterID)

	b, err := scanBinding(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get binding by requester id: %w", err)
	}
	return b, nil
}

func (r *BindingPostgres) Upsert(ctx context.Context, binding *models.IdentityBinding) (*models.IdentityBinding, error) {
	// ON CONFLICT only covers requester_id; a collision on external_id still
	// raises a unique violation, which closes the check-then-write race.
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO identity_bindings (requester_id, requester_label, external_id, external_label)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (requester_id) DO UPDATE SET
			requester_label = EXCLUDED.requester_label,
			external_id = EXCLUDED.external_id,
			external_label = EXCLUDED.external_label,
			updated_at = NOW()
		RETURNING `+bindingColumns,
		binding.RequesterID, binding.RequesterLabel, binding.ExternalID, binding.ExternalLabel)

	b, err := scanBinding(row)
	if isUniqueViolation(err, bindingsExternalIDConstraint) {
		return nil, ErrExternalIDTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upsert binding: %w", err)
	}
	return b, nil
}

func (r *BindingPostgres) UpdateExternalID(ctx context.Context, requesterID, externalID, externalLabel string) (*models.IdentityBinding, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE identity_bindings SET
			external_id = $2,
			external_label = $3,
			updated_at = NOW()
		WHERE requester_id = $1
		RETURNING `+bindingColumns,
		requesterID, externalID, externalLabel)

	b, err := scanBinding(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if isUniqueViolation(err, bindingsExternalIDConstraint) {
		return nil, ErrExternalIDTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update binding: %w", err)
	}
	return b, nil
}

func (r *BindingPostgres) DeleteByExternalID(ctx context.Context, externalID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM identity_bindings WHERE external_id = $1`, externalID)
	if err != nil {
		return false, fmt.Errorf("failed to delete binding: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *BindingPostgres) List(ctx context.Context) ([]models.IdentityBinding, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+bindingColumns+`
		FROM identity_bindings
		ORDER BY created_at, requester_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query bindings: %w", err)
	}
	defer rows.Close()

	var bindings []models.IdentityBinding
	for rows.Next() {
		b, err := scanBinding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan binding: %w", err)
		}
		bindings = append(bindings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bindings: %w", err)
	}
	return bindings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBinding(row rowScanner) (*models.IdentityBinding, error) {
	var b models.IdentityBinding
	err := row.Scan(
		&b.RequesterID, &b.RequesterLabel,
		&b.ExternalID, &b.ExternalLabel,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
