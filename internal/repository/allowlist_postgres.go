package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"verifybot/internal/models"
)

type AllowListPostgres struct {
	db *sql.DB
}

func NewAllowListPostgres(db *sql.DB) *AllowListPostgres {
	return &AllowListPostgres{db: db}
}

func (r *AllowListPostgres) Add(ctx context.Context, entry *models.AllowListEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO allow_list (external_id, external_label)
		VALUES ($1, $2)
		ON CONFLICT (external_id) DO UPDATE SET
			external_label = EXCLUDED.external_label,
			updated_at = NOW()
	`, entry.ExternalID, entry.ExternalLabel)
	if err != nil {
		return fmt.Errorf("failed to add allow list entry: %w", err)
	}
	return nil
}

func (r *AllowListPostgres) Remove(ctx context.Context, externalID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM allow_list WHERE external_id = $1`, externalID)
	if err != nil {
		return false, fmt.Errorf("failed to remove allow list entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *AllowListPostgres) Get(ctx context.Context, externalID string) (*models.AllowListEntry, error) {
	var e models.AllowListEntry
	err := r.db.QueryRowContext(ctx, `
		SELECT external_id, external_label, created_at, updated_at
		FROM allow_list
		WHERE external_id = $1
	`, externalID).Scan(&e.ExternalID, &e.ExternalLabel, &e.CreatedAt, &e.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get allow list entry: %w", err)
	}
	return &e, nil
}

func (r *AllowListPostgres) List(ctx context.Context) ([]models.AllowListEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT external_id, external_label, created_at, updated_at
		FROM allow_list
		ORDER BY created_at, seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query allow list: %w", err)
	}
	defer rows.Close()

	var entries []models.AllowListEntry
	for rows.Next() {
		var e models.AllowListEntry
		if err := rows.Scan(&e.ExternalID, &e.ExternalLabel, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan allow list entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate allow list: %w", err)
	}
	return entries, nil
}
