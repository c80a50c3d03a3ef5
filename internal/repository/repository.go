package repository

import (
	"context"
	"database/sql"
	"fmt"
	"verifybot/internal/models"
)

// Binding is the identity store. Implementations must enforce requester_id and
// external_id uniqueness at the point of write.
type Binding interface {
	FindByExternalID(ctx context.Context, externalID string) (*models.IdentityBinding, error)
	FindByRequesterID(ctx context.Context, requesterID string) (*models.IdentityBinding, error)
	// Upsert creates or replaces the binding keyed by RequesterID. It returns
	// ErrExternalIDTaken when ExternalID is held by a different requester.
	Upsert(ctx context.Context, binding *models.IdentityBinding) (*models.IdentityBinding, error)
	// UpdateExternalID rebinds an existing requester. It returns ErrNotFound when
	// the requester has no binding and ErrExternalIDTaken on collision.
	UpdateExternalID(ctx context.Context, requesterID, externalID, externalLabel string) (*models.IdentityBinding, error)
	DeleteByExternalID(ctx context.Context, externalID string) (bool, error)
	List(ctx context.Context) ([]models.IdentityBinding, error)
}

type AllowList interface {
	Add(ctx context.Context, entry *models.AllowListEntry) error
	Remove(ctx context.Context, externalID string) (bool, error)
	Get(ctx context.Context, externalID string) (*models.AllowListEntry, error)
	List(ctx context.Context) ([]models.AllowListEntry, error)
}

type Repository struct {
	Binding
	AllowList
	db *sql.DB
}

func NewRepository(cfg *Config, db *sql.DB) (*Repository, error) {
	switch cfg.Driver {
	case DriverMemory:
		mem := NewMemory()
		return &Repository{Binding: mem, AllowList: mem.AllowListStore()}, nil
	case DriverPostgres, "":
		if db == nil {
			return nil, fmt.Errorf("postgres driver requires a database handle")
		}
		return &Repository{
			Binding:   NewBindingPostgres(db),
			AllowList: NewAllowListPostgres(db),
			db:        db,
		}, nil
	default:
		return nil, fmt.Errorf("unknown repository driver %q", cfg.Driver)
	}
}

func (r *Repository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
