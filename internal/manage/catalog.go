package manage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrCatalogUnavailable signals the catalog backend could not be reached.
var ErrCatalogUnavailable = errors.New("manage: catalog unavailable")

// Catalog resolves application records by their Manage identifier.
type Catalog interface {
	Application(ctx context.Context, manageID string) (Entity, error)
	Applications(ctx context.Context, manageIDs []string) ([]Entity, error)
}

// PGCatalog is a read-only Catalog backed by a replica of the Manage
// application table. It never writes: roles, invitations and catalog
// mutations belong to the backend.
type PGCatalog struct {
	db *sql.DB
}

var _ Catalog = (*PGCatalog)(nil)

func NewPGCatalog(db *sql.DB) *PGCatalog {
	return &PGCatalog{db: db}
}

// Ping verifies connectivity for readiness probes.
func (c *PGCatalog) Ping(ctx context.Context) error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.PingContext(ctx)
}

// Application returns the catalog record for manageID. A missing row yields
// an unknown stub rather than an error: a stale reference is an expected
// condition that dependent roles must surface as unknownInManage.
func (c *PGCatalog) Application(ctx context.Context, manageID string) (Entity, error) {
	manageID = strings.TrimSpace(manageID)
	if manageID == "" {
		return unknownStub(manageID), nil
	}
	row := c.db.QueryRowContext(ctx,
		`select manage_id, manage_type, data from manage_applications where manage_id=$1`, manageID)

	var (
		id         string
		manageType string
		data       []byte
	)
	if err := row.Scan(&id, &manageType, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return unknownStub(manageID), nil
		}
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	entity := Entity{}
	if len(data) > 0 {
		_ = json.Unmarshal(data, &entity)
	}
	entity["id"] = id
	entity["manageId"] = id
	entity["type"] = manageType
	return entity, nil
}

// Applications resolves a batch of identifiers, one entry per requested id in
// request order, substituting unknown stubs for missing rows.
func (c *PGCatalog) Applications(ctx context.Context, manageIDs []string) ([]Entity, error) {
	result := make([]Entity, 0, len(manageIDs))
	for _, id := range manageIDs {
		entity, err := c.Application(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, entity)
	}
	return result, nil
}

func unknownStub(manageID string) Entity {
	return Entity{
		"id":      manageID,
		"unknown": true,
	}
}
