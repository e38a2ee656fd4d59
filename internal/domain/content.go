package domain

import (
	"context"
	"encoding/json"
)

// ContentStore defines storage for site-content sections (about page, council
// listing, catalog overrides). A write followed by a read from the same caller
// must observe the write.
type ContentStore interface {
	Get(ctx context.Context, section string) (json.RawMessage, error)
	Put(ctx context.Context, section string, body json.RawMessage) error
}

// ContentService defines read/write access to site-content sections as exposed
// to the delivery layer.
type ContentService interface {
	GetSection(ctx context.Context, section string) (json.RawMessage, error)
	PutSection(ctx context.Context, section string, body json.RawMessage) error
}
