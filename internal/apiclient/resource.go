package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Veraticus/ledgerdeck/internal/model"
)

// envelope wraps collections returned by the communications endpoints.
type envelope[T any] struct {
	Data []T `json:"data"`
}

type resourcePaths struct {
	list      string
	create    string
	item      string
	enveloped bool
}

// ResourceOption adjusts the paths of a Resource.
type ResourceOption func(*resourcePaths)

// WithListPath overrides the collection fetch path.
func WithListPath(path string) ResourceOption {
	return func(p *resourcePaths) {
		p.list = path
	}
}

// WithEnvelope decodes list responses shaped as {"data": [...]}.
func WithEnvelope() ResourceOption {
	return func(p *resourcePaths) {
		p.enveloped = true
	}
}

// Resource is the CRUD contract of one REST collection. It satisfies
// service.Collection.
type Resource[T model.Record, D any] struct {
	client *Client
	paths  resourcePaths
}

// NewResource binds a resource rooted at path, e.g. "/api/budgets".
func NewResource[T model.Record, D any](c *Client, path string, opts ...ResourceOption) *Resource[T, D] {
	paths := resourcePaths{list: path, create: path, item: path}
	for _, opt := range opts {
		opt(&paths)
	}
	return &Resource[T, D]{client: c, paths: paths}
}

// Path returns the resource root path.
func (r *Resource[T, D]) Path() string {
	return r.paths.item
}

// List fetches the whole collection.
func (r *Resource[T, D]) List(ctx context.Context) ([]T, error) {
	if r.paths.enveloped {
		var wrapped envelope[T]
		if err := r.client.Do(ctx, http.MethodGet, r.paths.list, nil, &wrapped); err != nil {
			return nil, err
		}
		return orEmpty(wrapped.Data), nil
	}

	var records []T
	if err := r.client.Do(ctx, http.MethodGet, r.paths.list, nil, &records); err != nil {
		return nil, err
	}
	return orEmpty(records), nil
}

// Create submits a draft and returns the created record when the backend
// echoes it.
func (r *Resource[T, D]) Create(ctx context.Context, draft D) (T, error) {
	var created T
	var raw json.RawMessage
	if err := r.client.Do(ctx, http.MethodPost, r.paths.create, draft, &raw); err != nil {
		return created, err
	}
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &created); err != nil {
			return created, fmt.Errorf("failed to decode created record: %w", err)
		}
	}
	return created, nil
}

// Update replaces the record with id.
func (r *Resource[T, D]) Update(ctx context.Context, id model.ID, patch any) error {
	return r.client.Do(ctx, http.MethodPut, r.ItemPath(id), patch, nil)
}

// Delete removes the record with id.
func (r *Resource[T, D]) Delete(ctx context.Context, id model.ID) error {
	return r.client.Do(ctx, http.MethodDelete, r.ItemPath(id), nil, nil)
}

// ItemPath returns the path addressing one record.
func (r *Resource[T, D]) ItemPath(id model.ID) string {
	return r.paths.item + "/" + url.PathEscape(id.String())
}

func orEmpty[T any](records []T) []T {
	if records == nil {
		return []T{}
	}
	return records
}
