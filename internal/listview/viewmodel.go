// Package listview implements the per-resource list view-model: fetching the
// collection, filtering it locally, exporting it as CSV and dispatching
// mutations followed by a refetch.
package listview

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Veraticus/ledgerdeck/internal/common"
	"github.com/Veraticus/ledgerdeck/internal/export"
	"github.com/Veraticus/ledgerdeck/internal/model"
	"github.com/Veraticus/ledgerdeck/internal/service"
)

// State is the fetch status of a page.
type State int

// Fetch states.
const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// ViewModel owns the raw collection of one resource page. It is safe for
// concurrent use.
type ViewModel[T model.Record, D any] struct {
	err        error
	collection service.Collection[T, D]
	logger     *slog.Logger
	filters    map[string]string
	search     string
	raw        []T
	config     Config
	state      State
	mu         sync.Mutex
}

// New creates an idle view-model with an empty collection.
func New[T model.Record, D any](config Config, collection service.Collection[T, D], logger *slog.Logger) *ViewModel[T, D] {
	if logger == nil {
		logger = slog.Default()
	}
	return &ViewModel[T, D]{
		config:     config,
		collection: collection,
		logger:     logger.With("resource", config.Name),
		filters:    make(map[string]string),
	}
}

// Config returns the page configuration.
func (vm *ViewModel[T, D]) Config() Config {
	return vm.config
}

// State returns the fetch state.
func (vm *ViewModel[T, D]) State() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// Err returns the last fetch error, a *common.UserError.
func (vm *ViewModel[T, D]) Err() error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.err
}

// Message returns the user-facing fetch error, or "".
func (vm *ViewModel[T, D]) Message() string {
	return common.UserMessage(vm.Err())
}

// Fetch replaces the raw collection with the backend's. On failure the
// collection is emptied and the state becomes StateError.
func (vm *ViewModel[T, D]) Fetch(ctx context.Context) error {
	vm.mu.Lock()
	vm.state = StateLoading
	vm.mu.Unlock()

	records, err := vm.collection.List(ctx)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err != nil {
		vm.logger.Error("fetch failed", "error", err)
		vm.raw = nil
		vm.state = StateError
		vm.err = common.NewUserError(vm.config.Messages.Fetch, err)
		return vm.err
	}
	vm.raw = records
	vm.state = StateLoaded
	vm.err = nil
	vm.logger.Debug("fetched", "records", len(records))
	return nil
}

// Records returns a copy of the raw collection.
func (vm *ViewModel[T, D]) Records() []T {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]T(nil), vm.raw...)
}

// Find returns the raw record with id.
func (vm *ViewModel[T, D]) Find(id model.ID) (T, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	for _, r := range vm.raw {
		if r.RecordID() == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Len returns the size of the raw collection.
func (vm *ViewModel[T, D]) Len() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return len(vm.raw)
}

// SetSearch sets the free-text query on the search field.
func (vm *ViewModel[T, D]) SetSearch(text string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.search = text
}

// Search returns the free-text query.
func (vm *ViewModel[T, D]) Search() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.search
}

// SetFilter constrains field to value; an empty value removes the constraint.
func (vm *ViewModel[T, D]) SetFilter(field, value string) error {
	if !vm.config.CanFilter(field) {
		return fmt.Errorf("%w: %s cannot be filtered on %s", common.ErrUnknownField, field, vm.config.Name)
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if value == "" {
		delete(vm.filters, field)
		return nil
	}
	vm.filters[field] = value
	return nil
}

// Filter returns the current value of a filter.
func (vm *ViewModel[T, D]) Filter(field string) string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.filters[field]
}

// ClearFilters drops the search text and every filter.
func (vm *ViewModel[T, D]) ClearFilters() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.search = ""
	vm.filters = make(map[string]string)
}

// Reset empties the collection and drops the search text and filters, as
// when the page is first opened. The state becomes StateLoading.
func (vm *ViewModel[T, D]) Reset() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.raw = nil
	vm.err = nil
	vm.state = StateLoading
	vm.search = ""
	vm.filters = make(map[string]string)
}

// Query returns the search text and filters as one query.
func (vm *ViewModel[T, D]) Query() Query {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.query()
}

func (vm *ViewModel[T, D]) query() Query {
	var q Query
	if vm.config.SearchField != "" && vm.search != "" {
		q = q.And(Search(vm.config.SearchField, vm.search))
	}
	for _, field := range vm.config.FilterableFields {
		if v := vm.filters[field]; v != "" {
			q = q.And(Equals(field, v))
		}
	}
	return q
}

// View returns the filtered collection. It is recomputed on every call.
func (vm *ViewModel[T, D]) View() []T {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return Apply(vm.raw, vm.query())
}

// Options lists the distinct values of a filterable field across the raw
// collection.
func (vm *ViewModel[T, D]) Options(field string) ([]string, error) {
	if !vm.config.CanFilter(field) {
		return nil, fmt.Errorf("%w: %s cannot be filtered on %s", common.ErrUnknownField, field, vm.config.Name)
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return Options(vm.raw, field), nil
}

// Rows renders the filtered collection with the display columns.
func (vm *ViewModel[T, D]) Rows() ([]model.ID, [][]string) {
	view := vm.View()
	ids := make([]model.ID, len(view))
	rows := make([][]string, len(view))
	for i, r := range view {
		ids[i] = r.RecordID()
		rows[i] = row(r, vm.config.Columns)
	}
	return ids, rows
}

// Export renders the filtered collection as the resource's CSV document.
func (vm *ViewModel[T, D]) Export() export.Document {
	return BuildDocument(vm.config.Filename, vm.View(), vm.config.exportColumns())
}

// Create submits draft and refetches once on success.
func (vm *ViewModel[T, D]) Create(ctx context.Context, draft D) (T, error) {
	created, err := vm.collection.Create(ctx, draft)
	if err != nil {
		vm.logger.Error("create failed", "error", err)
		return created, common.NewUserError(vm.config.Messages.Create, err)
	}
	vm.logger.Info("created", "id", created.RecordID())
	vm.refresh(ctx)
	return created, nil
}

// Update sends patch for id and refetches once on success.
func (vm *ViewModel[T, D]) Update(ctx context.Context, id model.ID, patch any) error {
	if err := vm.collection.Update(ctx, id, patch); err != nil {
		vm.logger.Error("update failed", "id", id, "error", err)
		return common.NewUserError(vm.config.Messages.Update, err)
	}
	vm.logger.Info("updated", "id", id)
	vm.refresh(ctx)
	return nil
}

// Remove deletes id after confirmation. It reports whether the delete was
// issued. On success the row is dropped locally and the collection is
// refetched once; on failure the collection is left as it was.
func (vm *ViewModel[T, D]) Remove(ctx context.Context, id model.ID, confirmer service.Confirmer) (bool, error) {
	ok, err := confirmer.Confirm(ctx, DeletePrompt(vm.config))
	if err != nil {
		return false, err
	}
	if !ok {
		vm.logger.Debug("delete declined", "id", id)
		return false, nil
	}

	if err := vm.collection.Delete(ctx, id); err != nil {
		vm.logger.Error("delete failed", "id", id, "error", err)
		return true, common.NewUserError(vm.config.Messages.Delete, err)
	}

	vm.mu.Lock()
	kept := make([]T, 0, len(vm.raw))
	for _, r := range vm.raw {
		if r.RecordID() != id {
			kept = append(kept, r)
		}
	}
	vm.raw = kept
	vm.mu.Unlock()

	vm.logger.Info("deleted", "id", id)
	vm.refresh(ctx)
	return true, nil
}

// refresh refetches after a successful mutation. A failed refetch is
// reported through State and Err; the mutation itself stands.
func (vm *ViewModel[T, D]) refresh(ctx context.Context) {
	_ = vm.Fetch(ctx)
}
