package listview

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/ledgerdeck/internal/common"
	"github.com/Veraticus/ledgerdeck/internal/export"
	"github.com/Veraticus/ledgerdeck/internal/form"
	"github.com/Veraticus/ledgerdeck/internal/model"
	"github.com/Veraticus/ledgerdeck/internal/service"
)

// Page is the type-erased resource page used by the CLI and the TUI.
type Page interface {
	Config() Config
	Fetch(ctx context.Context) error
	State() State
	Message() string
	Len() int
	SetSearch(text string)
	Search() string
	SetFilter(field, value string) error
	Filter(field string) string
	ClearFilters()
	Reset()
	Options(field string) ([]string, error)
	Rows() ([]model.ID, [][]string)
	Export() export.Document
	Remove(ctx context.Context, id model.ID, confirmer service.Confirmer) (bool, error)
	Form() form.Editor
	Edit(id model.ID) error
}

// Draftable is a record that can pre-populate an edit draft.
type Draftable[D any] interface {
	model.Record
	Draft() D
}

// Resource pairs a view-model with the form that creates and edits its
// records.
type Resource[T Draftable[D], D any] struct {
	*ViewModel[T, D]
	form *form.Controller[D]
}

// NewResource builds a resource page. newDraft returns the default draft.
func NewResource[T Draftable[D], D any](config Config, collection service.Collection[T, D], newDraft func() D, logger *slog.Logger) *Resource[T, D] {
	vm := New(config, collection, logger)
	r := &Resource[T, D]{ViewModel: vm}
	r.form = form.New(newDraft,
		func(ctx context.Context, draft D) error {
			_, err := vm.Create(ctx, draft)
			return err
		},
		func(ctx context.Context, id model.ID, draft D) error {
			return vm.Update(ctx, id, draft)
		},
	)
	return r
}

// Form returns the draft editor.
func (r *Resource[T, D]) Form() form.Editor {
	return r.form
}

// Controller returns the typed draft controller.
func (r *Resource[T, D]) Controller() *form.Controller[D] {
	return r.form
}

// Edit opens the form pre-populated from the loaded record with id.
func (r *Resource[T, D]) Edit(id model.ID) error {
	record, ok := r.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s %s", common.ErrNotFound, r.config.Noun(), id)
	}
	r.form.OpenEdit(id, record.Draft())
	return nil
}

// DeletePrompt is the confirmation question asked before deleting a record
// of the page described by c.
func DeletePrompt(c Config) string {
	return fmt.Sprintf("Are you sure you want to delete this %s?", c.Noun())
}

