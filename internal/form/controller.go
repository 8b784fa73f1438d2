// Package form manages the lifecycle of create and edit drafts.
package form

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/Veraticus/ledgerdeck/internal/common"
	"github.com/Veraticus/ledgerdeck/internal/model"
)

// State is the form visibility.
type State int

// Form states.
const (
	Closed State = iota
	Open
)

// Mode selects what Submit does.
type Mode int

// Form modes.
const (
	ModeCreate Mode = iota
	ModeEdit
)

// Editor is the type-erased view of a Controller used by interactive UIs.
type Editor interface {
	State() State
	Mode() Mode
	Fields() []Field
	Value(field string) string
	Set(field, value string) error
	Open()
	Submit(ctx context.Context) error
	Cancel()
	Err() error
}

// CreateFunc submits a new draft.
type CreateFunc[D any] func(ctx context.Context, draft D) error

// UpdateFunc submits an edited draft for id.
type UpdateFunc[D any] func(ctx context.Context, id model.ID, draft D) error

// Controller holds one draft record of type D, which must be a struct.
type Controller[D any] struct {
	lastErr  error
	newDraft func() D
	create   CreateFunc[D]
	update   UpdateFunc[D]
	draft    D
	id       model.ID
	fields   []Field
	state    State
	mode     Mode
	mu       sync.Mutex
}

// New creates a closed controller. newDraft returns the default draft shape.
func New[D any](newDraft func() D, create CreateFunc[D], update UpdateFunc[D]) *Controller[D] {
	if newDraft == nil {
		newDraft = func() D {
			var zero D
			return zero
		}
	}
	c := &Controller[D]{
		newDraft: newDraft,
		create:   create,
		update:   update,
		draft:    newDraft(),
	}
	c.fields = describe(reflect.TypeOf(c.draft))
	return c
}

// State returns the form visibility.
func (c *Controller[D]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mode returns whether the form creates or edits.
func (c *Controller[D]) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// ID returns the record being edited.
func (c *Controller[D]) ID() model.ID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

// Fields lists the editable fields.
func (c *Controller[D]) Fields() []Field {
	return c.fields
}

// Draft returns a copy of the current draft.
func (c *Controller[D]) Draft() D {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Err returns the error of the last failed submit.
func (c *Controller[D]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Open shows an empty create form.
func (c *Controller[D]) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Open
	c.mode = ModeCreate
	c.id = ""
	c.draft = c.newDraft()
	c.lastErr = nil
}

// OpenEdit shows an edit form for id pre-populated with draft.
func (c *Controller[D]) OpenEdit(id model.ID, draft D) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Open
	c.mode = ModeEdit
	c.id = id
	c.draft = draft
	c.lastErr = nil
}

// Set assigns a field by JSON name from user input.
func (c *Controller[D]) Set(field, value string) error {
	f, ok := c.field(field)
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrUnknownField, field)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Open {
		return common.ErrFormClosed
	}
	draft := reflect.ValueOf(&c.draft).Elem()
	return assign(draft, f, value)
}

// Value returns the current text of a field.
func (c *Controller[D]) Value(field string) string {
	f, ok := c.field(field)
	if !ok {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return display(reflect.ValueOf(&c.draft).Elem(), f)
}

// Validate checks the current draft without submitting it.
func (c *Controller[D]) Validate() error {
	return Validate(c.Draft(), c.fields)
}

// Submit validates the draft and sends it. An invalid draft is rejected
// before any network call. On success the draft resets and the form closes;
// on failure the form stays open with the draft intact.
func (c *Controller[D]) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state != Open {
		c.mu.Unlock()
		return common.ErrFormClosed
	}
	draft, mode, id := c.draft, c.mode, c.id
	c.mu.Unlock()

	err := Validate(draft, c.fields)
	if err == nil {
		switch {
		case mode == ModeEdit && c.update != nil:
			err = c.update(ctx, id, draft)
		case mode == ModeEdit:
			err = fmt.Errorf("%w: editing is not supported", common.ErrInvalidInput)
		default:
			err = c.create(ctx, draft)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err
		return err
	}
	c.state = Closed
	c.mode = ModeCreate
	c.id = ""
	c.draft = c.newDraft()
	c.lastErr = nil
	return nil
}

// Cancel discards the draft and closes the form.
func (c *Controller[D]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Closed
	c.mode = ModeCreate
	c.id = ""
	c.draft = c.newDraft()
	c.lastErr = nil
}

func (c *Controller[D]) field(name string) (Field, bool) {
	for _, f := range c.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
