// Package registry provides the single ID namespace shared by attack trees,
// security controls and the other identifiable TARA objects.
package registry

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrEmptyID is returned when an object without ID is added.
	ErrEmptyID = errors.New("object does not have a valid ID")
	// ErrDuplicateID is returned when the ID is already registered.
	ErrDuplicateID = errors.New("duplicate ID")
)

// Object is anything that can be referenced by ID.
type Object interface {
	ObjectID() string
}

// Registry maps unique IDs to objects. It is populated once and read-only
// afterwards.
type Registry struct {
	logger  *slog.Logger
	objects map[string]Object
	order   []string
}

// New creates an empty registry.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger:  logger,
		objects: make(map[string]Object),
	}
}

// Add registers obj under its ID. The first registration of an ID wins;
// duplicates are logged and dropped.
func (r *Registry) Add(obj Object) error {
	id := obj.ObjectID()
	if id == "" {
		return fmt.Errorf("%w: %T", ErrEmptyID, obj)
	}
	if _, exists := r.objects[id]; exists {
		r.logger.Error("Duplicate ID found", "id", id)
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	r.objects[id] = obj
	r.order = append(r.order, id)
	return nil
}

// Get returns the object registered under id.
func (r *Registry) Get(id string) (Object, bool) {
	obj, ok := r.objects[id]
	return obj, ok
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.objects[id]
	return ok
}

// IDs returns all registered IDs in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Len returns the number of registered objects.
func (r *Registry) Len() int {
	return len(r.objects)
}

// Lookup returns the object registered under id if it has type T.
func Lookup[T Object](r *Registry, id string) (T, bool) {
	var zero T
	obj, ok := r.objects[id]
	if !ok {
		return zero, false
	}
	typed, ok := obj.(T)
	return typed, ok
}
