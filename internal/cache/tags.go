package cache

import (
	"fmt"
	"reflect"
	"sync"
)

// Tagger lets a type choose its own tag. It is consulted for both T and *T.
type Tagger interface {
	CacheTypeTag() string
}

// Registry maps Go types to explicit type tags. Registered tags take
// precedence over Tagger and over the canonical type name.
type Registry struct {
	mu   sync.RWMutex
	tags map[reflect.Type]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tags: make(map[reflect.Type]string)}
}

// Register assigns tag to T. Registering a second type under the same tag
// fails, since tags must identify one type.
func Register[T any](r *Registry, tag string) error {
	if tag == "" {
		return fmt.Errorf("%w: empty type tag", ErrInvalidArgument)
	}
	t := reflect.TypeFor[T]()

	r.mu.Lock()
	defer r.mu.Unlock()
	for other, existing := range r.tags {
		if existing == tag && other != t {
			return fmt.Errorf("%w: tag %q already registered for %s", ErrInvalidArgument, tag, other)
		}
	}
	r.tags[t] = tag
	return nil
}

func (r *Registry) lookup(t reflect.Type) (string, bool) {
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	tag, ok := r.tags[t]
	return tag, ok
}

// TagOf returns the type tag entries of type T are stored under.
func TagOf[T any](r *Registry) string {
	return tagOf(r, reflect.TypeFor[T]())
}

func tagOf(r *Registry, t reflect.Type) string {
	if tag, ok := r.lookup(t); ok {
		return tag
	}
	base := t
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	if tag, ok := r.lookup(base); ok {
		return tag
	}
	if base.Kind() != reflect.Interface {
		// *base carries both value and pointer receiver methods
		if tagger, ok := reflect.New(base).Interface().(Tagger); ok {
			if tag := tagger.CacheTypeTag(); tag != "" {
				return tag
			}
		}
	}
	return canonicalName(base)
}

// canonicalName is the import path qualified name of t. Unnamed types use
// their type literal.
func canonicalName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}
