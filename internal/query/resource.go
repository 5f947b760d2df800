package query

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/bizdash/bizdash/internal/domain/shared"
)

// Funcs binds a resource to the client calls that serve it. List and Get
// are required; nil mutation funcs make the corresponding operation a no-op
// error.
type Funcs[E any] struct {
	ID     func(E) string
	List   func(ctx context.Context, f shared.Filter) (shared.Paginated[E], error)
	Get    func(ctx context.Context, id string) (E, error)
	Create func(ctx context.Context, e E) (E, error)
	Update func(ctx context.Context, e E) (E, error)
	Delete func(ctx context.Context, id string) error
}

// Resource is the cached access point for one entity. Reads are served
// from cache, deduplicated in flight and refreshed on expiry; mutations
// write through to the backend, fix up the cache and emit exactly one
// notification each.
type Resource[E any] struct {
	entity   string
	label    string
	cache    *Cache
	notifier Notifier
	funcs    Funcs[E]
	logger   *zap.Logger

	listTTL   time.Duration
	detailTTL time.Duration

	group singleflight.Group
}

// ResourceOption is a functional option for configuring a resource
type ResourceOption[E any] func(*Resource[E])

// WithTTL overrides the list and detail TTLs
func WithTTL[E any](listTTL, detailTTL time.Duration) ResourceOption[E] {
	return func(r *Resource[E]) {
		r.listTTL = listTTL
		r.detailTTL = detailTTL
	}
}

// WithResourceLogger sets the logger for the resource
func WithResourceLogger[E any](logger *zap.Logger) ResourceOption[E] {
	return func(r *Resource[E]) {
		r.logger = logger
	}
}

// NewResource creates a resource named entity (the cache namespace) with a
// human label used in notification messages.
func NewResource[E any](entity, label string, cache *Cache, notifier Notifier, funcs Funcs[E], opts ...ResourceOption[E]) *Resource[E] {
	r := &Resource[E]{
		entity:    entity,
		label:     label,
		cache:     cache,
		notifier:  notifier,
		funcs:     funcs,
		logger:    zap.NewNop(),
		listTTL:   defaultListTTL,
		detailTTL: defaultDetailTTL,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.notifier == nil {
		r.notifier = NopNotifier{}
	}
	return r
}

// Entity returns the cache namespace of the resource
func (r *Resource[E]) Entity() string {
	return r.entity
}

// List returns one page of the entity, cached per filter. Concurrent
// requests for the same page share a single backend call.
func (r *Resource[E]) List(ctx context.Context, f shared.Filter) (shared.Paginated[E], error) {
	f = f.Normalize()
	key := ListKey(r.entity, f)

	if cached, ok := r.cache.Get(ctx, key); ok {
		if page, ok := cached.(shared.Paginated[E]); ok {
			return page, nil
		}
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		page, err := r.funcs.List(ctx, f)
		if err != nil {
			return nil, err
		}
		r.cache.Set(key, page, r.listTTL)
		return page, nil
	})
	if err != nil {
		var zero shared.Paginated[E]
		return zero, err
	}
	return v.(shared.Paginated[E]), nil
}

// Get returns one record by id, cached
func (r *Resource[E]) Get(ctx context.Context, id string) (E, error) {
	if id == "" {
		var zero E
		return zero, shared.ErrInvalidInput
	}
	key := DetailKey(r.entity, id)

	if cached, ok := r.cache.Get(ctx, key); ok {
		if e, ok := cached.(E); ok {
			return e, nil
		}
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		e, err := r.funcs.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		r.cache.Set(key, e, r.detailTTL)
		return e, nil
	})
	if err != nil {
		var zero E
		return zero, err
	}
	return v.(E), nil
}

// Create writes a new record through to the backend. On success every
// cached list page of the entity is invalidated and the server-returned
// object becomes the cached detail. On failure the cache is untouched.
func (r *Resource[E]) Create(ctx context.Context, e E) (E, error) {
	created, err := r.funcs.Create(ctx, e)
	if err != nil {
		r.notifier.Error(r.label + ": " + err.Error())
		var zero E
		return zero, err
	}

	r.cache.InvalidatePrefix(r.listPrefix())
	if r.funcs.ID != nil {
		if id := r.funcs.ID(created); id != "" {
			r.cache.Set(DetailKey(r.entity, id), created, r.detailTTL)
		}
	}
	r.notifier.Success(r.label + " created")
	return created, nil
}

// Update writes an existing record through to the backend. The cached
// detail is replaced with the server-returned object, never the caller's
// input, so server-computed fields stay authoritative.
func (r *Resource[E]) Update(ctx context.Context, e E) (E, error) {
	updated, err := r.funcs.Update(ctx, e)
	if err != nil {
		r.notifier.Error(r.label + ": " + err.Error())
		var zero E
		return zero, err
	}

	r.cache.InvalidatePrefix(r.listPrefix())
	if r.funcs.ID != nil {
		if id := r.funcs.ID(updated); id != "" {
			r.cache.Set(DetailKey(r.entity, id), updated, r.detailTTL)
		}
	}
	r.notifier.Success(r.label + " updated")
	return updated, nil
}

// Delete removes a record. The cached detail is evicted and every list
// page invalidated.
func (r *Resource[E]) Delete(ctx context.Context, id string) error {
	if err := r.funcs.Delete(ctx, id); err != nil {
		r.notifier.Error(r.label + ": " + err.Error())
		return err
	}

	r.cache.Delete(DetailKey(r.entity, id))
	r.cache.InvalidatePrefix(r.listPrefix())
	r.notifier.Success(r.label + " deleted")
	return nil
}

// Invalidate drops everything cached for the entity
func (r *Resource[E]) Invalidate() {
	r.cache.InvalidatePrefix(Namespace(r.entity))
}

func (r *Resource[E]) listPrefix() string {
	return r.entity + "|list|"
}
