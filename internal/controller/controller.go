// Package controller exposes create/read/update/remove per entity type over a
// repository.Table and keeps a per-type cache that presentation layers read from.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"alcyxob/fitness-tracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrMissingID     = errors.New("record has no id")
	ErrKindImmutable = errors.New("exercise kind cannot be changed")
	ErrNoTraining    = errors.New("workout is not based on a stored training")
)

// Controller caches records of one collection. The cache only changes after
// the corresponding table call succeeded.
type Controller[T domain.Record[T]] struct {
	name  string
	table repository.Table[T]

	// optional hooks, run before the table call
	validate      func(T) error
	prepareCreate func(draft T) T
	prepareUpdate func(stored, draft T) (T, error)
	// checkReplace runs when Create is given the ID of a stored record
	checkReplace func(stored, draft T) error

	mu      sync.RWMutex
	cache   map[string]T
	lastErr string
}

func New[T domain.Record[T]](name string, table repository.Table[T]) *Controller[T] {
	return &Controller[T]{
		name:  name,
		table: table,
		cache: make(map[string]T),
	}
}

// Create persists draft, generating an ID when it has none, and caches the stored form.
// A draft carrying the ID of a stored record replaces it.
func (c *Controller[T]) Create(ctx context.Context, draft T) (_ T, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, c.name+"Controller.create")
	defer tracing.EndSpanWithErrCheck(span, &err)

	var zero T
	hadID := draft.GetID() != ""
	draft = repository.EnsureID(draft)
	span.SetAttributes(attribute.String("id", draft.GetID()))
	if c.prepareCreate != nil {
		draft = c.prepareCreate(draft)
	}
	if err := c.check(draft); err != nil {
		return zero, c.fail(err)
	}
	if c.checkReplace != nil && hadID {
		existing, found, err := c.table.Get(ctx, draft.GetID())
		if err != nil {
			return zero, c.storageFail("create", draft.GetID(), err)
		}
		if found {
			if err := c.checkReplace(existing, draft); err != nil {
				return zero, c.fail(err)
			}
		}
	}

	stored, err := c.table.Put(ctx, draft)
	if err != nil {
		return zero, c.storageFail("create", draft.GetID(), err)
	}
	c.remember(stored)
	return stored.Clone(), nil
}

// Update replaces an existing record. The draft must carry the ID of a stored record.
func (c *Controller[T]) Update(ctx context.Context, draft T) (_ T, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, c.name+"Controller.update")
	defer tracing.EndSpanWithErrCheck(span, &err)

	var zero T
	id := draft.GetID()
	if id == "" {
		return zero, c.fail(ErrMissingID)
	}
	span.SetAttributes(attribute.String("id", id))

	stored, found, err := c.table.Get(ctx, id)
	if err != nil {
		return zero, c.storageFail("update", id, err)
	}
	if !found {
		return zero, c.fail(fmt.Errorf("%s %s: %w", c.name, id, ErrNotFound))
	}
	if c.prepareUpdate != nil {
		if draft, err = c.prepareUpdate(stored, draft); err != nil {
			return zero, c.fail(err)
		}
	}
	if err := c.check(draft); err != nil {
		return zero, c.fail(err)
	}

	updated, err := c.table.Put(ctx, draft)
	if err != nil {
		return zero, c.storageFail("update", id, err)
	}
	c.remember(updated)
	return updated.Clone(), nil
}

// Remove deletes the record and evicts it from the cache. Removing an absent ID is not an error.
func (c *Controller[T]) Remove(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, c.name+"Controller.remove")
	span.SetAttributes(attribute.String("id", id))
	defer tracing.EndSpanWithErrCheck(span, &err)

	if err := c.table.Remove(ctx, id); err != nil {
		return c.storageFail("remove", id, err)
	}

	c.mu.Lock()
	delete(c.cache, id)
	c.lastErr = ""
	c.mu.Unlock()
	return nil
}

// FindByID returns the cached record, falling through to the table on a miss.
// found is false when no such record exists.
func (c *Controller[T]) FindByID(ctx context.Context, id string) (_ T, found bool, err error) {
	if item, ok := c.Cached(id); ok {
		return item, true, nil
	}

	ctx, span := tracing.GlobalTracer.Start(ctx, c.name+"Controller.findByID")
	span.SetAttributes(attribute.String("id", id))
	defer tracing.EndSpanWithErrCheck(span, &err)

	item, found, err := c.table.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, false, c.storageFail("find", id, err)
	}
	if !found {
		return item, false, nil
	}
	c.remember(item)
	return item.Clone(), true, nil
}

// LoadAll fetches the whole collection and replaces the cache with it.
func (c *Controller[T]) LoadAll(ctx context.Context) (_ []T, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, c.name+"Controller.loadAll")
	defer tracing.EndSpanWithErrCheck(span, &err)

	items, err := c.table.List(ctx)
	if err != nil {
		return nil, c.storageFail("load", "", err)
	}
	span.SetAttributes(attribute.Int("count", len(items)))

	cache := make(map[string]T, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		cache[item.GetID()] = item
		out = append(out, item.Clone())
	}

	c.mu.Lock()
	c.cache = cache
	c.lastErr = ""
	c.mu.Unlock()
	return out, nil
}

// Items returns copies of all cached records ordered by ID.
func (c *Controller[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]T, 0, len(c.cache))
	for _, item := range c.cache {
		items = append(items, item.Clone())
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].GetID() < items[j].GetID()
	})
	return items
}

// Cached returns the cached record without touching the table.
func (c *Controller[T]) Cached(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.cache[id]
	if !ok {
		var zero T
		return zero, false
	}
	return item.Clone(), true
}

// LastError describes the last failed operation, or is empty after a success.
func (c *Controller[T]) LastError() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

func (c *Controller[T]) check(item T) error {
	if c.validate == nil {
		return nil
	}
	return c.validate(item)
}

func (c *Controller[T]) remember(item T) {
	c.mu.Lock()
	c.cache[item.GetID()] = item.Clone()
	c.lastErr = ""
	c.mu.Unlock()
}

func (c *Controller[T]) fail(err error) error {
	c.mu.Lock()
	c.lastErr = err.Error()
	c.mu.Unlock()
	return err
}

func (c *Controller[T]) storageFail(op, id string, err error) error {
	log.WithFields(log.Fields{
		"collection": c.name,
		"op":         op,
		"id":         id,
	}).WithError(err).Error("store operation failed")
	if id != "" {
		err = fmt.Errorf("%s %s %s: %w", op, c.name, id, err)
	} else {
		err = fmt.Errorf("%s %s: %w", op, c.name, err)
	}
	return c.fail(err)
}
