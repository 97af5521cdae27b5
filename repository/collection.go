// Package repository provides one generic collection accessor instantiated
// per backend collection, instead of repeating the same read/write pattern
// for every entity.
package repository

import (
	"context"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"membership-system/utils"
)

// Mapper converts a raw backend record into its read model, normalizing
// datetimes and file references at the boundary.
type Mapper[T any] func(*core.Record) T

// Collection is a generic repository over one backend collection,
// parameterized by entity shape, optional ordering field and mapper.
type Collection[T any] struct {
	app        core.App
	name       string
	orderField string
	mapper     Mapper[T]
	cache      *utils.ViewCache
}

func NewCollection[T any](app core.App, name, orderField string, mapper Mapper[T], cache *utils.ViewCache) *Collection[T] {
	return &Collection[T]{
		app:        app,
		name:       name,
		orderField: orderField,
		mapper:     mapper,
		cache:      cache,
	}
}

// Name returns the underlying collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// CacheKey is the view-cache key for the visible projection.
func (c *Collection[T]) CacheKey() string {
	return "view:" + c.name
}

// All returns every record, ascending by the ordering field when one is set.
func (c *Collection[T]) All() ([]T, error) {
	records, err := c.query(nil)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}
	return c.mapAll(records), nil
}

// Visible returns only records with isVisible = true, preserving the
// ordering field's ascending order. Results are served from the view cache
// when available.
func (c *Collection[T]) Visible(ctx context.Context) ([]T, error) {
	var cached []T
	if c.cache.Get(ctx, c.CacheKey(), &cached) {
		return cached, nil
	}

	records, err := c.query(dbx.HashExp{"isVisible": true})
	if err != nil {
		return nil, fmt.Errorf("list visible %s: %w", c.name, err)
	}

	out := c.mapAll(records)
	c.cache.Set(ctx, c.CacheKey(), out)
	return out, nil
}

// ByID returns one mapped record.
func (c *Collection[T]) ByID(id string) (T, error) {
	var zero T
	rec, err := c.Record(id)
	if err != nil {
		return zero, err
	}
	return c.mapper(rec), nil
}

// Record returns the raw backend record, for callers that need to merge a
// patch into it.
func (c *Collection[T]) Record(id string) (*core.Record, error) {
	rec, err := c.app.FindRecordById(c.name, id)
	if err != nil {
		return nil, fmt.Errorf("find %s %q: %w", c.name, id, err)
	}
	return rec, nil
}

// Create inserts a new record populated by apply.
func (c *Collection[T]) Create(ctx context.Context, apply func(*core.Record)) (T, error) {
	var zero T

	col, err := c.app.FindCollectionByNameOrId(c.name)
	if err != nil {
		return zero, fmt.Errorf("find collection %s: %w", c.name, err)
	}

	rec := core.NewRecord(col)
	apply(rec)

	if err := c.app.Save(rec); err != nil {
		return zero, fmt.Errorf("create %s: %w", c.name, err)
	}

	c.cache.Invalidate(ctx, c.CacheKey())
	return c.mapper(rec), nil
}

// Update merges apply into the stored record and persists it.
func (c *Collection[T]) Update(ctx context.Context, id string, apply func(*core.Record)) (T, error) {
	var zero T

	rec, err := c.Record(id)
	if err != nil {
		return zero, err
	}
	apply(rec)

	if err := c.app.Save(rec); err != nil {
		return zero, fmt.Errorf("update %s %q: %w", c.name, id, err)
	}

	c.cache.Invalidate(ctx, c.CacheKey())
	return c.mapper(rec), nil
}

// Delete removes the record; files stored on it are removed with it.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	rec, err := c.Record(id)
	if err != nil {
		return err
	}

	if err := c.app.Delete(rec); err != nil {
		return fmt.Errorf("delete %s %q: %w", c.name, id, err)
	}

	c.cache.Invalidate(ctx, c.CacheKey())
	return nil
}

func (c *Collection[T]) query(filter dbx.Expression) ([]*core.Record, error) {
	q := c.app.RecordQuery(c.name)
	if filter != nil {
		q = q.AndWhere(filter)
	}
	if c.orderField != "" {
		q = q.OrderBy(c.orderField + " ASC")
	}

	records := []*core.Record{}
	if err := q.All(&records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Collection[T]) mapAll(records []*core.Record) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		out = append(out, c.mapper(rec))
	}
	return out
}
