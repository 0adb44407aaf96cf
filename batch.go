package cache

import (
	"context"
	"maps"
	"slices"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// SetMany applies Set to every pair with the same options. The batch is
// not atomic: pairs that were written stay written when others fail, and
// every failure is returned in the combined error.
func (c *ShardedCache) SetMany(ctx context.Context, entries map[string]any, opts ...EntryOption) error {
	return c.fanOut(ctx, slices.Sorted(maps.Keys(entries)), func(key string) error {
		return c.Set(key, entries[key], opts...)
	})
}

// UpdateMany applies Update to every pair with the same options.
func (c *ShardedCache) UpdateMany(ctx context.Context, entries map[string]any, opts ...EntryOption) error {
	return c.fanOut(ctx, slices.Sorted(maps.Keys(entries)), func(key string) error {
		return c.Update(key, entries[key], opts...)
	})
}

// RemoveMany applies Remove to every key.
func (c *ShardedCache) RemoveMany(ctx context.Context, keys []string) error {
	return c.fanOut(ctx, keys, c.Remove)
}

/*
fanOut runs fn for every key on at most BatchConcurrency goroutines and
returns once all of them finished. Keys that had not started when ctx was
cancelled are skipped and report ctx.Err().
*/
func (c *ShardedCache) fanOut(ctx context.Context, keys []string, fn func(string) error) error {
	if c.closed.Load() {
		return ErrStoreUnavailable
	}

	errs := make([]error, len(keys))
	var g errgroup.Group
	g.SetLimit(c.cfg.BatchConcurrency)

	for i, key := range keys {
		g.Go(func() error {
			err := ctx.Err()
			if err == nil {
				err = fn(key)
			}
			if err != nil {
				errs[i] = errors.Wrapf(err, "key %q", key)
			}
			return nil
		})
	}
	_ = g.Wait()

	return multierr.Combine(errs...)
}
