package cache

import (
	"context"
	"reflect"

	"github.com/pkg/errors"
	"github.com/samber/mo"
	"go.uber.org/multierr"
)

/*
Factory computes the value for a missing key in GetOrSet.
Returning mo.None means "there is no value": nothing is cached and
GetOrSet returns mo.None with a nil error.
*/
type Factory[T any] func(ctx context.Context) (mo.Option[T], error)

// FactoryOf adapts a loader that always yields a value.
func FactoryOf[T any](fn func(ctx context.Context) (T, error)) Factory[T] {
	return func(ctx context.Context) (mo.Option[T], error) {
		v, err := fn(ctx)
		if err != nil {
			return mo.None[T](), err
		}
		return mo.Some(v), nil
	}
}

/*
Get returns the live value for key as a T.

  - Missing or expired key: mo.None and a nil error, never ErrNotFound-style failures.
  - Stored value is not a T: ErrTypeMismatch.
  - Cache closed: ErrStoreUnavailable.

A hit restarts the entry's idle window.
*/
func Get[T any](c *ShardedCache, key string) (mo.Option[T], error) {
	v, ok, err := c.read(key, true)
	if err != nil || !ok {
		return mo.None[T](), err
	}
	return as[T](key, v)
}

/*
GetMany looks up every key and returns exactly one result per requested
key; misses map to mo.None. Type mismatches do not stop the batch: the
other keys are still returned and the mismatches come back combined in
one error.
*/
func GetMany[T any](c *ShardedCache, keys []string) (map[string]mo.Option[T], error) {
	out := make(map[string]mo.Option[T], len(keys))
	var errs error
	for _, key := range keys {
		opt, err := Get[T](c, key)
		if errors.Is(err, ErrStoreUnavailable) {
			return nil, err
		}
		errs = multierr.Append(errs, err)
		out[key] = opt
	}
	return out, errs
}

type loaded struct {
	value any
	ok    bool
}

/*
GetOrSet returns the live value for key, or computes it with factory,
stores it with opts and returns it.

  - Hit: factory is not called.
  - factory returns mo.None: nothing is cached, mo.None is returned.
  - factory fails: the error is returned as is, nothing is cached.

Concurrent callers missing on the same key share one factory call; the
first caller's ctx and opts are the ones used. If that ctx is cancelled
while factory runs, every caller waiting on the same key gets the
cancellation error, even when its own ctx is still live. No cache lock
is held while factory runs.
*/
func GetOrSet[T any](ctx context.Context, c *ShardedCache, key string, factory Factory[T], opts ...EntryOption) (mo.Option[T], error) {
	if opt, err := Get[T](c, key); err != nil || opt.IsPresent() {
		return opt, err
	}

	res, err, _ := c.flights.Do(key, func() (any, error) {
		// Another flight may have filled the key between our miss and now.
		if v, ok, err := c.read(key, false); err != nil || ok {
			return loaded{value: v, ok: ok}, err
		}

		c.engine.Metrics.Load()
		opt, err := factory(ctx)
		if err != nil {
			return nil, err
		}
		v, ok := opt.Get()
		if !ok {
			return loaded{}, nil
		}
		if err := c.Set(key, v, opts...); err != nil {
			return nil, err
		}
		return loaded{value: v, ok: true}, nil
	})
	if err != nil {
		return mo.None[T](), err
	}

	l := res.(loaded)
	if !l.ok {
		return mo.None[T](), nil
	}
	return as[T](key, l.value)
}

// as converts a stored value to T. A stored nil is a legitimate value
// for pointer, interface, map, slice, func and chan types.
func as[T any](key string, v any) (mo.Option[T], error) {
	if t, ok := v.(T); ok {
		return mo.Some(t), nil
	}
	want := reflect.TypeFor[T]()
	if v == nil && nillable(want) {
		var zero T
		return mo.Some(zero), nil
	}
	return mo.None[T](), errors.Wrapf(ErrTypeMismatch, "key %q holds %T, requested %s", key, v, want)
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}
