// Package codec turns cached values into transport-neutral text and back,
// for hosting layers that expose the cache to other processes.
package codec

import (
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

func Encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrapf(err, "encode %T", v)
	}
	return string(b), nil
}

func Decode[T any](s string) (T, error) {
	var v T
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return v, errors.Wrapf(err, "decode %T", v)
	}
	return v, nil
}
