package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// ErrMalformed wraps backend responses whose body does not decode into the
// expected shape.
var ErrMalformed = errors.New("unexpected backend response")

// FetchList GETs path and decodes a list from any supported envelope.
func FetchList[T any](ctx context.Context, b *Backend, token, path string, query url.Values, keys ...string) ([]T, *Response, error) {
	resp, err := b.Get(ctx, token, path, query)
	if err != nil {
		return nil, resp, err
	}
	list, err := DecodeList[T](resp.Body, keys...)
	if err != nil {
		return nil, resp, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return list, resp, nil
}

// FetchObject GETs path and decodes an object into dst.
func FetchObject(ctx context.Context, b *Backend, token, path string, query url.Values, dst any) error {
	resp, err := b.Get(ctx, token, path, query)
	if err != nil {
		return err
	}
	if err := DecodeObject(resp.Body, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return nil
}
