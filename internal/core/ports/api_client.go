package ports

import "context"

// APIClient issues JSON requests against the backend base URL. Endpoints are
// relative paths, optionally carrying a query string. A nil out discards the
// response body.
type APIClient interface {
	Get(ctx context.Context, endpoint string, out any) error
	Post(ctx context.Context, endpoint string, body, out any) error
	Put(ctx context.Context, endpoint string, body, out any) error
	Delete(ctx context.Context, endpoint string) error
	GetRaw(ctx context.Context, endpoint string) ([]byte, error)
}

// SessionStorage is the persisted key/value bridge that backs rehydration.
type SessionStorage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Navigator moves the console to another route.
type Navigator interface {
	Navigate(path string)
}
