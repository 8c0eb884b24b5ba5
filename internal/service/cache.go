package service

import "context"

// ContentCache holds public read snapshots. Implementations swallow their
// own failures; a miss always falls back to the repository.
type ContentCache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any)
	Delete(ctx context.Context, keys ...string)
}

type noCache struct{}

func (noCache) Get(context.Context, string, any) bool { return false }
func (noCache) Set(context.Context, string, any)       {}
func (noCache) Delete(context.Context, ...string)      {}
