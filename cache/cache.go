package cache

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/rookery/config"
)

// The cache holds large immutable objects that are expensive to build and
// safe to share between goroutines, such as zobrist key tables. Objects are
// built on first use and live for the rest of the process.

var ErrWrongType = errors.New("cached object has a different type")

type cache struct {
	sync.Mutex
	objects map[string]any
}

// LoadFunc builds the object for key when it is not cached yet.
type LoadFunc[T any] func(cfg *config.Config, key string) (T, error)

var (
	globalObjectCache *cache
	createOnce        sync.Once
)

func (c *cache) get(cfg *config.Config, key string, load func(*config.Config, string) (any, error)) (any, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting-obj-from-cache")
		return obj, nil
	}
	log.Debug().Str("key", key).Msg("loading-into-cache")
	obj, err := load(cfg, key)
	if err != nil {
		return nil, err
	}
	c.objects[key] = obj
	return obj, nil
}

func global() *cache {
	createOnce.Do(func() {
		globalObjectCache = &cache{objects: make(map[string]any)}
	})
	return globalObjectCache
}

// Load returns the object cached under key, calling loadFunc to build it
// the first time. A key must always be loaded with the same type.
func Load[T any](cfg *config.Config, key string, loadFunc LoadFunc[T]) (T, error) {
	var zero T
	obj, err := global().get(cfg, key, func(cfg *config.Config, key string) (any, error) {
		return loadFunc(cfg, key)
	})
	if err != nil {
		return zero, err
	}
	t, ok := obj.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is a %T", ErrWrongType, key, obj)
	}
	return t, nil
}

// Len is the number of cached objects.
func Len() int {
	c := global()
	c.Lock()
	defer c.Unlock()
	return len(c.objects)
}

// Clear drops every cached object.
func Clear() {
	c := global()
	c.Lock()
	defer c.Unlock()
	clear(c.objects)
}
