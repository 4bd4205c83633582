package cache

import (
	"time"

	gocache "github.com/Code-Hex/go-generics-cache"
)

const defaultExpiry = time.Minute * 5

var store = gocache.New[string, any]()

func Get[T any](key string) *T {
	i, ok := store.Get(key)
	if !ok {
		return nil
	}
	return i.(*T)
}

func Set[T any](key string, value *T) {
	store.Set(key, value, gocache.WithExpiration(defaultExpiry))
}

func GetOrSet[T any](key string, factory func() (*T, error)) (*T, error) {
	v := Get[T](key)
	if v != nil {
		return v, nil
	}
	v, err := factory()
	if err != nil {
		return nil, err
	}
	Set(key, v)
	return v, nil
}
