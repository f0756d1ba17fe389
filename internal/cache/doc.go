// Package cache provides a small generic LRU cache with a soft limit.
//
// The collage renderer keeps intermediate composites in a Cache keyed by the
// versions of the layers that produced them, so re-rendering a project after
// changing its top layer only recomputes the layers that changed.
//
//	c := cache.New[string, *image.Grid](16)
//	c.Set(key, g)
//	g, ok := c.Get(key)
//
// A Cache is safe for concurrent use and must not be copied after creation.
package cache
