package cache

import "os"

// MakeCache picks the cache backing for the process. A directory can be
// forced with PANTRYCHEF_CACHE_DIR; otherwise ./cache is used.
func MakeCache() Cache {
	dir := os.Getenv("PANTRYCHEF_CACHE_DIR")
	if dir == "" {
		dir = "cache"
	}
	return NewFileCache(dir)
}
