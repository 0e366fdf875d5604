package zobrist

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/domino14/rookery/config"
)

var ErrBadCacheKey = errors.New("bad zobrist cache key")

// CacheKey names the key table for a board size and seed string.
func CacheKey(boardDim int, seed string) string {
	return fmt.Sprintf("zobrist:%d:%s", boardDim, seed)
}

// CacheLoadFunc builds the table named by a CacheKey. The seed is taken
// from the key, not the config.
func CacheLoadFunc(cfg *config.Config, key string) (*Zobrist, error) {
	fields := strings.SplitN(key, ":", 3)
	if len(fields) != 3 || fields[0] != "zobrist" {
		return nil, fmt.Errorf("%w: %q", ErrBadCacheKey, key)
	}
	dim, err := strconv.Atoi(fields[1])
	if err != nil || dim < 1 {
		return nil, fmt.Errorf("%w: %q", ErrBadCacheKey, key)
	}
	return New(dim, SeedFromString(fields[2])), nil
}
