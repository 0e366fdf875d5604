package zobrist

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/rookery/config"
)

func TestCacheLoadFunc(t *testing.T) {
	is := is.New(t)
	key := CacheKey(8, "a:b")
	is.Equal(key, "zobrist:8:a:b")

	z, err := CacheLoadFunc(config.DefaultConfig(), key)
	is.NoErr(err)
	is.Equal(z.BoardDim(), 8)
	is.Equal(z.PieceKey(3, 4, 1), New(8, SeedFromString("a:b")).PieceKey(3, 4, 1))

	for _, bad := range []string{"zobrist:x:seed", "zobrist:0:seed", "kwg:8:seed", "zobrist:8"} {
		_, err := CacheLoadFunc(config.DefaultConfig(), bad)
		is.True(errors.Is(err, ErrBadCacheKey))
	}
}
