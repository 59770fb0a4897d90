package symmetry

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ankorell/strukta/atoms"
)

// ErrBadCacheSize is returned when NewCachedFinder receives a non-positive size.
var ErrBadCacheSize = errors.New("symmetry: cache size must be positive")

// CachedFinder memoizes successful lookups of an inner Finder in an LRU
// cache keyed by a digest of species, positions, cell, and periodicity.
// Failures are never cached, so a transient outage does not poison later
// calls. Safe for concurrent use (the underlying cache locks internally).
type CachedFinder struct {
	inner Finder
	cache *lru.Cache[string, *Info]
}

// NewCachedFinder wraps inner with an LRU of the given entry count.
func NewCachedFinder(inner Finder, size int) (*CachedFinder, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadCacheSize, size)
	}
	cache, err := lru.New[string, *Info](size)
	if err != nil {
		return nil, fmt.Errorf("symmetry: create cache: %w", err)
	}

	return &CachedFinder{inner: inner, cache: cache}, nil
}

// FindSymmetry returns the cached Info for an identical structure, or
// delegates to the inner finder and caches a successful answer.
func (c *CachedFinder) FindSymmetry(ctx context.Context, set *atoms.AtomSet, cell atoms.Cell) (*Info, error) {
	key := structureDigest(set, cell)
	if info, ok := c.cache.Get(key); ok {
		return info, nil
	}
	info, err := c.inner.FindSymmetry(ctx, set, cell)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, info)

	return info, nil
}

// structureDigest hashes the full structural identity of a lookup.
func structureDigest(set *atoms.AtomSet, cell atoms.Cell) string {
	h := sha256.New()
	var buf [8]byte
	writeFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	for i := 0; i < set.Len(); i++ {
		h.Write([]byte(set.Species(i)))
		h.Write([]byte{0})
		p := set.Position(i)
		writeFloat(p[0])
		writeFloat(p[1])
		writeFloat(p[2])
	}
	basis := cell.Basis()
	for r := 0; r < 3; r++ {
		for col := 0; col < 3; col++ {
			writeFloat(basis[r][col])
		}
	}
	for ax := 0; ax < 3; ax++ {
		if cell.Periodic(ax) {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}
