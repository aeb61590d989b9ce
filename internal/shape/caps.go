package shape

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrGlyphLimit is returned when placing a stamp would exceed its cap.
var ErrGlyphLimit = errors.New("glyph limit reached")

// Caps limits how many stamps of each glyph may exist. Missing or
// non-positive entries are unlimited.
type Caps map[Glyph]int

// DefaultCaps allows two M stamps and any number of X stamps.
func DefaultCaps() Caps { return Caps{GlyphM: 2} }

// Check reports whether one more g may be added to a store holding count
// of them.
func (c Caps) Check(g Glyph, count int) error {
	limit, ok := c[g]
	if !ok || limit <= 0 {
		return nil
	}
	if count >= limit {
		return fmt.Errorf("%w: only %d %q stamps allowed", ErrGlyphLimit, limit, string(g))
	}
	return nil
}

func (c Caps) String() string {
	keys := make([]string, 0, len(c))
	for g := range c {
		keys = append(keys, string(g))
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, c[Glyph(k)])
	}
	return strings.Join(parts, ",")
}
