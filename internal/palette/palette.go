// Package palette assigns color tokens to new ledger entries.
package palette

import (
	"fmt"
	"math/rand/v2"

	"finboard/internal/core"
)

const (
	PolicyRandom = "random"
	PolicyRotate = "rotate"
)

// Default is the fixed palette new entries draw from.
var Default = []core.ColorToken{
	"#c084fc",
	"#d8b4fe",
	"#fde047",
	"#86efac",
	"#6ee7b7",
	"#fbbf24",
	"#fb923c",
}

// Allocator picks the color for a newly created record of a category.
type Allocator interface {
	Assign(category core.Category) core.ColorToken
}

// Random picks uniformly from the palette on every call. Two records can end
// up with the same color.
type Random struct {
	palette []core.ColorToken
	rng     *rand.Rand
}

// NewRandom returns a Random allocator. A nil src seeds from the runtime.
func NewRandom(palette []core.ColorToken, src rand.Source) *Random {
	if len(palette) == 0 {
		palette = Default
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Random{palette: append([]core.ColorToken(nil), palette...), rng: rand.New(src)}
}

func (r *Random) Assign(core.Category) core.ColorToken {
	return r.palette[r.rng.IntN(len(r.palette))]
}

// Rotating walks the palette in order, keeping a separate position per
// category so consecutive entries of one ledger never share a color until the
// palette wraps.
type Rotating struct {
	palette []core.ColorToken
	next    map[core.Category]int
}

func NewRotating(palette []core.ColorToken) *Rotating {
	if len(palette) == 0 {
		palette = Default
	}
	return &Rotating{
		palette: append([]core.ColorToken(nil), palette...),
		next:    make(map[core.Category]int),
	}
}

func (r *Rotating) Assign(category core.Category) core.ColorToken {
	i := r.next[category]
	r.next[category] = (i + 1) % len(r.palette)
	return r.palette[i]
}

// New builds the allocator for a configured policy.
func New(policy string, palette []core.ColorToken) (Allocator, error) {
	switch policy {
	case "", PolicyRandom:
		return NewRandom(palette, nil), nil
	case PolicyRotate:
		return NewRotating(palette), nil
	default:
		return nil, fmt.Errorf("unknown color policy %q", policy)
	}
}

// Contains reports whether token is part of palette.
func Contains(palette []core.ColorToken, token core.ColorToken) bool {
	for _, p := range palette {
		if p == token {
			return true
		}
	}
	return false
}
