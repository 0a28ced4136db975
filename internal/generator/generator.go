// Package generator builds randomized passwords from character classes.
package generator

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/tuipass/internal/model"
)

// Character pools.
const (
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Digits    = "0123456789"
	Special   = "!@#$%^&*/-+."
)

// legacyNumberMax bounds the random integer used as the legacy numeric pool.
const legacyNumberMax = 1_000_000_000

// maxPrealloc bounds the slice capacity reserved up front for a batch.
const maxPrealloc = 1024

// ErrNoClassSelected is returned when a selection enables no character class.
var ErrNoClassSelected = errors.New("no settings selected")

// Generator produces randomized passwords.
type Generator struct {
	rnd    *rand.Rand
	legacy bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithLegacyPools reproduces the classic pool quirks: the numeric pool is a
// random decimal string and the guaranteed letter ignores the case setting.
func WithLegacyPools(enabled bool) Option {
	return func(g *Generator) {
		g.legacy = enabled
	}
}

// New returns a Generator seeded with the current time.
func New(opts ...Option) *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()), opts...)
}

// NewWithSource returns a Generator drawing from src.
func NewWithSource(src rand.Source, opts ...Option) *Generator {
	g := &Generator{rnd: rand.New(src)}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds a password for sel. It returns false when no class is
// selected. The guaranteed prefix (number, special, letter) is never
// truncated, so the result can be longer than sel.Length.
func (g *Generator) Generate(sel model.FeatureSelection) (string, bool) {
	numbers := g.numberPool()

	var pool strings.Builder
	if sel.Numbers {
		pool.WriteString(numbers)
	}
	if sel.Special {
		pool.WriteString(Special)
	}
	if sel.Letters {
		pool.WriteString(letterPool(sel.BothCases))
	}
	if pool.Len() == 0 {
		return "", false
	}

	var out strings.Builder
	if sel.Numbers {
		out.WriteByte(g.pick(numbers))
	}
	if sel.Special {
		out.WriteByte(g.pick(Special))
	}
	if sel.Letters {
		out.WriteByte(g.pick(g.guaranteedLetters(sel.BothCases)))
	}

	remaining := sel.Length - out.Len()
	if remaining < 0 {
		remaining = 0
	}
	chars := pool.String()
	out.Grow(remaining)
	for i := 0; i < remaining; i++ {
		out.WriteByte(g.pick(chars))
	}
	return out.String(), true
}

// GenerateMany calls Generate count times with the same selection and
// returns the passwords in generation order.
func (g *Generator) GenerateMany(count int, sel model.FeatureSelection) ([]string, error) {
	if count <= 0 {
		return []string{}, nil
	}
	if !sel.HasClass() {
		return nil, ErrNoClassSelected
	}
	result := make([]string, 0, min(count, maxPrealloc))
	for i := 0; i < count; i++ {
		password, _ := g.Generate(sel)
		result = append(result, password)
	}
	return result, nil
}

func (g *Generator) numberPool() string {
	if g.legacy {
		return strconv.Itoa(g.rnd.Intn(legacyNumberMax))
	}
	return Digits
}

func (g *Generator) guaranteedLetters(bothCases bool) string {
	if g.legacy {
		return Uppercase + Lowercase
	}
	return letterPool(bothCases)
}

func (g *Generator) pick(chars string) byte {
	return chars[g.rnd.Intn(len(chars))]
}

func letterPool(bothCases bool) string {
	if bothCases {
		return Uppercase + Lowercase
	}
	return Lowercase
}
