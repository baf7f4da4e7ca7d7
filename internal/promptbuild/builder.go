package promptbuild

import (
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/vandre-sales/mlv-combo-nodes/internal/config"
)

// seedStream fixes the PCG stream so a seed alone determines the sequence.
const seedStream = 0x6d6c765f636f6d62

// Builder resolves an AttributeSet and a request into the final prompt.
type Builder struct {
	cfg config.PromptBuildConfig
}

// NewBuilder creates a new Builder from config.
func NewBuilder(cfg config.PromptBuildConfig) *Builder {
	return &Builder{cfg: cfg.WithDefaults()}
}

// Build resolves selections against set. It never fails; an empty set yields the
// configured placeholder. Identical inputs always produce the same output.
func (b *Builder) Build(set AttributeSet, req BuildRequest) string {
	if set.Empty() {
		return b.cfg.EmptyPlaceholder
	}

	rng := newRand(req.Seed)

	var fragments []fragment
	for _, attr := range set.attrs {
		value := req.Selections[attr.Name]
		if value == RandomSelection {
			value = pick(rng, attr.Values)
		}
		fragments = appendFragment(fragments, attr, value)
	}

	current := normalizeWhitespace(renderFragments(fragments))
	return chainPrompt(req.PreviousPrompt, current)
}

type fragment struct {
	text      string
	separator string
}

func appendFragment(list []fragment, attr AttributeConfig, value string) []fragment {
	if value == "" {
		return list
	}
	return append(list, fragment{
		text:      attr.Prefix + value + attr.Suffix,
		separator: attr.Separator,
	})
}

// renderFragments puts each fragment's separator between it and the next one.
func renderFragments(fragments []fragment) string {
	var out strings.Builder
	for i, f := range fragments {
		if i > 0 {
			out.WriteString(fragments[i-1].separator)
		}
		out.WriteString(f.text)
	}
	return out.String()
}

// normalizeWhitespace collapses whitespace runs to one space and trims the ends.
// The ASCII file, group, record and unit separators count as whitespace.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.FieldsFunc(s, isSpace), " ")
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

func chainPrompt(previous, current string) string {
	previous = strings.TrimSpace(previous)
	switch {
	case previous == "":
		return current
	case current == "":
		return previous
	default:
		return previous + " " + current
	}
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seedStream))
}

// pick draws exactly one value from rng, or returns "" without drawing when values is empty.
func pick(rng *rand.Rand, values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[rng.IntN(len(values))]
}
