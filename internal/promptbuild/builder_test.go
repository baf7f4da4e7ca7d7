package promptbuild

import (
	"strings"
	"testing"

	"github.com/vandre-sales/mlv-combo-nodes/internal/config"
)

func twoAttributes() AttributeSet {
	return NewAttributeSet(
		AttributeConfig{Name: "a", Values: []string{"x"}, Separator: "-"},
		AttributeConfig{Name: "b", Values: []string{"y"}, Separator: "+"},
	)
}

func TestBuildJoinsFragmentsWithTheirOwnSeparator(t *testing.T) {
	b := NewBuilder(configForTest())

	out := b.Build(twoAttributes(), BuildRequest{Selections: Selections{"a": "x", "b": "y"}})
	if out != "x-y" {
		t.Fatalf("expected %q, got %q", "x-y", out)
	}
}

func TestBuildSkipsEmptyAndMissingSelections(t *testing.T) {
	b := NewBuilder(configForTest())

	tests := []struct {
		name       string
		selections Selections
		want       string
	}{
		{name: "empty first", selections: Selections{"a": "", "b": "y"}, want: "y"},
		{name: "missing second", selections: Selections{"a": "x"}, want: "x"},
		{name: "nothing selected", selections: nil, want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.Build(twoAttributes(), BuildRequest{Selections: tc.selections}); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestBuildWrapsValueWithPrefixAndSuffix(t *testing.T) {
	set := NewAttributeSet(
		AttributeConfig{Name: "hair", Values: []string{"red"}, Prefix: "with ", Suffix: " hair", Separator: ", "},
		AttributeConfig{Name: "eyes", Values: []string{"green"}, Suffix: " eyes", Separator: " "},
	)

	out := NewBuilder(configForTest()).Build(set, BuildRequest{Selections: Selections{"hair": "red", "eyes": "green"}})
	if out != "with red hair, green eyes" {
		t.Fatalf("unexpected prompt %q", out)
	}
}

func TestBuildCollapsesWhitespace(t *testing.T) {
	set := NewAttributeSet(
		AttributeConfig{Name: "a", Values: []string{"foo   bar"}, Prefix: "  ", Separator: "\n\t"},
		AttributeConfig{Name: "b", Values: []string{"baz"}, Suffix: "   ", Separator: " "},
	)

	out := NewBuilder(configForTest()).Build(set, BuildRequest{Selections: Selections{"a": "foo   bar", "b": "baz"}})
	if out != "foo bar baz" {
		t.Fatalf("expected %q, got %q", "foo bar baz", out)
	}
}

func TestBuildCollapsesControlSeparators(t *testing.T) {
	set := NewAttributeSet(
		AttributeConfig{Name: "a", Values: []string{"x\x1cy"}, Separator: "\x1f"},
		AttributeConfig{Name: "b", Values: []string{"z"}, Suffix: "\x1d\x1e", Separator: " "},
	)

	out := NewBuilder(configForTest()).Build(set, BuildRequest{Selections: Selections{"a": "x\x1cy", "b": "z"}})
	if out != "x y z" {
		t.Fatalf("expected %q, got %q", "x y z", out)
	}
}

func TestBuildChainsPreviousPrompt(t *testing.T) {
	set := NewAttributeSet(AttributeConfig{Name: "a", Values: []string{"world"}, Separator: " "})
	b := NewBuilder(configForTest())

	tests := []struct {
		name     string
		previous string
		value    string
		want     string
	}{
		{name: "both present", previous: "hello", value: "world", want: "hello world"},
		{name: "previous trimmed", previous: "  hello \n", value: "world", want: "hello world"},
		{name: "blank previous", previous: "  ", value: "world", want: "world"},
		{name: "empty current", previous: "hello", value: "", want: "hello"},
		{name: "neither", previous: "", value: "", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := b.Build(set, BuildRequest{
				PreviousPrompt: tc.previous,
				Selections:     Selections{"a": tc.value},
			})
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestBuildEmptySetReturnsPlaceholder(t *testing.T) {
	out := NewBuilder(configForTest()).Build(AttributeSet{}, BuildRequest{PreviousPrompt: "hello"})
	if out != config.DefaultEmptyPlaceholder {
		t.Fatalf("expected placeholder, got %q", out)
	}

	cfg := configForTest()
	cfg.EmptyPlaceholder = "nothing configured"
	if out := NewBuilder(cfg).Build(NewAttributeSet(), BuildRequest{}); out != "nothing configured" {
		t.Fatalf("expected custom placeholder, got %q", out)
	}
}

func TestBuildPassesUnknownSelectionsThrough(t *testing.T) {
	out := NewBuilder(configForTest()).Build(twoAttributes(), BuildRequest{Selections: Selections{"a": "custom", "b": "y"}})
	if out != "custom-y" {
		t.Fatalf("expected pass-through value, got %q", out)
	}
}

func randomSet() AttributeSet {
	return NewAttributeSet(
		AttributeConfig{Name: "hair", Values: []string{"red", "blue", "black", "white"}, Separator: ", "},
		AttributeConfig{Name: "eyes", Values: []string{"green", "brown", "grey"}, Separator: ", "},
		AttributeConfig{Name: "mood", Values: []string{"calm", "angry"}, Separator: " "},
	)
}

func allRandom(set AttributeSet) Selections {
	sel := Selections{}
	for _, name := range set.Names() {
		sel[name] = RandomSelection
	}
	return sel
}

func TestBuildRandomIsReproducibleForASeed(t *testing.T) {
	b := NewBuilder(configForTest())
	set := randomSet()

	for seed := uint64(0); seed < 50; seed++ {
		req := BuildRequest{Seed: seed, Selections: allRandom(set)}
		first := b.Build(set, req)
		second := b.Build(set, req)
		if first != second {
			t.Fatalf("seed %d: expected identical output, got %q and %q", seed, first, second)
		}
		if first == "" {
			t.Fatalf("seed %d: expected a non-empty prompt", seed)
		}
	}
}

func TestBuildRandomVariesAcrossSeeds(t *testing.T) {
	b := NewBuilder(configForTest())
	set := randomSet()

	seen := make(map[string]struct{})
	for seed := uint64(0); seed < 64; seed++ {
		seen[b.Build(set, BuildRequest{Seed: seed, Selections: allRandom(set)})] = struct{}{}
	}
	if len(seen) < 2 {
		t.Fatalf("expected different seeds to produce different prompts")
	}
}

func TestBuildRandomSingleCandidateIgnoresSeed(t *testing.T) {
	b := NewBuilder(configForTest())
	set := NewAttributeSet(AttributeConfig{Name: "only", Values: []string{"solo"}, Separator: " "})

	for _, seed := range []uint64{0, 1, 42, 1<<64 - 1} {
		if out := b.Build(set, BuildRequest{Seed: seed, Selections: allRandom(set)}); out != "solo" {
			t.Fatalf("seed %d: expected %q, got %q", seed, "solo", out)
		}
	}
}

func TestBuildRandomOverEmptyCandidatesContributesNothing(t *testing.T) {
	b := NewBuilder(configForTest())
	withEmpty := NewAttributeSet(
		AttributeConfig{Name: "none", Separator: "|"},
		AttributeConfig{Name: "hair", Values: []string{"red", "blue", "black", "white"}, Separator: " "},
	)
	withoutEmpty := NewAttributeSet(
		AttributeConfig{Name: "hair", Values: []string{"red", "blue", "black", "white"}, Separator: " "},
	)

	for seed := uint64(0); seed < 20; seed++ {
		got := b.Build(withEmpty, BuildRequest{Seed: seed, Selections: allRandom(withEmpty)})
		want := b.Build(withoutEmpty, BuildRequest{Seed: seed, Selections: allRandom(withoutEmpty)})
		if got != want {
			t.Fatalf("seed %d: empty candidate list should neither contribute nor draw: %q vs %q", seed, got, want)
		}
	}
}

func TestBuildFixedSelectionDoesNotDraw(t *testing.T) {
	b := NewBuilder(configForTest())
	set := NewAttributeSet(
		AttributeConfig{Name: "a", Values: []string{"a1", "a2", "a3", "a4", "a5"}, Separator: " "},
		AttributeConfig{Name: "b", Values: []string{"fixed", "other"}, Separator: " "},
		AttributeConfig{Name: "c", Values: []string{"c1", "c2", "c3", "c4", "c5"}, Separator: " "},
	)

	for seed := uint64(0); seed < 50; seed++ {
		withFixed := b.Build(set, BuildRequest{Seed: seed, Selections: Selections{"a": RandomSelection, "b": "fixed", "c": RandomSelection}})
		withoutFixed := b.Build(set, BuildRequest{Seed: seed, Selections: Selections{"a": RandomSelection, "c": RandomSelection}})

		fields := strings.Fields(withFixed)
		if len(fields) != 3 || fields[1] != "fixed" {
			t.Fatalf("seed %d: unexpected prompt %q", seed, withFixed)
		}
		if got := fields[0] + " " + fields[2]; got != withoutFixed {
			t.Fatalf("seed %d: fixed selection changed the random picks: %q vs %q", seed, withFixed, withoutFixed)
		}
	}
}

func TestBuildRandomPicksListedCandidate(t *testing.T) {
	set := NewAttributeSet(AttributeConfig{Name: "hair", Values: []string{"red", "blue"}, Separator: " "})
	b := NewBuilder(configForTest())

	for seed := uint64(0); seed < 20; seed++ {
		out := b.Build(set, BuildRequest{Seed: seed, Selections: allRandom(set)})
		if out != "red" && out != "blue" {
			t.Fatalf("seed %d: unexpected value %q", seed, out)
		}
	}
}

func TestAttributeSetIsReadOnly(t *testing.T) {
	set := twoAttributes()

	attrs := set.Attributes()
	attrs[0].Values[0] = "mutated"
	attrs[0].Name = "changed"

	got, ok := set.Lookup("a")
	if !ok || got.Values[0] != "x" {
		t.Fatalf("expected set to be unaffected by caller mutation, got %#v", got)
	}
	if _, ok := set.Lookup("changed"); ok {
		t.Fatalf("expected renamed copy not to leak into the set")
	}
}
