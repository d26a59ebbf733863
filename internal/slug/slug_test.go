package slug

import (
	"errors"
	"testing"
)

func TestMake(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello, World!!", "hello-world"},
		{"Ten Go Tips", "ten-go-tips"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Multiple   spaces", "multiple-spaces"},
		{"snake_case_title", "snake-case-title"},
		{"Already-Hyphenated -- Title", "already-hyphenated-title"},
		{"Go 1.24 Released", "go-124-released"},
		{"100% Coverage?", "100-coverage"},
		{"!!!", Fallback},
		{"", Fallback},
		{"---", Fallback},
	}
	for _, tt := range tests {
		if got := Make(tt.title); got != tt.want {
			t.Errorf("Make(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

// takenSet reports candidates present in the set, standing in for the store
// lookup that excludes the post's own row.
func takenSet(slugs ...string) func(string) (bool, error) {
	set := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		set[s] = true
	}
	return func(candidate string) (bool, error) {
		return set[candidate], nil
	}
}

func TestUnique(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		taken []string
		want  string
	}{
		{"no collision", "hello-world", nil, "hello-world"},
		{"one collision", "hello-world", []string{"hello-world"}, "hello-world-1"},
		{"two collisions", "hello-world", []string{"hello-world", "hello-world-1"}, "hello-world-2"},
		{"gap after suffixes", "hello-world", []string{"hello-world", "hello-world-1", "hello-world-3"}, "hello-world-2"},
		{"own slug excluded by the lookup", "hello-world", []string{"other-post"}, "hello-world"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unique(tt.base, takenSet(tt.taken...))
			if err != nil {
				t.Fatalf("Unique: %v", err)
			}
			if got != tt.want {
				t.Errorf("Unique(%q) = %q, want %q", tt.base, got, tt.want)
			}
		})
	}
}

func TestUniquePropagatesLookupError(t *testing.T) {
	boom := errors.New("boom")
	if _, err := Unique("hello-world", func(string) (bool, error) {
		return false, boom
	}); !errors.Is(err, boom) {
		t.Errorf("lookup error not surfaced: %v", err)
	}
}
