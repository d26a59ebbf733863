package urlutil

import "testing"

func TestNormalizeImageURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"already canonical",
			"https://example.com/img/a.png",
			"https://example.com/img/a.png",
		},
		{
			"host lowercased",
			"https://Example.COM/img/a.png",
			"https://example.com/img/a.png",
		},
		{
			"tracking parameters stripped",
			"https://example.com/a.png?utm_source=feed&width=200",
			"https://example.com/a.png?width=200",
		},
		{
			"fragment removed",
			"https://example.com/a.png#section",
			"https://example.com/a.png",
		},
		{
			"trailing slash trimmed",
			"https://example.com/imgs/",
			"https://example.com/imgs",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeImageURL(tt.in)
			if err != nil {
				t.Fatalf("NormalizeImageURL(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeImageURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeImageURLRejects(t *testing.T) {
	for _, in := range []string{
		"ftp://example.com/a.png",
		"javascript:alert(1)",
		"://bad",
	} {
		if _, err := NormalizeImageURL(in); err == nil {
			t.Errorf("NormalizeImageURL(%q) accepted, want error", in)
		}
	}
}
