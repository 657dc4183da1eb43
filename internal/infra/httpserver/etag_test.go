package httpserver

import "testing"

func TestGenerateETagDeterministic(t *testing.T) {
	a := GenerateETag([]byte(`{"success":true}`))
	b := GenerateETag([]byte(`{"success":true}`))
	if a != b {
		t.Fatalf("same body produced different tags: %s vs %s", a, b)
	}
	if a[0] != '"' || a[len(a)-1] != '"' {
		t.Fatalf("tag not quoted: %s", a)
	}
	if c := GenerateETag([]byte(`{"success":false}`)); c == a {
		t.Fatal("different bodies produced the same tag")
	}
}

func TestETagMatches(t *testing.T) {
	etag := GenerateETag([]byte("payload"))

	tests := []struct {
		name        string
		ifNoneMatch string
		want        bool
	}{
		{"empty header", "", false},
		{"exact match", etag, true},
		{"wildcard", "*", true},
		{"weak validator", "W/" + etag, true},
		{"in list", `"other", ` + etag, true},
		{"no match", `"other"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ETagMatches(tt.ifNoneMatch, etag); got != tt.want {
				t.Fatalf("ETagMatches(%q) = %v, want %v", tt.ifNoneMatch, got, tt.want)
			}
		})
	}
}
