package domain

import (
	"reflect"
	"testing"
)

func TestMergeTags(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		added    []string
		want     []string
	}{
		{
			name:     "union with overlap",
			existing: []string{"a", "c"},
			added:    []string{"a", "b"},
			want:     []string{"a", "c", "b"},
		},
		{
			name:     "empty existing",
			existing: nil,
			added:    []string{"x"},
			want:     []string{"x"},
		},
		{
			name:     "nothing added",
			existing: []string{"x", "y"},
			added:    nil,
			want:     []string{"x", "y"},
		},
		{
			name:     "duplicates inside added",
			existing: []string{"a"},
			added:    []string{"b", "b", "a"},
			want:     []string{"a", "b"},
		},
		{
			name:     "empty strings dropped",
			existing: []string{"a", ""},
			added:    []string{"", "b"},
			want:     []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeTags(tt.existing, tt.added)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MergeTags() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistinctTags(t *testing.T) {
	bookmarks := []*Bookmark{
		{ID: "1", Tags: []string{"go", "web"}},
		{ID: "2", Tags: []string{"web", "news"}},
		{ID: "3", Tags: []string{"secret"}, IsTrashed: true},
		{ID: "4"},
	}

	got := DistinctTags(bookmarks)
	want := []string{"go", "news", "web"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DistinctTags() = %v, want %v", got, want)
	}
}

func TestColorForDeterministic(t *testing.T) {
	first := ColorFor("folder-abc")
	for i := 0; i < 10; i++ {
		if got := ColorFor("folder-abc"); got != first {
			t.Fatalf("ColorFor() not deterministic: %q vs %q", got, first)
		}
	}
}
