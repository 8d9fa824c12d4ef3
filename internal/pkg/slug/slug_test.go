package slug_test

import (
	"testing"

	"github.com/Leopold1975/blog_platform/internal/pkg/slug"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"My Title", "my-title"},
		{"  Hello,   World!  ", "hello-world"},
		{"Go 1.22 released", "go-1-22-released"},
		{"Crème brûlée", "creme-brulee"},
		{"already-a-slug", "already-a-slug"},
		{"tabs\tand\nnewlines", "tabs-and-newlines"},
		{"!!!", ""},
	}

	for _, tc := range tests {
		t.Run(tc.title, func(t *testing.T) {
			require.Equal(t, tc.want, slug.Make(tc.title))
		})
	}
}
