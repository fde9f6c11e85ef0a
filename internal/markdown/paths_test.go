package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelativePath(t *testing.T) {
	cases := []struct {
		name string
		path string
		cwd  string
		want string
	}{
		{"inside cwd", "/home/u/proj/main.go", "/home/u/proj", "main.go"},
		{"nested", "/home/u/proj/internal/app/app.go", "/home/u/proj", "internal/app/app.go"},
		{"outside cwd", "/home/u/other/x.go", "/home/u/proj", "../other/x.go"},
		{"equals cwd", "/home/u/proj", "/home/u/proj", "."},
		{"empty path", "", "/home/u/proj", ""},
		{"empty cwd", "/home/u/proj/main.go", "", "/home/u/proj/main.go"},
		{"relative input", "main.go", "/home/u/proj", "main.go"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RelativePath(tc.path, tc.cwd))
		})
	}
}
