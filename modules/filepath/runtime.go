package filepathmod

import (
	"path/filepath"

	"github.com/rubiojr/sandscript/interop"
)

// --- filepath module ---

type Filepath struct{}

func (*Filepath) Join(h interop.Host, a, b string) string {
	return filepath.Join(a, b)
}

func (*Filepath) Base(h interop.Host, path string) string {
	return filepath.Base(path)
}

func (*Filepath) Dir(h interop.Host, path string) string {
	return filepath.Dir(path)
}

func (*Filepath) Ext(h interop.Host, path string) string {
	return filepath.Ext(path)
}

func (*Filepath) Clean(h interop.Host, path string) string {
	return filepath.Clean(path)
}

func (*Filepath) Abs(h interop.Host, path string) (string, error) {
	return filepath.Abs(path)
}

func (*Filepath) IsAbs(h interop.Host, path string) bool {
	return filepath.IsAbs(path)
}
