package osmod

import (
	"os"

	"github.com/rubiojr/sandscript/interop"
)

// --- os module ---

type OS struct{}

func (*OS) Getenv(h interop.Host, name string) string {
	return os.Getenv(name)
}

func (*OS) Setenv(h interop.Host, name, value string) error {
	return os.Setenv(name, value)
}

func (*OS) FileExists(h interop.Host, path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (*OS) IsDir(h interop.Host, path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (*OS) ReadFile(h interop.Host, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (*OS) WriteFile(h interop.Host, path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func (*OS) Cwd(h interop.Host) (string, error) {
	return os.Getwd()
}
