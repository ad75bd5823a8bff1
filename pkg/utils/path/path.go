package path

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolve makes p absolute. A leading "~" is expanded to the home directory.
//
// "~user" forms are not expanded.
func Resolve(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, p[1:])
	}
	return filepath.Abs(p)
}
