// Package modeldir resolves the --model-dir flag to a concrete model
// name: the directory is expected to hold exactly one model file (any
// regular file); its base name, minus extension, becomes the model
// name reported in completion responses.
package modeldir

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/AleutianAI/aleutian-infer-core/pkg/apierr"
)

// Discover lists dir and returns the name of its first regular file,
// with its extension stripped. An empty or unreadable directory is an
// error; the model file's content is never inspected, since real
// inference is outside this exercise's scope.
func Discover(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", apierr.Wrap(500, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		return strings.TrimSuffix(name, filepath.Ext(name)), nil
	}
	return "", apierr.New(500, "no model file found in %s", dir)
}
