package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// ErrDataNotFound is returned when no candidate location holds the dictionary.
var ErrDataNotFound = errors.New("dictionary file not found")

// PathResolver finds dictionary files relative to the places a
// wordserve binary is usually started from.
type PathResolver struct {
	executableDir string
	configDir     string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver(configDir string) (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		configDir:     configDir,
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, configDir)
	return pr, nil
}

// ResolveDataFile finds a dictionary file. It tries, in order:
// 1. The path as given (absolute, or relative to the working directory)
// 2. Relative to the executable directory and its parent
// 3. Relative to the config directory
func (pr *PathResolver) ResolveDataFile(path string) (string, error) {
	candidates := pr.candidates(path)
	for _, c := range candidates {
		if stat, err := os.Stat(c); err == nil && !stat.IsDir() {
			log.Debugf("Found dictionary file: %s", c)
			return c, nil
		}
		log.Debugf("Dictionary candidate not found: %s", c)
	}
	return "", fmt.Errorf("%w: %s (tried %d locations)", ErrDataNotFound, path, len(candidates))
}

func (pr *PathResolver) candidates(path string) []string {
	if filepath.IsAbs(path) {
		return []string{path}
	}
	out := []string{path}
	if pr.executableDir != "" {
		out = append(out,
			filepath.Join(pr.executableDir, path),
			filepath.Join(filepath.Dir(pr.executableDir), path),
		)
	}
	if pr.configDir != "" {
		out = append(out, filepath.Join(pr.configDir, path))
	}
	return out
}

