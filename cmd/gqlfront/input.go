package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hanpama/gqlfront/internal/language/source"
)

// readSources loads documents named on the command line. "-" reads stdin;
// other arguments may be globs.
func (a *app) readSources(args []string) ([]*source.Source, error) {
	var out []*source.Source
	for _, arg := range args {
		if arg == "-" {
			body, err := io.ReadAll(a.stdin)
			if err != nil {
				return nil, fmt.Errorf("read stdin: %w", err)
			}
			out = append(out, source.New(string(body), source.WithName("<stdin>")))
			continue
		}
		paths, err := expand(arg)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			src, err := readFile(path)
			if err != nil {
				return nil, err
			}
			out = append(out, src)
		}
	}
	return out, nil
}

func expand(pattern string) ([]string, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%s: %w", pattern, os.ErrNotExist)
	}
	return paths, nil
}

func readFile(path string) (*source.Source, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return source.New(string(body), source.WithName(path)), nil
}
