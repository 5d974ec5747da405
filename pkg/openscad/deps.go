package openscad

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// LibraryPathEnv is the environment variable OpenSCAD reads extra library
// directories from.
const LibraryPathEnv = "OPENSCADPATH"

var (
	useRe     = regexp.MustCompile(`^\s*use\s*<([^>]+)>`)
	includeRe = regexp.MustCompile(`^\s*include\s*<([^>]+)>`)
)

// Edge is a use or include relation between two scripts.
type Edge struct {
	From    string
	To      string
	Include bool // include <> rather than use <>
}

// DepGraph holds the files reachable from a root script through use and
// include statements. Paths are absolute.
type DepGraph struct {
	Root  string
	Files []string // discovery order, Root first
	Edges []Edge
}

// LibraryDirs returns the directories listed in $OPENSCADPATH.
func LibraryDirs() []string {
	var dirs []string
	for _, d := range filepath.SplitList(os.Getenv(LibraryPathEnv)) {
		if d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// ResolveDeps walks script and everything it uses or includes. Relative
// references resolve against the referencing file's directory first, then
// against libDirs in order. Unresolvable references are kept as edges to
// the path they would have had next to the referencing file, but are not
// walked.
func ResolveDeps(script string, libDirs []string) (*DepGraph, error) {
	root, err := filepath.Abs(script)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", script, err)
	}

	g := &DepGraph{Root: root}
	visited := make(map[string]bool)
	if err := g.walk(root, libDirs, visited); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *DepGraph) walk(file string, libDirs []string, visited map[string]bool) error {
	if visited[file] {
		return nil
	}
	visited[file] = true
	g.Files = append(g.Files, file)

	refs, err := parseRefs(file)
	if err != nil {
		return err
	}

	for _, ref := range refs {
		dep, found := resolveRef(ref.path, filepath.Dir(file), libDirs)
		g.Edges = append(g.Edges, Edge{From: file, To: dep, Include: ref.include})
		if !found {
			continue
		}
		if err := g.walk(dep, libDirs, visited); err != nil {
			return err
		}
	}
	return nil
}

type ref struct {
	path    string
	include bool
}

func parseRefs(file string) ([]ref, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file, err)
	}
	defer f.Close()

	var refs []ref
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		if m := useRe.FindStringSubmatch(line); m != nil {
			refs = append(refs, ref{path: m[1]})
		}
		if m := includeRe.FindStringSubmatch(line); m != nil {
			refs = append(refs, ref{path: m[1], include: true})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return refs, nil
}

func resolveRef(p, dir string, libDirs []string) (string, bool) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), fileExists(p)
	}

	local := filepath.Clean(filepath.Join(dir, p))
	if fileExists(local) {
		return local, true
	}
	for _, lib := range libDirs {
		candidate := filepath.Clean(filepath.Join(lib, p))
		if fileExists(candidate) {
			if abs, err := filepath.Abs(candidate); err == nil {
				return abs, true
			}
			return candidate, true
		}
	}
	return local, false
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

// Missing returns the edge targets that could not be resolved.
func (g *DepGraph) Missing() []string {
	known := make(map[string]bool, len(g.Files))
	for _, f := range g.Files {
		known[f] = true
	}
	var missing []string
	seen := make(map[string]bool)
	for _, e := range g.Edges {
		if !known[e.To] && !seen[e.To] {
			seen[e.To] = true
			missing = append(missing, e.To)
		}
	}
	return missing
}
