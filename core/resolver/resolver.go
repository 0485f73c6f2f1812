// Package resolver turns import specifiers into canonical, project-relative
// module ids.
package resolver

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/tristendillon/scout/core/config"
)

// Resolution is the canonical form of one import specifier.
type Resolution struct {
	ID       string
	External bool
}

// ResolutionError reports a specifier that cannot be turned into a module id.
type ResolutionError struct {
	Specifier string
	File      string
	Reason    string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s: cannot resolve %q: %s", e.File, e.Specifier, e.Reason)
}

type Resolver struct {
	root       string
	aliases    config.AliasTable
	extensions map[string]bool
}

// New builds a resolver for the project rooted at root (absolute or empty).
// Aliases are matched in declaration order.
func New(root string, aliases config.AliasTable, extensions []string) *Resolver {
	if len(extensions) == 0 {
		extensions = config.DefaultExtensions
	}
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[strings.ToLower(e)] = true
	}
	if root != "" {
		root = filepath.ToSlash(filepath.Clean(root))
	}
	return &Resolver{root: root, aliases: aliases, extensions: exts}
}

// Resolve maps specifier, imported from currentFile, onto a module id.
// currentFile may be absolute or project-relative.
func (r *Resolver) Resolve(specifier, currentFile string) (Resolution, error) {
	spec := strings.ReplaceAll(strings.TrimSpace(specifier), `\`, "/")
	fail := func(reason string) (Resolution, error) {
		return Resolution{}, &ResolutionError{Specifier: specifier, File: currentFile, Reason: reason}
	}

	if spec == "" {
		return fail("empty specifier")
	}
	if strings.ContainsAny(spec, "\x00\n") {
		return fail("specifier contains control characters")
	}

	// NOTE: the first declared alias wins even when a later one is more
	// specific. Overlapping aliases can misresolve; see DESIGN.md.
	for _, alias := range r.aliases {
		prefix := alias.Prefix
		if len(spec) < len(prefix) || !strings.EqualFold(spec[:len(prefix)], prefix) {
			continue
		}
		target := strings.ReplaceAll(alias.Target, `\`, "/")
		if path.IsAbs(target) {
			rel, ok := r.relative(target)
			if !ok {
				return fail(fmt.Sprintf("alias %q points outside the project root", prefix))
			}
			target = rel
		}
		joined := path.Join(target, spec[len(prefix):])
		if escapes(joined) {
			return fail("alias target escapes the project root")
		}
		return Resolution{ID: r.canonical(joined)}, nil
	}

	if isRelative(spec) {
		from, err := r.fileRel(currentFile)
		if err != nil {
			return fail(err.Error())
		}
		joined := path.Join(path.Dir(from), spec)
		if escapes(joined) {
			return fail("relative import escapes the project root")
		}
		return Resolution{ID: r.canonical(joined)}, nil
	}

	if path.IsAbs(spec) {
		rel, ok := r.relative(spec)
		if !ok {
			return fail("absolute import outside the project root")
		}
		return Resolution{ID: r.canonical(rel)}, nil
	}

	return Resolution{ID: spec, External: true}, nil
}

// ModuleID canonicalizes a file path the same way relative imports are, so
// "src/Button/index.tsx" and an import of "./Button" meet on "src/Button".
func (r *Resolver) ModuleID(file string) string {
	rel, err := r.fileRel(file)
	if err != nil {
		rel = filepath.ToSlash(file)
	}
	return r.canonical(rel)
}

// RelPath returns file relative to the project root with forward slashes.
func (r *Resolver) RelPath(file string) (string, error) {
	return r.fileRel(file)
}

func (r *Resolver) fileRel(file string) (string, error) {
	file = filepath.ToSlash(file)
	if !path.IsAbs(file) {
		return path.Clean(file), nil
	}
	rel, ok := r.relative(file)
	if !ok {
		return "", fmt.Errorf("file %s is outside the project root", file)
	}
	return rel, nil
}

func (r *Resolver) relative(abs string) (string, bool) {
	if r.root == "" {
		return "", false
	}
	rel, err := filepath.Rel(filepath.FromSlash(r.root), filepath.FromSlash(abs))
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if escapes(rel) {
		return "", false
	}
	return rel, true
}

func (r *Resolver) canonical(p string) string {
	p = path.Clean(p)
	if ext := path.Ext(p); ext != "" && r.extensions[strings.ToLower(ext)] {
		p = strings.TrimSuffix(p, ext)
	}
	switch {
	case p == "index":
		return "."
	case strings.HasSuffix(p, "/index"):
		return strings.TrimSuffix(p, "/index")
	}
	return p
}

func isRelative(spec string) bool {
	return spec == "." || spec == ".." ||
		strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../")
}

func escapes(p string) bool {
	return p == ".." || strings.HasPrefix(p, "../")
}
