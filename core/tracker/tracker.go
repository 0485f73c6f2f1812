// Package tracker binds a file's local import names to tracked component
// identities.
package tracker

import (
	"path"
	"sort"
	"strings"

	"github.com/tristendillon/scout/core/models"
	"github.com/tristendillon/scout/core/usage"
)

// Packages is the ordered list of tracked package names.
type Packages []string

// FindMatchingPackage returns the tracked package spec belongs to: an exact
// name match first, then the first package p for which spec starts with "p/".
func (ps Packages) FindMatchingPackage(spec string) (string, bool) {
	for _, p := range ps {
		if spec == p {
			return p, true
		}
	}
	for _, p := range ps {
		if strings.HasPrefix(spec, p+"/") {
			return p, true
		}
	}
	return "", false
}

// Tracker holds the local bindings of one file. Create one per file with
// New and drop it when the file is done.
type Tracker struct {
	packages Packages
	table    *usage.Table
	bindings map[string]models.ComponentIdentity
	imported map[string]bool
}

func New(packages Packages, table *usage.Table) *Tracker {
	return &Tracker{
		packages: packages,
		table:    table,
		bindings: make(map[string]models.ComponentIdentity),
		imported: make(map[string]bool),
	}
}

// BindImport records the specifiers of one import statement whose source is
// source. It reports whether source belongs to a tracked package.
func (t *Tracker) BindImport(specifiers []models.ImportSpecifier, source string) bool {
	pkg, ok := t.packages.FindMatchingPackage(source)
	if !ok {
		return false
	}
	t.imported[pkg] = true

	for _, s := range specifiers {
		if s.Local == "" {
			continue
		}
		switch s.Style {
		case models.Default:
			id := models.ComponentIdentity{Package: pkg, Export: DefaultExportName(pkg, source), Style: models.Default}
			t.bindings[s.Local] = id
			t.table.Register(id)
		case models.Named:
			name := s.Imported
			if name == "" {
				name = s.Local
			}
			id := models.ComponentIdentity{Package: pkg, Export: name, Style: models.Named}
			t.bindings[s.Local] = id
			t.table.Register(id)
		case models.Namespace:
			// No record yet: a namespace may reach any number of exports,
			// each one is created when a member is first used.
			t.bindings[s.Local] = models.ComponentIdentity{Package: pkg, Export: models.NamespaceExport, Style: models.Namespace}
		}
	}
	return true
}

// Lookup returns the identity bound to local.
func (t *Tracker) Lookup(local string) (models.ComponentIdentity, bool) {
	id, ok := t.bindings[local]
	return id, ok
}

// Member resolves `Local.Member` through a namespace binding, creating the
// member's record on first use.
func (t *Tracker) Member(local, member string) (*models.UsageRecord, bool) {
	ns, ok := t.bindings[local]
	if !ok || ns.Style != models.Namespace || member == "" {
		return nil, false
	}
	return t.table.Upsert(models.ComponentIdentity{Package: ns.Package, Export: member, Style: models.Namespace}), true
}

// Record returns the usage record of a named or default binding.
func (t *Tracker) Record(local string) (*models.UsageRecord, bool) {
	id, ok := t.bindings[local]
	if !ok || id.Style == models.Namespace {
		return nil, false
	}
	return t.table.Upsert(id), true
}

// Packages lists the tracked packages this file imports from, sorted.
func (t *Tracker) Packages() []string {
	out := make([]string, 0, len(t.imported))
	for p := range t.imported {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// DefaultExportName names a default import: the last segment of the sub-path
// after the package, without extension, or the package name itself.
//
//	"@mui/material/Button"          -> "Button"
//	"@mui/material/styles/index.js" -> "styles"
//	"antd"                          -> "antd"
func DefaultExportName(pkg, source string) string {
	sub := strings.Trim(strings.TrimPrefix(source, pkg), "/")
	if sub == "" {
		return pkg
	}
	last := path.Base(sub)
	last = strings.TrimSuffix(last, path.Ext(last))
	if last == "index" {
		if dir := path.Dir(sub); dir != "." {
			last = path.Base(dir)
		} else {
			return pkg
		}
	}
	if last == "" {
		return pkg
	}
	return last
}
