package models

// ImportStyle is how a component binding entered a file.
type ImportStyle string

const (
	Named     ImportStyle = "named"
	Default   ImportStyle = "default"
	Namespace ImportStyle = "namespace"
)

// NamespaceExport is the export name recorded for `import * as X` bindings.
const NamespaceExport = "*"

// ComponentIdentity names a component independently of how a file aliases it.
type ComponentIdentity struct {
	Package string      `json:"package"`
	Export  string      `json:"export"`
	Style   ImportStyle `json:"importStyle"`
}

func (c ComponentIdentity) String() string {
	return c.Package + "#" + c.Export
}

// ImportSpecifier is one binding inside an import statement.
type ImportSpecifier struct {
	Style    ImportStyle
	Imported string // exported name for named imports
	Local    string
}
