package models

// FileRecord is the immutable per-file output appended to the record store.
type FileRecord struct {
	File       string   `json:"file"`
	Module     string   `json:"module"`
	Packages   []string `json:"packages"`
	Usage      UsageMap `json:"usage"`
	Imports    []string `json:"imports"`
	TotalProps int      `json:"totalProps"`
}

// IsIntersection reports whether the file imports from two or more tracked packages.
func (f *FileRecord) IsIntersection() bool {
	return len(f.Packages) >= 2
}
