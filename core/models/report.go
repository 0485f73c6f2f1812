package models

// CrossFileReport is the output of the graph phase.
type CrossFileReport struct {
	RunID                         string                      `json:"runId,omitempty"`
	HubThreshold                  int                         `json:"hubThreshold"`
	IntersectionImporters         []IntersectionImporters     `json:"intersectionImporters"`
	GlobalImportHubs              []ImportHub                 `json:"globalImportHubs"`
	GlobalImportHubByIntersection []HubByIntersection         `json:"globalImportHubByIntersection"`
	HubDependencies               map[string]HubDependency    `json:"hubDependencies"`
	HubUsage                      map[string][]ComponentUsage `json:"hubUsage"`
	HubCategories                 HubCategories               `json:"hubCategories"`
	Cycles                        [][]string                  `json:"cycles"`
}

type IntersectionImporters struct {
	File              string   `json:"file"`
	Packages          []string `json:"packages"`
	DirectImporters   []string `json:"directImporters"`
	IndirectImporters []string `json:"indirectImporters"`
	TotalImporters    int      `json:"totalImporters"`
}

type ImportHub struct {
	File              string   `json:"file"`
	DirectImporters   []string `json:"directImporters"`
	IndirectImporters []string `json:"indirectImporters"`
	TotalImporters    int      `json:"totalImporters"`
}

// Chain is one simple import path, From first and the hub last.
type Chain struct {
	From string   `json:"from"`
	Path []string `json:"path"`
}

type HubByIntersection struct {
	Hub           string   `json:"hub"`
	Intersections []string `json:"intersections"`
	Chains        []Chain  `json:"chains"`
}

type HubDependency struct {
	Category     HubCategory `json:"category,omitempty"`
	Dependencies []string    `json:"dependencies"`
	Dependents   []string    `json:"dependents"`
}

type ComponentUsage struct {
	Package    string `json:"package"`
	Component  string `json:"component"`
	Used       int    `json:"used"`
	PropsTotal int    `json:"propsTotal"`
}

type HubCategory string

const (
	BaseHub         HubCategory = "baseHub"
	MainHub         HubCategory = "mainHub"
	IntermediateHub HubCategory = "intermediateHub"
)

type HubCategories struct {
	BaseHubs         []string `json:"baseHubs"`
	MainHubs         []string `json:"mainHubs"`
	IntermediateHubs []string `json:"intermediateHubs"`
}
