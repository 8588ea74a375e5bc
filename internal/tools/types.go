package tools

// Tool identifies one supported external build tool. The set is closed:
// adding a tool means extending every lookup in defs.go and releases.go.
type Tool int

const (
	Sass Tool = iota + 1
	WasmBindgen
	WasmOpt
)

// InstallKey is the unit of install deduplication.
type InstallKey struct {
	Tool    Tool
	Version string
}

func (k InstallKey) String() string {
	return k.Tool.Name() + "-" + k.Version
}

type Source string

const (
	SourceUnknown Source = ""
	SourceCache   Source = "cache"
	SourceSystem  Source = "system"
)

// Status captures the resolved state for a managed tool.
type Status struct {
	Tool      string   `json:"tool"`
	Version   string   `json:"version,omitempty"`
	Source    Source   `json:"source"`
	Path      string   `json:"path,omitempty"`
	Satisfied bool     `json:"satisfied"`
	URL       string   `json:"url,omitempty"`
	Cached    []string `json:"cached,omitempty"`
	Error     string   `json:"error,omitempty"`
	Notes     []string `json:"notes,omitempty"`
}

// Stage names a step of a Get call as reported to a ProgressReporter.
type Stage string

const (
	StageProbing     Stage = "probing"
	StageSystem      Stage = "system"
	StageCached      Stage = "cached"
	StageDownloading Stage = "downloading"
	StageInstalling  Stage = "installing"
	StageReady       Stage = "ready"
	StageFailed      Stage = "failed"
)

// ProgressReporter receives stage transitions. Implementations must be safe
// for concurrent use; one reporter is shared by every in-flight Get.
type ProgressReporter interface {
	Stage(key InstallKey, stage Stage, detail string)
}

type noopReporter struct{}

func (noopReporter) Stage(InstallKey, Stage, string) {}
