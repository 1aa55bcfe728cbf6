package callsite

// FrameMatch is a single stack line interpreted as a call frame.
type FrameMatch struct {
	Name     string
	FilePath string
	Line     int
	Column   int
}

// Context describes where a log call originated. A zero field means the value
// could not be determined.
type Context struct {
	FileName     string `json:"fileName,omitempty"`
	FunctionName string `json:"functionName,omitempty"`
	LineNumber   int    `json:"lineNumber,omitempty"`
	ColumnNumber int    `json:"columnNumber,omitempty"`
}

// IsEmpty reports whether no call site was resolved.
func (c Context) IsEmpty() bool {
	return c == Context{}
}

// State is the walker position in NotCaptured -> Captured -> {Resolved | Exhausted}.
type State uint8

const (
	NotCaptured State = iota
	Captured
	Resolved
	Exhausted
)

func (s State) String() string {
	switch s {
	case NotCaptured:
		return "not-captured"
	case Captured:
		return "captured"
	case Resolved:
		return "resolved"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}
