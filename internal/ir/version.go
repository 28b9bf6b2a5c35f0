package ir

// Version constants for the IR schema and the tool.
const (
	// IRVersion is the IR document schema version. Bump on any change to
	// the JSON shape of File or its nodes; cached documents with another
	// version are discarded.
	IRVersion = "1"

	// ToolVersion is the bridgen release version.
	ToolVersion = "0.1.0"
)
