package domain

// Field constants for YAML/JSON machine documents.
const (
	// KeyAccept is the document name of the Accept pseudo-state.
	KeyAccept = "accept"
	// KeyReject is the document name of the Reject pseudo-state.
	KeyReject = "reject"
	// KeyNull is the canonical document key of the wildcard fallback entry.
	KeyNull = "_"
	// KeyBlank is the document key that addresses the Blank symbol explicitly.
	KeyBlank = "blank"
)

// BlankGlyph is how Blank cells are rendered in diagnostics.
const BlankGlyph = "_"
