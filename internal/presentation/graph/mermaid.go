package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
}

// GenerateMermaid produces a Mermaid flowchart from a machine description.
// It applies semantic styling:
// - Start: ((Circle))
// - Accept / Reject: ([Stadium])
// - Default: [Rectangle]
// Parallel entries between the same pair of states share one edge whose label
// lists every "read/write,move" triple. Overlay styles are applied if provided.
func GenerateMermaid(desc machine.Description, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, state := range desc.States {
		opener, closer := "[", "]"
		if state == desc.Start {
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", sanitizeMermaidID(state), opener, state, closer))
	}

	terminals := make(map[string]bool)
	type edge struct{ from, to string }
	var order []edge
	labels := make(map[edge][]string)

	for _, row := range desc.Rows {
		if row.Next == domain.KeyAccept || row.Next == domain.KeyReject {
			terminals[row.Next] = true
		}
		e := edge{row.State, row.Next}
		if _, seen := labels[e]; !seen {
			order = append(order, e)
		}
		labels[e] = append(labels[e], edgeLabel(row))
	}

	for _, name := range []string{domain.KeyAccept, domain.KeyReject} {
		if terminals[name] {
			sb.WriteString(fmt.Sprintf("    %s([\"%s\"])\n", name, name))
		}
	}

	for _, e := range order {
		label := strings.ReplaceAll(strings.Join(labels[e], "<br/>"), "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", sanitizeMermaidID(e.from), label, sanitizeMermaidID(e.to)))
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.CurrentState != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentState)))
		}
	}

	return sb.String()
}

func edgeLabel(row machine.Row) string {
	write := row.Read
	if row.Write != "" {
		write = row.Write
	}
	move := "S"
	if row.Move != "" {
		move = strings.ToUpper(row.Move[:1])
	}
	return fmt.Sprintf("%s/%s,%s", row.Read, write, move)
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
