package machine

import (
	"fmt"
	"sort"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/table"
)

// Decode converts a generic mapping of mappings (as produced by YAML or JSON decoders)
// into a Table, issuing state tokens from reg.
//
// Row keys "_", "null" and a nil key address the Null fallback; "blank" addresses Blank.
// Values are lists [next], [next, move] or [next, move, write].
func Decode(raw map[string]any, reg *Registry) (table.Table, error) {
	if raw == nil {
		return nil, &domain.MalformedTableError{Reason: "table is empty"}
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	t := make(table.Table, len(raw))
	for _, name := range names {
		entries, err := asMapping(raw[name])
		if err != nil {
			return nil, &domain.MalformedTableError{Path: name, Reason: err.Error()}
		}

		state := reg.State(name)
		row := make(table.Row, len(entries))
		for key, value := range entries {
			sym := symbolKey(key)
			path := fmt.Sprintf("%s.%s", name, sym)

			tr, err := decodeTransition(value, reg)
			if err != nil {
				return nil, &domain.MalformedTableError{Path: path, Reason: err.Error()}
			}
			if _, dup := row[sym]; dup {
				return nil, &domain.MalformedTableError{Path: path, Reason: "duplicate symbol entry"}
			}
			row[sym] = tr
		}
		t[state] = row
	}

	return t, nil
}

func asMapping(v any) (map[any]any, error) {
	switch m := v.(type) {
	case map[string]any:
		out := make(map[any]any, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, nil
	case map[any]any:
		return m, nil
	}
	return nil, fmt.Errorf("state entry must be a mapping, got %T", v)
}

func symbolKey(k any) domain.Symbol {
	switch k {
	case nil, domain.KeyNull, "null", "NULL":
		return domain.Null
	case domain.KeyBlank:
		return domain.Blank
	}
	return domain.Symbol(fmt.Sprint(k))
}

func decodeTransition(v any, reg *Registry) (domain.Transition, error) {
	parts, ok := v.([]any)
	if !ok {
		return domain.Transition{}, fmt.Errorf("transition must be a list, got %T", v)
	}
	if len(parts) < 1 || len(parts) > 3 {
		return domain.Transition{}, fmt.Errorf("transition has %d elements, want 1 to 3", len(parts))
	}

	next, ok := parts[0].(string)
	if !ok || next == "" {
		return domain.Transition{}, fmt.Errorf("next state must be a non-empty name, got %v", parts[0])
	}
	tr := domain.To(reg.State(next))

	if len(parts) >= 2 && parts[1] != nil {
		s, ok := parts[1].(string)
		if !ok {
			return domain.Transition{}, fmt.Errorf("movement must be a string, got %T", parts[1])
		}
		m, err := domain.ParseMovement(s)
		if err != nil {
			return domain.Transition{}, err
		}
		tr = tr.Moving(m)
	}

	if len(parts) == 3 {
		switch w := parts[2].(type) {
		case nil:
			return domain.Transition{}, fmt.Errorf("write symbol is null; use %q to write a blank", domain.KeyBlank)
		case string:
			if w == domain.KeyBlank || w == domain.BlankGlyph {
				tr = tr.Writing(domain.Blank)
			} else {
				tr = tr.Writing(domain.Symbol(w))
			}
		default:
			tr = tr.Writing(domain.Symbol(fmt.Sprint(w)))
		}
	}

	return tr, nil
}

func sortSymbols(s []domain.Symbol) {
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
}
