package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// Problems crawls the machine's table from its start state and reports
// unreachable states, states that can never halt, and (state, symbol) pairs
// over the alphabet plus Blank that would raise a missing transition.
//
// Definitions without a table only get the gap check.
func Problems(def *machine.Definition) []string {
	var problems []string

	// 1. Crawler
	visited := map[domain.State]bool{def.Start(): true}
	queue := []domain.State{def.Start()}
	edges := make(map[domain.State][]domain.State)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range def.Targets(current) {
			edges[current] = append(edges[current], next)
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	hasTable := def.Table() != nil
	if hasTable {
		for _, s := range def.States() {
			if !visited[s] {
				problems = append(problems, fmt.Sprintf("state '%s' is unreachable from '%s'", s, def.Start()))
			}
		}

		// 2. Halting paths: walk the reversed edges back from the terminal states.
		canHalt := make(map[domain.State]bool)
		changed := true
		for changed {
			changed = false
			for from, targets := range edges {
				if canHalt[from] {
					continue
				}
				for _, to := range targets {
					if to.IsTerminal() || canHalt[to] {
						canHalt[from] = true
						changed = true
						break
					}
				}
			}
		}
		for _, s := range def.States() {
			if visited[s] && !canHalt[s] {
				problems = append(problems, fmt.Sprintf("state '%s' can never reach accept or reject", s))
			}
		}
	}

	// 3. Gaps
	symbols := append([]domain.Symbol{domain.Blank}, def.Alphabet()...)
	for _, s := range def.States() {
		if hasTable && !visited[s] {
			continue
		}
		for _, sym := range symbols {
			_, err := def.Transition(s, sym)
			var missing *domain.MissingTransitionError
			if errors.As(err, &missing) {
				problems = append(problems, fmt.Sprintf("state '%s' has no transition for '%s'", s, sym))
			}
		}
	}

	return problems
}

// ValidateMachine returns an error listing every problem found, or nil.
func ValidateMachine(def *machine.Definition) error {
	problems := Problems(def)
	if len(problems) > 0 {
		return fmt.Errorf("found %d problems:\n- %s", len(problems), strings.Join(problems, "\n- "))
	}
	return nil
}
