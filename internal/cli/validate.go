package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/turing/internal/validator"
)

// Validate loads a machine file and lints it. Definition errors always fail;
// lint problems only fail in strict mode.
func Validate(path string, strict bool, w io.Writer) error {
	entry, err := loadMachine(path)
	if err != nil {
		return err
	}

	problems := validator.Problems(entry.Definition)
	for _, p := range problems {
		fmt.Fprintf(w, "warning: %s\n", p)
	}

	if len(problems) > 0 && strict {
		return &ExitError{Code: ExitFailure, Err: validator.ValidateMachine(entry.Definition)}
	}

	fmt.Fprintf(w, "Machine '%s' is valid (%d states)\n", entry.Definition.Name(), len(entry.Definition.States()))
	return nil
}
