/*
Package domain contains the core value types of the Turing machine engine.
It defines the fundamental entities of a run, such as Symbols, States,
Movements and Transitions, plus the error taxonomy shared by every other package.
This package is kept pure and free of external dependencies like I/O or persistence.

# Key Entities

  - Symbol: A tape cell value. The zero value is Blank.
  - State: An opaque control state issued by a machine registry. Accept and Reject are reserved.
  - Transition: The full (next state, movement, optional write) triple.
  - Result: The terminal snapshot of a run (status, steps, final tape).
*/
package domain
