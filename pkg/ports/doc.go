/*
Package ports defines the driven ports (interfaces) around the Turing engine.

These interfaces decouple the runners and servers from external implementations,
allowing machine definitions and cached verdicts to live in various backends.

# Key Interfaces

  - DefinitionLoader: Resolves machine definitions by name (e.g., from files or memory).
  - VerdictStore: Persists the outcome of halted runs, keyed by machine and input.
*/
package ports
