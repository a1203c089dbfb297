/*
Package domain contains the core value types of the Turing machine engine.

It defines the fundamental entities of a computation, such as Symbols, States,
Transitions and the head motion, plus the lifecycle Status of a machine. This package
is kept pure and free of external dependencies like I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - Symbol / BlankSymbol: Atomic tape values. BlankSymbol is the fill value of unvisited cells.
  - State: A named control state.
  - Transition: The 5-tuple (state, scanned) -> (next, print, move).
  - Status: The machine lifecycle (Modifiable -> Running -> Accepting | Denying).
*/
package domain
