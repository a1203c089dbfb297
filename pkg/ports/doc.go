/*
Package ports defines the capability interfaces of the Turing engine and its driven ports.

These interfaces decouple the callers (command layer, transports) from the concrete
deterministic engine, and the engine's surroundings from storage or coordination
backends.

# Key Interfaces

  - Machine / Configurable: the lifecycle and configuration capabilities of an engine.
  - ProgramStore: persists named machine programs (configuration, never runtime state).
  - DistributedLocker: provides distributed locking for concurrent session access.
*/
package ports
