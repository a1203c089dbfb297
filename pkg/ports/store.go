package ports

import (
	"context"

	"github.com/aretw0/turing/pkg/program"
)

// ProgramStore persists named machine programs so they can be loaded into other sessions.
type ProgramStore interface {
	// Save stores the program under its name, replacing any previous version.
	Save(ctx context.Context, prog *program.Program) error

	// Load retrieves a program by name.
	// Returns domain.ErrProgramNotFound if it does not exist.
	Load(ctx context.Context, name string) (*program.Program, error)

	// Delete removes the program. Deleting a missing program is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored programs.
	List(ctx context.Context) ([]string, error)
}
