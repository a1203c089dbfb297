package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/program"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunProgramStoreContract runs a suite of tests to verify that a ProgramStore implementation
// adheres to the defined interface contract.
func RunProgramStoreContract(t *testing.T, store ProgramStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405.000000")

	newProgram := func(name string) *program.Program {
		return &program.Program{
			Name:        name,
			Blank:       "#",
			Initial:     "q0",
			Accepting:   []string{"qf"},
			Input:       "0101",
			Transitions: []string{"(q0, 0) -> (q0, 1, R)", "(q0, #) -> (qf, #, N)"},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		prog := newProgram(name)

		err := store.Save(ctx, prog)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, prog, loaded)
	})

	t.Run("Save Replaces", func(t *testing.T) {
		prog := newProgram(name)
		prog.Input = "111"
		require.NoError(t, store.Save(ctx, prog))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "111", loaded.Input)
	})

	t.Run("Load Returns Copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		loaded.Transitions[0] = "mutated"

		again, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.NotEqual(t, "mutated", again.Transitions[0])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrProgramNotFound)
	})

	t.Run("Save Without Name", func(t *testing.T) {
		err := store.Save(ctx, &program.Program{})
		assert.Error(t, err)
	})

	t.Run("List", func(t *testing.T) {
		id1 := fmt.Sprintf("%s-1", name)
		id2 := fmt.Sprintf("%s-2", name)
		require.NoError(t, store.Save(ctx, newProgram(id1)))
		require.NoError(t, store.Save(ctx, newProgram(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrProgramNotFound, "Load after Delete should return ErrProgramNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Deleting twice is not an error")
	})
}
