package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunVerdictStoreContract runs a suite of tests to verify that a VerdictStore implementation
// adheres to the defined interface contract.
func RunVerdictStoreContract(t *testing.T, store VerdictStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405.000")

	t.Run("Save and Load", func(t *testing.T) {
		v := &domain.Verdict{
			Machine: name,
			Input:   "0011",
			Status:  domain.StatusAccepted,
			Steps:   21,
			Tape:    "",
		}

		require.NoError(t, store.Save(ctx, v), "Save should not return error")

		loaded, err := store.Load(ctx, name, "0011")
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, v, loaded)
	})

	t.Run("Empty input is a valid key", func(t *testing.T) {
		v := &domain.Verdict{Machine: name, Input: "", Status: domain.StatusRejected, Steps: 1}
		require.NoError(t, store.Save(ctx, v))

		loaded, err := store.Load(ctx, name, "")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, loaded.Status)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, name, "never-ran")
		assert.ErrorIs(t, err, domain.ErrVerdictNotFound)

		_, err = store.Load(ctx, "other-"+name, "0011")
		assert.ErrorIs(t, err, domain.ErrVerdictNotFound, "verdicts are scoped by machine")
	})

	t.Run("Loaded verdicts are copies", func(t *testing.T) {
		loaded, err := store.Load(ctx, name, "0011")
		require.NoError(t, err)
		loaded.Status = domain.StatusRejected

		again, err := store.Load(ctx, name, "0011")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusAccepted, again.Status)
	})

	t.Run("List", func(t *testing.T) {
		inputs, err := store.List(ctx, name)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"0011", ""}, inputs)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, name, "0011"), "Delete should not return error")

		_, err := store.Load(ctx, name, "0011")
		assert.ErrorIs(t, err, domain.ErrVerdictNotFound, "Load after Delete should return ErrVerdictNotFound")

		inputs, err := store.List(ctx, name)
		require.NoError(t, err)
		assert.NotContains(t, inputs, "0011")
	})
}
