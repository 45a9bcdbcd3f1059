package utils_test

import (
	"context"
	"testing"

	"tablenow/utils"

	"github.com/stretchr/testify/require"
)

func TestInflightRegistry(t *testing.T) {
	t.Run("newer request supersedes the older", func(t *testing.T) {
		reg := utils.NewInflightRegistry()

		ctx1, done1 := reg.Begin(context.Background(), "profile-update:dev")
		defer done1()
		require.NoError(t, ctx1.Err())

		ctx2, done2 := reg.Begin(context.Background(), "profile-update:dev")
		defer done2()

		require.Error(t, ctx1.Err())
		require.True(t, utils.Superseded(ctx1))
		require.NoError(t, ctx2.Err())
		require.False(t, utils.Superseded(ctx2))
	})

	t.Run("keys are independent", func(t *testing.T) {
		reg := utils.NewInflightRegistry()

		ctx1, done1 := reg.Begin(context.Background(), "profile-update:dev-a")
		defer done1()
		_, done2 := reg.Begin(context.Background(), "profile-update:dev-b")
		defer done2()

		require.NoError(t, ctx1.Err())
	})

	t.Run("done clears the slot", func(t *testing.T) {
		reg := utils.NewInflightRegistry()

		ctx1, done1 := reg.Begin(context.Background(), "confirm:dev")
		done1()
		require.Error(t, ctx1.Err())

		ctx2, done2 := reg.Begin(context.Background(), "confirm:dev")
		defer done2()
		require.NoError(t, ctx2.Err())
	})

	t.Run("stale done does not cancel the newer request", func(t *testing.T) {
		reg := utils.NewInflightRegistry()

		_, done1 := reg.Begin(context.Background(), "confirm:dev")
		ctx2, done2 := reg.Begin(context.Background(), "confirm:dev")
		defer done2()

		done1()
		require.NoError(t, ctx2.Err())
	})
}
