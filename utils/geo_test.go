package utils_test

import (
	"testing"

	"tablenow/utils"

	"github.com/stretchr/testify/require"
)

func TestHaversineDistance(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		require.Zero(t, utils.HaversineDistance(55.6761, 12.5683, 55.6761, 12.5683))
	})

	t.Run("Copenhagen to Aarhus", func(t *testing.T) {
		// Great-circle distance is roughly 157 km.
		d := utils.HaversineDistance(55.6761, 12.5683, 56.1629, 10.2039)
		require.InDelta(t, 157, d, 5)
	})

	t.Run("symmetry", func(t *testing.T) {
		a := utils.HaversineDistance(55.6761, 12.5683, 56.1629, 10.2039)
		b := utils.HaversineDistance(56.1629, 10.2039, 55.6761, 12.5683)
		require.InDelta(t, a, b, 1e-9)
	})
}
