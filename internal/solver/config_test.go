package solver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultTrainingConfigValidates(t *testing.T) {
	require.NoError(t, DefaultTrainingConfig().Validate())
}

func TestTrainingConfigValidateRejectsBadFields(t *testing.T) {
	cases := []TrainingConfig{
		{Iterations: 0, ParallelTables: 1},
		{Iterations: 10, ParallelTables: 0},
		{Iterations: 10, ParallelTables: 1, CheckpointEvery: -1},
		{Iterations: 10, ParallelTables: 1, ProgressEvery: -1},
	}
	for _, c := range cases {
		require.Error(t, c.Validate())
	}
}

func TestParseSamplingMode(t *testing.T) {
	m, err := ParseSamplingMode("external")
	require.NoError(t, err)
	require.Equal(t, SamplingModeExternal, m)

	m, err = ParseSamplingMode("full")
	require.NoError(t, err)
	require.Equal(t, SamplingModeFullTraversal, m)

	_, err = ParseSamplingMode("bogus")
	require.Error(t, err)
}

func TestSamplingModeString(t *testing.T) {
	require.Equal(t, "external", SamplingModeExternal.String())
	require.Equal(t, "full", SamplingModeFullTraversal.String())
}
