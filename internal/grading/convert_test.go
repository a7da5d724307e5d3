package grading

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvertRescalesOntoSystemScale(t *testing.T) {
	require.Equal(t, 25.0, Convert(50, 100, 50))
	require.Equal(t, 18.75, Convert(56.25, 75, 25))
}

func TestConvertZeroRawFullMarkYieldsZero(t *testing.T) {
	require.Equal(t, 0.0, Convert(0, 0, 50))
	require.Equal(t, 0.0, Convert(42, 0, 50))
	require.Equal(t, 0.0, Convert(42, -1, 50))
}

func TestComputeConvertedPassesThroughWithoutTarget(t *testing.T) {
	require.Equal(t, 72.0, ComputeConverted(72, false, nil, 100))

	target := 80.0
	require.Equal(t, 72.0, ComputeConverted(72, false, &target, 100), "target ignored when conversion disabled")
	require.Equal(t, 72.0, ComputeConverted(72, true, nil, 100))

	zero := 0.0
	require.Equal(t, 72.0, ComputeConverted(72, true, &zero, 100), "zero target treated as unset")
}

func TestComputeConvertedScalesWithExplicitTarget(t *testing.T) {
	target := 80.0
	require.Equal(t, 57.6, ComputeConverted(72, true, &target, 100))
	require.Equal(t, 0.0, ComputeConverted(72, true, &target, 0), "degenerate full mark yields zero")
}

func TestRound2(t *testing.T) {
	require.Equal(t, 57.6, Round2(57.599999999))
	require.Equal(t, 33.33, Round2(100.0/3.0))
	require.Equal(t, 66.67, Round2(200.0/3.0))
	require.Equal(t, 2.68, Round2(2.675000001))
}
