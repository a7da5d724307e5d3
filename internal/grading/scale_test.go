package grading

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGradeForExamScale(t *testing.T) {
	cases := []struct {
		percentage float64
		grade      string
		division   string
	}{
		{100, "A+", "Distinction"},
		{90, "A+", "Distinction"},
		{89.99, "A", "Distinction"},
		{80, "A", "Distinction"},
		{70, "B+", "First"},
		{60, "B", "First"},
		{50, "C+", "Second"},
		{40, "C", "Third"},
		{39.99, "D", "Fail"},
		{0, "D", "Fail"},
	}

	for _, tc := range cases {
		band := GradeFor(tc.percentage)
		require.Equal(t, tc.grade, band.Grade, "percentage %v", tc.percentage)
		require.Equal(t, tc.division, band.Division, "percentage %v", tc.percentage)
	}
}

func TestPartGradeForUsesItsOwnTables(t *testing.T) {
	grade, division := PartGradeFor(95)
	require.Equal(t, "A+", grade)
	require.Equal(t, "First", division)

	grade, division = PartGradeFor(75)
	require.Equal(t, "B+", grade)
	require.Equal(t, "Second", division)

	grade, division = PartGradeFor(45)
	require.Equal(t, "C", grade)
	require.Equal(t, "Third", division)

	grade, division = PartGradeFor(39.99)
	require.Equal(t, "F", grade)
	require.Equal(t, "Fail", division)
}

func TestGradeForNegativePercentageFallsBack(t *testing.T) {
	band := GradeFor(-5)
	require.Equal(t, "D", band.Grade)
	require.Equal(t, "Fail", band.Division)
}
