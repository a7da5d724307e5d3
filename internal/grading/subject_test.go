package grading

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func theoryPracticalParts() []Part {
	return []Part{
		{ID: 1, Name: "Theory", RawFullMark: 75, ConvertedFullMark: 75, PassMark: 30, IsActive: true},
		{ID: 2, Name: "Practical", RawFullMark: 25, ConvertedFullMark: 25, PassMark: 10, IsActive: true},
	}
}

func TestCalculateSubjectResultAllPartsEntered(t *testing.T) {
	result := CalculateSubjectResult(theoryPracticalParts(), []PartMark{
		{PartID: 1, Obtained: 60},
		{PartID: 2, Obtained: 20},
	})

	require.Len(t, result.Parts, 2)
	require.Equal(t, 80.0, result.TotalObtained)
	require.Equal(t, 80.0, result.TotalConverted)
	require.Equal(t, 100.0, result.TotalFullMark)
	require.Equal(t, 80.0, result.Percentage)
	require.True(t, result.Passed)
	require.Equal(t, "A", result.Grade)
	require.Equal(t, "First", result.Division)
}

func TestCalculateSubjectResultMissingPartExcluded(t *testing.T) {
	result := CalculateSubjectResult(theoryPracticalParts(), []PartMark{
		{PartID: 1, Obtained: 60},
	})

	require.Len(t, result.Parts, 1)
	require.Equal(t, 75.0, result.TotalFullMark, "absent practical must not count as zero")
	require.Equal(t, 60.0, result.TotalConverted)
	require.Equal(t, 80.0, result.Percentage)
	require.True(t, result.Passed, "pass computed only from the entered part")
}

func TestCalculateSubjectResultInactivePartIgnored(t *testing.T) {
	parts := theoryPracticalParts()
	parts[1].IsActive = false

	result := CalculateSubjectResult(parts, []PartMark{
		{PartID: 1, Obtained: 60},
		{PartID: 2, Obtained: 20},
	})

	require.Len(t, result.Parts, 1)
	require.Equal(t, 75.0, result.TotalFullMark)
}

func TestCalculateSubjectResultFailedPartFailsSubject(t *testing.T) {
	result := CalculateSubjectResult(theoryPracticalParts(), []PartMark{
		{PartID: 1, Obtained: 70},
		{PartID: 2, Obtained: 5},
	})

	require.Equal(t, 75.0, result.Percentage)
	require.False(t, result.Passed, "one failed part fails the subject despite a high percentage")
}

func TestCalculateSubjectResultPercentageFloor(t *testing.T) {
	parts := []Part{
		{ID: 1, Name: "Theory", RawFullMark: 75, ConvertedFullMark: 75, PassMark: 20, IsActive: true},
		{ID: 2, Name: "Practical", RawFullMark: 25, ConvertedFullMark: 25, PassMark: 5, IsActive: true},
	}

	result := CalculateSubjectResult(parts, []PartMark{
		{PartID: 1, Obtained: 30},
		{PartID: 2, Obtained: 9},
	})

	// Every part passes individually but 39% misses the subject floor.
	require.True(t, result.Parts[0].Passed)
	require.True(t, result.Parts[1].Passed)
	require.Equal(t, 39.0, result.Percentage)
	require.False(t, result.Passed)

	result = CalculateSubjectResult(parts, []PartMark{
		{PartID: 1, Obtained: 30},
		{PartID: 2, Obtained: 10},
	})
	require.Equal(t, 40.0, result.Percentage)
	require.True(t, result.Passed)
}

func TestCalculateSubjectResultPartConversion(t *testing.T) {
	parts := []Part{
		{ID: 1, Name: "Theory", RawFullMark: 100, ConvertedFullMark: 50, PassMark: 20, IsActive: true},
	}

	result := CalculateSubjectResult(parts, []PartMark{{PartID: 1, Obtained: 50}})
	require.Equal(t, 25.0, result.Parts[0].Converted)
	require.Equal(t, 50.0, result.Parts[0].Percentage)
	require.True(t, result.Parts[0].Passed)
}

func TestCalculateSubjectResultNoMarks(t *testing.T) {
	result := CalculateSubjectResult(theoryPracticalParts(), nil)

	require.Empty(t, result.Parts)
	require.Equal(t, 0.0, result.TotalFullMark)
	require.Equal(t, 0.0, result.Percentage)
	require.False(t, result.Passed)
}

func TestCalculateSubjectResultZeroFullMarkPart(t *testing.T) {
	parts := []Part{
		{ID: 1, Name: "Viva", RawFullMark: 0, ConvertedFullMark: 0, PassMark: 0, IsActive: true},
	}

	result := CalculateSubjectResult(parts, []PartMark{{PartID: 1, Obtained: 10}})
	require.Equal(t, 0.0, result.Parts[0].Converted)
	require.Equal(t, 0.0, result.Percentage, "degenerate basis degrades to zero, never NaN")
}
