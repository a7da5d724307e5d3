// Package grading implements the pure marks conversion, band lookup and
// ranking logic of the results engine. It has no storage dependencies so the
// arithmetic can be exercised directly in tests.
package grading

import "math"

// Round2 rounds to two decimal places, half away from zero.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// Convert rescales a raw obtained mark from the exam-paper scale onto the
// system scale. A non-positive raw full mark marks an unconfigured part and
// yields zero rather than an error.
func Convert(obtained, rawFullMark, convertedFullMark float64) float64 {
	if rawFullMark <= 0 {
		return 0
	}

	return Round2(obtained / rawFullMark * convertedFullMark)
}

// ComputeConverted recalculates a stored mark's converted value at subject or
// exam granularity. Unlike Convert it only rescales when conversion is
// explicitly enabled with a target; otherwise the obtained value passes
// through untouched. The two functions are deliberately separate call sites.
func ComputeConverted(obtained float64, hasConversion bool, convertToMark *float64, fullMark float64) float64 {
	if !hasConversion || convertToMark == nil || *convertToMark == 0 {
		return Round2(obtained)
	}

	if fullMark <= 0 {
		return 0
	}

	return Round2(obtained / fullMark * *convertToMark)
}
