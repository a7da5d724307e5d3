package grading

// SubjectPassPercent is the fixed percentage floor a subject must reach in
// addition to passing every graded part. It is policy, not configuration.
const SubjectPassPercent = 40.0

// Part describes one graded subdivision of a subject on the scales the
// calculator needs.
type Part struct {
	ID                uint
	Name              string
	RawFullMark       float64
	ConvertedFullMark float64
	PassMark          float64
	IsActive          bool
}

// PartMark is a raw obtained value entered for one part.
type PartMark struct {
	PartID   uint
	Obtained float64
}

// PartResult is the computed outcome for a single part.
type PartResult struct {
	PartID            uint
	Name              string
	Obtained          float64
	Converted         float64
	ConvertedFullMark float64
	Percentage        float64
	Passed            bool
	Grade             string
}

// SubjectResult aggregates part outcomes into a subject verdict.
type SubjectResult struct {
	TotalObtained  float64
	TotalConverted float64
	TotalFullMark  float64
	Percentage     float64
	Passed         bool
	Grade          string
	Division       string
	Parts          []PartResult
}

// CalculateSubjectResult grades a subject from its part definitions and the
// marks entered so far. Parts without an entry are excluded from the totals
// entirely; an ungraded part neither counts as zero nor fails the subject.
func CalculateSubjectResult(parts []Part, marks []PartMark) SubjectResult {
	markByPart := make(map[uint]PartMark, len(marks))
	for _, mark := range marks {
		markByPart[mark.PartID] = mark
	}

	result := SubjectResult{Parts: make([]PartResult, 0, len(parts))}
	allPassed := true

	for _, part := range parts {
		if !part.IsActive {
			continue
		}

		mark, entered := markByPart[part.ID]
		if !entered {
			continue
		}

		converted := Convert(mark.Obtained, part.RawFullMark, part.ConvertedFullMark)

		percentage := 0.0
		if part.ConvertedFullMark > 0 {
			percentage = Round2(converted / part.ConvertedFullMark * 100)
		}

		passed := converted >= part.PassMark
		if !passed {
			allPassed = false
		}

		grade, _ := PartGradeFor(percentage)

		result.Parts = append(result.Parts, PartResult{
			PartID:            part.ID,
			Name:              part.Name,
			Obtained:          mark.Obtained,
			Converted:         converted,
			ConvertedFullMark: part.ConvertedFullMark,
			Percentage:        percentage,
			Passed:            passed,
			Grade:             grade,
		})

		result.TotalObtained += mark.Obtained
		result.TotalConverted += converted
		result.TotalFullMark += part.ConvertedFullMark
	}

	if result.TotalFullMark > 0 {
		result.Percentage = Round2(result.TotalConverted / result.TotalFullMark * 100)
	}

	result.Passed = allPassed && result.Percentage >= SubjectPassPercent
	result.Grade, result.Division = PartGradeFor(result.Percentage)

	return result
}
