package grading

// Band couples a minimum percentage with the grade letter and division it
// earns. Bands are scanned in descending order, first match wins.
type Band struct {
	Min      float64
	Grade    string
	Division string
}

// ExamScale is the band table applied to whole-exam percentages.
var ExamScale = []Band{
	{Min: 90, Grade: "A+", Division: "Distinction"},
	{Min: 80, Grade: "A", Division: "Distinction"},
	{Min: 70, Grade: "B+", Division: "First"},
	{Min: 60, Grade: "B", Division: "First"},
	{Min: 50, Grade: "C+", Division: "Second"},
	{Min: 40, Grade: "C", Division: "Third"},
	{Min: 0, Grade: "D", Division: "Fail"},
}

// partGradeBands is the grade table used by the part/subject calculator. It
// is intentionally distinct from ExamScale; callers pick their table.
var partGradeBands = []struct {
	Min   float64
	Grade string
}{
	{Min: 90, Grade: "A+"},
	{Min: 80, Grade: "A"},
	{Min: 70, Grade: "B+"},
	{Min: 60, Grade: "B"},
	{Min: 50, Grade: "C+"},
	{Min: 40, Grade: "C"},
}

var partDivisionBands = []struct {
	Min      float64
	Division string
}{
	{Min: 80, Division: "First"},
	{Min: 60, Division: "Second"},
	{Min: 40, Division: "Third"},
}

// GradeFor maps an exam percentage onto the exam-level band table.
func GradeFor(percentage float64) Band {
	for _, band := range ExamScale {
		if percentage >= band.Min {
			return band
		}
	}

	return ExamScale[len(ExamScale)-1]
}

// PartGradeFor maps a percentage onto the part-oriented grade and division
// tables used by the subject calculator.
func PartGradeFor(percentage float64) (grade, division string) {
	grade = "F"
	for _, band := range partGradeBands {
		if percentage >= band.Min {
			grade = band.Grade
			break
		}
	}

	division = "Fail"
	for _, band := range partDivisionBands {
		if percentage >= band.Min {
			division = band.Division
			break
		}
	}

	return grade, division
}
