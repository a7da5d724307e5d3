package grading

// ContributionKind tags how a subject contributes to an exam's full total.
type ContributionKind string

const (
	// ContributionWhole sums the subject as a single target.
	ContributionWhole ContributionKind = "whole"
	// ContributionParts sums the targets of the subject's overridden parts.
	ContributionParts ContributionKind = "parts"
)

// Contribution is one subject's share of the exam full total. A subject
// contributes either as a whole or part by part, never both.
type Contribution struct {
	SubjectID uint
	Kind      ContributionKind
	Targets   []float64
}

// Sum returns the contribution's share of the exam full total.
func (c Contribution) Sum() float64 {
	var total float64
	for _, target := range c.Targets {
		total += target
	}

	return total
}

// FullTotal sums all subject contributions into the exam's full total.
func FullTotal(contributions []Contribution) float64 {
	var total float64
	for _, contribution := range contributions {
		total += contribution.Sum()
	}

	return total
}
