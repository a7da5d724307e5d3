package grading

// DenseRanks assigns standard competition ranks to percentages already
// sorted in descending order. Tied percentages share a rank and the next
// distinct percentage jumps ahead by the size of the tie group, so
// [90 90 80 70 70 70] ranks as [1 1 3 4 4 4].
func DenseRanks(percentages []float64) []int {
	ranks := make([]int, len(percentages))

	currentRank := 1
	lastPercentage := -1.0
	sameCount := 0

	for i, percentage := range percentages {
		if percentage != lastPercentage {
			currentRank += sameCount
			sameCount = 1
			lastPercentage = percentage
		} else {
			sameCount++
		}
		ranks[i] = currentRank
	}

	return ranks
}
