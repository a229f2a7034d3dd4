package session

import "math"

// Rank thresholds
const (
	explorerPoints = 20
	advancedPoints = 50
	elitePoints    = 100

	milestoneStep = 25
)

// Rank names
const (
	RankBeginner = "Beginner"
	RankExplorer = "Explorer"
	RankAdvanced = "Advanced"
	RankElite    = "Elite"
)

// Rank returns the rank title earned by a point total
func Rank(points int) string {
	switch {
	case points >= elitePoints:
		return RankElite
	case points >= advancedPoints:
		return RankAdvanced
	case points >= explorerPoints:
		return RankExplorer
	default:
		return RankBeginner
	}
}

// NextMilestone returns the next multiple of 25 strictly above points,
// or math.MaxInt when no such int exists
func NextMilestone(points int) int {
	next := points/milestoneStep + 1
	if next > math.MaxInt/milestoneStep {
		return math.MaxInt
	}
	return milestoneStep * next
}
