// Package scoring evaluates Yacht hands and ranks players.
//
// Every function here is pure: the same hand and rules always produce the
// same score.
package scoring

import (
	"sort"

	"github.com/KirkDiggler/yachtie/internal/models"
)

// ScoringError is a precondition violation raised by the rule engine
type ScoringError string

// Error implements the error interface
func (e ScoringError) Error() string {
	return string(e)
}

const (
	ErrInvalidDice      ScoringError = "a hand must be exactly five dice with faces 1 to 6"
	ErrInvalidFace      ScoringError = "face must be between 1 and 6"
	ErrInvalidCount     ScoringError = "count must be between 0 and 5"
	ErrUnknownCategory  ScoringError = "unknown category"
	ErrCategoryDisabled ScoringError = "category is disabled by the room rules"
)

const (
	// HandSize is the number of dice in a hand
	HandSize = 5

	FullHouseScore     = 25
	SmallStraightScore = 15
	LargeStraightScore = 30
	YachtScore         = 50
)

// Calculate scores a hand of five dice for one category
func Calculate(category models.Category, dice []int, rules models.ExtendedRules) (int, error) {
	if err := validateHand(dice); err != nil {
		return 0, err
	}
	if !category.IsValid() {
		return 0, ErrUnknownCategory
	}
	if !rules.Allows(category) {
		return 0, ErrCategoryDisabled
	}

	if category.IsUpper() {
		face := category.Face()
		return UpperFromCount(face, countFaces(dice)[face])
	}

	switch category {
	case models.CategoryThreeOfAKind:
		return ofAKind(dice, 3), nil
	case models.CategoryFourOfAKind:
		return ofAKind(dice, 4), nil
	case models.CategoryFullHouse:
		return fullHouse(dice, rules.FullHouseFixedScore), nil
	case models.CategorySmallStraight:
		if hasRun(dice, 4) {
			return SmallStraightScore, nil
		}
		return 0, nil
	case models.CategoryLargeStraight:
		if hasRun(dice, 5) {
			return LargeStraightScore, nil
		}
		return 0, nil
	case models.CategoryYacht:
		if isYacht(dice) {
			return YachtScore, nil
		}
		return 0, nil
	case models.CategoryChance:
		return sum(dice), nil
	}

	return 0, ErrUnknownCategory
}

// UpperFromCount scores an upper category from the number of dice showing the face
func UpperFromCount(face, count int) (int, error) {
	if face < 1 || face > 6 {
		return 0, ErrInvalidFace
	}
	if count < 0 || count > HandSize {
		return 0, ErrInvalidCount
	}
	return count * face, nil
}

// Evaluate scores one hand against every category the rules allow
func Evaluate(dice []int, rules models.ExtendedRules) (map[models.Category]int, error) {
	if err := validateHand(dice); err != nil {
		return nil, err
	}

	scores := make(map[models.Category]int)
	for _, c := range rules.Categories() {
		score, err := Calculate(c, dice, rules)
		if err != nil {
			return nil, err
		}
		scores[c] = score
	}
	return scores, nil
}

func validateHand(dice []int) error {
	if len(dice) != HandSize {
		return ErrInvalidDice
	}
	for _, d := range dice {
		if d < 1 || d > 6 {
			return ErrInvalidDice
		}
	}
	return nil
}

// countFaces is indexed by face; index 0 is unused
func countFaces(dice []int) [7]int {
	var counts [7]int
	for _, d := range dice {
		counts[d]++
	}
	return counts
}

func sum(dice []int) int {
	total := 0
	for _, d := range dice {
		total += d
	}
	return total
}

func ofAKind(dice []int, n int) int {
	for _, c := range countFaces(dice) {
		if c >= n {
			return sum(dice)
		}
	}
	return 0
}

func fullHouse(dice []int, fixed bool) int {
	var groups []int
	for _, c := range countFaces(dice) {
		if c > 0 {
			groups = append(groups, c)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(groups)))
	if len(groups) != 2 || groups[0] != 3 || groups[1] != 2 {
		return 0
	}
	if fixed {
		return FullHouseScore
	}
	return sum(dice)
}

// hasRun reports whether the distinct faces contain length consecutive values
func hasRun(dice []int, length int) bool {
	counts := countFaces(dice)
	run := 0
	for face := 1; face <= 6; face++ {
		if counts[face] == 0 {
			run = 0
			continue
		}
		run++
		if run >= length {
			return true
		}
	}
	return false
}

func isYacht(dice []int) bool {
	for _, d := range dice[1:] {
		if d != dice[0] {
			return false
		}
	}
	return true
}
