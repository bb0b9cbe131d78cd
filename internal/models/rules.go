package models

const (
	// MaxRounds is the number of rounds with the standard twelve categories
	MaxRounds = 12

	// MaxRoundsWithThreeOfAKind adds a round for the extra lower category
	MaxRoundsWithThreeOfAKind = 13
)

// ExtendedRules holds the optional rule variants of a room
type ExtendedRules struct {
	// FullHouseFixedScore pays a constant for a full house instead of the dice sum
	FullHouseFixedScore bool `json:"fullHouseFixedScore"`

	// EnableThreeOfAKind adds the three of a kind category and one extra round
	EnableThreeOfAKind bool `json:"enableThreeOfAKind"`
}

// MaxRounds returns the number of rounds a game under these rules lasts
func (r ExtendedRules) MaxRounds() int {
	if r.EnableThreeOfAKind {
		return MaxRoundsWithThreeOfAKind
	}
	return MaxRounds
}

// Categories returns every category available under these rules, in score card order
func (r ExtendedRules) Categories() []Category {
	categories := make([]Category, 0, len(UpperSection)+len(LowerSection))
	categories = append(categories, UpperSection...)
	for _, c := range LowerSection {
		if c == CategoryThreeOfAKind && !r.EnableThreeOfAKind {
			continue
		}
		categories = append(categories, c)
	}
	return categories
}

// Allows returns true if the category can be scored under these rules
func (r ExtendedRules) Allows(c Category) bool {
	if c == CategoryThreeOfAKind {
		return r.EnableThreeOfAKind
	}
	return c.IsValid()
}
