package models

// Category is one named scoring slot on a score card
type Category string

const (
	// Upper section, one category per die face
	CategoryAce    Category = "ace"
	CategoryDual   Category = "dual"
	CategoryTriple Category = "triple"
	CategoryQuad   Category = "quad"
	CategoryPenta  Category = "penta"
	CategoryHexa   Category = "hexa"

	// Lower section, hand patterns
	CategoryThreeOfAKind  Category = "threeOfAKind"
	CategoryFourOfAKind   Category = "fourOfAKind"
	CategoryFullHouse     Category = "fullHouse"
	CategorySmallStraight Category = "smallStraight"
	CategoryLargeStraight Category = "largeStraight"
	CategoryYacht         Category = "yacht"
	CategoryChance        Category = "chance"
)

// UpperSection lists the upper categories in score card order
var UpperSection = []Category{
	CategoryAce,
	CategoryDual,
	CategoryTriple,
	CategoryQuad,
	CategoryPenta,
	CategoryHexa,
}

// LowerSection lists the lower categories in score card order.
// CategoryThreeOfAKind is only available with the extended rule enabled.
var LowerSection = []Category{
	CategoryThreeOfAKind,
	CategoryFourOfAKind,
	CategoryFullHouse,
	CategorySmallStraight,
	CategoryLargeStraight,
	CategoryYacht,
	CategoryChance,
}

var upperFaces = map[Category]int{
	CategoryAce:    1,
	CategoryDual:   2,
	CategoryTriple: 3,
	CategoryQuad:   4,
	CategoryPenta:  5,
	CategoryHexa:   6,
}

// Face returns the die face an upper category counts, or 0 for lower categories
func (c Category) Face() int {
	return upperFaces[c]
}

// IsUpper returns true for the die-face categories
func (c Category) IsUpper() bool {
	_, ok := upperFaces[c]
	return ok
}

// IsLower returns true for the hand-pattern categories
func (c Category) IsLower() bool {
	for _, lc := range LowerSection {
		if lc == c {
			return true
		}
	}
	return false
}

// IsValid returns true if the category is known, regardless of rules
func (c Category) IsValid() bool {
	return c.IsUpper() || c.IsLower()
}

// ScoreCard maps a scored category to its value. A missing key means the category is open.
type ScoreCard map[Category]int

// Scored returns true if the category has been filled in
func (s ScoreCard) Scored(c Category) bool {
	_, ok := s[c]
	return ok
}

// Clone returns a copy of the score card that is never nil
func (s ScoreCard) Clone() ScoreCard {
	clone := make(ScoreCard, len(s))
	for k, v := range s {
		clone[k] = v
	}
	return clone
}
