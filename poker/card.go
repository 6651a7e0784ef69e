package poker

import (
	"fmt"
	"strings"
)

// Card is a two character token: rank (2-9, T, J, Q, K, A) followed by
// suit (h, d, c, s). Example: "Ah", "Td".
type Card string

const validRanks = "23456789TJQKA"
const validSuits = "hdcs"

// SuitColor is the display color of a suit in a four-color deck.
type SuitColor string

const (
	ColorRed   SuitColor = "red"   // hearts
	ColorBlue  SuitColor = "blue"  // diamonds
	ColorGreen SuitColor = "green" // clubs
	ColorBlack SuitColor = "black" // spades
)

func NewCard(token string) (Card, error) {
	c := Card(token)
	if !c.IsValid() {
		return "", fmt.Errorf("Invalid card token [%s]", token)
	}
	return c, nil
}

func (c Card) IsValid() bool {
	if len(c) != 2 {
		return false
	}
	if !strings.ContainsRune(validRanks, rune(c[0])) {
		return false
	}
	return strings.ContainsRune(validSuits, rune(c[1]))
}

func (c Card) Rank() string {
	if len(c) != 2 {
		return ""
	}
	return string(c[0])
}

func (c Card) Suit() string {
	if len(c) != 2 {
		return ""
	}
	return string(c[1])
}

func (c Card) Color() SuitColor {
	switch c.Suit() {
	case "h":
		return ColorRed
	case "d":
		return ColorBlue
	case "c":
		return ColorGreen
	default:
		return ColorBlack
	}
}

// SplitCards splits a space separated card string ("Ah Kd") into card
// tokens. Unknown hole cards come through as an empty string and split
// into no cards, which the view renders as face-down placeholders.
func SplitCards(cards string) []Card {
	tokens := strings.Fields(cards)
	result := make([]Card, 0, len(tokens))
	for _, token := range tokens {
		result = append(result, Card(token))
	}
	return result
}
