package poker

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCardValidity(t *testing.T) {
	testCases := []struct {
		token string
		valid bool
	}{
		{token: "Ah", valid: true},
		{token: "Td", valid: true},
		{token: "2c", valid: true},
		{token: "9s", valid: true},
		{token: "As", valid: true},
		{token: "1h", valid: false},
		{token: "Ax", valid: false},
		{token: "A", valid: false},
		{token: "Ahh", valid: false},
		{token: "", valid: false},
		{token: "10d", valid: false},
	}
	for _, tc := range testCases {
		if Card(tc.token).IsValid() != tc.valid {
			t.Errorf("Card(%q).IsValid() = %v, want %v", tc.token, !tc.valid, tc.valid)
		}
	}
}

func TestCardColor(t *testing.T) {
	testCases := []struct {
		token    string
		expected SuitColor
	}{
		{token: "Ah", expected: ColorRed},
		{token: "Td", expected: ColorBlue},
		{token: "2c", expected: ColorGreen},
		{token: "Ks", expected: ColorBlack},
	}
	for _, tc := range testCases {
		if color := Card(tc.token).Color(); color != tc.expected {
			t.Errorf("Card(%q).Color() = %s, want %s", tc.token, color, tc.expected)
		}
	}
}

func TestSplitCards(t *testing.T) {
	testCases := []struct {
		cards    string
		expected []Card
	}{
		{cards: "Ah Kd", expected: []Card{"Ah", "Kd"}},
		{cards: "Ah", expected: []Card{"Ah"}},
		{cards: "", expected: []Card{}},
		{cards: "  Qs  Jc ", expected: []Card{"Qs", "Jc"}},
	}
	for _, tc := range testCases {
		got := SplitCards(tc.cards)
		if !cmp.Equal(got, tc.expected) {
			t.Errorf("SplitCards(%q) = %v, want %v", tc.cards, got, tc.expected)
		}
	}
}
