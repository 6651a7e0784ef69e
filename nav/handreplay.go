package nav

import (
	"voyager.com/replay/poker"
)

// Street names match the keys used by the API server in the hand
// replay JSON.
type Street string

const (
	StreetPreflop Street = "preflop"
	StreetFlop    Street = "flop"
	StreetTurn    Street = "turn"
	StreetRiver   Street = "river"
)

// streetOrder is the fixed betting order. A street key is present in a
// hand only if that street was reached.
var streetOrder = []Street{StreetPreflop, StreetFlop, StreetTurn, StreetRiver}

func StreetOrder() []Street {
	order := make([]Street, len(streetOrder))
	copy(order, streetOrder)
	return order
}

type ActionType string

const (
	ActionFold   ActionType = "fold"
	ActionCheck  ActionType = "check"
	ActionCall   ActionType = "call"
	ActionBet    ActionType = "bet"
	ActionRaise  ActionType = "raise"
	ActionAllIn  ActionType = "all-in"
	ActionPostSB ActionType = "post_sb"
	ActionPostBB ActionType = "post_bb"
)

type DeviationType string

const (
	DeviationCorrect    DeviationType = "correct"
	DeviationSuboptimal DeviationType = "suboptimal"
	DeviationMistake    DeviationType = "mistake"
)

// HandReplay is the immutable record supplied whole by the API server.
// The engine never mutates it.
type HandReplay struct {
	HandID          string                   `json:"handId"`
	StakeLevel      string                   `json:"stakeLevel"`
	TableName       string                   `json:"tableName"`
	Timestamp       string                   `json:"timestamp,omitempty"`
	Players         []Player                 `json:"players"`
	Streets         map[Street]*StreetLog    `json:"streets"`
	Results         map[string]*PlayerResult `json:"results"`
	Hero            string                   `json:"hero,omitempty"`
	HeroGtoAnalysis *GtoAnalysis             `json:"heroGtoAnalysis,omitempty"`
}

type Player struct {
	Name      string `json:"name"`
	Position  string `json:"position,omitempty"`
	HoleCards string `json:"holeCards,omitempty"`
	IsHero    bool   `json:"isHero"`
}

type StreetLog struct {
	Board   []string `json:"board,omitempty"`
	Actions []Action `json:"actions"`
}

type Action struct {
	Player      string     `json:"player"`
	Action      ActionType `json:"action"`
	AmountBb    float64    `json:"amountBb,omitempty"`
	PotBeforeBb float64    `json:"potBeforeBb"`
	PotAfterBb  float64    `json:"potAfterBb"`
	IsAllIn     bool       `json:"isAllIn"`
}

type PlayerResult struct {
	ProfitLossBb float64 `json:"profitLossBb"`
	Showdown     bool    `json:"showdown"`
}

type GtoAnalysis struct {
	HeroAction           string             `json:"heroAction"`
	VsPosition           string             `json:"vsPosition,omitempty"`
	DeviationType        DeviationType      `json:"deviationType"`
	DeviationDescription string             `json:"deviationDescription"`
	GtoFrequencies       map[string]float64 `json:"gtoFrequencies"`
}

// PresentStreets returns the streets reached in this hand in the fixed
// betting order.
func (h *HandReplay) PresentStreets() []Street {
	present := make([]Street, 0, len(streetOrder))
	for _, street := range streetOrder {
		if _, exists := h.Streets[street]; exists {
			present = append(present, street)
		}
	}
	return present
}

func (h *HandReplay) HasStreet(street Street) bool {
	_, exists := h.Streets[street]
	return exists
}

func (h *HandReplay) FirstStreet() (Street, bool) {
	present := h.PresentStreets()
	if len(present) == 0 {
		return "", false
	}
	return present[0], true
}

func (h *HandReplay) LastStreet() (Street, bool) {
	present := h.PresentStreets()
	if len(present) == 0 {
		return "", false
	}
	return present[len(present)-1], true
}

// NextStreet returns the present street after the given one.
func (h *HandReplay) NextStreet(street Street) (Street, bool) {
	present := h.PresentStreets()
	for i, s := range present {
		if s == street && i+1 < len(present) {
			return present[i+1], true
		}
	}
	return "", false
}

// PrevStreet returns the present street before the given one.
func (h *HandReplay) PrevStreet(street Street) (Street, bool) {
	present := h.PresentStreets()
	for i, s := range present {
		if s == street && i > 0 {
			return present[i-1], true
		}
	}
	return "", false
}

func (h *HandReplay) StreetActions(street Street) []Action {
	log, exists := h.Streets[street]
	if !exists {
		return []Action{}
	}
	return log.Actions
}

// LastActionIndex returns the index of the last action in the street,
// or -1 if the street has no actions.
func (h *HandReplay) LastActionIndex(street Street) int {
	return len(h.StreetActions(street)) - 1
}

func (h *HandReplay) TotalActions() int {
	total := 0
	for _, street := range h.PresentStreets() {
		total += len(h.StreetActions(street))
	}
	return total
}

// HeroPlayer returns the designated hero, or nil if the hand has none.
func (h *HandReplay) HeroPlayer() *Player {
	for i := range h.Players {
		if h.Players[i].IsHero || (h.Hero != "" && h.Players[i].Name == h.Hero) {
			return &h.Players[i]
		}
	}
	return nil
}

func (h *HandReplay) HeroResult() *PlayerResult {
	if h.Hero == "" {
		return nil
	}
	return h.Results[h.Hero]
}

// Validate runs presence level checks on a hand replay received from
// the API server. A hand that fails validation is rejected before a
// session is created.
func (h *HandReplay) Validate() error {
	if h.HandID == "" {
		return InvalidHandReplayError{HandID: h.HandID, Msg: "missing handId"}
	}
	if len(h.Streets) == 0 {
		return InvalidHandReplayError{HandID: h.HandID, Msg: "no streets"}
	}

	for street := range h.Streets {
		if !isKnownStreet(street) {
			return InvalidHandReplayError{HandID: h.HandID, Msg: "unknown street " + string(street)}
		}
	}

	// A later street cannot be present if an earlier one is absent.
	seenAbsent := false
	for _, street := range streetOrder {
		if !h.HasStreet(street) {
			seenAbsent = true
			continue
		}
		if seenAbsent {
			return InvalidHandReplayError{HandID: h.HandID, Msg: "street " + string(street) + " present after an absent street"}
		}
	}

	for _, street := range h.PresentStreets() {
		actions := h.StreetActions(street)
		for i := 1; i < len(actions); i++ {
			if actions[i-1].PotAfterBb != actions[i].PotBeforeBb {
				return InvalidHandReplayError{HandID: h.HandID, Msg: "pot mismatch in street " + string(street)}
			}
		}
		for _, token := range h.Streets[street].Board {
			if !poker.Card(token).IsValid() {
				return InvalidHandReplayError{HandID: h.HandID, Msg: "invalid board card " + token}
			}
		}
	}

	for _, player := range h.Players {
		for _, card := range poker.SplitCards(player.HoleCards) {
			if !card.IsValid() {
				return InvalidHandReplayError{HandID: h.HandID, Msg: "invalid hole card " + string(card) + " for player " + player.Name}
			}
		}
	}

	if h.HeroGtoAnalysis != nil {
		switch h.HeroGtoAnalysis.DeviationType {
		case DeviationCorrect, DeviationSuboptimal, DeviationMistake:
		default:
			return InvalidHandReplayError{HandID: h.HandID, Msg: "unknown deviationType " + string(h.HeroGtoAnalysis.DeviationType)}
		}
	}
	return nil
}

func isKnownStreet(street Street) bool {
	for _, s := range streetOrder {
		if s == street {
			return true
		}
	}
	return false
}
