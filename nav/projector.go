package nav

import (
	"sort"

	"voyager.com/replay/poker"
)

// ViewModel is what the replay page renders. It is derived from
// (HandReplay, NavState) on every state change and carries no state of
// its own.
type ViewModel struct {
	HandID         string         `json:"handId"`
	Street         Street         `json:"street"`
	ActionIndex    Cursor         `json:"actionIndex"`
	Playing        bool           `json:"playing"`
	StreetActions  []Action       `json:"streetActions"`
	VisibleActions []Action       `json:"visibleActions"`
	VisibleBoard   []poker.Card   `json:"visibleBoard"`
	CurrentPotBb   float64        `json:"currentPotBb"`
	HeroCards      []poker.Card   `json:"heroCards"`
	HeroResult     *PlayerResult  `json:"heroResult,omitempty"`
	GtoOverlay     *GtoOverlay    `json:"gtoOverlay,omitempty"`
}

// GtoOverlay is a street level annotation shown only on the preflop
// street. It does not change as preflop actions are stepped through.
type GtoOverlay struct {
	HeroAction           string         `json:"heroAction"`
	VsPosition           string         `json:"vsPosition,omitempty"`
	DeviationType        DeviationType  `json:"deviationType"`
	DeviationDescription string         `json:"deviationDescription"`
	Frequencies          []GtoFrequency `json:"frequencies"`
}

type GtoFrequency struct {
	Action       string        `json:"action"`
	Percent      float64       `json:"percent"`
	IsHeroAction bool          `json:"isHeroAction"`
	Tier         DeviationType `json:"tier,omitempty"`
}

// Project derives the view model for the given navigation state.
func Project(hand *HandReplay, state NavState) *ViewModel {
	streetActions := hand.StreetActions(state.Street)

	var visibleActions []Action
	if state.Cursor.IsShowAll() {
		visibleActions = streetActions
	} else {
		end := state.Cursor.Index() + 1
		if end > len(streetActions) {
			end = len(streetActions)
		}
		visibleActions = streetActions[:end]
	}

	view := &ViewModel{
		HandID:         hand.HandID,
		Street:         state.Street,
		ActionIndex:    state.Cursor,
		Playing:        state.Playing,
		StreetActions:  streetActions,
		VisibleActions: visibleActions,
		VisibleBoard:   visibleBoard(hand, state.Street),
		CurrentPotBb:   currentPot(streetActions, visibleActions),
		HeroCards:      heroCards(hand),
		HeroResult:     hand.HeroResult(),
		GtoOverlay:     gtoOverlay(hand, state.Street),
	}
	return view
}

// visibleBoard concatenates the board cards of every present street at
// or before the current one. Preflop contributes no board cards.
func visibleBoard(hand *HandReplay, current Street) []poker.Card {
	board := []poker.Card{}
	for _, street := range hand.PresentStreets() {
		for _, token := range hand.Streets[street].Board {
			board = append(board, poker.Card(token))
		}
		if street == current {
			break
		}
	}
	return board
}

func currentPot(streetActions []Action, visibleActions []Action) float64 {
	if len(visibleActions) > 0 {
		return visibleActions[len(visibleActions)-1].PotAfterBb
	}
	if len(streetActions) > 0 {
		return streetActions[0].PotBeforeBb
	}
	return 0
}

func heroCards(hand *HandReplay) []poker.Card {
	hero := hand.HeroPlayer()
	if hero == nil {
		return []poker.Card{}
	}
	return poker.SplitCards(hero.HoleCards)
}

func gtoOverlay(hand *HandReplay, current Street) *GtoOverlay {
	if current != StreetPreflop || hand.HeroGtoAnalysis == nil {
		return nil
	}
	analysis := hand.HeroGtoAnalysis

	frequencies := make([]GtoFrequency, 0, len(analysis.GtoFrequencies))
	for action, percent := range analysis.GtoFrequencies {
		freq := GtoFrequency{
			Action:  action,
			Percent: percent,
		}
		if action == analysis.HeroAction {
			freq.IsHeroAction = true
			freq.Tier = analysis.DeviationType
		}
		frequencies = append(frequencies, freq)
	}
	// Descending by percent, action name as the tie breaker so the
	// order is stable across JSON key orderings.
	sort.SliceStable(frequencies, func(i, j int) bool {
		if frequencies[i].Percent != frequencies[j].Percent {
			return frequencies[i].Percent > frequencies[j].Percent
		}
		return frequencies[i].Action < frequencies[j].Action
	})

	return &GtoOverlay{
		HeroAction:           analysis.HeroAction,
		VsPosition:           analysis.VsPosition,
		DeviationType:        analysis.DeviationType,
		DeviationDescription: analysis.DeviationDescription,
		Frequencies:          frequencies,
	}
}
