package nav

import (
	"testing"
)

// testHand reaches the flop only: 3 preflop actions, 2 flop actions.
func testHand() *HandReplay {
	return &HandReplay{
		HandID:     "hand-1001",
		StakeLevel: "1/2",
		TableName:  "Table 1",
		Players: []Player{
			{Name: "molly", Position: "sb", HoleCards: "Ah Kd", IsHero: true},
			{Name: "rob", Position: "bb"},
		},
		Hero: "molly",
		Streets: map[Street]*StreetLog{
			StreetPreflop: {
				Actions: []Action{
					{Player: "molly", Action: ActionPostSB, AmountBb: 0.5, PotBeforeBb: 0, PotAfterBb: 0.5},
					{Player: "rob", Action: ActionPostBB, AmountBb: 1, PotBeforeBb: 0.5, PotAfterBb: 1.5},
					{Player: "molly", Action: ActionRaise, AmountBb: 3, PotBeforeBb: 1.5, PotAfterBb: 4.5},
				},
			},
			StreetFlop: {
				Board: []string{"2h", "7d", "Jc"},
				Actions: []Action{
					{Player: "rob", Action: ActionCheck, PotBeforeBb: 6, PotAfterBb: 6},
					{Player: "molly", Action: ActionBet, AmountBb: 4, PotBeforeBb: 6, PotAfterBb: 10},
				},
			},
		},
		Results: map[string]*PlayerResult{
			"molly": {ProfitLossBb: 6, Showdown: false},
			"rob":   {ProfitLossBb: -6, Showdown: false},
		},
		HeroGtoAnalysis: &GtoAnalysis{
			HeroAction:           "raise",
			VsPosition:           "bb",
			DeviationType:        DeviationCorrect,
			DeviationDescription: "Raising is the highest frequency play here",
			GtoFrequencies:       map[string]float64{"fold": 10, "raise": 65, "call": 25},
		},
	}
}

func expectState(t *testing.T, n *Navigator, street Street, cursor Cursor) {
	t.Helper()
	state := n.State()
	if state.Street != street || state.Cursor != cursor {
		t.Fatalf("state = {%s %+v}, want {%s %+v}", state.Street, state.Cursor, street, cursor)
	}
}

func TestInitialState(t *testing.T) {
	n := NewNavigator(testHand())
	expectState(t, n, StreetPreflop, ShowAllCursor())
	if n.State().Playing {
		t.Fatal("new navigator should not be playing")
	}
}

func TestGoToStreet(t *testing.T) {
	n := NewNavigator(testHand())
	n.GoToStart()
	n.NextAction()
	n.GoToStreet(StreetFlop)
	expectState(t, n, StreetFlop, ShowAllCursor())
}

func TestGoToStreetIdempotent(t *testing.T) {
	n := NewNavigator(testHand())
	n.GoToStreet(StreetFlop)
	first := n.State()
	n.GoToStreet(StreetFlop)
	if n.State() != first {
		t.Fatalf("second GoToStreet changed state: %+v != %+v", n.State(), first)
	}
}

func TestGoToStreetAbsentIsNoOp(t *testing.T) {
	n := NewNavigator(testHand())
	n.GoToStart()
	before := n.State()
	n.GoToStreet(StreetTurn)
	if n.State() != before {
		t.Fatalf("GoToStreet(turn) on a flop-only hand changed state: %+v", n.State())
	}
}

func TestGoToStartAndEnd(t *testing.T) {
	n := NewNavigator(testHand())
	n.GoToEnd()
	expectState(t, n, StreetFlop, ShowAllCursor())
	n.GoToStart()
	expectState(t, n, StreetPreflop, AtIndex(0))
}

// Five forward steps from the start land on the last flop action; the
// sixth has nowhere to go.
func TestNextActionAcrossStreets(t *testing.T) {
	n := NewNavigator(testHand())
	n.GoToStart()
	steps := []struct {
		street Street
		cursor Cursor
	}{
		{StreetPreflop, AtIndex(1)},
		{StreetPreflop, AtIndex(2)},
		{StreetFlop, AtIndex(0)},
		{StreetFlop, AtIndex(1)},
		{StreetFlop, AtIndex(1)}, // no-op at the end of the hand
	}
	for i, step := range steps {
		n.NextAction()
		state := n.State()
		if state.Street != step.street || state.Cursor != step.cursor {
			t.Fatalf("after step %d: state = {%s %+v}, want {%s %+v}", i+1, state.Street, state.Cursor, step.street, step.cursor)
		}
	}
}

func TestNextActionAtEndIsNoOp(t *testing.T) {
	n := NewNavigator(testHand())
	n.GoToEnd()
	before := n.State()
	n.NextAction()
	if n.State() != before {
		t.Fatalf("NextAction at GoToEnd state changed state: %+v", n.State())
	}
}

func TestPrevActionAtStartIsNoOp(t *testing.T) {
	n := NewNavigator(testHand())
	n.GoToStart()
	before := n.State()
	n.PrevAction()
	if n.State() != before {
		t.Fatalf("PrevAction at GoToStart state changed state: %+v", n.State())
	}
}

func TestPrevActionFromShowAll(t *testing.T) {
	n := NewNavigator(testHand())
	n.GoToStreet(StreetFlop)
	n.PrevAction()
	expectState(t, n, StreetFlop, AtIndex(1))
}

func TestPrevActionCrossesStreets(t *testing.T) {
	n := NewNavigator(testHand())
	n.GoToStreet(StreetFlop)
	n.PrevAction() // flop 1
	n.PrevAction() // flop 0
	n.PrevAction() // preflop 2
	expectState(t, n, StreetPreflop, AtIndex(2))
}

// GoToEnd followed by one PrevAction per action returns the navigator
// to the GoToStart state.
func TestRoundTrip(t *testing.T) {
	hand := testHand()
	n := NewNavigator(hand)
	n.GoToEnd()
	for i := 0; i < hand.TotalActions(); i++ {
		n.PrevAction()
	}
	expectState(t, n, StreetPreflop, AtIndex(0))

	m := NewNavigator(hand)
	m.GoToStart()
	if n.State() != m.State() {
		t.Fatalf("round trip state %+v != GoToStart state %+v", n.State(), m.State())
	}
}

func TestTogglePlay(t *testing.T) {
	n := NewNavigator(testHand())
	n.TogglePlay()
	if !n.State().Playing {
		t.Fatal("expected playing after toggle")
	}
	n.TogglePlay()
	if n.State().Playing {
		t.Fatal("expected paused after second toggle")
	}
}

// Playback from the start ends after exactly TotalActions-1 ticks and
// never skips an action.
func TestAutoplayTermination(t *testing.T) {
	hand := testHand()
	n := NewNavigator(hand)
	n.GoToStart()
	n.TogglePlay()

	ticks := 0
	for n.AutoplayTick() {
		ticks++
		if ticks > hand.TotalActions() {
			t.Fatal("autoplay did not terminate")
		}
	}
	ticks++ // the terminating tick advanced too
	if ticks != hand.TotalActions()-1 {
		t.Fatalf("autoplay took %d ticks, want %d", ticks, hand.TotalActions()-1)
	}
	state := n.State()
	if state.Playing {
		t.Fatal("expected playing=false at the end of the hand")
	}
	expectState(t, n, StreetFlop, AtIndex(1))
}

func TestAutoplayTickFromShowAll(t *testing.T) {
	n := NewNavigator(testHand())
	n.TogglePlay()
	n.AutoplayTick()
	expectState(t, n, StreetPreflop, AtIndex(0))
}

func TestAutoplayTickWhilePausedDoesNothing(t *testing.T) {
	n := NewNavigator(testHand())
	n.GoToStart()
	before := n.State()
	if n.AutoplayTick() {
		t.Fatal("tick while paused should not continue playback")
	}
	if n.State() != before {
		t.Fatalf("tick while paused changed state: %+v", n.State())
	}
}

func TestCursorJSON(t *testing.T) {
	testCases := []struct {
		cursor   Cursor
		expected string
	}{
		{cursor: ShowAllCursor(), expected: "-1"},
		{cursor: AtIndex(0), expected: "0"},
		{cursor: AtIndex(2), expected: "2"},
	}
	for _, tc := range testCases {
		data, err := tc.cursor.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON returned error [%s]", err)
		}
		if string(data) != tc.expected {
			t.Errorf("cursor %+v marshaled to %s, want %s", tc.cursor, data, tc.expected)
		}
		var back Cursor
		err = back.UnmarshalJSON(data)
		if err != nil {
			t.Fatalf("UnmarshalJSON returned error [%s]", err)
		}
		if back != tc.cursor {
			t.Errorf("cursor %s unmarshaled to %+v, want %+v", data, back, tc.cursor)
		}
	}
}
