package nav

import (
	"strconv"
)

// Cursor points into the action list of the current street. It is
// either "show all" (every action of the street is visible) or a zero
// based index, in which case actions [0..index] are visible. The wire
// encoding keeps the legacy convention of -1 for "show all".
type Cursor struct {
	showAll bool
	index   int
}

func ShowAllCursor() Cursor {
	return Cursor{showAll: true}
}

func AtIndex(index int) Cursor {
	return Cursor{index: index}
}

func (c Cursor) IsShowAll() bool {
	return c.showAll
}

// Index returns the zero based action index. Only meaningful when the
// cursor is not in show-all mode.
func (c Cursor) Index() int {
	return c.index
}

func (c Cursor) MarshalJSON() ([]byte, error) {
	if c.showAll {
		return []byte("-1"), nil
	}
	return []byte(strconv.Itoa(c.index)), nil
}

func (c *Cursor) UnmarshalJSON(data []byte) error {
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return err
	}
	if n < 0 {
		*c = ShowAllCursor()
	} else {
		*c = AtIndex(n)
	}
	return nil
}

// NavState is the complete mutable state of one replay session.
type NavState struct {
	Street  Street `json:"street"`
	Cursor  Cursor `json:"actionIndex"`
	Playing bool   `json:"playing"`
}

// Navigator applies navigation transitions over one immutable hand
// replay. All transitions are total; out of range requests degrade to
// no-ops. The Navigator itself is not goroutine safe; the session loop
// serializes access to it.
type Navigator struct {
	hand  *HandReplay
	state NavState
}

// NewNavigator starts at the first present street in show-all mode,
// matching the state GoToStreet would produce for that street.
func NewNavigator(hand *HandReplay) *Navigator {
	first, _ := hand.FirstStreet()
	return &Navigator{
		hand: hand,
		state: NavState{
			Street: first,
			Cursor: ShowAllCursor(),
		},
	}
}

func (n *Navigator) State() NavState {
	return n.state
}

func (n *Navigator) Hand() *HandReplay {
	return n.hand
}

// GoToStreet jumps to a street in show-all mode. Absent streets are
// ignored; the UI only offers present streets as targets.
func (n *Navigator) GoToStreet(street Street) {
	if !n.hand.HasStreet(street) {
		return
	}
	n.state.Street = street
	n.state.Cursor = ShowAllCursor()
}

// NextAction steps forward one action, crossing into the next present
// street at its first action. Entering a street this way never lands
// in show-all mode; that asymmetry with GoToStreet is intentional
// (manual street jumps show the whole street, sequential stepping
// reveals it action by action). In show-all mode every action of the
// street is already visible, so the step goes straight to the next
// street.
func (n *Navigator) NextAction() {
	if !n.state.Cursor.IsShowAll() {
		last := n.hand.LastActionIndex(n.state.Street)
		if n.state.Cursor.Index() < last {
			n.state.Cursor = AtIndex(n.state.Cursor.Index() + 1)
			return
		}
	}
	if next, ok := n.hand.NextStreet(n.state.Street); ok {
		n.state.Street = next
		n.state.Cursor = AtIndex(0)
	}
}

// PrevAction steps backward one action. From show-all it drops into
// explicit stepping at the last action of the current street. From the
// first action of a street it crosses into the previous present street
// at its last action.
func (n *Navigator) PrevAction() {
	last := n.hand.LastActionIndex(n.state.Street)
	if n.state.Cursor.IsShowAll() {
		if last >= 0 {
			n.state.Cursor = AtIndex(last)
		}
		return
	}
	if n.state.Cursor.Index() > 0 {
		n.state.Cursor = AtIndex(n.state.Cursor.Index() - 1)
		return
	}
	prev, ok := n.hand.PrevStreet(n.state.Street)
	if !ok {
		return
	}
	prevLast := n.hand.LastActionIndex(prev)
	if prevLast < 0 {
		prevLast = 0
	}
	n.state.Street = prev
	n.state.Cursor = AtIndex(prevLast)
}

func (n *Navigator) GoToStart() {
	first, ok := n.hand.FirstStreet()
	if !ok {
		return
	}
	n.state.Street = first
	n.state.Cursor = AtIndex(0)
}

func (n *Navigator) GoToEnd() {
	end, ok := n.hand.LastStreet()
	if !ok {
		return
	}
	n.state.Street = end
	n.state.Cursor = ShowAllCursor()
}

func (n *Navigator) TogglePlay() {
	n.state.Playing = !n.state.Playing
}

func (n *Navigator) StopPlay() {
	n.state.Playing = false
}

// AutoplayTick advances one step for the autoplay scheduler and
// reports whether playback should continue. Playback stops on the tick
// that reveals the final action of the final street.
func (n *Navigator) AutoplayTick() bool {
	if !n.state.Playing {
		return false
	}
	last := n.hand.LastActionIndex(n.state.Street)
	switch {
	case n.state.Cursor.IsShowAll() && last >= 0:
		n.state.Cursor = AtIndex(0)
	case !n.state.Cursor.IsShowAll() && n.state.Cursor.Index() < last:
		n.state.Cursor = AtIndex(n.state.Cursor.Index() + 1)
	default:
		next, ok := n.hand.NextStreet(n.state.Street)
		if !ok {
			n.state.Playing = false
			return false
		}
		n.state.Street = next
		n.state.Cursor = AtIndex(0)
	}
	if n.atHandEnd() {
		n.state.Playing = false
		return false
	}
	return true
}

func (n *Navigator) atHandEnd() bool {
	if _, ok := n.hand.NextStreet(n.state.Street); ok {
		return false
	}
	if n.state.Cursor.IsShowAll() {
		return false
	}
	return n.state.Cursor.Index() >= n.hand.LastActionIndex(n.state.Street)
}
