package nav

// Navigation event types. User commands and autoplay ticks are both
// delivered as NavEvents into the same session loop, so every state
// transition runs on one goroutine.
const (
	EventNextAction   string = "NEXT_ACTION"
	EventPrevAction   string = "PREV_ACTION"
	EventGoToStreet   string = "GO_TO_STREET"
	EventGoToStart    string = "GO_TO_START"
	EventGoToEnd      string = "GO_TO_END"
	EventTogglePlay   string = "TOGGLE_PLAY"
	EventStopPlay     string = "STOP_PLAY"
	EventAutoplayTick string = "AUTOPLAY_TICK"
)

type NavEvent struct {
	Type   string `json:"type"`
	Street Street `json:"street,omitempty"`
}

// KeyToEvent maps the replay page key bindings to navigation events.
// ArrowLeft/ArrowRight step, digits 1-4 jump to a street, Space
// toggles playback. Unknown keys map to nothing.
func KeyToEvent(key string) (NavEvent, bool) {
	switch key {
	case "ArrowLeft":
		return NavEvent{Type: EventPrevAction}, true
	case "ArrowRight":
		return NavEvent{Type: EventNextAction}, true
	case "1":
		return NavEvent{Type: EventGoToStreet, Street: StreetPreflop}, true
	case "2":
		return NavEvent{Type: EventGoToStreet, Street: StreetFlop}, true
	case "3":
		return NavEvent{Type: EventGoToStreet, Street: StreetTurn}, true
	case "4":
		return NavEvent{Type: EventGoToStreet, Street: StreetRiver}, true
	case " ", "Space":
		return NavEvent{Type: EventTogglePlay}, true
	}
	return NavEvent{}, false
}
