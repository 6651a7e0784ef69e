package nav

import (
	"time"

	"github.com/rs/zerolog/log"

	"voyager.com/replay/timer"
	"voyager.com/replay/util"
)

var sessionLogger = log.With().Str("logger_name", "nav::session").Logger()

// ViewReceiver gets the freshly projected view model after every state
// change. The NATS adapter implements this to push updates to the
// replay page.
type ViewReceiver interface {
	BroadcastViewUpdate(view *ViewModel)
}

// Session owns the navigation state of one opened replay. All events
// (user commands, autoplay ticks, view queries) are serialized onto a
// single loop goroutine, so transitions are atomic with respect to
// each other without locks. The session is created when the replay
// view opens and destroyed when it closes; nothing is persisted.
type Session struct {
	sessionID string
	navigator *Navigator
	receiver  ViewReceiver
	autoplay  *timer.AutoplayTimer

	chEvent chan NavEvent
	chQuery chan chan *ViewModel
	chEnd   chan bool
}

func NewSession(sessionID string, hand *HandReplay, receiver ViewReceiver, tickInterval time.Duration) *Session {
	s := &Session{
		sessionID: sessionID,
		navigator: NewNavigator(hand),
		receiver:  receiver,
		chEvent:   make(chan NavEvent, 16),
		chQuery:   make(chan chan *ViewModel),
		chEnd:     make(chan bool, 2),
	}
	s.autoplay = timer.NewAutoplayTimer(sessionID, tickInterval, s.onAutoplayTick, s.onTimerCrash)
	return s
}

func (s *Session) SessionID() string {
	return s.sessionID
}

func (s *Session) Run() {
	s.autoplay.Run()
	go s.loop()
}

// End tears the session down. The loop destroys the autoplay timer
// before returning so no tick fires after the view is gone.
func (s *Session) End() {
	s.chEnd <- true
}

func (s *Session) NextAction() {
	s.chEvent <- NavEvent{Type: EventNextAction}
}

func (s *Session) PrevAction() {
	s.chEvent <- NavEvent{Type: EventPrevAction}
}

func (s *Session) GoToStreet(street Street) {
	s.chEvent <- NavEvent{Type: EventGoToStreet, Street: street}
}

func (s *Session) GoToStart() {
	s.chEvent <- NavEvent{Type: EventGoToStart}
}

func (s *Session) GoToEnd() {
	s.chEvent <- NavEvent{Type: EventGoToEnd}
}

func (s *Session) TogglePlay() {
	s.chEvent <- NavEvent{Type: EventTogglePlay}
}

// HandleKey dispatches a key binding from the replay page. Unknown
// keys are ignored.
func (s *Session) HandleKey(key string) bool {
	event, ok := KeyToEvent(key)
	if !ok {
		return false
	}
	s.chEvent <- event
	return true
}

// View returns the current view model. The query goes through the
// session loop, so it reflects every event sent before it.
func (s *Session) View() *ViewModel {
	reply := make(chan *ViewModel, 1)
	s.chQuery <- reply
	return <-reply
}

func (s *Session) onAutoplayTick() {
	s.chEvent <- NavEvent{Type: EventAutoplayTick}
}

func (s *Session) onTimerCrash() {
	sessionLogger.Error().Str("session", s.sessionID).Msg("Autoplay timer crashed. Stopping playback.")
	s.chEvent <- NavEvent{Type: EventStopPlay}
}

func (s *Session) loop() {
	for {
		select {
		case <-s.chEnd:
			s.autoplay.Destroy()
			return
		case reply := <-s.chQuery:
			reply <- Project(s.navigator.Hand(), s.navigator.State())
		case event := <-s.chEvent:
			s.handleEvent(event)
		}
	}
}

func (s *Session) handleEvent(event NavEvent) {
	before := s.navigator.State()

	switch event.Type {
	case EventNextAction:
		util.Metrics.NavCommandReceived()
		s.navigator.NextAction()
	case EventPrevAction:
		util.Metrics.NavCommandReceived()
		s.navigator.PrevAction()
	case EventGoToStreet:
		util.Metrics.NavCommandReceived()
		s.navigator.GoToStreet(event.Street)
	case EventGoToStart:
		util.Metrics.NavCommandReceived()
		s.navigator.GoToStart()
	case EventGoToEnd:
		util.Metrics.NavCommandReceived()
		s.navigator.GoToEnd()
	case EventTogglePlay:
		util.Metrics.NavCommandReceived()
		s.navigator.TogglePlay()
		if s.navigator.State().Playing {
			s.autoplay.StartPlay()
		} else {
			s.autoplay.Pause()
		}
	case EventStopPlay:
		s.navigator.StopPlay()
	case EventAutoplayTick:
		if !s.navigator.State().Playing {
			// Stale tick from a timer paused in the same batch of
			// events. Drop it.
			return
		}
		util.Metrics.AutoplayTick()
		if !s.navigator.AutoplayTick() {
			// Natural end of the hand.
			s.autoplay.Pause()
		}
	default:
		sessionLogger.Warn().Str("session", s.sessionID).Msgf("Ignoring unknown nav event type [%s]", event.Type)
		return
	}

	after := s.navigator.State()
	if after != before && s.receiver != nil {
		s.receiver.BroadcastViewUpdate(Project(s.navigator.Hand(), after))
	}
}
