package nav

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingReceiver struct {
	mu    sync.Mutex
	views []*ViewModel
}

func (r *capturingReceiver) BroadcastViewUpdate(view *ViewModel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, view)
}

func (r *capturingReceiver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// View queries run through the session loop, so a View call observes
// every event sent before it.
func TestSessionSerializesEvents(t *testing.T) {
	receiver := &capturingReceiver{}
	s := NewSession("sess-1", testHand(), receiver, time.Hour)
	s.Run()
	defer s.End()

	s.GoToStart()
	for i := 0; i < 5; i++ {
		s.NextAction()
	}
	view := s.View()
	assert.Equal(t, StreetFlop, view.Street)
	assert.Equal(t, AtIndex(1), view.ActionIndex)

	s.PrevAction()
	view = s.View()
	assert.Equal(t, AtIndex(0), view.ActionIndex)
}

func TestSessionKeyBindings(t *testing.T) {
	receiver := &capturingReceiver{}
	s := NewSession("sess-2", testHand(), receiver, time.Hour)
	s.Run()
	defer s.End()

	require.True(t, s.HandleKey("2"))
	view := s.View()
	assert.Equal(t, StreetFlop, view.Street)
	assert.Equal(t, ShowAllCursor(), view.ActionIndex)

	require.True(t, s.HandleKey("ArrowLeft"))
	view = s.View()
	assert.Equal(t, AtIndex(1), view.ActionIndex)

	require.True(t, s.HandleKey(" "))
	view = s.View()
	assert.True(t, view.Playing)
	require.True(t, s.HandleKey(" "))
	view = s.View()
	assert.False(t, view.Playing)

	assert.False(t, s.HandleKey("x"))
}

// No-op events (absent street jump) produce no broadcast; real
// transitions produce exactly one each.
func TestSessionBroadcastsOnChange(t *testing.T) {
	receiver := &capturingReceiver{}
	s := NewSession("sess-3", testHand(), receiver, time.Hour)
	s.Run()
	defer s.End()

	s.GoToStreet(StreetTurn)
	s.View()
	assert.Equal(t, 0, receiver.count())

	s.GoToStreet(StreetFlop)
	s.View()
	assert.Equal(t, 1, receiver.count())

	s.GoToStart()
	s.View()
	assert.Equal(t, 2, receiver.count())
}

// Full playback through the autoplay timer: starts at the first
// action, reveals every action, stops by itself at the end.
func TestSessionAutoplayRunsToEnd(t *testing.T) {
	receiver := &capturingReceiver{}
	s := NewSession("sess-4", testHand(), receiver, 10*time.Millisecond)
	s.Run()
	defer s.End()

	s.GoToStart()
	s.TogglePlay()

	deadline := time.Now().Add(3 * time.Second)
	var view *ViewModel
	for {
		view = s.View()
		if !view.Playing {
			break
		}
		require.True(t, time.Now().Before(deadline), "autoplay did not terminate")
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, StreetFlop, view.Street)
	assert.Equal(t, AtIndex(1), view.ActionIndex)
}

func TestSessionPauseStopsTicks(t *testing.T) {
	receiver := &capturingReceiver{}
	s := NewSession("sess-5", testHand(), receiver, 20*time.Millisecond)
	s.Run()
	defer s.End()

	s.GoToStart()
	s.TogglePlay()
	time.Sleep(50 * time.Millisecond)
	s.TogglePlay()

	paused := s.View()
	require.False(t, paused.Playing)
	// Give any stale tick time to arrive; it must be dropped.
	time.Sleep(100 * time.Millisecond)
	after := s.View()
	assert.Equal(t, paused.Street, after.Street)
	assert.Equal(t, paused.ActionIndex, after.ActionIndex)
}
