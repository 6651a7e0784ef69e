package timer

import (
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/log"
)

var autoplayTimerLogger = log.With().Str("logger_name", "replay::autoplay_timer").Logger()

const pollInterval = 50 * time.Millisecond

// AutoplayTimer fires a tick callback at a fixed cadence while
// playback is active. One timer runs per replay session; the loop
// goroutine starts on Run and exits on Destroy. The callback is
// expected to enqueue a tick event rather than mutate state directly.
type AutoplayTimer struct {
	sessionCode string
	interval    time.Duration

	chPlay    chan bool
	chPause   chan bool
	chEndLoop chan bool

	callback     func()
	crashHandler func()
}

func NewAutoplayTimer(sessionCode string, interval time.Duration, callback func(), crashHandler func()) *AutoplayTimer {
	at := AutoplayTimer{
		sessionCode:  sessionCode,
		interval:     interval,
		chPlay:       make(chan bool, 1),
		chPause:      make(chan bool, 1),
		chEndLoop:    make(chan bool, 10),
		callback:     callback,
		crashHandler: crashHandler,
	}
	return &at
}

func (a *AutoplayTimer) Run() {
	go a.loop()
}

func (a *AutoplayTimer) Destroy() {
	a.chEndLoop <- true
}

// StartPlay schedules the first tick one interval from now.
func (a *AutoplayTimer) StartPlay() {
	a.chPlay <- true
}

func (a *AutoplayTimer) Pause() {
	a.chPause <- true
}

func (a *AutoplayTimer) loop() {
	defer func() {
		err := recover()
		if err != nil {
			// Panic occurred.
			debug.PrintStack()
			autoplayTimerLogger.Error().
				Str("session", a.sessionCode).
				Msgf("Autoplay timer loop returning due to panic: %s\nStack Trace:\n%s", err, string(debug.Stack()))

			a.crashHandler()
		} else {
			autoplayTimerLogger.Debug().Str("session", a.sessionCode).Msg("Autoplay timer loop returning")
		}
	}()

	var nextFireAt time.Time
	paused := true
	for {
		select {
		case <-a.chEndLoop:
			return
		case <-a.chPause:
			paused = true
		case <-a.chPlay:
			paused = false
			nextFireAt = time.Now().Add(a.interval)
		default:
			if !paused && !nextFireAt.IsZero() && !time.Now().Before(nextFireAt) {
				a.callback()
				nextFireAt = nextFireAt.Add(a.interval)
			}
			time.Sleep(pollInterval)
		}
	}
}
