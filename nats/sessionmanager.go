package nats

import (
	"fmt"

	"github.com/google/uuid"
	natsgo "github.com/nats-io/nats.go"
	cmap "github.com/orcaman/concurrent-map"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"voyager.com/replay/apiserver"
	caches "voyager.com/replay/caching"
	"voyager.com/replay/nav"
	"voyager.com/replay/util"
)

var sessionManagerLogger = log.With().Str("logger_name", "nats::sessionmanager").Logger()

type SessionNotFoundError struct {
	SessionID string
}

func (e SessionNotFoundError) Error() string {
	return fmt.Sprintf("Replay session [%s] is not found", e.SessionID)
}

// SessionManager tracks the active replay sessions. A session is
// created per opened replay and removed when the view closes. Multiple
// sessions over the same hand can coexist; each owns its navigation
// state and autoplay timer.
type SessionManager struct {
	activeSessions cmap.ConcurrentMap

	natsConn    *natsgo.Conn
	handClient  *apiserver.HandReplayClient
	replayCache *caches.HandReplayCache
	config      nav.AutoplayConfig
}

func NewSessionManager(nc *natsgo.Conn, handClient *apiserver.HandReplayClient, replayCache *caches.HandReplayCache, config nav.AutoplayConfig) *SessionManager {
	return &SessionManager{
		activeSessions: cmap.New(),
		natsConn:       nc,
		handClient:     handClient,
		replayCache:    replayCache,
		config:         config,
	}
}

// OpenReplay fetches the hand (through the cache), validates it, and
// starts a new session. Returns the session ID and the initial view.
func (sm *SessionManager) OpenReplay(handID string) (string, *nav.ViewModel, error) {
	hand, found := sm.replayCache.Get(handID)
	if !found {
		fetched, err := sm.handClient.GetHandReplay(handID)
		if err != nil {
			return "", nil, errors.Wrap(err, fmt.Sprintf("Unable to load hand replay [%s]", handID))
		}
		err = fetched.Validate()
		if err != nil {
			return "", nil, err
		}
		err = sm.replayCache.Add(fetched)
		if err != nil {
			sessionManagerLogger.Error().Msgf("Unable to cache hand replay [%s]: %v", handID, err)
		}
		hand = fetched
	}

	sessionID := uuid.New().String()
	sessionManagerLogger.Info().Msgf("Opening replay session %s for hand %s", sessionID, handID)
	rs := newReplaySession(sm.natsConn, sessionID, hand, sm.config)
	rs.session.Run()
	sm.activeSessions.Set(sessionID, rs)

	util.Metrics.ReplayOpened()
	util.Metrics.SetActiveSessionsCount(sm.activeSessions.Count())
	return sessionID, rs.session.View(), nil
}

// CloseReplay tears down a session and cancels its autoplay timer.
func (sm *SessionManager) CloseReplay(sessionID string) error {
	v, exists := sm.activeSessions.Get(sessionID)
	if !exists {
		return SessionNotFoundError{SessionID: sessionID}
	}
	sm.activeSessions.Remove(sessionID)
	rs := v.(*ReplaySession)
	rs.cleanup()
	util.Metrics.SetActiveSessionsCount(sm.activeSessions.Count())
	sessionManagerLogger.Info().Msgf("Closed replay session %s for hand %s", sessionID, rs.handID)
	return nil
}

func (sm *SessionManager) getSession(sessionID string) (*ReplaySession, error) {
	v, exists := sm.activeSessions.Get(sessionID)
	if !exists {
		return nil, SessionNotFoundError{SessionID: sessionID}
	}
	return v.(*ReplaySession), nil
}

func (sm *SessionManager) NextAction(sessionID string) (*nav.ViewModel, error) {
	rs, err := sm.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	rs.session.NextAction()
	return rs.session.View(), nil
}

func (sm *SessionManager) PrevAction(sessionID string) (*nav.ViewModel, error) {
	rs, err := sm.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	rs.session.PrevAction()
	return rs.session.View(), nil
}

func (sm *SessionManager) GoToStreet(sessionID string, street nav.Street) (*nav.ViewModel, error) {
	rs, err := sm.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	rs.session.GoToStreet(street)
	return rs.session.View(), nil
}

func (sm *SessionManager) GoToStart(sessionID string) (*nav.ViewModel, error) {
	rs, err := sm.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	rs.session.GoToStart()
	return rs.session.View(), nil
}

func (sm *SessionManager) GoToEnd(sessionID string) (*nav.ViewModel, error) {
	rs, err := sm.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	rs.session.GoToEnd()
	return rs.session.View(), nil
}

func (sm *SessionManager) TogglePlay(sessionID string) (*nav.ViewModel, error) {
	rs, err := sm.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	rs.session.TogglePlay()
	return rs.session.View(), nil
}

func (sm *SessionManager) HandleKey(sessionID string, key string) (*nav.ViewModel, error) {
	rs, err := sm.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	rs.session.HandleKey(key)
	return rs.session.View(), nil
}

func (sm *SessionManager) View(sessionID string) (*nav.ViewModel, error) {
	rs, err := sm.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return rs.session.View(), nil
}
