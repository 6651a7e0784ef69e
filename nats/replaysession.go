package nats

import (
	jsoniter "github.com/json-iterator/go"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"voyager.com/replay/nav"
	"voyager.com/replay/util"
)

var natsSessionLogger = log.With().Str("logger_name", "nats::replaysession").Logger()

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ReplaySession is the NATS adapter around one nav.Session. Every
// state change is published as a view model snapshot on
// replay.<sessionID>.view; the replay page subscribes to that subject
// and re-renders on each message.
type ReplaySession struct {
	sessionID   string
	handID      string
	viewSubject string

	natsConn *natsgo.Conn
	session  *nav.Session
}

func newReplaySession(nc *natsgo.Conn, sessionID string, hand *nav.HandReplay, config nav.AutoplayConfig) *ReplaySession {
	rs := &ReplaySession{
		sessionID:   sessionID,
		handID:      hand.HandID,
		viewSubject: GetReplayViewSubject(sessionID),
		natsConn:    nc,
	}
	rs.session = nav.NewSession(sessionID, hand, rs, config.TickInterval())
	return rs
}

// BroadcastViewUpdate implements nav.ViewReceiver.
func (rs *ReplaySession) BroadcastViewUpdate(view *nav.ViewModel) {
	data, err := json.Marshal(view)
	if err != nil {
		natsSessionLogger.Error().
			Str("session", rs.sessionID).
			Msgf("Unable to marshal view model for hand [%s]: %v", rs.handID, err)
		return
	}
	if rs.natsConn != nil {
		err = rs.natsConn.Publish(rs.viewSubject, data)
		if err != nil {
			natsSessionLogger.Error().
				Str("session", rs.sessionID).
				Msgf("Failed to publish view update to %s: %v", rs.viewSubject, err)
			return
		}
	}
	util.Metrics.ViewUpdatePublished()
}

func (rs *ReplaySession) cleanup() {
	rs.session.End()
}
