package nats

import (
	"fmt"
)

func GetReplayViewSubject(sessionID string) string {
	return fmt.Sprintf("replay.%s.view", sessionID)
}
