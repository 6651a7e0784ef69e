package nav

import "fmt"

type InvalidHandReplayError struct {
	HandID string
	Msg    string
}

func (e InvalidHandReplayError) Error() string {
	return fmt.Sprintf("Invalid hand replay [%s]: %s", e.HandID, e.Msg)
}
