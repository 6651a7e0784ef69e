package apiserver

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"voyager.com/replay/nav"
)

var apiServerLogger = log.With().Str("logger_name", "apiserver::handreplay").Logger()

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HandReplayClient fetches hand replay records from the API server.
// The records are computed by the backend; this client only reads
// them.
type HandReplayClient struct {
	apiServerURL string
	httpClient   *http.Client
}

func NewHandReplayClient(apiServerURL string) *HandReplayClient {
	return &HandReplayClient{
		apiServerURL: apiServerURL,
		httpClient:   &http.Client{Timeout: 5 * time.Second},
	}
}

// GetHandReplay fetches one hand replay blob. The caller validates the
// result before constructing a session from it. No retries here;
// retrying a failed fetch is the caller's responsibility.
func (c *HandReplayClient) GetHandReplay(handID string) (*nav.HandReplay, error) {
	url := fmt.Sprintf("%s/internal/hand-replay/%s", c.apiServerURL, handID)
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("Cannot get hand replay [%s]", handID))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Cannot get hand replay [%s]. API server returned %d", handID, resp.StatusCode)
	}

	bodyBytes, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("Cannot read hand replay response [%s]", handID))
	}

	var hand nav.HandReplay
	err = json.Unmarshal(bodyBytes, &hand)
	if err != nil {
		apiServerLogger.Error().Msgf("Malformed hand replay response for hand [%s]: %v", handID, err)
		return nil, errors.Wrap(err, fmt.Sprintf("Malformed hand replay [%s]", handID))
	}
	return &hand, nil
}
