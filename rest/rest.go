package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"voyager.com/replay/nats"
	"voyager.com/replay/nav"
)

var restLogger = log.With().Str("logger_name", "rest::rest").Logger()
var sessionManager *nats.SessionManager

//
// APP error definition
//
type appError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type openReplayPayload struct {
	HandID string `json:"handId"`
}

type goToStreetPayload struct {
	Street string `json:"street"`
}

type keyPayload struct {
	Key string `json:"key"`
}

type openReplayResponse struct {
	SessionID string         `json:"sessionId"`
	View      *nav.ViewModel `json:"view"`
}

func RunRestServer(manager *nats.SessionManager, port string) {
	sessionManager = manager
	r := gin.Default()

	r.POST("/replay/open", openReplay)
	r.POST("/session/:sessionId/next", nextAction)
	r.POST("/session/:sessionId/prev", prevAction)
	r.POST("/session/:sessionId/street", goToStreet)
	r.POST("/session/:sessionId/start", goToStart)
	r.POST("/session/:sessionId/end", goToEnd)
	r.POST("/session/:sessionId/toggle-play", togglePlay)
	r.POST("/session/:sessionId/key", handleKey)
	r.POST("/session/:sessionId/close", closeReplay)
	r.GET("/session/:sessionId/view", getView)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Run(fmt.Sprintf(":%s", port))
}

func replyError(c *gin.Context, code int, err error) {
	c.IndentedJSON(code, appError{
		Code:    code,
		Message: err.Error(),
	})
	c.Error(err)
}

func errorCode(err error) int {
	if _, ok := err.(nats.SessionNotFoundError); ok {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func openReplay(c *gin.Context) {
	var payload openReplayPayload
	err := c.BindJSON(&payload)
	if err != nil {
		restLogger.Error().Msgf("Unable to parse open replay payload. Error: %v", err)
		replyError(c, http.StatusBadRequest, err)
		return
	}
	if payload.HandID == "" {
		replyError(c, http.StatusBadRequest, fmt.Errorf("Missing handId"))
		return
	}

	restLogger.Info().Msgf("Received request to open replay for hand [%s]", payload.HandID)
	sessionID, view, err := sessionManager.OpenReplay(payload.HandID)
	if err != nil {
		restLogger.Error().Msgf("Unable to open replay for hand [%s]. Error: %v", payload.HandID, err)
		replyError(c, http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, openReplayResponse{
		SessionID: sessionID,
		View:      view,
	})
}

func nextAction(c *gin.Context) {
	view, err := sessionManager.NextAction(c.Param("sessionId"))
	if err != nil {
		replyError(c, errorCode(err), err)
		return
	}
	c.IndentedJSON(http.StatusOK, view)
}

func prevAction(c *gin.Context) {
	view, err := sessionManager.PrevAction(c.Param("sessionId"))
	if err != nil {
		replyError(c, errorCode(err), err)
		return
	}
	c.IndentedJSON(http.StatusOK, view)
}

func goToStreet(c *gin.Context) {
	var payload goToStreetPayload
	err := c.BindJSON(&payload)
	if err != nil {
		replyError(c, http.StatusBadRequest, err)
		return
	}
	// Absent or unknown streets are no-ops in the navigator.
	view, err := sessionManager.GoToStreet(c.Param("sessionId"), nav.Street(payload.Street))
	if err != nil {
		replyError(c, errorCode(err), err)
		return
	}
	c.IndentedJSON(http.StatusOK, view)
}

func goToStart(c *gin.Context) {
	view, err := sessionManager.GoToStart(c.Param("sessionId"))
	if err != nil {
		replyError(c, errorCode(err), err)
		return
	}
	c.IndentedJSON(http.StatusOK, view)
}

func goToEnd(c *gin.Context) {
	view, err := sessionManager.GoToEnd(c.Param("sessionId"))
	if err != nil {
		replyError(c, errorCode(err), err)
		return
	}
	c.IndentedJSON(http.StatusOK, view)
}

func togglePlay(c *gin.Context) {
	view, err := sessionManager.TogglePlay(c.Param("sessionId"))
	if err != nil {
		replyError(c, errorCode(err), err)
		return
	}
	c.IndentedJSON(http.StatusOK, view)
}

func handleKey(c *gin.Context) {
	var payload keyPayload
	err := c.BindJSON(&payload)
	if err != nil {
		replyError(c, http.StatusBadRequest, err)
		return
	}
	view, err := sessionManager.HandleKey(c.Param("sessionId"), payload.Key)
	if err != nil {
		replyError(c, errorCode(err), err)
		return
	}
	c.IndentedJSON(http.StatusOK, view)
}

func getView(c *gin.Context) {
	view, err := sessionManager.View(c.Param("sessionId"))
	if err != nil {
		replyError(c, errorCode(err), err)
		return
	}
	c.IndentedJSON(http.StatusOK, view)
}

func closeReplay(c *gin.Context) {
	sessionID := c.Param("sessionId")
	err := sessionManager.CloseReplay(sessionID)
	if err != nil {
		replyError(c, errorCode(err), err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"closed": sessionID})
}
