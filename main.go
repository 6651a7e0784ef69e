package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	natsgo "github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"voyager.com/replay/apiserver"
	caches "voyager.com/replay/caching"
	"voyager.com/replay/nats"
	"voyager.com/replay/nav"
	"voyager.com/replay/rest"
	"voyager.com/replay/util"
)

var autoplayConfigFile *string
var mainLogger = util.GetZeroLogger("main::main", nil)

func init() {
	autoplayConfigFile = flag.String("autoplay", "autoplay.yaml", "YAML file containing autoplay cadence and cache settings")
}

func main() {
	err := run()
	if err != nil {
		mainLogger.Error().Msg(err.Error())
		os.Exit(1)
	}
}

func run() error {
	logLevel := util.Env.GetZeroLogLogLevel()
	fmt.Printf("Setting log level to %s\n", logLevel)
	zerolog.SetGlobalLevel(logLevel)
	flag.Parse()

	config, err := nav.ParseAutoplayConfig(*autoplayConfigFile)
	if err != nil {
		return errors.Wrap(err, "Error while parsing autoplay config")
	}

	apiServerURL := util.Env.GetApiServerURL()
	waitForAPIServer(apiServerURL)

	nc, err := natsgo.Connect(util.Env.GetNatsURL())
	if err != nil {
		return errors.Wrap(err, "Error while connecting to NATS")
	}

	replayCache, err := caches.NewHandReplayCache(
		config.CacheSize,
		util.Env.GetRedisHost(),
		util.Env.GetRedisPort(),
		util.Env.GetRedisPW(),
		util.Env.GetRedisDB(),
		config.CacheTTL(),
	)
	if err != nil {
		return errors.Wrap(err, "Error while creating hand replay cache")
	}

	handClient := apiserver.NewHandReplayClient(apiServerURL)
	sessionManager := nats.NewSessionManager(nc, handClient, replayCache, config)

	rest.RunRestServer(sessionManager, util.Env.GetRestPort())
	return nil
}

func waitForAPIServer(apiServerURL string) {
	readyURL := fmt.Sprintf("%s/internal/ready", apiServerURL)
	client := http.Client{Timeout: 2 * time.Second}
	for {
		mainLogger.Info().Msgf("Checking API server ready (%s)", readyURL)
		resp, err := client.Get(readyURL)
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(2 * time.Second)
	}
}
