package nav

import (
	"fmt"
	"io/ioutil"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AutoplayConfig holds the playback cadence and the hand replay cache
// knobs. Loaded from a YAML file at startup.
type AutoplayConfig struct {
	TickIntervalMillis uint32 `yaml:"tickIntervalMillis"`
	CacheSize          int    `yaml:"cacheSize"`
	CacheTTLSeconds    uint32 `yaml:"cacheTTLSeconds"`
}

func DefaultAutoplayConfig() AutoplayConfig {
	return AutoplayConfig{
		TickIntervalMillis: 800,
		CacheSize:          1000,
		CacheTTLSeconds:    900,
	}
}

func ParseAutoplayConfig(configFile string) (AutoplayConfig, error) {
	bytes, err := ioutil.ReadFile(configFile)
	if err != nil {
		return AutoplayConfig{}, errors.Wrap(err, fmt.Sprintf("Error reading autoplay config file [%s]", configFile))
	}

	data := DefaultAutoplayConfig()
	err = yaml.Unmarshal(bytes, &data)
	if err != nil {
		return AutoplayConfig{}, errors.Wrap(err, fmt.Sprintf("Error parsing autoplay YAML file [%s]", configFile))
	}

	if data.TickIntervalMillis == 0 {
		data.TickIntervalMillis = 800
	}
	if data.CacheSize <= 0 {
		data.CacheSize = 1000
	}
	return data, nil
}

func (c AutoplayConfig) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMillis) * time.Millisecond
}

func (c AutoplayConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
