package caches

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	lru "github.com/hashicorp/golang-lru"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"voyager.com/replay/nav"
	"voyager.com/replay/util"
)

var cacheLogger = log.With().Str("logger_name", "caches::replaycache").Logger()

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HandReplayCache is a two tier read cache for hand replay records: an
// in-process LRU in front of Redis with a TTL. Hand replays are
// immutable, so entries never need invalidation beyond expiry.
type HandReplayCache struct {
	lruCache *lru.Cache
	rdclient *redis.Client
	ttl      time.Duration
}

func NewHandReplayCache(size int, redisHost string, redisPort int, redisPW string, redisDB int, ttl time.Duration) (*HandReplayCache, error) {
	lruCache, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to initialize hand replay LRU cache")
	}
	rdclient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", redisHost, redisPort),
		Password: redisPW,
		DB:       redisDB,
	})
	return &HandReplayCache{
		lruCache: lruCache,
		rdclient: rdclient,
		ttl:      ttl,
	}, nil
}

func redisKey(handID string) string {
	return fmt.Sprintf("handreplay:%s", handID)
}

func (c *HandReplayCache) Get(handID string) (*nav.HandReplay, bool) {
	if v, exists := c.lruCache.Get(handID); exists {
		util.Metrics.ReplayCacheHit()
		return v.(*nav.HandReplay), true
	}

	handBytes, err := c.rdclient.Get(context.Background(), redisKey(handID)).Result()
	if err == redis.Nil {
		util.Metrics.ReplayCacheMiss()
		return nil, false
	} else if err != nil {
		cacheLogger.Error().Msgf("Error reading hand replay [%s] from Redis: %v", handID, err)
		util.Metrics.ReplayCacheMiss()
		return nil, false
	}

	hand := &nav.HandReplay{}
	err = json.Unmarshal([]byte(handBytes), hand)
	if err != nil {
		cacheLogger.Error().Msgf("Unable to unmarshal cached hand replay [%s]: %v", handID, err)
		util.Metrics.ReplayCacheMiss()
		return nil, false
	}
	c.lruCache.Add(handID, hand)
	util.Metrics.ReplayCacheHit()
	return hand, true
}

func (c *HandReplayCache) Add(hand *nav.HandReplay) error {
	if hand.HandID == "" {
		return fmt.Errorf("Invalid hand ID [%s]", hand.HandID)
	}
	c.lruCache.Add(hand.HandID, hand)

	handBytes, err := json.Marshal(hand)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("Unable to marshal hand replay [%s]", hand.HandID))
	}
	err = c.rdclient.Set(context.Background(), redisKey(hand.HandID), handBytes, c.ttl).Err()
	if err != nil {
		// The LRU tier still holds the entry. Redis is best effort.
		cacheLogger.Error().Msgf("Unable to write hand replay [%s] to Redis: %v", hand.HandID, err)
	}
	return nil
}

func (c *HandReplayCache) Remove(handID string) error {
	c.lruCache.Remove(handID)
	return c.rdclient.Del(context.Background(), redisKey(handID)).Err()
}
