package redis

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"osm-report-server/db"
	"osm-report-server/models"
)

const SESSION_KEY_FORMAT = "report_session_v1:%s"
const SESSION_KEY_PATTERN = "report_session_v1:*"

// RedisSessionDAO stores generated-report session metadata in Redis. Entries
// carry a TTL so Redis itself evicts stale sessions; the cleanup job sweeps
// the matching output directories.
type RedisSessionDAO struct {
	client db.RedisClient
}

// NewRedisSessionDAO initializes a RedisSessionDAO with the Redis client.
func NewRedisSessionDAO(client db.RedisClient) *RedisSessionDAO {
	return &RedisSessionDAO{client: client}
}

// UpsertSession stores the session metadata with the given TTL.
func (dao *RedisSessionDAO) UpsertSession(s *models.Session, ttl time.Duration) error {
	key := fmt.Sprintf(SESSION_KEY_FORMAT, s.ID)
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", s.ID, err)
	}
	if err := dao.client.SetWithTTL(key, string(data), ttl); err != nil {
		return fmt.Errorf("failed to set session in redis: %w", err)
	}
	return nil
}

// GetSession retrieves session metadata by id. A missing key means the
// session expired or never existed.
func (dao *RedisSessionDAO) GetSession(id string) (*models.Session, error) {
	key := fmt.Sprintf(SESSION_KEY_FORMAT, id)
	str, err := dao.client.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get session from redis: %w", err)
	}
	var s models.Session
	if err := json.Unmarshal([]byte(str), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session JSON: %w", err)
	}
	return &s, nil
}

// ListSessionIDs returns the ids of all live sessions.
func (dao *RedisSessionDAO) ListSessionIDs() ([]string, error) {
	keys, err := dao.client.Keys(SESSION_KEY_PATTERN)
	if err != nil {
		return nil, fmt.Errorf("failed to list session keys: %w", err)
	}

	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, "report_session_v1:"))
	}
	return ids, nil
}

// DeleteSession removes session metadata.
func (dao *RedisSessionDAO) DeleteSession(id string) error {
	key := fmt.Sprintf(SESSION_KEY_FORMAT, id)
	if err := dao.client.Del(key); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}
