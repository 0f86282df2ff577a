package services

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"time"

	"osm-report-server/dao/redis"
)

// SessionCleanupService sweeps the output directory for session folders whose
// Redis metadata has expired. Redis owns the TTL; this job only reconciles
// disk with what Redis still knows about.
type SessionCleanupService struct {
	sessionDao *redis.RedisSessionDAO
	outputDir  string
}

// NewSessionCleanupService constructs the cleanup job with dependencies.
func NewSessionCleanupService(sessionDao *redis.RedisSessionDAO, outputDir string) *SessionCleanupService {
	return &SessionCleanupService{
		sessionDao: sessionDao,
		outputDir:  outputDir,
	}
}

// StartPeriodicJob launches the background loop at the given interval.
func (sc *SessionCleanupService) StartPeriodicJob(interval time.Duration) {
	go sc.startPeriodicJob(interval)
}

func (sc *SessionCleanupService) startPeriodicJob(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		log.Println("[SessionCleanupService] Running periodic session cleanup job.")
		removed, err := sc.CleanupExpiredSessions()
		if err != nil {
			log.Printf("[SessionCleanupService] CleanupExpiredSessions returned error: %v", err)
			continue
		}
		log.Printf("[SessionCleanupService] Removed %d expired session directories.", removed)
	}
}

// CleanupExpiredSessions deletes every session directory that no longer has a
// live Redis entry and returns how many directories were removed.
func (sc *SessionCleanupService) CleanupExpiredSessions() (int, error) {
	ids, err := sc.sessionDao.ListSessionIDs()
	if err != nil {
		return 0, err
	}
	live := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		live[id] = struct{}{}
	}

	entries, err := ioutil.ReadDir(sc.outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, ok := live[entry.Name()]; ok {
			continue
		}
		dir := filepath.Join(sc.outputDir, entry.Name())
		if err := os.RemoveAll(dir); err != nil {
			log.Printf("[SessionCleanupService] Failed to remove %s: %v", dir, err)
			continue
		}
		removed++
	}
	return removed, nil
}
