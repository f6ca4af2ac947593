package service

import (
	"context"
	"log"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"

	"golfacademy/internal/events"
	"golfacademy/internal/models"
)

// Leaderboard depth served to clients
const leaderboardSize = 50

// LeaderboardService serves a cached academy XP ranking, rebuilt whenever
// progress changes elsewhere in the app
type LeaderboardService struct {
	progress ProgressStore

	mu      sync.RWMutex
	entries []models.LeaderboardEntry
	loaded  bool
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(progress ProgressStore) *LeaderboardService {
	return &LeaderboardService{progress: progress}
}

// Top returns the current leaderboard, building it on first use
func (s *LeaderboardService) Top(limit int) ([]models.LeaderboardEntry, error) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()

	if !loaded {
		if err := s.Rebuild(); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.entries
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return append([]models.LeaderboardEntry(nil), entries...), nil
}

// Rebuild refreshes the cached ranking from persisted progress totals
func (s *LeaderboardService) Rebuild() error {
	entries, err := s.progress.ListTotals(leaderboardSize)
	if err != nil {
		return err
	}
	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Level = LevelForXP(entries[i].TotalXP).Level
	}

	s.mu.Lock()
	s.entries = entries
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// Run subscribes to progress change topics and rebuilds the cache on each
// event until the context is cancelled
func (s *LeaderboardService) Run(ctx context.Context, bus *events.Bus) error {
	topics := []string{events.TopicLeaderboardRefresh, events.TopicProgressUpdated}

	for _, topic := range topics {
		messages, err := bus.Subscribe(ctx, topic)
		if err != nil {
			return err
		}
		go func(topic string, messages <-chan *message.Message) {
			for msg := range messages {
				if err := s.Rebuild(); err != nil {
					log.Printf("leaderboard: rebuild after %s event failed: %v", topic, err)
				}
				msg.Ack()
			}
		}(topic, messages)
	}
	return nil
}
