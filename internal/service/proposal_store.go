package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/studentools/studentools-api/internal/dto"
)

// Proposal is a generated timetable retained for later export.
type Proposal struct {
	ID          string               `json:"id"`
	CreatedAt   time.Time            `json:"createdAt"`
	Days        []string             `json:"days"`
	SlotMinutes int                  `json:"slotMinutes"`
	WindowStart int                  `json:"windowStart"`
	WindowEnd   int                  `json:"windowEnd"`
	Entries     []dto.TimetableEntry `json:"entries"`
	Stats       dto.TimetableStats   `json:"stats"`
}

// ProposalStore retains proposals for a bounded time.
type ProposalStore interface {
	Save(ctx context.Context, proposal Proposal) error
	Get(ctx context.Context, id string) (Proposal, bool, error)
	Delete(ctx context.Context, id string) error
}

type memoryProposalStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]Proposal
}

// NewMemoryProposalStore builds a process-local TTL store.
func NewMemoryProposalStore(ttl time.Duration) ProposalStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &memoryProposalStore{
		ttl:   ttl,
		items: make(map[string]Proposal),
	}
}

func (s *memoryProposalStore) Save(_ context.Context, proposal Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[proposal.ID] = proposal
	return nil
}

func (s *memoryProposalStore) Get(_ context.Context, id string) (Proposal, bool, error) {
	s.mu.RLock()
	proposal, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return Proposal{}, false, nil
	}
	if time.Since(proposal.CreatedAt) > s.ttl {
		_ = s.Delete(context.Background(), id)
		return Proposal{}, false, nil
	}
	return proposal, true, nil
}

func (s *memoryProposalStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
	return nil
}

type redisProposalStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProposalStore shares proposals across instances through Redis.
func NewRedisProposalStore(client *redis.Client, ttl time.Duration) ProposalStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &redisProposalStore{client: client, ttl: ttl}
}

func proposalKey(id string) string {
	return "timetable:proposal:" + id
}

func (s *redisProposalStore) Save(ctx context.Context, proposal Proposal) error {
	payload, err := json.Marshal(proposal)
	if err != nil {
		return fmt.Errorf("marshal proposal: %w", err)
	}
	if err := s.client.Set(ctx, proposalKey(proposal.ID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store proposal: %w", err)
	}
	return nil
}

func (s *redisProposalStore) Get(ctx context.Context, id string) (Proposal, bool, error) {
	payload, err := s.client.Get(ctx, proposalKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Proposal{}, false, nil
	}
	if err != nil {
		return Proposal{}, false, fmt.Errorf("load proposal: %w", err)
	}

	var proposal Proposal
	if err := json.Unmarshal(payload, &proposal); err != nil {
		return Proposal{}, false, fmt.Errorf("decode proposal: %w", err)
	}
	return proposal, true, nil
}

func (s *redisProposalStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, proposalKey(id)).Err()
}
