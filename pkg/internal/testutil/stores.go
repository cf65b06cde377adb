// Package testutil provides in-memory implementations of the persistence
// collaborators so service and handler tests can run without a database.
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/voxpop-app/voxpop/pkg/internal/models"
	"gorm.io/datatypes"
)

type MemoryPollStore struct {
	mu     sync.Mutex
	nextID uint
	polls  map[uint]models.Poll
}

func NewMemoryPollStore() *MemoryPollStore {
	return &MemoryPollStore{polls: make(map[uint]models.Poll)}
}

func (s *MemoryPollStore) CreatePoll(_ context.Context, poll *models.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	poll.ID = s.nextID
	poll.CreatedAt = time.Now()
	poll.UpdatedAt = poll.CreatedAt
	s.polls[poll.ID] = clonePoll(*poll)

	return nil
}

func (s *MemoryPollStore) GetPoll(_ context.Context, id uint) (models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll, ok := s.polls[id]
	if !ok {
		return models.Poll{}, models.ErrPollNotFound
	}

	return clonePoll(poll), nil
}

func (s *MemoryPollStore) ListPolls(_ context.Context) ([]models.PollSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summaries := make([]models.PollSummary, 0, len(s.polls))
	for _, poll := range s.polls {
		summaries = append(summaries, poll.ToSummary())
	}

	return summaries, nil
}

// CastVote holds the store lock across the whole check-then-write, which is
// the in-memory equivalent of the row lock the database store takes.
func (s *MemoryPollStore) CastVote(_ context.Context, pollID uint, optionIndex int, voterID uint) (models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll, ok := s.polls[pollID]
	if !ok {
		return models.Poll{}, models.ErrPollNotFound
	}

	next := clonePoll(poll)
	if err := next.ApplyVote(optionIndex, voterID); err != nil {
		return models.Poll{}, err
	}
	next.UpdatedAt = time.Now()
	s.polls[pollID] = next

	return clonePoll(next), nil
}

func clonePoll(p models.Poll) models.Poll {
	out := p
	out.Options = datatypes.NewJSONSlice(append([]models.PollOption(nil), p.Options...))
	out.Voters = datatypes.NewJSONSlice(append([]uint(nil), p.Voters...))
	return out
}

type MemoryAccountStore struct {
	mu       sync.Mutex
	nextID   uint
	accounts map[uint]models.Account
}

func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{accounts: make(map[uint]models.Account)}
}

func (s *MemoryAccountStore) CreateAccount(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, other := range s.accounts {
		if other.Name == account.Name {
			return errors.New("account name already exists")
		}
	}

	s.nextID++
	account.ID = s.nextID
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	s.accounts[account.ID] = *account

	return nil
}

func (s *MemoryAccountStore) GetAccount(_ context.Context, id uint) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return models.Account{}, models.ErrAccountNotFound
	}

	return account, nil
}

func (s *MemoryAccountStore) GetAccountByName(_ context.Context, name string) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.Name == name {
			return account, nil
		}
	}

	return models.Account{}, models.ErrAccountNotFound
}
