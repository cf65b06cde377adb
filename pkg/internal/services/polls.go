package services

import (
	"context"

	"github.com/voxpop-app/voxpop/pkg/internal/models"
)

// PollStore is the persistence collaborator of the poll service. It is
// injected at construction so tests can swap the database for an in-memory
// implementation. CastVote must apply the duplicate-voter check and the
// counter increment as one atomic unit per poll.
type PollStore interface {
	CreatePoll(ctx context.Context, poll *models.Poll) error
	GetPoll(ctx context.Context, id uint) (models.Poll, error)
	ListPolls(ctx context.Context) ([]models.PollSummary, error)
	CastVote(ctx context.Context, pollID uint, optionIndex int, voterID uint) (models.Poll, error)
}

type PollService struct {
	store PollStore
}

func NewPollService(store PollStore) *PollService {
	return &PollService{store: store}
}

func (s *PollService) NewPoll(ctx context.Context, title string, options []string, accountID uint) (models.Poll, error) {
	poll, err := models.NewPoll(title, options, accountID)
	if err != nil {
		return poll, err
	}
	if err := s.store.CreatePoll(ctx, &poll); err != nil {
		return poll, err
	}
	return poll, nil
}

// ListPolls returns summaries only. Rows come back newest first, but callers
// must not rely on any particular order.
func (s *PollService) ListPolls(ctx context.Context) ([]models.PollSummary, error) {
	return s.store.ListPolls(ctx)
}

func (s *PollService) GetPoll(ctx context.Context, id uint) (models.Poll, error) {
	return s.store.GetPoll(ctx, id)
}

// Vote records one vote by voterID on the given option. A repeat attempt by
// the same voter always fails with models.ErrAlreadyVoted and never
// double-counts; there is no way to change or retract a vote.
func (s *PollService) Vote(ctx context.Context, pollID uint, optionIndex int, voterID uint) (models.Poll, error) {
	return s.store.CastVote(ctx, pollID, optionIndex, voterID)
}
