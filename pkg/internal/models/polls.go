package models

import (
	"errors"
	"strings"
	"time"

	"github.com/samber/lo"
	"gorm.io/datatypes"
)

const (
	MinPollOptions = 2
	MaxPollOptions = 5
)

var (
	ErrTitleRequired      = errors.New("poll title cannot be empty")
	ErrInvalidOptionCount = errors.New("options must be between 2 and 5")
	ErrEmptyOptionText    = errors.New("option text cannot be empty")
	ErrInvalidOption      = errors.New("poll does not have an option like that")
	ErrAlreadyVoted       = errors.New("you already voted on this poll")
	ErrPollNotFound       = errors.New("poll was not found")
	ErrAccountNotFound    = errors.New("account was not found")
	ErrStoreUnavailable   = errors.New("data store is unavailable")
)

type Poll struct {
	BaseModel

	Title   string                          `json:"title"`
	Options datatypes.JSONSlice[PollOption] `json:"options"`
	Voters  datatypes.JSONSlice[uint]       `json:"voters"`

	AccountID uint `json:"account_id"`
}

type PollOption struct {
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

// PollSummary is the list-view projection of a poll. Vote counts and the
// voter list are deliberately left out of it.
type PollSummary struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPoll builds an unsaved poll with zeroed counters. The option set is
// final; nothing after this point may change the title or the options list.
func NewPoll(title string, options []string, accountID uint) (Poll, error) {
	var poll Poll
	if len(strings.TrimSpace(title)) == 0 {
		return poll, ErrTitleRequired
	}
	if len(options) < MinPollOptions || len(options) > MaxPollOptions {
		return poll, ErrInvalidOptionCount
	}
	for _, text := range options {
		if len(strings.TrimSpace(text)) == 0 {
			return poll, ErrEmptyOptionText
		}
	}

	poll = Poll{
		Title: title,
		Options: datatypes.NewJSONSlice(lo.Map(options, func(text string, _ int) PollOption {
			return PollOption{Text: text}
		})),
		Voters:    datatypes.NewJSONSlice([]uint{}),
		AccountID: accountID,
	}

	return poll, nil
}

// ApplyVote is the only mutation a poll supports. It checks the voter set
// before the option index so a duplicate vote with a bad index still reads
// as a duplicate. Callers must hold whatever lock makes the check-then-write
// atomic for this poll.
func (p *Poll) ApplyVote(optionIndex int, voterID uint) error {
	if lo.Contains([]uint(p.Voters), voterID) {
		return ErrAlreadyVoted
	}
	if optionIndex < 0 || optionIndex >= len(p.Options) {
		return ErrInvalidOption
	}

	p.Options[optionIndex].Votes++
	p.Voters = append(p.Voters, voterID)

	return nil
}

func (p Poll) ToSummary() PollSummary {
	return PollSummary{
		ID:        p.ID,
		Title:     p.Title,
		CreatedAt: p.CreatedAt,
	}
}
