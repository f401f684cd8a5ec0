package fixture

import (
	"context"
	"sync"
	"time"

	"github.com/preston-bernstein/homework-bot/internal/domain/homework"
)

// Provider walks a small set of homeworks through the review lifecycle, one
// step per call. Useful for local runs without an API token.
type Provider struct {
	now func() time.Time

	mu   sync.Mutex
	step int
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

var lifecycle = [][]homework.Status{
	{homework.StatusReviewing, homework.StatusReviewing},
	{homework.StatusReviewing, homework.StatusRejected},
	{homework.StatusApproved, homework.StatusReviewing},
	{homework.StatusApproved, homework.StatusApproved},
}

// FetchHomeworks returns the next deterministic batch. Once the lifecycle is
// exhausted the final statuses are repeated.
func (p *Provider) FetchHomeworks(ctx context.Context, from time.Time) (homework.Batch, error) {
	if err := ctx.Err(); err != nil {
		return homework.Batch{}, err
	}
	_ = from

	p.mu.Lock()
	statuses := lifecycle[p.step]
	if p.step < len(lifecycle)-1 {
		p.step++
	}
	p.mu.Unlock()

	now := p.now().UTC().Truncate(time.Second)
	return homework.Batch{
		Homeworks: []homework.Homework{
			{ID: "fixture-1", Name: "hw_python_oop.zip", LessonName: "OOP", Status: statuses[0], UpdatedAt: now},
			{ID: "fixture-2", Name: "hw_api_final.zip", LessonName: "API", Status: statuses[1], UpdatedAt: now},
		},
		CurrentDate: now,
	}, nil
}
