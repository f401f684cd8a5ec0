package practicum

import (
	"fmt"
	"strings"
	"time"

	"github.com/preston-bernstein/homework-bot/internal/domain/homework"
	"github.com/preston-bernstein/homework-bot/internal/providers"
)

func mapBatch(resp statusesResponse) (homework.Batch, error) {
	if resp.Homeworks == nil {
		return homework.Batch{}, fmt.Errorf("%w: missing homeworks key", providers.ErrMalformedResponse)
	}

	batch := homework.Batch{
		Homeworks: make([]homework.Homework, 0, len(*resp.Homeworks)),
	}
	if resp.CurrentDate > 0 {
		batch.CurrentDate = time.Unix(resp.CurrentDate, 0).UTC()
	}

	for _, hw := range *resp.Homeworks {
		mapped, err := mapHomework(hw)
		if err != nil {
			return homework.Batch{}, err
		}
		batch.Homeworks = append(batch.Homeworks, mapped)
	}
	return batch, nil
}

func mapHomework(hw homeworkResponse) (homework.Homework, error) {
	status := homework.Status(strings.TrimSpace(hw.Status))
	if !status.Known() {
		return homework.Homework{}, fmt.Errorf("%w: %q", providers.ErrUnknownStatus, hw.Status)
	}

	name := strings.TrimSpace(hw.HomeworkName)
	id := hw.ID.String()
	if id == "" {
		id = name
	}
	if id == "" {
		return homework.Homework{}, fmt.Errorf("%w: homework without id or name", providers.ErrMalformedResponse)
	}

	return homework.Homework{
		ID:              id,
		Name:            name,
		LessonName:      strings.TrimSpace(hw.LessonName),
		Status:          status,
		ReviewerComment: strings.TrimSpace(hw.ReviewerComment),
		UpdatedAt:       parseTimestamp(hw.DateUpdated),
	}, nil
}

func parseTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
