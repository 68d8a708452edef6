package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

func TestReadingService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	state, repo, clk := newTestState(t, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC))
	svc := services.NewReadingService(state)

	book, err := svc.Create(ctx, domain.BookInput{Title: "Dune", CurrentPage: 206, TotalPages: 412, Status: domain.StatusReading})
	require.NoError(t, err)
	assert.Equal(t, 50, book.Progress)
	assert.Equal(t, domain.UnknownAuthor, book.Author)
	assert.Equal(t, domain.ChangeBooks, repo.lastChange())

	done, err := svc.Update(ctx, book.ID, domain.BookInput{Title: "Dune", Author: "Frank Herbert", TotalPages: 412, Status: domain.StatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, 100, done.Progress)
	assert.Equal(t, 412, done.CurrentPage)
	assert.Equal(t, "2024-06-10", done.CompletedDate)

	clk.Set(time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC))
	again, err := svc.Update(ctx, book.ID, domain.BookInput{Title: "Dune", Author: "Frank Herbert", TotalPages: 412})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, again.Status, "empty status keeps the previous one")
	assert.Equal(t, "2024-06-10", again.CompletedDate, "completion date is not moved")

	_, err = svc.Update(ctx, "missing", domain.BookInput{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrBookNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, book.ID, false), domain.ErrConfirmationRequired)
	require.NoError(t, svc.Delete(ctx, book.ID, true))
	_, err = svc.Get(book.ID)
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestReadingService_List(t *testing.T) {
	ctx := context.Background()
	state, _, _ := newTestState(t, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC))
	svc := services.NewReadingService(state)

	_, _ = svc.Create(ctx, domain.BookInput{Title: "Dune", Author: "Frank Herbert", Status: domain.StatusReading})
	_, _ = svc.Create(ctx, domain.BookInput{Title: "Emma", Author: "Jane Austen"})
	_, _ = svc.Create(ctx, domain.BookInput{Title: "Persuasion", Author: "Jane Austen", Status: domain.StatusCompleted})

	assert.Len(t, svc.List(services.BookFilter{}), 3)
	assert.Len(t, svc.List(services.BookFilter{Status: domain.StatusQueued}), 1)
	assert.Len(t, svc.List(services.BookFilter{Query: "austen"}), 2)
	assert.Len(t, svc.List(services.BookFilter{Query: "DUNE"}), 1)
	assert.Empty(t, svc.List(services.BookFilter{Status: domain.StatusReading, Query: "austen"}))
}

func TestReadingService_Goal(t *testing.T) {
	ctx := context.Background()
	state, _, _ := newTestState(t, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC))
	svc := services.NewReadingService(state)

	assert.Equal(t, domain.DefaultReadingGoal, svc.Goal())
	assert.ErrorIs(t, svc.SetGoal(ctx, 0), domain.ErrInvalidGoal)

	require.NoError(t, svc.SetGoal(ctx, 4))
	_, _ = svc.Create(ctx, domain.BookInput{Title: "A", Status: domain.StatusCompleted})
	_, _ = svc.Create(ctx, domain.BookInput{Title: "B", Status: domain.StatusCompleted})
	_, _ = svc.Create(ctx, domain.BookInput{Title: "C", Status: domain.StatusReading})

	progress := svc.Monthly()
	assert.Equal(t, 2, progress.Completed)
	assert.Equal(t, 4, progress.Goal)
	assert.Equal(t, 50.0, progress.Percentage)
}
