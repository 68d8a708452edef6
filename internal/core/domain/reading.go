package domain

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrBookTitleEmpty = errors.New("book title cannot be empty")
	ErrBookTitleLong  = errors.New("book title is too long (max 100 chars)")
	ErrInvalidStatus  = errors.New("invalid status (must be reading, queued, or completed)")
	ErrInvalidPages   = errors.New("page counts cannot be negative")
	ErrInvalidGoal    = errors.New("reading goal must be at least 1")
)

const (
	StatusReading   = "reading"
	StatusQueued    = "queued"
	StatusCompleted = "completed"

	UnknownAuthor      = "Unknown author"
	DefaultReadingGoal = 4
)

type ReadingItem struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Progress      int    `json:"progress"`
	CurrentPage   int    `json:"currentPage"`
	TotalPages    int    `json:"totalPages"`
	Status        string `json:"status"`
	CoverURL      string `json:"coverUrl"`
	CompletedDate string `json:"completedDate,omitempty"`
}

// BookInput carries the editable fields of a reading item.
type BookInput struct {
	Title       string
	Author      string
	CurrentPage int
	TotalPages  int
	Status      string
	CoverURL    string
}

type ReadingProgress struct {
	Completed  int     `json:"completed"`
	Goal       int     `json:"goal"`
	Percentage float64 `json:"percentage"`
}

func validateBook(in BookInput) (string, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "", ErrBookTitleEmpty
	}
	if len(title) > MaxNameLen {
		return "", ErrBookTitleLong
	}
	switch in.Status {
	case StatusReading, StatusQueued, StatusCompleted:
	default:
		return "", ErrInvalidStatus
	}
	if in.CurrentPage < 0 || in.TotalPages < 0 {
		return "", ErrInvalidPages
	}
	return title, nil
}

// NewReadingItem builds an item dated against today for the completion rule.
func NewReadingItem(in BookInput, today string) (*ReadingItem, error) {
	if in.Status == "" {
		in.Status = StatusQueued
	}
	b := &ReadingItem{ID: uuid.NewString()}
	if err := b.apply(in, today); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *ReadingItem) Update(in BookInput, today string) error {
	if in.Status == "" {
		in.Status = b.Status
	}
	return b.apply(in, today)
}

// apply derives progress and the completion date. A completed item keeps the
// date it first reached that status; leaving the status clears it.
func (b *ReadingItem) apply(in BookInput, today string) error {
	title, err := validateBook(in)
	if err != nil {
		return err
	}

	author := strings.TrimSpace(in.Author)
	if author == "" {
		author = UnknownAuthor
	}

	b.Title = title
	b.Author = author
	b.TotalPages = in.TotalPages
	b.Status = in.Status
	b.CoverURL = in.CoverURL

	switch {
	case in.Status == StatusCompleted:
		b.Progress = 100
		b.CurrentPage = in.TotalPages
		if b.CompletedDate == "" {
			b.CompletedDate = today
		}
	default:
		b.CurrentPage = in.CurrentPage
		b.Progress = pageProgress(in.CurrentPage, in.TotalPages)
		b.CompletedDate = ""
	}
	return nil
}

func pageProgress(current, total int) int {
	if total <= 0 {
		return 0
	}
	pct := math.Round(float64(current) / float64(total) * 100)
	return int(math.Min(pct, 100))
}

// MonthlyReadingProgress counts items completed in the calendar month of now
// against goal. The percentage is clamped to 100.
func MonthlyReadingProgress(items []ReadingItem, goal int, now time.Time, loc *time.Location) ReadingProgress {
	if goal < 1 {
		goal = DefaultReadingGoal
	}
	month := LocalDay(now, loc)[:7]

	completed := 0
	for _, b := range items {
		if b.Status != StatusCompleted || !IsValidDay(b.CompletedDate) {
			continue
		}
		if b.CompletedDate[:7] == month {
			completed++
		}
	}

	pct := math.Min(float64(completed)/float64(goal)*100, 100)
	return ReadingProgress{Completed: completed, Goal: goal, Percentage: pct}
}

func ValidateReadingGoal(goal int) error {
	if goal < 1 {
		return ErrInvalidGoal
	}
	return nil
}
