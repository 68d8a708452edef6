package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Run("Success: One-off with default priority", func(t *testing.T) {
		task, err := domain.NewTask(" Call mum ", "", "18:30", domain.OneOff{Date: "2024-06-01"})
		require.NoError(t, err)
		assert.NotEmpty(t, task.ID)
		assert.Equal(t, "Call mum", task.Title)
		assert.Equal(t, domain.PriorityMedium, task.Priority)
		assert.False(t, task.IsRecurring())
	})

	t.Run("Success: Recurring gets an empty completion set", func(t *testing.T) {
		task, err := domain.NewTask("Stretch", domain.PriorityLow, "", domain.Recurring{Frequency: 3})
		require.NoError(t, err)
		require.True(t, task.IsRecurring())
		assert.NotNil(t, task.Schedule.(domain.Recurring).CompletedDays)
	})

	tests := []struct {
		name     string
		title    string
		priority string
		reminder string
		schedule domain.Schedule
		wantErr  error
	}{
		{name: "Error: Empty title", title: " ", schedule: domain.OneOff{Date: "2024-06-01"}, wantErr: domain.ErrTaskTitleEmpty},
		{name: "Error: Unknown priority", title: "x", priority: "urgent", schedule: domain.OneOff{Date: "2024-06-01"}, wantErr: domain.ErrInvalidPriority},
		{name: "Error: Bad reminder", title: "x", reminder: "6pm", schedule: domain.OneOff{Date: "2024-06-01"}, wantErr: domain.ErrInvalidReminder},
		{name: "Error: Bad date", title: "x", schedule: domain.OneOff{Date: "tomorrow"}, wantErr: domain.ErrTaskDateInvalid},
		{name: "Error: Frequency out of range", title: "x", schedule: domain.Recurring{Frequency: 9}, wantErr: domain.ErrInvalidFrequency},
		{name: "Error: Missing schedule", title: "x", schedule: nil, wantErr: domain.ErrTaskScheduleMissed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewTask(tt.title, tt.priority, tt.reminder, tt.schedule)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTask_Toggle(t *testing.T) {
	t.Run("One-off flips the completed flag", func(t *testing.T) {
		task, _ := domain.NewTask("Pay rent", "", "", domain.OneOff{Date: "2024-06-01"})

		done, err := task.Toggle("")
		require.NoError(t, err)
		assert.True(t, done)
		assert.True(t, task.IsCompletedOn("2024-06-01"))

		done, _ = task.Toggle("")
		assert.False(t, done)
	})

	t.Run("Recurring toggles the given date", func(t *testing.T) {
		task, _ := domain.NewTask("Run", "", "", domain.Recurring{Frequency: 3})

		done, err := task.Toggle("2024-06-01")
		require.NoError(t, err)
		assert.True(t, done)
		assert.True(t, task.IsCompletedOn("2024-06-01"))
		assert.False(t, task.IsCompletedOn("2024-06-02"))

		done, _ = task.Toggle("2024-06-01")
		assert.False(t, done)
		assert.Empty(t, task.Schedule.(domain.Recurring).CompletedDays)

		_, err = task.Toggle("")
		assert.ErrorIs(t, err, domain.ErrTaskDateInvalid)
	})
}

func TestTask_Update(t *testing.T) {
	task, _ := domain.NewTask("Run", domain.PriorityHigh, "07:00", domain.Recurring{Frequency: 3})
	_, _ = task.Toggle("2024-06-01")
	task.Notified = true

	err := task.Update("Run far", "", "07:00", domain.Recurring{Frequency: 5})
	require.NoError(t, err)
	r := task.Schedule.(domain.Recurring)
	assert.Equal(t, 5, r.Frequency)
	assert.Equal(t, []string{"2024-06-01"}, r.CompletedDays)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.True(t, task.Notified)

	err = task.Update("Run far", "", "08:00", domain.OneOff{Date: "2024-06-03"})
	require.NoError(t, err)
	assert.False(t, task.IsRecurring())
	assert.False(t, task.Notified, "moving the reminder rearms it")
	assert.False(t, task.IsCompletedOn("2024-06-03"))
}

func TestTask_OccursOn(t *testing.T) {
	oneOff, _ := domain.NewTask("Dentist", "", "", domain.OneOff{Date: "2024-06-05"})
	recurring, _ := domain.NewTask("Read", "", "", domain.Recurring{Frequency: 2})

	assert.True(t, oneOff.OccursOn("2024-06-05"))
	assert.False(t, oneOff.OccursOn("2024-06-06"))
	assert.True(t, recurring.OccursOn("2024-06-06"))
}

func TestTask_ReminderDue(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	task, _ := domain.NewTask("Dentist", "", "15:00", domain.OneOff{Date: "2024-06-05"})

	assert.False(t, task.ReminderDue(time.Date(2024, 6, 5, 14, 59, 0, 0, loc), loc))
	assert.True(t, task.ReminderDue(time.Date(2024, 6, 5, 15, 0, 0, 0, loc), loc))
	assert.True(t, task.ReminderDue(time.Date(2024, 6, 5, 13, 30, 0, 0, time.UTC), loc), "13:30 UTC is 15:30 local")
	assert.False(t, task.ReminderDue(time.Date(2024, 6, 6, 15, 0, 0, 0, loc), loc), "only on the task day")

	task.Notified = true
	assert.False(t, task.ReminderDue(time.Date(2024, 6, 5, 16, 0, 0, 0, loc), loc))

	recurring, _ := domain.NewTask("Water plants", "", "09:00", domain.Recurring{Frequency: 2})
	assert.False(t, recurring.ReminderDue(time.Date(2024, 6, 5, 10, 0, 0, 0, loc), loc))
}

func TestTask_JSON(t *testing.T) {
	t.Run("One-off keeps the flat shape without frequency", func(t *testing.T) {
		task := domain.Task{ID: "t1", Title: "Pay rent", Priority: domain.PriorityHigh, Schedule: domain.OneOff{Date: "2024-06-01", Completed: true}}

		raw, err := json.Marshal(task)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"t1","title":"Pay rent","date":"2024-06-01","completed":true,"priority":"high"}`, string(raw))

		var back domain.Task
		require.NoError(t, json.Unmarshal(raw, &back))
		assert.Equal(t, task, back)
	})

	t.Run("Frequency marks a recurring task", func(t *testing.T) {
		raw := `{"id":"t2","title":"Run","date":"","completed":false,"completedDays":["2024-06-01"],"frequency":3,"priority":"low","reminderTime":"07:00"}`

		var task domain.Task
		require.NoError(t, json.Unmarshal([]byte(raw), &task))
		r, ok := task.Schedule.(domain.Recurring)
		require.True(t, ok)
		assert.Equal(t, 3, r.Frequency)
		assert.Equal(t, []string{"2024-06-01"}, r.CompletedDays)
		assert.Equal(t, "07:00", task.ReminderTime)

		out, err := json.Marshal(task)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"t2","title":"Run","completed":false,"completedDays":["2024-06-01"],"frequency":3,"priority":"low","reminderTime":"07:00"}`, string(out))
	})
	t.Run("Recurring task without completions writes an empty list", func(t *testing.T) {
		task, err := domain.NewTask("Stretch", domain.PriorityLow, "", domain.Recurring{Frequency: 3})
		require.NoError(t, err)
		task.ID = "t3"

		raw, err := json.Marshal(task)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"t3","title":"Stretch","completed":false,"completedDays":[],"frequency":3,"priority":"low"}`, string(raw))

		var back domain.Task
		require.NoError(t, json.Unmarshal(raw, &back))
		assert.Equal(t, domain.Recurring{Frequency: 3, CompletedDays: []string{}}, back.Schedule)
	})
}
