package store

import (
	"errors"
	"testing"

	"github.com/taskwell/taskwell-api/internal/domain"
)

func TestTaskFilterValidate(t *testing.T) {
	validStatus := domain.TaskStatusDone
	invalidStatus := domain.TaskStatus("pending")
	validPriority := domain.TaskPriorityHigh
	invalidPriority := domain.TaskPriority("urgent")

	tests := []struct {
		name    string
		filter  TaskFilter
		wantErr bool
	}{
		{"zero filter", TaskFilter{}, false},
		{"valid status", TaskFilter{Status: &validStatus}, false},
		{"invalid status", TaskFilter{Status: &invalidStatus}, true},
		{"valid priority", TaskFilter{Priority: &validPriority}, false},
		{"invalid priority", TaskFilter{Priority: &invalidPriority}, true},
		{"valid order by", TaskFilter{OrderBy: TaskOrderByDeadline}, false},
		{"invalid order by", TaskFilter{OrderBy: "title"}, true},
		{"valid order dir", TaskFilter{OrderDir: OrderDesc}, false},
		{"invalid order dir", TaskFilter{OrderDir: "descending"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.filter.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidFilter) {
					t.Errorf("Expected error wrapping %v, got %v", ErrInvalidFilter, err)
				}
			} else if err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestTaskFilterEffectiveLimit(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{0, DefaultTaskLimit},
		{-5, DefaultTaskLimit},
		{1, 1},
		{MaxTaskLimit, MaxTaskLimit},
		{MaxTaskLimit + 1, MaxTaskLimit},
		{1000, MaxTaskLimit},
	}

	for _, tc := range tests {
		f := TaskFilter{Limit: tc.limit}
		if got := f.EffectiveLimit(); got != tc.want {
			t.Errorf("EffectiveLimit with limit %d = %d, want %d", tc.limit, got, tc.want)
		}
	}
}

func TestTaskFilterEffectiveOffset(t *testing.T) {
	tests := []struct {
		offset int
		want   int
	}{
		{0, 0},
		{-1, 0},
		{25, 25},
	}

	for _, tc := range tests {
		f := TaskFilter{Offset: tc.offset}
		if got := f.EffectiveOffset(); got != tc.want {
			t.Errorf("EffectiveOffset with offset %d = %d, want %d", tc.offset, got, tc.want)
		}
	}
}
