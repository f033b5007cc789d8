package task

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrTaskNotFound is returned when a task ID has no stored record.
var ErrTaskNotFound = errors.New("task not found")

// MemoryTaskStore keeps task records in memory. The worker is stateless by
// design: records exist for the lifetime of the process so the HTTP surface
// can answer status queries, and the durable artifact of a task is its
// output files on shared storage, not the record.
type MemoryTaskStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*TaskRecord
}

// NewMemoryTaskStore creates an empty MemoryTaskStore.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{
		records: make(map[uuid.UUID]*TaskRecord),
	}
}

// SaveTask persists a newly submitted task as pending.
func (s *MemoryTaskStore) SaveTask(ctx context.Context, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.records[task.ID()] = &TaskRecord{
		ID:        task.ID(),
		Type:      task.Type(),
		Status:    TaskStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

// UpdateTaskStatus updates the status of a task.
func (s *MemoryTaskStore) UpdateTaskStatus(
	ctx context.Context,
	taskID uuid.UUID,
	status TaskStatus,
	errorMsg string,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[taskID]
	if !ok {
		return ErrTaskNotFound
	}
	record.Status = status
	record.ErrorMessage = errorMsg
	record.UpdatedAt = time.Now()
	return nil
}

// SetTaskResult records the encoded result of a completed task.
func (s *MemoryTaskStore) SetTaskResult(ctx context.Context, taskID uuid.UUID, result string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[taskID]
	if !ok {
		return ErrTaskNotFound
	}
	record.Result = result
	record.UpdatedAt = time.Now()
	return nil
}

// GetTask retrieves a copy of the stored record for a task.
func (s *MemoryTaskStore) GetTask(ctx context.Context, taskID uuid.UUID) (*TaskRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[taskID]
	if !ok {
		return nil, ErrTaskNotFound
	}
	copied := *record
	return &copied, nil
}

// Ensure MemoryTaskStore implements TaskStore
var _ TaskStore = (*MemoryTaskStore)(nil)
