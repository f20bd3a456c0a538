package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gatewatch/server/internal/gatewatch/store"
)

// OperatorStore is an in-memory operator directory for tests.
type OperatorStore struct {
	mu        sync.RWMutex
	operators map[int64]store.OperatorRecord
}

func NewOperatorStore(operators ...store.OperatorRecord) *OperatorStore {
	m := make(map[int64]store.OperatorRecord, len(operators))
	for _, op := range operators {
		m[op.ID] = op
	}
	return &OperatorStore{operators: m}
}

func (s *OperatorStore) Get(_ context.Context, id int64) (store.OperatorRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	op, ok := s.operators[id]
	if !ok || !op.Active {
		return store.OperatorRecord{}, store.ErrNotFound
	}
	return op, nil
}

func (s *OperatorStore) List(_ context.Context) ([]store.OperatorRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.OperatorRecord
	for _, op := range s.operators {
		if op.Active {
			out = append(out, op)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// EmployeeStore is an in-memory employee directory for tests.
type EmployeeStore struct {
	mu        sync.RWMutex
	employees map[int64]store.EmployeeRecord
}

func NewEmployeeStore(employees ...store.EmployeeRecord) *EmployeeStore {
	m := make(map[int64]store.EmployeeRecord, len(employees))
	for _, e := range employees {
		m[e.ID] = e
	}
	return &EmployeeStore{employees: m}
}

func (s *EmployeeStore) Exists(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.employees[id]
	return ok, nil
}

func (s *EmployeeStore) List(_ context.Context) ([]store.EmployeeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.EmployeeRecord
	for _, e := range s.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}
