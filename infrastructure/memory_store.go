package infrastructure

import (
	"context"
	"strings"
	"sync"
	"time"

	"job-board/domain"
)

// MemoryJobStore keeps jobs in insertion order for the lifetime of the
// process.
type MemoryJobStore struct {
	mu     sync.RWMutex
	jobs   []domain.Job
	nextID uint
	now    func() time.Time
}

func NewMemoryJobStore() *MemoryJobStore {
	return &MemoryJobStore{nextID: 1, now: time.Now}
}

func (s *MemoryJobStore) Create(_ context.Context, input domain.JobInput) (domain.Job, error) {
	job, err := domain.NewJob(input, s.now())
	if err != nil {
		return domain.Job{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job.ID = s.nextID
	s.nextID++
	s.jobs = append(s.jobs, job)

	return job, nil
}

func (s *MemoryJobStore) List(_ context.Context, filter string, req domain.PageRequest) (domain.Page[domain.Job], error) {
	if err := req.Validate(); err != nil {
		return domain.Page[domain.Job]{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.jobs
	if strings.TrimSpace(filter) != "" {
		matched = make([]domain.Job, 0, len(s.jobs))
		for _, job := range s.jobs {
			if job.TitleContains(filter) {
				matched = append(matched, job)
			}
		}
	}

	lo, hi := req.Bounds(len(matched))
	items := make([]domain.Job, hi-lo)
	copy(items, matched[lo:hi])

	return domain.NewPage(items, int64(len(matched)), req), nil
}

func (s *MemoryJobStore) Get(_ context.Context, id uint) (domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, job := range s.jobs {
		if job.ID == id {
			return job, nil
		}
	}
	return domain.Job{}, domain.ErrNotFound
}

func (s *MemoryJobStore) Close() error {
	return nil
}
