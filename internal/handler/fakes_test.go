package handler

import (
	"context"
	"sort"
	"sync"
	"time"

	"printshop/internal/model"
	"printshop/internal/repository"
)

type memUsers struct {
	mu    sync.Mutex
	users []model.User
}

func (m *memUsers) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
		if user.InstitutionalID != nil && u.InstitutionalID != nil && *u.InstitutionalID == *user.InstitutionalID {
			return repository.ErrInstitutionalIDTaken
		}
	}
	user.ID = len(m.users) + 1
	m.users = append(m.users, *user)
	return nil
}

func (m *memUsers) find(match func(model.User) bool) *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			found := u
			return &found
		}
	}
	return nil
}

func (m *memUsers) remove(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, u := range m.users {
		if u.Email == email {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return
		}
	}
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return m.find(func(u model.User) bool { return u.Email == email }), nil
}

func (m *memUsers) FindByInstitutionalID(_ context.Context, id string) (*model.User, error) {
	return m.find(func(u model.User) bool { return u.InstitutionalID != nil && *u.InstitutionalID == id }), nil
}

func (m *memUsers) FindByID(_ context.Context, id int) (*model.User, error) {
	return m.find(func(u model.User) bool { return u.ID == id }), nil
}

type memJobs struct {
	mu   sync.Mutex
	jobs []model.PrintJob
}

func (m *memJobs) Create(_ context.Context, job *model.PrintJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job.ID = int64(len(m.jobs) + 1)
	job.Status = model.StatusQueued
	m.jobs = append(m.jobs, *job)
	return nil
}

func (m *memJobs) FindByID(_ context.Context, id int64) (*model.PrintJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, j := range m.jobs {
		if j.ID == id {
			found := j
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memJobs) filter(keep func(model.PrintJob) bool) []model.PrintJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.PrintJob
	for _, j := range m.jobs {
		if keep(j) {
			out = append(out, j)
		}
	}
	return out
}

func (m *memJobs) ListByUser(_ context.Context, userID int) ([]model.PrintJob, error) {
	out := m.filter(func(j model.PrintJob) bool { return j.UserID == userID })
	sort.Slice(out, func(a, b int) bool { return out[a].ID > out[b].ID })
	return out, nil
}

func (m *memJobs) ListActive(_ context.Context) ([]model.PrintJob, error) {
	return m.filter(func(j model.PrintJob) bool { return !j.Status.Terminal() }), nil
}

func (m *memJobs) ListFinished(_ context.Context, limit int) ([]model.PrintJob, error) {
	out := m.filter(func(j model.PrintJob) bool { return j.Status.Terminal() })
	sort.Slice(out, func(a, b int) bool { return out[a].ID > out[b].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memJobs) UpdateStatus(_ context.Context, id int64, from, to model.JobStatus, actorID int, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.jobs {
		j := &m.jobs[i]
		if j.ID != id || j.Status != from {
			continue
		}
		j.Status = to
		j.CompletedAt, j.CompletedBy = nil, nil
		if to == model.StatusCompleted {
			by := actorID
			j.CompletedAt = &at
			j.CompletedBy = &by
		}
		return true, nil
	}
	return false, nil
}

func (m *memJobs) Stats(_ context.Context) (*model.QueueStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &model.QueueStats{ByStatus: make(map[model.JobStatus]int64)}
	for _, j := range m.jobs {
		stats.ByStatus[j.Status]++
		if j.Status == model.StatusCompleted {
			stats.CompletedRevenue += j.Cost
			stats.CompletedPages += int64(j.Pages * j.Copies)
		}
	}
	return stats, nil
}

type okPinger struct{ err error }

func (p okPinger) Ping(context.Context) error { return p.err }
