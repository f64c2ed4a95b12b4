package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/garnizeh/jobboard/pkg/models"
	"github.com/garnizeh/jobboard/pkg/repository"
	"github.com/google/uuid"
)

// Test helpers and mocks. The three repositories share one in-memory store so
// job and application reads can populate the vendor projection the same way
// the sqlite joins do. Setting one of the *Err fields makes the matching
// method fail with that error.
type Mocks struct {
	Vendors      *VendorRepo
	Jobs         *JobRepo
	Applications *ApplicationRepo
}

func NewMocks() *Mocks {
	s := &store{
		vendors:      map[string]models.Vendor{},
		jobs:         map[string]models.Job{},
		applications: map[string]models.Application{},
	}
	return &Mocks{
		Vendors:      &VendorRepo{s: s},
		Jobs:         &JobRepo{s: s},
		Applications: &ApplicationRepo{s: s},
	}
}

type store struct {
	mu           sync.Mutex
	seq          int64
	vendors      map[string]models.Vendor
	jobs         map[string]models.Job
	applications map[string]models.Application
}

// stamp returns strictly increasing timestamps so list ordering is stable.
func (s *store) stamp() time.Time {
	s.seq++
	return time.Unix(0, 0).UTC().Add(time.Duration(s.seq) * time.Millisecond)
}

func (s *store) vendorRef(id string) *models.VendorRef {
	v, ok := s.vendors[id]
	if !ok {
		return nil
	}
	return &models.VendorRef{ID: v.ID, Name: v.Name, Email: v.Email}
}

var _ repository.VendorRepo = (*VendorRepo)(nil)
var _ repository.JobRepo = (*JobRepo)(nil)
var _ repository.ApplicationRepo = (*ApplicationRepo)(nil)

type VendorRepo struct {
	s *store

	CreateErr error
	GetErr    error
}

func (m *VendorRepo) CreateVendor(ctx context.Context, v *models.Vendor) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	for _, existing := range m.s.vendors {
		if existing.Email == v.Email {
			return "", repository.ErrDuplicate
		}
	}
	v.ID = uuid.NewString()
	v.CreatedAt = m.s.stamp()
	v.UpdatedAt = v.CreatedAt
	m.s.vendors[v.ID] = *v
	return v.ID, nil
}

func (m *VendorRepo) GetVendorByID(ctx context.Context, id string) (*models.Vendor, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if v, ok := m.s.vendors[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (m *VendorRepo) GetVendorByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	for _, v := range m.s.vendors {
		if v.Email == email {
			return &v, nil
		}
	}
	return nil, nil
}

// Delete removes a vendor; the service layer never deletes vendors, tests use
// it to simulate an identity disappearing after a token was issued.
func (m *VendorRepo) Delete(id string) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.vendors, id)
}

type JobRepo struct {
	s *store

	CreateErr error
	GetErr    error
	ListErr   error
	UpdateErr error
	DeleteErr error
}

func (m *JobRepo) CreateJob(ctx context.Context, j *models.Job) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if j.Status == "" {
		j.Status = models.JobStatusOpen
	}
	j.ID = uuid.NewString()
	j.CreatedAt = m.s.stamp()
	j.UpdatedAt = j.CreatedAt
	stored := *j
	stored.Vendor = nil
	m.s.jobs[j.ID] = stored
	return j.ID, nil
}

func (m *JobRepo) GetJob(ctx context.Context, id string) (*models.Job, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	j, ok := m.s.jobs[id]
	if !ok {
		return nil, nil
	}
	j.Vendor = m.s.vendorRef(j.VendorID)
	return &j, nil
}

func (m *JobRepo) ListJobsByStatus(ctx context.Context, status models.JobStatus) ([]models.Job, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	var out []models.Job
	for _, j := range m.s.jobs {
		if j.Status != status {
			continue
		}
		j.Vendor = m.s.vendorRef(j.VendorID)
		out = append(out, j)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.Before(out[b].CreatedAt) })
	return out, nil
}

func (m *JobRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	current, ok := m.s.jobs[j.ID]
	if !ok {
		return nil
	}
	current.Title = j.Title
	current.Description = j.Description
	current.Requirements = j.Requirements
	current.ApplicationDeadline = j.ApplicationDeadline
	current.Status = j.Status
	current.UpdatedAt = m.s.stamp()
	m.s.jobs[j.ID] = current
	j.UpdatedAt = current.UpdatedAt
	return nil
}

func (m *JobRepo) DeleteJob(ctx context.Context, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	delete(m.s.jobs, id)
	return nil
}

type ApplicationRepo struct {
	s *store

	CreateErr error
	GetErr    error
	ListErr   error
	UpdateErr error
}

func (m *ApplicationRepo) CreateApplication(ctx context.Context, a *models.Application) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if a.Status == "" {
		a.Status = models.ApplicationStatusPending
	}
	a.ID = uuid.NewString()
	a.CreatedAt = m.s.stamp()
	a.UpdatedAt = a.CreatedAt
	stored := *a
	stored.Vendor = nil
	m.s.applications[a.ID] = stored
	return a.ID, nil
}

func (m *ApplicationRepo) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	a, ok := m.s.applications[id]
	if !ok {
		return nil, nil
	}
	a.Vendor = m.s.vendorRef(a.VendorID)
	return &a, nil
}

func (m *ApplicationRepo) ListApplicationsByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	var out []models.Application
	for _, a := range m.s.applications {
		if a.JobID != jobID {
			continue
		}
		a.Vendor = m.s.vendorRef(a.VendorID)
		out = append(out, a)
	}
	sort.Slice(out, func(x, y int) bool { return out[x].CreatedAt.Before(out[y].CreatedAt) })
	return out, nil
}

func (m *ApplicationRepo) UpdateApplicationStatus(ctx context.Context, a *models.Application) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	current, ok := m.s.applications[a.ID]
	if !ok {
		return nil
	}
	current.Status = a.Status
	current.UpdatedAt = m.s.stamp()
	m.s.applications[a.ID] = current
	a.UpdatedAt = current.UpdatedAt
	return nil
}
