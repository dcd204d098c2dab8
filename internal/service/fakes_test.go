package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users []*domain.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	user.ID = "user-" + strconv.Itoa(r.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users = append(r.users, &clone)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeComplaintRepo struct {
	mu         sync.Mutex
	complaints []*domain.Complaint
	seq        int
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{}
}

func (r *fakeComplaintRepo) Create(_ context.Context, complaint *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	complaint.ID = "complaint-" + strconv.Itoa(r.seq)
	complaint.CreatedAt = time.Now()
	complaint.UpdatedAt = complaint.CreatedAt
	clone := *complaint
	r.complaints = append(r.complaints, &clone)
	return nil
}

func (r *fakeComplaintRepo) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.complaints {
		if c.ID == id {
			clone := *c
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeComplaintRepo) UpdateStatus(_ context.Context, complaint *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.complaints {
		if c.ID == complaint.ID {
			c.Status = complaint.Status
			updated := time.Now()
			if !updated.After(c.UpdatedAt) {
				updated = c.UpdatedAt.Add(time.Millisecond)
			}
			c.UpdatedAt = updated
			complaint.UpdatedAt = updated
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeComplaintRepo) ListByCitizen(ctx context.Context, citizenID string) ([]domain.Complaint, error) {
	return r.ListWithFilter(ctx, repository.ComplaintFilter{CitizenID: &citizenID})
}

func (r *fakeComplaintRepo) ListWithFilter(_ context.Context, filter repository.ComplaintFilter) ([]domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Complaint
	for _, c := range r.complaints {
		if filter.CitizenID != nil && c.CitizenID != *filter.CitizenID {
			continue
		}
		if filter.CitizenUsername != nil && c.CitizenUsername != *filter.CitizenUsername {
			continue
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.CreatedOn != nil {
			y1, m1, d1 := c.CreatedAt.Date()
			y2, m2, d2 := filter.CreatedOn.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
		}
		if filter.CreatedFrom != nil && c.CreatedAt.Before(*filter.CreatedFrom) {
			continue
		}
		if filter.CreatedTo != nil && c.CreatedAt.After(*filter.CreatedTo) {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

func (r *fakeComplaintRepo) CountByStatus(_ context.Context) (map[domain.ComplaintStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[domain.ComplaintStatus]int64)
	for _, c := range r.complaints {
		counts[c.Status]++
	}
	return counts, nil
}

type fakeRefreshStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newFakeRefreshStore() *fakeRefreshStore {
	return &fakeRefreshStore{tokens: make(map[string]string)}
}

func (s *fakeRefreshStore) Save(_ context.Context, jti, userID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[jti] = userID
	return nil
}

func (s *fakeRefreshStore) Get(_ context.Context, jti string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.tokens[jti]
	if !ok {
		return "", repository.ErrRefreshTokenNotFound
	}
	return userID, nil
}

func (s *fakeRefreshStore) Revoke(_ context.Context, jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, jti)
	return nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return m.err
}

func (m *fakeMailer) sentMails() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail{}, m.sent...)
}
