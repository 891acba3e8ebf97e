package api

import (
	"context"
	"time"

	"github.com/eventify/eventify/internal/core/domain"
)

// In-memory repositories backing the router tests.

type memUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) seed(u domain.User) *domain.User {
	if u.ID == 0 {
		r.nextID++
		u.ID = r.nextID
	}
	r.users[u.Email] = &u
	return &u
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.Email]; ok {
		return nil, domain.ErrUserExists
	}
	return r.seed(*user), nil
}

func (r *memUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memUserRepo) UpdateName(_ context.Context, id int64, name string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			u.Name = name
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) UpdateRole(_ context.Context, id int64, role string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			u.Role = role
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	for email, u := range r.users {
		if u.ID == id {
			delete(r.users, email)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type memEventRepo struct {
	events map[int64]*domain.Event
	nextID int64
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{events: make(map[int64]*domain.Event)}
}

func (r *memEventRepo) seed(e domain.Event) *domain.Event {
	if e.ID == 0 {
		r.nextID++
		e.ID = r.nextID
	}
	r.events[e.ID] = &e
	return &e
}

func (r *memEventRepo) Create(_ context.Context, event *domain.Event) (*domain.Event, error) {
	return r.seed(*event), nil
}

func (r *memEventRepo) FindByID(_ context.Context, id int64) (*domain.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *memEventRepo) FindAll(_ context.Context) ([]domain.Event, error) {
	out := make([]domain.Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, *e)
	}
	return out, nil
}

func (r *memEventRepo) FindAfter(_ context.Context, after time.Time) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range r.events {
		if e.DateTime.After(after) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *memEventRepo) FindByOrganizerID(_ context.Context, organizerID int64) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range r.events {
		if e.OrganizerID == organizerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *memEventRepo) Update(_ context.Context, event *domain.Event) (*domain.Event, error) {
	if _, ok := r.events[event.ID]; !ok {
		return nil, domain.ErrEventNotFound
	}
	cp := *event
	r.events[event.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memEventRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

type memRegistrationRepo struct {
	regs   []*domain.Registration
	nextID int64
}

func newMemRegistrationRepo() *memRegistrationRepo {
	return &memRegistrationRepo{}
}

func (r *memRegistrationRepo) Create(_ context.Context, reg *domain.Registration) (*domain.Registration, error) {
	for _, existing := range r.regs {
		if existing.UserID == reg.UserID && existing.EventID == reg.EventID {
			return nil, domain.ErrRegistrationExists
		}
	}
	cp := *reg
	r.nextID++
	cp.ID = r.nextID
	r.regs = append(r.regs, &cp)
	out := cp
	return &out, nil
}

func (r *memRegistrationRepo) FindByUserID(_ context.Context, userID int64) ([]domain.Registration, error) {
	var out []domain.Registration
	for _, reg := range r.regs {
		if reg.UserID == userID {
			out = append(out, *reg)
		}
	}
	return out, nil
}

func (r *memRegistrationRepo) FindByUserAndEvent(_ context.Context, userID, eventID int64) (*domain.Registration, error) {
	for _, reg := range r.regs {
		if reg.UserID == userID && reg.EventID == eventID {
			cp := *reg
			return &cp, nil
		}
	}
	return nil, domain.ErrRegistrationNotFound
}

func (r *memRegistrationRepo) CountByEventID(_ context.Context, eventID int64) (int64, error) {
	var n int64
	for _, reg := range r.regs {
		if reg.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (r *memRegistrationRepo) Delete(_ context.Context, id int64) error {
	for i, reg := range r.regs {
		if reg.ID == id {
			r.regs = append(r.regs[:i], r.regs[i+1:]...)
			return nil
		}
	}
	return domain.ErrRegistrationNotFound
}

func (r *memRegistrationRepo) DeleteByEventID(_ context.Context, eventID int64) error {
	kept := r.regs[:0]
	for _, reg := range r.regs {
		if reg.EventID != eventID {
			kept = append(kept, reg)
		}
	}
	r.regs = kept
	return nil
}

// denyingLimiter rejects every login attempt.
type denyingLimiter struct{}

func (denyingLimiter) Allow(context.Context, string) error {
	return domain.ErrLoginThrottled
}

// captureAudit records entries synchronously for assertions.
type captureAudit struct {
	entries []domain.AuditEntry
}

func (a *captureAudit) Record(entry domain.AuditEntry) {
	a.entries = append(a.entries, entry)
}

func (a *captureAudit) actions() []string {
	out := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.Action)
	}
	return out
}
