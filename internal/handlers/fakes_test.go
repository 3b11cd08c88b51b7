package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"

	"github.com/mernshopper/shopper-backend/internal/models"
)

func decodeBody(rec *httptest.ResponseRecorder, v interface{}) error {
	return json.NewDecoder(rec.Body).Decode(v)
}

// --- in-memory fakes shared by the handler tests ---

type fakeUserStore struct {
	users []*models.User

	findErr   error
	createErr error
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindByUsernameAndEmail(ctx context.Context, username, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username && u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) UsernameTaken(ctx context.Context, username string) (bool, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) EmailTaken(ctx context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	copied := *user
	f.users = append(f.users, &copied)
	return nil
}

func (f *fakeUserStore) UpdatePasswordHashByEmail(ctx context.Context, email, passwordHash string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			u.PasswordHash = passwordHash
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeRecoveryStore struct {
	requests []*models.RecoveryRequest

	clearCalls int
}

func (f *fakeRecoveryStore) ClearAll(ctx context.Context) error {
	f.clearCalls++
	f.requests = nil
	return nil
}

func (f *fakeRecoveryStore) FindByEmail(ctx context.Context, email string) (*models.RecoveryRequest, error) {
	for _, r := range f.requests {
		if r.Email == email {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRecoveryStore) FindByActivationLink(ctx context.Context, link string) (*models.RecoveryRequest, error) {
	for _, r := range f.requests {
		if r.ActivationLink == link {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRecoveryStore) Create(ctx context.Context, req *models.RecoveryRequest) error {
	copied := *req
	f.requests = append(f.requests, &copied)
	return nil
}

func (f *fakeRecoveryStore) Delete(ctx context.Context, link string) error {
	kept := f.requests[:0]
	for _, r := range f.requests {
		if r.ActivationLink != link {
			kept = append(kept, r)
		}
	}
	f.requests = kept
	return nil
}

type sentMail struct {
	to      string
	subject string
	html    string
}

type fakeMailer struct {
	sent    []sentMail
	sendErr error
}

func (f *fakeMailer) Send(to, subject, html string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, html: html})
	return nil
}
