package services

import (
	"context"
	"fmt"
	"time"

	"eventhub/internal/domain"
)

// In-memory fakes shared by the service tests in this package.

type fakeUserRepo struct {
	byID      map[string]*domain.User
	byEmail   map[string]*domain.User
	nextID    int
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
		nextID:  1,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

type fakeEventRepo struct {
	byID      map[string]*domain.Event
	nextID    int
	createErr error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[string]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	out := make([]*domain.Event, 0, len(f.byID))
	for _, e := range f.byID {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	copied := *e
	f.byID[e.ID] = &copied
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeRegistrationRepo struct {
	byPair    map[string]*domain.EventRegistration // eventID|userID
	nextID    int
	createErr error
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		byPair: make(map[string]*domain.EventRegistration),
		nextID: 1,
	}
}

func pairKey(eventID, userID string) string { return eventID + "|" + userID }

func (f *fakeRegistrationRepo) Create(ctx context.Context, reg *domain.EventRegistration) error {
	if f.createErr != nil {
		return f.createErr
	}
	key := pairKey(reg.EventID, reg.UserID)
	if _, ok := f.byPair[key]; ok {
		return domain.ErrAlreadyRegistered
	}
	reg.ID = fmt.Sprintf("reg-%d", f.nextID)
	f.nextID++
	f.byPair[key] = reg
	return nil
}

func (f *fakeRegistrationRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error) {
	if reg, ok := f.byPair[pairKey(eventID, userID)]; ok {
		return reg, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRegistrationRepo) Delete(ctx context.Context, eventID, userID string) error {
	key := pairKey(eventID, userID)
	if _, ok := f.byPair[key]; !ok {
		return domain.ErrNotRegistered
	}
	delete(f.byPair, key)
	return nil
}

// deleteByEvent mimics the FK cascade that fires when an event row is removed.
func (f *fakeRegistrationRepo) deleteByEvent(eventID string) {
	for key, reg := range f.byPair {
		if reg.EventID == eventID {
			delete(f.byPair, key)
		}
	}
}

// fakeHasher records inputs verbatim so tests can assert on stored values
// without paying for bcrypt.
type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "fake-salt", nil }

func (fakeHasher) Hash(salt, password string) (string, error) {
	return "hashed(" + salt + ":" + password + ")", nil
}

func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != "hashed("+salt+":"+password+")" {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

type fakeIssuer struct {
	err error
}

func (f *fakeIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + userID, nil
}

// fakeEmailService records sends; err makes every send fail.
type fakeEmailService struct {
	welcomes      []*domain.WelcomeEmailData
	confirmations []*domain.RegistrationEmailData
	err           error
}

func (f *fakeEmailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.welcomes = append(f.welcomes, data)
	return nil
}

func (f *fakeEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.confirmations = append(f.confirmations, data)
	return nil
}
