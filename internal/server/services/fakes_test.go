package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	itemsrepo "github.com/dmitrijs2005/itemkeeper/internal/server/repositories/items"
	usersrepo "github.com/dmitrijs2005/itemkeeper/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

// --- users ---

type fakeUsersRepo struct {
	mu     sync.Mutex
	byID   map[string]*models.User
	getErr error
	addErr error
}

func newFakeUsersRepo(users ...*models.User) *fakeUsersRepo {
	r := &fakeUsersRepo{byID: map[string]*models.User{}}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return nil, f.addErr
	}
	for _, x := range f.byID {
		if x.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	cp := *u
	f.byID[u.ID] = &cp
	return u, nil
}

func (f *fakeUsersRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

// --- items ---

type fakeItemsRepo struct {
	mu    sync.Mutex
	items map[string]models.Item
	err   error
	clock time.Time
}

func newFakeItemsRepo(items ...models.Item) *fakeItemsRepo {
	r := &fakeItemsRepo{items: map[string]models.Item{}, clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (f *fakeItemsRepo) FindByID(_ context.Context, id string) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	it, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &it, nil
}

func (f *fakeItemsRepo) FindByOwner(_ context.Context, userID string) ([]models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	res := make([]models.Item, 0)
	for _, it := range f.items {
		if it.UserID == userID {
			res = append(res, it)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (f *fakeItemsRepo) Create(_ context.Context, it *models.Item) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.clock = f.clock.Add(time.Second)
	it.CreatedAt = f.clock
	f.items[it.ID] = *it
	return it, nil
}

func (f *fakeItemsRepo) Update(_ context.Context, it *models.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	cur, ok := f.items[it.ID]
	if !ok {
		return common.ErrorNotFound
	}
	cur.Title, cur.Description = it.Title, it.Description
	f.items[it.ID] = cur
	return nil
}

func (f *fakeItemsRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

// --- manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	i *fakeItemsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository         { return m.u }
func (m *fakeRepoManager) Items(dbx.DBTX) itemsrepo.Repository         { return m.i }

// --- crypto ---

// plainHasher stores "hash:"+password so tests stay fast.
type plainHasher struct {
	verifyCalls int
	verifyErr   error
}

func (p *plainHasher) Hash(pw string) (string, error) { return "hash:" + pw, nil }

func (p *plainHasher) Verify(pw, hash string) (bool, error) {
	p.verifyCalls++
	if p.verifyErr != nil {
		return false, p.verifyErr
	}
	return hash == "hash:"+pw, nil
}
