// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/ledger"
)

// RepoMem keeps ledger accounts in memory and hands out per-account locks.
//
// Accounts are returned by pointer so every transaction works on the same entry log.
// Callers must hold an account's lock, see Lock, while reading or changing it.
type RepoMem struct {
	mu       sync.RWMutex
	accounts map[int64]*ledger.Account
	locks    map[int64]*sync.Mutex
	lastID   int64
}

// NewRepoMem returns an empty account RepoMem.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		accounts: make(map[int64]*ledger.Account),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// Create stores a new account for info and returns it. A zero info.ID is replaced with
// the next free ID.
func (r *RepoMem) Create(ctx context.Context, info ledger.AccountInfo) (*ledger.Account, error) {
	l := zerolog.Ctx(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if info.ID == 0 {
		info.ID = r.lastID + 1
	}

	if _, ok := r.accounts[info.ID]; ok {
		l.Info().Int64("account_id", info.ID).Msg("account already exists")
		return nil, domain.ErrAccountAlreadyExists
	}

	a, err := ledger.NewAccount(info)
	if err != nil {
		l.Info().Err(err).Send()
		return nil, domain.ErrInvalidAccountType
	}

	r.accounts[info.ID] = a
	r.locks[info.ID] = &sync.Mutex{}

	if info.ID > r.lastID {
		r.lastID = info.ID
	}

	return a, nil
}

// Get returns the account with the given id.
func (r *RepoMem) Get(ctx context.Context, id int64) (*ledger.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		zerolog.Ctx(ctx).Info().Int64("account_id", id).Msg("account not found")
		return nil, domain.ErrAccountNotFound
	}

	return a, nil
}

// List returns a page of accounts ordered by id.
func (r *RepoMem) List(ctx context.Context, limit int32, offset int64) ([]*ledger.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.accounts))
	for id := range r.accounts {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if offset < 0 {
		offset = 0
	}

	items := []*ledger.Account{}

	for i := offset; i < int64(len(ids)) && len(items) < int(limit); i++ {
		items = append(items, r.accounts[ids[i]])
	}

	return items, nil
}

// Lock acquires the locks of the given existing accounts and returns the function
// releasing them.
//
// To avoid deadlocks locks are always taken in ascending id order; duplicate ids
// are locked once.
func (r *RepoMem) Lock(ids ...int64) (unlock func()) {
	sorted := make([]int64, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	r.mu.RLock()
	held := make([]*sync.Mutex, 0, len(sorted))

	for i, id := range sorted {
		if i > 0 && sorted[i-1] == id {
			continue
		}

		if m, ok := r.locks[id]; ok {
			held = append(held, m)
		}
	}
	r.mu.RUnlock()

	for _, m := range held {
		m.Lock()
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
