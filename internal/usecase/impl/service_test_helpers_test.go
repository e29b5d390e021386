package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"fitflex/config"
	"fitflex/internal/domain/entity"
	domainerrors "fitflex/internal/domain/errors"
	"fitflex/internal/domain/repository"
	"fitflex/internal/domain/service"
	"fitflex/internal/errors"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestResetConfig(tokenTTL time.Duration, exposeSecret bool) *config.Config {
	cfg := &config.Config{
		PasswordReset: &config.PasswordResetConfig{
			TokenTTL:     tokenTTL,
			ExposeSecret: exposeSecret,
		},
	}
	cfg.Env.Env = "test"

	return cfg
}

// memTxManager stands in for the gorm transaction manager. Row locks taken
// during a transaction are released only after the transaction function
// returns, mirroring how row locks live until commit or rollback.
type memTxManager struct {
	mu       sync.Mutex
	factory  repository.RepositoryFactory
	txStates map[context.Context]*memTxState
}

type memTxState struct {
	unlocks []func()
}

func newMemTxManager() *memTxManager {
	return &memTxManager{txStates: make(map[context.Context]*memTxState)}
}

func (tm *memTxManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	state := &memTxState{}

	tm.mu.Lock()
	tm.txStates[ctx] = state
	tm.mu.Unlock()

	defer func() {
		tm.mu.Lock()
		delete(tm.txStates, ctx)
		tm.mu.Unlock()

		for i := len(state.unlocks) - 1; i >= 0; i-- {
			state.unlocks[i]()
		}
	}()

	return fn(tm.factory)
}

func (tm *memTxManager) registerUnlock(ctx context.Context, unlockFn func()) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	state, ok := tm.txStates[ctx]
	if !ok {
		return errors.New("transaction state not found for context")
	}

	state.unlocks = append(state.unlocks, unlockFn)

	return nil
}

type memRowLockManager struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newMemRowLockManager() *memRowLockManager {
	return &memRowLockManager{locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (m *memRowLockManager) lockRow(id uuid.UUID) func() {
	m.mu.Lock()
	lock, ok := m.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[id] = lock
	}
	m.mu.Unlock()

	lock.Lock()

	return lock.Unlock
}

type memRepoFactory struct {
	accountRepo repository.AccountRepository
	tokenRepo   repository.ResetTokenRepository
	classRepo   repository.ClassRepository
	bookingRepo repository.BookingRepository
}

func (f *memRepoFactory) AccountRepo() repository.AccountRepository {
	return f.accountRepo
}

func (f *memRepoFactory) ResetTokenRepo() repository.ResetTokenRepository {
	return f.tokenRepo
}

func (f *memRepoFactory) ClassRepo() repository.ClassRepository {
	return f.classRepo
}

func (f *memRepoFactory) BookingRepo() repository.BookingRepository {
	return f.bookingRepo
}

// memAccountRepo keeps accounts in memory, enforcing variant-scoped name and
// email uniqueness the way the table constraints do.
type memAccountRepo struct {
	mu       sync.Mutex
	accounts map[entity.AccountVariant]map[uuid.UUID]*entity.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{
		accounts: map[entity.AccountVariant]map[uuid.UUID]*entity.Account{
			entity.AccountVariantUser:   {},
			entity.AccountVariantStudio: {},
		},
	}
}

func (r *memAccountRepo) FindByID(_ context.Context, variant entity.AccountVariant, id uuid.UUID) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[variant][id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	copied := *account

	return &copied, nil
}

func (r *memAccountRepo) FindByEmail(_ context.Context, variant entity.AccountVariant, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts[variant] {
		if account.Email == email {
			copied := *account

			return &copied, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *memAccountRepo) ExistsByNameOrEmail(_ context.Context, variant entity.AccountVariant, name, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.taken(variant, name, email), nil
}

func (r *memAccountRepo) taken(variant entity.AccountVariant, name, email string) bool {
	for _, account := range r.accounts[variant] {
		if account.Name == name || account.Email == email {
			return true
		}
	}

	return false
}

func (r *memAccountRepo) Create(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken(account.Variant, account.Name, account.Email) {
		return domainerrors.ErrAccountConflict.WrapMessage("name or email already exists")
	}

	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	copied := *account
	r.accounts[account.Variant][account.ID] = &copied

	return nil
}

func (r *memAccountRepo) UpdatePasswordHash(_ context.Context, variant entity.AccountVariant, id uuid.UUID, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[variant][id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	account.PasswordHash = newHash
	account.UpdatedAt = time.Now()

	return nil
}

// memResetTokenRepo keeps reset tokens in memory. A sequence counter stands
// in for created_at ordering so newest-token lookups stay deterministic.
// FindLatestValidByHash takes a per-token row lock the way the real
// repository's SELECT FOR UPDATE does, so concurrent redemptions serialize.
type memResetTokenRepo struct {
	mu        sync.Mutex
	seq       int64
	tokens    map[uuid.UUID]*entity.PasswordResetToken
	order     map[uuid.UUID]int64
	txManager *memTxManager
	locker    *memRowLockManager
}

func newMemResetTokenRepo(txManager *memTxManager) *memResetTokenRepo {
	return &memResetTokenRepo{
		tokens:    make(map[uuid.UUID]*entity.PasswordResetToken),
		order:     make(map[uuid.UUID]int64),
		txManager: txManager,
		locker:    newMemRowLockManager(),
	}
}

func (r *memResetTokenRepo) Create(_ context.Context, token *entity.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	token.ID = uuid.New()
	token.CreatedAt = time.Now()
	copied := *token
	r.tokens[token.ID] = &copied
	r.order[token.ID] = r.seq

	return nil
}

func (r *memResetTokenRepo) FindLatestValidByHash(ctx context.Context, tokenHash string, now time.Time) (*entity.PasswordResetToken, error) {
	// A locked row can be deleted while we wait, so retry the lookup until a
	// candidate survives its lock, the way predicate re-evaluation works
	// after a blocking SELECT FOR UPDATE.
	for {
		latest := r.latestValid(tokenHash, now)
		if latest == nil {
			return nil, repository.ErrResetTokenNotFound
		}

		unlockFn := r.locker.lockRow(latest.ID)
		if err := r.txManager.registerUnlock(ctx, unlockFn); err != nil {
			// Direct call outside a transaction; hold no lock.
			unlockFn()
		}

		r.mu.Lock()
		token, ok := r.tokens[latest.ID]
		r.mu.Unlock()
		if !ok {
			continue
		}
		copied := *token

		return &copied, nil
	}
}

func (r *memResetTokenRepo) latestValid(tokenHash string, now time.Time) *entity.PasswordResetToken {
	r.mu.Lock()
	defer r.mu.Unlock()

	var latest *entity.PasswordResetToken
	var latestSeq int64
	for id, token := range r.tokens {
		if token.TokenHash != tokenHash || !token.ExpiresAt.After(now) {
			continue
		}
		if latest == nil || r.order[id] > latestSeq {
			latest = token
			latestSeq = r.order[id]
		}
	}

	return latest
}

func (r *memResetTokenRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, token := range r.tokens {
		if token.UserID == userID {
			delete(r.tokens, id)
			delete(r.order, id)
		}
	}

	return nil
}

func (r *memResetTokenRepo) DeleteExpired(_ context.Context, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, token := range r.tokens {
		if !token.ExpiresAt.After(now) {
			delete(r.tokens, id)
			delete(r.order, id)
		}
	}

	return nil
}

func (r *memResetTokenRepo) countByUser(userID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, token := range r.tokens {
		if token.UserID == userID {
			count++
		}
	}

	return count
}

// memClassRepo keeps classes in memory. FindByIDForUpdate takes a per-row
// mutex that the transaction manager releases at commit, reproducing the
// SELECT FOR UPDATE serialization the real repository relies on.
type memClassRepo struct {
	mu        sync.Mutex
	classes   map[uuid.UUID]*entity.Class
	txManager *memTxManager
	locker    *memRowLockManager
	lockCalls atomic.Int64
}

func newMemClassRepo(txManager *memTxManager) *memClassRepo {
	return &memClassRepo{
		classes:   make(map[uuid.UUID]*entity.Class),
		txManager: txManager,
		locker:    newMemRowLockManager(),
	}
}

func (r *memClassRepo) Create(_ context.Context, class *entity.Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	class.ID = uuid.New()
	class.CreatedAt = time.Now()
	class.UpdatedAt = class.CreatedAt
	copied := *class
	r.classes[class.ID] = &copied

	return nil
}

func (r *memClassRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	class, ok := r.classes[id]
	if !ok {
		return nil, repository.ErrClassNotFound
	}
	copied := *class

	return &copied, nil
}

func (r *memClassRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Class, error) {
	r.mu.Lock()
	_, ok := r.classes[id]
	r.mu.Unlock()
	if !ok {
		return nil, repository.ErrClassNotFound
	}

	unlockFn := r.locker.lockRow(id)
	if err := r.txManager.registerUnlock(ctx, unlockFn); err != nil {
		unlockFn()

		return nil, errors.Wrap(err, "failed to register transaction unlock")
	}
	r.lockCalls.Add(1)

	// Re-read under the row lock: the row may have changed while we waited.
	r.mu.Lock()
	defer r.mu.Unlock()
	class, ok := r.classes[id]
	if !ok {
		return nil, repository.ErrClassNotFound
	}
	copied := *class

	return &copied, nil
}

func (r *memClassRepo) Update(_ context.Context, class *entity.Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.classes[class.ID]; !ok {
		return repository.ErrClassNotFound
	}
	class.UpdatedAt = time.Now()
	copied := *class
	r.classes[class.ID] = &copied

	return nil
}

func (r *memClassRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.classes[id]; !ok {
		return repository.ErrClassNotFound
	}
	delete(r.classes, id)

	return nil
}

func (r *memClassRepo) List(_ context.Context, studioID *uuid.UUID) ([]*entity.Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	classes := make([]*entity.Class, 0, len(r.classes))
	for _, class := range r.classes {
		if studioID != nil && class.StudioID != *studioID {
			continue
		}
		copied := *class
		classes = append(classes, &copied)
	}
	sort.Slice(classes, func(i, j int) bool {
		return classes[i].StartsAt.Before(classes[j].StartsAt)
	})

	return classes, nil
}

// memBookingRepo keeps bookings in memory in insertion order.
type memBookingRepo struct {
	mu       sync.Mutex
	bookings []*entity.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{}
}

func (r *memBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	copied := *booking
	r.bookings = append(r.bookings, &copied)

	return nil
}

func (r *memBookingRepo) CountByClassID(_ context.Context, classID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, booking := range r.bookings {
		if booking.ClassID == classID {
			count++
		}
	}

	return count, nil
}

func (r *memBookingRepo) ExistsByClassID(_ context.Context, classID uuid.UUID) (bool, error) {
	count, err := r.CountByClassID(context.Background(), classID)

	return count > 0, err
}

func (r *memBookingRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var bookings []*entity.Booking
	for _, booking := range r.bookings {
		if booking.UserID == userID {
			copied := *booking
			bookings = append(bookings, &copied)
		}
	}

	return bookings, nil
}

type fakeHasher struct{}

func (h *fakeHasher) Hash(password string) (string, error) {
	return "hashed-" + password, nil
}

func (h *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed-"+password
}

type fakeTokenService struct {
	seq atomic.Int64
}

func (s *fakeTokenService) GenerateAccessToken(accountID uuid.UUID, role entity.AccountVariant) (string, error) {
	n := s.seq.Add(1)

	return fmt.Sprintf("access-%s-%s-%d", role, accountID, n), nil
}

func (s *fakeTokenService) ValidateToken(_ string) (*service.AccessClaims, error) {
	panic("not implemented")
}

type fakeSecretService struct {
	seq atomic.Int64
}

func (s *fakeSecretService) NewSecret() (string, error) {
	n := s.seq.Add(1)

	return fmt.Sprintf("secret-%d", n), nil
}

func (s *fakeSecretService) HashSecret(secret string) string {
	return "hash-" + secret
}
