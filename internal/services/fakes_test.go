package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"contestbot/internal/models"
	"contestbot/internal/repositories"
)

type fakeUserStore struct {
	mu    sync.Mutex
	users map[int64]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (f *fakeUserStore) Upsert(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Id]; ok {
		return nil
	}
	clone := *user
	f.users[user.Id] = &clone
	return nil
}

func (f *fakeUserStore) FindById(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) SetPhone(ctx context.Context, id int64, phone string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.PhoneNumber.String = phone
	user.PhoneNumber.Valid = true
	return nil
}

func (f *fakeUserStore) CreditBalance(ctx context.Context, id int64, amount int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Balance += amount
	return nil
}

func (f *fakeUserStore) TouchActivity(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		user.LastActiveAt = time.Now()
	}
	return nil
}

func (f *fakeUserStore) Rank(ctx context.Context, id int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	target, ok := f.users[id]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	rank := 1
	for _, user := range f.users {
		if user.IsActive && user.Balance > target.Balance {
			rank++
		}
	}
	return rank, nil
}

func (f *fakeUserStore) TopUsers(ctx context.Context, limit int) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	top := make([]models.User, 0, len(f.users))
	for _, user := range f.users {
		if user.IsActive && user.Balance > 0 {
			top = append(top, *user)
		}
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Balance != top[j].Balance {
			return top[i].Balance > top[j].Balance
		}
		if !top[i].RegisteredAt.Equal(top[j].RegisteredAt) {
			return top[i].RegisteredAt.Before(top[j].RegisteredAt)
		}
		return top[i].Id < top[j].Id
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}

func (f *fakeUserStore) ResetAllBalances(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		user.Balance = 0
	}
	return nil
}

func (f *fakeUserStore) Search(ctx context.Context, term string, limit int) ([]models.User, error) {
	return nil, nil
}

func (f *fakeUserStore) CountRegistered(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, user := range f.users {
		if user.PhoneNumber.Valid {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserStore) CountActiveSince(ctx context.Context, since time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, user := range f.users {
		if user.LastActiveAt.After(since) {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserStore) CountRegisteredSince(ctx context.Context, since time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, user := range f.users {
		if user.RegisteredAt.After(since) {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserStore) SumBalances(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum int64
	for _, user := range f.users {
		sum += user.Balance
	}
	return sum, nil
}

func (f *fakeUserStore) RegisteredChatIds(ctx context.Context) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.users))
	for id, user := range f.users {
		if user.PhoneNumber.Valid {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeUserStore) ExportRows(ctx context.Context, limit int) ([]models.ExportRow, error) {
	return nil, nil
}

// fakeReferralStore mirrors the repository's transactional behavior: the
// edge insert and the referrer credit succeed or fail together.
type fakeReferralStore struct {
	mu      sync.Mutex
	users   *fakeUserStore
	records map[int64]models.Referral
}

func newFakeReferralStore(users *fakeUserStore) *fakeReferralStore {
	return &fakeReferralStore{
		users:   users,
		records: make(map[int64]models.Referral),
	}
}

func (f *fakeReferralStore) SaveWithBonus(ctx context.Context, ref *models.Referral) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[ref.ReferredId]; ok {
		return repositories.ErrAlreadyRecorded
	}
	if err := f.users.CreditBalance(ctx, ref.ReferrerId, ref.BonusAmount); err != nil {
		return err
	}
	f.records[ref.ReferredId] = *ref
	return nil
}

func (f *fakeReferralStore) FindByReferredId(ctx context.Context, referredId int64) (*models.Referral, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ref, ok := f.records[referredId]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &ref, nil
}

func (f *fakeReferralStore) CountByReferrer(ctx context.Context, referrerId int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, ref := range f.records {
		if ref.ReferrerId == referrerId {
			count++
		}
	}
	return count, nil
}

func (f *fakeReferralStore) CountAll(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records), nil
}

func (f *fakeReferralStore) TopReferrers(ctx context.Context, limit int) ([]models.ReferrerCount, error) {
	return nil, nil
}

type fakeStatsStore struct {
	mu   sync.Mutex
	days map[string]models.DailyStat
}

func newFakeStatsStore() *fakeStatsStore {
	return &fakeStatsStore{days: make(map[string]models.DailyStat)}
}

func (f *fakeStatsStore) Bump(ctx context.Context, day time.Time, delta models.StatDelta) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := day.Format("2006-01-02")
	stat := f.days[key]
	stat.Day = day
	stat.NewUsers += delta.NewUsers
	stat.MessagesSent += delta.MessagesSent
	stat.ReferralsMade += delta.ReferralsMade
	if delta.ActiveUsers > 0 {
		stat.ActiveUsers = delta.ActiveUsers
	}
	f.days[key] = stat
	return nil
}

func (f *fakeStatsStore) Day(ctx context.Context, day time.Time) (*models.DailyStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stat := f.days[day.Format("2006-01-02")]
	stat.Day = day
	return &stat, nil
}

func (f *fakeStatsStore) SumSince(ctx context.Context, since time.Time) (*models.PeriodStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum := &models.PeriodStats{}
	for _, stat := range f.days {
		if stat.Day.Before(since) {
			continue
		}
		sum.NewUsers += stat.NewUsers
		sum.MessagesSent += stat.MessagesSent
		sum.ReferralsMade += stat.ReferralsMade
	}
	return sum, nil
}

func (f *fakeStatsStore) Range(ctx context.Context, since time.Time) ([]models.DailyStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := make([]models.DailyStat, 0, len(f.days))
	for _, stat := range f.days {
		if !stat.Day.Before(since) {
			stats = append(stats, stat)
		}
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Day.Before(stats[j].Day) })
	return stats, nil
}

func (f *fakeStatsStore) TotalMessages(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, stat := range f.days {
		total += stat.MessagesSent
	}
	return total, nil
}

type fakeSettingStore struct {
	mu       sync.Mutex
	settings map[string]string
}

func newFakeSettingStore() *fakeSettingStore {
	return &fakeSettingStore{settings: make(map[string]string)}
}

func (f *fakeSettingStore) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings[key] = value
	return nil
}

func (f *fakeSettingStore) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.settings[key]
	if !ok {
		return "", repositories.ErrNotFound
	}
	return value, nil
}

type fakeSubscriptionStore struct {
	mu   sync.Mutex
	subs []models.MandatorySubscription
}

func (f *fakeSubscriptionStore) Save(ctx context.Context, sub *models.MandatorySubscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub.Id = int64(len(f.subs) + 1)
	f.subs = append(f.subs, *sub)
	return nil
}

func (f *fakeSubscriptionStore) FindActive(ctx context.Context) ([]models.MandatorySubscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	active := make([]models.MandatorySubscription, 0, len(f.subs))
	for _, sub := range f.subs {
		if sub.IsActive {
			active = append(active, sub)
		}
	}
	return active, nil
}

func (f *fakeSubscriptionStore) FindByChannelId(ctx context.Context, channelId string) (*models.MandatorySubscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sub := range f.subs {
		if sub.ChannelId == channelId && sub.IsActive {
			clone := sub
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeSubscriptionStore) Deactivate(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.subs {
		if f.subs[i].Id == id {
			f.subs[i].IsActive = false
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeAdminStore struct {
	mu     sync.Mutex
	admins map[int64]models.Admin
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{admins: make(map[int64]models.Admin)}
}

func (f *fakeAdminStore) Add(ctx context.Context, userId int64, addedBy sql.NullInt64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.admins[userId]; ok {
		return repositories.ErrAlreadyExists
	}
	f.admins[userId] = models.Admin{UserId: userId, AddedBy: addedBy, AddedAt: time.Now()}
	return nil
}

func (f *fakeAdminStore) Remove(ctx context.Context, userId int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.admins[userId]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.admins, userId)
	return nil
}

func (f *fakeAdminStore) IsAdmin(ctx context.Context, userId int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.admins[userId]
	return ok, nil
}

func (f *fakeAdminStore) FindAll(ctx context.Context) ([]models.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	admins := make([]models.Admin, 0, len(f.admins))
	for _, admin := range f.admins {
		admins = append(admins, admin)
	}
	return admins, nil
}

// fakeChecker records every lookup so tests can assert that the gate
// never caches results.
type fakeChecker struct {
	mu       sync.Mutex
	statuses map[string]models.MembershipStatus
	errs     map[string]error
	calls    int
}

func newFakeChecker() *fakeChecker {
	return &fakeChecker{
		statuses: make(map[string]models.MembershipStatus),
		errs:     make(map[string]error),
	}
}

func (f *fakeChecker) MemberStatus(ctx context.Context, channelRef string, userId int64) (models.MembershipStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err, ok := f.errs[channelRef]; ok {
		return models.MembershipUnknown, err
	}
	if status, ok := f.statuses[channelRef]; ok {
		return status, nil
	}
	return models.MembershipLeft, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	notified []int64
}

func (f *fakeNotifier) Notify(ctx context.Context, userId int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified = append(f.notified, userId)
	return nil
}
