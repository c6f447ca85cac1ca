// Package memory provides in-memory implementations of the repository
// interfaces. They honor the same version-conflict semantics as the MongoDB
// implementations and back the engine tests, which need many thousands of
// compare-and-swap cycles without an external database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/luckywheel/spin-backend/internal/models"
	"github.com/luckywheel/spin-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds every collection behind one mutex.
type Store struct {
	mu           sync.RWMutex
	events       map[primitive.ObjectID]*models.Event
	locations    map[primitive.ObjectID]*models.EventLocation
	participants map[primitive.ObjectID]*models.Participant
	rewards      map[primitive.ObjectID]*models.Reward
	goldenHours  map[primitive.ObjectID]*models.GoldenHour
	histories    []*models.SpinHistory
	adminUsers   map[primitive.ObjectID]*models.AdminUser
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		events:       make(map[primitive.ObjectID]*models.Event),
		locations:    make(map[primitive.ObjectID]*models.EventLocation),
		participants: make(map[primitive.ObjectID]*models.Participant),
		rewards:      make(map[primitive.ObjectID]*models.Reward),
		goldenHours:  make(map[primitive.ObjectID]*models.GoldenHour),
		adminUsers:   make(map[primitive.ObjectID]*models.AdminUser),
	}
}

// Events returns the event repository view of the store.
func (s *Store) Events() repositories.EventRepository { return &eventRepo{s} }

// Locations returns the location repository view of the store.
func (s *Store) Locations() repositories.LocationRepository { return &locationRepo{s} }

// Participants returns the participant repository view of the store.
func (s *Store) Participants() repositories.ParticipantRepository { return &participantRepo{s} }

// Rewards returns the reward repository view of the store.
func (s *Store) Rewards() repositories.RewardRepository { return &rewardRepo{s} }

// GoldenHours returns the golden hour repository view of the store.
func (s *Store) GoldenHours() repositories.GoldenHourRepository { return &goldenHourRepo{s} }

// SpinHistories returns the spin history repository view of the store.
func (s *Store) SpinHistories() repositories.SpinHistoryRepository { return &spinHistoryRepo{s} }

// AdminUsers returns the admin user repository view of the store.
func (s *Store) AdminUsers() repositories.AdminUserRepository { return &adminUserRepo{s} }

func cloneEvent(e *models.Event) *models.Event {
	c := *e
	return &c
}

func cloneLocation(l *models.EventLocation) *models.EventLocation {
	c := *l
	return &c
}

func cloneParticipant(p *models.Participant) *models.Participant {
	c := *p
	return &c
}

func cloneReward(r *models.Reward) *models.Reward {
	c := *r
	if r.RemainingQuantity != nil {
		q := *r.RemainingQuantity
		c.RemainingQuantity = &q
	}
	if r.DailyLimit != nil {
		l := *r.DailyLimit
		c.DailyLimit = &l
	}
	return &c
}

func cloneGoldenHour(g *models.GoldenHour) *models.GoldenHour {
	c := *g
	return &c
}

func cloneHistory(h *models.SpinHistory) *models.SpinHistory {
	c := *h
	if h.RewardID != nil {
		id := *h.RewardID
		c.RewardID = &id
	}
	return &c
}

// --- events ---

type eventRepo struct{ s *Store }

var _ repositories.EventRepository = (*eventRepo)(nil)

func (r *eventRepo) Create(_ context.Context, event *models.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	event.Touch(time.Now())
	r.s.events[event.ID] = cloneEvent(event)
	return nil
}

func (r *eventRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneEvent(e), nil
}

func (r *eventRepo) FindByCode(_ context.Context, code string) (*models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.events {
		if e.Code == code {
			return cloneEvent(e), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *eventRepo) FindAll(_ context.Context) ([]*models.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	events := make([]*models.Event, 0, len(r.s.events))
	for _, e := range r.s.events {
		events = append(events, cloneEvent(e))
	}
	sort.Slice(events, func(i, j int) bool { return lessID(events[i].ID, events[j].ID) })
	return events, nil
}

func (r *eventRepo) Update(_ context.Context, event *models.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[event.ID]; !ok {
		return repositories.ErrNotFound
	}
	event.UpdatedAt = time.Now()
	r.s.events[event.ID] = cloneEvent(event)
	return nil
}

func (r *eventRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.events, id)
	return nil
}

func (r *eventRepo) UpdateVersioned(_ context.Context, event *models.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.events[event.ID]
	if !ok || stored.Version != event.Version {
		return repositories.ErrVersionConflict
	}
	event.Version++
	event.UpdatedAt = time.Now()
	r.s.events[event.ID] = cloneEvent(event)
	return nil
}

// --- locations ---

type locationRepo struct{ s *Store }

var _ repositories.LocationRepository = (*locationRepo)(nil)

func (r *locationRepo) Create(_ context.Context, location *models.EventLocation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if location.ID.IsZero() {
		location.ID = primitive.NewObjectID()
	}
	location.Touch(time.Now())
	r.s.locations[location.ID] = cloneLocation(location)
	return nil
}

func (r *locationRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.EventLocation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.locations[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneLocation(l), nil
}

func (r *locationRepo) FindByEventID(_ context.Context, eventID primitive.ObjectID) ([]*models.EventLocation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	locations := []*models.EventLocation{}
	for _, l := range r.s.locations {
		if l.EventID == eventID {
			locations = append(locations, cloneLocation(l))
		}
	}
	sort.Slice(locations, func(i, j int) bool { return lessID(locations[i].ID, locations[j].ID) })
	return locations, nil
}

func (r *locationRepo) Update(_ context.Context, location *models.EventLocation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.locations[location.ID]; !ok {
		return repositories.ErrNotFound
	}
	location.UpdatedAt = time.Now()
	r.s.locations[location.ID] = cloneLocation(location)
	return nil
}

func (r *locationRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.locations, id)
	return nil
}

// --- participants ---

type participantRepo struct{ s *Store }

var _ repositories.ParticipantRepository = (*participantRepo)(nil)

func (r *participantRepo) Create(_ context.Context, participant *models.Participant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if participant.ID.IsZero() {
		participant.ID = primitive.NewObjectID()
	}
	participant.Touch(time.Now())
	r.s.participants[participant.ID] = cloneParticipant(participant)
	return nil
}

func (r *participantRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Participant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.participants[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneParticipant(p), nil
}

func (r *participantRepo) FindByPhone(_ context.Context, eventID primitive.ObjectID, phone string) (*models.Participant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.participants {
		if p.EventID == eventID && p.Phone == phone {
			return cloneParticipant(p), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *participantRepo) FindByEventID(_ context.Context, eventID primitive.ObjectID) ([]*models.Participant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	participants := []*models.Participant{}
	for _, p := range r.s.participants {
		if p.EventID == eventID {
			participants = append(participants, cloneParticipant(p))
		}
	}
	sort.Slice(participants, func(i, j int) bool { return lessID(participants[i].ID, participants[j].ID) })
	return participants, nil
}

func (r *participantRepo) Update(_ context.Context, participant *models.Participant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.participants[participant.ID]; !ok {
		return repositories.ErrNotFound
	}
	participant.UpdatedAt = time.Now()
	r.s.participants[participant.ID] = cloneParticipant(participant)
	return nil
}

func (r *participantRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.participants, id)
	return nil
}

func (r *participantRepo) UpdateVersioned(_ context.Context, participant *models.Participant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.participants[participant.ID]
	if !ok || stored.Version != participant.Version {
		return repositories.ErrVersionConflict
	}
	participant.Version++
	participant.UpdatedAt = time.Now()
	r.s.participants[participant.ID] = cloneParticipant(participant)
	return nil
}

func (r *participantRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.participants)), nil
}

// --- rewards ---

type rewardRepo struct{ s *Store }

var _ repositories.RewardRepository = (*rewardRepo)(nil)

func (r *rewardRepo) Create(_ context.Context, reward *models.Reward) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if reward.ID.IsZero() {
		reward.ID = primitive.NewObjectID()
	}
	reward.Touch(time.Now())
	r.s.rewards[reward.ID] = cloneReward(reward)
	return nil
}

func (r *rewardRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Reward, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rw, ok := r.s.rewards[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneReward(rw), nil
}

func (r *rewardRepo) FindByLocationID(_ context.Context, locationID primitive.ObjectID) ([]*models.Reward, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rewards := []*models.Reward{}
	for _, rw := range r.s.rewards {
		if rw.LocationID == locationID {
			rewards = append(rewards, cloneReward(rw))
		}
	}
	sort.Slice(rewards, func(i, j int) bool { return lessID(rewards[i].ID, rewards[j].ID) })
	return rewards, nil
}

func (r *rewardRepo) Update(_ context.Context, reward *models.Reward) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rewards[reward.ID]; !ok {
		return repositories.ErrNotFound
	}
	reward.UpdatedAt = time.Now()
	r.s.rewards[reward.ID] = cloneReward(reward)
	return nil
}

func (r *rewardRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.rewards, id)
	return nil
}

func (r *rewardRepo) UpdateVersioned(_ context.Context, reward *models.Reward) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.rewards[reward.ID]
	if !ok || stored.Version != reward.Version {
		return repositories.ErrVersionConflict
	}
	reward.Version++
	reward.UpdatedAt = time.Now()
	r.s.rewards[reward.ID] = cloneReward(reward)
	return nil
}

func (r *rewardRepo) ExpireBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, rw := range r.s.rewards {
		if rw.Status == models.StatusActive && !rw.ValidUntil.After(cutoff) {
			rw.Status = models.StatusExpired
			rw.UpdatedAt = time.Now()
			n++
		}
	}
	return n, nil
}

// --- golden hours ---

type goldenHourRepo struct{ s *Store }

var _ repositories.GoldenHourRepository = (*goldenHourRepo)(nil)

func (r *goldenHourRepo) Create(_ context.Context, goldenHour *models.GoldenHour) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if goldenHour.ID.IsZero() {
		goldenHour.ID = primitive.NewObjectID()
	}
	goldenHour.Touch(time.Now())
	r.s.goldenHours[goldenHour.ID] = cloneGoldenHour(goldenHour)
	return nil
}

func (r *goldenHourRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.GoldenHour, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	g, ok := r.s.goldenHours[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneGoldenHour(g), nil
}

func (r *goldenHourRepo) FindByRewardID(_ context.Context, rewardID primitive.ObjectID) ([]*models.GoldenHour, error) {
	return r.FindByRewardIDs(context.Background(), []primitive.ObjectID{rewardID})
}

func (r *goldenHourRepo) FindByRewardIDs(_ context.Context, rewardIDs []primitive.ObjectID) ([]*models.GoldenHour, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	wanted := make(map[primitive.ObjectID]bool, len(rewardIDs))
	for _, id := range rewardIDs {
		wanted[id] = true
	}
	goldenHours := []*models.GoldenHour{}
	for _, g := range r.s.goldenHours {
		if wanted[g.RewardID] {
			goldenHours = append(goldenHours, cloneGoldenHour(g))
		}
	}
	sort.Slice(goldenHours, func(i, j int) bool { return lessID(goldenHours[i].ID, goldenHours[j].ID) })
	return goldenHours, nil
}

func (r *goldenHourRepo) Update(_ context.Context, goldenHour *models.GoldenHour) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.goldenHours[goldenHour.ID]; !ok {
		return repositories.ErrNotFound
	}
	goldenHour.UpdatedAt = time.Now()
	r.s.goldenHours[goldenHour.ID] = cloneGoldenHour(goldenHour)
	return nil
}

func (r *goldenHourRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.goldenHours, id)
	return nil
}

func (r *goldenHourRepo) ExpireBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, g := range r.s.goldenHours {
		if g.Status == models.StatusActive && !g.Recurring && !g.EndTime.After(cutoff) {
			g.Status = models.StatusExpired
			g.UpdatedAt = time.Now()
			n++
		}
	}
	return n, nil
}

// --- spin histories ---

type spinHistoryRepo struct{ s *Store }

var _ repositories.SpinHistoryRepository = (*spinHistoryRepo)(nil)

func (r *spinHistoryRepo) Create(_ context.Context, history *models.SpinHistory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if history.ID.IsZero() {
		history.ID = primitive.NewObjectID()
	}
	history.Touch(time.Now())
	r.s.histories = append(r.s.histories, cloneHistory(history))
	return nil
}

func (r *spinHistoryRepo) FindByParticipantID(_ context.Context, participantID primitive.ObjectID, page, limit int) ([]*models.SpinHistory, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	matched := []*models.SpinHistory{}
	for _, h := range r.s.histories {
		if h.ParticipantID == participantID {
			matched = append(matched, cloneHistory(h))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].SpunAt.After(matched[j].SpunAt) })
	start := (page - 1) * limit
	if start >= len(matched) {
		return []*models.SpinHistory{}, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (r *spinHistoryRepo) CountByRewardID(_ context.Context, rewardID primitive.ObjectID, won bool) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, h := range r.s.histories {
		if h.RewardID != nil && *h.RewardID == rewardID && h.Won == won {
			n++
		}
	}
	return n, nil
}

// --- admin users ---

type adminUserRepo struct{ s *Store }

var _ repositories.AdminUserRepository = (*adminUserRepo)(nil)

func (r *adminUserRepo) Create(_ context.Context, adminUser *models.AdminUser) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if adminUser.ID.IsZero() {
		adminUser.ID = primitive.NewObjectID()
	}
	adminUser.Touch(time.Now())
	c := *adminUser
	r.s.adminUsers[adminUser.ID] = &c
	return nil
}

func (r *adminUserRepo) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.adminUsers {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *adminUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.adminUsers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *u
	return &c, nil
}

func lessID(a, b primitive.ObjectID) bool {
	return a.Hex() < b.Hex()
}
