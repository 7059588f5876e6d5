package social

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/matchday/socialgraph/internal/models"
)

// In-memory stores mirroring the repository-layer semantics: lookups of
// missing rows return (nil, nil), duplicate inserts return Conflict, deletes
// of absent rows return NotFound, and counter deltas floor at zero.

type pairKey struct {
	a, b int64
}

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[int64]*models.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[int64]*models.Profile)}
}

func (s *fakeProfileStore) add(id int64, name string, visibility models.Visibility) *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &models.Profile{ID: id, Name: name, Visibility: visibility, CreatedAt: time.Now().UTC()}
	s.profiles[id] = p
	return p
}

func (s *fakeProfileStore) GetProfile(_ context.Context, id int64) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profiles[id], nil
}

type fakeFollowStore struct {
	mu    sync.Mutex
	edges map[pairKey]*models.FollowEdge
}

func newFakeFollowStore() *fakeFollowStore {
	return &fakeFollowStore{edges: make(map[pairKey]*models.FollowEdge)}
}

func (s *fakeFollowStore) GetEdge(_ context.Context, followerID, followingID int64) (*models.FollowEdge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.edges[pairKey{followerID, followingID}], nil
}

func (s *fakeFollowStore) CreateEdge(_ context.Context, edge *models.FollowEdge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{edge.FollowerID, edge.FollowingID}
	if _, ok := s.edges[key]; ok {
		return Conflictf("edge exists")
	}
	s.edges[key] = edge
	return nil
}

func (s *fakeFollowStore) UpdateEdgeStatus(_ context.Context, followerID, followingID int64, status models.FollowStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	edge, ok := s.edges[pairKey{followerID, followingID}]
	if !ok {
		return NotFoundf("edge not found")
	}
	edge.Status = status
	edge.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *fakeFollowStore) DeleteEdge(_ context.Context, followerID, followingID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{followerID, followingID}
	if _, ok := s.edges[key]; !ok {
		return false, nil
	}
	delete(s.edges, key)
	return true, nil
}

func (s *fakeFollowStore) HasAcceptedEdge(_ context.Context, followerID, followingID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	edge, ok := s.edges[pairKey{followerID, followingID}]
	return ok && edge.Status == models.FollowStatusAccepted, nil
}

func (s *fakeFollowStore) ListPending(_ context.Context, followingID int64) ([]*models.FollowEdge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*models.FollowEdge
	for _, edge := range s.edges {
		if edge.FollowingID == followingID && edge.Status == models.FollowStatusPending {
			result = append(result, edge)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

type fakeContentStore struct {
	mu       sync.Mutex
	contents map[int64]*models.Content
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{contents: make(map[int64]*models.Content)}
}

func (s *fakeContentStore) add(id, ownerID int64, visibility models.Visibility) *models.Content {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &models.Content{ID: id, OwnerID: ownerID, Kind: "post", Visibility: visibility, CreatedAt: time.Now().UTC()}
	s.contents[id] = c
	return c
}

func (s *fakeContentStore) GetContent(_ context.Context, id int64) (*models.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contents[id], nil
}

func (s *fakeContentStore) ApplyCounterDelta(_ context.Context, id int64, kind FactKind, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.contents[id]
	if !ok {
		return NotFoundf("content %d not found", id)
	}
	apply := func(v int64) int64 {
		v += int64(delta)
		if v < 0 {
			v = 0
		}
		return v
	}
	switch kind {
	case FactLike:
		content.LikesCount = apply(content.LikesCount)
	case FactComment:
		content.CommentsCount = apply(content.CommentsCount)
	case FactSave:
		content.SavesCount = apply(content.SavesCount)
	}
	return nil
}

func (s *fakeContentStore) SetCounters(_ context.Context, id int64, likes, comments, saves int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.contents[id]
	if !ok {
		return NotFoundf("content %d not found", id)
	}
	content.LikesCount = likes
	content.CommentsCount = comments
	content.SavesCount = saves
	return nil
}

func (s *fakeContentStore) ListContentIDs(_ context.Context, afterID int64, limit int) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []int64
	for id := range s.contents {
		if id > afterID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

type fakeFactStore struct {
	mu            sync.Mutex
	likes         map[pairKey]*models.Like
	saves         map[pairKey]*models.Save
	comments      map[int64]*models.Comment
	nextCommentID int64
}

func newFakeFactStore() *fakeFactStore {
	return &fakeFactStore{
		likes:    make(map[pairKey]*models.Like),
		saves:    make(map[pairKey]*models.Save),
		comments: make(map[int64]*models.Comment),
	}
}

func (s *fakeFactStore) InsertLike(_ context.Context, like *models.Like) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{like.ContentID, like.ActorID}
	if _, ok := s.likes[key]; ok {
		return Conflictf("like exists")
	}
	s.likes[key] = like
	return nil
}

func (s *fakeFactStore) DeleteLike(_ context.Context, contentID, actorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{contentID, actorID}
	if _, ok := s.likes[key]; !ok {
		return NotFoundf("like not found")
	}
	delete(s.likes, key)
	return nil
}

func (s *fakeFactStore) InsertSave(_ context.Context, save *models.Save) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{save.ContentID, save.ActorID}
	if _, ok := s.saves[key]; ok {
		return Conflictf("save exists")
	}
	s.saves[key] = save
	return nil
}

func (s *fakeFactStore) DeleteSave(_ context.Context, contentID, actorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{contentID, actorID}
	if _, ok := s.saves[key]; !ok {
		return NotFoundf("save not found")
	}
	delete(s.saves, key)
	return nil
}

func (s *fakeFactStore) InsertComment(_ context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCommentID++
	comment.ID = s.nextCommentID
	s.comments[comment.ID] = comment
	return nil
}

func (s *fakeFactStore) GetComment(_ context.Context, id int64) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.comments[id], nil
}

func (s *fakeFactStore) DeleteComment(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return NotFoundf("comment not found")
	}
	delete(s.comments, id)
	return nil
}

func (s *fakeFactStore) CountFacts(_ context.Context, contentID int64, kind FactKind) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	switch kind {
	case FactLike:
		for key := range s.likes {
			if key.a == contentID {
				n++
			}
		}
	case FactSave:
		for key := range s.saves {
			if key.a == contentID {
				n++
			}
		}
	case FactComment:
		for _, c := range s.comments {
			if c.ContentID == contentID {
				n++
			}
		}
	}
	return n, nil
}

type fakeTagStore struct {
	mu     sync.Mutex
	tags   map[int64]*models.Tag
	nextID int64
}

func newFakeTagStore() *fakeTagStore {
	return &fakeTagStore{tags: make(map[int64]*models.Tag)}
}

func (s *fakeTagStore) GetActiveTag(_ context.Context, contentID, profileID int64) (*models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tag := range s.tags {
		if tag.ContentID == contentID && tag.TaggedProfileID == profileID && tag.Status == models.TagStatusActive {
			return tag, nil
		}
	}
	return nil, nil
}

func (s *fakeTagStore) CreateTag(_ context.Context, tag *models.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.tags {
		if existing.ContentID == tag.ContentID && existing.TaggedProfileID == tag.TaggedProfileID && existing.Status == models.TagStatusActive {
			return Conflictf("active tag exists")
		}
	}
	s.nextID++
	tag.ID = s.nextID
	s.tags[tag.ID] = tag
	return nil
}

func (s *fakeTagStore) MarkTagRemoved(_ context.Context, tagID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tag, ok := s.tags[tagID]
	if !ok || tag.Status != models.TagStatusActive {
		return NotFoundf("active tag %d not found", tagID)
	}
	tag.Status = models.TagStatusRemoved
	tag.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *fakeTagStore) ListActiveByProfile(_ context.Context, profileID int64) ([]*models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*models.Tag
	for _, tag := range s.tags {
		if tag.TaggedProfileID == profileID && tag.Status == models.TagStatusActive {
			result = append(result, tag)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type fakeNotificationStore struct {
	mu     sync.Mutex
	notifs map[int64]*models.Notification
	nextID int64
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{notifs: make(map[int64]*models.Notification)}
}

func (s *fakeNotificationStore) CreateNotification(_ context.Context, notif *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	notif.ID = s.nextID
	s.notifs[notif.ID] = notif
	return nil
}

func (s *fakeNotificationStore) GetNotification(_ context.Context, id int64) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notifs[id], nil
}

func (s *fakeNotificationStore) MarkNotificationRead(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	notif, ok := s.notifs[id]
	if !ok {
		return NotFoundf("notification not found")
	}
	notif.Read = true
	return nil
}

func (s *fakeNotificationStore) CountUnread(_ context.Context, recipientID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, notif := range s.notifs {
		if notif.RecipientID == recipientID && !notif.Read {
			n++
		}
	}
	return n, nil
}

func (s *fakeNotificationStore) ListByRecipient(_ context.Context, recipientID, lastID int64, limit int) ([]*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*models.Notification
	for _, notif := range s.notifs {
		if notif.RecipientID != recipientID {
			continue
		}
		if lastID > 0 && notif.ID >= lastID {
			continue
		}
		result = append(result, notif)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// byRecipient returns all notifications for a recipient, oldest first.
func (s *fakeNotificationStore) byRecipient(recipientID int64) []*models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*models.Notification
	for _, notif := range s.notifs {
		if notif.RecipientID == recipientID {
			result = append(result, notif)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

type fakePreferenceStore struct {
	mu    sync.Mutex
	prefs map[int64]*models.NotificationPreference
}

func newFakePreferenceStore() *fakePreferenceStore {
	return &fakePreferenceStore{prefs: make(map[int64]*models.NotificationPreference)}
}

func (s *fakePreferenceStore) GetPreferences(_ context.Context, profileID int64) (*models.NotificationPreference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs[profileID], nil
}

func (s *fakePreferenceStore) CreatePreferences(_ context.Context, prefs *models.NotificationPreference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.prefs[prefs.ProfileID]; ok {
		return Conflictf("preferences exist")
	}
	s.prefs[prefs.ProfileID] = prefs
	return nil
}

func (s *fakePreferenceStore) SavePreferences(_ context.Context, prefs *models.NotificationPreference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[prefs.ProfileID] = prefs
	return nil
}

// fakeUnreadCache records unread-count invalidations per profile.
type fakeUnreadCache struct {
	mu           sync.Mutex
	invalidation map[int64]int
}

func newFakeUnreadCache() *fakeUnreadCache {
	return &fakeUnreadCache{invalidation: make(map[int64]int)}
}

func (c *fakeUnreadCache) InvalidateUnread(profileID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidation[profileID]++
}

func (c *fakeUnreadCache) invalidations(profileID int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidation[profileID]
}

// testEnv wires the full service graph over the fakes, mirroring the router.
type testEnv struct {
	profiles *fakeProfileStore
	follows  *fakeFollowStore
	contents *fakeContentStore
	facts    *fakeFactStore
	tags     *fakeTagStore
	notifs   *fakeNotificationStore
	prefRepo *fakePreferenceStore
	unread   *fakeUnreadCache

	prefs      *PreferenceService
	dispatcher *Dispatcher
	counters   *CounterMaintainer
	bus        *Bus
	follow     *FollowService
	engagement *EngagementService
	tagSvc     *TagService
	resolver   *Resolver
}

func newTestEnv() *testEnv {
	logger := zap.NewNop()

	env := &testEnv{
		profiles: newFakeProfileStore(),
		follows:  newFakeFollowStore(),
		contents: newFakeContentStore(),
		facts:    newFakeFactStore(),
		tags:     newFakeTagStore(),
		notifs:   newFakeNotificationStore(),
		prefRepo: newFakePreferenceStore(),
		unread:   newFakeUnreadCache(),
	}

	env.prefs = NewPreferenceService(env.profiles, env.prefRepo, logger)
	env.dispatcher = NewDispatcher(env.notifs, env.prefs, env.unread, logger)
	env.counters = NewCounterMaintainer(env.contents, env.facts, logger)

	env.bus = NewBus(logger)
	env.bus.Subscribe(env.counters)
	env.bus.Subscribe(NewNotifyFanout(env.dispatcher))

	env.follow = NewFollowService(env.profiles, env.follows, env.dispatcher, logger)
	env.engagement = NewEngagementService(env.profiles, env.contents, env.facts, env.bus, logger)
	env.tagSvc = NewTagService(env.profiles, env.contents, env.tags, env.dispatcher, logger)
	env.resolver = NewResolver(env.contents, env.follows, env.tags)

	return env
}
