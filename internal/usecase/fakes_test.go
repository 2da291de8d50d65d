package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"kitnetia/internal/domain/entity"
	"kitnetia/pkg/errors"
)

type memPropertyRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Property
	seq   int
}

func newMemPropertyRepo(properties ...*entity.Property) *memPropertyRepo {
	r := &memPropertyRepo{items: map[string]*entity.Property{}}
	for _, p := range properties {
		r.items[p.ID] = p
	}
	return r
}

func (r *memPropertyRepo) Create(ctx context.Context, p *entity.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	p.ID = fmt.Sprintf("prop-%d", r.seq)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *memPropertyRepo) GetByID(ctx context.Context, id string) (*entity.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, errors.NotFound("Property", nil)
	}
	cp := *p
	return &cp, nil
}

func (r *memPropertyRepo) Update(ctx context.Context, p *entity.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *memPropertyRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *memPropertyRepo) ListActive(ctx context.Context, filter entity.PropertyFilter) ([]*entity.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Property
	for _, p := range r.items {
		if !p.IsActive {
			continue
		}
		if filter.Neighborhood != "" && p.Neighborhood != filter.Neighborhood {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memPropertyRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Property
	for _, p := range r.items {
		if p.OwnerID == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memCache struct {
	properties  map[string]*entity.Property
	lists       map[string][]*entity.Property
	generations map[string]int64
	listGen     int64
	invalidated []string
}

func newMemCache() *memCache {
	return &memCache{
		properties:  map[string]*entity.Property{},
		lists:       map[string][]*entity.Property{},
		generations: map[string]int64{},
	}
}

func (c *memCache) GetProperty(ctx context.Context, id string) (*entity.Property, error) {
	return c.properties[id], nil
}

func (c *memCache) PropertyGeneration(ctx context.Context, id string) (int64, error) {
	return c.generations[id], nil
}

func (c *memCache) SetProperty(ctx context.Context, p *entity.Property, generation int64) error {
	if p.IsActive && c.generations[p.ID] == generation {
		c.properties[p.ID] = p
	}
	return nil
}

func (c *memCache) GetList(ctx context.Context, filter entity.PropertyFilter) ([]*entity.Property, error) {
	return c.lists[filter.Neighborhood], nil
}

func (c *memCache) ListGeneration(ctx context.Context) (int64, error) {
	return c.listGen, nil
}

func (c *memCache) SetList(ctx context.Context, filter entity.PropertyFilter, properties []*entity.Property, generation int64) error {
	if c.listGen != generation {
		return nil
	}
	if properties == nil {
		properties = []*entity.Property{}
	}
	c.lists[filter.Neighborhood] = properties
	return nil
}

func (c *memCache) Invalidate(ctx context.Context, id string) error {
	c.generations[id]++
	c.listGen++
	delete(c.properties, id)
	c.lists = map[string][]*entity.Property{}
	c.invalidated = append(c.invalidated, id)
	return nil
}

type memStorage struct {
	uploaded []string
	deleted  []string
	fail     error
}

func (s *memStorage) UploadFile(ctx context.Context, file io.Reader, fileType, folder string, isPublic bool) (string, error) {
	if s.fail != nil {
		return "", s.fail
	}
	url := fmt.Sprintf("https://storage.googleapis.com/kitnet/public/%s/%d.jpg", folder, len(s.uploaded))
	s.uploaded = append(s.uploaded, url)
	return url, nil
}

func (s *memStorage) DeleteFile(ctx context.Context, fileURL string) error {
	s.deleted = append(s.deleted, fileURL)
	return nil
}

func (s *memStorage) Close() error { return nil }

type memLeadRepo struct {
	mu    sync.Mutex
	leads []*entity.Lead
	fail  error
	done  chan struct{}
}

func newMemLeadRepo() *memLeadRepo {
	return &memLeadRepo{done: make(chan struct{}, 10)}
}

func (r *memLeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	defer func() { r.done <- struct{}{} }()
	if r.fail != nil {
		return r.fail
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	lead.ID = fmt.Sprintf("lead-%d", len(r.leads)+1)
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}
	r.leads = append(r.leads, lead)
	return nil
}

func (r *memLeadRepo) ListByOwner(ctx context.Context, ownerID string, since time.Time, limit int) ([]*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Lead
	for _, l := range r.leads {
		if l.OwnerID == ownerID && (since.IsZero() || !l.CreatedAt.Before(since)) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memLeadRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.leads)
}

type memVisitRepo struct {
	items map[string]*entity.VisitRequest
	locks map[string]string
	seq   int
}

func newMemVisitRepo() *memVisitRepo {
	return &memVisitRepo{items: map[string]*entity.VisitRequest{}, locks: map[string]string{}}
}

func (r *memVisitRepo) Create(ctx context.Context, req *entity.VisitRequest) error {
	lock := req.PropertyID + "_" + req.VisitorID
	if _, held := r.locks[lock]; held {
		return errors.DuplicateRequest("You already have a pending visit request for this property")
	}
	r.seq++
	req.ID = fmt.Sprintf("visit-%d", r.seq)
	req.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Second)
	req.UpdatedAt = req.CreatedAt
	r.locks[lock] = req.ID
	cp := *req
	r.items[req.ID] = &cp
	return nil
}

func (r *memVisitRepo) GetByID(ctx context.Context, id string) (*entity.VisitRequest, error) {
	req, ok := r.items[id]
	if !ok {
		return nil, errors.NotFound("Visit request", nil)
	}
	cp := *req
	return &cp, nil
}

func (r *memVisitRepo) Transition(ctx context.Context, req *entity.VisitRequest, from entity.VisitStatus) error {
	stored, ok := r.items[req.ID]
	if !ok {
		return errors.NotFound("Visit request", nil)
	}
	if stored.Status != from {
		return errors.InvalidTransition(string(stored.Status), string(req.Status))
	}
	if from == entity.VisitPending {
		delete(r.locks, req.PropertyID+"_"+req.VisitorID)
	}
	cp := *req
	r.items[req.ID] = &cp
	return nil
}

func (r *memVisitRepo) Delete(ctx context.Context, req *entity.VisitRequest) error {
	stored, ok := r.items[req.ID]
	if !ok {
		return errors.NotFound("Visit request", nil)
	}
	if stored.Status != entity.VisitPending {
		return errors.InvalidTransition(string(stored.Status), string(entity.VisitCancelled))
	}
	delete(r.items, req.ID)
	delete(r.locks, req.PropertyID+"_"+req.VisitorID)
	return nil
}

func (r *memVisitRepo) list(match func(*entity.VisitRequest) bool) []*entity.VisitRequest {
	var out []*entity.VisitRequest
	for _, req := range r.items {
		if match(req) {
			cp := *req
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memVisitRepo) ListByVisitor(ctx context.Context, visitorID string) ([]*entity.VisitRequest, error) {
	return r.list(func(v *entity.VisitRequest) bool { return v.VisitorID == visitorID }), nil
}

func (r *memVisitRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.VisitRequest, error) {
	return r.list(func(v *entity.VisitRequest) bool { return v.OwnerID == ownerID }), nil
}

type memConversationRepo struct {
	items map[string]*entity.Conversation
	// raceOnCreate simulates a concurrent create that landed first.
	raceOnCreate bool
}

func newMemConversationRepo() *memConversationRepo {
	return &memConversationRepo{items: map[string]*entity.Conversation{}}
}

func conversationKey(propertyID, visitorID, ownerID string) string {
	return propertyID + "_" + visitorID + "_" + ownerID
}

func (r *memConversationRepo) Create(ctx context.Context, c *entity.Conversation) error {
	id := conversationKey(c.PropertyID, c.VisitorID, c.OwnerID)
	if r.raceOnCreate {
		r.raceOnCreate = false
		winner := *c
		winner.ID = id
		r.items[id] = &winner
	}
	if _, exists := r.items[id]; exists {
		return errors.DuplicateRequest("Conversation already exists")
	}
	c.ID = id
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	c.LastMessageAt = c.CreatedAt
	cp := *c
	r.items[id] = &cp
	return nil
}

func (r *memConversationRepo) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	cp := *c
	return &cp, nil
}

func (r *memConversationRepo) FindByParticipants(ctx context.Context, propertyID, visitorID, ownerID string) (*entity.Conversation, error) {
	return r.GetByID(ctx, conversationKey(propertyID, visitorID, ownerID))
}

func (r *memConversationRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	var out []*entity.Conversation
	for _, c := range r.items {
		if c.HasParticipant(userID) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastMessageAt.After(out[j].LastMessageAt) })
	return out, nil
}

func (r *memConversationRepo) Touch(ctx context.Context, id string, at time.Time) error {
	c, ok := r.items[id]
	if !ok {
		return errors.NotFound("Conversation", nil)
	}
	c.LastMessageAt = at
	c.UpdatedAt = at
	return nil
}

type memMessageRepo struct {
	items map[string][]*entity.Message
	seq   int
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{items: map[string][]*entity.Message{}}
}

func (r *memMessageRepo) Create(ctx context.Context, m *entity.Message) error {
	r.seq++
	m.ID = fmt.Sprintf("msg-%d", r.seq)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	cp := *m
	r.items[m.ConversationID] = append(r.items[m.ConversationID], &cp)
	return nil
}

func (r *memMessageRepo) ListByConversation(ctx context.Context, conversationID string) ([]*entity.Message, error) {
	var out []*entity.Message
	for _, m := range r.items[conversationID] {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memMessageRepo) Last(ctx context.Context, conversationID string) (*entity.Message, error) {
	msgs := r.items[conversationID]
	if len(msgs) == 0 {
		return nil, nil
	}
	cp := *msgs[len(msgs)-1]
	return &cp, nil
}

func (r *memMessageRepo) CountUnread(ctx context.Context, conversationID, userID string) (int, error) {
	n := 0
	for _, m := range r.items[conversationID] {
		if m.IsUnreadFor(userID) {
			n++
		}
	}
	return n, nil
}

func (r *memMessageRepo) MarkRead(ctx context.Context, conversationID, readerID string, at time.Time) (int, error) {
	n := 0
	for _, m := range r.items[conversationID] {
		if m.IsUnreadFor(readerID) {
			readAt := at
			m.ReadAt = &readAt
			n++
		}
	}
	return n, nil
}

type memReviewRepo struct {
	items map[string]*entity.Review
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{items: map[string]*entity.Review{}}
}

func (r *memReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	id := review.PropertyID + "_" + review.ReviewerID
	if _, exists := r.items[id]; exists {
		return errors.DuplicateRequest("You have already reviewed this property")
	}
	review.ID = id
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt
	cp := *review
	r.items[id] = &cp
	return nil
}

func (r *memReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	review, ok := r.items[id]
	if !ok {
		return nil, errors.NotFound("Review", nil)
	}
	cp := *review
	return &cp, nil
}

func (r *memReviewRepo) ListByProperty(ctx context.Context, propertyID string) ([]*entity.Review, error) {
	var out []*entity.Review
	for _, review := range r.items {
		if review.PropertyID == propertyID {
			cp := *review
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	cp := *review
	r.items[review.ID] = &cp
	return nil
}

func (r *memReviewRepo) Delete(ctx context.Context, review *entity.Review) error {
	delete(r.items, review.ID)
	return nil
}

type memFavoriteRepo struct {
	items map[string]*entity.Favorite
}

func newMemFavoriteRepo() *memFavoriteRepo {
	return &memFavoriteRepo{items: map[string]*entity.Favorite{}}
}

func (r *memFavoriteRepo) Add(ctx context.Context, userID, propertyID string) (*entity.Favorite, error) {
	id := userID + "_" + propertyID
	if existing, ok := r.items[id]; ok {
		return existing, nil
	}
	fav := &entity.Favorite{ID: id, UserID: userID, PropertyID: propertyID, CreatedAt: time.Now()}
	r.items[id] = fav
	return fav, nil
}

func (r *memFavoriteRepo) Remove(ctx context.Context, userID, propertyID string) error {
	delete(r.items, userID+"_"+propertyID)
	return nil
}

func (r *memFavoriteRepo) Exists(ctx context.Context, userID, propertyID string) (bool, error) {
	_, ok := r.items[userID+"_"+propertyID]
	return ok, nil
}

func (r *memFavoriteRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Favorite, error) {
	var out []*entity.Favorite
	for _, f := range r.items {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memViewRepo struct {
	views []*entity.PropertyView
	fail  error
}

func (r *memViewRepo) Create(ctx context.Context, v *entity.PropertyView) error {
	if r.fail != nil {
		return r.fail
	}
	v.ID = fmt.Sprintf("view-%d", len(r.views)+1)
	if v.ViewedAt.IsZero() {
		v.ViewedAt = time.Now()
	}
	r.views = append(r.views, v)
	return nil
}

func (r *memViewRepo) ListByProperty(ctx context.Context, propertyID string) ([]*entity.PropertyView, error) {
	var out []*entity.PropertyView
	for i := len(r.views) - 1; i >= 0; i-- {
		if r.views[i].PropertyID == propertyID {
			out = append(out, r.views[i])
		}
	}
	return out, nil
}

type publishedEvent struct {
	UserID string
	Type   string
	Data   interface{}
}

type memPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	online map[string]bool
}

func (p *memPublisher) IsOnline(userID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.online[userID]
}

func (p *memPublisher) Publish(userID string, eventType string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{UserID: userID, Type: eventType, Data: data})
}

type memNotifier struct {
	mu    sync.Mutex
	leads []*entity.Lead
	done  chan struct{}
}

func newMemNotifier() *memNotifier {
	return &memNotifier{done: make(chan struct{}, 10)}
}

func (n *memNotifier) NotifyLead(ctx context.Context, property *entity.Property, lead *entity.Lead) error {
	n.mu.Lock()
	n.leads = append(n.leads, lead)
	n.mu.Unlock()
	n.done <- struct{}{}
	return nil
}
