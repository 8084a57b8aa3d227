package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/oomool/backend/internal/events"
	"github.com/anonto42/oomool/backend/internal/hooks"
	"github.com/anonto42/oomool/backend/internal/models"
	"github.com/anonto42/oomool/backend/internal/push"
	"github.com/anonto42/oomool/backend/internal/repositories"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// store is an in-memory record store shared by the fake repositories.
type store struct {
	mu            sync.Mutex
	users         map[string]*models.User
	posts         map[string]*models.Post
	questions     map[string]*models.Question
	answers       map[string]*models.Answer
	comments      map[string]*models.Comment
	likes         map[string]*models.Like
	follows       map[string]*models.Follow
	bookmarks     map[string]*models.Bookmark
	curious       map[string]*models.Curious
	notifications []*models.Notification
	codes         map[string]*models.VerificationCode
	ticks         int
}

// tick hands out strictly increasing creation times. Callers hold mu.
func (s *store) tick() time.Time {
	s.ticks++
	return time.Date(2026, 1, 1, 0, 0, s.ticks, 0, time.UTC)
}

func newStore() *store {
	return &store{
		users:     map[string]*models.User{},
		posts:     map[string]*models.Post{},
		questions: map[string]*models.Question{},
		answers:   map[string]*models.Answer{},
		comments:  map[string]*models.Comment{},
		likes:     map[string]*models.Like{},
		follows:   map[string]*models.Follow{},
		bookmarks: map[string]*models.Bookmark{},
		curious:   map[string]*models.Curious{},
		codes:     map[string]*models.VerificationCode{},
	}
}

func newID() string { return uuid.NewString() }

// users

type fakeUsers struct{ s *store }

func (f fakeUsers) CreateUser(_ context.Context, u *models.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if u.ID == "" {
		u.ID = newID()
	}
	f.s.users[u.ID] = u
	return nil
}

func (f fakeUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if u, ok := f.s.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (f fakeUsers) GetUserByFirebaseUID(_ context.Context, uid string) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if u.FirebaseUID != nil && *u.FirebaseUID == uid {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f fakeUsers) UpdateFCMToken(_ context.Context, id, token string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u, ok := f.s.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.FCMToken = token
	return nil
}

// posts

type fakePosts struct{ s *store }

func (f fakePosts) CreatePost(_ context.Context, p *models.Post) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p.ID = primitive.NewObjectID()
	f.s.posts[p.ID.Hex()] = p
	return nil
}

func (f fakePosts) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if p, ok := f.s.posts[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrNotFound
}

func (f fakePosts) GetAllPosts(_ context.Context, skip, limit int64) ([]models.Post, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Post
	for _, p := range f.s.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (f fakePosts) GetPostsSince(_ context.Context, since time.Time, limit int64) ([]models.Post, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Post
	for _, p := range f.s.posts {
		if !p.CreatedAt.Before(since) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f fakePosts) SearchPosts(_ context.Context, query string, limit int64) ([]models.Post, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Post
	for _, p := range f.s.posts {
		if strings.Contains(strings.ToLower(p.Content), strings.ToLower(query)) {
			out = append(out, *p)
		}
	}
	return out, nil
}

// questions and answers

type fakeQuestions struct{ s *store }

func (f fakeQuestions) CreateQuestion(_ context.Context, q *models.Question) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if q.ID == "" {
		q.ID = newID()
	}
	f.s.questions[q.ID] = q
	return nil
}

func (f fakeQuestions) GetQuestionByID(_ context.Context, id string) (*models.Question, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if q, ok := f.s.questions[id]; ok {
		return q, nil
	}
	return nil, repositories.ErrNotFound
}

func (f fakeQuestions) ListQuestions(_ context.Context, opts repositories.QuestionListOptions) ([]models.Question, int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Question
	for _, q := range f.s.questions {
		out = append(out, *q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	start := (opts.Page - 1) * opts.PerPage
	if start >= len(out) {
		return nil, int64(len(out)), nil
	}
	return out[start:min(start+opts.PerPage, len(out))], int64(len(out)), nil
}

func (f fakeQuestions) GetQuestionsSince(_ context.Context, since time.Time, limit int) ([]models.Question, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Question
	for _, q := range f.s.questions {
		if !q.CreatedAt.Before(since) {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f fakeQuestions) SearchQuestions(_ context.Context, query string, limit int) ([]models.Question, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	query = strings.ToLower(query)
	var out []models.Question
	for _, q := range f.s.questions {
		if strings.Contains(strings.ToLower(q.Title), query) || strings.Contains(strings.ToLower(q.Content), query) {
			out = append(out, *q)
		}
	}
	return out, nil
}

type fakeAnswers struct{ s *store }

func (f fakeAnswers) CreateAnswer(_ context.Context, a *models.Answer) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if a.ID == "" {
		a.ID = newID()
	}
	f.s.answers[a.ID] = a
	return nil
}

func (f fakeAnswers) GetAnswerByID(_ context.Context, id string) (*models.Answer, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if a, ok := f.s.answers[id]; ok {
		return a, nil
	}
	return nil, repositories.ErrNotFound
}

func (f fakeAnswers) AcceptAnswer(_ context.Context, questionID, answerID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	target, ok := f.s.answers[answerID]
	if !ok || target.QuestionID != questionID {
		return repositories.ErrNotFound
	}
	for _, a := range f.s.answers {
		if a.QuestionID == questionID {
			a.IsAccepted = false
		}
	}
	target.IsAccepted = true
	return nil
}

// comments

type fakeComments struct{ s *store }

func (f fakeComments) CreateComment(_ context.Context, c *models.Comment) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if c.ID == "" {
		c.ID = newID()
	}
	c.CreatedAt = f.s.tick()
	f.s.comments[c.ID] = c
	return nil
}

func (f fakeComments) GetCommentByID(_ context.Context, id string) (*models.Comment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if c, ok := f.s.comments[id]; ok {
		return c, nil
	}
	return nil, repositories.ErrNotFound
}

func (f fakeComments) GetCommentsByPostID(_ context.Context, postID string) ([]models.Comment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Comment
	for _, c := range f.s.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f fakeComments) DeleteComment(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.comments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.s.comments, id)
	return nil
}

// likes, follows, bookmarks

type fakeLikes struct{ s *store }

func (f fakeLikes) CreateLike(_ context.Context, l *models.Like) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.likes {
		if existing.UserID == l.UserID && existing.TargetID == l.TargetID && existing.TargetType == l.TargetType {
			return repositories.ErrDuplicate
		}
	}
	l.ID = newID()
	f.s.likes[l.ID] = l
	return nil
}

func (f fakeLikes) DeleteLike(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.likes[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.s.likes, id)
	return nil
}

func (f fakeLikes) GetLike(_ context.Context, userID string, target models.Target) (*models.Like, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, l := range f.s.likes {
		if l.UserID == userID && l.Target() == target {
			return l, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type fakeFollows struct{ s *store }

func (f fakeFollows) CreateFollow(_ context.Context, follow *models.Follow) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	follow.ID = newID()
	f.s.follows[follow.ID] = follow
	return nil
}

func (f fakeFollows) DeleteFollow(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.follows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.s.follows, id)
	return nil
}

func (f fakeFollows) GetFollow(_ context.Context, followerID, followingID string) (*models.Follow, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, follow := range f.s.follows {
		if follow.FollowerID == followerID && follow.FollowingID == followingID {
			return follow, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type fakeBookmarks struct{ s *store }

func (f fakeBookmarks) CreateBookmark(_ context.Context, b *models.Bookmark) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b.ID = newID()
	f.s.bookmarks[b.ID] = b
	return nil
}

func (f fakeBookmarks) DeleteBookmark(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	delete(f.s.bookmarks, id)
	return nil
}

func (f fakeBookmarks) GetBookmark(_ context.Context, userID, postID string) (*models.Bookmark, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, b := range f.s.bookmarks {
		if b.UserID == userID && b.PostID == postID {
			return b, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type fakeCurious struct{ s *store }

func (f fakeCurious) CreateCurious(_ context.Context, c *models.Curious) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.curious {
		if existing.UserID == c.UserID && existing.QuestionID == c.QuestionID {
			return repositories.ErrDuplicate
		}
	}
	c.ID = newID()
	f.s.curious[c.ID] = c
	return nil
}

func (f fakeCurious) DeleteCurious(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.curious[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.s.curious, id)
	return nil
}

func (f fakeCurious) GetCurious(_ context.Context, userID, questionID string) (*models.Curious, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, c := range f.s.curious {
		if c.UserID == userID && c.QuestionID == questionID {
			return c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f fakeCurious) CuriousQuestionIDs(_ context.Context, userID string, questionIDs []string) (map[string]bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	marked := map[string]bool{}
	for _, id := range questionIDs {
		for _, c := range f.s.curious {
			if c.UserID == userID && c.QuestionID == id {
				marked[id] = true
			}
		}
	}
	return marked, nil
}

// notifications

type fakeNotifications struct {
	s   *store
	err error
}

func (f fakeNotifications) CreateNotification(_ context.Context, n *models.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	n.ID = newID()
	f.s.notifications = append(f.s.notifications, n)
	return nil
}

func (f fakeNotifications) GetByUserID(_ context.Context, userID string, page, limit int) ([]models.Notification, int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Notification
	for _, n := range f.s.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, int64(len(out)), nil
}

func (f fakeNotifications) GetUnreadCount(_ context.Context, userID string) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for _, notif := range f.s.notifications {
		if notif.UserID == userID && !notif.IsRead {
			n++
		}
	}
	return n, nil
}

func (f fakeNotifications) MarkAsRead(_ context.Context, id, userID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, n := range f.s.notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f fakeNotifications) MarkAllAsRead(_ context.Context, userID string) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var updated int64
	for _, n := range f.s.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (f fakeNotifications) DeleteNotification(_ context.Context, id, userID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for i, n := range f.s.notifications {
		if n.ID == id && n.UserID == userID {
			f.s.notifications = append(f.s.notifications[:i], f.s.notifications[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (s *store) notificationsFor(userID string) []*models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// counters operate on the typed records under the store lock, so adjustments
// are atomic with respect to each other just like the SQL/Mongo versions.

type fakeCounters struct{ s *store }

func (f fakeCounters) field(target models.Target, field string) (*int, error) {
	switch target.Type {
	case models.TargetPost:
		p, ok := f.s.posts[target.ID]
		if !ok {
			return nil, repositories.ErrNotFound
		}
		switch field {
		case repositories.FieldLikeCount:
			return &p.LikeCount, nil
		case repositories.FieldCommentCount:
			return &p.CommentCount, nil
		case repositories.FieldBookmarkCount:
			return &p.BookmarkCount, nil
		case repositories.FieldViewCount:
			return &p.ViewCount, nil
		}
	case models.TargetComment:
		c, ok := f.s.comments[target.ID]
		if !ok {
			return nil, repositories.ErrNotFound
		}
		if field == repositories.FieldLikeCount {
			return &c.LikeCount, nil
		}
	case models.TargetAnswer:
		a, ok := f.s.answers[target.ID]
		if !ok {
			return nil, repositories.ErrNotFound
		}
		if field == repositories.FieldLikeCount {
			return &a.LikeCount, nil
		}
	case models.TargetQuestion:
		q, ok := f.s.questions[target.ID]
		if !ok {
			return nil, repositories.ErrNotFound
		}
		switch field {
		case repositories.FieldAnswerCount:
			return &q.AnswerCount, nil
		case repositories.FieldCuriousCount:
			return &q.CuriousCount, nil
		case repositories.FieldViewCount:
			return &q.ViewCount, nil
		}
	}
	return nil, fmt.Errorf("counter %s not maintained on %s", field, target.Type)
}

func (f fakeCounters) AtomicAdjust(_ context.Context, target models.Target, field string, delta int) (int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, err := f.field(target, field)
	if err != nil {
		return 0, err
	}
	*p += delta
	if *p < 0 {
		*p = 0
	}
	return *p, nil
}

func (f fakeCounters) Value(_ context.Context, target models.Target, field string) (int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, err := f.field(target, field)
	if err != nil {
		return 0, err
	}
	return *p, nil
}

// verification codes

type fakeCodes struct{ s *store }

func (f fakeCodes) CreateCode(_ context.Context, c *models.VerificationCode) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c.ID = newID()
	c.CreatedAt = time.Now()
	f.s.codes[c.ID] = c
	return nil
}

func (f fakeCodes) FindActive(_ context.Context, email, code string) (*models.VerificationCode, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, c := range f.s.codes {
		if c.Email == email && c.Code == code && !c.Verified {
			copied := *c
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f fakeCodes) MarkVerified(_ context.Context, id string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c, ok := f.s.codes[id]
	if !ok || c.Verified {
		return false, nil
	}
	c.Verified = true
	return true, nil
}

func (f fakeCodes) DeleteCode(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	delete(f.s.codes, id)
	return nil
}

func (f fakeCodes) DeleteUnverifiedByEmail(_ context.Context, email string) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for id, c := range f.s.codes {
		if c.Email == email && !c.Verified {
			delete(f.s.codes, id)
			n++
		}
	}
	return n, nil
}

func (f fakeCodes) DeleteStale(_ context.Context, now time.Time) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for id, c := range f.s.codes {
		if c.Verified || c.ExpiresAt.Before(now) {
			delete(f.s.codes, id)
			n++
		}
	}
	return n, nil
}

// push

type fakeQueue struct {
	mu   sync.Mutex
	jobs []push.Job
	err  error
}

func (q *fakeQueue) Enqueue(_ context.Context, job push.Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *fakeQueue) Close() error { return nil }

// harness wires the fakes the same way the server wires the real repositories.
type harness struct {
	store      *store
	dispatcher *events.Dispatcher
	queue      *fakeQueue
	emitter    *NotificationEmitter
	counters   *CounterMaintainer
	community  *CommunityService
	reader     *CommunityReader
}

func newHarness() *harness {
	s := newStore()
	d := events.NewDispatcher()
	q := &fakeQueue{}

	emitter := NewNotificationEmitter(EmitterRepositories{
		Notifications: fakeNotifications{s: s},
		Users:         fakeUsers{s: s},
		Questions:     fakeQuestions{s: s},
		Answers:       fakeAnswers{s: s},
		Comments:      fakeComments{s: s},
		Posts:         fakePosts{s: s},
	}, d, q)
	counters := NewCounterMaintainer(fakeCounters{s: s})
	community := NewCommunityService(CommunityRepositories{
		Users:     fakeUsers{s: s},
		Posts:     fakePosts{s: s},
		Questions: fakeQuestions{s: s},
		Answers:   fakeAnswers{s: s},
		Comments:  fakeComments{s: s},
		Likes:     fakeLikes{s: s},
		Follows:   fakeFollows{s: s},
		Bookmarks: fakeBookmarks{s: s},
		Curious:   fakeCurious{s: s},
		Counters:  fakeCounters{s: s},
	}, d)

	reader := NewCommunityReader(ReaderRepositories{
		Posts:     fakePosts{s: s},
		Questions: fakeQuestions{s: s},
		Comments:  fakeComments{s: s},
		Curious:   fakeCurious{s: s},
	})

	hooks.Register(d, emitter, counters)

	return &harness{store: s, dispatcher: d, queue: q, emitter: emitter, counters: counters, community: community, reader: reader}
}

func (h *harness) addUser(name, token string) *models.User {
	u := &models.User{Name: name, FCMToken: token}
	_ = fakeUsers{s: h.store}.CreateUser(context.Background(), u)
	return u
}
