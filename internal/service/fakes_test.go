package service

import (
	"Murmur/internal/model"
	"Murmur/internal/repository"
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakePostRepo struct {
	mu        sync.Mutex
	posts     map[primitive.ObjectID]*model.Post
	users     map[primitive.ObjectID]*model.User
	createErr error
	saveErr   error
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		posts: make(map[primitive.ObjectID]*model.Post),
		users: make(map[primitive.ObjectID]*model.User),
	}
}

func clonePost(p *model.Post) *model.Post {
	c := *p
	c.Likes = append([]primitive.ObjectID{}, p.Likes...)
	c.Comments = append([]model.Comment{}, p.Comments...)
	if p.Media != nil {
		m := *p.Media
		c.Media = &m
	}
	return &c
}

func (r *fakePostRepo) brief(id primitive.ObjectID) *model.UserBrief {
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	return &model.UserBrief{ID: u.ID, UserName: u.UserName, Email: u.Email}
}

func (r *fakePostRepo) detail(p *model.Post) *model.PostDetail {
	d := &model.PostDetail{
		ID:        p.ID,
		Author:    r.brief(p.Author),
		Content:   p.Content,
		Media:     p.Media,
		Likes:     []model.UserBrief{},
		Comments:  []model.CommentDetail{},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for _, id := range p.Likes {
		if b := r.brief(id); b != nil {
			d.Likes = append(d.Likes, *b)
		}
	}
	for _, c := range p.Comments {
		d.Comments = append(d.Comments, model.CommentDetail{ID: c.ID, User: r.brief(c.User), Text: c.Text, CreatedAt: c.CreatedAt})
	}
	return d
}

func (r *fakePostRepo) sorted(filter func(*model.Post) bool) []*model.Post {
	out := make([]*model.Post, 0)
	for _, p := range r.posts {
		if filter == nil || filter(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakePostRepo) CreatePost(_ context.Context, post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.posts[post.ID] = clonePost(post)
	return nil
}

func (r *fakePostRepo) GetPost(_ context.Context, id primitive.ObjectID) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	return clonePost(p), nil
}

func (r *fakePostRepo) GetPostDetail(_ context.Context, id primitive.ObjectID) (*model.PostDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	return r.detail(p), nil
}

func (r *fakePostRepo) GetPostPage(_ context.Context, page, pageSize int64) ([]*model.PostDetail, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sorted(nil)
	out := make([]*model.PostDetail, 0)
	start := (page - 1) * pageSize
	for i := start; i < start+pageSize && i < int64(len(all)); i++ {
		out = append(out, r.detail(all[i]))
	}
	return out, int64(len(all)), nil
}

func (r *fakePostRepo) GetPostsByAuthor(_ context.Context, authorID primitive.ObjectID) ([]*model.PostDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.PostDetail, 0)
	for _, p := range r.sorted(func(p *model.Post) bool { return p.Author == authorID }) {
		out = append(out, r.detail(p))
	}
	return out, nil
}

func (r *fakePostRepo) SavePost(_ context.Context, post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	if _, ok := r.posts[post.ID]; !ok {
		return repository.ErrNotFound
	}
	r.posts[post.ID] = clonePost(post)
	return nil
}

func (r *fakePostRepo) DeletePost(_ context.Context, id primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return 0, nil
	}
	delete(r.posts, id)
	return 1, nil
}

func (r *fakePostRepo) CountPostsByAuthor(_ context.Context) ([]*model.AuthorPostCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byAuthor := make(map[primitive.ObjectID]int64)
	for _, p := range r.posts {
		byAuthor[p.Author]++
	}
	out := make([]*model.AuthorPostCount, 0)
	for id, n := range byAuthor {
		u, ok := r.users[id]
		if !ok {
			continue
		}
		out = append(out, &model.AuthorPostCount{AuthorID: id, AuthorName: u.UserName, TotalPosts: n})
	}
	return out, nil
}

func (r *fakePostRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.posts)
}

func (r *fakePostRepo) stored(id primitive.ObjectID) *model.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil
	}
	return clonePost(p)
}

// fakeMediaStore 记录上传和删除的对象
type fakeMediaStore struct {
	mu        sync.Mutex
	seq       int
	uploaded  []string
	deleted   []string
	consumed  []string
	uploadErr error
	deleteErr error
}

func (m *fakeMediaStore) Upload(_ context.Context, localPath string) (*model.MediaAsset, error) {
	if localPath == "" {
		return nil, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.consumed = append(m.consumed, localPath)
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	m.seq++
	ref := fmt.Sprintf("media-%d", m.seq)
	m.uploaded = append(m.uploaded, ref)
	return &model.MediaAsset{URL: "http://cdn.test/" + ref, ReferenceID: ref}, nil
}

func (m *fakeMediaStore) Delete(_ context.Context, referenceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, referenceID)
	return m.deleteErr
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*model.PostEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, event *model.PostEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[primitive.ObjectID]*model.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*model.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	c := *user
	r.users[user.ID] = &c
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) GetUserByEmailOrName(_ context.Context, email, userName string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Email == email || u.UserName == userName })
}

func (r *fakeUserRepo) find(match func(*model.User) bool) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

type fakeRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	err     error
}

func newFakeRevocationStore() *fakeRevocationStore {
	return &fakeRevocationStore{revoked: make(map[string]time.Duration)}
}

func (s *fakeRevocationStore) Revoke(_ context.Context, signature string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.revoked[signature] = ttl
	return nil
}

func (s *fakeRevocationStore) IsRevoked(_ context.Context, signature string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.revoked[signature]
	return ok, nil
}

var errBoom = errors.New("boom")

func fmtWrap(err error) error {
	return fmt.Errorf("%w: remote said no", err)
}
