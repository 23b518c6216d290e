package service

import (
	"context"
	"sync"

	"blog_nest/internal/common"
	"blog_nest/internal/domain/model"
)

// In-memory repositories for service tests. They honor the same contracts as
// the postgres implementations: ErrNotFound for misses and the duplicate
// sentinels on unique conflicts.

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]*model.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) add(user *model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.users[user.ID] = &clone
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return common.ErrDuplicateUsername
		}
		if existing.Email == user.Email {
			return common.ErrDuplicateEmail
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []model.User
	for _, user := range r.users {
		users = append(users, *user)
	}
	return users, nil
}

func (r *fakeUserRepo) UpdateActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	user.Active = active
	return nil
}

func (r *fakeUserRepo) UpdateRoles(_ context.Context, id string, roles []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	user.Roles = append([]string(nil), roles...)
	return nil
}

type fakeBlogRepo struct {
	mu    sync.Mutex
	blogs []*model.Blog
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{}
}

func (r *fakeBlogRepo) Create(_ context.Context, blog *model.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.blogs {
		if existing.Title == blog.Title {
			return common.ErrDuplicateTitle
		}
	}
	clone := *blog
	r.blogs = append(r.blogs, &clone)
	return nil
}

func (r *fakeBlogRepo) FindByID(_ context.Context, id string) (*model.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, blog := range r.blogs {
		if blog.ID == id {
			clone := *blog
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeBlogRepo) FindByTitle(_ context.Context, title string) (*model.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, blog := range r.blogs {
		if blog.Title == title {
			clone := *blog
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeBlogRepo) ListPublished(_ context.Context) ([]model.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var blogs []model.Blog
	for _, blog := range r.blogs {
		if blog.Published {
			blogs = append(blogs, *blog)
		}
	}
	return blogs, nil
}

func (r *fakeBlogRepo) ListAll(_ context.Context) ([]model.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var blogs []model.Blog
	for _, blog := range r.blogs {
		blogs = append(blogs, *blog)
	}
	return blogs, nil
}

func (r *fakeBlogRepo) Update(_ context.Context, blog *model.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.blogs {
		if existing.ID == blog.ID {
			clone := *blog
			r.blogs[i] = &clone
			return nil
		}
	}
	return common.ErrNotFound
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []*model.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *comment
	r.comments = append(r.comments, &clone)
	return nil
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id string) (*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, comment := range r.comments {
		if comment.ID == id {
			clone := *comment
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeCommentRepo) ListByBlog(_ context.Context, blogID string) ([]model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var comments []model.Comment
	for _, comment := range r.comments {
		if comment.BlogID == blogID {
			comments = append(comments, *comment)
		}
	}
	return comments, nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, comment := range r.comments {
		if comment.ID == id {
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}
