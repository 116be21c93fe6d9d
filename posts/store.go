package posts

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"blogful/models"
)

var ErrPostNotFound = errors.New("post not found")

// Store reads and writes posts through the handle it is given.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// List returns the posts inside the window, newest first.
func (s *Store) List(ctx context.Context, p Pagination) ([]models.Post, error) {
	posts := []models.Post{}
	if !p.InRange() {
		return posts, nil
	}

	err := s.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Order("id DESC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts page %d: %w", p.Page, err)
	}
	return posts, nil
}

// Page counts the posts and loads the window for page in one call.
func (s *Store) Page(ctx context.Context, page, size int) ([]models.Post, Pagination, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return nil, Pagination{}, err
	}

	p := NewPagination(page, size, count)
	posts, err := s.List(ctx, p)
	if err != nil {
		return nil, p, err
	}
	return posts, p, nil
}

func (s *Store) Get(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Preload("Author").First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("get post %d: %w", id, ErrPostNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return &post, nil
}

// Create renders source and stores a new post. author may be nil.
func (s *Store) Create(ctx context.Context, title, source string, author *models.User) (*models.Post, error) {
	content, err := renderMarkdown(source)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:   title,
		Source:  source,
		Content: content,
	}
	if author != nil {
		post.AuthorID = &author.ID
	}

	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// Update replaces the title and content of post.
func (s *Store) Update(ctx context.Context, post *models.Post, title, source string) error {
	content, err := renderMarkdown(source)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Model(post).Updates(map[string]interface{}{
		"title":   title,
		"source":  source,
		"content": content,
	}).Error
	if err != nil {
		return fmt.Errorf("update post %d: %w", post.ID, err)
	}
	post.Title = title
	post.Source = source
	post.Content = content
	return nil
}

func (s *Store) Delete(ctx context.Context, post *models.Post) error {
	result := s.db.WithContext(ctx).Delete(&models.Post{}, post.ID)
	if result.Error != nil {
		return fmt.Errorf("delete post %d: %w", post.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete post %d: %w", post.ID, ErrPostNotFound)
	}
	return nil
}
