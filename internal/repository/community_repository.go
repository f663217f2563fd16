package repository

import (
	"prepos_backend/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

// Create 缺省作者名和类型在写入前补齐
func (r *PostRepository) Create(post *model.Post) error {
	if post.UserName == "" {
		post.UserName = model.AnonymousAuthor
	}
	if post.Type == "" {
		post.Type = model.PostDiscussion
	}
	return r.DB.Create(post).Error
}

// ListRecent 全站最新动态
func (r *PostRepository) ListRecent(limit int) ([]model.Post, error) {
	var posts []model.Post
	err := r.DB.Order("created_at DESC").Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].UserName == "" {
			posts[i].UserName = model.AnonymousAuthor
		}
		if posts[i].Type == "" {
			posts[i].Type = model.PostDiscussion
		}
	}
	return posts, nil
}
