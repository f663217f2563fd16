package service

import (
	"strings"

	"prepos_backend/internal/model"
	"prepos_backend/internal/repository"
	"prepos_backend/internal/util"
)

const (
	postListLimit    = 40
	leaderboardLimit = 10
	minPostLength    = 5
	maxPostLength    = 500
)

type CommunityService struct {
	PostRepo *repository.PostRepository
	UserRepo *repository.UserRepository
}

func NewCommunityService(postRepo *repository.PostRepository, userRepo *repository.UserRepository) *CommunityService {
	return &CommunityService{PostRepo: postRepo, UserRepo: userRepo}
}

type PostRequest struct {
	Type    model.PostType `json:"type" binding:"omitempty,oneof=job referral discussion"`
	Content string         `json:"content" binding:"required"`
}

// CreatePost 作者信息取自当前资料
func (s *CommunityService) CreatePost(uid string, req PostRequest) (*model.Post, error) {
	content := strings.TrimSpace(req.Content)
	if n := len([]rune(content)); n < minPostLength || n > maxPostLength {
		return nil, util.Invalid("Post content should be 5-500 characters.")
	}

	postType := req.Type
	switch postType {
	case "":
		postType = model.PostDiscussion
	case model.PostJob, model.PostReferral, model.PostDiscussion:
	default:
		return nil, util.Invalid("unknown post type %q", req.Type)
	}

	user, err := s.UserRepo.FindByID(uid)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		UserID:       uid,
		UserName:     user.Name,
		UserPhotoURL: user.PhotoURL,
		Type:         postType,
		Content:      content,
	}
	if err := s.PostRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts 最新在前
func (s *CommunityService) ListPosts() ([]model.Post, error) {
	return s.PostRepo.ListRecent(postListLimit)
}

// Leaderboard 按经验值排名前 10
func (s *CommunityService) Leaderboard() ([]model.LeaderboardEntry, error) {
	users, err := s.UserRepo.FindTopByXP(leaderboardLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		name := u.Name
		if name == "" {
			name = model.AnonymousAuthor
		}
		entries = append(entries, model.LeaderboardEntry{
			UID:      u.ID,
			Name:     name,
			PhotoURL: u.PhotoURL,
			XP:       u.XP,
			Streak:   u.Streak,
		})
	}
	return entries, nil
}
