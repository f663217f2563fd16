package repository

import (
	"errors"
	"time"

	"prepos_backend/internal/metrics"
	"prepos_backend/internal/model"
	"prepos_backend/internal/util"

	"gorm.io/gorm"
)

type InterviewRepository struct {
	DB      *gorm.DB
	Planner *QueryPlanner
}

func NewInterviewRepository(db *gorm.DB, planner *QueryPlanner) *InterviewRepository {
	return &InterviewRepository{DB: db, Planner: planner}
}

// SessionDetail 会话及其按创建时间正序的题目
type SessionDetail struct {
	Session   model.InterviewSession    `json:"session"`
	Questions []model.InterviewQuestion `json:"questions"`
}

func (r *InterviewRepository) CreateSession(session *model.InterviewSession) error {
	return r.DB.Create(session).Error
}

// GetSession 会话不存在或不属于该用户时统一返回未找到
func (r *InterviewRepository) GetSession(userID, sessionID string) (*model.InterviewSession, error) {
	var session model.InterviewSession
	err := r.DB.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrInterviewSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *InterviewRepository) CreateQuestion(question *model.InterviewQuestion) error {
	return r.DB.Create(question).Error
}

func (r *InterviewRepository) GetQuestion(sessionID, questionID string) (*model.InterviewQuestion, error) {
	var question model.InterviewQuestion
	err := r.DB.Where("id = ? AND session_id = ?", questionID, sessionID).First(&question).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrInterviewQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// GradeQuestion 调用方需先确认题目存在。写入回答与评价后，按会话内全部已评分题目重新求均值作为最终得分
func (r *InterviewRepository) GradeQuestion(sessionID, questionID, answer string, feedback model.InterviewFeedback) (*float64, error) {
	var finalScore *float64
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		question := model.InterviewQuestion{}
		question.SetFeedback(feedback)
		score := feedback.Score

		if err := tx.Model(&model.InterviewQuestion{}).
			Where("id = ? AND session_id = ?", questionID, sessionID).
			Updates(map[string]interface{}{
				"user_answer": answer,
				"ai_feedback": question.AIFeedback,
				"score":       score,
			}).Error; err != nil {
			return err
		}

		var scores []*float64
		if err := tx.Model(&model.InterviewQuestion{}).
			Where("session_id = ?", sessionID).
			Pluck("score", &scores).Error; err != nil {
			return err
		}
		finalScore = metrics.SessionFinalScore(scores)

		return tx.Model(&model.InterviewSession{}).
			Where("id = ?", sessionID).
			Update("final_score", finalScore).Error
	})
	if err != nil {
		return nil, err
	}
	return finalScore, nil
}

func (r *InterviewRepository) GetSessionWithQuestions(userID, sessionID string) (*SessionDetail, error) {
	session, err := r.GetSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	questions := []model.InterviewQuestion{}
	if err := r.DB.Where("session_id = ?", sessionID).Order("created_at ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return &SessionDetail{Session: *session, Questions: questions}, nil
}

func (r *InterviewRepository) ListSessions(userID string, limit int) ([]model.InterviewSession, error) {
	return listRecent(r.DB, r.Planner, model.InterviewSession{}.TableName(), userID, limit,
		func(s *model.InterviewSession) time.Time { return s.CreatedAt })
}

// ListQuestionsByUser 跨会话的最近题目
func (r *InterviewRepository) ListQuestionsByUser(userID string, limit int) ([]model.InterviewQuestion, error) {
	return listRecent(r.DB, r.Planner, model.InterviewQuestion{}.TableName(), userID, limit,
		func(q *model.InterviewQuestion) time.Time { return q.CreatedAt })
}
