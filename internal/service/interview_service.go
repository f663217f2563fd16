package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"prepos_backend/internal/ai"
	"prepos_backend/internal/metrics"
	"prepos_backend/internal/model"
	"prepos_backend/internal/repository"
	"prepos_backend/internal/util"
	"prepos_backend/pkg/logger"
	"prepos_backend/pkg/tracing"

	"go.uber.org/zap"
)

const (
	minInterviewAnswer = 15
	maxInterviewAnswer = 5000
	followUpTopic      = "Follow-up"
	followUpQuoteRunes = 80
)

// InterviewService 虚拟面试：出题、评估、会话最终得分
type InterviewService struct {
	InterviewRepo *repository.InterviewRepository
	Dashboard     *DashboardService
	AI            *ai.Gateway
}

func NewInterviewService(interviewRepo *repository.InterviewRepository, dashboard *DashboardService, gateway *ai.Gateway) *InterviewService {
	return &InterviewService{InterviewRepo: interviewRepo, Dashboard: dashboard, AI: gateway}
}

type InterviewStartRequest struct {
	Type         model.InterviewType `json:"type" binding:"required,oneof=technical-dsa core-cs hr-behavioral system-design company-specific"`
	Difficulty   model.DsaDifficulty `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
	Company      string              `json:"company" binding:"max=120"`
	SessionID    string              `json:"sessionId"`
	SeedQuestion string              `json:"seedQuestion"`
	TargetRole   string              `json:"targetRole" binding:"max=120"`
}

type InterviewStartResponse struct {
	SessionID  string              `json:"sessionId"`
	QuestionID string              `json:"questionId"`
	Question   string              `json:"question"`
	Difficulty model.DsaDifficulty `json:"difficulty"`
	Topic      string              `json:"topic"`
}

type InterviewEvaluateRequest struct {
	SessionID  string `json:"sessionId" binding:"required"`
	QuestionID string `json:"questionId" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

type InterviewEvaluateResponse struct {
	model.InterviewFeedback
	FinalScore *float64 `json:"finalScore"`
}

type interviewQuestion struct {
	Question   string              `json:"question"`
	Difficulty model.DsaDifficulty `json:"difficulty"`
	Topic      string              `json:"topic"`
}

// Start 复用已有会话或新建会话，然后生成一道题
func (s *InterviewService) Start(ctx context.Context, uid string, req InterviewStartRequest) (result *InterviewStartResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "interview.start", uid)
	defer func() { tracing.EndSpan(span, err) }()

	if !validInterviewType(req.Type) {
		return nil, util.Invalid("unknown interview type %q", req.Type)
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = model.DsaMedium
	}
	if difficulty.Weight() == 0 {
		return nil, util.Invalid("difficulty must be Easy, Medium or Hard")
	}
	company := strings.TrimSpace(req.Company)
	targetRole := strings.TrimSpace(req.TargetRole)
	if targetRole == "" {
		targetRole = model.DefaultTargetRole
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID != "" {
		if _, err := s.InterviewRepo.GetSession(uid, sessionID); err != nil {
			return nil, err
		}
	} else {
		session := &model.InterviewSession{
			UserID:     uid,
			Type:       req.Type,
			Difficulty: difficulty,
		}
		if company != "" {
			session.Company = &company
		}
		if err := s.InterviewRepo.CreateSession(session); err != nil {
			return nil, fmt.Errorf("create interview session: %w", err)
		}
		sessionID = session.ID
	}

	var generated interviewQuestion
	if seed := strings.TrimSpace(req.SeedQuestion); seed != "" {
		generated = interviewQuestion{Question: seed, Difficulty: difficulty, Topic: followUpTopic}
	} else {
		generated = s.generateQuestion(ctx, req.Type, difficulty, company, targetRole)
	}

	question := &model.InterviewQuestion{
		SessionID:  sessionID,
		UserID:     uid,
		Question:   generated.Question,
		Topic:      generated.Topic,
		Difficulty: generated.Difficulty,
	}
	if err := s.InterviewRepo.CreateQuestion(question); err != nil {
		return nil, fmt.Errorf("create interview question: %w", err)
	}

	return &InterviewStartResponse{
		SessionID:  sessionID,
		QuestionID: question.ID,
		Question:   question.Question,
		Difficulty: question.Difficulty,
		Topic:      question.Topic,
	}, nil
}

func (s *InterviewService) generateQuestion(ctx context.Context, kind model.InterviewType, difficulty model.DsaDifficulty, company, targetRole string) interviewQuestion {
	fallback := fallbackInterviewQuestion(kind, difficulty, company)

	companyLine := company
	if companyLine == "" {
		companyLine = "Not specified"
	}
	prompt := fmt.Sprintf(`Act as a senior interviewer at a top tech company.
Ask ONE challenging interview question for a %s role.
Interview type: %s
Difficulty: %s
Target company: %s

Do NOT provide the answer.
Return ONLY valid JSON:
{
  "question": "...",
  "difficulty": "%s",
  "topic": "..."
}`, targetRole, kind, difficulty, companyLine, difficulty)

	generated, _ := ai.Complete(ctx, s.AI, ai.Request[interviewQuestion]{
		Adapter:  "interview_question",
		Prompt:   prompt,
		Fallback: fallback,
		Merge:    true,
		Validate: func(q *interviewQuestion) error {
			q.Question = strings.TrimSpace(q.Question)
			if q.Question == "" {
				return errors.New("empty question")
			}
			q.Topic = strings.TrimSpace(q.Topic)
			if q.Topic == "" {
				q.Topic = fallback.Topic
			}
			if q.Difficulty.Weight() == 0 {
				q.Difficulty = difficulty
			}
			return nil
		},
	})
	return generated
}

// Evaluate 评估回答、写回评分并重新计算会话最终得分和就业准备度
func (s *InterviewService) Evaluate(ctx context.Context, uid string, req InterviewEvaluateRequest) (result *InterviewEvaluateResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "interview.evaluate", uid)
	defer func() { tracing.EndSpan(span, err) }()

	answer := strings.TrimSpace(req.Answer)
	if n := len([]rune(answer)); n < minInterviewAnswer || n > maxInterviewAnswer {
		return nil, util.Invalid("answer must be %d-%d characters", minInterviewAnswer, maxInterviewAnswer)
	}

	if _, err := s.InterviewRepo.GetSession(uid, req.SessionID); err != nil {
		return nil, err
	}
	question, err := s.InterviewRepo.GetQuestion(req.SessionID, req.QuestionID)
	if err != nil {
		return nil, err
	}

	fallback := fallbackInterviewFeedback(question.Question)
	prompt := fmt.Sprintf(`You are evaluating a candidate's interview answer.

Question: %s
Candidate Answer: %s

Provide:
- Score out of 10
- Strengths
- Weaknesses
- Improved Model Answer
- One Follow-up Question

Return ONLY valid JSON:
{
  "score": 7,
  "strengths": "...",
  "weaknesses": "...",
  "modelAnswer": "...",
  "followUp": "..."
}`, question.Question, answer)

	feedback, _ := ai.Complete(ctx, s.AI, ai.Request[model.InterviewFeedback]{
		Adapter:  "interview_evaluate",
		Prompt:   prompt,
		Fallback: fallback,
		Merge:    true,
	})
	feedback.Score = metrics.ClampFeedbackScore(feedback.Score)

	finalScore, err := s.InterviewRepo.GradeQuestion(req.SessionID, req.QuestionID, answer, feedback)
	if err != nil {
		return nil, fmt.Errorf("grade interview question: %w", err)
	}

	// 评估后立即刷新就业准备度
	if _, err := s.Dashboard.GetPlacementDashboard(ctx, uid); err != nil && !errors.Is(err, util.ErrWrongTrack) {
		logger.Log.Warn("Placement readiness refresh failed",
			zap.String("user_id", uid),
			zap.Error(err))
	}

	return &InterviewEvaluateResponse{InterviewFeedback: feedback, FinalScore: finalScore}, nil
}

func (s *InterviewService) GetSession(uid, sessionID string) (*repository.SessionDetail, error) {
	return s.InterviewRepo.GetSessionWithQuestions(uid, sessionID)
}

func validInterviewType(t model.InterviewType) bool {
	switch t {
	case model.InterviewTechnicalDSA, model.InterviewCoreCS, model.InterviewHRBehavioral,
		model.InterviewSystemDesign, model.InterviewCompanySpecific:
		return true
	}
	return false
}

func fallbackInterviewQuestion(kind model.InterviewType, difficulty model.DsaDifficulty, company string) interviewQuestion {
	q := interviewQuestion{Difficulty: difficulty}
	switch kind {
	case model.InterviewTechnicalDSA:
		q.Topic = "Dynamic Programming"
		q.Question = "Given an array, design an O(n) or O(n log n) approach to find the maximum subarray sum with at most one deletion."
	case model.InterviewCoreCS:
		q.Topic = "DBMS Transactions"
		q.Question = "Explain isolation levels and discuss how phantom reads can occur in a high-concurrency reservation system."
	case model.InterviewHRBehavioral:
		q.Topic = "Conflict Resolution"
		q.Question = "Describe a time you disagreed with a teammate on technical direction and how you resolved it with measurable outcome."
	case model.InterviewSystemDesign:
		q.Topic = "Scalable Notification Service"
		q.Question = "Design a notification service for millions of users supporting retries, prioritization, and multi-channel delivery."
	default:
		if company == "" {
			company = "a top product company"
		}
		q.Topic = "Company-Focused Interview"
		q.Question = fmt.Sprintf("For %s, explain how you would prepare for coding + behavioral rounds in 14 days and justify your prioritization.", company)
	}
	return q
}

func fallbackInterviewFeedback(question string) model.InterviewFeedback {
	quoted := []rune(question)
	if len(quoted) > followUpQuoteRunes {
		quoted = quoted[:followUpQuoteRunes]
	}
	return model.InterviewFeedback{
		Score:       6,
		Strengths:   "Answer shows intent and basic structure.",
		Weaknesses:  "Needs deeper technical reasoning, concrete examples, and clearer trade-off discussion.",
		ModelAnswer: "Start with assumptions, outline approach options, compare trade-offs, then present a clear solution with complexity and edge-case handling.",
		FollowUp:    fmt.Sprintf("What is one key trade-off in your answer to: \"%s...\"?", string(quoted)),
	}
}
