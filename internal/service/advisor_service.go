package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"prepos_backend/internal/ai"
	"prepos_backend/internal/model"
	"prepos_backend/internal/repository"
	"prepos_backend/internal/util"
	"prepos_backend/pkg/logger"
	"prepos_backend/pkg/monitoring"

	"go.uber.org/zap"
)

const (
	maxMockSubjects     = 4
	defaultMockSubject  = "Core Concepts"
	defaultMockCount    = 10
	minMockCount        = 5
	maxMockCount        = 20
	mockOptionCount     = 4
	defaultExamLabel    = "Current Exam"
	noFeedbackGenerated = "No feedback generated."
)

// AdvisorService AI 建议类接口，所有失败都降级为固定内容
type AdvisorService struct {
	UserRepo *repository.UserRepository
	AI       *ai.Gateway
	Calendar *Calendar
}

func NewAdvisorService(userRepo *repository.UserRepository, gateway *ai.Gateway, calendar *Calendar) *AdvisorService {
	return &AdvisorService{UserRepo: userRepo, AI: gateway, Calendar: calendar}
}

type RecommendationRequest struct {
	Exam            string   `json:"exam"`
	WeakSubjects    []string `json:"weakSubjects"`
	LastPerformance *float64 `json:"lastPerformance" binding:"required,min=0,max=100"`
	StudyTime       *float64 `json:"studyTime" binding:"required,min=0"`
}

type Recommendation struct {
	Suggestion      string `json:"suggestion"`
	PrioritySubject string `json:"prioritySubject"`
	Motivation      string `json:"motivation"`
	Plan            string `json:"plan"`
}

type RecommendationResponse struct {
	Recommendation
	Limited  bool `json:"limited"`
	Fallback bool `json:"fallback,omitempty"`
}

type PlacementMentorRequest struct {
	TargetRole         string   `json:"targetRole" binding:"required"`
	WeakDsaTopics      []string `json:"weakDsaTopics"`
	DailyStudyTime     *float64 `json:"dailyStudyTime" binding:"required,min=0"`
	CompanyTargets     []string `json:"companyTargets"`
	MockInterviewScore float64  `json:"mockInterviewScore" binding:"min=0,max=100"`
}

type PlacementAdvice struct {
	Suggestion    string `json:"suggestion"`
	PriorityTopic string `json:"priorityTopic"`
	DailyPlan     string `json:"dailyPlan"`
	InterviewTip  string `json:"interviewTip"`
	CompanyAdvice string `json:"companyAdvice"`
}

type PlacementMentorResponse struct {
	PlacementAdvice
	Limited  bool `json:"limited"`
	Fallback bool `json:"fallback,omitempty"`
}

type MockTestRequest struct {
	Exam       string   `json:"exam" binding:"required"`
	Subjects   []string `json:"subjects"`
	Difficulty string   `json:"difficulty" binding:"required,oneof=Beginner Intermediate Advanced"`
	Count      int      `json:"count" binding:"omitempty,min=5,max=20"`
}

type MockQuestion struct {
	ID          string   `json:"id"`
	Subject     string   `json:"subject"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
}

type MockTestResponse struct {
	Questions []MockQuestion `json:"questions"`
	Fallback  bool           `json:"fallback,omitempty"`
}

type MockInterviewEvalRequest struct {
	Mode   model.MockInterviewMode `json:"mode" binding:"required,oneof=coding hr behavioral"`
	Answer string                  `json:"answer" binding:"required,min=20,max=3000"`
}

type MockInterviewEvaluation struct {
	Score           int    `json:"score"`
	FeedbackSummary string `json:"feedbackSummary"`
}

type MindWellRequest struct {
	Message string `json:"message" binding:"required,min=1,max=1000"`
}

type MindWellResponse struct {
	Reply    string `json:"reply"`
	Fallback bool   `json:"fallback,omitempty"`
}

// Recommendation 考试学习建议。免费用户每天一次，超出后返回当天已生成的内容
func (s *AdvisorService) Recommendation(ctx context.Context, uid string, req RecommendationRequest) (*RecommendationResponse, error) {
	user, err := s.UserRepo.FindByID(uid)
	if err != nil {
		return nil, err
	}
	if req.LastPerformance == nil || *req.LastPerformance < 0 || *req.LastPerformance > 100 {
		return nil, util.Invalid("lastPerformance must be between 0 and 100")
	}
	if req.StudyTime == nil || *req.StudyTime < 0 {
		return nil, util.Invalid("studyTime must not be negative")
	}

	weak := cleanList(req.WeakSubjects, 0)
	exam := strings.TrimSpace(req.Exam)
	if exam == "" {
		exam = defaultExamLabel
	}
	today := s.Calendar.Today()

	if !user.IsPro() && user.LastAIRecommendationDate == today && user.LastAIRecommendation != "" {
		s.recordLimited(uid, "recommendation")
		return &RecommendationResponse{
			Recommendation: Recommendation{
				Suggestion:      user.LastAIRecommendation,
				PrioritySubject: firstOr(weak, "Revision"),
				Motivation:      "Upgrade to Pro for unlimited AI recommendations.",
				Plan:            "Free plan daily limit reached. Review your current plan and continue with consistency.",
			},
			Limited: true,
		}, nil
	}

	fallback := Recommendation{
		Suggestion:      "Focus on your weakest subject first and do one timed practice block.",
		PrioritySubject: firstOr(weak, "General Revision"),
		Motivation:      "Consistency compounds. Your streak is a real advantage.",
		Plan:            "Split your study time into 50-minute focus sessions with 10-minute breaks.",
	}
	prompt := fmt.Sprintf(`You are an academic performance strategist.
Return ONLY valid JSON with keys: suggestion, prioritySubject, motivation, plan.
Context:
- Exam: %s
- Weak Subjects: %s
- Last Performance: %g%%
- Daily Study Time: %g hours

Guidelines:
- suggestion: one concise actionable recommendation.
- prioritySubject: single subject to prioritize.
- motivation: one short motivating sentence.
- plan: two-step tactical plan for today.`, exam, joinOrNone(weak), *req.LastPerformance, *req.StudyTime)

	rec, outcome := ai.Complete(ctx, s.AI, ai.Request[Recommendation]{
		Adapter:  "recommendation",
		Prompt:   prompt,
		Fallback: fallback,
		Merge:    true,
		Validate: requireText(func(r *Recommendation) string { return r.Suggestion }),
	})
	if outcome == ai.OutcomeUnavailable {
		return &RecommendationResponse{Recommendation: rec, Fallback: true}, nil
	}

	s.recordUsage(uid, repository.AIUsageRecommendation, today, rec.Suggestion)
	return &RecommendationResponse{Recommendation: rec}, nil
}

// PlacementMentor 仅就业模式可用，配额规则同 Recommendation
func (s *AdvisorService) PlacementMentor(ctx context.Context, uid string, req PlacementMentorRequest) (*PlacementMentorResponse, error) {
	user, err := s.UserRepo.FindByID(uid)
	if err != nil {
		return nil, err
	}
	if user.GoalType != model.GoalPlacement {
		return nil, util.ErrWrongTrack
	}

	role := strings.TrimSpace(req.TargetRole)
	if role == "" {
		return nil, util.Invalid("targetRole is required")
	}
	if req.DailyStudyTime == nil || *req.DailyStudyTime < 0 {
		return nil, util.Invalid("dailyStudyTime must not be negative")
	}
	if req.MockInterviewScore < 0 || req.MockInterviewScore > 100 {
		return nil, util.Invalid("mockInterviewScore must be between 0 and 100")
	}

	weak := cleanList(req.WeakDsaTopics, 0)
	companies := cleanList(req.CompanyTargets, 0)
	fallback := PlacementAdvice{
		Suggestion:    "Prioritize one weak DSA pattern and solve 3 timed problems before moving to aptitude.",
		PriorityTopic: firstOr(weak, "Dynamic Programming"),
		DailyPlan:     "1) 60 mins DSA patterns 2) 45 mins aptitude set 3) 30 mins CS core revision 4) 15 mins recap.",
		InterviewTip:  "Practice concise thought narration while solving; interviewers score communication heavily.",
		CompanyAdvice: "Pick 3 target companies and map common rounds, timelines, and required problem patterns.",
	}
	today := s.Calendar.Today()

	if !user.IsPro() && user.LastPlacementAIDate == today && user.LastPlacementAIRecommendation != "" {
		s.recordLimited(uid, "placement")
		limited := fallback
		limited.Suggestion = user.LastPlacementAIRecommendation
		return &PlacementMentorResponse{PlacementAdvice: limited, Limited: true}, nil
	}

	prompt := fmt.Sprintf(`You are a placement mentor for software engineering roles.
Return ONLY valid JSON with keys: suggestion, priorityTopic, dailyPlan, interviewTip, companyAdvice.

Context:
- Target role: %s
- Weak DSA topics: %s
- Daily study time: %g hours
- Target companies: %s
- Mock interview score: %g

Keep each value concise and practical.`, role, joinOrNone(weak), *req.DailyStudyTime, joinOrNone(companies), req.MockInterviewScore)

	advice, outcome := ai.Complete(ctx, s.AI, ai.Request[PlacementAdvice]{
		Adapter:  "placement",
		Prompt:   prompt,
		Fallback: fallback,
		Merge:    true,
	})
	if outcome == ai.OutcomeUnavailable {
		return &PlacementMentorResponse{PlacementAdvice: advice, Fallback: true}, nil
	}

	s.recordUsage(uid, repository.AIUsagePlacement, today, advice.Suggestion)
	return &PlacementMentorResponse{PlacementAdvice: advice}, nil
}

// GenerateMockTest 生成单选题，模型输出不合格时使用确定性题目
func (s *AdvisorService) GenerateMockTest(ctx context.Context, req MockTestRequest) (*MockTestResponse, error) {
	exam := strings.TrimSpace(req.Exam)
	if exam == "" {
		return nil, util.Invalid("exam is required")
	}
	levelHint, ok := mockLevelHints[req.Difficulty]
	if !ok {
		return nil, util.Invalid("difficulty must be Beginner, Intermediate or Advanced")
	}
	count := req.Count
	if count == 0 {
		count = defaultMockCount
	}
	if count < minMockCount || count > maxMockCount {
		return nil, util.Invalid("count must be between %d and %d", minMockCount, maxMockCount)
	}

	subjects := cleanList(req.Subjects, maxMockSubjects)
	if len(subjects) == 0 {
		subjects = []string{defaultMockSubject}
	}
	fallback := MockTestResponse{
		Questions: fallbackMockQuestions(subjects, req.Difficulty, levelHint, count),
		Fallback:  true,
	}

	prompt := fmt.Sprintf(`Generate %d multiple-choice questions for the %s exam.
Focus subjects: %s.
Difficulty: %s.

Return ONLY valid JSON:
{
  "questions": [
    {
      "id": "q1",
      "subject": "Subject Name",
      "question": "Question text",
      "options": ["A", "B", "C", "D"],
      "answerIndex": 0
    }
  ]
}`, count, exam, strings.Join(subjects, ", "), req.Difficulty)

	result, _ := ai.Complete(ctx, s.AI, ai.Request[MockTestResponse]{
		Adapter:  "mock_test",
		Prompt:   prompt,
		Fallback: fallback,
		Validate: validateMockTest,
	})
	return &result, nil
}

// EvaluateMockInterview 分数限制在 0-100 并取整
func (s *AdvisorService) EvaluateMockInterview(ctx context.Context, req MockInterviewEvalRequest) (*MockInterviewEvaluation, error) {
	fallback, ok := mockInterviewFallbacks[req.Mode]
	if !ok {
		return nil, util.Invalid("mode must be coding, hr or behavioral")
	}
	if n := len([]rune(req.Answer)); n < 20 || n > 3000 {
		return nil, util.Invalid("answer must be 20-3000 characters")
	}

	prompt := fmt.Sprintf(`You are an interview evaluator.
Mode: %s
Candidate answer:
%s

Return ONLY valid JSON:
{
  "score": 0-100,
  "feedbackSummary": "2 concise sentences with strengths and improvements"
}`, req.Mode, req.Answer)

	type evaluation struct {
		Score           float64 `json:"score"`
		FeedbackSummary string  `json:"feedbackSummary"`
	}
	parsed, outcome := ai.Complete(ctx, s.AI, ai.Request[evaluation]{
		Adapter: "mock_interview",
		Prompt:  prompt,
	})
	if outcome != ai.OutcomeOK {
		result := fallback
		return &result, nil
	}

	summary := strings.TrimSpace(parsed.FeedbackSummary)
	if summary == "" {
		summary = noFeedbackGenerated
	}
	return &MockInterviewEvaluation{
		Score:           clampScore(parsed.Score),
		FeedbackSummary: summary,
	}, nil
}

// MindWell 学习状态对话，纯文本回复
func (s *AdvisorService) MindWell(ctx context.Context, req MindWellRequest) (*MindWellResponse, error) {
	message := req.Message
	if n := len([]rune(message)); n < 1 || n > 1000 {
		return nil, util.Invalid("message must be 1-1000 characters")
	}

	prompt := fmt.Sprintf(`You are MindWell, a supportive student productivity assistant.
User message: "%s"

Respond in <= 120 words.
Tone: calm, practical, optimistic.
Do not provide medical diagnosis.
Include one immediate action and one reflection prompt.`, message)

	reply, outcome := s.AI.GenerateText(ctx, "mindwell", prompt)
	switch outcome {
	case ai.OutcomeUnavailable:
		return &MindWellResponse{
			Reply:    "Take a 5-minute breathing break, then restart with a 25-minute focused sprint on one topic only.",
			Fallback: true,
		}, nil
	case ai.OutcomeFallback:
		return &MindWellResponse{
			Reply:    "I could not reach AI right now. Take one 10-minute reset, then do a single 30-minute deep-focus block on your highest-priority topic.",
			Fallback: true,
		}, nil
	}
	return &MindWellResponse{Reply: reply}, nil
}

func (s *AdvisorService) recordLimited(uid, adapter string) {
	logger.Log.Info("Free AI quota reached, returning stored advice",
		zap.String("user_id", uid),
		zap.String("adapter", adapter))
	monitoring.AIRequests.WithLabelValues(adapter, "limited").Inc()
}

// recordUsage 写入失败不影响本次返回
func (s *AdvisorService) recordUsage(uid string, kind repository.AIUsageKind, today, text string) {
	if err := s.UserRepo.RecordAIUsage(uid, kind, today, text); err != nil {
		logger.Log.Warn("Failed to record AI usage",
			zap.String("user_id", uid),
			zap.Error(err))
	}
}

var mockLevelHints = map[string]string{
	"Beginner":     "basic concept understanding",
	"Intermediate": "applied reasoning with constraints",
	"Advanced":     "edge-case heavy and optimization-oriented",
}

var mockInterviewFallbacks = map[model.MockInterviewMode]MockInterviewEvaluation{
	model.InterviewModeCoding: {
		Score:           68,
		FeedbackSummary: "Good approach framing. Improve edge-case handling and explicitly analyze time/space complexity.",
	},
	model.InterviewModeHR: {
		Score:           72,
		FeedbackSummary: "Clear communication and intent. Add concrete examples using impact metrics for stronger answers.",
	},
	model.InterviewModeBehavioral: {
		Score:           70,
		FeedbackSummary: "Response is structured. Improve STAR depth by adding conflict details, decisions, and measurable outcomes.",
	},
}

func fallbackMockQuestions(subjects []string, difficulty, levelHint string, count int) []MockQuestion {
	questions := make([]MockQuestion, 0, count)
	for i := 0; i < count; i++ {
		subject := subjects[i%len(subjects)]
		questions = append(questions, MockQuestion{
			ID:       fmt.Sprintf("q%d", i+1),
			Subject:  subject,
			Question: fmt.Sprintf("(%s) %s: Which option best matches a %s approach for scenario #%d?", difficulty, subject, levelHint, i+1),
			Options: []string{
				fmt.Sprintf("Use brute force first, then document limits (%d mins)", i+3),
				"Select a pattern-based approach and explain trade-offs",
				"Prioritize memory optimization regardless of constraints",
				"Skip complexity analysis and focus only on syntax",
			},
			AnswerIndex: 1,
		})
	}
	return questions
}

func validateMockTest(r *MockTestResponse) error {
	if len(r.Questions) == 0 {
		return errors.New("no questions")
	}
	for i, q := range r.Questions {
		if len(q.Options) != mockOptionCount {
			return fmt.Errorf("question %d has %d options", i+1, len(q.Options))
		}
		if q.AnswerIndex < 0 || q.AnswerIndex >= mockOptionCount {
			return fmt.Errorf("question %d answerIndex out of range", i+1)
		}
	}
	r.Fallback = false
	return nil
}

func requireText[T any](field func(*T) string) func(*T) error {
	return func(v *T) error {
		if strings.TrimSpace(field(v)) == "" {
			return errors.New("missing required text field")
		}
		return nil
	}
}

func clampScore(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Max(0, math.Min(100, math.Round(v))))
}

func firstOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return items[0]
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
