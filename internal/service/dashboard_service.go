package service

import (
	"context"
	"fmt"

	"prepos_backend/internal/metrics"
	"prepos_backend/internal/model"
	"prepos_backend/internal/repository"
	"prepos_backend/internal/util"
	"prepos_backend/pkg/logger"
	"prepos_backend/pkg/monitoring"
	"prepos_backend/pkg/tracing"

	"go.uber.org/zap"
)

// 仪表盘读取的记录条数上限
const (
	dashboardSessionLimit           = 300
	examMockTestLimit               = 40
	placementMockTestLimit          = 80
	dashboardMockInterviewLimit     = 40
	dashboardCompanyAppLimit        = 80
	dashboardInterviewSessionLimit  = 40
	dashboardInterviewQuestionLimit = 220
)

type DashboardService struct {
	UserRepo          *repository.UserRepository
	Catalog           *repository.CatalogCache
	SessionRepo       *repository.StudySessionRepository
	MockTestRepo      *repository.MockTestRepository
	MockInterviewRepo *repository.MockInterviewRepository
	CompanyRepo       *repository.CompanyApplicationRepository
	DsaRepo           *repository.DsaTopicRepository
	InterviewRepo     *repository.InterviewRepository
	Calendar          *Calendar
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	catalog *repository.CatalogCache,
	sessionRepo *repository.StudySessionRepository,
	mockTestRepo *repository.MockTestRepository,
	mockInterviewRepo *repository.MockInterviewRepository,
	companyRepo *repository.CompanyApplicationRepository,
	dsaRepo *repository.DsaTopicRepository,
	interviewRepo *repository.InterviewRepository,
	calendar *Calendar,
) *DashboardService {
	return &DashboardService{
		UserRepo:          userRepo,
		Catalog:           catalog,
		SessionRepo:       sessionRepo,
		MockTestRepo:      mockTestRepo,
		MockInterviewRepo: mockInterviewRepo,
		CompanyRepo:       companyRepo,
		DsaRepo:           dsaRepo,
		InterviewRepo:     interviewRepo,
		Calendar:          calendar,
	}
}

type ExamDashboard struct {
	User      *model.User             `json:"user"`
	Exam      model.Exam              `json:"exam"`
	Subjects  []model.Subject         `json:"subjects"`
	Sessions  []model.StudySession    `json:"sessions"`
	MockTests []model.MockTestAttempt `json:"mockTests"`
	Metrics   metrics.ExamMetrics     `json:"metrics"`
}

type PlacementDashboard struct {
	User                *model.User                `json:"user"`
	Sessions            []model.StudySession       `json:"sessions"`
	DsaTopics           []model.DsaTopic           `json:"dsaTopics"`
	MockTests           []model.MockTestAttempt    `json:"mockTests"`
	MockInterviews      []model.MockInterview      `json:"mockInterviews"`
	CompanyApplications []model.CompanyApplication `json:"companyApplications"`
	InterviewSessions   []model.InterviewSession   `json:"interviewSessions"`
	InterviewQuestions  []model.InterviewQuestion  `json:"interviewQuestions"`
	Metrics             metrics.PlacementMetrics   `json:"metrics"`
}

// Dashboard 按目标类型只填充其中一个
type Dashboard struct {
	GoalType  model.GoalType      `json:"goalType"`
	Exam      *ExamDashboard      `json:"exam,omitempty"`
	Placement *PlacementDashboard `json:"placement,omitempty"`
}

func (s *DashboardService) GetDashboard(ctx context.Context, uid string) (*Dashboard, error) {
	user, err := s.UserRepo.FindByID(uid)
	if err != nil {
		return nil, err
	}

	if user.GoalType == model.GoalPlacement {
		placement, err := s.GetPlacementDashboard(ctx, uid)
		if err != nil {
			return nil, err
		}
		return &Dashboard{GoalType: model.GoalPlacement, Placement: placement}, nil
	}

	exam, err := s.GetExamDashboard(ctx, uid)
	if err != nil {
		return nil, err
	}
	return &Dashboard{GoalType: model.GoalExam, Exam: exam}, nil
}

// GetExamDashboard 每次读取都重新计算准备度，变化时回写用户记录
func (s *DashboardService) GetExamDashboard(ctx context.Context, uid string) (result *ExamDashboard, err error) {
	ctx, span := tracing.StartSpan(ctx, "dashboard.exam", uid)
	defer func() { tracing.EndSpan(span, err) }()

	user, err := s.UserRepo.FindByID(uid)
	if err != nil {
		return nil, err
	}
	if user.GoalType == model.GoalPlacement {
		return nil, util.ErrWrongTrack
	}
	if user.ExamID == nil || *user.ExamID == "" {
		return nil, util.ErrOnboardingRequired
	}

	syllabus, err := s.Catalog.GetSyllabus(ctx, *user.ExamID)
	if err != nil {
		return nil, fmt.Errorf("load syllabus %s: %w", *user.ExamID, err)
	}
	sessions, err := s.SessionRepo.ListByUser(uid, dashboardSessionLimit)
	if err != nil {
		return nil, fmt.Errorf("list study sessions: %w", err)
	}
	mockTests, err := s.MockTestRepo.ListByUser(uid, examMockTestLimit)
	if err != nil {
		return nil, fmt.Errorf("list mock tests: %w", err)
	}

	computed := metrics.BuildExamMetrics(metrics.ExamInput{
		Streak:         user.Streak,
		DailyStudyTime: user.DailyStudyTime,
		TargetDate:     user.TargetDate,
		Subjects:       syllabus.Subjects,
		Sessions:       sessions,
		MockTests:      mockTests,
	}, s.Calendar.Current())

	if err := s.persistReadiness(user, computed.ReadinessScore, string(model.GoalExam)); err != nil {
		return nil, err
	}

	return &ExamDashboard{
		User:      user,
		Exam:      syllabus.Exam,
		Subjects:  syllabus.Subjects,
		Sessions:  sessions,
		MockTests: mockTests,
		Metrics:   computed,
	}, nil
}

func (s *DashboardService) GetPlacementDashboard(ctx context.Context, uid string) (result *PlacementDashboard, err error) {
	_, span := tracing.StartSpan(ctx, "dashboard.placement", uid)
	defer func() { tracing.EndSpan(span, err) }()

	user, err := s.UserRepo.FindByID(uid)
	if err != nil {
		return nil, err
	}
	if user.GoalType != model.GoalPlacement {
		return nil, util.ErrWrongTrack
	}

	dsaTopics, err := s.DsaRepo.ListOrSeed(uid)
	if err != nil {
		return nil, fmt.Errorf("list dsa topics: %w", err)
	}
	sessions, err := s.SessionRepo.ListByUser(uid, dashboardSessionLimit)
	if err != nil {
		return nil, fmt.Errorf("list study sessions: %w", err)
	}
	mockTests, err := s.MockTestRepo.ListByUser(uid, placementMockTestLimit)
	if err != nil {
		return nil, fmt.Errorf("list mock tests: %w", err)
	}
	mockInterviews, err := s.MockInterviewRepo.ListByUser(uid, dashboardMockInterviewLimit)
	if err != nil {
		return nil, fmt.Errorf("list mock interviews: %w", err)
	}
	companyApps, err := s.CompanyRepo.ListByUser(uid, dashboardCompanyAppLimit)
	if err != nil {
		return nil, fmt.Errorf("list company applications: %w", err)
	}
	interviewSessions, err := s.InterviewRepo.ListSessions(uid, dashboardInterviewSessionLimit)
	if err != nil {
		return nil, fmt.Errorf("list interview sessions: %w", err)
	}
	questions, err := s.InterviewRepo.ListQuestionsByUser(uid, dashboardInterviewQuestionLimit)
	if err != nil {
		return nil, fmt.Errorf("list interview questions: %w", err)
	}

	computed := metrics.BuildPlacementMetrics(metrics.PlacementInput{
		Streak:             user.Streak,
		DailyStudyTime:     user.DailyStudyTime,
		DsaTopics:          dsaTopics,
		Sessions:           sessions,
		MockTests:          mockTests,
		MockInterviews:     mockInterviews,
		InterviewQuestions: questions,
	}, s.Calendar.Current())

	if err := s.persistReadiness(user, computed.ReadinessScore, string(model.GoalPlacement)); err != nil {
		return nil, err
	}

	return &PlacementDashboard{
		User:                user,
		Sessions:            sessions,
		DsaTopics:           dsaTopics,
		MockTests:           mockTests,
		MockInterviews:      mockInterviews,
		CompanyApplications: companyApps,
		InterviewSessions:   interviewSessions,
		InterviewQuestions:  questions,
		Metrics:             computed,
	}, nil
}

// persistReadiness 只在分数变化时写回，并同步返回给调用方的 user
func (s *DashboardService) persistReadiness(user *model.User, score int, track string) error {
	monitoring.ReadinessScore.WithLabelValues(track).Observe(float64(score))
	if score == user.ReadinessScore {
		return nil
	}

	if err := s.UserRepo.UpdateReadiness(user.ID, score); err != nil {
		return fmt.Errorf("persist readiness: %w", err)
	}
	logger.Log.Info("Readiness score updated",
		zap.String("user_id", user.ID),
		zap.String("track", track),
		zap.Int("from", user.ReadinessScore),
		zap.Int("to", score))
	monitoring.ReadinessWrites.WithLabelValues(track).Inc()

	user.ReadinessScore = score
	return nil
}
