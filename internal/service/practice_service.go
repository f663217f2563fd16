package service

import (
	"strings"

	"prepos_backend/internal/model"
	"prepos_backend/internal/repository"
	"prepos_backend/internal/util"
)

const (
	mockTestListLimit   = 80
	companyAppListLimit = 80
)

// PracticeService 模拟测试、模拟面试、DSA 清单与投递记录
type PracticeService struct {
	MockTestRepo      *repository.MockTestRepository
	MockInterviewRepo *repository.MockInterviewRepository
	DsaRepo           *repository.DsaTopicRepository
	CompanyRepo       *repository.CompanyApplicationRepository
}

func NewPracticeService(
	mockTestRepo *repository.MockTestRepository,
	mockInterviewRepo *repository.MockInterviewRepository,
	dsaRepo *repository.DsaTopicRepository,
	companyRepo *repository.CompanyApplicationRepository,
) *PracticeService {
	return &PracticeService{
		MockTestRepo:      mockTestRepo,
		MockInterviewRepo: mockInterviewRepo,
		DsaRepo:           dsaRepo,
		CompanyRepo:       companyRepo,
	}
}

type MockTestAttemptRequest struct {
	ExamID         string            `json:"examId" binding:"required"`
	Score          int               `json:"score" binding:"min=0"`
	TotalQuestions int               `json:"totalQuestions" binding:"required,min=1"`
	WeakSubjects   []string          `json:"weakSubjects"`
	Mode           model.MockMode    `json:"mode" binding:"omitempty,oneof=exam placement"`
	Segment        model.MockSegment `json:"segment" binding:"omitempty,oneof=coding aptitude hr behavioral"`
}

type MockInterviewRequest struct {
	Mode            model.MockInterviewMode `json:"mode" binding:"required,oneof=coding hr behavioral"`
	Score           int                     `json:"score" binding:"min=0,max=100"`
	FeedbackSummary string                  `json:"feedbackSummary" binding:"required,max=1000"`
}

type DsaToggleRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

type CompanyApplicationRequest struct {
	CompanyName string                  `json:"companyName" binding:"required,min=2,max=120"`
	Role        string                  `json:"role" binding:"required,min=2,max=120"`
	Status      model.ApplicationStatus `json:"status" binding:"required,oneof=applied oa interview offer rejected"`
	Round       string                  `json:"round" binding:"required,max=120"`
	Result      string                  `json:"result" binding:"max=120"`
}

func (s *PracticeService) SaveMockTestAttempt(uid string, req MockTestAttemptRequest) (*model.MockTestAttempt, error) {
	examID := strings.TrimSpace(req.ExamID)
	if examID == "" {
		return nil, util.Invalid("examId is required")
	}
	if req.Score < 0 || req.TotalQuestions < 1 || req.Score > req.TotalQuestions {
		return nil, util.Invalid("score must be between 0 and totalQuestions")
	}

	mode := req.Mode
	if mode == "" {
		mode = model.MockModeExam
	}
	segment := req.Segment
	if segment == "" {
		segment = model.SegmentCoding
	}

	attempt := &model.MockTestAttempt{
		UserID:         uid,
		ExamID:         examID,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		Mode:           mode,
		Segment:        segment,
	}
	attempt.SetWeakSubjects(cleanList(req.WeakSubjects, 0))

	if err := s.MockTestRepo.Create(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

func (s *PracticeService) ListMockTests(uid string) ([]model.MockTestAttempt, error) {
	return s.MockTestRepo.ListByUser(uid, mockTestListLimit)
}

func (s *PracticeService) SaveMockInterview(uid string, req MockInterviewRequest) (*model.MockInterview, error) {
	switch req.Mode {
	case model.InterviewModeCoding, model.InterviewModeHR, model.InterviewModeBehavioral:
	default:
		return nil, util.Invalid("mode must be coding, hr or behavioral")
	}
	if req.Score < 0 || req.Score > 100 {
		return nil, util.Invalid("score must be between 0 and 100")
	}
	summary := strings.TrimSpace(req.FeedbackSummary)
	if summary == "" {
		return nil, util.Invalid("feedbackSummary is required")
	}

	record := &model.MockInterview{
		UserID:          uid,
		Mode:            req.Mode,
		Score:           req.Score,
		FeedbackSummary: summary,
	}
	if err := s.MockInterviewRepo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListDsaTopics 首次访问时写入默认清单
func (s *PracticeService) ListDsaTopics(uid string) ([]model.DsaTopic, error) {
	return s.DsaRepo.ListOrSeed(uid)
}

func (s *PracticeService) ToggleDsaTopic(uid, topicID string, completed bool) (*model.DsaTopic, error) {
	return s.DsaRepo.Toggle(uid, topicID, completed)
}

func (s *PracticeService) CreateCompanyApplication(uid string, req CompanyApplicationRequest) (*model.CompanyApplication, error) {
	name := strings.TrimSpace(req.CompanyName)
	role := strings.TrimSpace(req.Role)
	round := strings.TrimSpace(req.Round)
	result := strings.TrimSpace(req.Result)

	if n := len([]rune(name)); n < 2 || n > 120 {
		return nil, util.Invalid("companyName must be 2-120 characters")
	}
	if n := len([]rune(role)); n < 2 || n > 120 {
		return nil, util.Invalid("role must be 2-120 characters")
	}
	if n := len([]rune(round)); n < 1 || n > 120 {
		return nil, util.Invalid("round must be 1-120 characters")
	}
	switch req.Status {
	case model.StatusApplied, model.StatusOA, model.StatusInterview, model.StatusOffer, model.StatusRejected:
	default:
		return nil, util.Invalid("unknown application status %q", req.Status)
	}
	if result == "" {
		result = "pending"
	}

	app := &model.CompanyApplication{
		UserID:      uid,
		CompanyName: name,
		Role:        role,
		Status:      req.Status,
		Round:       round,
		Result:      result,
	}
	if err := s.CompanyRepo.Create(app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *PracticeService) ListCompanyApplications(uid string) ([]model.CompanyApplication, error) {
	return s.CompanyRepo.ListByUser(uid, companyAppListLimit)
}

// cleanList 去空白、丢弃空项，max 大于 0 时截断
func cleanList(items []string, max int) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}
