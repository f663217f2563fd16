package service

import (
	"context"
	"strings"

	"prepos_backend/internal/model"
	"prepos_backend/internal/repository"
	"prepos_backend/internal/util"
	"prepos_backend/pkg/logger"
	"prepos_backend/pkg/tracing"

	"go.uber.org/zap"
)

// MaxSessionMinutes 单次学习记录不超过一天
const MaxSessionMinutes = 24 * 60

const studySessionListLimit = 300

type StudyService struct {
	UserRepo    *repository.UserRepository
	SessionRepo *repository.StudySessionRepository
	Calendar    *Calendar
}

func NewStudyService(userRepo *repository.UserRepository, sessionRepo *repository.StudySessionRepository, calendar *Calendar) *StudyService {
	return &StudyService{UserRepo: userRepo, SessionRepo: sessionRepo, Calendar: calendar}
}

type StudySessionRequest struct {
	Duration    int     `json:"duration" binding:"required,min=1,max=1440"`
	SubjectID   *string `json:"subjectId"`
	SubjectName *string `json:"subjectName" binding:"omitempty,max=120"`
}

type StudySessionResult struct {
	Session *model.StudySession `json:"session"`
	Streak  int                 `json:"streak"`
	XP      int                 `json:"xp"`
}

// LogSession 追加学习记录，同一事务内更新连续天数和经验值
func (s *StudyService) LogSession(ctx context.Context, uid string, req StudySessionRequest) (result *StudySessionResult, err error) {
	_, span := tracing.StartSpan(ctx, "study.log_session", uid)
	defer func() { tracing.EndSpan(span, err) }()

	if req.Duration < 1 || req.Duration > MaxSessionMinutes {
		return nil, util.Invalid("duration must be between 1 and %d minutes", MaxSessionMinutes)
	}

	now := s.Calendar.Current()
	session := &model.StudySession{
		UserID:      uid,
		Date:        now.Format(util.DateFormat),
		Duration:    req.Duration,
		SubjectID:   trimmedOrNil(req.SubjectID),
		SubjectName: trimmedOrNil(req.SubjectName),
		CreatedAt:   now,
	}

	user, err := s.UserRepo.ApplyStudySession(session)
	if err != nil {
		return nil, err
	}

	logger.Log.Debug("Study session logged",
		zap.String("user_id", uid),
		zap.Int("duration", req.Duration),
		zap.Int("streak", user.Streak))
	return &StudySessionResult{Session: session, Streak: user.Streak, XP: user.XP}, nil
}

func (s *StudyService) ListSessions(uid string) ([]model.StudySession, error) {
	return s.SessionRepo.ListByUser(uid, studySessionListLimit)
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
