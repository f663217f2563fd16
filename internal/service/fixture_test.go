package service

import (
	"context"
	"testing"
	"time"

	"prepos_backend/internal/ai"
	"prepos_backend/internal/model"
	"prepos_backend/internal/repository"
	"prepos_backend/internal/testhelpers"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// 2025-03-10 是周一
var fixedNow = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

type stubGenerator struct {
	respond func(prompt string) (string, error)
	calls   int
}

func (g *stubGenerator) Name() string { return "stub" }

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	return g.respond(prompt)
}

func replyWith(text string) *stubGenerator {
	return &stubGenerator{respond: func(string) (string, error) { return text, nil }}
}

func failWith(err error) *stubGenerator {
	return &stubGenerator{respond: func(string) (string, error) { return "", err }}
}

type fixture struct {
	db       *gorm.DB
	users    *repository.UserRepository
	catalog  *repository.CatalogCache
	calendar *Calendar
	gateway  *ai.Gateway

	dashboard *DashboardService
	profile   *ProfileService
	study     *StudyService
	practice  *PracticeService
	community *CommunityService
	interview *InterviewService
	advisor   *AdvisorService
}

// newFixture 生成器为 nil 时走无 AI 的兜底路径
func newFixture(t *testing.T, gen ai.TextGenerator) *fixture {
	t.Helper()

	db := testhelpers.SetupTestDBWithCatalog(t)
	planner := repository.NewQueryPlanner(db)
	users := repository.NewUserRepository(db)
	catalog := repository.NewCatalogCache(repository.NewCatalogRepository(db), nil, 0)
	sessions := repository.NewStudySessionRepository(db, planner)
	mockTests := repository.NewMockTestRepository(db, planner)
	mockInterviews := repository.NewMockInterviewRepository(db, planner)
	companies := repository.NewCompanyApplicationRepository(db, planner)
	dsa := repository.NewDsaTopicRepository(db)
	interviews := repository.NewInterviewRepository(db, planner)

	calendar := NewCalendar(time.UTC)
	calendar.Now = func() time.Time { return fixedNow }
	gateway := ai.NewGateway(gen, time.Second)

	dashboard := NewDashboardService(users, catalog, sessions, mockTests, mockInterviews, companies, dsa, interviews, calendar)
	return &fixture{
		db:        db,
		users:     users,
		catalog:   catalog,
		calendar:  calendar,
		gateway:   gateway,
		dashboard: dashboard,
		profile:   NewProfileService(users, catalog, &StorageService{Store: &LocalObjectStore{Root: t.TempDir()}}, calendar),
		study:     NewStudyService(users, sessions, calendar),
		practice:  NewPracticeService(mockTests, mockInterviews, dsa, companies),
		community: NewCommunityService(repository.NewPostRepository(db), users),
		interview: NewInterviewService(interviews, dashboard, gateway),
		advisor:   NewAdvisorService(users, gateway, calendar),
	}
}

func (f *fixture) examID(t *testing.T, name string) string {
	t.Helper()
	exams, err := f.catalog.ListExams(context.Background())
	require.NoError(t, err)
	for _, e := range exams {
		if e.Name == name {
			return e.ID
		}
	}
	t.Fatalf("exam %q not seeded", name)
	return ""
}

func (f *fixture) createUser(t *testing.T, uid string) *model.User {
	t.Helper()
	user, err := f.profile.EnsureProfile(repository.ProfileInput{UID: uid, Name: "Asha", Email: uid + "@example.com"})
	require.NoError(t, err)
	return user
}

func (f *fixture) onboardExam(t *testing.T, uid string) {
	t.Helper()
	f.createUser(t, uid)
	_, err := f.profile.CompleteOnboarding(context.Background(), uid, OnboardingRequest{
		GoalType:       model.GoalExam,
		ExamID:         f.examID(t, "GATE Computer Science"),
		TargetDate:     "2025-04-09",
		DailyStudyTime: 3,
		Level:          model.LevelIntermediate,
	})
	require.NoError(t, err)
}

func (f *fixture) onboardPlacement(t *testing.T, uid string) {
	t.Helper()
	f.createUser(t, uid)
	_, err := f.profile.CompleteOnboarding(context.Background(), uid, OnboardingRequest{
		GoalType:       model.GoalPlacement,
		TargetDate:     "2025-06-01",
		DailyStudyTime: 2,
		Level:          model.LevelBeginner,
	})
	require.NoError(t, err)
}

func (f *fixture) setPro(t *testing.T, uid string) {
	t.Helper()
	require.NoError(t, f.db.Model(&model.User{}).Where("id = ?", uid).
		Update("subscription_type", model.SubscriptionPro).Error)
}
