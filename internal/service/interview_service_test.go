package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"prepos_backend/internal/model"
	"prepos_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleAnswer = "I would use a hash map to track complements in a single pass."

// interviewAI 按提示词区分出题和评估
func interviewAI(question, evaluation string) *stubGenerator {
	return &stubGenerator{respond: func(prompt string) (string, error) {
		if strings.Contains(prompt, "You are evaluating") {
			return evaluation, nil
		}
		return question, nil
	}}
}

func TestInterviewStart_GeneratesQuestion(t *testing.T) {
	gen := interviewAI("```json\n{\"question\": \"  Design a rate limiter. \", \"difficulty\": \"Hard\"}\n```", "")
	f := newFixture(t, gen)
	f.onboardPlacement(t, "p1")

	started, err := f.interview.Start(context.Background(), "p1", InterviewStartRequest{
		Type:    model.InterviewSystemDesign,
		Company: "Acme",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, started.SessionID)
	assert.Equal(t, "Design a rate limiter.", started.Question)
	assert.Equal(t, model.DsaHard, started.Difficulty)
	// 缺失的 topic 保留兜底值
	assert.Equal(t, "Scalable Notification Service", started.Topic)
	assert.Equal(t, 1, gen.calls)

	detail, err := f.interview.GetSession("p1", started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, model.DsaMedium, detail.Session.Difficulty)
	require.NotNil(t, detail.Session.Company)
	assert.Equal(t, "Acme", *detail.Session.Company)
	require.Len(t, detail.Questions, 1)
}

func TestInterviewStart_FallbackAndSeed(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.onboardPlacement(t, "p1")

	started, err := f.interview.Start(ctx, "p1", InterviewStartRequest{Type: model.InterviewCompanySpecific})
	require.NoError(t, err)
	assert.Equal(t, "Company-Focused Interview", started.Topic)
	assert.Contains(t, started.Question, "a top product company")
	assert.Equal(t, model.DsaMedium, started.Difficulty)

	seeded, err := f.interview.Start(ctx, "p1", InterviewStartRequest{
		Type:         model.InterviewCompanySpecific,
		SessionID:    started.SessionID,
		SeedQuestion: "How would you shard this table?",
		Difficulty:   model.DsaEasy,
	})
	require.NoError(t, err)
	assert.Equal(t, started.SessionID, seeded.SessionID)
	assert.Equal(t, "Follow-up", seeded.Topic)
	assert.Equal(t, "How would you shard this table?", seeded.Question)
	assert.Equal(t, model.DsaEasy, seeded.Difficulty)

	detail, err := f.interview.GetSession("p1", started.SessionID)
	require.NoError(t, err)
	assert.Len(t, detail.Questions, 2)
}

func TestInterviewStart_Validation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.onboardPlacement(t, "p1")
	f.onboardPlacement(t, "p2")

	_, err := f.interview.Start(ctx, "p1", InterviewStartRequest{Type: "pair-programming"})
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = f.interview.Start(ctx, "p1", InterviewStartRequest{Type: model.InterviewCoreCS, Difficulty: "Extreme"})
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	started, err := f.interview.Start(ctx, "p1", InterviewStartRequest{Type: model.InterviewCoreCS})
	require.NoError(t, err)

	// 会话属于其他用户时视为不存在
	_, err = f.interview.Start(ctx, "p2", InterviewStartRequest{Type: model.InterviewCoreCS, SessionID: started.SessionID})
	assert.ErrorIs(t, err, util.ErrInterviewSessionNotFound)
	_, err = f.interview.GetSession("p2", started.SessionID)
	assert.ErrorIs(t, err, util.ErrInterviewSessionNotFound)
}

func TestInterviewEvaluate_ScoresAndRefreshesReadiness(t *testing.T) {
	gen := interviewAI(
		`{"question": "Find two numbers summing to k.", "difficulty": "Easy", "topic": "Hashing"}`,
		`{"score": 8, "strengths": "Linear time.", "weaknesses": "No edge cases.", "modelAnswer": "Use a map.", "followUp": "What about duplicates?"}`,
	)
	f := newFixture(t, gen)
	ctx := context.Background()
	f.onboardPlacement(t, "p1")

	started, err := f.interview.Start(ctx, "p1", InterviewStartRequest{Type: model.InterviewTechnicalDSA})
	require.NoError(t, err)

	result, err := f.interview.Evaluate(ctx, "p1", InterviewEvaluateRequest{
		SessionID:  started.SessionID,
		QuestionID: started.QuestionID,
		Answer:     "  " + sampleAnswer + "  ",
	})
	require.NoError(t, err)
	assert.Equal(t, 8.0, result.Score)
	assert.Equal(t, "What about duplicates?", result.FollowUp)
	require.NotNil(t, result.FinalScore)
	assert.Equal(t, 8.0, *result.FinalScore)

	detail, err := f.interview.GetSession("p1", started.SessionID)
	require.NoError(t, err)
	require.Len(t, detail.Questions, 1)
	require.NotNil(t, detail.Questions[0].UserAnswer)
	assert.Equal(t, sampleAnswer, *detail.Questions[0].UserAnswer)
	require.NotNil(t, detail.Questions[0].Feedback())
	assert.Equal(t, "Linear time.", detail.Questions[0].Feedback().Strengths)

	// 虚拟面试 80 按 0.75 混合得到 60，再乘 0.33
	user, err := f.users.FindByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 20, user.ReadinessScore)
}

func TestInterviewEvaluate_ClampsAndFallsBack(t *testing.T) {
	f := newFixture(t, interviewAI(`{"question": "Explain ACID."}`, `{"score": 14, "strengths": "Complete."}`))
	ctx := context.Background()
	f.onboardPlacement(t, "p1")

	started, err := f.interview.Start(ctx, "p1", InterviewStartRequest{Type: model.InterviewCoreCS})
	require.NoError(t, err)
	clamped, err := f.interview.Evaluate(ctx, "p1", InterviewEvaluateRequest{
		SessionID: started.SessionID, QuestionID: started.QuestionID, Answer: sampleAnswer,
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, clamped.Score)
	assert.Equal(t, "Complete.", clamped.Strengths)
	// 未返回的字段沿用兜底评价
	assert.NotEmpty(t, clamped.ModelAnswer)

	f.gateway.Swap(failWith(errors.New("quota exceeded")), 0)
	second, err := f.interview.Start(ctx, "p1", InterviewStartRequest{Type: model.InterviewCoreCS, SessionID: started.SessionID})
	require.NoError(t, err)
	assert.Equal(t, "DBMS Transactions", second.Topic)

	fallback, err := f.interview.Evaluate(ctx, "p1", InterviewEvaluateRequest{
		SessionID: started.SessionID, QuestionID: second.QuestionID, Answer: sampleAnswer,
	})
	require.NoError(t, err)
	assert.Equal(t, 6.0, fallback.Score)
	quoted := []rune(second.Question)[:80]
	assert.Equal(t, "What is one key trade-off in your answer to: \""+string(quoted)+"...\"?", fallback.FollowUp)
	require.NotNil(t, fallback.FinalScore)
	assert.Equal(t, 8.0, *fallback.FinalScore)
}

func TestInterviewEvaluate_Validation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.onboardPlacement(t, "p1")
	f.onboardPlacement(t, "p2")

	started, err := f.interview.Start(ctx, "p1", InterviewStartRequest{Type: model.InterviewHRBehavioral})
	require.NoError(t, err)

	_, err = f.interview.Evaluate(ctx, "p1", InterviewEvaluateRequest{
		SessionID: started.SessionID, QuestionID: started.QuestionID, Answer: "too short",
	})
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = f.interview.Evaluate(ctx, "p2", InterviewEvaluateRequest{
		SessionID: started.SessionID, QuestionID: started.QuestionID, Answer: sampleAnswer,
	})
	assert.ErrorIs(t, err, util.ErrInterviewSessionNotFound)

	_, err = f.interview.Evaluate(ctx, "p1", InterviewEvaluateRequest{
		SessionID: started.SessionID, QuestionID: "missing", Answer: sampleAnswer,
	})
	assert.ErrorIs(t, err, util.ErrInterviewQuestionNotFound)
}
