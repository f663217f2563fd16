package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type advice struct {
	Suggestion string `json:"suggestion"`
	Plan       string `json:"plan"`
}

type quiz struct {
	Questions []string `json:"questions"`
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around", "Sure! Here it is: {\"a\":{\"b\":2}} hope it helps", `{"a":{"b":2}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSON(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ExtractJSON("no braces here")
	assert.ErrorIs(t, err, ErrNoJSON)
	_, err = ExtractJSON("} backwards {")
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestComplete_NoGenerator(t *testing.T) {
	fallback := advice{Suggestion: "rest", Plan: "sleep"}
	got, outcome := Complete(context.Background(), NewGateway(nil, 0), Request[advice]{
		Adapter:  "test",
		Prompt:   "p",
		Fallback: fallback,
	})
	assert.Equal(t, OutcomeUnavailable, outcome)
	assert.Equal(t, fallback, got)

	var nilGateway *Gateway
	_, outcome = Complete(context.Background(), nilGateway, Request[advice]{Adapter: "test"})
	assert.Equal(t, OutcomeUnavailable, outcome)
}

func TestComplete_MergeKeepsMissingFields(t *testing.T) {
	gen := &fakeGenerator{text: "```json\n{\"suggestion\":\"do graphs\"}\n```"}
	got, outcome := Complete(context.Background(), NewGateway(gen, time.Second), Request[advice]{
		Adapter:  "test",
		Prompt:   "coach me",
		Fallback: advice{Suggestion: "rest", Plan: "sleep"},
		Merge:    true,
	})
	assert.Equal(t, OutcomeOK, outcome)
	assert.Equal(t, advice{Suggestion: "do graphs", Plan: "sleep"}, got)
	assert.Equal(t, "coach me", gen.prompt)
}

func TestComplete_WithoutMergeStartsFromZero(t *testing.T) {
	gen := &fakeGenerator{text: `{"questions":["q1"]}`}
	got, outcome := Complete(context.Background(), NewGateway(gen, time.Second), Request[quiz]{
		Adapter:  "test",
		Fallback: quiz{Questions: []string{"a", "b", "c"}},
	})
	assert.Equal(t, OutcomeOK, outcome)
	assert.Equal(t, []string{"q1"}, got.Questions)
}

func TestComplete_FallbackPaths(t *testing.T) {
	fallback := quiz{Questions: []string{"fallback"}}
	tooFew := func(q *quiz) error {
		if len(q.Questions) < 2 {
			return errors.New("too few questions")
		}
		return nil
	}

	cases := []struct {
		name    string
		gen     TextGenerator
		outcome Outcome
	}{
		{"provider error", &fakeGenerator{err: errors.New("boom")}, OutcomeFallback},
		{"not json", &fakeGenerator{text: "I cannot help with that"}, OutcomeFallback},
		{"malformed json", &fakeGenerator{text: `{"questions": [1, 2}`}, OutcomeFallback},
		{"validation fails", &fakeGenerator{text: `{"questions":["only one"]}`}, OutcomeFallback},
		{"timeout", blockingGenerator{}, OutcomeFallback},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, outcome := Complete(context.Background(), NewGateway(tc.gen, 20*time.Millisecond), Request[quiz]{
				Adapter:  "test",
				Fallback: fallback,
				Validate: tooFew,
			})
			assert.Equal(t, tc.outcome, outcome)
			assert.Equal(t, fallback, got)
		})
	}
}

func TestGateway_Swap(t *testing.T) {
	gw := NewGateway(nil, 0)
	assert.False(t, gw.Available())

	gw.Swap(&fakeGenerator{text: "hello"}, time.Second)
	assert.True(t, gw.Available())

	text, outcome := gw.GenerateText(context.Background(), "test", "hi")
	assert.Equal(t, OutcomeOK, outcome)
	assert.Equal(t, "hello", text)
}
