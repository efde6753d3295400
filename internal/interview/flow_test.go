package interview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuestions() []Question {
	return []Question{
		{Key: "conviction_type", Prompt: "Tell me about the conviction.", ExpectedType: TypeText},
		{Key: "date", Prompt: "When did it occur?", ExpectedType: TypeDate},
		{Key: "terms_of_service_completed", Prompt: "Completed all terms?", ExpectedType: TypeBoolean},
		{Key: "other_convictions", Prompt: "Other convictions?", ExpectedType: TypeBoolean},
		{Key: "pending_charges_or_cases", Prompt: "Pending charges?", ExpectedType: TypeBoolean},
	}
}

func fixedClock() func() time.Time {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return func() time.Time { return ts }
}

func TestStateSubmit(t *testing.T) {
	t.Run("Should advance cursor once per answer until complete", func(t *testing.T) {
		questions := testQuestions()
		state := NewState(questions).WithClock(fixedClock())
		answers := []string{"Petty theft", "March 4, 2019", "yes", "no", "maybe later"}

		require.Equal(t, 0, state.Cursor)
		for i, answer := range answers {
			assert.False(t, state.Complete())
			_, err := state.Submit(answer)
			require.NoError(t, err)
			assert.Equal(t, i+1, state.Cursor)
		}

		assert.True(t, state.Complete())
		require.Len(t, state.Responses, len(questions))
		for _, q := range questions {
			assert.Contains(t, state.Responses, q.Key)
		}
		assert.Equal(t, Responses{
			"conviction_type":            "Petty theft",
			"date":                       "2019-03-04",
			"terms_of_service_completed": true,
			"other_convictions":          false,
			"pending_charges_or_cases":   false,
		}, state.Responses)
	})

	t.Run("Should return the typed value", func(t *testing.T) {
		state := NewState(testQuestions())
		_, _ = state.Submit("Petty theft")

		value, err := state.Submit("sometime in 2019")
		require.NoError(t, err)
		assert.Equal(t, "sometime in 2019", value)
	})

	t.Run("Should append trimmed answer to transcript as user turn", func(t *testing.T) {
		state := NewState(testQuestions()).WithClock(fixedClock())

		_, err := state.Submit("  Petty theft \n")
		require.NoError(t, err)

		require.Len(t, state.Transcript, 1)
		assert.Equal(t, Turn{Speaker: SpeakerUser, Text: "Petty theft", Time: fixedClock()()}, state.Transcript[0])
		assert.Equal(t, "Petty theft", state.Responses["conviction_type"])
	})

	t.Run("Should treat empty answer as no-op", func(t *testing.T) {
		state := NewState(testQuestions())
		_, _ = state.Submit("Petty theft")

		for _, input := range []string{"", "   ", "\t\n"} {
			value, err := state.Submit(input)
			assert.ErrorIs(t, err, ErrEmptyAnswer)
			assert.Nil(t, value)
		}

		assert.Equal(t, 1, state.Cursor)
		assert.Len(t, state.Responses, 1)
		assert.Len(t, state.Transcript, 1)
	})

	t.Run("Should reject answers once complete", func(t *testing.T) {
		state := NewState(testQuestions()[:1])
		_, err := state.Submit("Petty theft")
		require.NoError(t, err)

		_, err = state.Submit("another answer")
		assert.ErrorIs(t, err, ErrInterviewComplete)
		assert.Equal(t, 1, state.Cursor)
		assert.Equal(t, Responses{"conviction_type": "Petty theft"}, state.Responses)
	})
}

func TestStateCurrent(t *testing.T) {
	t.Run("Should follow question order", func(t *testing.T) {
		state := NewState(testQuestions())

		q, ok := state.Current()
		require.True(t, ok)
		assert.Equal(t, "conviction_type", q.Key)

		_, _ = state.Submit("Petty theft")
		q, ok = state.Current()
		require.True(t, ok)
		assert.Equal(t, "date", q.Key)
	})

	t.Run("Should report no question when complete", func(t *testing.T) {
		state := NewState(nil)
		assert.True(t, state.Complete())
		_, ok := state.Current()
		assert.False(t, ok)
	})
}

func TestStateSnapshot(t *testing.T) {
	t.Run("Should not share maps with the live state", func(t *testing.T) {
		state := NewState(testQuestions())
		state.Say(SpeakerAssistant, "Hello")
		_, _ = state.Submit("Petty theft")

		snap := state.Snapshot()
		_, _ = state.Submit("March 4, 2019")

		assert.Equal(t, 1, snap.Cursor)
		assert.Len(t, snap.Responses, 1)
		assert.Len(t, snap.Transcript, 2)
		assert.Equal(t, len(testQuestions()), snap.Total())
	})
}
