package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expungement-interview/internal/api"
	"expungement-interview/internal/interview"
)

func sampleResult(id string) *InterviewResult {
	return &InterviewResult{
		InterviewID: id,
		Timestamp:   "2024-01-02T03:04:05Z",
		Region:      "California",
		Responses: interview.Responses{
			"conviction_type":   "Petty theft",
			"other_convictions": false,
		},
		Transcript: []interview.Turn{
			{Speaker: interview.SpeakerUser, Text: "Petty theft", Time: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		},
		Decision: api.FallbackDecision(),
	}
}

func TestStore(t *testing.T) {
	t.Run("Should save and load a result", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "results"))

		require.NoError(t, store.SaveResult(sampleResult("abc")))

		loaded, err := store.LoadResult("abc")
		require.NoError(t, err)
		assert.Equal(t, "abc", loaded.InterviewID)
		assert.Equal(t, "California", loaded.Region)
		assert.Equal(t, "Petty theft", loaded.Responses["conviction_type"])
		assert.Equal(t, false, loaded.Responses["other_convictions"])
		require.Len(t, loaded.Transcript, 1)
		assert.Equal(t, interview.SpeakerUser, loaded.Transcript[0].Speaker)
		require.NotNil(t, loaded.Decision)
		assert.True(t, loaded.Decision.Eligible)
	})

	t.Run("Should list saved results sorted and skip foreign files", func(t *testing.T) {
		dir := t.TempDir()
		store := NewStore(dir)

		require.NoError(t, store.SaveResult(sampleResult("b")))
		require.NoError(t, store.SaveResult(sampleResult("a")))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "profile_x.json"), []byte("{}"), 0644))

		ids, err := store.ListResults()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, ids)
	})

	t.Run("Should return empty list when directory is missing", func(t *testing.T) {
		ids, err := NewStore(filepath.Join(t.TempDir(), "missing")).ListResults()
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("Should report missing result", func(t *testing.T) {
		_, err := NewStore(t.TempDir()).LoadResult("nope")
		assert.ErrorIs(t, err, ErrResultNotFound)
	})

	t.Run("Should reject path traversal in id", func(t *testing.T) {
		_, err := NewStore(t.TempDir()).LoadResult("../etc/passwd")
		assert.ErrorIs(t, err, ErrResultNotFound)
	})

	t.Run("Should require interview id on save", func(t *testing.T) {
		assert.Error(t, NewStore(t.TempDir()).SaveResult(&InterviewResult{}))
	})
}
