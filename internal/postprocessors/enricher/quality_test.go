package enricher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForumScore(t *testing.T) {
	tests := []struct {
		name     string
		accepted bool
		likes    float64
		replies  float64
		want     float64
	}{
		{"base", false, 0, 0, 0.5},
		{"accepted", true, 0, 0, 0.8},
		{"some likes and replies", false, 5, 1, 0.65},
		{"likes capped", false, 100, 0, 0.7},
		{"replies capped", false, 0, 100, 0.6},
		{"maximum is not clamped", true, 12, 3, 1.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ForumScore(tt.accepted, tt.likes, tt.replies), 1e-9)
		})
	}
}

func TestForumScore_Monotonic(t *testing.T) {
	prev := ForumScore(false, 0, 0)
	for likes := 1.0; likes <= 20; likes++ {
		score := ForumScore(false, likes, 0)
		assert.GreaterOrEqual(t, score, prev)
		prev = score
	}
	assert.GreaterOrEqual(t, ForumScore(true, 3, 3), ForumScore(false, 3, 3))
}

func TestForumContentType(t *testing.T) {
	assert.Equal(t, "code_answer", ForumContentType("try this [code] now", "answer"))
	assert.Equal(t, "code_question", ForumContentType("Why does [CODE] fail?", "question"))
	assert.Equal(t, "text_answer", ForumContentType("plain answer", "answer"))
	assert.Equal(t, "text_question", ForumContentType("plain question", ""))
}

func TestHost(t *testing.T) {
	assert.Equal(t, "discourse.onlinedegree.iitm.ac.in", Host("https://discourse.onlinedegree.iitm.ac.in/t/topic/123"))
	assert.Equal(t, "example.com:8080", Host("http://example.com:8080/x"))
	assert.Equal(t, "", Host(""))
	assert.Equal(t, "", Host("not a url"))
	assert.Equal(t, "", Host("http://[::1"))
}
