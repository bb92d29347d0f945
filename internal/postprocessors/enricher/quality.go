package enricher

import (
	"math"
	"net/url"
	"strings"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
)

// Forum score weights.
const (
	baseScore       = 0.5
	acceptedBonus   = 0.3
	maxLikeBonus    = 0.2
	likesPerPoint   = 50.0
	maxReplyBonus   = 0.1
	repliesPerPoint = 20.0
	courseScore     = 1.0
)

// ForumScore returns the authority score of a forum post, rounded to two
// decimals. The score is not clamped: an accepted answer with many likes and
// replies scores 1.1.
func ForumScore(accepted bool, likes, replies float64) float64 {
	score := baseScore
	if accepted {
		score += acceptedBonus
	}
	score += math.Min(maxLikeBonus, likes/likesPerPoint)
	score += math.Min(maxReplyBonus, replies/repliesPerPoint)
	return math.Round(score*100) / 100
}

// ForumContentType classifies a forum chunk as code or text, question or answer.
func ForumContentType(content, postType string) string {
	if postType == "" {
		postType = domain.PostTypeQuestion
	}
	if strings.Contains(strings.ToLower(content), domain.CodePlaceholder) {
		return "code_" + postType
	}
	return "text_" + postType
}

// Host returns the network location of rawURL, or "" when it has none or
// does not parse.
func Host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if u.User != nil {
		return u.User.String() + "@" + u.Host
	}
	return u.Host
}
