package domain

// DefaultAuthor is used when a forum post has no author.
const DefaultAuthor = "Anonymous"

// Post types recorded in forum metadata.
const (
	PostTypeQuestion = "question"
	PostTypeAnswer   = "answer"
)

// ForumPost is one Discourse post record from the forum posts file.
// All fields except Content are optional.
type ForumPost struct {
	Content          string   `json:"content"`
	URL              string   `json:"url"`
	Author           string   `json:"author"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
	TopicID          any      `json:"topic_id"`
	PostID           any      `json:"post_id"`
	TopicTitle       string   `json:"topic_title"`
	IsAcceptedAnswer bool     `json:"is_accepted_answer"`
	ReplyCount       int      `json:"reply_count"`
	LikeCount        int      `json:"like_count"`
	Tags             []string `json:"tags"`
	IsReply          bool     `json:"is_reply"`
}

// PostType returns PostTypeAnswer for replies and PostTypeQuestion otherwise.
func (p *ForumPost) PostType() string {
	if p.IsReply {
		return PostTypeAnswer
	}
	return PostTypeQuestion
}

// Metadata returns the post's metadata with defaults applied.
func (p *ForumPost) Metadata() map[string]any {
	author := p.Author
	if author == "" {
		author = DefaultAuthor
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	return map[string]any{
		MetaSource:           SourceForum,
		MetaURL:              p.URL,
		"author":             author,
		MetaCreatedAt:        p.CreatedAt,
		"updated_at":         p.UpdatedAt,
		"topic_id":           idOrEmpty(p.TopicID),
		"post_id":            idOrEmpty(p.PostID),
		"topic_title":        p.TopicTitle,
		MetaIsAcceptedAnswer: p.IsAcceptedAnswer,
		MetaReplyCount:       p.ReplyCount,
		MetaLikeCount:        p.LikeCount,
		"tags":               tags,
		MetaPostType:         p.PostType(),
	}
}

func idOrEmpty(v any) any {
	if v == nil {
		return ""
	}
	return v
}
