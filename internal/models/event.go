package models

// Article event types published to the event stream.
const (
	EventArticleCreated = "article.created"
	EventArticleUpdated = "article.updated"
	EventArticleDeleted = "article.deleted"
	EventArticleLiked   = "article.liked"
	EventArticleUnliked = "article.unliked"
)

// ArticleEvent describes a change to an article, including who made it and when.
type ArticleEvent struct {
	EventID   string `json:"event_id"`   // EventID is a unique identifier for the event.
	Type      string `json:"type"`       // Type is one of the article.* event types.
	ArticleID int64  `json:"article_id"` // ArticleID is the article the event is about.
	UserID    int64  `json:"user_id"`    // UserID is the user who caused the event.
	Timestamp int64  `json:"timestamp"`  // Timestamp is the Unix timestamp (in seconds) of the change.
}
