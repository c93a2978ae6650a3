package models

// Comment represents a reader comment on an article
type Comment struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
	Text     string `json:"text"`
	Date     string `json:"date"`
}

// CommentRequest is the body of a comment submission
type CommentRequest struct {
	UserName string `json:"userName"`
	Text     string `json:"text"`
}

// CommentPage is one page of an article's comments, newest first
type CommentPage struct {
	ArticleID  string    `json:"articleId"`
	Comments   []Comment `json:"comments"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
	Total      int       `json:"total"`
}

const (
	// MaxCommentWords is the maximum allowed words in a comment body
	MaxCommentWords = 500

	// MaxCommentNameRunes bounds the display name
	MaxCommentNameRunes = 80

	// AnonymousCommenter replaces a blank user name
	AnonymousCommenter = "قارئ مجهول"

	// CommentsPerPage is the fixed comment page size
	CommentsPerPage = 10
)
