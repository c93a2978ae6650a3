package validation

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/nashra-news-api/internal/models"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validator checks seed records and reader input. It remembers the ids and
// names it has seen so duplicates inside one seed set are reported.
type Validator struct {
	articleIDCache map[string]bool
	authorCache    map[string]bool
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		articleIDCache: make(map[string]bool),
		authorCache:    make(map[string]bool),
	}
}

// ValidateArticle validates a seed article and records its id
func (v *Validator) ValidateArticle(article *models.Article) []ValidationError {
	var errors []ValidationError

	// Validate ID
	if article.ID == "" {
		errors = append(errors, ValidationError{Field: "id", Message: "id is required"})
	} else if strings.ContainsAny(article.ID, "/#?") {
		errors = append(errors, ValidationError{Field: "id", Message: "id must not contain '/', '#' or '?'", Value: article.ID})
	} else if v.articleIDCache[article.ID] {
		errors = append(errors, ValidationError{Field: "id", Message: "duplicate id", Value: article.ID})
	} else {
		v.articleIDCache[article.ID] = true
	}

	if article.Title == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	}
	if article.Content == "" {
		errors = append(errors, ValidationError{Field: "content", Message: "content is required"})
	}
	if article.Author == "" {
		errors = append(errors, ValidationError{Field: "author", Message: "author is required"})
	}

	// Validate category against the closed set
	if !article.Category.Valid() {
		errors = append(errors, ValidationError{
			Field:   "category",
			Message: "invalid category, must be one of: tech, startups, business, ai, crypto, space, green",
			Value:   article.Category,
		})
	}

	if article.ImageURL != "" && !isAbsoluteURL(article.ImageURL) {
		errors = append(errors, ValidationError{Field: "imageUrl", Message: "invalid URL", Value: article.ImageURL})
	}
	if article.VideoURL != "" && !isAbsoluteURL(article.VideoURL) {
		errors = append(errors, ValidationError{Field: "videoUrl", Message: "invalid URL", Value: article.VideoURL})
	}

	return errors
}

// ValidateAuthor validates a seed author record
func (v *Validator) ValidateAuthor(author *models.AuthorInfo) []ValidationError {
	var errors []ValidationError

	name := strings.TrimSpace(author.Name)
	if name == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "name is required"})
	} else if v.authorCache[name] {
		errors = append(errors, ValidationError{Field: "name", Message: "duplicate author", Value: name})
	} else {
		v.authorCache[name] = true
	}

	if author.Role == "" {
		errors = append(errors, ValidationError{Field: "role", Message: "role is required"})
	}
	for field, link := range map[string]string{"socials.twitter": author.Socials.Twitter, "socials.linkedin": author.Socials.LinkedIn} {
		if link != "" && !isAbsoluteURL(link) {
			errors = append(errors, ValidationError{Field: field, Message: "invalid URL", Value: link})
		}
	}

	return errors
}

// ValidateComment validates a comment submission. Text is required after
// trimming and bounded by MaxCommentWords; the name is optional.
func (v *Validator) ValidateComment(req *models.CommentRequest) []ValidationError {
	var errors []ValidationError

	text := strings.TrimSpace(req.Text)
	if text == "" {
		errors = append(errors, ValidationError{Field: "text", Message: "text is required"})
	} else if wordCount := len(strings.Fields(text)); wordCount > models.MaxCommentWords {
		errors = append(errors, ValidationError{
			Field:   "text",
			Message: fmt.Sprintf("text exceeds maximum of %d words (has %d)", models.MaxCommentWords, wordCount),
		})
	}

	if n := utf8.RuneCountInString(strings.TrimSpace(req.UserName)); n > models.MaxCommentNameRunes {
		errors = append(errors, ValidationError{
			Field:   "userName",
			Message: fmt.Sprintf("userName exceeds maximum of %d characters", models.MaxCommentNameRunes),
		})
	}

	return errors
}

// isAbsoluteURL checks if a string is an absolute http(s) URL
func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
