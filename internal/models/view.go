package models

// ViewKind tags the variant of a ViewState
type ViewKind string

const (
	ViewHome     ViewKind = "home"
	ViewCategory ViewKind = "category"
	ViewArticle  ViewKind = "article"
	ViewAuthor   ViewKind = "author"
	ViewAnalyst  ViewKind = "analyst"
)

// ViewState is the resolved current view of a session.
// Only the fields of the active Kind are set.
type ViewState struct {
	Kind      ViewKind    `json:"kind"`
	Token     string      `json:"token,omitempty"`
	ArticleID string      `json:"articleId,omitempty"`
	Author    *AuthorInfo `json:"author,omitempty"`
	Topic     string      `json:"topic,omitempty"`
}

// HomeView returns the Home view state
func HomeView() ViewState {
	return ViewState{Kind: ViewHome}
}

// ShowsLoading reports whether a change to this view opens the skeleton window
func (v ViewState) ShowsLoading() bool {
	return v.Kind != ViewArticle && v.Kind != ViewAuthor
}

// Equal compares two view states by identity
func (v ViewState) Equal(o ViewState) bool {
	if v.Kind != o.Kind || v.Token != o.Token || v.ArticleID != o.ArticleID || v.Topic != o.Topic {
		return false
	}
	if (v.Author == nil) != (o.Author == nil) {
		return false
	}
	return v.Author == nil || v.Author.Name == o.Author.Name
}

// ViewSnapshot is what a client renders for its current route
type ViewSnapshot struct {
	View      ViewState `json:"view"`
	Fragment  string    `json:"fragment"`
	Corrected bool      `json:"corrected"`
	Loading   bool      `json:"loading"`
	ScrollTop uint64    `json:"scrollTop"`
}
