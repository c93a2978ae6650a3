package models

// Category is the closed set of article sections
type Category string

const (
	CategoryAll      Category = "all" // filter sentinel, never stored on an article
	CategoryTech     Category = "tech"
	CategoryStartups Category = "startups"
	CategoryBusiness Category = "business"
	CategoryAI       Category = "ai"
	CategoryCrypto   Category = "crypto"
	CategorySpace    Category = "space"
	CategoryGreen    Category = "green"
)

// categoryLabels holds the display label for every category, in pill order
var categoryLabels = []struct {
	Category Category
	Label    string
}{
	{CategoryAll, "الكل"},
	{CategoryTech, "تقنية"},
	{CategoryStartups, "شركات ناشئة"},
	{CategoryBusiness, "ريادة أعمال"},
	{CategoryAI, "ذكاء اصطناعي"},
	{CategoryCrypto, "عملات رقمية"},
	{CategorySpace, "فضاء"},
	{CategoryGreen, "تقنية خضراء"},
}

// Label returns the Arabic display label of the category
func (c Category) Label() string {
	for _, cl := range categoryLabels {
		if cl.Category == c {
			return cl.Label
		}
	}
	return string(c)
}

// Valid reports whether c can be stored on an article
func (c Category) Valid() bool {
	return c != CategoryAll && c.Known()
}

// Known reports whether c is one of the enum values, including the "all" sentinel
func (c Category) Known() bool {
	for _, cl := range categoryLabels {
		if cl.Category == c {
			return true
		}
	}
	return false
}

// Categories returns every category in pill order, starting with "all"
func Categories() []Category {
	out := make([]Category, 0, len(categoryLabels))
	for _, cl := range categoryLabels {
		out = append(out, cl.Category)
	}
	return out
}

// Article represents a published news article
type Article struct {
	ID             string   `json:"id" yaml:"id"`
	Title          string   `json:"title" yaml:"title"`
	Excerpt        string   `json:"excerpt" yaml:"excerpt"`
	Content        string   `json:"content" yaml:"content"`
	Category       Category `json:"category" yaml:"category"`
	Author         string   `json:"author" yaml:"author"`
	Date           string   `json:"date" yaml:"date"`
	ImageURL       string   `json:"imageUrl" yaml:"imageUrl"`
	VideoURL       string   `json:"videoUrl,omitempty" yaml:"videoUrl"`
	IsFeatured     bool     `json:"isFeatured,omitempty" yaml:"isFeatured"`
	IsBreaking     bool     `json:"isBreaking,omitempty" yaml:"isBreaking"`
	Tags           []string `json:"tags,omitempty" yaml:"tags"`
	ReadingTime    string   `json:"readingTime,omitempty" yaml:"readingTime"`
	ContentWarning string   `json:"contentWarning,omitempty" yaml:"contentWarning"`
}

// HasTag reports whether the article carries tag
func (a Article) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NavLink is one entry of the header navigation
type NavLink struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// ShareLinks are outbound social sharing URLs for a page
type ShareLinks struct {
	Canonical string `json:"canonical"`
	Twitter   string `json:"twitter"`
	LinkedIn  string `json:"linkedin"`
	Facebook  string `json:"facebook"`
}
