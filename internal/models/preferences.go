package models

// Theme is the global colour mode
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Font size bounds for the article reader
const (
	DefaultFontSizePx = 20
	MinFontSizePx     = 14
	MaxFontSizePx     = 32
	FontSizeStepPx    = 2
)

// FontSizeAction is a reader font size adjustment
type FontSizeAction string

const (
	FontSizeIncrease FontSizeAction = "increase"
	FontSizeDecrease FontSizeAction = "decrease"
	FontSizeReset    FontSizeAction = "reset"
)

// Preferences are the persisted per-session user settings
type Preferences struct {
	Theme             Theme    `json:"theme"`
	LikedArticleIDs   []string `json:"likedArticleIds"`
	ArticleFontSizePx int      `json:"articleFontSizePx"`
}
