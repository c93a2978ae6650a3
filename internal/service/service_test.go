package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nashra-news-api/internal/articles"
	"github.com/nashra-news-api/internal/config"
	"github.com/nashra-news-api/internal/gateway"
	"github.com/nashra-news-api/internal/mocks"
	"github.com/nashra-news-api/internal/models"
	"github.com/nashra-news-api/internal/repository"
	"github.com/nashra-news-api/internal/seed"
	"github.com/nashra-news-api/internal/service"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:      config.ServerConfig{PublicOrigin: "https://nashra.example", SessionTTL: time.Hour},
		Feed:        config.FeedConfig{MostPopularSize: 5, FeaturedStories: 3},
		Preferences: config.PreferencesConfig{DefaultTheme: "light"},
	}
}

type fixture struct {
	services   *service.Services
	kv         *mocks.MockKV
	summarizer *mocks.MockSummarizer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	data, err := seed.Load("")
	require.NoError(t, err)

	kv := mocks.NewMockKV()
	summarizer := mocks.NewMockSummarizer()
	svcs := service.NewServices(
		repository.New(kv, zerolog.Nop()),
		service.NewCatalog(data),
		summarizer,
		mocks.NewMockMarketService(data.Market...),
		testConfig(),
		zerolog.Nop(),
	)
	return &fixture{services: svcs, kv: kv, summarizer: summarizer}
}

func TestCommentService_AddAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.services.Comments.Add(ctx, "1", &models.CommentRequest{UserName: "Sara", Text: "First"})
	require.NoError(t, err)
	second, err := f.services.Comments.Add(ctx, "1", &models.CommentRequest{Text: "  Great piece  "})
	require.NoError(t, err)

	assert.Equal(t, "Great piece", second.Text)
	assert.Equal(t, models.AnonymousCommenter, second.UserName)
	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEmpty(t, second.Date)

	page, err := f.services.Comments.List(ctx, "1", 1)
	require.NoError(t, err)
	require.Len(t, page.Comments, 2)
	assert.Equal(t, second.ID, page.Comments[0].ID, "newest first")
	assert.Equal(t, first.ID, page.Comments[1].ID)

	other, err := f.services.Comments.List(ctx, "2", 1)
	require.NoError(t, err)
	assert.Empty(t, other.Comments)
	assert.Equal(t, 1, other.Page)
	assert.Equal(t, 0, other.TotalPages)

	assert.Contains(t, f.kv.Entries, repository.CommentsKey("1"))
}

func TestCommentService_AddRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		articleID string
		req       models.CommentRequest
		wantErr   error
	}{
		{name: "blank text", articleID: "1", req: models.CommentRequest{Text: "   "}, wantErr: service.ErrEmptyComment},
		{name: "markup only", articleID: "1", req: models.CommentRequest{Text: "<b></b>"}, wantErr: service.ErrEmptyComment},
		{name: "too many words", articleID: "1", req: models.CommentRequest{Text: strings.Repeat("word ", 501)}, wantErr: service.ErrCommentTooLong},
		{name: "unknown article", articleID: "999", req: models.CommentRequest{Text: "hi"}, wantErr: service.ErrArticleNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.services.Comments.Add(ctx, tt.articleID, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Zero(t, f.kv.SetCalls, "rejected comments are not persisted")
}

func TestCommentService_StripsMarkup(t *testing.T) {
	f := newFixture(t)

	c, err := f.services.Comments.Add(context.Background(), "1", &models.CommentRequest{
		UserName: "<i>Omar</i>",
		Text:     "<script>x()</script>Nice <b>read</b>",
	})
	require.NoError(t, err)
	assert.Equal(t, "Omar", c.UserName)
	assert.Equal(t, "Nice read", c.Text)

	c, err = f.services.Comments.Add(context.Background(), "1", &models.CommentRequest{
		UserName: "&lt;b&gt;Laila&lt;/b&gt;",
		Text:     "&lt;img src=x onerror=alert(1)&gt;Good",
	})
	require.NoError(t, err)
	assert.Equal(t, "Laila", c.UserName)
	assert.Equal(t, "Good", c.Text)
	assert.NotContains(t, c.Text, "<")

	_, err = f.services.Comments.Add(context.Background(), "1", &models.CommentRequest{
		Text: "&lt;script&gt;x()&lt;/script&gt;",
	})
	assert.ErrorIs(t, err, service.ErrEmptyComment)
}

func TestCommentService_PaginationAfterDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 23; i++ {
		_, err := f.services.Comments.Add(ctx, "3", &models.CommentRequest{Text: fmt.Sprintf("comment %d", i)})
		require.NoError(t, err)
	}

	page, err := f.services.Comments.List(ctx, "3", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 23, page.Total)
	require.Len(t, page.Comments, 3)

	var last *models.CommentPage
	for _, c := range page.Comments {
		last, err = f.services.Comments.Remove(ctx, "3", c.ID, 3)
		require.NoError(t, err)
	}

	assert.Equal(t, 20, last.Total)
	assert.Equal(t, 2, last.TotalPages)
	assert.Equal(t, 2, last.Page, "current page clamps to the new last page")
	assert.Len(t, last.Comments, 10)
}

func TestCommentService_RemoveUnknownComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.services.Comments.Add(ctx, "1", &models.CommentRequest{Text: "keep"})
	require.NoError(t, err)

	page, err := f.services.Comments.Remove(ctx, "1", "missing", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestCommentService_StorageError(t *testing.T) {
	f := newFixture(t)
	f.kv.SetError = errors.New("disk full")

	_, err := f.services.Comments.Add(context.Background(), "1", &models.CommentRequest{Text: "hi"})
	require.Error(t, err)
	assert.ErrorIs(t, err, f.kv.SetError)
}

func TestPaginate(t *testing.T) {
	comments := make([]models.Comment, 23)
	for i := range comments {
		comments[i] = models.Comment{ID: fmt.Sprint(i)}
	}

	tests := []struct {
		page      int
		wantPage  int
		wantLen   int
		wantFirst string
	}{
		{page: 1, wantPage: 1, wantLen: 10, wantFirst: "0"},
		{page: 2, wantPage: 2, wantLen: 10, wantFirst: "10"},
		{page: 3, wantPage: 3, wantLen: 3, wantFirst: "20"},
		{page: 9, wantPage: 3, wantLen: 3, wantFirst: "20"},
		{page: 0, wantPage: 1, wantLen: 10, wantFirst: "0"},
		{page: -4, wantPage: 1, wantLen: 10, wantFirst: "0"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.page), func(t *testing.T) {
			p := service.Paginate("a", comments, tt.page)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, 3, p.TotalPages)
			require.Len(t, p.Comments, tt.wantLen)
			assert.Equal(t, tt.wantFirst, p.Comments[0].ID)
		})
	}
}

func TestFormatCommentDate(t *testing.T) {
	d := time.Date(2023, time.October, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "15 أكتوبر 2023", service.FormatCommentDate(d))
}

func TestPreferenceService_Defaults(t *testing.T) {
	f := newFixture(t)

	prefs, err := f.services.Preferences.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, prefs.Theme)
	assert.Empty(t, prefs.LikedArticleIDs)
	assert.Equal(t, models.DefaultFontSizePx, prefs.ArticleFontSizePx)
}

func TestPreferenceService_ToggleTheme(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	prefs, err := f.services.Preferences.ToggleTheme(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, prefs.Theme)

	other, err := f.services.Preferences.Get(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, other.Theme, "preferences are per session")

	prefs, err = f.services.Preferences.ToggleTheme(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, prefs.Theme)
}

func TestPreferenceService_ToggleLike(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	prefs, err := f.services.Preferences.ToggleLike(ctx, "s1", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, prefs.LikedArticleIDs)

	prefs, err = f.services.Preferences.ToggleLike(ctx, "s1", "2")
	require.NoError(t, err)
	assert.Empty(t, prefs.LikedArticleIDs)

	_, err = f.services.Preferences.ToggleLike(ctx, "s1", "999")
	assert.ErrorIs(t, err, service.ErrArticleNotFound)
}

func TestPreferenceService_AdjustFontSize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var prefs *models.Preferences
	var err error
	for i := 0; i < 7; i++ {
		prefs, err = f.services.Preferences.AdjustFontSize(ctx, "s1", models.FontSizeIncrease)
		require.NoError(t, err)
	}
	assert.Equal(t, models.MaxFontSizePx, prefs.ArticleFontSizePx)

	for i := 0; i < 10; i++ {
		prefs, err = f.services.Preferences.AdjustFontSize(ctx, "s1", models.FontSizeDecrease)
		require.NoError(t, err)
	}
	assert.Equal(t, models.MinFontSizePx, prefs.ArticleFontSizePx)

	prefs, err = f.services.Preferences.AdjustFontSize(ctx, "s1", models.FontSizeReset)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultFontSizePx, prefs.ArticleFontSizePx)

	_, err = f.services.Preferences.AdjustFontSize(ctx, "s1", "huge")
	assert.ErrorIs(t, err, service.ErrInvalidFontSizeAction)
}

func TestNextFontSize(t *testing.T) {
	tests := []struct {
		current int
		action  models.FontSizeAction
		want    int
	}{
		{20, models.FontSizeIncrease, 22},
		{32, models.FontSizeIncrease, 32},
		{31, models.FontSizeIncrease, 32},
		{20, models.FontSizeDecrease, 18},
		{14, models.FontSizeDecrease, 14},
		{15, models.FontSizeDecrease, 14},
		{30, models.FontSizeReset, 20},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_%s", tt.current, tt.action), func(t *testing.T) {
			got, err := service.NextFontSize(tt.current, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToggleMembership(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, service.ToggleMembership([]string{"a"}, "b"))
	assert.Equal(t, []string{"b"}, service.ToggleMembership([]string{"a", "b"}, "a"))
	assert.Equal(t, []string{"x"}, service.ToggleMembership(nil, "x"))
}

func TestSessionService_FilterResetsOnListingChange(t *testing.T) {
	f := newFixture(t)
	sessions := f.services.Sessions

	sessions.Navigate("s1", "#home")
	got, err := sessions.SetFilter("s1", models.CategoryTech)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryTech, got)

	sessions.Navigate("s1", "#article/1")
	assert.Equal(t, models.CategoryTech, sessions.Filter("s1"), "article view keeps the filter")

	sessions.Navigate("s1", "#startups")
	assert.Equal(t, models.CategoryAll, sessions.Filter("s1"))

	_, err = sessions.SetFilter("s1", "weather")
	assert.ErrorIs(t, err, service.ErrInvalidCategory)

	got, err = sessions.SetFilter("s1", "")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryAll, got)
}

func TestSessionService_NavigateCorrectsUnknownArticle(t *testing.T) {
	f := newFixture(t)

	snap := f.services.Sessions.Navigate("s1", "#article/999")
	assert.True(t, snap.Corrected)
	assert.Equal(t, models.ViewHome, snap.View.Kind)
	assert.Equal(t, "home", snap.Fragment)

	assert.Equal(t, models.ViewHome, f.services.Sessions.View("s1").View.Kind)
	assert.Equal(t, models.ViewHome, f.services.Sessions.View("s2").View.Kind, "new sessions start at home")
}

func TestSessionService_Guards(t *testing.T) {
	f := newFixture(t)
	sessions := f.services.Sessions

	token, err := sessions.Begin("s1", service.ModalSummary, "1")
	require.NoError(t, err)

	_, err = sessions.Begin("s1", service.ModalSummary, "1")
	assert.ErrorIs(t, err, gateway.ErrBusy)

	_, err = sessions.Begin("s2", service.ModalSummary, "1")
	assert.NoError(t, err, "other sessions are independent")

	assert.True(t, sessions.Complete(token))
	assert.False(t, sessions.Complete(token), "completed token is not pending")

	// a different subject supersedes the pending one
	old, err := sessions.Begin("s1", service.ModalBriefing, "oil")
	require.NoError(t, err)
	current, err := sessions.Begin("s1", service.ModalBriefing, "gold")
	require.NoError(t, err)
	assert.False(t, sessions.Complete(old))
	assert.True(t, sessions.Complete(current))

	// navigation closes open modals
	token, err = sessions.Begin("s1", service.ModalSummary, "2")
	require.NoError(t, err)
	sessions.Navigate("s1", "#tech")
	assert.False(t, sessions.Complete(token))

	assert.False(t, sessions.Complete(service.RequestToken{SessionID: "nobody", Modal: service.ModalSummary}))
}

func TestSessionService_Sweep(t *testing.T) {
	f := newFixture(t)
	f.services.Sessions.Navigate("s1", "#home")
	f.services.Sessions.Navigate("s2", "#home")

	assert.Equal(t, 2, f.services.Sessions.Count())
	assert.Zero(t, f.services.Sessions.Sweep(), "fresh sessions survive")
	assert.Equal(t, 2, f.services.Sessions.Count())
}

func TestSessionService_StartStopSweeper(t *testing.T) {
	f := newFixture(t)
	f.services.Sessions.StartSweeper(context.Background())
	f.services.Sessions.StartSweeper(context.Background())
	f.services.Sessions.StopSweeper()
	f.services.Sessions.StopSweeper()
}

func TestIntelligenceService_Summarize(t *testing.T) {
	f := newFixture(t)

	res, err := f.services.Intelligence.Summarize(context.Background(), "s1", "2")
	require.NoError(t, err)
	assert.Equal(t, "2", res.ArticleID)
	assert.True(t, strings.HasPrefix(res.Summary, "• "))

	_, err = f.services.Intelligence.Summarize(context.Background(), "s1", "999")
	assert.ErrorIs(t, err, service.ErrArticleNotFound)
	assert.Equal(t, 1, f.summarizer.SummaryCalls)
}

func TestIntelligenceService_SummaryFailure(t *testing.T) {
	f := newFixture(t)
	genErr := &gateway.GenerationError{Operation: "summary", Message: gateway.MsgSummaryFailed, Err: errors.New("boom")}
	f.summarizer.SummarizeFunc = func(ctx context.Context, title, content string) (string, error) {
		return "", genErr
	}

	_, err := f.services.Intelligence.Summarize(context.Background(), "s1", "1")
	assert.ErrorIs(t, err, gateway.ErrGeneration)

	// the failed request is no longer pending and may be retried
	f.summarizer.SummarizeFunc = nil
	_, err = f.services.Intelligence.Summarize(context.Background(), "s1", "1")
	assert.NoError(t, err)
}

func TestIntelligenceService_StaleSummary(t *testing.T) {
	f := newFixture(t)
	f.services.Sessions.Navigate("s1", "#article/1")
	f.summarizer.SummarizeFunc = func(ctx context.Context, title, content string) (string, error) {
		// reader leaves the article while the summary is generated
		f.services.Sessions.Navigate("s1", "#tech")
		return "• late", nil
	}

	_, err := f.services.Intelligence.Summarize(context.Background(), "s1", "1")
	assert.ErrorIs(t, err, service.ErrStale)
}

func TestIntelligenceService_BusySummary(t *testing.T) {
	f := newFixture(t)
	started := make(chan struct{})
	release := make(chan struct{})
	f.summarizer.SummarizeFunc = func(ctx context.Context, title, content string) (string, error) {
		close(started)
		<-release
		return "• done", nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := f.services.Intelligence.Summarize(context.Background(), "s1", "1")
		done <- err
	}()

	<-started
	_, err := f.services.Intelligence.Summarize(context.Background(), "s1", "1")
	assert.ErrorIs(t, err, gateway.ErrBusy)

	close(release)
	assert.NoError(t, <-done)
}

func TestIntelligenceService_Briefing(t *testing.T) {
	f := newFixture(t)

	b, err := f.services.Intelligence.Briefing(context.Background(), "s1", "  الطاقة  ")
	require.NoError(t, err)
	assert.Equal(t, "الطاقة", b.Title)

	_, err = f.services.Intelligence.Briefing(context.Background(), "s1", "   ")
	assert.ErrorIs(t, err, service.ErrEmptyTopic)
	assert.Equal(t, 1, f.summarizer.BriefingCalls)
}

func TestArticleService_Move(t *testing.T) {
	f := newFixture(t)

	list, err := f.services.Articles.Move("1", articles.Down)
	require.NoError(t, err)
	assert.Equal(t, "2", list[0].ID)
	assert.Equal(t, "1", list[1].ID)

	_, err = f.services.Articles.Move("1", "left")
	assert.ErrorIs(t, err, service.ErrInvalidDirection)
}

func TestArticleService_Detail(t *testing.T) {
	f := newFixture(t)

	d, err := f.services.Articles.Detail("3")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "فهد العتيبي", d.Author.Name)
	assert.False(t, d.Author.Synthesized)
	assert.NotEmpty(t, d.BodyHTML)
	assert.NotEmpty(t, d.ReadingTime)
	assert.Equal(t, "https://nashra.example/#article/3", d.Share.Canonical)
	for _, r := range d.Related {
		assert.Equal(t, models.CategoryTech, r.Category)
		assert.NotEqual(t, "3", r.ID)
	}

	missing, err := f.services.Articles.Detail("999")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestArticleService_AuthorProfile(t *testing.T) {
	f := newFixture(t)

	p := f.services.Articles.AuthorProfile("ليلى مراد")
	assert.True(t, p.Author.Synthesized)
	require.Len(t, p.Articles, 1)
	assert.Equal(t, "4", p.Articles[0].ID)

	p = f.services.Articles.AuthorProfile("Nobody")
	assert.Empty(t, p.Articles)
	assert.Contains(t, p.AvatarURL, "ui-avatars.com")
}

func TestArticleService_FeedAndBreaking(t *testing.T) {
	f := newFixture(t)

	fd := f.services.Articles.Feed(models.HomeView(), models.CategoryAll)
	require.NotNil(t, fd.MainFeatured)
	assert.Equal(t, "1", fd.MainFeatured.ID)
	assert.Len(t, fd.MostPopular, 5)

	var breaking []string
	for _, a := range f.services.Articles.Breaking() {
		breaking = append(breaking, a.ID)
	}
	assert.Equal(t, []string{"1", "3"}, breaking)

	var featured []string
	for _, a := range f.services.Articles.FeaturedStories() {
		featured = append(featured, a.ID)
	}
	assert.Equal(t, []string{"1", "2", "7"}, featured)

	nav := f.services.Articles.Nav()
	assert.Equal(t, models.CategoryAll, nav.Categories[0].Value)
	assert.Len(t, nav.Categories, 8)
}

func TestShareLinksFor(t *testing.T) {
	links := service.ShareLinksFor("https://nashra.example/", models.Article{ID: "5", Title: "Green hydrogen"})

	assert.Equal(t, "https://nashra.example/#article/5", links.Canonical)
	assert.Equal(t, "https://twitter.com/intent/tweet?text=Green%20hydrogen&url=https%3A%2F%2Fnashra.example%2F%23article%2F5", links.Twitter)
	assert.Equal(t, "https://www.linkedin.com/sharing/share-offsite/?url=https%3A%2F%2Fnashra.example%2F%23article%2F5", links.LinkedIn)
	assert.Equal(t, "https://www.facebook.com/sharer/sharer.php?u=https%3A%2F%2Fnashra.example%2F%23article%2F5", links.Facebook)
}

func TestAnalystShareURL(t *testing.T) {
	assert.Equal(t, "https://nashra.example/#analyst?topic=oil+prices", service.AnalystShareURL("https://nashra.example", "oil prices"))
	assert.Equal(t, "https://nashra.example/#analyst", service.AnalystShareURL("https://nashra.example", ""))
}

func TestStatsService(t *testing.T) {
	f := newFixture(t)
	f.services.Sessions.Navigate("s1", "#home")
	_, err := f.services.Preferences.ToggleTheme(context.Background(), "s1")
	require.NoError(t, err)

	stats, err := f.services.Stats.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, stats.Articles)
	assert.Equal(t, 3, stats.Authors)
	assert.Equal(t, 1, stats.Sessions)
	assert.Equal(t, 1, stats.KVEntries)
}
