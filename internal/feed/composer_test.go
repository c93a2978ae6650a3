package feed_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nashra-news-api/internal/feed"
	"github.com/nashra-news-api/internal/models"
)

func article(id string, c models.Category, featured bool) models.Article {
	return models.Article{ID: id, Title: "t" + id, Category: c, IsFeatured: featured}
}

type shape struct {
	Category    models.Category
	Main        string
	Side        []string
	NeedsPromo  bool
	Tail        []string
	FilterEmpty bool
	Popular     []string
}

func shapeOf(f feed.Feed) shape {
	s := shape{
		Category:    f.Category,
		NeedsPromo:  f.NeedsPromo,
		FilterEmpty: f.FilterEmpty,
		Side:        []string{},
		Tail:        []string{},
		Popular:     []string{},
	}
	if f.MainFeatured != nil {
		s.Main = f.MainFeatured.ID
	}
	for _, a := range f.SideHero {
		s.Side = append(s.Side, a.ID)
	}
	for _, a := range f.TailFeed {
		s.Tail = append(s.Tail, a.ID)
	}
	for _, r := range f.MostPopular {
		s.Popular = append(s.Popular, r.Article.ID)
	}
	return s
}

func TestCompose(t *testing.T) {
	four := []models.Article{
		article("1", models.CategoryAI, true),
		article("2", models.CategoryStartups, false),
		article("3", models.CategoryTech, false),
		article("4", models.CategoryCrypto, false),
	}
	catalogue := []models.Article{
		article("1", models.CategoryAI, true),
		article("2", models.CategoryStartups, true),
		article("3", models.CategoryTech, false),
		article("4", models.CategoryCrypto, false),
		article("5", models.CategoryGreen, false),
		article("6", models.CategorySpace, false),
		article("7", models.CategoryStartups, true),
		article("8", models.CategoryTech, false),
	}
	home := models.HomeView()
	category := func(token string) models.ViewState {
		return models.ViewState{Kind: models.ViewCategory, Token: token}
	}

	tests := []struct {
		name   string
		list   []models.Article
		view   models.ViewState
		filter models.Category
		want   shape
	}{
		{
			name: "home with first featured",
			list: four,
			view: home,
			want: shape{Main: "1", Side: []string{"2", "3"}, Tail: []string{"4"}, Popular: []string{"1", "2", "3", "4"}},
		},
		{
			name: "featured article is not first",
			list: []models.Article{
				article("1", models.CategoryAI, false),
				article("2", models.CategoryTech, true),
				article("3", models.CategoryTech, false),
			},
			view: home,
			want: shape{Main: "2", Side: []string{"1", "3"}, Tail: []string{}, Popular: []string{"1", "2", "3"}},
		},
		{
			name: "no featured falls back to first",
			list: []models.Article{article("1", models.CategoryAI, false), article("2", models.CategoryTech, false)},
			view: home,
			want: shape{Main: "1", Side: []string{"2"}, NeedsPromo: true, Tail: []string{}, Popular: []string{"1", "2"}},
		},
		{
			name: "empty list",
			list: []models.Article{},
			view: home,
			want: shape{NeedsPromo: true, Side: []string{}, Tail: []string{}, Popular: []string{}},
		},
		{
			name: "category narrows the working set",
			list: catalogue,
			view: category("startups"),
			want: shape{Category: models.CategoryStartups, Main: "2", Side: []string{"7"}, NeedsPromo: true, Tail: []string{}, Popular: []string{"1", "2", "3", "4", "5"}},
		},
		{
			name: "category without articles",
			list: catalogue,
			view: category("business"),
			want: shape{Category: models.CategoryBusiness, NeedsPromo: true, Side: []string{}, Tail: []string{}, Popular: []string{"1", "2", "3", "4", "5"}},
		},
		{
			name: "unmapped token uses full list",
			list: four,
			view: category("weather"),
			want: shape{Main: "1", Side: []string{"2", "3"}, Tail: []string{"4"}, Popular: []string{"1", "2", "3", "4"}},
		},
		{
			name:   "filter narrows only the tail",
			list:   catalogue,
			view:   home,
			filter: models.CategoryTech,
			want:   shape{Main: "1", Side: []string{"2", "3"}, Tail: []string{"8"}, Popular: []string{"1", "2", "3", "4", "5"}},
		},
		{
			name:   "filter with no matches",
			list:   catalogue,
			view:   home,
			filter: models.CategoryBusiness,
			want:   shape{Main: "1", Side: []string{"2", "3"}, Tail: []string{}, FilterEmpty: true, Popular: []string{"1", "2", "3", "4", "5"}},
		},
		{
			name:   "filter all is a no-op",
			list:   four,
			view:   home,
			filter: models.CategoryAll,
			want:   shape{Main: "1", Side: []string{"2", "3"}, Tail: []string{"4"}, Popular: []string{"1", "2", "3", "4"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shapeOf(feed.Compose(tt.list, tt.view, tt.filter, feed.Options{}))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Compose() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompose_FilterDefaultsToAll(t *testing.T) {
	f := feed.Compose(nil, models.HomeView(), "", feed.Options{})
	if f.Filter != models.CategoryAll {
		t.Errorf("Filter = %q, want all", f.Filter)
	}
	if f.SideHero == nil || f.TailFeed == nil {
		t.Error("slices should be non-nil for JSON rendering")
	}
}

func TestMostPopular_Ranks(t *testing.T) {
	list := []models.Article{
		article("a", models.CategoryAI, false),
		article("b", models.CategoryAI, false),
		article("c", models.CategoryAI, false),
	}

	got := feed.MostPopular(list, 2)
	want := []feed.RankedArticle{{Rank: 1, Article: list[0]}, {Rank: 2, Article: list[1]}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MostPopular() mismatch (-want +got):\n%s", diff)
	}

	if got := feed.MostPopular(list, 10); len(got) != 3 {
		t.Errorf("len(MostPopular(10)) = %d, want 3", len(got))
	}
}

func TestFeaturedStories(t *testing.T) {
	list := []models.Article{
		article("1", models.CategoryAI, true),
		article("2", models.CategoryAI, false),
		article("3", models.CategoryAI, true),
		article("4", models.CategoryAI, true),
	}

	got := feed.FeaturedStories(list, 2)
	var ids []string
	for _, a := range got {
		ids = append(ids, a.ID)
	}
	if diff := cmp.Diff([]string{"1", "3"}, ids); diff != "" {
		t.Errorf("FeaturedStories() mismatch (-want +got):\n%s", diff)
	}
}
