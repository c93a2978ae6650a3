package benchmark

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nashra-news-api/internal/articles"
	"github.com/nashra-news-api/internal/config"
	"github.com/nashra-news-api/internal/feed"
	"github.com/nashra-news-api/internal/mocks"
	"github.com/nashra-news-api/internal/models"
	"github.com/nashra-news-api/internal/repository"
	"github.com/nashra-news-api/internal/route"
	"github.com/nashra-news-api/internal/seed"
	"github.com/nashra-news-api/internal/service"
	"github.com/nashra-news-api/internal/validation"
)

var categories = []models.Category{
	models.CategoryTech, models.CategoryStartups, models.CategoryBusiness,
	models.CategoryAI, models.CategoryCrypto, models.CategorySpace, models.CategoryGreen,
}

// catalogue builds n articles spread over every category
func catalogue(n int) []models.Article {
	list := make([]models.Article, n)
	for i := range list {
		list[i] = models.Article{
			ID:         strconv.Itoa(i + 1),
			Title:      "Article " + strconv.Itoa(i+1),
			Excerpt:    "Excerpt about markets and technology",
			Content:    "Body",
			Category:   categories[i%len(categories)],
			Author:     "Author " + strconv.Itoa(i%20),
			IsFeatured: i%9 == 0,
		}
	}
	return list
}

// BenchmarkComposeHome benchmarks home feed composition with a filter
func BenchmarkComposeHome(b *testing.B) {
	list := catalogue(1000)
	view := models.HomeView()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		feed.Compose(list, view, models.CategoryTech, feed.Options{})
	}
}

// BenchmarkComposeCategory benchmarks a category listing
func BenchmarkComposeCategory(b *testing.B) {
	list := catalogue(1000)
	view := models.ViewState{Kind: models.ViewCategory, Token: "space"}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		feed.Compose(list, view, models.CategoryAll, feed.Options{})
	}
}

// BenchmarkResolve benchmarks fragment resolution against the store
func BenchmarkResolve(b *testing.B) {
	data, err := seed.Load("")
	if err != nil {
		b.Fatal(err)
	}
	catalog := service.NewCatalog(data)
	fragments := []string{"#home", "#tech", "#article/3", "#article/999", route.AuthorFragment("سارة خالد"), "#analyst?topic=x"}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		route.Resolve(fragments[i%len(fragments)], catalog.Articles, catalog.Authors)
	}
}

// BenchmarkStoreMoveParallel benchmarks concurrent reorders against reads
func BenchmarkStoreMoveParallel(b *testing.B) {
	store := articles.NewStore(catalogue(200))

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if i%4 == 0 {
				store.Move(strconv.Itoa(i%200+1), articles.Down)
			} else {
				store.List()
			}
			i++
		}
	})
}

// BenchmarkAddComment benchmarks the comment read-modify-write on the memory store
func BenchmarkAddComment(b *testing.B) {
	data, err := seed.Load("")
	if err != nil {
		b.Fatal(err)
	}
	log := zerolog.Nop()
	services := service.NewServices(
		repository.New(repository.NewMemoryKV(), log),
		service.NewCatalog(data),
		mocks.NewMockSummarizer(),
		mocks.NewMockMarketService(),
		&config.Config{Server: config.ServerConfig{SessionTTL: time.Hour}},
		log,
	)
	ctx := context.Background()
	req := &models.CommentRequest{UserName: "Reader", Text: "A thoughtful comment on the article"}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		articleID := strconv.Itoa(i%8 + 1)
		if _, err := services.Comments.Add(ctx, articleID, req); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkValidateComment benchmarks comment validation near the word limit
func BenchmarkValidateComment(b *testing.B) {
	validator := validation.NewValidator()
	text := ""
	for i := 0; i < 490; i++ {
		text += "word "
	}
	req := &models.CommentRequest{UserName: "Reader", Text: text}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		validator.ValidateComment(req)
	}
}
