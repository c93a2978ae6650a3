package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nashra-news-api/internal/articles"
	"github.com/nashra-news-api/internal/content"
	"github.com/nashra-news-api/internal/metrics"
	"github.com/nashra-news-api/internal/models"
	"github.com/nashra-news-api/internal/repository"
	"github.com/nashra-news-api/internal/validation"
)

var arabicMonths = [...]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// CommentValidationError lists the limits a submission broke
type CommentValidationError struct {
	Errors []validation.ValidationError
}

func (e *CommentValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ve := range e.Errors {
		msgs = append(msgs, ve.Error())
	}
	return strings.Join(msgs, "; ")
}

func (e *CommentValidationError) Unwrap() error {
	return ErrCommentTooLong
}

// commentService is the concrete implementation of CommentService
type commentService struct {
	repo     repository.CommentRepository
	articles *articles.Store
	renderer *content.Renderer
	locks    *keyedMutex
	now      func() time.Time
	log      zerolog.Logger
}

func newCommentService(repo repository.CommentRepository, store *articles.Store, log zerolog.Logger) *commentService {
	return &commentService{
		repo:     repo,
		articles: store,
		renderer: content.NewRenderer(),
		locks:    newKeyedMutex(),
		now:      time.Now,
		log:      log.With().Str("service", "comments").Logger(),
	}
}

// List returns one page of the newest-first comments. Out of range pages are
// clamped.
func (s *commentService) List(ctx context.Context, articleID string, page int) (*models.CommentPage, error) {
	if _, ok := s.articles.FindByID(articleID); !ok {
		return nil, ErrArticleNotFound
	}
	comments, err := s.repo.Load(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	return Paginate(articleID, comments, page), nil
}

// Add prepends a comment. Markup is stripped from both fields and a blank
// name becomes the anonymous reader.
func (s *commentService) Add(ctx context.Context, articleID string, req *models.CommentRequest) (*models.Comment, error) {
	if _, ok := s.articles.FindByID(articleID); !ok {
		return nil, ErrArticleNotFound
	}

	clean := models.CommentRequest{
		UserName: s.renderer.StripTags(req.UserName),
		Text:     s.renderer.StripTags(req.Text),
	}
	if clean.Text == "" {
		return nil, ErrEmptyComment
	}
	if errs := validation.NewValidator().ValidateComment(&clean); len(errs) > 0 {
		return nil, &CommentValidationError{Errors: errs}
	}
	if clean.UserName == "" {
		clean.UserName = models.AnonymousCommenter
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate comment id: %w", err)
	}
	comment := models.Comment{
		ID:       id.String(),
		UserName: clean.UserName,
		Text:     clean.Text,
		Date:     FormatCommentDate(s.now()),
	}

	unlock := s.locks.Lock(articleID)
	defer unlock()

	existing, err := s.repo.Load(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	updated := make([]models.Comment, 0, len(existing)+1)
	updated = append(updated, comment)
	updated = append(updated, existing...)

	if err := s.repo.Save(ctx, articleID, updated); err != nil {
		return nil, fmt.Errorf("save comments: %w", err)
	}

	metrics.RecordComment("add")
	s.log.Info().Str("article_id", articleID).Str("comment_id", comment.ID).Msg("Comment added")

	return &comment, nil
}

// Remove deletes commentID and returns currentPage of the result, clamped to
// the new last page
func (s *commentService) Remove(ctx context.Context, articleID, commentID string, currentPage int) (*models.CommentPage, error) {
	if _, ok := s.articles.FindByID(articleID); !ok {
		return nil, ErrArticleNotFound
	}

	unlock := s.locks.Lock(articleID)
	defer unlock()

	existing, err := s.repo.Load(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	remaining := make([]models.Comment, 0, len(existing))
	for _, c := range existing {
		if c.ID != commentID {
			remaining = append(remaining, c)
		}
	}

	if err := s.repo.Save(ctx, articleID, remaining); err != nil {
		return nil, fmt.Errorf("save comments: %w", err)
	}

	if len(remaining) < len(existing) {
		metrics.RecordComment("remove")
		s.log.Info().Str("article_id", articleID).Str("comment_id", commentID).Msg("Comment removed")
	}

	return Paginate(articleID, remaining, currentPage), nil
}

// Paginate slices page out of comments with the fixed page size. A page past
// the end clamps to the last page, or to 1 when there are no comments.
func Paginate(articleID string, comments []models.Comment, page int) *models.CommentPage {
	total := len(comments)
	pages := TotalPages(total)

	if page > pages && pages > 0 {
		page = pages
	}
	if page < 1 {
		page = 1
	}

	start := min((page-1)*models.CommentsPerPage, total)
	end := min(start+models.CommentsPerPage, total)

	out := make([]models.Comment, end-start)
	copy(out, comments[start:end])

	return &models.CommentPage{
		ArticleID:  articleID,
		Comments:   out,
		Page:       page,
		TotalPages: pages,
		Total:      total,
	}
}

// TotalPages is ceil(total / page size)
func TotalPages(total int) int {
	return (total + models.CommentsPerPage - 1) / models.CommentsPerPage
}

// FormatCommentDate renders t as "15 أكتوبر 2023"
func FormatCommentDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), arabicMonths[t.Month()-1], t.Year())
}
