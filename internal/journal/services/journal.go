// Package services holds the journal use cases the CLI drives: the add,
// list, edit and delete flows over the record store.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/photojournal/internal/common"
	"github.com/dmitrijs2005/photojournal/internal/journal/models"
	"github.com/dmitrijs2005/photojournal/internal/journal/repositories/entries"
	"github.com/dmitrijs2005/photojournal/internal/logging"
)

// Draft is the input of the add flow.
type Draft struct {
	Text  string
	Image string
	Date  time.Time
}

type JournalService interface {
	EnsureStorageReady(ctx context.Context) error
	Create(ctx context.Context, d Draft) (models.Entry, error)
	List(ctx context.Context) ([]models.Item, error)
	Get(ctx context.Context, id int64) (models.Entry, error)
	Update(ctx context.Context, id int64, text, image string) (models.Entry, error)
	Delete(ctx context.Context, id int64) error
}

type journalService struct {
	repo   entries.Repository
	logger logging.Logger
	now    func() time.Time
}

func NewJournalService(repo entries.Repository, logger logging.Logger) JournalService {
	return &journalService{repo: repo, logger: logger, now: time.Now}
}

func (s *journalService) EnsureStorageReady(ctx context.Context) error {
	if err := s.repo.EnsureReady(ctx); err != nil {
		s.logger.Error(ctx, "storage not ready", "error", err)
		return err
	}
	return nil
}

// Create stamps the draft with id = chosen date in epoch milliseconds and the
// short en-GB date rendering.
func (s *journalService) Create(ctx context.Context, d Draft) (models.Entry, error) {
	if isFuture(d.Date, s.now()) {
		return models.Entry{}, common.ErrFutureDate
	}

	e := models.Entry{
		ID:    d.Date.UnixMilli(),
		Date:  models.FormatStoredDate(d.Date),
		Text:  d.Text,
		Image: d.Image,
	}

	path, err := s.repo.Create(ctx, e)
	if err != nil {
		if !errors.Is(err, common.ErrEmptyEntry) {
			s.logger.Error(ctx, "save entry failed", "id", e.ID, "error", err)
		}
		return models.Entry{}, err
	}
	s.logger.Info(ctx, "entry saved", "path", path)
	return e, nil
}

func (s *journalService) List(ctx context.Context) ([]models.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "load entries failed", "error", err)
		return nil, err
	}
	return items, nil
}

func (s *journalService) Get(ctx context.Context, id int64) (models.Entry, error) {
	e, err := s.repo.Get(ctx, s.repo.PathFor(id))
	if err != nil {
		s.logger.Error(ctx, "load entry failed", "id", id, "error", err)
		return models.Entry{}, err
	}
	return e, nil
}

// Update replaces text and image of an existing entry; id and date are
// carried through from the stored record.
func (s *journalService) Update(ctx context.Context, id int64, text, image string) (models.Entry, error) {
	path := s.repo.PathFor(id)
	orig, err := s.repo.Get(ctx, path)
	if err != nil {
		s.logger.Error(ctx, "load entry failed", "id", id, "error", err)
		return models.Entry{}, err
	}

	e := models.Entry{ID: orig.ID, Date: orig.Date, Text: text, Image: image}
	if err := s.repo.Update(ctx, path, e); err != nil {
		if !errors.Is(err, common.ErrEmptyEntry) {
			s.logger.Error(ctx, "update entry failed", "id", id, "error", err)
		}
		return models.Entry{}, err
	}
	s.logger.Info(ctx, "entry updated", "path", path)
	return e, nil
}

func (s *journalService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, s.repo.PathFor(id)); err != nil {
		s.logger.Error(ctx, "delete entry failed", "id", id, "error", err)
		return fmt.Errorf("delete %d: %w", id, err)
	}
	s.logger.Info(ctx, "entry deleted", "id", id)
	return nil
}

// isFuture compares calendar days in t's location, so any time today is fine.
func isFuture(t, now time.Time) bool {
	ny, nm, nd := now.In(t.Location()).Date()
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, t.Location())
	return !t.Before(today.AddDate(0, 0, 1))
}
