package fleet

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-console/internal/models"
	"github.com/ukydev/fleet-console/internal/status"
	"github.com/ukydev/fleet-console/internal/store"
)

// DocumentFilter narrows ListDocuments. Search matches the name.
type DocumentFilter struct {
	Search string
	Type   string
	Status string
}

// DocumentView is a stored document next to the level its expiry date
// suggests. Suggested is informational and never written back.
type DocumentView struct {
	models.Document
	Suggested *status.Expiry `json:"suggested,omitempty"`
}

// DocumentStats counts documents by stored status.
type DocumentStats struct {
	Total            int `json:"total"`
	Valid            int `json:"valid"`
	Expiring         int `json:"expiring"`
	Expired          int `json:"expired"`
	TechnicalReviews int `json:"technical_reviews"`
}

func (s *Service) loadDocuments(ctx context.Context, companyID string) ([]models.Document, error) {
	if err := checkCompany(companyID); err != nil {
		return nil, err
	}
	return store.Load(ctx, s.store, store.Documents, companyID, store.SeedFor(companyID).Documents)
}

func (s *Service) updateDocuments(ctx context.Context, companyID string, fn func([]models.Document) ([]models.Document, error)) error {
	if err := checkCompany(companyID); err != nil {
		return err
	}
	_, err := store.Update(ctx, s.store, store.Documents, companyID, store.SeedFor(companyID).Documents, fn)
	return err
}

func documentID(d models.Document) string { return d.ID }

func (s *Service) view(d models.Document) DocumentView {
	v := DocumentView{Document: d}
	if exp, err := models.ParseDate(d.ExpiryDate); err == nil {
		e := status.ClassifyExpiry(status.SubjectDocument, exp, s.today())
		v.Suggested = &e
	}
	return v
}

// ListDocuments returns the company's documents matching f.
func (s *Service) ListDocuments(ctx context.Context, companyID string, f DocumentFilter) ([]DocumentView, error) {
	all, err := s.loadDocuments(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := []DocumentView{}
	for _, d := range all {
		if matchesAny(f.Search, d.Name) &&
			matchesOption(f.Type, string(d.Type)) &&
			matchesOption(f.Status, string(d.Status)) {
			out = append(out, s.view(d))
		}
	}
	return out, nil
}

// GetDocument returns one document.
func (s *Service) GetDocument(ctx context.Context, companyID, id string) (DocumentView, error) {
	all, err := s.loadDocuments(ctx, companyID)
	if err != nil {
		return DocumentView{}, err
	}
	i := indexOf(all, id, documentID)
	if i < 0 {
		return DocumentView{}, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	return s.view(all[i]), nil
}

func prepareDocument(d *models.Document) error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return invalid("name is required")
	}
	if d.Type == "" {
		d.Type = models.DocumentOther
	}
	if !d.Type.IsValid() {
		return invalid("unknown document type %q", d.Type)
	}
	if d.Status == "" {
		d.Status = models.DocumentValid
	}
	if !d.Status.IsValid() {
		return invalid("unknown document status %q", d.Status)
	}
	return checkDate("expiry_date", d.ExpiryDate, true)
}

// AddDocument stores a new document with the status it was given.
func (s *Service) AddDocument(ctx context.Context, companyID string, d models.Document) (models.Document, error) {
	if err := prepareDocument(&d); err != nil {
		return models.Document{}, err
	}
	d.ID = s.ids.next()
	d.CompanyID = companyID

	err := s.updateDocuments(ctx, companyID, func(list []models.Document) ([]models.Document, error) {
		return appended(list, d), nil
	})
	if err != nil {
		return models.Document{}, err
	}
	s.log.WithFields(log.Fields{"company_id": companyID, "document_id": d.ID, "type": d.Type}).Info("Document added")
	return d, nil
}

// UpdateDocument replaces a document, keeping its id and company.
func (s *Service) UpdateDocument(ctx context.Context, companyID, id string, d models.Document) (models.Document, error) {
	if err := prepareDocument(&d); err != nil {
		return models.Document{}, err
	}
	d.ID = id
	d.CompanyID = companyID

	err := s.updateDocuments(ctx, companyID, func(list []models.Document) ([]models.Document, error) {
		i := indexOf(list, id, documentID)
		if i < 0 {
			return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
		}
		return replaced(list, i, d), nil
	})
	if err != nil {
		return models.Document{}, err
	}
	return d, nil
}

// DeleteDocument removes a document once confirmed.
func (s *Service) DeleteDocument(ctx context.Context, companyID, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	err := s.updateDocuments(ctx, companyID, func(list []models.Document) ([]models.Document, error) {
		i := indexOf(list, id, documentID)
		if i < 0 {
			return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
		}
		return removed(list, i), nil
	})
	if err != nil {
		return err
	}
	s.log.WithFields(log.Fields{"company_id": companyID, "document_id": id}).Info("Document deleted")
	return nil
}

// DocumentStats counts the company's documents by stored status.
func (s *Service) DocumentStats(ctx context.Context, companyID string) (DocumentStats, error) {
	all, err := s.loadDocuments(ctx, companyID)
	if err != nil {
		return DocumentStats{}, err
	}
	stats := DocumentStats{Total: len(all)}
	for _, d := range all {
		switch d.Status {
		case models.DocumentValid:
			stats.Valid++
		case models.DocumentExpiring:
			stats.Expiring++
		case models.DocumentExpired:
			stats.Expired++
		}
		if d.Type == models.DocumentTechnicalReview {
			stats.TechnicalReviews++
		}
	}
	return stats, nil
}
