package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/RangiraDave/Test-copilot/internal/apperror"
	"github.com/RangiraDave/Test-copilot/internal/domain/entity"
	"github.com/RangiraDave/Test-copilot/internal/domain/repository"
	"github.com/RangiraDave/Test-copilot/internal/infrastructure/postgres"
)

// UniversityService implements the administrative CRUD surface plus the
// Elasticsearch-backed name/location search. Postgres is the source of truth;
// the index is best-effort and repaired on the next write.
type UniversityService struct {
	Repo    repository.UniversityRepository
	Logger  *logrus.Logger
	ES      *elasticsearch.Client
	ESIndex string
}

// CreateInput carries a new university's fields.
type CreateInput struct {
	Name     string
	Location string
	Website  string
	Status   string
}

func (s *UniversityService) Create(ctx context.Context, in CreateInput) (*entity.University, error) {
	if in.Status == "" {
		in.Status = entity.StatusClosed
	}
	if !entity.ValidStatus(in.Status) {
		return nil, apperror.NewValidation("status must be one of: open, closed", nil)
	}
	u := &entity.University{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Location: in.Location,
		Website:  in.Website,
		Status:   in.Status,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if _, ok := postgres.UniqueViolation(err); ok {
			return nil, apperror.NewConflict("university name already exists", nil)
		}
		return nil, apperror.NewDatabase("failed to create university", err)
	}
	s.index(ctx, u)
	return u, nil
}

func (s *UniversityService) Get(ctx context.Context, id string) (*entity.University, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, apperror.NewNotFound("university not found", nil)
		}
		return nil, apperror.NewDatabase("failed to load university", err)
	}
	return u, nil
}

func (s *UniversityService) List(ctx context.Context) ([]*entity.University, error) {
	out, err := s.Repo.List(ctx)
	if err != nil {
		return nil, apperror.NewDatabase("failed to list universities", err)
	}
	return out, nil
}

// UpdateInput carries the full replacement fields for an update.
type UpdateInput struct {
	Name     string
	Location string
	Website  string
	Status   string
}

func (s *UniversityService) Update(ctx context.Context, id string, in UpdateInput) (*entity.University, error) {
	if !entity.ValidStatus(in.Status) {
		return nil, apperror.NewValidation("status must be one of: open, closed", nil)
	}
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, apperror.NewNotFound("university not found", nil)
		}
		return nil, apperror.NewDatabase("failed to load university", err)
	}
	u.Name = in.Name
	u.Location = in.Location
	u.Website = in.Website
	u.Status = in.Status
	if err := s.Repo.Update(ctx, u); err != nil {
		if _, ok := postgres.UniqueViolation(err); ok {
			return nil, apperror.NewConflict("university name already exists", nil)
		}
		return nil, apperror.NewDatabase("failed to update university", err)
	}
	s.index(ctx, u)
	return u, nil
}

func (s *UniversityService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return apperror.NewNotFound("university not found", nil)
		}
		return apperror.NewDatabase("failed to delete university", err)
	}
	s.deindex(ctx, id)
	return nil
}

func (s *UniversityService) index(ctx context.Context, u *entity.University) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         u.ID,
		"name":       u.Name,
		"location":   u.Location,
		"website":    u.Website,
		"status":     u.Status,
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("university_id", u.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("university_id", u.ID).Warn("es index response error")
	}
}

func (s *UniversityService) deindex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("university_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match over name and location.
func (s *UniversityService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "location"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, apperror.NewExternal("search is temporarily unavailable", err)
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperror.NewExternal("search is temporarily unavailable", err)
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
