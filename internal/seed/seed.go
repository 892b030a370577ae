// Package seed loads YAML fixtures into the in-memory stores at startup.
// The fixture stands in for the mock datasets the screens ship with; editing
// the file is how a deployment changes its starting data.
package seed

import (
	"context"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sirtis/backoffice/internal/models"
	"github.com/sirtis/backoffice/internal/repository"
	"github.com/sirtis/backoffice/internal/services"
	"github.com/sirtis/backoffice/internal/wbs"
	apperr "github.com/sirtis/backoffice/pkg/errors"
)

// Stores bundles everything a fixture can populate.
type Stores struct {
	Tree       *wbs.Tree
	Users      repository.UserRepository
	Resources  repository.ResourceRepository
	Documents  repository.DocumentRepository
	Cases      repository.CaseRepository
	Risks      repository.RiskRepository
	Leave      repository.LeaveRepository
	Appraisals repository.AppraisalRepository
}

// WorkItem is a fixture node; children nest recursively and become child
// nodes in creation order.
type WorkItem struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Type        string     `yaml:"type"`
	Status      string     `yaml:"status"`
	Assignee    string     `yaml:"assignee"`
	Progress    int        `yaml:"progress"`
	StartDate   time.Time  `yaml:"startDate"`
	EndDate     time.Time  `yaml:"endDate"`
	Deliverables []string  `yaml:"deliverables"`
	Risks       []string   `yaml:"risks"`
	Children    []WorkItem `yaml:"children"`
}

// SeedUser carries a plaintext password that is hashed on apply.
type SeedUser struct {
	Email      string `yaml:"email"`
	Name       string `yaml:"name"`
	Role       string `yaml:"role"`
	Department string `yaml:"department"`
	Password   string `yaml:"password"`
	Active     *bool  `yaml:"active"`
}

// Fixture is the file layout.
type Fixture struct {
	Users      []SeedUser                `yaml:"users"`
	Work       []WorkItem                `yaml:"work"`
	Resources  []models.Resource         `yaml:"resources"`
	Documents  []models.Document         `yaml:"documents"`
	Cases      []models.Case             `yaml:"cases"`
	Risks      []models.Risk             `yaml:"risks"`
	Leave      []models.LeaveApplication `yaml:"leave"`
	Appraisals []models.Appraisal        `yaml:"appraisals"`
}

// Load parses a fixture file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInvalid, "read seed file")
	}
	return Parse(data)
}

// Parse decodes fixture YAML.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInvalid, "parse seed file")
	}
	return &f, nil
}

// Apply populates the stores. Derived fields (risk score, appraisal overall
// score) are recomputed here so fixtures never carry stale values.
func (f *Fixture) Apply(ctx context.Context, s Stores) error {
	for _, su := range f.Users {
		hash, err := services.HashPassword(su.Password)
		if err != nil {
			return apperr.Wrap(err, apperr.CodeInvalid, "seed user "+su.Email)
		}
		active := true
		if su.Active != nil {
			active = *su.Active
		}
		u := models.User{
			Email: su.Email, Name: su.Name, Role: su.Role,
			Department: su.Department, Active: active, PasswordHash: hash,
			CreatedAt: time.Now(), UpdatedAt: time.Now(),
		}
		if err := s.Users.Create(ctx, &u); err != nil {
			return err
		}
	}

	for _, item := range f.Work {
		if err := plantWork(s.Tree, nil, item); err != nil {
			return err
		}
	}

	for i := range f.Resources {
		r := f.Resources[i]
		if err := s.Resources.Create(ctx, &r); err != nil {
			return err
		}
	}
	for i := range f.Documents {
		d := f.Documents[i]
		if err := s.Documents.Create(ctx, &d); err != nil {
			return err
		}
	}
	for i := range f.Cases {
		c := f.Cases[i]
		if err := s.Cases.Create(ctx, &c); err != nil {
			return err
		}
	}
	for i := range f.Risks {
		r := f.Risks[i]
		r.Score = r.Likelihood * r.Impact
		if err := s.Risks.Create(ctx, &r); err != nil {
			return err
		}
	}
	for i := range f.Leave {
		l := f.Leave[i]
		if l.Status == "" {
			l.Status = models.LeavePending
		}
		if err := s.Leave.Create(ctx, &l); err != nil {
			return err
		}
	}
	for i := range f.Appraisals {
		a := f.Appraisals[i]
		a.OverallScore = overallScore(a.Ratings)
		if err := s.Appraisals.Create(ctx, &a); err != nil {
			return err
		}
	}
	return nil
}

func plantWork(t *wbs.Tree, parent *wbs.NodeID, item WorkItem) error {
	n, err := t.CreateNode(parent, wbs.FormData{
		Name:         item.Name,
		Description:  item.Description,
		Type:         wbs.NodeType(item.Type),
		Status:       wbs.Status(item.Status),
		Assignee:     item.Assignee,
		Progress:     item.Progress,
		StartDate:    item.StartDate,
		EndDate:      item.EndDate,
		Deliverables: item.Deliverables,
		Risks:        item.Risks,
	})
	if err != nil {
		return apperr.Wrap(err, apperr.CodeInvalid, "seed work item "+item.Name)
	}
	for _, child := range item.Children {
		if err := plantWork(t, &n.ID, child); err != nil {
			return err
		}
	}
	return nil
}

func overallScore(ratings map[string]int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum int
	for _, v := range ratings {
		sum += v
	}
	return float64(sum) / float64(len(ratings))
}
