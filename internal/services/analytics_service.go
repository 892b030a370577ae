package services

import (
	"context"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/sirtis/backoffice/internal/models"
	"github.com/sirtis/backoffice/internal/repository"
	"github.com/sirtis/backoffice/internal/wbs"
)

// DashboardStats is the aggregate payload behind the analytics screen.
type DashboardStats struct {
	Work  WorkStats  `json:"work"`
	Cases CaseStats  `json:"cases"`
	Risks RiskStats  `json:"risks"`
	Leave LeaveStats `json:"leave"`
}

type WorkStats struct {
	TotalNodes   int            `json:"totalNodes"`
	ByStatus     map[string]int `json:"byStatus"`
	MeanProgress float64        `json:"meanProgress"`
}

type CaseStats struct {
	Open                int     `json:"open"`
	Resolved            int     `json:"resolved"`
	MeanResolutionHours float64 `json:"meanResolutionHours"`
	P90ResolutionHours  float64 `json:"p90ResolutionHours"`
}

type RiskStats struct {
	Total     int     `json:"total"`
	MeanScore float64 `json:"meanScore"`
	Critical  int     `json:"critical"` // score >= 15
}

type LeaveStats struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// AnalyticsService derives dashboard aggregates from the live stores. Pure
// reads; nothing here mutates.
type AnalyticsService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type analyticsService struct {
	tree  *wbs.Tree
	cases repository.CaseRepository
	risks repository.RiskRepository
	leave repository.LeaveRepository
}

func NewAnalyticsService(tree *wbs.Tree, cases repository.CaseRepository, risks repository.RiskRepository, leave repository.LeaveRepository) AnalyticsService {
	return &analyticsService{tree: tree, cases: cases, risks: risks, leave: leave}
}

func (s *analyticsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	out := &DashboardStats{
		Work: WorkStats{ByStatus: map[string]int{}},
	}

	var progress []float64
	s.tree.Walk(func(n *wbs.Node) {
		out.Work.TotalNodes++
		out.Work.ByStatus[string(n.Status)]++
		progress = append(progress, float64(n.Progress))
	})
	if len(progress) > 0 {
		out.Work.MeanProgress = stat.Mean(progress, nil)
	}

	cases, err := s.cases.List(ctx)
	if err != nil {
		return nil, err
	}
	var resolution []float64
	for _, c := range cases {
		switch c.Status {
		case models.CaseResolved, models.CaseClosed:
			out.Cases.Resolved++
			if c.ResolvedAt != nil {
				resolution = append(resolution, c.ResolvedAt.Sub(c.OpenedAt).Hours())
			}
		default:
			out.Cases.Open++
		}
	}
	if len(resolution) > 0 {
		sort.Float64s(resolution)
		out.Cases.MeanResolutionHours = stat.Mean(resolution, nil)
		out.Cases.P90ResolutionHours = stat.Quantile(0.9, stat.Empirical, resolution, nil)
	}

	risks, err := s.risks.List(ctx)
	if err != nil {
		return nil, err
	}
	var scores []float64
	for _, r := range risks {
		out.Risks.Total++
		scores = append(scores, float64(r.Score))
		if r.Score >= 15 {
			out.Risks.Critical++
		}
	}
	if len(scores) > 0 {
		out.Risks.MeanScore = stat.Mean(scores, nil)
	}

	leave, err := s.leave.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range leave {
		switch l.Status {
		case models.LeaveApproved:
			out.Leave.Approved++
		case models.LeaveRejected:
			out.Leave.Rejected++
		default:
			out.Leave.Pending++
		}
	}

	return out, nil
}
