package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirtis/backoffice/internal/models"
	"github.com/sirtis/backoffice/internal/repository"
	"github.com/sirtis/backoffice/internal/wbs"
)

func TestDashboardAggregates(t *testing.T) {
	ctx := context.Background()
	tree := wbs.NewTree()
	cases := repository.NewCaseRepository()
	risks := repository.NewRiskRepository()
	leave := repository.NewLeaveRepository()

	root, err := tree.CreateNode(nil, wbs.FormData{Name: "p", Type: wbs.TypeProject, Progress: 50, Status: wbs.StatusInProgress})
	require.NoError(t, err)
	_, err = tree.CreateNode(&root.ID, wbs.FormData{Name: "t", Type: wbs.TypeTask, Progress: 100, Status: wbs.StatusCompleted})
	require.NoError(t, err)

	opened := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	resolved := opened.Add(10 * time.Hour)
	require.NoError(t, cases.Create(ctx, &models.Case{Subject: "a", Status: models.CaseResolved, OpenedAt: opened, ResolvedAt: &resolved}))
	require.NoError(t, cases.Create(ctx, &models.Case{Subject: "b", Status: models.CaseOpen, OpenedAt: opened}))

	require.NoError(t, risks.Create(ctx, &models.Risk{Title: "r1", Likelihood: 4, Impact: 4, Score: 16}))
	require.NoError(t, risks.Create(ctx, &models.Risk{Title: "r2", Likelihood: 1, Impact: 2, Score: 2}))

	require.NoError(t, leave.Create(ctx, &models.LeaveApplication{Applicant: "x", Type: "annual", Reason: "rest", Status: models.LeavePending}))

	svc := NewAnalyticsService(tree, cases, risks, leave)
	stats, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Work.TotalNodes)
	assert.Equal(t, 1, stats.Work.ByStatus["completed"])
	assert.InDelta(t, 75.0, stats.Work.MeanProgress, 1e-9)

	assert.Equal(t, 1, stats.Cases.Open)
	assert.Equal(t, 1, stats.Cases.Resolved)
	assert.InDelta(t, 10.0, stats.Cases.MeanResolutionHours, 1e-9)

	assert.Equal(t, 2, stats.Risks.Total)
	assert.Equal(t, 1, stats.Risks.Critical)
	assert.InDelta(t, 9.0, stats.Risks.MeanScore, 1e-9)

	assert.Equal(t, 1, stats.Leave.Pending)
}

func TestDashboardEmptyStores(t *testing.T) {
	svc := NewAnalyticsService(wbs.NewTree(), repository.NewCaseRepository(), repository.NewRiskRepository(), repository.NewLeaveRepository())
	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Work.TotalNodes)
	assert.Zero(t, stats.Cases.MeanResolutionHours)
}
