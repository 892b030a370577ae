package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirtis/backoffice/internal/repository"
	"github.com/sirtis/backoffice/internal/wbs"
)

const fixture = `
users:
  - email: admin@sirtis.local
    name: Admin
    role: admin
    password: changeme123
work:
  - name: SIRTIS Rollout
    type: project
    status: in_progress
    progress: 20
    children:
      - name: Phase 1
        type: phase
        children:
          - name: Requirements workshop
            type: task
risks:
  - title: Funding gap
    likelihood: 4
    impact: 5
    status: identified
leave:
  - applicant: T. Ncube
    type: annual
    reason: rest
appraisals:
  - employee: T. Ncube
    period: 2026-H1
    ratings:
      delivery: 4
      teamwork: 5
`

func newStores() Stores {
	return Stores{
		Tree:       wbs.NewTree(),
		Users:      repository.NewUserRepository(),
		Resources:  repository.NewResourceRepository(),
		Documents:  repository.NewDocumentRepository(),
		Cases:      repository.NewCaseRepository(),
		Risks:      repository.NewRiskRepository(),
		Leave:      repository.NewLeaveRepository(),
		Appraisals: repository.NewAppraisalRepository(),
	}
}

func TestApplyFixture(t *testing.T) {
	f, err := Parse([]byte(fixture))
	require.NoError(t, err)

	s := newStores()
	require.NoError(t, f.Apply(context.Background(), s))

	assert.Equal(t, 3, s.Tree.Len())
	roots := s.Tree.Roots()
	require.Len(t, roots, 1)
	root, err := s.Tree.Get(roots[0])
	require.NoError(t, err)
	assert.Equal(t, "SIRTIS Rollout", root.Name)
	assert.Equal(t, 0, root.Level)
	require.Len(t, root.Children, 1)
	phase, err := s.Tree.Get(root.Children[0])
	require.NoError(t, err)
	assert.Equal(t, 1, phase.Level)

	users, err := s.Users.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.NotEmpty(t, users[0].PasswordHash)
	assert.True(t, users[0].Active, "active defaults to true")

	risks, err := s.Risks.List(context.Background())
	require.NoError(t, err)
	require.Len(t, risks, 1)
	assert.Equal(t, 20, risks[0].Score, "score recomputed from likelihood×impact")

	apps, err := s.Appraisals.List(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.InDelta(t, 4.5, apps[0].OverallScore, 1e-9)
}

func TestApplyRejectsShortSeedPassword(t *testing.T) {
	f, err := Parse([]byte("users:\n  - email: x@y.z\n    name: X\n    role: admin\n    password: short\n"))
	require.NoError(t, err)
	assert.Error(t, f.Apply(context.Background(), newStores()))
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("users: {not: [valid"))
	assert.Error(t, err)
}
