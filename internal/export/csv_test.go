package export

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirtis/backoffice/internal/models"
)

func TestDocumentsCSVEscapesCommasAndQuotes(t *testing.T) {
	docs := []models.Document{
		{ID: uuid.New(), Title: `Budget, "final" draft`, Description: "plain"},
	}
	out, err := DocumentsCSV(docs)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "id,title,description"))
	assert.Contains(t, s, `"Budget, ""final"" draft"`, "comma and quotes force wrapping")
}

func TestDocumentsCSVPreservesOrder(t *testing.T) {
	docs := []models.Document{
		{ID: uuid.New(), Title: "zeta"},
		{ID: uuid.New(), Title: "alpha"},
	}
	out, err := DocumentsCSV(docs)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "zeta", "export order is the projection's order")
}

func TestCasesCSVEmptyResolvedAt(t *testing.T) {
	out, err := CasesCSV([]models.Case{{ID: uuid.New(), Subject: "s", Status: models.CaseOpen}})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[1], ","), "unresolved case leaves resolved_at blank")
}
