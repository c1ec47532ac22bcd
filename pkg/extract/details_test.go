package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectDetails_EndToEndScenario(t *testing.T) {
	input := "Create a project called 'Widget Sourcing' with description 'Find widget suppliers', email a@b.com, budget 5000"

	details := ProjectDetails(input)

	assert.Equal(t, "Widget Sourcing", details.Title)
	assert.Equal(t, "Find widget suppliers", details.Description)
	assert.Equal(t, "a@b.com", details.Email)
	assert.InDelta(t, 5000.0, details.Budget, 0.001)
}

func TestProjectDetails_Idempotent(t *testing.T) {
	input := `title: Laptop refresh, description: Replace aging fleet, email: ops@acme.io, budget: $12,500.00`

	first := ProjectDetails(input)
	second := ProjectDetails(input)

	assert.Equal(t, first, second)
}

func TestProjectDetails_JSONLongKeyWins(t *testing.T) {
	input := `{"title":"A","projectTitle":"B","budget":100,"approxTotalBudget":2500,"email":"a@b.com"}`

	details := ProjectDetails(input)

	assert.Equal(t, "B", details.Title)
	assert.InDelta(t, 2500.0, details.Budget, 0.001)
	assert.Equal(t, "a@b.com", details.Email)
}

func TestProjectDetails_JSONNumericString(t *testing.T) {
	details := ProjectDetails(`{"title":"T","budget":"7,250.50"}`)

	assert.InDelta(t, 7250.50, details.Budget, 0.001)
}

func TestProjectDetails_JSONDates(t *testing.T) {
	details := ProjectDetails(`{"title":"T","engagementStartDate":"2025-09-01T00:00:00Z","endDate":"2025-12-31"}`)

	require.NotNil(t, details.StartDate)
	require.NotNil(t, details.EndDate)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), *details.StartDate)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), *details.EndDate)
}

func TestProjectDetails_MalformedJSONFallsThrough(t *testing.T) {
	// Broken JSON must not fail the extraction; pattern matching still runs.
	input := `{"title": "Broken, email: fallback@acme.io budget: $900`

	details := ProjectDetails(input)

	assert.Equal(t, "fallback@acme.io", details.Email)
	assert.InDelta(t, 900.0, details.Budget, 0.001)
}

func TestProjectDetails_BudgetNormalization(t *testing.T) {
	details := ProjectDetails("budget: $12,500.00")

	assert.InDelta(t, 12500.00, details.Budget, 0.001)
}

func TestProjectDetails_ApproxTotalBudgetWins(t *testing.T) {
	details := ProjectDetails("approx total budget: 80,000 for the team")

	assert.InDelta(t, 80000.0, details.Budget, 0.001)
}

func TestProjectDetails_LabeledFields(t *testing.T) {
	input := "project title: Fleet refresh\nproject description: Replace laptops\nemail: buyer@corp.example"

	details := ProjectDetails(input)

	assert.Equal(t, "Fleet refresh", details.Title)
	assert.Equal(t, "Replace laptops", details.Description)
	assert.Equal(t, "buyer@corp.example", details.Email)
}

func TestProjectDetails_WhitespaceSeparatedLabels(t *testing.T) {
	input := "title Widget Sourcing, description Find widget suppliers, email a@b.com"

	details := ProjectDetails(input)

	assert.Equal(t, "Widget Sourcing", details.Title)
	assert.Equal(t, "Find widget suppliers", details.Description)
	assert.Equal(t, "a@b.com", details.Email)
}

func TestProjectDetails_FillerWordAfterLabelSkipped(t *testing.T) {
	details := ProjectDetails("the title is Fleet refresh, description is replace the laptops")

	assert.Equal(t, "Fleet refresh", details.Title)
	assert.Equal(t, "replace the laptops", details.Description)
}

func TestProjectDetails_QuotedAfterLabel(t *testing.T) {
	input := `set the title to "Q4 Hardware" please`

	details := ProjectDetails(input)

	assert.Equal(t, "Q4 Hardware", details.Title)
}

func TestProjectDetails_ISODatesInOrder(t *testing.T) {
	input := "runs from 2025-09-01T08:00:00Z until 2026-03-01T08:00:00Z"

	details := ProjectDetails(input)

	require.NotNil(t, details.StartDate)
	require.NotNil(t, details.EndDate)
	assert.True(t, details.StartDate.Before(*details.EndDate))
	assert.Equal(t, time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC), *details.StartDate)
}

func TestProjectDetails_BareDatesFillMissing(t *testing.T) {
	input := "start 2025-09-01 and wrap up 2025-12-15"

	details := ProjectDetails(input)

	require.NotNil(t, details.StartDate)
	require.NotNil(t, details.EndDate)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), *details.StartDate)
	assert.Equal(t, time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC), *details.EndDate)
}

func TestProjectDetails_MissingFieldsAreZero(t *testing.T) {
	details := ProjectDetails("hello there")

	assert.Empty(t, details.Title)
	assert.Empty(t, details.Description)
	assert.Empty(t, details.Email)
	assert.Zero(t, details.Budget)
	assert.Nil(t, details.StartDate)
	assert.Nil(t, details.EndDate)
}
