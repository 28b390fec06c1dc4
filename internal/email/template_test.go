package email

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReportBody(t *testing.T) {
	runDate := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	sheets := []SheetSummary{
		{Name: "Parking Lots and Garages", Count: 12},
		{Name: "Janitorial Services", Count: 0},
	}

	body, err := RenderReportBody(runDate, "Tepnology LLC", "https://cdn.example.com/logo.png", sheets)
	require.NoError(t, err)

	assert.Contains(t, body, "2024-06-03")
	assert.Contains(t, body, "<strong>Parking Lots and Garages</strong>: 12 opportunities")
	assert.Contains(t, body, "<strong>Janitorial Services</strong>: 0 opportunities")
	assert.Contains(t, body, "https://cdn.example.com/logo.png")
	assert.Contains(t, body, "2024 Tepnology LLC")
}

func TestRenderReportBodyWithoutLogo(t *testing.T) {
	runDate := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	body, err := RenderReportBody(runDate, "Tepnology LLC", "", nil)
	require.NoError(t, err)

	assert.NotContains(t, body, "<img")
	assert.Contains(t, body, "Tepnology LLC")
}
