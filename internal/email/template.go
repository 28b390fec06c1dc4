package email

import (
	"fmt"
	"time"

	"github.com/osteele/liquid"
)

// SheetSummary is one line of the email body: a sheet name and how many
// opportunities it holds.
type SheetSummary struct {
	Name  string
	Count int
}

// bodyTemplate is the email-safe (inline-styled) HTML body.
const bodyTemplate = `<div style="font-family: Arial, Helvetica, sans-serif; max-width: 600px; margin: 0 auto; padding: 24px; color: #111827;">
  <h2 style="font-size: 20px; margin-bottom: 16px;">SAM Opportunities Report &ndash; {{ report_date }}</h2>
  <p style="font-size: 14px; line-height: 1.5; margin-bottom: 12px;">
    Attached is your latest SAM opportunities report. Below is a quick summary of what&rsquo;s included:
  </p>
  <ul style="padding-left: 20px; margin-bottom: 16px; font-size: 14px;">
    {%- for sheet in sheets %}
    <li><strong>{{ sheet.name }}</strong>: {{ sheet.count }} opportunities</li>
    {%- endfor %}
  </ul>
  <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 24px 0;" />
  <div>
    {%- if logo_url != "" %}
    <img src="{{ logo_url }}" alt="{{ company_name }} logo" style="height: 72px; width: auto;" />
    {%- endif %}
    <p style="font-size: 12px; color: #6b7280;">&copy; {{ year }} {{ company_name }}</p>
  </div>
</div>`

var bodyEngine = liquid.NewEngine()

// RenderReportBody renders the HTML summary body for one report run. Counts
// come from each sheet's own rows.
func RenderReportBody(runDate time.Time, companyName, logoURL string, sheets []SheetSummary) (string, error) {
	sheetBindings := make([]map[string]interface{}, len(sheets))
	for i, s := range sheets {
		sheetBindings[i] = map[string]interface{}{"name": s.Name, "count": s.Count}
	}

	out, err := bodyEngine.ParseAndRenderString(bodyTemplate, liquid.Bindings{
		"report_date":  runDate.UTC().Format("2006-01-02"),
		"company_name": companyName,
		"logo_url":     logoURL,
		"year":         runDate.UTC().Year(),
		"sheets":       sheetBindings,
	})
	if err != nil {
		return "", fmt.Errorf("rendering report body: %w", err)
	}
	return out, nil
}
