// Package report turns fetched opportunity records into the multi-sheet
// spreadsheet attached to (or downloaded as) the daily report.
package report

// Column describes one spreadsheet column: its header, display width, cell
// behavior flags, and how its value is read off a flattened row. The sheet
// layout and the row extraction both derive from this one table, so the two
// cannot drift apart.
type Column struct {
	Header string
	Width  float64
	// Link marks a single-value URL column whose data cells become
	// clickable hyperlinks when the value starts with "http".
	Link bool
	// Wrap enables word-wrap on data cells (newline-joined values).
	Wrap  bool
	Value func(Row) string
}

// Columns is the fixed column schema, identical for every sheet.
var Columns = []Column{
	{Header: "Notice ID", Width: 36, Value: func(r Row) string { return r.NoticeID }},
	{Header: "Title", Width: 50, Value: func(r Row) string { return r.Title }},
	{Header: "Solicitation #", Width: 18, Value: func(r Row) string { return r.SolicitationNumber }},
	{Header: "Posted Date", Width: 12, Value: func(r Row) string { return r.PostedDate }},
	{Header: "Response Deadline", Width: 16, Value: func(r Row) string { return r.ResponseDeadLine }},
	{Header: "Archive Date", Width: 12, Value: func(r Row) string { return r.ArchiveDate }},
	{Header: "Active", Width: 8, Value: func(r Row) string { return r.Active }},

	{Header: "Type", Width: 26, Value: func(r Row) string { return r.Type }},
	{Header: "Set-Aside", Width: 34, Value: func(r Row) string { return r.SetAsideDescription }},
	{Header: "Set-Aside Code", Width: 14, Value: func(r Row) string { return r.SetAsideCode }},

	{Header: "NAICS", Width: 10, Value: func(r Row) string { return r.NaicsCode }},
	{Header: "NAICS Codes", Width: 18, Value: func(r Row) string { return r.NaicsCodes }},
	{Header: "Class Code", Width: 10, Value: func(r Row) string { return r.ClassificationCode }},

	{Header: "Agency Path", Width: 60, Value: func(r Row) string { return r.AgencyPath }},
	{Header: "Agency Code", Width: 20, Value: func(r Row) string { return r.AgencyCode }},

	{Header: "Office City", Width: 16, Value: func(r Row) string { return r.OfficeCity }},
	{Header: "Office State", Width: 12, Value: func(r Row) string { return r.OfficeState }},
	{Header: "Office Zip", Width: 12, Value: func(r Row) string { return r.OfficeZip }},
	{Header: "Office Country", Width: 12, Value: func(r Row) string { return r.OfficeCountry }},

	{Header: "POC Email", Width: 28, Value: func(r Row) string { return r.POCEmail }},
	{Header: "POC Name", Width: 35, Value: func(r Row) string { return r.POCFullName }},
	{Header: "POC Phone", Width: 16, Value: func(r Row) string { return r.POCPhone }},
	{Header: "POC Fax", Width: 16, Value: func(r Row) string { return r.POCFax }},

	{Header: "UI Link", Width: 55, Link: true, Value: func(r Row) string { return r.UILink }},
	{Header: "Description Link", Width: 55, Link: true, Value: func(r Row) string { return r.DescriptionLink }},
	{Header: "Additional Info Link", Width: 55, Link: true, Value: func(r Row) string { return r.AdditionalInfoLink }},

	{Header: "Resource Links", Width: 55, Wrap: true, Value: func(r Row) string { return r.ResourceLinks }},
}

// Headers returns the ordered header labels.
func Headers() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = c.Header
	}
	return out
}
