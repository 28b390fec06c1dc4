package report

import (
	"strings"

	"github.com/tepnology/sam-report/internal/sam"
)

// Row is one flattened opportunity: every field a plain string, never
// absent, so the sheet layer can write cells without nil checks.
type Row struct {
	NoticeID           string
	Title              string
	SolicitationNumber string
	PostedDate         string
	ResponseDeadLine   string
	ArchiveDate        string
	Active             string

	Type                string
	SetAsideDescription string
	SetAsideCode        string

	NaicsCode          string
	NaicsCodes         string
	ClassificationCode string

	AgencyPath string
	AgencyCode string

	OfficeCity    string
	OfficeState   string
	OfficeZip     string
	OfficeCountry string

	POCEmail    string
	POCFullName string
	POCPhone    string
	POCFax      string

	UILink             string
	DescriptionLink    string
	AdditionalInfoLink string

	ResourceLinks string
}

// str coerces an optional scalar: nil becomes the empty string. Applied
// uniformly so no field can ever surface as a null cell.
func str(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// join concatenates non-empty entries with the given delimiter.
func join(values []string, delimiter string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, delimiter)
}

// primaryPOC selects the point of contact marked "primary", falling back to
// the first listed, or nil when none exist.
func primaryPOC(pocs []sam.PointOfContact) *sam.PointOfContact {
	for i := range pocs {
		if str(pocs[i].Type) == "primary" {
			return &pocs[i]
		}
	}
	if len(pocs) > 0 {
		return &pocs[0]
	}
	return nil
}

// Flatten maps one opportunity record into a flat row. It is total over the
// full record shape: missing and null fields become empty strings, never an
// error.
func Flatten(opp sam.Opportunity) Row {
	row := Row{
		NoticeID:           opp.NoticeID,
		Title:              opp.Title,
		SolicitationNumber: str(opp.SolicitationNumber),
		PostedDate:         str(opp.PostedDate),
		ResponseDeadLine:   str(opp.ResponseDeadLine),
		ArchiveDate:        str(opp.ArchiveDate),
		Active:             str(opp.Active),

		Type:                str(opp.Type),
		SetAsideDescription: str(opp.TypeOfSetAsideDescription),
		SetAsideCode:        str(opp.TypeOfSetAside),

		NaicsCode:          str(opp.NaicsCode),
		NaicsCodes:         join(opp.NaicsCodes, ", "),
		ClassificationCode: str(opp.ClassificationCode),

		AgencyPath: str(opp.FullParentPathName),
		AgencyCode: str(opp.FullParentPathCode),

		UILink:             str(opp.UILink),
		DescriptionLink:    str(opp.Description),
		AdditionalInfoLink: str(opp.AdditionalInfoLink),

		// One cell cannot hold several hyperlinks; newline-joined stays readable.
		ResourceLinks: join(opp.ResourceLinks, "\n"),
	}

	if addr := opp.OfficeAddress; addr != nil {
		row.OfficeCity = str(addr.City)
		row.OfficeState = str(addr.State)
		row.OfficeZip = str(addr.Zipcode)
		row.OfficeCountry = str(addr.CountryCode)
	}

	if poc := primaryPOC(opp.PointOfContact); poc != nil {
		row.POCEmail = str(poc.Email)
		row.POCFullName = str(poc.FullName)
		row.POCPhone = str(poc.Phone)
		row.POCFax = str(poc.Fax)
	}

	return row
}

// FlattenAll flattens a result list in input order.
func FlattenAll(opps []sam.Opportunity) []Row {
	rows := make([]Row, len(opps))
	for i, opp := range opps {
		rows[i] = Flatten(opp)
	}
	return rows
}
