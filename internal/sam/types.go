package sam

// Opportunity is one contract-opportunity record from the SAM.gov v2 search
// API. Everything except the notice ID and title can be absent or null, so
// optional scalars are pointers and the flattening layer owns the coercion.
type Opportunity struct {
	NoticeID string `json:"noticeId"`
	Title    string `json:"title"`

	SolicitationNumber *string `json:"solicitationNumber,omitempty"`

	FullParentPathName *string `json:"fullParentPathName,omitempty"`
	FullParentPathCode *string `json:"fullParentPathCode,omitempty"`

	// Calendar-date strings like "2026-01-12", or null.
	PostedDate       *string `json:"postedDate,omitempty"`
	ResponseDeadLine *string `json:"responseDeadLine,omitempty"`
	ArchiveDate      *string `json:"archiveDate,omitempty"`
	ArchiveType      *string `json:"archiveType,omitempty"`

	Type     *string `json:"type,omitempty"`
	BaseType *string `json:"baseType,omitempty"`
	Active   *string `json:"active,omitempty"`

	TypeOfSetAsideDescription *string `json:"typeOfSetAsideDescription,omitempty"`
	TypeOfSetAside            *string `json:"typeOfSetAside,omitempty"`

	NaicsCode          *string  `json:"naicsCode,omitempty"`
	NaicsCodes         []string `json:"naicsCodes,omitempty"`
	ClassificationCode *string  `json:"classificationCode,omitempty"`

	Award *Award `json:"award,omitempty"`

	PointOfContact []PointOfContact `json:"pointOfContact,omitempty"`

	// Description is a URL to the description endpoint, not prose.
	Description *string `json:"description,omitempty"`

	OrganizationType *string        `json:"organizationType,omitempty"`
	OfficeAddress    *OfficeAddress `json:"officeAddress,omitempty"`

	AdditionalInfoLink *string  `json:"additionalInfoLink,omitempty"`
	UILink             *string  `json:"uiLink,omitempty"`
	Links              []Link   `json:"links,omitempty"`
	ResourceLinks      []string `json:"resourceLinks,omitempty"`
}

// Award holds award metadata when the notice has been awarded.
type Award struct {
	Date   *string `json:"date,omitempty"`
	Number *string `json:"number,omitempty"`
}

// PointOfContact is one listed contact; every field is independently optional.
type PointOfContact struct {
	Fax      *string `json:"fax,omitempty"`
	Type     *string `json:"type,omitempty"` // "primary", "secondary", ...
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Title    *string `json:"title,omitempty"`
	FullName *string `json:"fullName,omitempty"`
}

// OfficeAddress is the contracting office location.
type OfficeAddress struct {
	Zipcode     *string `json:"zipcode,omitempty"`
	City        *string `json:"city,omitempty"`
	CountryCode *string `json:"countryCode,omitempty"`
	State       *string `json:"state,omitempty"`
}

// Link is a self/related link on the record.
type Link struct {
	Rel  *string `json:"rel,omitempty"`
	Href *string `json:"href,omitempty"`
}

// SearchResponse is the SAM.gov search envelope.
type SearchResponse struct {
	TotalRecords      int           `json:"totalRecords"`
	Limit             int           `json:"limit"`
	Offset            int           `json:"offset"`
	OpportunitiesData []Opportunity `json:"opportunitiesData"`
}
