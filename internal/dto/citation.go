package dto

// CitationAuthor is one author's name split for initial formatting.
type CitationAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

// CitationMetadata is the normalised record every citation style formats
// from, whether it came from CrossRef or from the caller.
type CitationMetadata struct {
	Title      string           `json:"title"`
	Authors    []CitationAuthor `json:"authors"`
	Year       int              `json:"year,omitempty"`
	Month      int              `json:"month,omitempty"`
	Day        int              `json:"day,omitempty"`
	Journal    string           `json:"journal,omitempty"`
	Volume     string           `json:"volume,omitempty"`
	Issue      string           `json:"issue,omitempty"`
	Pages      string           `json:"pages,omitempty"`
	DOI        string           `json:"doi,omitempty"`
	Publisher  string           `json:"publisher,omitempty"`
	Type       string           `json:"type,omitempty"`
	URL        string           `json:"url,omitempty"`
	SiteName   string           `json:"siteName,omitempty"`
	AccessDate string           `json:"accessDate,omitempty"`
}

// CitationRequest accepts a DOI, URL, or paper title. URL inputs are
// formatted from the caller-supplied Metadata since no page scraping
// happens server-side.
type CitationRequest struct {
	Input      string            `json:"input" validate:"required,min=3,max=500"`
	Style      string            `json:"style" validate:"omitempty,oneof=apa ieee harvard"`
	SourceType string            `json:"sourceType" validate:"omitempty,oneof=journal website book"`
	Metadata   *CitationMetadata `json:"metadata,omitempty"`
}

// CitationResponse carries the formatted citation and the metadata it was
// built from.
type CitationResponse struct {
	Citation     string           `json:"citation"`
	DetectedType string           `json:"detectedType"`
	InputType    string           `json:"inputType"`
	Metadata     CitationMetadata `json:"metadata"`
}
