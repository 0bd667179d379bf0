package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studentools/studentools-api/internal/dto"
	"github.com/studentools/studentools-api/pkg/config"
	appErrors "github.com/studentools/studentools-api/pkg/errors"
)

const (
	StyleAPA     = "apa"
	StyleIEEE    = "ieee"
	StyleHarvard = "harvard"
)

const (
	inputTypeDOI   = "doi"
	inputTypeURL   = "url"
	inputTypeTitle = "title"
)

var doiPattern = regexp.MustCompile(`(?i)\b10\.\d{4,9}/[-._;()/:a-z0-9]+`)

// crossRefWork mirrors the fields of the CrossRef works payload the
// formatter needs.
type crossRefWork struct {
	Title          []string `json:"title"`
	ContainerTitle []string `json:"container-title"`
	Author         []struct {
		Given  string `json:"given"`
		Family string `json:"family"`
	} `json:"author"`
	Issued struct {
		DateParts [][]int `json:"date-parts"`
	} `json:"issued"`
	Volume    string `json:"volume"`
	Issue     string `json:"issue"`
	Page      string `json:"page"`
	DOI       string `json:"DOI"`
	Publisher string `json:"publisher"`
	Type      string `json:"type"`
	URL       string `json:"URL"`
}

// CitationService turns a DOI, URL, or paper title into a formatted
// citation. DOI and title inputs are resolved against CrossRef; URL inputs
// are formatted from caller-supplied metadata.
type CitationService struct {
	cfg       config.CitationsConfig
	client    *http.Client
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewCitationService constructs a CitationService.
func NewCitationService(cfg config.CitationsConfig, client *http.Client, validate *validator.Validate, logger *zap.Logger) *CitationService {
	if cfg.CrossRefBaseURL == "" {
		cfg.CrossRefBaseURL = "https://api.crossref.org"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CitationService{
		cfg:       cfg,
		client:    client,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate detects the input type, resolves metadata, and renders the
// citation in the requested style.
func (s *CitationService) Generate(ctx context.Context, req dto.CitationRequest) (*dto.CitationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid citation payload")
	}

	style := req.Style
	if style == "" {
		style = StyleAPA
	}

	input := strings.TrimSpace(req.Input)
	var (
		meta      dto.CitationMetadata
		inputType string
		err       error
	)

	switch {
	case doiPattern.MatchString(input):
		inputType = inputTypeDOI
		meta, err = s.lookupDOI(ctx, doiPattern.FindString(input))
	case strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://"):
		inputType = inputTypeURL
		meta, err = s.websiteMetadata(input, req.Metadata)
	default:
		inputType = inputTypeTitle
		meta, err = s.searchTitle(ctx, input)
	}
	if err != nil {
		return nil, err
	}

	sourceType := req.SourceType
	if sourceType == "" {
		sourceType = detectSourceType(inputType, meta)
	}

	var citation string
	switch style {
	case StyleIEEE:
		citation = formatIEEE(meta, sourceType, s.now())
	case StyleHarvard:
		citation = formatHarvard(meta, sourceType, s.now())
	default:
		citation = formatAPA(meta, sourceType, s.now())
	}

	return &dto.CitationResponse{
		Citation:     citation,
		DetectedType: sourceType,
		InputType:    inputType,
		Metadata:     meta,
	}, nil
}

func (s *CitationService) lookupDOI(ctx context.Context, doi string) (dto.CitationMetadata, error) {
	endpoint := fmt.Sprintf("%s/works/%s", strings.TrimRight(s.cfg.CrossRefBaseURL, "/"), url.PathEscape(doi))
	work, err := s.fetchWork(ctx, endpoint, false)
	if err != nil {
		return dto.CitationMetadata{}, err
	}
	return workToMetadata(work), nil
}

func (s *CitationService) searchTitle(ctx context.Context, title string) (dto.CitationMetadata, error) {
	endpoint := fmt.Sprintf("%s/works?query.title=%s&rows=1", strings.TrimRight(s.cfg.CrossRefBaseURL, "/"), url.QueryEscape(title))
	work, err := s.fetchWork(ctx, endpoint, true)
	if err != nil {
		return dto.CitationMetadata{}, err
	}
	return workToMetadata(work), nil
}

func (s *CitationService) fetchWork(ctx context.Context, endpoint string, search bool) (*crossRefWork, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build CrossRef request")
	}
	if s.cfg.ContactEmail != "" {
		req.Header.Set("User-Agent", fmt.Sprintf("studentools-api (mailto:%s)", s.cfg.ContactEmail))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "CrossRef request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no matching publication found")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, appErrors.Clone(appErrors.ErrUpstream, fmt.Sprintf("CrossRef returned status %d", resp.StatusCode))
	}

	if search {
		var payload struct {
			Message struct {
				Items []crossRefWork `json:"items"`
			} `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to decode CrossRef response")
		}
		if len(payload.Message.Items) == 0 {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no matching publication found")
		}
		return &payload.Message.Items[0], nil
	}

	var payload struct {
		Message crossRefWork `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to decode CrossRef response")
	}
	return &payload.Message, nil
}

func (s *CitationService) websiteMetadata(input string, meta *dto.CitationMetadata) (dto.CitationMetadata, error) {
	if meta == nil || meta.Title == "" {
		return dto.CitationMetadata{}, appErrors.Clone(appErrors.ErrValidation, "metadata with at least a title is required for URL inputs")
	}
	result := *meta
	if result.URL == "" {
		result.URL = input
	}
	if result.AccessDate == "" {
		result.AccessDate = s.now().Format("January 2, 2006")
	}
	return result, nil
}

func workToMetadata(work *crossRefWork) dto.CitationMetadata {
	meta := dto.CitationMetadata{
		Volume:    work.Volume,
		Issue:     work.Issue,
		Pages:     work.Page,
		DOI:       work.DOI,
		Publisher: work.Publisher,
		Type:      work.Type,
		URL:       work.URL,
	}
	if len(work.Title) > 0 {
		meta.Title = work.Title[0]
	}
	if len(work.ContainerTitle) > 0 {
		meta.Journal = work.ContainerTitle[0]
	}
	for _, author := range work.Author {
		meta.Authors = append(meta.Authors, dto.CitationAuthor{Given: author.Given, Family: author.Family})
	}
	if len(work.Issued.DateParts) > 0 {
		parts := work.Issued.DateParts[0]
		if len(parts) > 0 {
			meta.Year = parts[0]
		}
		if len(parts) > 1 {
			meta.Month = parts[1]
		}
		if len(parts) > 2 {
			meta.Day = parts[2]
		}
	}
	return meta
}

func detectSourceType(inputType string, meta dto.CitationMetadata) string {
	if inputType == inputTypeURL {
		return "website"
	}
	if strings.Contains(meta.Type, "book") {
		return "book"
	}
	return "journal"
}

// --- Style formatters ---

func formatAPA(meta dto.CitationMetadata, sourceType string, now time.Time) string {
	var b strings.Builder
	authors := apaAuthors(meta.Authors)
	if authors != "" {
		b.WriteString(authors)
		b.WriteString(" ")
	}
	b.WriteString(fmt.Sprintf("(%s). ", yearOrND(meta.Year)))
	b.WriteString(meta.Title)
	b.WriteString(". ")

	switch sourceType {
	case "website":
		if meta.SiteName != "" {
			b.WriteString(meta.SiteName)
			b.WriteString(". ")
		}
		if meta.AccessDate == "" {
			meta.AccessDate = now.Format("January 2, 2006")
		}
		b.WriteString(fmt.Sprintf("Retrieved %s, from %s", meta.AccessDate, meta.URL))
	case "book":
		if meta.Publisher != "" {
			b.WriteString(meta.Publisher)
			b.WriteString(". ")
		}
		if meta.DOI != "" {
			b.WriteString("https://doi.org/" + meta.DOI)
		}
	default:
		if meta.Journal != "" {
			b.WriteString(meta.Journal)
			if meta.Volume != "" {
				b.WriteString(", " + meta.Volume)
				if meta.Issue != "" {
					b.WriteString("(" + meta.Issue + ")")
				}
			}
			if meta.Pages != "" {
				b.WriteString(", " + meta.Pages)
			}
			b.WriteString(". ")
		}
		if meta.DOI != "" {
			b.WriteString("https://doi.org/" + meta.DOI)
		}
	}
	return strings.TrimSpace(b.String())
}

func formatIEEE(meta dto.CitationMetadata, sourceType string, now time.Time) string {
	var b strings.Builder
	authors := ieeeAuthors(meta.Authors)
	if authors != "" {
		b.WriteString(authors)
		b.WriteString(", ")
	}
	b.WriteString("\"" + meta.Title + ",\"")

	switch sourceType {
	case "website":
		if meta.SiteName != "" {
			b.WriteString(" " + meta.SiteName + ".")
		}
		if meta.AccessDate == "" {
			meta.AccessDate = now.Format("Jan. 2, 2006")
		}
		b.WriteString(fmt.Sprintf(" [Online]. Available: %s. [Accessed: %s]", meta.URL, meta.AccessDate))
	default:
		if meta.Journal != "" {
			b.WriteString(" " + meta.Journal + ",")
		}
		if meta.Volume != "" {
			b.WriteString(" vol. " + meta.Volume + ",")
		}
		if meta.Issue != "" {
			b.WriteString(" no. " + meta.Issue + ",")
		}
		if meta.Pages != "" {
			b.WriteString(" pp. " + meta.Pages + ",")
		}
		b.WriteString(" " + yearOrND(meta.Year) + ".")
		if meta.DOI != "" {
			b.WriteString(" doi: " + meta.DOI + ".")
		}
	}
	return strings.TrimSpace(b.String())
}

func formatHarvard(meta dto.CitationMetadata, sourceType string, now time.Time) string {
	var b strings.Builder
	authors := harvardAuthors(meta.Authors)
	if authors != "" {
		b.WriteString(authors)
		b.WriteString(" ")
	}
	b.WriteString(fmt.Sprintf("(%s) ", yearOrND(meta.Year)))
	b.WriteString("'" + meta.Title + "'")

	switch sourceType {
	case "website":
		if meta.SiteName != "" {
			b.WriteString(", " + meta.SiteName)
		}
		if meta.AccessDate == "" {
			meta.AccessDate = now.Format("2 January 2006")
		}
		b.WriteString(fmt.Sprintf(". Available at: %s (Accessed: %s).", meta.URL, meta.AccessDate))
	default:
		if meta.Journal != "" {
			b.WriteString(", " + meta.Journal)
			if meta.Volume != "" {
				b.WriteString(", " + meta.Volume)
				if meta.Issue != "" {
					b.WriteString("(" + meta.Issue + ")")
				}
			}
			if meta.Pages != "" {
				b.WriteString(", pp. " + meta.Pages)
			}
		}
		b.WriteString(".")
	}
	return strings.TrimSpace(b.String())
}

func yearOrND(year int) string {
	if year == 0 {
		return "n.d."
	}
	return fmt.Sprintf("%d", year)
}

func initials(given string) string {
	parts := strings.Fields(given)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, strings.ToUpper(part[:1])+".")
	}
	return strings.Join(out, " ")
}

func apaAuthors(authors []dto.CitationAuthor) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		if a.Family == "" {
			continue
		}
		name := a.Family
		if a.Given != "" {
			name += ", " + initials(a.Given)
		}
		names = append(names, name)
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", & " + names[len(names)-1]
	}
}

func ieeeAuthors(authors []dto.CitationAuthor) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		if a.Family == "" {
			continue
		}
		name := a.Family
		if a.Given != "" {
			name = initials(a.Given) + " " + a.Family
		}
		names = append(names, name)
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

func harvardAuthors(authors []dto.CitationAuthor) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		if a.Family == "" {
			continue
		}
		name := a.Family
		if a.Given != "" {
			name += ", " + initials(a.Given)
		}
		names = append(names, name)
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
