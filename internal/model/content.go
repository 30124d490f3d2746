package model

// MediaAsset describes an uploaded file by URL.
type MediaAsset struct {
	URL             string  `json:"url"`
	AlternativeText *string `json:"alternativeText"`
}

// MediaData is the populated side of a media reference.
type MediaData struct {
	ID         uint       `json:"id"`
	Attributes MediaAsset `json:"attributes"`
}

// MediaField is a media reference: `{data: {...}}` or `{data: null}`.
type MediaField struct {
	Data *MediaData `json:"data"`
}

// NewMediaField returns nil for an empty URL so the attribute is omitted.
func NewMediaField(url *string) *MediaField {
	if url == nil || *url == "" {
		return nil
	}
	return &MediaField{Data: &MediaData{Attributes: MediaAsset{URL: *url}}}
}

type Introduction struct {
	FullName string      `json:"fullName"`
	Title    string      `json:"title"`
	Email    string      `json:"email"`
	Phone    *string     `json:"phone"`
	Location *string     `json:"location"`
	Website  *string     `json:"website"`
	Linkedin *string     `json:"linkedin"`
	Github   *string     `json:"github"`
	Summary  string      `json:"summary"`
	Skills   []string    `json:"skills"`
	Avatar   *MediaField `json:"avatar,omitempty"`
}

type WorkExperience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Location     *string  `json:"location"`
	StartDate    string   `json:"startDate"`
	EndDate      *string  `json:"endDate"`
	Current      bool     `json:"current"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
	Technologies []string `json:"technologies"`
	Order        int      `json:"order"`
	CompanyURL   *string  `json:"companyUrl"`
}

type Blog struct {
	Title         string      `json:"title"`
	Slug          string      `json:"slug"`
	Description   string      `json:"description"`
	Content       string      `json:"content"`
	ContentHTML   *string     `json:"contentHtml,omitempty"`
	FeaturedImage *MediaField `json:"featuredImage,omitempty"`
	PublishedDate *string     `json:"publishedDate"`
	Tags          []string    `json:"tags"`
	Author        *string     `json:"author"`
	ReadingTime   *int        `json:"readingTime"`
}

type GeneratedProfile struct {
	CVURL *string `json:"cvUrl"`
}

type ContactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Company *string `json:"company"`
	Subject string  `json:"subject"`
	Message string  `json:"message"`
}
