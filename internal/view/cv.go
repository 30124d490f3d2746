package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/portfolio/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

var cvTemplate = template.Must(template.ParseFS(templatesFS, "templates/cv.html"))

// PresentLabel 表示仍在进行中的结束日期
const PresentLabel = "Present"

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01",
	"2006/01/02",
	"January 2006",
	"Jan 2006",
	"2006",
}

type contactChip struct {
	Icon     template.HTML
	Text     string
	Href     string
	External bool
}

type experienceView struct {
	Position     string
	Company      string
	CompanyURL   string
	Location     string
	DateRange    string
	Description  []string
	Achievements []string
	Technologies []string
}

type cvDocument struct {
	HeadTitle   string
	FullName    string
	Title       string
	Contacts    []contactChip
	Summary     []string
	Skills      []string
	Experiences []experienceView
	GeneratedOn string
}

// RenderCV renders the standalone CV document. intro may be nil, in which case
// placeholder headings are used; the footer date comes from generatedAt.
func RenderCV(intro *model.Introduction, experiences []model.WorkExperience, generatedAt time.Time) (string, error) {
	doc := cvDocument{
		HeadTitle:   "Curriculum Vitae",
		FullName:    "Your Name",
		Title:       "Professional Title",
		GeneratedOn: generatedAt.Format("January 2, 2006"),
	}

	if intro != nil {
		doc.HeadTitle = fmt.Sprintf("%s - %s", intro.FullName, intro.Title)
		doc.FullName = intro.FullName
		doc.Title = intro.Title
		doc.Contacts = buildContacts(intro)
		doc.Summary = splitParagraphs(intro.Summary)
		doc.Skills = nonEmpty(intro.Skills)
	}

	doc.Experiences = make([]experienceView, 0, len(experiences))
	for _, exp := range experiences {
		doc.Experiences = append(doc.Experiences, buildExperience(exp))
	}

	var buf bytes.Buffer
	if err := cvTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("render cv: %w", err)
	}
	return buf.String(), nil
}

// FormatMonthYear renders a stored date as "March 2023". Absent or unparseable values
// read as Present.
func FormatMonthYear(value *string) string {
	if value == nil {
		return PresentLabel
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return PresentLabel
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC().Format("January 2006")
		}
	}
	return PresentLabel
}

func buildExperience(exp model.WorkExperience) experienceView {
	start := exp.StartDate
	end := PresentLabel
	if !exp.Current {
		end = FormatMonthYear(exp.EndDate)
	}

	view := experienceView{
		Position:     exp.Position,
		Company:      exp.Company,
		DateRange:    FormatMonthYear(&start) + " - " + end,
		Description:  splitParagraphs(exp.Description),
		Achievements: nonEmpty(exp.Achievements),
		Technologies: nonEmpty(exp.Technologies),
	}
	if exp.CompanyURL != nil {
		view.CompanyURL = *exp.CompanyURL
	}
	if exp.Location != nil {
		view.Location = *exp.Location
	}
	return view
}

func buildContacts(intro *model.Introduction) []contactChip {
	var chips []contactChip
	if intro.Email != "" {
		chips = append(chips, contactChip{Icon: contactIconSVG("email"), Text: intro.Email, Href: "mailto:" + intro.Email})
	}
	if value := deref(intro.Phone); value != "" {
		chips = append(chips, contactChip{Icon: contactIconSVG("phone"), Text: value})
	}
	if value := deref(intro.Location); value != "" {
		chips = append(chips, contactChip{Icon: contactIconSVG("location"), Text: value})
	}
	if value := deref(intro.Website); value != "" {
		chips = append(chips, contactChip{Icon: contactIconSVG("website"), Text: value, Href: value, External: true})
	}
	if value := deref(intro.Linkedin); value != "" {
		chips = append(chips, contactChip{Icon: contactIconSVG("linkedin"), Text: contactIconLookup["linkedin"].Label, Href: value, External: true})
	}
	if value := deref(intro.Github); value != "" {
		chips = append(chips, contactChip{Icon: contactIconSVG("github"), Text: contactIconLookup["github"].Label, Href: value, External: true})
	}
	return chips
}

// splitParagraphs keeps line breaks as paragraph breaks; empty text yields no paragraphs.
func splitParagraphs(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

func nonEmpty(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return values
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
