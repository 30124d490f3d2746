package cli

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/service"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo content into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := initDatabase(cfg); err != nil {
			return err
		}
		return seedDemoContent(service.NewEditorService(db.DB, nil), cmd.OutOrStdout())
	},
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(seedCmd)
}

func strPtr(value string) *string { return &value }

// seedDemoContent 生成演示数据，已有内容时跳过
func seedDemoContent(editor *service.EditorService, out io.Writer) error {
	var count int64
	if err := db.DB.Model(&db.Introduction{}).Count(&count).Error; err != nil {
		return errors.Wrap(err, "count introductions")
	}
	if count > 0 {
		fmt.Fprintln(out, "content already present, skipping")
		return nil
	}

	if _, err := editor.CreateIntroduction(service.IntroductionInput{
		FullName: "Alex Morgan",
		Title:    "Senior Backend Engineer",
		Email:    "alex@example.com",
		Location: strPtr("Berlin, Germany"),
		Website:  strPtr("https://alex.example.com"),
		Github:   strPtr("https://github.com/alex-example"),
		Summary:  "Backend engineer focused on APIs and data pipelines.\nEnjoys turning vague requirements into boring, reliable systems.",
		Skills:   []string{"Go", "PostgreSQL", "Kubernetes", "AWS"},
	}); err != nil {
		return errors.Wrap(err, "seed introduction")
	}

	experiences := []service.WorkExperienceInput{
		{
			Company:      "Northwind Labs",
			Position:     "Senior Backend Engineer",
			Location:     strPtr("Remote"),
			StartDate:    "2021-04-01",
			Current:      true,
			Description:  "Owns the billing and invoicing services.",
			Achievements: []string{"Cut invoice generation time from hours to minutes", "Led the move to event-driven reconciliation"},
			Technologies: []string{"Go", "PostgreSQL", "Kafka"},
			CompanyURL:   strPtr("https://northwind.example.com"),
		},
		{
			Company:      "Contoso",
			Position:     "Software Engineer",
			StartDate:    "2017-09-01",
			EndDate:      strPtr("2021-03-31"),
			Description:  "Built internal tooling and REST APIs.",
			Technologies: []string{"Python", "Go"},
		},
	}
	for _, input := range experiences {
		if _, err := editor.CreateWorkExperience(input); err != nil {
			return errors.Wrapf(err, "seed work experience %s", input.Company)
		}
	}

	if _, err := editor.CreateBlog(service.BlogInput{
		Title:       "Hello, world",
		Slug:        "hello-world",
		Description: "First post on the new site.",
		Content:     "# Hello\n\nThis portfolio is backed by a small Go API.",
		Tags:        []string{"meta"},
		Author:      strPtr("Alex Morgan"),
	}); err != nil {
		return errors.Wrap(err, "seed blog")
	}

	fmt.Fprintln(out, "demo content created: 1 introduction, 2 work experiences, 1 blog")
	return nil
}
