package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/portfolio/internal/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var outFile string

//nolint:gochecknoglobals // Cobra boilerplate
var generateCmd = &cobra.Command{
	Use:   "generate-cv",
	Short: "Render the CV once and publish it when storage is configured",
	Long: `Render the CV document from the current database content.

When CV_STORAGE is set the document is uploaded and the generated profile
pointer is updated, exactly as the generate endpoint does.

Example:
  portfolio generate-cv --out cv.html`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return runGenerate(ctx, cmd.OutOrStdout())
	},
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	generateCmd.Flags().StringVarP(&outFile, "out", "o", "", "write the HTML to this file instead of stdout")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(ctx context.Context, stdout io.Writer) error {
	cfg := config.Load()
	if err := initDatabase(cfg); err != nil {
		return err
	}

	generator, _, err := newGenerator(ctx, cfg)
	if err != nil {
		return err
	}

	result, err := generator.Generate(ctx)
	if err != nil {
		return errors.Wrap(err, "generate cv")
	}

	if outFile == "" {
		if _, err := io.WriteString(stdout, result.HTML); err != nil {
			return errors.Wrap(err, "write html")
		}
	} else if err := os.WriteFile(outFile, []byte(result.HTML), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", outFile)
	}

	// 输出到 stdout 时链接写到 stderr，避免混入 HTML
	info := os.Stderr
	if result.PublicURL != nil {
		fmt.Fprintf(info, "published: %s\n", *result.PublicURL)
	}
	if result.PDFURL != nil {
		fmt.Fprintf(info, "pdf: %s\n", *result.PDFURL)
	}
	return nil
}
