package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingoz/internal/content"
)

var importCmd = &cobra.Command{
	Use:   "import <sheet.xlsx> <course.json>",
	Short: "Convert a spreadsheet into a course bundle",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, dst := args[0], args[1]
		id, _ := cmd.Flags().GetString("id")
		title, _ := cmd.Flags().GetString("title")
		ver, _ := cmd.Flags().GetString("version")
		if id == "" {
			id = strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		}

		res, err := content.ImportXLSX(content.ImportConfig{
			FilePath: src,
			CourseID: id,
			Title:    title,
			Version:  ver,
		})
		if err != nil {
			return err
		}
		for _, msg := range res.Errors {
			fmt.Fprintln(cmd.ErrOrStderr(), "skipped:", msg)
		}

		f, err := os.Create(dst)
		if err != nil {
			return fmt.Errorf("create %s: %w", dst, err)
		}
		if err := content.Save(f, res.Course); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", dst, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rows (%d skipped) into %s: %d units\n",
			res.Rows, res.Skipped, dst, len(res.Course.Units))
		return nil
	},
}

func init() {
	importCmd.Flags().String("id", "", "Course ID (default: spreadsheet file name)")
	importCmd.Flags().String("title", "", "Course title")
	importCmd.Flags().String("version", "", "Course bundle version (default v1.0.0)")
}
