package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ucpcal/ucpcal/internal/calendar"
	"github.com/ucpcal/ucpcal/internal/codec"
	"github.com/ucpcal/ucpcal/internal/ics"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write a calendar file as iCalendar",
	Long: `Convert a calendar file to an iCalendar (.ics) document that other
calendar programs can import. Events with an impossible date are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <ics-file> [file]",
	Short: "Add the events of an iCalendar file to a calendar file",
	Long: `Read the VEVENTs of an iCalendar (.ics) document and append them to a
calendar file, which is created if missing. Events whose name is already
in the calendar are left alone.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: standard output)")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	list, err := loadCalendar(args)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOutput, err)
		}
		defer f.Close()
		w = f
	}

	n, err := ics.Export(w, list, time.Now())
	if err != nil {
		return err
	}
	if skipped := list.Len() - n; skipped > 0 {
		fmt.Fprintf(os.Stderr, "Skipped %d event(s) with an invalid date\n", skipped)
	}
	logger.Info().Int("events", n).Str("output", exportOutput).Msg("calendar exported")
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	path := startFile(args[1:])
	if path == "" {
		return errors.New("no calendar file given and no default_file configured")
	}

	src, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer src.Close()

	list, err := loadCalendar([]string{path})
	switch {
	case errors.Is(err, fs.ErrNotExist):
		list = calendar.NewList()
	case err != nil:
		return err
	}

	n, err := ics.Import(src, list)
	if err != nil {
		return err
	}
	if err := codec.Save(path, list); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d event(s) into %s\n", n, path)
	logger.Info().Int("events", n).Str("file", path).Msg("calendar imported")
	return nil
}
