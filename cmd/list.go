package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ucpcal/ucpcal/internal/calendar"
	"github.com/ucpcal/ucpcal/internal/codec"
)

var listDebug bool

var listCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "Print the events in a calendar file and exit",
	Long: `Print every event in a calendar file in the same form the interactive
view uses, then exit. Without a file the configured default is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listDebug, "debug", false, "Print one raw line per event instead")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	list, err := loadCalendar(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if listDebug {
		fmt.Fprint(out, list.String())
		return nil
	}

	if list.Len() == 0 {
		fmt.Fprintln(out, "No events found.")
		return nil
	}
	fmt.Fprint(out, codec.BuildSummary(list))
	return nil
}

// loadCalendar reads the file named by args or the config for the
// non-interactive commands. A truncated last record is reported but the
// events before it are kept.
func loadCalendar(args []string) (*calendar.List, error) {
	path := startFile(args)
	if path == "" {
		return nil, errors.New("no calendar file given and no default_file configured")
	}

	list := calendar.NewList()
	n, err := codec.Load(path, list)
	switch {
	case errors.Is(err, codec.ErrTruncated):
		logger.Warn().Err(err).Str("file", path).Msg("calendar ends mid-record")
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	case err != nil:
		return nil, err
	}

	if dropped := n - list.Len(); dropped > 0 {
		logger.Debug().Str("file", path).Int("dropped", dropped).Msg("duplicate event names dropped")
	}
	logger.Debug().Str("file", path).Int("events", list.Len()).Msg("calendar loaded")
	return list, nil
}
