package commands

import (
	"fmt"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const APP = "places2sheets"
const VERSION = "v0.1.0"

var options = struct {
	debug bool
}{
	debug: false,
}

var rootCmd = &cobra.Command{
	Use:   APP,
	Short: "Exports Google Places search results to Google Sheets",
	Long: `Runs a Google Places text search, enriches the results with place details and
geocoded coordinates, and exports them to a Google Sheet that can optionally be
shared with a list of collaborators.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if options.debug {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&options.debug, "debug", options.debug, "Displays internal information for diagnosing errors")
}

// Execute parses the command line and runs the selected command.
func Execute() error {
	return rootCmd.Execute()
}

var spreadsheetURL = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`)
var spreadsheetIDs = regexp.MustCompile(`^[a-zA-Z0-9-_]+$`)

// spreadsheetID extracts the spreadsheet ID from a docs.google.com URL. A bare
// spreadsheet ID is accepted as-is.
func spreadsheetID(u string) (string, error) {
	u = strings.TrimSpace(u)

	if match := spreadsheetURL.FindStringSubmatch(u); len(match) > 1 && match[1] != "" {
		return match[1], nil
	}

	if spreadsheetIDs.MatchString(u) {
		return u, nil
	}

	return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
}

func sheetURL(id string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", id)
}

func debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

func infof(format string, args ...any) {
	log.Infof(format, args...)
}

func warnf(format string, args ...any) {
	log.Warnf(format, args...)
}
