package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/api/sheets/v4"

	"github.com/openlocal/places2sheets/places"
)

var exportCmd = &cobra.Command{
	Use:   "export <query>",
	Short: "Runs a Places text search and writes the results to a Google Sheets worksheet",
	Long: `Runs a Places API text search for the query, following the pagination tokens
until the result set is exhausted, enriches each result with the place details
and (where the details omit a location) geocoded coordinates, and writes the
results to a Google Sheet - a new spreadsheet titled as the query unless --url
names an existing one.`,
	Example: `  places2sheets export "coffee shop in Reno NV"
  places2sheets --debug export "commercial real estate agency in Roseville CA" \
                --share alice@example.com:reader \
                --notify \
                --file roseville.tsv`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var exportOptions = struct {
	url       string
	area      string
	file      string
	shares    []string
	notify    bool
	max       int
	noDetails bool
	noGeocode bool
}{
	area: "Sheet1!A1",
}

func init() {
	exportCmd.Flags().StringVar(&exportOptions.url, "url", "", "Writes into an existing spreadsheet instead of creating a new one")
	exportCmd.Flags().StringVar(&exportOptions.area, "range", exportOptions.area, "Spreadsheet range to write to e.g. 'Sheet1!A1'")
	exportCmd.Flags().StringVar(&exportOptions.file, "file", "", "Also writes the exported rows to a local TSV file")
	exportCmd.Flags().StringArrayVar(&exportOptions.shares, "share", nil, "Grant access as EMAIL:ROLE where ROLE is 'reader' or 'writer' (repeatable)")
	exportCmd.Flags().BoolVar(&exportOptions.notify, "notify", false, "Sends a notification email for each grant")
	exportCmd.Flags().IntVar(&exportOptions.max, "max", 0, "Caps the number of exported places (0 for no limit)")
	exportCmd.Flags().BoolVar(&exportOptions.noDetails, "no-details", false, "Skips the per-place details lookup")
	exportCmd.Flags().BoolVar(&exportOptions.noGeocode, "no-geocode", false, "Skips geocoding for places without coordinates")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(args[0])
	if query == "" {
		return fmt.Errorf("search query cannot be blank")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// ... validate the share list before any network traffic
	grants, err := parseGrants(exportOptions.shares)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	// ... fetch
	client := places.NewClient(cfg.APIKey, places.WithMaxResults(exportOptions.max))

	infof("Searching Places for '%s'", query)

	list, err := client.Search(ctx, query)
	if err != nil {
		return err
	}

	infof("Found %d results", len(list))

	if !exportOptions.noDetails {
		fetchDetails(ctx, client, list)
	}

	if !exportOptions.noGeocode {
		geocode(ctx, places.NewGeocoder(cfg.APIKey), list)
	}

	table := makeTable(list)

	// ... write
	httpClient, err := authorize(ctx, cfg.Credentials, SHEETS, DRIVE)
	if err != nil {
		return fmt.Errorf("authentication/authorization error (%v)", err)
	}

	google, err := newSheetsService(ctx, httpClient)
	if err != nil {
		return err
	}

	spreadsheet, err := targetSpreadsheet(ctx, google, query)
	if err != nil {
		return err
	}

	if err := write(ctx, google, spreadsheet, table); err != nil {
		return err
	}

	infof("Wrote %d rows to %s", len(table.records), spreadsheet.SpreadsheetId)

	// ... share
	if len(grants) > 0 {
		gdrive, err := newDriveService(ctx, httpClient)
		if err != nil {
			return err
		}

		if err := shareSpreadsheet(ctx, gdrive, spreadsheet.SpreadsheetId, grants, exportOptions.notify); err != nil {
			return err
		}
	}

	// ... local TSV copy
	if exportOptions.file != "" {
		if err := writeTSV(exportOptions.file, table); err != nil {
			return err
		}

		infof("Wrote TSV file %s", exportOptions.file)
	}

	fmt.Printf("%s\n", sheetURL(spreadsheet.SpreadsheetId))

	return nil
}

// fetchDetails overlays the details lookup onto each search result. A failed
// lookup keeps the search result fields so that every result still gets a row.
func fetchDetails(ctx context.Context, client *places.Client, list []places.Place) {
	for i, p := range list {
		if p.PlaceID == "" {
			continue
		}

		detail, err := client.Details(ctx, p.PlaceID)
		if err != nil {
			warnf("unable to fetch details for '%s' (%v)", p.Name, err)
			continue
		}

		list[i] = p.Merge(detail)

		debugf("fetched details (%d/%d) %s", i+1, len(list), list[i].Name)
	}
}

// geocode fills in missing coordinates from the Geocoding API. A miss leaves
// the coordinates absent and does not abort the run.
func geocode(ctx context.Context, geocoder *places.Geocoder, list []places.Place) {
	for i, p := range list {
		if p.Location != nil || p.Address == "" {
			continue
		}

		location, err := geocoder.Geocode(ctx, p.Address)
		if err != nil {
			if places.IsNoResults(err) {
				warnf("no geocoding match for '%s'", p.Address)
			} else {
				warnf("unable to geocode '%s' (%v)", p.Address, err)
			}

			continue
		}

		list[i].Location = &location
	}
}

// targetSpreadsheet opens the spreadsheet named by --url or creates a new one
// titled as the query.
func targetSpreadsheet(ctx context.Context, google *sheets.Service, query string) (*sheets.Spreadsheet, error) {
	if strings.TrimSpace(exportOptions.url) != "" {
		id, err := spreadsheetID(exportOptions.url)
		if err != nil {
			return nil, err
		}

		return getSpreadsheet(ctx, google, id)
	}

	infof("Creating new spreadsheet '%s'", query)

	return createSpreadsheet(ctx, google, query)
}

func write(ctx context.Context, google *sheets.Service, spreadsheet *sheets.Spreadsheet, table *table) error {
	area := exportOptions.area

	sheet, err := getSheet(spreadsheet, area)
	if err != nil {
		return err
	}

	// ... discard any prior content in the target range
	if err := clear(ctx, google, spreadsheet, []string{sheet.Properties.Title}); err != nil {
		return fmt.Errorf("unable to clear spreadsheet range (%v)", err)
	}

	rq := sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             []*sheets.ValueRange{table.valueRange(area)},
	}

	if _, err := google.Spreadsheets.Values.BatchUpdate(spreadsheet.SpreadsheetId, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to write to spreadsheet (%v)", err)
	}

	if err := formatHeader(ctx, google, spreadsheet, sheet.Properties.SheetId, len(table.header)); err != nil {
		warnf("unable to format header row (%v)", err)
	}

	return nil
}

func writeTSV(file string, table *table) error {
	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0770); err != nil {
			return err
		}
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}

	defer f.Close()

	if err := table.toTSV(f); err != nil {
		return fmt.Errorf("error creating TSV file (%v)", err)
	}

	return nil
}
