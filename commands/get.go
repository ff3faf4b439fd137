package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Downloads an exported worksheet to a local TSV file",
	Example: `  places2sheets get --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \
                    --range "Sheet1!A1:J" \
                    --file "places.tsv"`,
	RunE: runGet,
}

var getOptions = struct {
	url  string
	area string
	file string
}{
	area: "Sheet1!A1:J",
	file: time.Now().Format("places 2006-01-02T150405.tsv"),
}

func init() {
	getCmd.Flags().StringVar(&getOptions.url, "url", "", "Spreadsheet URL")
	getCmd.Flags().StringVar(&getOptions.area, "range", getOptions.area, "Spreadsheet range e.g. 'Sheet1!A1:J'")
	getCmd.Flags().StringVar(&getOptions.file, "file", getOptions.file, "TSV file name. Defaults to 'places <yyyy-mm-dd HHmmss>.tsv'")

	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(getOptions.url) == "" {
		return fmt.Errorf("--url is a required option")
	}

	if strings.TrimSpace(getOptions.area) == "" {
		return fmt.Errorf("--range is a required option")
	}

	id, err := spreadsheetID(getOptions.url)
	if err != nil {
		return err
	}

	debugf("spreadsheet - ID:%s  range:%s", id, getOptions.area)

	credentials, err := loadCredentials()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	client, err := authorize(ctx, credentials, SHEETS)
	if err != nil {
		return fmt.Errorf("authentication/authorization error (%v)", err)
	}

	google, err := newSheetsService(ctx, client)
	if err != nil {
		return err
	}

	response, err := google.Spreadsheets.Values.Get(id, getOptions.area).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to retrieve data from sheet (%v)", err)
	}

	if len(response.Values) == 0 {
		return fmt.Errorf("no data in spreadsheet/range")
	}

	tmp, err := os.CreateTemp(os.TempDir(), "places")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := sheetToTSV(tmp, response); err != nil {
		return fmt.Errorf("error creating TSV file (%v)", err)
	}

	tmp.Close()

	dir := filepath.Dir(getOptions.file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), getOptions.file); err != nil {
		return err
	}

	infof("Retrieved worksheet to file %s", getOptions.file)

	return nil
}
