package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/openlocal/places2sheets/places"
)

func fakeSheets(t *testing.T, handler http.HandlerFunc) *sheets.Service {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	google, err := sheets.NewService(context.Background(), option.WithEndpoint(srv.URL), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	return google
}

func TestCreateSpreadsheet(t *testing.T) {
	google := fakeSheets(t, func(w http.ResponseWriter, rq *http.Request) {
		assert.Equal(t, http.MethodPost, rq.Method)

		created := sheets.Spreadsheet{}
		assert.NoError(t, json.NewDecoder(rq.Body).Decode(&created))
		assert.Equal(t, "coffee shop in Reno NV", created.Properties.Title)

		fmt.Fprint(w, `{
          "spreadsheetId": "NEW-SPREADSHEET",
          "properties": { "title": "coffee shop in Reno NV" },
          "sheets": [ { "properties": { "sheetId": 0, "title": "Sheet1" } } ]
        }`)
	})

	spreadsheet, err := createSpreadsheet(context.Background(), google, "coffee shop in Reno NV")

	require.NoError(t, err)
	assert.Equal(t, "NEW-SPREADSHEET", spreadsheet.SpreadsheetId)
}

func TestGetSheet(t *testing.T) {
	spreadsheet := sheets.Spreadsheet{
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{SheetId: 100, Title: "Summary"}},
			{Properties: &sheets.SheetProperties{SheetId: 200, Title: "Sheet1"}},
		},
	}

	sheet, err := getSheet(&spreadsheet, "Sheet1!A1")

	require.NoError(t, err)
	assert.Equal(t, int64(200), sheet.Properties.SheetId)

	_, err = getSheet(&spreadsheet, "NoSuchSheet!A1")
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	cleared := false
	formatted := false

	var written *sheets.BatchUpdateValuesRequest

	google := fakeSheets(t, func(w http.ResponseWriter, rq *http.Request) {
		switch {
		case strings.HasSuffix(rq.URL.Path, "/values:batchClear"):
			cleared = true
			fmt.Fprint(w, `{}`)

		case strings.HasSuffix(rq.URL.Path, "/values:batchUpdate"):
			assert.True(t, cleared, "expected the range to be cleared before writing")

			rq2 := sheets.BatchUpdateValuesRequest{}
			assert.NoError(t, json.NewDecoder(rq.Body).Decode(&rq2))
			written = &rq2

			fmt.Fprint(w, `{}`)

		case strings.HasSuffix(rq.URL.Path, "/spreadsheets/SPREADSHEET-ID:batchUpdate"):
			formatted = true
			fmt.Fprint(w, `{}`)

		default:
			t.Errorf("unexpected request %s %s", rq.Method, rq.URL.Path)
		}
	})

	spreadsheet := sheets.Spreadsheet{
		SpreadsheetId: "SPREADSHEET-ID",
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{SheetId: 0, Title: "Sheet1"}},
		},
	}

	list := []places.Place{
		{PlaceID: "ChIJ-001", Name: "Hub Coffee Roasters"},
		{PlaceID: "ChIJ-002", Name: "The Coffee Bar"},
	}

	err := write(context.Background(), google, &spreadsheet, makeTable(list))

	require.NoError(t, err)
	require.NotNil(t, written)
	require.Len(t, written.Data, 1)

	assert.Equal(t, "RAW", written.ValueInputOption)

	// header row plus one row per place
	assert.Len(t, written.Data[0].Values, len(list)+1)
	assert.True(t, formatted)
}
