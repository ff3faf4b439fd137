package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"google.golang.org/api/sheets/v4"

	"github.com/openlocal/places2sheets/places"
)

// columns is the header row of an exported sheet, in write order.
var columns = []string{
	"Name",
	"Address",
	"Phone",
	"Website",
	"Place ID",
	"Types",
	"Rating",
	"Ratings",
	"Latitude",
	"Longitude",
}

type table struct {
	header  []string
	records [][]string
}

// makeTable builds the export table with a header row and one record per
// place. Fields without a value are left as empty cells.
func makeTable(list []places.Place) *table {
	records := make([][]string, 0, len(list))

	for _, p := range list {
		lat := ""
		lng := ""
		if p.Location != nil {
			lat = strconv.FormatFloat(p.Location.Lat, 'f', -1, 64)
			lng = strconv.FormatFloat(p.Location.Lng, 'f', -1, 64)
		}

		rating := ""
		if p.Rating != 0 {
			rating = strconv.FormatFloat(p.Rating, 'f', 1, 64)
		}

		ratings := ""
		if p.RatingsTotal != 0 {
			ratings = strconv.Itoa(p.RatingsTotal)
		}

		records = append(records, []string{
			p.Name,
			p.Address,
			p.Phone,
			p.Website,
			p.PlaceID,
			p.Category(),
			rating,
			ratings,
			lat,
			lng,
		})
	}

	return &table{
		header:  columns,
		records: records,
	}
}

// valueRange packs the table into a single ValueRange anchored at the top left
// of the target range.
func (t *table) valueRange(area string) *sheets.ValueRange {
	values := make([][]any, 0, len(t.records)+1)

	header := make([]any, len(t.header))
	for i, v := range t.header {
		header[i] = v
	}

	values = append(values, header)

	for _, record := range t.records {
		row := make([]any, len(record))
		for i, v := range record {
			row[i] = v
		}

		values = append(values, row)
	}

	return &sheets.ValueRange{
		Range:  area,
		Values: values,
	}
}

// toTSV writes the table as tab-separated values.
func (t *table) toTSV(f io.Writer) error {
	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(t.header); err != nil {
		return err
	}

	for _, record := range t.records {
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

// sheetToTSV writes a retrieved sheet range as tab-separated values.
func sheetToTSV(f io.Writer, data *sheets.ValueRange) error {
	if len(data.Values) == 0 {
		return fmt.Errorf("empty sheet")
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	for _, row := range data.Values {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = fmt.Sprintf("%v", v)
		}

		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}
