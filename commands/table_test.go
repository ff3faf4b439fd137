package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/sheets/v4"

	"github.com/openlocal/places2sheets/places"
)

func TestMakeTable(t *testing.T) {
	list := []places.Place{
		{
			PlaceID:      "ChIJ-001",
			Name:         "Hub Coffee Roasters",
			Address:      "727 Riverside Dr, Reno, NV 89503",
			Phone:        "+1 775-453-1911",
			Website:      "https://www.hubcoffeeroasters.com/",
			Types:        []string{"cafe", "food"},
			Rating:       4.7,
			RatingsTotal: 1250,
			Location:     &places.LatLng{Lat: 39.5261, Lng: -119.8193},
		},
		{
			PlaceID: "ChIJ-002",
			Name:    "The Coffee Bar",
			Address: "682 Mt Rose St, Reno, NV 89509",
		},
	}

	table := makeTable(list)

	require.Equal(t, columns, table.header)
	require.Len(t, table.records, len(list))

	assert.Equal(t, []string{
		"Hub Coffee Roasters",
		"727 Riverside Dr, Reno, NV 89503",
		"+1 775-453-1911",
		"https://www.hubcoffeeroasters.com/",
		"ChIJ-001",
		"cafe,food",
		"4.7",
		"1250",
		"39.5261",
		"-119.8193",
	}, table.records[0])
}

func TestMakeTableWithMissingCoordinates(t *testing.T) {
	list := []places.Place{
		{
			PlaceID: "ChIJ-002",
			Name:    "The Coffee Bar",
			Address: "682 Mt Rose St, Reno, NV 89509",
		},
	}

	table := makeTable(list)

	require.Len(t, table.records, 1)

	record := table.records[0]

	assert.Equal(t, "", record[8])
	assert.Equal(t, "", record[9])
}

func TestMakeTableWithNoPlaces(t *testing.T) {
	table := makeTable(nil)

	assert.Equal(t, columns, table.header)
	assert.Empty(t, table.records)
}

func TestTableValueRange(t *testing.T) {
	list := []places.Place{
		{PlaceID: "ChIJ-001", Name: "Hub Coffee Roasters"},
		{PlaceID: "ChIJ-002", Name: "The Coffee Bar"},
	}

	values := makeTable(list).valueRange("Sheet1!A1")

	require.Equal(t, "Sheet1!A1", values.Range)
	require.Len(t, values.Values, len(list)+1)

	assert.Equal(t, "Name", values.Values[0][0])
	assert.Equal(t, "The Coffee Bar", values.Values[2][0])
}

func TestTableToTSV(t *testing.T) {
	list := []places.Place{
		{
			PlaceID:  "ChIJ-001",
			Name:     "Hub Coffee Roasters",
			Address:  "727 Riverside Dr, Reno, NV 89503",
			Types:    []string{"cafe"},
			Location: &places.LatLng{Lat: 39.5261, Lng: -119.8193},
		},
	}

	expected := "Name\tAddress\tPhone\tWebsite\tPlace ID\tTypes\tRating\tRatings\tLatitude\tLongitude\n" +
		"Hub Coffee Roasters\t727 Riverside Dr, Reno, NV 89503\t\t\tChIJ-001\tcafe\t\t\t39.5261\t-119.8193\n"

	var b bytes.Buffer

	require.NoError(t, makeTable(list).toTSV(&b))
	assert.Equal(t, expected, b.String())
}

func TestSheetToTSV(t *testing.T) {
	data := sheets.ValueRange{
		Values: [][]any{
			{"Name", "Rating"},
			{"Hub Coffee Roasters", "4.7"},
		},
	}

	var b bytes.Buffer

	require.NoError(t, sheetToTSV(&b, &data))
	assert.Equal(t, "Name\tRating\nHub Coffee Roasters\t4.7\n", b.String())
}

func TestSheetToTSVWithEmptySheet(t *testing.T) {
	var b bytes.Buffer

	assert.Error(t, sheetToTSV(&b, &sheets.ValueRange{}))
}
