// Copyright 2026 openlocal.io. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package places2sheets exports Google Places search results to Google Sheets.

places2sheets runs a Places API text search for a free-form query, enriches each
result with the place details and (where the details omit a location) geocoded
coordinates, and writes the results to a Google Sheet which can optionally be
shared with a list of collaborators.

places2sheets supports the following commands:

  - export, to run a Places text search and write the results to a Google Sheets worksheet
  - share, to grant reader/writer access to an exported spreadsheet
  - get, to download an exported worksheet as a TSV file
  - version, to display the current version
*/
package places2sheets
