package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2/google"
)

const (
	SHEETS = "https://www.googleapis.com/auth/spreadsheets"
	DRIVE  = "https://www.googleapis.com/auth/drive"
)

// authorize creates an HTTP client authenticated as the service account in the
// credentials file, scoped to the listed OAuth2 scopes.
func authorize(ctx context.Context, credentials string, scopes ...string) (*http.Client, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account credentials (%v)", err)
	}

	config, err := google.JWTConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("invalid service account credentials (%v)", err)
	}

	return config.Client(ctx), nil
}
