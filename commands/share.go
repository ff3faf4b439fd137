package commands

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Grants reader/writer access to an exported spreadsheet",
	Example: `  places2sheets share --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \
                      --share alice@example.com:reader \
                      --share bob@example.com:writer \
                      --notify`,
	RunE: runShare,
}

var shareOptions = struct {
	url    string
	shares []string
	notify bool
}{}

func init() {
	shareCmd.Flags().StringVar(&shareOptions.url, "url", "", "Spreadsheet URL")
	shareCmd.Flags().StringArrayVar(&shareOptions.shares, "share", nil, "Grant access as EMAIL:ROLE where ROLE is 'reader' or 'writer' (repeatable)")
	shareCmd.Flags().BoolVar(&shareOptions.notify, "notify", false, "Sends a notification email for each grant")

	rootCmd.AddCommand(shareCmd)
}

func runShare(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(shareOptions.url) == "" {
		return fmt.Errorf("--url is a required option")
	}

	if len(shareOptions.shares) == 0 {
		return fmt.Errorf("--share is a required option")
	}

	id, err := spreadsheetID(shareOptions.url)
	if err != nil {
		return err
	}

	grants, err := parseGrants(shareOptions.shares)
	if err != nil {
		return err
	}

	credentials, err := loadCredentials()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	client, err := authorize(ctx, credentials, DRIVE)
	if err != nil {
		return fmt.Errorf("authentication/authorization error (%v)", err)
	}

	gdrive, err := newDriveService(ctx, client)
	if err != nil {
		return err
	}

	return shareSpreadsheet(ctx, gdrive, id, grants, shareOptions.notify)
}

func newDriveService(ctx context.Context, client *http.Client) (*drive.Service, error) {
	gdrive, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create new Drive client (%v)", err)
	}

	return gdrive, nil
}

// grant is an (email, role) pair to be applied to an exported spreadsheet.
type grant struct {
	email string
	role  string
}

var emails = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// parseGrant validates an EMAIL:ROLE argument. The role must be 'reader' or
// 'writer'.
func parseGrant(s string) (grant, error) {
	email, role, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return grant{}, fmt.Errorf("invalid share '%s' - expected EMAIL:ROLE", s)
	}

	email = strings.TrimSpace(email)
	role = strings.ToLower(strings.TrimSpace(role))

	if !emails.MatchString(email) {
		return grant{}, fmt.Errorf("invalid share email '%s'", email)
	}

	if role != "reader" && role != "writer" {
		return grant{}, fmt.Errorf("invalid share role '%s' - expected 'reader' or 'writer'", role)
	}

	return grant{
		email: email,
		role:  role,
	}, nil
}

func parseGrants(list []string) ([]grant, error) {
	grants := make([]grant, 0, len(list))

	for _, s := range list {
		g, err := parseGrant(s)
		if err != nil {
			return nil, err
		}

		grants = append(grants, g)
	}

	return grants, nil
}

// shareSpreadsheet issues one Drive permission per grant. Grants are applied
// independently - a failed grant is reported and does not abort the remainder.
func shareSpreadsheet(ctx context.Context, gdrive *drive.Service, fileID string, grants []grant, notify bool) error {
	failed := 0

	for _, g := range grants {
		if g.role != "reader" && g.role != "writer" {
			warnf("skipping share with %s - invalid role '%s'", g.email, g.role)
			failed++
			continue
		}

		permission := drive.Permission{
			Type:         "user",
			Role:         g.role,
			EmailAddress: g.email,
		}

		call := gdrive.Permissions.Create(fileID, &permission).SendNotificationEmail(notify).Fields("id")

		if _, err := call.Context(ctx).Do(); err != nil {
			warnf("unable to share with %s (%v)", g.email, err)
			failed++
			continue
		}

		infof("Shared spreadsheet with %s as %s", g.email, g.role)
	}

	if failed > 0 {
		return fmt.Errorf("failed to share spreadsheet with %d of %d recipients", failed, len(grants))
	}

	return nil
}
