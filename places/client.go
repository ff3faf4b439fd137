package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	textSearchURL = "https://maps.googleapis.com/maps/api/place/textsearch/json"
	detailsURL    = "https://maps.googleapis.com/maps/api/place/details/json"
)

// detailFields is the field mask requested for a place details lookup.
var detailFields = strings.Join([]string{
	"name",
	"formatted_address",
	"international_phone_number",
	"website",
	"place_id",
	"types",
	"rating",
	"user_ratings_total",
	"geometry",
}, ",")

// Client is a Google Places API client for text searches and place details
// lookups. Outbound requests are paced by a token bucket rate limiter.
type Client struct {
	apiKey     string
	client     *http.Client
	limiter    *rate.Limiter
	searchURL  string
	detailsURL string
	pageDelay  time.Duration
	maxResults int
	retries    int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithEndpoint rebases the text search and details URLs onto base.
func WithEndpoint(base string) Option {
	return func(c *Client) {
		c.searchURL = strings.TrimSuffix(base, "/") + "/textsearch/json"
		c.detailsURL = strings.TrimSuffix(base, "/") + "/details/json"
	}
}

// WithMaxResults caps the number of places returned by a search. Zero means
// unlimited.
func WithMaxResults(n int) Option {
	return func(c *Client) {
		c.maxResults = n
	}
}

// WithPageDelay sets the pause before a freshly issued page token is used.
// Page tokens are not valid immediately after they are returned.
func WithPageDelay(d time.Duration) Option {
	return func(c *Client) {
		c.pageDelay = d
	}
}

// WithRetries sets the retry budget for transient failures.
func WithRetries(n int) Option {
	return func(c *Client) {
		c.retries = n
	}
}

// NewClient creates a Places API client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := Client{
		apiKey:     apiKey,
		client:     &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(10), 5),
		searchURL:  textSearchURL,
		detailsURL: detailsURL,
		pageDelay:  2 * time.Second,
		maxResults: 0,
		retries:    3,
	}

	for _, opt := range opts {
		opt(&c)
	}

	return &c
}

// Search runs a text search for the query and follows the pagination tokens
// until the result set is exhausted or the configured maximum is reached.
func (c *Client) Search(ctx context.Context, query string) ([]Place, error) {
	places := []Place{}
	token := ""
	page := 0

	for {
		params := url.Values{}
		if token == "" {
			params.Set("query", query)
		} else {
			params.Set("pagetoken", token)

			// pagination tokens need a short pause before they become valid
			select {
			case <-time.After(c.pageDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		params.Set("key", c.apiKey)

		response, err := c.search(ctx, params, token != "")
		if err != nil {
			return nil, err
		}

		page++

		log.WithField("page", page).Debugf("text search returned %d results", len(response.Results))

		for _, result := range response.Results {
			places = append(places, result.place())

			if c.maxResults > 0 && len(places) >= c.maxResults {
				return places[:c.maxResults], nil
			}
		}

		if token = response.NextPageToken; token == "" {
			break
		}
	}

	return places, nil
}

// Details retrieves the full details for a place ID.
func (c *Client) Details(ctx context.Context, placeID string) (Place, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", detailFields)
	params.Set("key", c.apiKey)

	response := detailsResponse{}
	if err := c.get(ctx, c.detailsURL, params, &response); err != nil {
		return Place{}, err
	}

	if response.Status != "OK" {
		return Place{}, fmt.Errorf("place details lookup failed: %w", statusError(response.Status, response.ErrorMessage))
	}

	return response.Result.place(), nil
}

// search fetches one page of text search results, retrying not-yet-valid page
// tokens within the retry budget.
func (c *Client) search(ctx context.Context, params url.Values, paged bool) (*searchResponse, error) {
	var err error

	for attempt := 0; attempt < c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.pageDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		response := searchResponse{}
		if err = c.get(ctx, c.searchURL, params, &response); err != nil {
			continue
		}

		switch response.Status {
		case "OK", "ZERO_RESULTS":
			return &response, nil

		case "INVALID_REQUEST":
			// a paged request with a token that has not warmed up yet
			if paged {
				err = statusError(response.Status, response.ErrorMessage)
				continue
			}

			return nil, fmt.Errorf("text search failed: %w", statusError(response.Status, response.ErrorMessage))

		default:
			return nil, fmt.Errorf("text search failed: %w", statusError(response.Status, response.ErrorMessage))
		}
	}

	return nil, fmt.Errorf("text search failed after %d attempts (%v)", c.retries, err)
}

// get issues a rate limited GET and decodes the JSON response body, retrying
// 5xx responses within the retry budget.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, response any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	rq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return err
	}

	reply, err := c.client.Do(rq)
	if err != nil {
		return fmt.Errorf("request failed (%v)", err)
	}

	defer reply.Body.Close()

	if reply.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected HTTP status %v", reply.StatusCode)
	}

	if err := json.NewDecoder(reply.Body).Decode(response); err != nil {
		return fmt.Errorf("invalid response (%v)", err)
	}

	return nil
}

type searchResponse struct {
	Status        string         `json:"status"`
	ErrorMessage  string         `json:"error_message"`
	NextPageToken string         `json:"next_page_token"`
	Results       []searchResult `json:"results"`
}

type detailsResponse struct {
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message"`
	Result       searchResult `json:"result"`
}

type searchResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Phone            string   `json:"international_phone_number"`
	Website          string   `json:"website"`
	Types            []string `json:"types"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	Geometry         *struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

func (r searchResult) place() Place {
	p := Place{
		PlaceID:      r.PlaceID,
		Name:         r.Name,
		Address:      r.FormattedAddress,
		Phone:        r.Phone,
		Website:      r.Website,
		Types:        r.Types,
		Rating:       r.Rating,
		RatingsTotal: r.UserRatingsTotal,
	}

	if r.Geometry != nil {
		p.Location = &LatLng{
			Lat: r.Geometry.Location.Lat,
			Lng: r.Geometry.Location.Lng,
		}
	}

	return p
}
