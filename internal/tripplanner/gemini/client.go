package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/easytravel/easytravel-server/internal/model"
)

var _ model.TripPlanner = (*Client)(nil)

// Client calls the generative language API to produce trip itineraries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
}

// NewClient creates a planner client. Fails if the API key is not configured.
func NewClient(baseURL, modelName, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini api key", model.ErrMisconfigured)
	}
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    baseURL,
		model:      modelName,
		apiKey:     apiKey,
	}, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// PlanTrip sends the itinerary prompt to the generateContent endpoint and
// returns the first candidate's text.
func (c *Client) PlanTrip(ctx context.Context, req model.TripPlanRequest) (string, error) {
	prompt := fmt.Sprintf(`You are a travel planner. Create a detailed %d-day itinerary for %s.
The user's interests: %s.
The output should be in a table format with three columns:
1. Day and Time
2. Activity
3. Details
`, req.Duration, req.Destination, req.Interests)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call planner: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("planner returned status %d", resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode planner response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("planner returned no candidates")
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}
