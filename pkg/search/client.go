package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Service executes hybrid queries against the document index.
type Service interface {
	Search(ctx context.Context, req Request) ([]Result, error)
}

// Client is a REST client for an Azure AI Search compatible index.
type Client struct {
	Endpoint   string
	APIKey     string
	IndexName  string
	APIVersion string
	HTTPClient *http.Client
}

// Ensure Client implements Service
var _ Service = &Client{}

func NewClient(endpoint, apiKey, indexName string) *Client {
	return &Client{
		Endpoint:   endpoint,
		APIKey:     apiKey,
		IndexName:  indexName,
		APIVersion: "2024-07-01",
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Search(ctx context.Context, req Request) ([]Result, error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"%s/indexes/%s/docs/search?api-version=%s",
		c.Endpoint, c.IndexName, c.APIVersion,
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", c.APIKey)

	res, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	bodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search index error, code %d, body %s", res.StatusCode, string(bodyBytes))
	}

	var searchRes searchResponse
	if err := json.Unmarshal(bodyBytes, &searchRes); err != nil {
		return nil, err
	}

	return searchRes.Value, nil
}
