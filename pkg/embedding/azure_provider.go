package embedding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// AzureProvider implements EmbeddingProvider against an Azure OpenAI embeddings deployment
// (e.g., text-embedding-3-small).
type AzureProvider struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
}

func NewAzureProvider(endpoint, apiKey, deployment string) EmbeddingProvider {
	if deployment == "" {
		deployment = "text-embedding-3-small"
	}
	return &AzureProvider{
		Endpoint:   endpoint,
		APIKey:     apiKey,
		Deployment: deployment,
		APIVersion: "2024-02-15-preview",
	}
}

type azureEmbeddingRequest struct {
	Input string `json:"input"`
}

type azureEmbeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (p *AzureProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	// TaskType has no Azure equivalent; kept for interface compatibility

	reqBody := azureEmbeddingRequest{Input: text}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"%s/openai/deployments/%s/embeddings?api-version=%s",
		p.Endpoint, p.Deployment, p.APIVersion,
	)

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", p.APIKey)

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resByte, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from azure embedding response, code %d, body %s", res.StatusCode, string(resByte))
	}

	var azureRes azureEmbeddingResponse
	if err := json.Unmarshal(resByte, &azureRes); err != nil {
		return nil, err
	}

	if len(azureRes.Data) == 0 {
		return nil, fmt.Errorf("azure embedding returned no data")
	}

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: azureRes.Data[0].Embedding,
		},
	}, nil
}
