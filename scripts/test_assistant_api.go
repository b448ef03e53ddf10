// Manual smoke test against a running server.
// Usage: API_TOKEN=<jwt> go run ./scripts/test_assistant_api.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{} // No timeout, LLM calls can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	token := os.Getenv("API_TOKEN")

	color.Cyan("🚀 Starting Assistant API Smoke Test\n")

	queries := []string{
		"hi",
		"what's our wellness policy",
		"give me project numbers from the past 4 years",
		"tell me about project 224002",
		"what's the budget for this project?",
	}

	sessionID := "smoke-test-session"

	for i, q := range queries {
		color.Yellow("\n[%d] Ask: %s", i+1, q)
		resp, body, err := sendRequest("POST", "/assistant/v1/ask", token, map[string]interface{}{
			"session_id": sessionID,
			"query":      q,
		})
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
		color.Green("Status: %s", resp.Status)
		var parsed map[string]interface{}
		json.Unmarshal(body, &parsed)
		prettyPrint(parsed)
	}

	color.Yellow("\n[6] History")
	resp, body, err := sendRequest("GET", "/assistant/v1/history/"+sessionID, token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var parsed map[string]interface{}
	json.Unmarshal(body, &parsed)
	prettyPrint(parsed)

	color.Cyan("\n✅ Done")
}
