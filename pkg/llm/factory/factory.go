package factory

import (
	"ai-docassist-be/pkg/llm"
	"ai-docassist-be/pkg/llm/azureopenai"
	"ai-docassist-be/pkg/llm/ollama"
	"fmt"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "azure":
		if baseURL == "" || apiKey == "" {
			return nil, fmt.Errorf("azure LLM provider requires endpoint and api key")
		}
		return azureopenai.NewAzureOpenAIProvider(baseURL, apiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
