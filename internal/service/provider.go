package service

import (
	"context"
	"net/http"
	"time"

	"github.com/postplannerhq/postplanner/internal/transfer"
)

const (
	defaultSystemPrompt = "You are a creative social media content creator."
	defaultTemperature  = 0.8
	defaultMaxTokens    = 600
)

// Provider is one upstream text-generation API.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req *transfer.GenerationRequest) (*transfer.GenerationResult, error)
}

func newProviderClient() *http.Client {
	return &http.Client{Timeout: 60 * time.Second}
}

// applyDefaults fills the request fields callers usually leave zero.
func applyDefaults(req *transfer.GenerationRequest) *transfer.GenerationRequest {
	out := *req
	if out.SystemPrompt == "" {
		out.SystemPrompt = defaultSystemPrompt
	}
	if out.Temperature == 0 {
		out.Temperature = defaultTemperature
	}
	if out.MaxTokens == 0 {
		out.MaxTokens = defaultMaxTokens
	}
	return &out
}
