package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/postplannerhq/postplanner/internal/scoring"
	"github.com/postplannerhq/postplanner/internal/transfer"
)

// GenerationService fronts the configured AI providers. Model selection:
// a request naming a provider uses that provider only; an empty model walks
// the providers in configuration order and takes the first success.
type GenerationService interface {
	Generate(ctx context.Context, model string, req *transfer.GenerationRequest) (*transfer.GenerationResult, error)
	GenerateAll(ctx context.Context, req *transfer.GenerationRequest) ([]*transfer.GenerationResult, error)
	Variation(ctx context.Context, req *transfer.VariationRequest) (*transfer.GenerationResult, error)
	Improve(ctx context.Context, req *transfer.ImproveRequest) (*transfer.GenerationResult, error)
	Hashtags(ctx context.Context, req *transfer.HashtagsRequest) ([]string, error)
	Analyze(req *transfer.AnalyzeRequest) (*scoring.EngagementScore, error)
}

type generationService struct {
	providers []Provider
	scorer    *scoring.Scorer
}

// NewGenerationService wires the provider chain. Order matters: the first
// provider is the fallback chain's primary.
func NewGenerationService(providers ...Provider) GenerationService {
	return &generationService{
		providers: providers,
		scorer:    scoring.NewScorer(),
	}
}

func (s *generationService) Generate(ctx context.Context, model string, req *transfer.GenerationRequest) (*transfer.GenerationResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is required", ErrValidation)
	}

	if model != "" {
		provider := s.find(model)
		if provider == nil {
			return nil, fmt.Errorf("%w: unknown model %q", ErrValidation, model)
		}
		return provider.Generate(ctx, req)
	}

	if len(s.providers) == 0 {
		return nil, ErrGenerationUnavailable
	}

	// Fallback walks each provider once, no retries within a provider.
	var lastErr error
	for _, provider := range s.providers {
		result, err := provider.Generate(ctx, req)
		if err == nil {
			return result, nil
		}
		slog.Info(err.Error())
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %v", ErrGenerationUnavailable, lastErr)
}

// GenerateAll asks every configured provider and returns the successes.
// Individual failures are dropped from the result; only a clean sweep of
// failures is an error.
func (s *generationService) GenerateAll(ctx context.Context, req *transfer.GenerationRequest) ([]*transfer.GenerationResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is required", ErrValidation)
	}

	var results []*transfer.GenerationResult
	for _, provider := range s.providers {
		result, err := provider.Generate(ctx, req)
		if err != nil {
			slog.Info(err.Error())
			continue
		}
		results = append(results, result)
	}
	if len(results) == 0 {
		return nil, ErrGenerationUnavailable
	}
	return results, nil
}

func (s *generationService) find(model string) Provider {
	for _, provider := range s.providers {
		if provider.Name() == model {
			return provider
		}
	}
	return nil
}

func (s *generationService) Variation(ctx context.Context, req *transfer.VariationRequest) (*transfer.GenerationResult, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	tone := req.Tone
	if tone == "" {
		tone = "casual"
	}
	prompt := fmt.Sprintf("Rewrite this social media post in a %s tone, keeping the same core message:\n\n%s", tone, req.Content)
	return s.Generate(ctx, "", &transfer.GenerationRequest{Prompt: prompt})
}

func (s *generationService) Improve(ctx context.Context, req *transfer.ImproveRequest) (*transfer.GenerationResult, error) {
	if strings.TrimSpace(req.Caption) == "" {
		return nil, fmt.Errorf("%w: caption is required", ErrValidation)
	}

	prompt := fmt.Sprintf("Improve this social media caption for engagement. Keep its meaning, tighten the wording, and add a call to action if one is missing:\n\n%s", req.Caption)
	return s.Generate(ctx, "", &transfer.GenerationRequest{Prompt: prompt})
}

func (s *generationService) Hashtags(ctx context.Context, req *transfer.HashtagsRequest) ([]string, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	count := req.Count
	if count <= 0 || count > 30 {
		count = 10
	}
	prompt := fmt.Sprintf("Suggest %d relevant hashtags for this social media post. Reply with the hashtags only, separated by spaces:\n\n%s", count, req.Content)

	result, err := s.Generate(ctx, "", &transfer.GenerationRequest{Prompt: prompt, MaxTokens: 200})
	if err != nil {
		return nil, err
	}

	var tags []string
	for _, field := range strings.Fields(result.Content) {
		field = strings.TrimFunc(field, func(r rune) bool { return r == ',' || r == '.' })
		if strings.HasPrefix(field, "#") && len(field) > 1 {
			tags = append(tags, field)
		}
		if len(tags) == count {
			break
		}
	}
	return tags, nil
}

func (s *generationService) Analyze(req *transfer.AnalyzeRequest) (*scoring.EngagementScore, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}
	score := s.scorer.Score(req.Content)
	return &score, nil
}
