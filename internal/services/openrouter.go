package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/eduardolat/openroutergo"

	"github.com/job-scalper/internal/models"
)

const systemMessage = "You are an expert HR assistant specializing in job application analysis. You help candidates decide whether to apply for a position based on their CV and what is known about the posting. Always respond in valid JSON format."

var ErrEmptyResponse = errors.New("no response choices received from API")

type OpenRouterService struct {
	client *openroutergo.Client
	model  string
}

func NewOpenRouterService(model string, apiKey string) (*OpenRouterService, error) {
	return newOpenRouterService(model, apiKey, "")
}

// newOpenRouterService keeps the library default base URL when baseURL is empty.
func newOpenRouterService(model, apiKey, baseURL string) (*OpenRouterService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("openrouter api key is required")
	}
	builder := openroutergo.NewClient().WithAPIKey(apiKey)
	if baseURL != "" {
		builder = builder.WithBaseURL(baseURL)
	}
	client, err := builder.Create()
	if err != nil {
		return nil, fmt.Errorf("failed to create openrouter client: %w", err)
	}
	return &OpenRouterService{
		client: client,
		model:  model,
	}, nil
}

// AssessPosting asks the model whether the CV fits the posting.
func (s *OpenRouterService) AssessPosting(ctx context.Context, cv string, posting models.JobPosting) (*models.PostingAssessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	_, resp, err := s.client.
		NewChatCompletion().
		WithContext(ctx).
		WithModel(s.model).
		WithSystemMessage(systemMessage).
		WithUserMessage(buildAssessmentPrompt(cv, posting)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to execute completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	return parseAssessment(resp.Choices[0].Message.Content)
}

func buildAssessmentPrompt(cv string, posting models.JobPosting) string {
	return fmt.Sprintf(`Analyze the following CV against the job posting, then provide a recommendation following the schema below.
Only the posting title and its link are known; infer the role, seniority and technology from them.
	1) If there are missing skills, try to guess if they still match based on similar skills or experience in the cv.
	2) Be conservative with the confidence score when the title is vague.

CV:
%s

Job title:
%s

Job link:
%s

OUTPUT REQUIREMENTS:
- Return ONLY a single valid JSON object, no markdown, no backticks.
- Use this exact schema and key names:
{
  "recommendation": "apply" | "do_not_apply",
  "confidence_score": number,  // integer 0-100
  "matching_skills": [string],
  "missing_skills": [string],
  "summary": string
}`, cv, posting.Title, posting.Link)
}

// parseAssessment decodes the model output, tolerating a markdown code fence.
func parseAssessment(content string) (*models.PostingAssessment, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	var result models.PostingAssessment
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if result.Recommendation != "apply" && result.Recommendation != "do_not_apply" {
		return nil, fmt.Errorf("unexpected recommendation %q", result.Recommendation)
	}
	if result.ConfidenceScore < 0 {
		result.ConfidenceScore = 0
	} else if result.ConfidenceScore > 100 {
		result.ConfidenceScore = 100
	}
	return &result, nil
}
