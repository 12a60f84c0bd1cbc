package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiService implements AIService on top of Google's Gemini API. Multiple
// API keys can be supplied; on a failed call the service rotates to the next
// key and retries once.
type GeminiService struct {
	apiKeys    []string
	currentKey int
	client     *genai.Client
	modelName  string
	mu         sync.Mutex
}

func NewGeminiService(apiKeys []string, modelName string) (*GeminiService, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("no API keys provided")
	}

	service := &GeminiService{
		apiKeys:    apiKeys,
		currentKey: 0,
		modelName:  modelName,
	}
	if err := service.initClient(); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *GeminiService) initClient() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(s.apiKeys[s.currentKey]))
	if err != nil {
		return err
	}
	s.client = client
	return nil
}

func (s *GeminiService) rotateAPIKey() error {
	s.mu.Lock()
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	if err := s.client.Close(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	return s.initClient()
}

func (s *GeminiService) GenerateVisionJSON(ctx context.Context, prompt string, pages [][]byte) (string, error) {
	parts := make([]genai.Part, 0, len(pages)+1)
	parts = append(parts, genai.Text(prompt))
	for _, page := range pages {
		parts = append(parts, genai.ImageData("png", page))
	}
	return s.generate(ctx, func(model *genai.GenerativeModel) {
		model.SetTemperature(0)
		model.ResponseMIMEType = "application/json"
	}, parts...)
}

func (s *GeminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	return s.generate(ctx, func(model *genai.GenerativeModel) {
		model.SetTemperature(temperature)
	}, genai.Text(prompt))
}

func (s *GeminiService) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return s.generate(ctx, func(model *genai.GenerativeModel) {
		model.SetTemperature(0)
		model.ResponseMIMEType = "application/json"
	}, genai.Text(prompt))
}

func (s *GeminiService) generate(ctx context.Context, configure func(*genai.GenerativeModel), parts ...genai.Part) (string, error) {
	model := s.client.GenerativeModel(s.modelName)
	configure(model)

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		// Try rotating API key if there's an error
		if err := s.rotateAPIKey(); err != nil {
			return "", err
		}
		model = s.client.GenerativeModel(s.modelName)
		configure(model)
		resp, err = model.GenerateContent(ctx, parts...)
		if err != nil {
			return "", err
		}
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("no response generated")
	}

	content := ""
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					content += string(text)
				}
			}
		}
	}
	return content, nil
}
