package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/omniconnect-api/internal/config"
	"github.com/vfg2006/omniconnect-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Summarizer gera resumos estruturados por IA a partir dos dados
// normalizados dos provedores
type Summarizer interface {
	IsConfigured() bool
	GetBusinessInsights(ctx context.Context, data interface{}) ([]domain.BusinessInsight, error)
	GetMarketingStrategy(ctx context.Context, insights []domain.AdSetInsight) (*domain.AdStrategy, error)
}

// GeminiIntegrator chama a API generateContent do Gemini pedindo JSON
// validado por schema. Falhas degradam para resultado vazio: o resumo de IA
// nunca derruba o dashboard.
type GeminiIntegrator struct {
	Cfg   *config.Config
	resty *resty.Client
}

func New(cfg *config.Config) Summarizer {
	return &GeminiIntegrator{
		Cfg:   cfg,
		resty: resty.New().SetTimeout(60 * time.Second),
	}
}

// IsConfigured informa se há uma chave de API do Gemini definida
func (s *GeminiIntegrator) IsConfigured() bool {
	return s.Cfg.Gemini.APIKey != ""
}

type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string      `json:"responseMimeType,omitempty"`
	ResponseSchema   interface{} `json:"responseSchema,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

var businessInsightSchema = map[string]interface{}{
	"type": "ARRAY",
	"items": map[string]interface{}{
		"type": "OBJECT",
		"properties": map[string]interface{}{
			"title":          map[string]interface{}{"type": "STRING"},
			"description":    map[string]interface{}{"type": "STRING"},
			"recommendation": map[string]interface{}{"type": "STRING"},
			"impact": map[string]interface{}{
				"type":        "STRING",
				"description": "The expected business impact level: 'high', 'medium', or 'low'.",
			},
		},
		"required": []string{"title", "description", "recommendation", "impact"},
	},
}

var adStrategySchema = map[string]interface{}{
	"type": "OBJECT",
	"properties": map[string]interface{}{
		"winner":    map[string]interface{}{"type": "STRING"},
		"reasoning": map[string]interface{}{"type": "STRING"},
		"tacticalAdvice": map[string]interface{}{
			"type":  "ARRAY",
			"items": map[string]interface{}{"type": "STRING"},
		},
		"scalingPotential": map[string]interface{}{"type": "STRING"},
	},
	"required": []string{"winner", "reasoning", "tacticalAdvice", "scalingPotential"},
}

// GetBusinessInsights pede três insights acionáveis sobre os dados agregados
// do negócio. Em caso de falha retorna lista vazia, nunca erro fatal.
func (s *GeminiIntegrator) GetBusinessInsights(ctx context.Context, data interface{}) ([]domain.BusinessInsight, error) {
	serialized, err := json.MarshalToString(data)
	if err != nil {
		return []domain.BusinessInsight{}, nil
	}

	prompt := fmt.Sprintf("Analyze the following business data and provide 3 actionable insights in JSON format: %s", serialized)

	raw, err := s.generate(ctx, prompt, businessInsightSchema)
	if err != nil {
		logrus.WithError(err).Warn("gemini: falha ao gerar insights de negócio")
		return []domain.BusinessInsight{}, nil
	}

	insights := []domain.BusinessInsight{}
	if err := json.UnmarshalFromString(raw, &insights); err != nil {
		logrus.WithError(err).Warn("gemini: resposta de insights fora do schema esperado")
		return []domain.BusinessInsight{}, nil
	}

	return insights, nil
}

// GetMarketingStrategy pede a escolha do conjunto de anúncios vencedor e os
// próximos passos táticos. Em caso de falha retorna nil, nunca erro fatal.
func (s *GeminiIntegrator) GetMarketingStrategy(ctx context.Context, insights []domain.AdSetInsight) (*domain.AdStrategy, error) {
	serialized, err := json.MarshalToString(insights)
	if err != nil {
		return nil, nil
	}

	prompt := fmt.Sprintf("You are a world-class ad strategist. Analyze these campaigns and pick the \"Winning\" one. Provide tactical advice on what to do next. Data: %s", serialized)

	raw, err := s.generate(ctx, prompt, adStrategySchema)
	if err != nil {
		logrus.WithError(err).Warn("gemini: falha ao gerar estratégia de marketing")
		return nil, nil
	}

	var strategy domain.AdStrategy
	if err := json.UnmarshalFromString(raw, &strategy); err != nil {
		logrus.WithError(err).Warn("gemini: resposta de estratégia fora do schema esperado")
		return nil, nil
	}

	return &strategy, nil
}

// generate executa uma chamada generateContent e devolve o texto do primeiro candidato
func (s *GeminiIntegrator) generate(ctx context.Context, prompt string, schema interface{}) (string, error) {
	if !s.IsConfigured() {
		return "", domain.NewProviderError("gemini", domain.ErrKindConfigurationMissing,
			"Gemini API key not configured")
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", s.Cfg.Gemini.BaseURL, s.Cfg.Gemini.Model)

	request := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	}

	var response generateContentResponse

	resp, err := s.resty.R().
		SetContext(ctx).
		SetQueryParam("key", s.Cfg.Gemini.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&response).
		Post(url)
	if err != nil {
		return "", domain.WrapProviderError("gemini", domain.ErrKindNetwork,
			"failed to reach the Gemini API", err)
	}

	if resp.IsError() {
		return "", domain.NewProviderError("gemini", domain.ErrKindProvider,
			fmt.Sprintf("Gemini API returned status %d", resp.StatusCode()))
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", domain.NewProviderError("gemini", domain.ErrKindEmptyResult,
			"Gemini API returned no candidates")
	}

	return response.Candidates[0].Content.Parts[0].Text, nil
}
