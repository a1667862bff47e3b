package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/akolanti/LabAPI/internal/config"
	"github.com/akolanti/LabAPI/internal/customHttpClient"
	"github.com/akolanti/LabAPI/internal/pipeline/llm"
	"github.com/akolanti/LabAPI/pkg/logger_i"
	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type llmClient struct {
	client    *openaisdk.Client
	modelName string
}

var logger *logger_i.Logger
var openaiClient *llmClient
var once sync.Once

func GetOpenAIClient(ctx context.Context, apikey string, modelName string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_openai")
		if apikey == "" {
			logger.Error("OpenAI API key is empty")
			return
		}
		c := openaisdk.NewClient(
			option.WithAPIKey(apikey),
			option.WithHTTPClient(customHttpClient.GetPooledClient()),
		)
		openaiClient = &llmClient{client: &c, modelName: modelName}
		logger.Info("OpenAI client created", "model", modelName)
	})

	if openaiClient == nil {
		return nil
	}
	return openaiClient
}

func (c *llmClient) Generate(ctx context.Context, systemInstruction string, prompt string) (string, error) {
	messages := []openaisdk.ChatCompletionMessageParamUnion{}
	if systemInstruction != "" {
		messages = append(messages, openaisdk.SystemMessage(systemInstruction))
	}
	messages = append(messages, openaisdk.UserMessage(prompt))

	resp, err := c.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model:       openaisdk.ChatModel(c.modelName),
		Messages:    messages,
		Temperature: openaisdk.Float(float64(config.ModelTemperature)),
	})
	if err != nil {
		return "", fmt.Errorf("openai generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *llmClient) GenerateVision(ctx context.Context, prompt string, mimeType string, imageData []byte) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))

	parts := []openaisdk.ChatCompletionContentPartUnionParam{
		{OfText: &openaisdk.ChatCompletionContentPartTextParam{Text: prompt}},
		{OfImageURL: &openaisdk.ChatCompletionContentPartImageParam{
			ImageURL: openaisdk.ChatCompletionContentPartImageImageURLParam{URL: dataURL},
		}},
	}

	resp, err := c.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model:    openaisdk.ChatModel(c.modelName),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{openaisdk.UserMessage(parts)},
	})
	if err != nil {
		return "", fmt.Errorf("openai vision generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
