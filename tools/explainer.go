package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Explainer chama a Responses API da OpenAI para gerar a justificativa de um
// slot do deck ("por que essa pessoa apareceu pra você hoje"). O caller é
// quem decide o fallback: qualquer erro aqui NUNCA pode derrubar a entrega
// do deck — quem orquestra troca por template estático.
type Explainer struct {
	ApiKey string
	Model  string

	// Client opcional; se nil usamos um com timeout padrão.
	Client *http.Client
}

func NewExplainer(apiKey, model string) *Explainer {
	if model == "" {
		model = "gpt-4.1-mini"
	}
	return &Explainer{ApiKey: apiKey, Model: model}
}

const explainerSystemPrompt = "Você escreve, em uma frase curta e calorosa (português do Brasil), " +
	"por que um perfil foi recomendado hoje. Nunca invente fatos: use só o que vier no pedido. " +
	"Não mencione scores nem algoritmos."

// Generate devolve o texto da explicação para o prompt montado pelo caller.
func (e *Explainer) Generate(ctx context.Context, prompt string) (string, error) {
	apiKey := strings.TrimSpace(e.ApiKey)
	if apiKey == "" {
		return "", fmt.Errorf("explainer: api key não configurada")
	}

	reqBody := map[string]any{
		"model":        e.Model,
		"instructions": explainerSystemPrompt,
		"input":        prompt,
	}
	b, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		"https://api.openai.com/v1/responses",
		bytes.NewReader(b),
	)
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := e.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai error %d: %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Output []struct {
			Type    string `json:"type"`
			Role    string `json:"role"`
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, item := range parsed.Output {
		if item.Type == "message" && item.Role == "assistant" {
			for _, c := range item.Content {
				if c.Type == "output_text" && strings.TrimSpace(c.Text) != "" {
					if sb.Len() > 0 {
						sb.WriteString("\n")
					}
					sb.WriteString(c.Text)
				}
			}
		}
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("empty response from model (no output_text items found)")
	}
	return out, nil
}
