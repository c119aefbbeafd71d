package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/techagentng/ecotrack/config"
	apiError "github.com/techagentng/ecotrack/errors"
	"github.com/techagentng/ecotrack/models"
)

const verificationPrompt = `You are an expert in waste management and recycling. Analyze this image and provide:
1. The type of waste (e.g., plastic, paper, glass, metal, organic)
2. An estimate of the quantity or amount (in kg or liters)
3. Your confidence level in this assessment (as a percentage)

Respond in JSON format like this:
{
  "wasteType": "type of waste",
  "quantity": "estimated quantity with unit",
  "confidence": confidence level as a number between 0 and 1
}`

// VerificationService classifies a waste image through the Gemini
// generateContent endpoint.
type VerificationService interface {
	VerifyWaste(ctx context.Context, image []byte, mimeType string) (*models.VerificationResult, error)
}

type verificationService struct {
	Config *config.Config
	client *http.Client
}

func NewVerificationService(conf *config.Config) VerificationService {
	return &verificationService{
		Config: conf,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type generateContentRequest struct {
	Contents []struct {
		Parts []map[string]interface{} `json:"parts"`
	} `json:"contents"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (s *verificationService) VerifyWaste(ctx context.Context, image []byte, mimeType string) (*models.VerificationResult, error) {
	if len(image) == 0 {
		return nil, apiError.ErrValidation
	}

	body := generateContentRequest{}
	body.Contents = append(body.Contents, struct {
		Parts []map[string]interface{} `json:"parts"`
	}{
		Parts: []map[string]interface{}{
			{"text": verificationPrompt},
			{"inline_data": map[string]string{
				"mime_type": mimeType,
				"data":      base64.StdEncoding.EncodeToString(image),
			}},
		},
	})

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}

	url := fmt.Sprintf("%s/v1beta/models/gemini-1.5-flash:generateContent?key=%s",
		strings.TrimRight(s.Config.GeminiBaseUrl, "/"), s.Config.GeminiApiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, apiError.ErrInternalServerError
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("VerifyWaste request error: %v", err)
		return nil, apiError.ErrVerification
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("VerifyWaste unexpected status: %d", resp.StatusCode)
		return nil, apiError.ErrVerification
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apiError.ErrVerification
	}

	var content generateContentResponse
	if err := json.Unmarshal(raw, &content); err != nil {
		log.Printf("VerifyWaste response parse error: %v", err)
		return nil, apiError.ErrVerification
	}
	if len(content.Candidates) == 0 || len(content.Candidates[0].Content.Parts) == 0 {
		return nil, apiError.ErrVerification
	}

	return parseVerificationResult(content.Candidates[0].Content.Parts[0].Text)
}

// parseVerificationResult extracts the classifier's JSON payload. A payload
// that cannot be parsed or is missing required fields fails verification and
// the report must not be submitted.
func parseVerificationResult(text string) (*models.VerificationResult, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var result models.VerificationResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &result); err != nil {
		log.Printf("invalid verification payload: %v", err)
		return nil, apiError.ErrVerification
	}
	if result.WasteType == "" || result.Quantity == "" || result.Confidence <= 0 || result.Confidence > 1 {
		log.Printf("verification payload missing required fields: %+v", result)
		return nil, apiError.ErrVerification
	}
	return &result, nil
}
