package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/ecotrack/config"
	apiError "github.com/techagentng/ecotrack/errors"
)

func fakeGeminiServer(t *testing.T, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		body := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": text}},
				}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}))
}

func newTestVerificationService(baseURL string) VerificationService {
	return NewVerificationService(&config.Config{
		GeminiApiKey:  "test-key",
		GeminiBaseUrl: baseURL,
	})
}

func TestVerifyWasteParsesClassifierResult(t *testing.T) {
	ts := fakeGeminiServer(t, `{"wasteType":"plastic","quantity":"2 kg","confidence":0.92}`)
	defer ts.Close()

	svc := newTestVerificationService(ts.URL)
	result, err := svc.VerifyWaste(context.Background(), []byte{0xFF, 0xD8}, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "plastic", result.WasteType)
	assert.Equal(t, "2 kg", result.Quantity)
	assert.InDelta(t, 0.92, result.Confidence, 0.001)
}

func TestVerifyWasteStripsCodeFences(t *testing.T) {
	ts := fakeGeminiServer(t, "```json\n{\"wasteType\":\"glass\",\"quantity\":\"1 kg\",\"confidence\":0.8}\n```")
	defer ts.Close()

	svc := newTestVerificationService(ts.URL)
	result, err := svc.VerifyWaste(context.Background(), []byte{0xFF, 0xD8}, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "glass", result.WasteType)
}

func TestVerifyWasteMissingFields(t *testing.T) {
	ts := fakeGeminiServer(t, `{"wasteType":"plastic"}`)
	defer ts.Close()

	svc := newTestVerificationService(ts.URL)
	_, err := svc.VerifyWaste(context.Background(), []byte{0xFF, 0xD8}, "image/jpeg")
	assert.ErrorIs(t, err, apiError.ErrVerification)
}

func TestVerifyWasteUnparsablePayload(t *testing.T) {
	ts := fakeGeminiServer(t, "I could not classify this image.")
	defer ts.Close()

	svc := newTestVerificationService(ts.URL)
	_, err := svc.VerifyWaste(context.Background(), []byte{0xFF, 0xD8}, "image/jpeg")
	assert.ErrorIs(t, err, apiError.ErrVerification)
}

func TestVerifyWasteEmptyImage(t *testing.T) {
	svc := newTestVerificationService("http://unused.invalid")
	_, err := svc.VerifyWaste(context.Background(), nil, "image/jpeg")
	assert.ErrorIs(t, err, apiError.ErrValidation)
}
