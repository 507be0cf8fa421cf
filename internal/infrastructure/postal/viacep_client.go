package postal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/busstore/backend/internal/domain/postal"
	"github.com/busstore/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ViaCEPClient implements AddressLookup against the public ViaCEP API
type ViaCEPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewViaCEPClient creates a new ViaCEP client
func NewViaCEPClient(cfg config.PostalConfig, logger *zap.Logger) *ViaCEPClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ViaCEPClient{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// viaCEPResponse is ViaCEP's wire format. Unknown CEPs come back as
// HTTP 200 with {"erro": "true"}.
type viaCEPResponse struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       any    `json:"erro"`
}

// Lookup resolves a CEP (eight bare digits) to its registered address
func (c *ViaCEPClient) Lookup(ctx context.Context, cep string) (*postal.CEPAddress, error) {
	digits, err := postal.NormalizeCEP(cep)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("viacep: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", postal.ErrLookupUnavailable, err)
	}
	defer resp.Body.Close()

	// ViaCEP answers 400 for malformed CEPs; anything else non-200 is an outage
	if resp.StatusCode == http.StatusBadRequest {
		return nil, postal.ErrInvalidCEP
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("viacep lookup failed",
			zap.String("cep", digits),
			zap.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("%w: HTTP %d", postal.ErrLookupFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("viacep: failed to read response: %w", err)
	}

	var parsed viaCEPResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", postal.ErrInvalidLookupReply, err)
	}

	if parsed.Erro != nil {
		return nil, postal.ErrCEPNotFound
	}

	return &postal.CEPAddress{
		CEP:      postal.FormatCEP(digits),
		Street:   parsed.Logradouro,
		District: parsed.Bairro,
		City:     parsed.Localidade,
		State:    parsed.UF,
	}, nil
}

// Ensure ViaCEPClient implements AddressLookup
var _ postal.AddressLookup = (*ViaCEPClient)(nil)
