package addrbook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	defaultHTTPTimeout = 5 * time.Second

	// maxLabelResponseBytes caps how much of a label response is read.
	maxLabelResponseBytes = 4 << 10
)

type labelResponse struct {
	Label string `json:"label"`
}

// HTTPResolver asks a label service for GET {BaseURL}/labels/{address} and
// expects {"label": "..."} back. A 404 means the address has no label.
type HTTPResolver struct {
	BaseURL string
	Client  *http.Client
	Logger  *zap.Logger
}

func NewHTTPResolver(baseURL string, l *zap.Logger) *HTTPResolver {
	if l == nil {
		l = zap.NewNop()
	}
	return &HTTPResolver{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: defaultHTTPTimeout},
		Logger:  l,
	}
}

func (r *HTTPResolver) ResolveLabel(ctx context.Context, addr common.Address) (string, error) {
	url := fmt.Sprintf("%s/labels/%s", r.BaseURL, strings.ToLower(addr.Hex()))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, "building label request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "requesting label")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", nil
	default:
		return "", errors.Errorf("label service returned status: %d", resp.StatusCode)
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxLabelResponseBytes))
	if err != nil {
		return "", errors.Wrap(err, "reading label response")
	}
	var result labelResponse
	if err := json.Unmarshal(content, &result); err != nil {
		r.Logger.Sugar().Debugw("Label service returned invalid JSON",
			zap.String("address", strings.ToLower(addr.Hex())),
			zap.Error(err),
		)
		return "", errors.Wrap(err, "parsing label response")
	}
	return strings.TrimSpace(result.Label), nil
}
