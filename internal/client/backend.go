package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sbilibin2017/finance-planner/internal/logger"
	"github.com/sbilibin2017/finance-planner/internal/models"
	"golang.org/x/sync/errgroup"
)

// APIError is returned for any non-200 backend response.
type APIError struct {
	Status  int    // HTTP status code
	Code    string // Error code from the response body, if any
	Message string // Error message from the response body, or the raw body
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("backend error %d: %s", e.Status, e.Message)
}

// Overview is the joined result of both profile fetches.
type Overview struct {
	Transactions []models.Transaction
	Stats        models.TransactionStats
}

// Backend is an HTTP client for the finance API.
type Backend struct {
	baseURL    string
	httpClient *http.Client
}

// NewBackend creates a Backend for the API at baseURL. A nil httpClient uses http.DefaultClient.
func NewBackend(baseURL string, httpClient *http.Client) *Backend {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Backend{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// GetTransactions fetches every transaction of the profile.
func (b *Backend) GetTransactions(ctx context.Context, profile string) ([]models.Transaction, error) {
	var resp struct {
		Data []models.Transaction `json:"data"`
	}
	if err := b.get(ctx, "/"+url.PathEscape(profile)+"/transactions", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetStats fetches the transaction stats of the profile.
func (b *Backend) GetStats(ctx context.Context, profile string) (*models.TransactionStats, error) {
	var stats models.TransactionStats
	if err := b.get(ctx, "/"+url.PathEscape(profile)+"/transactions/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// LoadOverview runs both fetches concurrently and returns once both have finished.
// The first failure cancels the other fetch and is returned.
func (b *Backend) LoadOverview(ctx context.Context, profile string) (*Overview, error) {
	var overview Overview

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		transactions, err := b.GetTransactions(gctx, profile)
		if err != nil {
			return err
		}
		overview.Transactions = transactions
		return nil
	})
	g.Go(func() error {
		stats, err := b.GetStats(gctx, profile)
		if err != nil {
			return err
		}
		overview.Stats = *stats
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Log.Errorw("failed to load profile overview", "profile", profile, "error", err)
		return nil, err
	}
	return &overview, nil
}

func (b *Backend) get(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}

		var errResp struct {
			Code  string `json:"code"`
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			apiErr.Code = errResp.Code
			apiErr.Message = errResp.Error
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
