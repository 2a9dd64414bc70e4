// Package supabase submits raw SQL through a Supabase project's PostgREST RPC
// endpoints.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"arbfix/internal/domain"
	"arbfix/internal/domain/entities"
	"arbfix/internal/ports/output"
)

// RPCPaths are the candidate SQL functions, tried in this order.
var RPCPaths = []string{"/rest/v1/rpc/exec", "/rest/v1/rpc/query"}

const (
	DefaultTimeout = 30 * time.Second
	maxBodyLog     = 500
)

var _ output.SQLExecutor = (*RPCExecutor)(nil)

// RPCExecutor posts {"query": sql} to a single RPC endpoint.
type RPCExecutor struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewRPCExecutor builds an executor for baseURL+rpcPath. A nil client gets a
// fresh one with the given timeout.
func NewRPCExecutor(baseURL, rpcPath, apiKey string, client *http.Client, timeout time.Duration) *RPCExecutor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &RPCExecutor{
		endpoint: strings.TrimRight(baseURL, "/") + rpcPath,
		apiKey:   apiKey,
		client:   client,
	}
}

// NewRPCExecutors returns one executor per entry of RPCPaths.
func NewRPCExecutors(baseURL, apiKey string, timeout time.Duration) []output.SQLExecutor {
	client := &http.Client{Timeout: timeout}
	if timeout <= 0 {
		client.Timeout = DefaultTimeout
	}
	out := make([]output.SQLExecutor, 0, len(RPCPaths))
	for _, p := range RPCPaths {
		out = append(out, NewRPCExecutor(baseURL, p, apiKey, client, timeout))
	}
	return out
}

func (e *RPCExecutor) Endpoint() string {
	return e.endpoint
}

type queryRequest struct {
	Query string `json:"query"`
}

// Exec sends sql once. The attempt succeeds only on HTTP 200.
func (e *RPCExecutor) Exec(ctx context.Context, sql string) entities.Attempt {
	a := entities.Attempt{Endpoint: e.endpoint}

	body, err := json.Marshal(queryRequest{Query: sql})
	if err != nil {
		a.Err = fmt.Errorf("encode request: %w", err)
		return a
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		a.Err = fmt.Errorf("build request: %w", err)
		return a
	}
	req.Header.Set("apikey", e.apiKey)
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		a.Err = fmt.Errorf("post %s: %w", e.endpoint, err)
		return a
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	a.StatusCode = resp.StatusCode
	a.Body = truncate(string(raw), maxBodyLog)
	if err != nil {
		a.Err = fmt.Errorf("read response: %w", err)
		return a
	}
	if resp.StatusCode != http.StatusOK {
		a.Err = fmt.Errorf("%w %d: %s", domain.ErrUnexpectedCode, resp.StatusCode, errorMessage(raw))
	}
	return a
}

// errorMessage extracts PostgREST's error message, or the raw body.
func errorMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		for _, field := range []string{"message", "error", "msg", "hint"} {
			if v := gjson.GetBytes(body, field); v.Exists() && v.String() != "" {
				return v.String()
			}
		}
	}
	return truncate(strings.TrimSpace(string(body)), maxBodyLog)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// DashboardSQLURL points to the project's SQL editor, where archived patches
// can be pasted by hand. It returns "" when baseURL is not a supabase.co host.
func DashboardSQLURL(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	ref, rest, ok := strings.Cut(u.Hostname(), ".")
	if !ok || rest != "supabase.co" || ref == "" {
		return ""
	}
	return "https://supabase.com/dashboard/project/" + ref + "/sql/new"
}
