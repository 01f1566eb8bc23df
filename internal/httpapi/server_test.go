package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mesh-intelligence/editions/internal/engine"
	"github.com/mesh-intelligence/editions/pkg/types"
)

const (
	admin = types.Address("tz1-admin")
	alice = types.Address("tz1-alice")
	bob   = types.Address("tz1-bob")

	testPrice = types.Mutez(100)
)

// testServer bundles the pieces a handler test needs.
type testServer struct {
	srv    *Server
	ts     *httptest.Server
	tokens *TokenService
}

// newTestServer starts an API server over a fresh in-memory ledger.
func newTestServer(t *testing.T, opts types.Options) *testServer {
	t.Helper()
	genesis := types.Genesis{
		Administrator: admin,
		Price:         testPrice,
		MaxEditions:   8,
		BaseURI:       "https://editions.test/api/",
	}
	ledger := engine.New(engine.NewState(genesis), opts, nil)
	tokens := NewTokenService("test-signing-key", "editions-test")
	srv := NewServer(ledger, tokens, zaptest.NewLogger(t), prometheus.NewRegistry())

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(func() {
		ts.Close()
		srv.client.CloseIdleConnections()
	})
	return &testServer{srv: srv, ts: ts, tokens: tokens}
}

// post sends an authenticated JSON request and returns the response.
func (s *testServer) post(t *testing.T, caller types.Address, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, s.ts.URL+path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	if caller != "" {
		token, err := s.tokens.Issue(caller, time.Minute)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// get sends an unauthenticated GET and returns the response.
func (s *testServer) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := s.ts.Client().Get(s.ts.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// decodeBody unmarshals a response body into a map.
func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m), "body: %s", data)
	return m
}

// mintFor issues n tokens to caller through the API.
func (s *testServer) mintFor(t *testing.T, caller types.Address, n int64) {
	t.Helper()
	resp := s.post(t, caller, "/v1/mint", mintRequest{Amount: n, Payment: testPrice * types.Mutez(n)})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMintAndQueryToken(t *testing.T) {
	s := newTestServer(t, types.DefaultOptions())
	s.mintFor(t, alice, 2)

	resp := s.get(t, "/v1/tokens/0")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, string(alice), body["owner"])
	assert.NotEmpty(t, body["commitment"])

	resp = s.get(t, "/v1/tokens")
	body = decodeBody(t, resp)
	assert.Equal(t, float64(2), body["count"])
}

func TestMintRequiresToken(t *testing.T) {
	s := newTestServer(t, types.DefaultOptions())
	resp := s.post(t, "", "/v1/mint", mintRequest{Amount: 1, Payment: testPrice})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMintWrongPayment(t *testing.T) {
	s := newTestServer(t, types.DefaultOptions())
	resp := s.post(t, alice, "/v1/mint", mintRequest{Amount: 1, Payment: testPrice - 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "FA2_BAD_VALUE", body["code"])
}

func TestTransferViaOperator(t *testing.T) {
	s := newTestServer(t, types.DefaultOptions())
	s.mintFor(t, alice, 1)

	resp := s.post(t, alice, "/v1/operators", operatorsRequest{Updates: []types.OperatorUpdate{
		{Action: types.OperatorAdd, Owner: alice, Operator: bob, TokenID: 0},
	}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.post(t, bob, "/v1/transfer", transferRequest{Groups: []types.TransferGroup{
		{From: alice, Txs: []types.TransferTx{{To: bob, TokenID: 0, Quantity: 1}}},
	}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.get(t, "/v1/balance?owner="+string(bob)+"&token_id=0")
	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["balance"])
}

func TestUnauthorizedTransferCode(t *testing.T) {
	s := newTestServer(t, types.DefaultOptions())
	s.mintFor(t, alice, 1)

	resp := s.post(t, bob, "/v1/transfer", transferRequest{Groups: []types.TransferGroup{
		{From: alice, Txs: []types.TransferTx{{To: bob, TokenID: 0, Quantity: 1}}},
	}})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FA2_NOT_OPERATOR", decodeBody(t, resp)["code"])
}

func TestBalanceOfWebhook(t *testing.T) {
	s := newTestServer(t, types.DefaultOptions())
	s.mintFor(t, alice, 2)

	// Consumer mirroring the reference balance receiver: sums balances.
	var mu sync.Mutex
	var sum uint64
	consumer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Balances []types.BalanceResponse `json:"balances"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		mu.Lock()
		for _, b := range payload.Balances {
			sum += b.Balance
		}
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer consumer.Close()

	resp := s.post(t, bob, "/v1/balance_of", balanceOfRequest{
		Requests: []types.BalanceRequest{
			{Owner: alice, TokenID: 0},
			{Owner: bob, TokenID: 0},
			{Owner: alice, TokenID: 1},
		},
		Callback: consumer.URL,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, uint64(2), sum)
}

func TestBalanceOfFailingDestination(t *testing.T) {
	s := newTestServer(t, types.DefaultOptions())
	s.mintFor(t, alice, 1)

	consumer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no thanks", http.StatusInternalServerError)
	}))
	defer consumer.Close()

	resp := s.post(t, bob, "/v1/balance_of", balanceOfRequest{
		Requests: []types.BalanceRequest{{Owner: alice, TokenID: 0}},
		Callback: consumer.URL,
	})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestBalanceOfUnknownToken(t *testing.T) {
	s := newTestServer(t, types.DefaultOptions())
	resp := s.post(t, bob, "/v1/balance_of", balanceOfRequest{
		Requests: []types.BalanceRequest{{Owner: alice, TokenID: 5}},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "FA2_TOKEN_UNDEFINED", decodeBody(t, resp)["code"])
}

func TestAdminLatchFlow(t *testing.T) {
	s := newTestServer(t, types.DefaultOptions())

	// Non-admin calls bounce with the admin code.
	resp := s.post(t, alice, "/v1/admin/pause", map[string]bool{"paused": true})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FA2_NOT_ADMIN", decodeBody(t, resp)["code"])

	resp = s.post(t, admin, "/v1/admin/script", map[string]string{"script": "let r = rand(seed);"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.post(t, admin, "/v1/admin/lock", struct{}{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The lock latch wins for everyone, administrator included.
	resp = s.post(t, admin, "/v1/admin/script", map[string]string{"script": "x"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "FA2_LOCKED", decodeBody(t, resp)["code"])

	resp = s.post(t, admin, "/v1/admin/base_uri", map[string]string{"base_uri": "ipfs://"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSetMintParametersBoundary(t *testing.T) {
	s := newTestServer(t, types.DefaultOptions())
	s.mintFor(t, alice, 2)

	resp := s.post(t, admin, "/v1/admin/mint_parameters", mintParametersRequest{Price: 50, MaxEditions: 16})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "FA2_SALE_STARTED", decodeBody(t, resp)["code"])
}

func TestWithdrawRouteFollowsOptions(t *testing.T) {
	enabled := newTestServer(t, types.DefaultOptions())
	enabled.mintFor(t, alice, 1)
	resp := enabled.post(t, admin, "/v1/admin/withdraw",
		map[string]any{"destination": admin, "amount": testPrice})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	disabled := newTestServer(t, types.Options{SupportOperator: true})
	resp = disabled.post(t, admin, "/v1/admin/withdraw",
		map[string]any{"destination": admin, "amount": testPrice})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTokenMetadataEndpoint(t *testing.T) {
	s := newTestServer(t, types.DefaultOptions())
	s.mintFor(t, alice, 1)

	resp := s.get(t, "/v1/tokens/0/metadata")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "https://editions.test/api/0", body["uri"])
	assert.Equal(t, "Blocks on Blocks", body["name"])

	resp = s.get(t, "/v1/tokens/1/metadata")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOperatorCheckEndpoint(t *testing.T) {
	s := newTestServer(t, types.DefaultOptions())
	resp := s.post(t, alice, "/v1/operators", operatorsRequest{Updates: []types.OperatorUpdate{
		{Action: types.OperatorAdd, Owner: alice, Operator: bob, TokenID: 4},
	}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	check := fmt.Sprintf("/v1/operators/check?owner=%s&operator=%s&token_id=4", alice, bob)
	resp = s.get(t, check)
	assert.Equal(t, true, decodeBody(t, resp)["is_operator"])
}

func TestCollectionMetadataReflectsOptions(t *testing.T) {
	s := newTestServer(t, types.DefaultOptions())
	resp := s.get(t, "/v1/metadata")
	body := decodeBody(t, resp)
	perms := body["permissions"].(map[string]any)
	assert.Equal(t, "owner-or-operator-transfer", perms["operator"])
}
