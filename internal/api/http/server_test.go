package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apitypes "github.com/weisyn/tokenfactory/internal/api/types"
	apiconfig "github.com/weisyn/tokenfactory/internal/config/api"
	eventbus "github.com/weisyn/tokenfactory/internal/core/infrastructure/event"
	"github.com/weisyn/tokenfactory/internal/core/infrastructure/metrics"
	"github.com/weisyn/tokenfactory/internal/core/tokenfactory/dispatcher"
	"github.com/weisyn/tokenfactory/internal/core/tokenfactory/guard"
	"github.com/weisyn/tokenfactory/internal/core/tokenfactory/state"
	"github.com/weisyn/tokenfactory/internal/core/tokenfactory/testutil"
	"github.com/weisyn/tokenfactory/pkg/types"
)

var (
	alice    = testutil.Address("alice")
	bob      = testutil.Address("bob")
	contract = testutil.Address("contract")
	fee      = types.Coins{types.NewCoin("uwes", 100)}
)

type env struct {
	server    *Server
	index     *testutil.FakeIndex
	collector *metrics.Collector
}

func newEnv(t *testing.T, mutate func(*apiconfig.APIOptions)) *env {
	t.Helper()
	store := testutil.NewStore(t)
	index := testutil.NewFakeIndex(fee)
	configs := state.NewConfigStore()
	registry := state.NewDenomRegistry()
	bus := eventbus.New(nil)
	collector := metrics.NewCollector()

	d := dispatcher.New(dispatcher.Config{
		Store:    store,
		Configs:  configs,
		Registry: registry,
		Querier:  index,
		Guard: guard.New(guard.Config{
			Configs:   configs,
			Registry:  registry,
			Querier:   index,
			Addresses: testutil.AddressValidator(),
		}),
		Env:      types.Env{ContractAddress: contract},
		EventBus: bus,
		Recorder: collector,
	})

	options := apiconfig.New(nil).GetOptions()
	options.ReadRateLimit = 0
	options.WriteRateLimit = 0
	if mutate != nil {
		mutate(options)
	}

	server, err := NewServer(ServerConfig{
		Options:      options,
		TokenFactory: d,
		Store:        store,
		Version:      "test",
		Collector:    collector,
		EventBus:     bus,
	})
	require.NoError(t, err)
	return &env{server: server, index: index, collector: collector}
}

func (e *env) post(t *testing.T, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

type responseEnvelope struct {
	Data      types.Response `json:"data"`
	RequestID string         `json:"requestId"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func instantiateBody(sender string) map[string]interface{} {
	return map[string]interface{}{"info": types.MessageInfo{Sender: sender}, "msg": types.InstantiateMsg{}}
}

func executeBody(sender string, funds types.Coins, msg types.ExecuteMsg) map[string]interface{} {
	return map[string]interface{}{"info": types.MessageInfo{Sender: sender, Funds: funds}, "msg": msg}
}

func TestCreateAndMintOverHTTP(t *testing.T) {
	e := newEnv(t, nil)

	rec := e.post(t, "/v1/tokenfactory/instantiate", instantiateBody(alice))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = e.post(t, "/v1/tokenfactory/execute", executeBody(alice, fee,
		types.ExecuteMsg{CreateDenom: &types.CreateDenomMsg{Subdenom: "abc"}}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[responseEnvelope](t, rec)
	require.Len(t, created.Data.Messages, 1)
	require.NotNil(t, created.Data.Messages[0].CreateDenom)
	e.index.Apply(contract, created.Data.Messages)

	denom := "factory/" + contract + "/abc"
	rec = e.post(t, "/v1/tokenfactory/execute", executeBody(alice, nil,
		types.ExecuteMsg{MintTokens: &types.MintTokensMsg{Denom: denom, Amount: types.NewAmount(42), MintToAddress: bob}}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	minted := decode[responseEnvelope](t, rec)
	require.Len(t, minted.Data.Messages, 1)
	assert.Equal(t, "42", minted.Data.Messages[0].MintTokens.Amount.String())

	// 金额以字符串传输
	assert.Contains(t, rec.Body.String(), `"amount":"42"`)
}

func TestErrorsAreProblemDetails(t *testing.T) {
	e := newEnv(t, nil)
	e.post(t, "/v1/tokenfactory/instantiate", instantiateBody(alice))

	rec := e.post(t, "/v1/tokenfactory/execute", executeBody(bob, nil,
		types.ExecuteMsg{MintTokens: &types.MintTokensMsg{Denom: "factory/x/y", Amount: types.NewAmount(1), MintToAddress: bob}}))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	pd := decode[apitypes.ProblemDetails](t, rec)
	assert.Equal(t, apitypes.CodeTFUnauthorized, pd.Code)
	assert.Equal(t, "Unauthorized", pd.Detail)
	assert.Equal(t, "/v1/tokenfactory/execute", pd.Instance)

	rec = e.post(t, "/v1/tokenfactory/execute", executeBody(alice, nil,
		types.ExecuteMsg{BurnTokens: &types.BurnTokensMsg{Denom: "factory/x/y", Amount: types.NewAmount(0)}}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apitypes.CodeTFZeroAmount, decode[apitypes.ProblemDetails](t, rec).Code)

	rec = e.post(t, "/v1/tokenfactory/instantiate", instantiateBody(bob))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apitypes.CodeTFInvalidRequest, decode[apitypes.ProblemDetails](t, rec).Code)
}

func TestUninitializedIsPreconditionFailed(t *testing.T) {
	e := newEnv(t, nil)
	rec := e.post(t, "/v1/tokenfactory/query", types.QueryMsg{Config: &types.ConfigQuery{}})
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
}

func TestMissingSenderRejected(t *testing.T) {
	e := newEnv(t, nil)
	rec := e.post(t, "/v1/tokenfactory/instantiate", instantiateBody(""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apitypes.CodeTFInvalidRequest, decode[apitypes.ProblemDetails](t, rec).Code)
}

func TestMalformedBody(t *testing.T) {
	e := newEnv(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/tokenfactory/execute", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apitypes.CodeCommonValidationError, decode[apitypes.ProblemDetails](t, rec).Code)

	rec = e.post(t, "/v1/tokenfactory/execute", map[string]interface{}{
		"info": map[string]interface{}{"sender": alice},
		"msg":  map[string]interface{}{"mint_tokens": map[string]interface{}{"denom": "factory/a/b", "amount": "-1"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryIndexFailureIsBadGateway(t *testing.T) {
	e := newEnv(t, nil)
	e.index.Err = errors.New("connection refused")

	rec := e.post(t, "/v1/tokenfactory/query", types.QueryMsg{GetParams: &types.GetParamsQuery{}})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, apitypes.CodeTFIndexUnavailable, decode[apitypes.ProblemDetails](t, rec).Code)
}

func TestHealthAndMetrics(t *testing.T) {
	e := newEnv(t, nil)
	e.post(t, "/v1/tokenfactory/instantiate", instantiateBody(alice))

	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)

	rec = httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `tokenfactory_requests_total{method="instantiate",outcome="accepted"} 1`)
	assert.Contains(t, body, `tokenfactory_http_requests_total{method="POST",path="/v1/tokenfactory/instantiate",status="200"} 1`)
}

func TestMetricsEndpointDisabled(t *testing.T) {
	e := newEnv(t, func(o *apiconfig.APIOptions) { o.EnableMetrics = false })
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteRateLimit(t *testing.T) {
	e := newEnv(t, func(o *apiconfig.APIOptions) { o.WriteRateLimit = 1 })

	rec := e.post(t, "/v1/tokenfactory/instantiate", instantiateBody(alice))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = e.post(t, "/v1/tokenfactory/execute", executeBody(alice, nil, types.ExecuteMsg{}))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, apitypes.CodeCommonRateLimited, decode[apitypes.ProblemDetails](t, rec).Code)

	// 查询不受写限流影响
	rec = e.post(t, "/v1/tokenfactory/query", types.QueryMsg{Config: &types.ConfigQuery{}})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStartStop(t *testing.T) {
	e := newEnv(t, func(o *apiconfig.APIOptions) {
		o.HTTPHost = "127.0.0.1"
		o.HTTPPort = 0
	})
	require.NoError(t, e.server.Start())

	resp, err := http.Get("http://" + e.server.Addr() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, e.server.Stop(context.Background()))
}
