package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weisyn/tokenfactory/internal/core/tokenfactory/dispatcher"
	"github.com/weisyn/tokenfactory/pkg/types"
)

func TestFromErrorMapsKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{types.NewUnauthorizedError(), http.StatusForbidden, CodeTFUnauthorized},
		{types.NewInvalidSubdenomError(""), http.StatusBadRequest, CodeTFInvalidSubdenom},
		{types.NewInvalidDenomError("x", "denom must have 3 parts separated by /, had 1"), http.StatusBadRequest, CodeTFInvalidDenom},
		{types.NewZeroAmountError(), http.StatusBadRequest, CodeTFZeroAmount},
		{types.NewInvalidFundError(), http.StatusBadRequest, CodeTFInvalidFund},
		{types.NewUninitializedError(), http.StatusPreconditionFailed, CodeTFUninitialized},
		{types.NewInvalidAddressError("bad", "checksum"), http.StatusBadRequest, CodeTFInvalidAddress},
		{types.NewDenomAlreadyExistsError("factory/a/b"), http.StatusConflict, CodeTFDenomAlreadyExists},
		{types.NewInvalidRequestError("already initialized"), http.StatusBadRequest, CodeTFInvalidRequest},
		{fmt.Errorf("%w: %w", dispatcher.ErrIndexQuery, errors.New("timeout")), http.StatusBadGateway, CodeTFIndexUnavailable},
		{errors.New("disk full"), http.StatusInternalServerError, CodeCommonInternalError},
	}
	for _, tc := range cases {
		pd := FromError(tc.err, "/v1/tokenfactory/execute")
		assert.Equal(t, tc.status, pd.Status, tc.err.Error())
		assert.Equal(t, tc.code, pd.Code, tc.err.Error())
		assert.Equal(t, "/v1/tokenfactory/execute", pd.Instance)
		assert.Equal(t, tc.err.Error(), pd.Detail)
		assert.NotEmpty(t, pd.TraceID)
	}
}

func TestFromErrorDetails(t *testing.T) {
	pd := FromError(types.NewInvalidDenomError("factory/a/b", "denom does not exist"), "")
	assert.Equal(t, "InvalidDenom", pd.Details["kind"])
	assert.Equal(t, "factory/a/b", pd.Details["denom"])
	assert.Equal(t, "denom does not exist", pd.Details["reason"])

	pd = FromError(types.NewInvalidSubdenomError(""), "")
	assert.Equal(t, "", pd.Details["subdenom"])
}
