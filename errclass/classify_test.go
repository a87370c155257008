package errclass_test

import (
	"testing"

	"github.com/bjaus/resilient/errclass"
	"github.com/stretchr/testify/require"
)

func statusPtr(v int) *int { return &v }

func TestClassifyError_ByStatusCode(t *testing.T) {
	tests := map[string]struct {
		status int
		want   errclass.Classification
	}{
		"server 500":      {500, errclass.Server},
		"server 503":      {503, errclass.Server},
		"rateLimit 429":    {429, errclass.RateLimit},
		"authn 401":        {401, errclass.Authentication},
		"authn 403":        {403, errclass.Authentication},
		"notFound 404":     {404, errclass.NotFound},
		"validation 400":   {400, errclass.Validation},
		"validation 422":   {422, errclass.Validation},
		"client 418":       {418, errclass.Client},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, errclass.ClassifyError(statusPtr(tc.status), ""))
		})
	}
}

func TestClassifyError_ByErrorCode(t *testing.T) {
	tests := map[string]struct {
		code string
		want errclass.Classification
	}{
		"ECONNREFUSED is network": {"ECONNREFUSED", errclass.Network},
		"ETIMEDOUT is timeout":    {"ETIMEDOUT", errclass.Timeout},
		"ECONNABORTED is timeout": {"ECONNABORTED", errclass.Timeout},
		"ECONNRESET is network":   {"ECONNRESET", errclass.Network},
		"ENOTFOUND is network":    {"ENOTFOUND", errclass.Network},
		"ERR_CANCELED cancelled":  {"ERR_CANCELED", errclass.Cancelled},
		"ABORT_ERR cancelled":     {"ABORT_ERR", errclass.Cancelled},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, errclass.ClassifyError(nil, tc.code))
		})
	}
}

func TestClassifyError_ErrorCodeTakesPrecedenceOverStatus(t *testing.T) {
	// A timeout code should classify as Timeout even if a status code is
	// also present and would otherwise suggest Server.
	got := errclass.ClassifyError(statusPtr(500), "ETIMEDOUT")
	require.Equal(t, errclass.Timeout, got)
}

func TestClassifyError_Unknown(t *testing.T) {
	require.Equal(t, errclass.Unknown, errclass.ClassifyError(nil, ""))
}

func TestIsRetryableError(t *testing.T) {
	require.True(t, errclass.IsRetryableError(errclass.Network, nil))
	require.True(t, errclass.IsRetryableError(errclass.Timeout, nil))
	require.True(t, errclass.IsRetryableError(errclass.Server, nil))
	require.True(t, errclass.IsRetryableError(errclass.RateLimit, nil))
	require.False(t, errclass.IsRetryableError(errclass.Client, nil))
	require.False(t, errclass.IsRetryableError(errclass.Authentication, nil))

	require.True(t, errclass.IsRetryableError(errclass.Unknown, statusPtr(503)))
	require.False(t, errclass.IsRetryableError(errclass.Unknown, statusPtr(418)))
}

func TestClassification_String(t *testing.T) {
	require.Equal(t, "network", errclass.Network.String())
	require.Equal(t, "unknown", errclass.Classification(99).String())
}
