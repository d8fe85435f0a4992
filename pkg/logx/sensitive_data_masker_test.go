package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"craft_market/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Password",
			input:  []byte(`{"hello":"world","password":"abc123"}`),
			output: []byte(`{"hello":"world","password":"[MASKED]"}`),
		},
		{
			name:   "Password capital letter",
			input:  []byte(`{"hello":"world","Password":"abc123"}`),
			output: []byte(`{"hello":"world","Password":"[MASKED]"}`),
		},
		{
			name:   "Access token",
			input:  []byte(`{"accessToken":"eyJhbGciOiJFUzI1NiIsInR5cC","refreshToken":"eyJhbGciOiJFUzI1NiIsInR5cCI6IkpXVCJ9"}`),
			output: []byte(`{"accessToken":"[MASKED]","refreshToken":"[MASKED]"}`),
		},
		{
			name:   "API key field",
			input:  []byte(`{"model":"sim-1","api_key":"sk-abc123"}`),
			output: []byte(`{"model":"sim-1","api_key":"[MASKED]"}`),
		},
		{
			name:   "Bearer header",
			input:  []byte("POST /v1/chat/completions HTTP/1.1\r\nAuthorization: Bearer sk-abc123\r\n\r\n"),
			output: []byte("POST /v1/chat/completions HTTP/1.1\r\nAuthorization: Bearer [MASKED]\r\n\r\n"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
