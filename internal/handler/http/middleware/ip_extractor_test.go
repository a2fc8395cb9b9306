package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteAddrExtractor(t *testing.T) {
	tests := []struct {
		remote  string
		want    string
		wantErr bool
	}{
		{remote: "192.168.1.1:54321", want: "192.168.1.1"},
		{remote: "[2001:db8::1]:8080", want: "2001:db8::1"},
		{remote: "127.0.0.1", want: "127.0.0.1"},
		{remote: "", wantErr: true},
		{remote: "not-an-ip", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			got, err := RemoteAddrExtractor{}.ExtractIP(req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrustedProxyExtractor(t *testing.T) {
	e, err := NewTrustedProxyExtractor([]string{"10.0.0.0/8", "192.0.2.10"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		remote string
		xff    string
		xri    string
		want   string
	}{
		{name: "trusted proxy with xff", remote: "10.1.2.3:443", xff: "203.0.113.5, 10.1.2.3", want: "203.0.113.5"},
		{name: "trusted single ip with x-real-ip", remote: "192.0.2.10:80", xri: "203.0.113.9", want: "203.0.113.9"},
		{name: "untrusted peer ignores headers", remote: "198.51.100.1:80", xff: "203.0.113.5", want: "198.51.100.1"},
		{name: "trusted proxy with garbage header", remote: "10.0.0.1:80", xff: "nonsense", want: "10.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			got, err := e.ExtractIP(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	prefixes, err := ParseTrustedProxies([]string{" 10.0.0.0/8 ", "", "2001:db8::1", "172.16.5.4/12"})
	require.NoError(t, err)
	require.Len(t, prefixes, 3)
	assert.Equal(t, "10.0.0.0/8", prefixes[0].String())
	assert.Equal(t, "2001:db8::1/128", prefixes[1].String())
	assert.Equal(t, "172.16.0.0/12", prefixes[2].String())

	_, err = ParseTrustedProxies([]string{"10.0.0.0/33"})
	assert.Error(t, err)
	_, err = ParseTrustedProxies([]string{"proxy.internal"})
	assert.Error(t, err)
}
