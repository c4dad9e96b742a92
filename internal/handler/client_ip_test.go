package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		remoteAddr string
		want       string
	}{
		{"socket address", "", "192.0.2.1:1234", "192.0.2.1"},
		{"socket without port", "", "192.0.2.1", "192.0.2.1"},
		{"first forwarded entry", "203.0.113.5, 10.0.0.1", "10.0.0.2:80", "203.0.113.5"},
		{"single forwarded entry", " 203.0.113.5 ", "10.0.0.2:80", "203.0.113.5"},
		{"empty first entry falls back", " , 10.0.0.1", "192.0.2.1:1234", "192.0.2.1"},
		{"ipv6 socket", "", "[2001:db8::1]:443", "2001:db8::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/contact", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}
