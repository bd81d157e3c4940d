package httpapi

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded chain uses first hop", headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, remote: "10.0.0.2:5000", want: "203.0.113.7"},
		{name: "fly header wins", headers: map[string]string{"Fly-Client-IP": "198.51.100.4", "X-Real-IP": "10.0.0.3"}, remote: "10.0.0.2:5000", want: "198.51.100.4"},
		{name: "garbage header falls through", headers: map[string]string{"X-Real-IP": "not-an-ip"}, remote: "192.0.2.10:443", want: "192.0.2.10"},
		{name: "nothing parseable", remote: "pipe", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}
			if got := clientIP(req); got != tt.want {
				t.Fatalf("clientIP()=%q want=%q", got, tt.want)
			}
		})
	}
}
