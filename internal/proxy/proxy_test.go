package proxy

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agentlock/agentlock/internal/policy"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func allowAll() policy.Policy {
	return policy.Policy{Egress: policy.Egress{Default: policy.ActionAllow}}
}

func TestProxy_ForwardsAllowedRequest(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Upstream", "yes")
		io.WriteString(w, "hello from upstream")
	}))
	defer upstream.Close()

	h := New(allowAll())
	req := httptest.NewRequest(http.MethodGet, upstream.URL+"/x", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "hello from upstream" {
		t.Fatalf("body = %q", rec.Body.String())
	}
	if rec.Header().Get("X-Upstream") != "yes" {
		t.Fatal("upstream headers not copied")
	}
}

func TestProxy_DeniedHostGets403(t *testing.T) {
	p := policy.Policy{Egress: policy.Egress{
		Default: policy.ActionAllow,
		Rules: []policy.Rule{
			{Pattern: "*.evil.test", Allow: false, Reason: "blocked by policy"},
		},
	}}
	h := New(p)

	req := httptest.NewRequest(http.MethodGet, "http://api.evil.test/steal", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "blocked by policy") {
		t.Fatalf("reason missing from body: %q", rec.Body.String())
	}
}

func TestProxy_DeniedConnectNeverDials(t *testing.T) {
	p := policy.Policy{Egress: policy.Egress{Default: policy.ActionDeny}}
	h := New(p)
	h.Dial = func(network, addr string) (net.Conn, error) {
		t.Fatalf("dial reached for denied host %s", addr)
		return nil, nil
	}

	req := httptest.NewRequest(http.MethodConnect, "//secret.internal:443", nil)
	req.Host = "secret.internal:443"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestProxy_RelativeURIRejected(t *testing.T) {
	h := New(allowAll())
	req := httptest.NewRequest(http.MethodGet, "/local/path", nil)
	req.Host = "whatever.test"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestProxy_StripsHopHeadersBothWays(t *testing.T) {
	var upstreamSaw http.Header
	h := New(allowAll())
	h.Transport = roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		upstreamSaw = r.Header.Clone()
		resp := &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Keep-Alive": {"timeout=5"}, "X-Ok": {"1"}},
			Body:       io.NopCloser(strings.NewReader("ok")),
		}
		return resp, nil
	})

	req := httptest.NewRequest(http.MethodGet, "http://api.example.test/", nil)
	req.Header.Set("Proxy-Connection", "keep-alive")
	req.Header.Set("X-Custom", "kept")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if upstreamSaw.Get("Proxy-Connection") != "" {
		t.Fatal("hop header forwarded upstream")
	}
	if upstreamSaw.Get("X-Custom") != "kept" {
		t.Fatal("end-to-end header dropped")
	}
	if rec.Header().Get("Keep-Alive") != "" {
		t.Fatal("hop header relayed back to client")
	}
	if rec.Header().Get("X-Ok") != "1" {
		t.Fatal("upstream header dropped")
	}
}

func TestProxy_UpstreamFailureIs502(t *testing.T) {
	h := New(allowAll())
	h.Transport = roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return nil, io.ErrUnexpectedEOF
	})

	req := httptest.NewRequest(http.MethodGet, "http://api.example.test/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}
