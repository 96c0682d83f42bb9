// Package proxy is a minimal HTTP forward proxy that consults the egress
// policy before relaying anything. It exists so agent sandboxes can be
// pointed at a single choke point; it is deliberately small and keeps no
// state between requests.
package proxy

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/agentlock/agentlock/internal/policy"
)

// Handler relays plain HTTP requests and CONNECT tunnels for hosts the
// policy allows.
type Handler struct {
	Policy policy.Policy

	// Transport serves outbound plain-HTTP requests; nil uses a default.
	Transport http.RoundTripper
	// Dial opens CONNECT tunnels; nil uses net.Dialer with a timeout.
	Dial func(network, addr string) (net.Conn, error)
}

// New returns a ready Handler for the given policy.
func New(p policy.Policy) *Handler {
	return &Handler{Policy: p}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	host := r.Host
	if r.URL != nil && r.URL.Host != "" {
		host = r.URL.Host
	}
	d := h.Policy.Decide(host)
	if !d.Allow {
		http.Error(w, fmt.Sprintf("egress to %s denied: %s", host, d.Reason), http.StatusForbidden)
		return
	}

	if r.Method == http.MethodConnect {
		h.tunnel(w, r)
		return
	}
	h.forward(w, r)
}

// forward relays one plain-HTTP request. Only absolute-URI requests make
// sense through a forward proxy.
func (h *Handler) forward(w http.ResponseWriter, r *http.Request) {
	if !r.URL.IsAbs() {
		http.Error(w, "this is a forward proxy; request must use an absolute URI", http.StatusBadRequest)
		return
	}
	out := r.Clone(r.Context())
	out.RequestURI = ""
	stripHopHeaders(out.Header)

	rt := h.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	resp, err := rt.RoundTrip(out)
	if err != nil {
		http.Error(w, "upstream error: "+err.Error(), http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	stripHopHeaders(resp.Header)
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}

// tunnel splices a CONNECT request onto a raw TCP connection.
func (h *Handler) tunnel(w http.ResponseWriter, r *http.Request) {
	dial := h.Dial
	if dial == nil {
		d := net.Dialer{Timeout: 10 * time.Second}
		dial = d.Dial
	}
	upstream, err := dial("tcp", r.Host)
	if err != nil {
		http.Error(w, "cannot reach "+r.Host, http.StatusBadGateway)
		return
	}

	hj, ok := w.(http.Hijacker)
	if !ok {
		upstream.Close()
		http.Error(w, "hijacking unsupported", http.StatusInternalServerError)
		return
	}
	client, _, err := hj.Hijack()
	if err != nil {
		upstream.Close()
		return
	}
	_, _ = client.Write([]byte("HTTP/1.1 200 Connection Established\r\n\r\n"))

	go splice(upstream, client)
	go splice(client, upstream)
}

func splice(dst io.WriteCloser, src io.ReadCloser) {
	defer dst.Close()
	defer src.Close()
	_, _ = io.Copy(dst, src)
}

var hopHeaders = []string{
	"Connection",
	"Proxy-Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

func stripHopHeaders(h http.Header) {
	for _, k := range hopHeaders {
		h.Del(k)
	}
}

// ListenAndServe runs the proxy on addr until the server fails.
func ListenAndServe(addr string, p policy.Policy) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           New(p),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
