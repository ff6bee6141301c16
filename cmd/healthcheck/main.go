// Command healthcheck probes a running shipstub and exits non-zero unless
// GET /health answers 200 before the deadline. Container images run it as
// their HEALTHCHECK.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"
)

const defaultStubAddr = "127.0.0.1:5000"

func main() {
	addr := flag.String("addr", os.Getenv("SHIPADMIN_STUB_LISTEN_ADDR"), "stub listen address")
	timeout := flag.Duration("timeout", 2*time.Second, "probe deadline")
	flag.Parse()

	if err := probe(context.Background(), healthURL(*addr), *timeout); err != nil {
		fmt.Fprintln(os.Stderr, "healthcheck:", err)
		os.Exit(1)
	}
}

// healthURL maps the stub's listen address to a dialable URL. The probe runs
// next to the stub, so wildcard and empty hosts become loopback.
func healthURL(listenAddr string) string {
	host, port, err := net.SplitHostPort(listenAddr)
	if err != nil {
		host, port, _ = net.SplitHostPort(defaultStubAddr)
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
	}

	u := url.URL{Scheme: "http", Host: net.JoinHostPort(host, port), Path: "/health"}
	return u.String()
}

func probe(ctx context.Context, target string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("building probe: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("probing %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("probing %s: got %s", target, resp.Status)
	}
	return nil
}
