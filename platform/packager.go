// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Packager is the development server that bundles app code.
type Packager interface {
	// PrewarmBundleCache asks the packager to build the bundle for
	// the given platform ahead of the first app request.
	PrewarmBundleCache(ctx context.Context, platform PlatformType) error
}

// NopPackager is a [Packager] that does nothing.
type NopPackager struct{}

func (NopPackager) PrewarmBundleCache(context.Context, PlatformType) error { return nil }

// DefaultPackagerHost is the default host and port of the packager.
const DefaultPackagerHost = "localhost:8081"

// DefaultPrewarmTimeout is the default limit on how long
// prewarming the bundle cache may take.
const DefaultPrewarmTimeout = 30 * time.Second

// HTTPPackager is a [Packager] running at an HTTP address.
// Prewarming is best-effort: failures are logged, not returned.
type HTTPPackager struct {
	// Host is the host and port of the packager.
	Host string

	// Client is the HTTP client to use; if nil, [http.DefaultClient] is used.
	Client *http.Client

	// Timeout is the limit on how long prewarming may take;
	// if 0, [DefaultPrewarmTimeout] is used.
	Timeout time.Duration

	// Logger is the logger for prewarm results; if nil, [slog.Default] is used.
	Logger *slog.Logger
}

// BundleURL returns the URL of the bundle for the given platform.
func (p *HTTPPackager) BundleURL(platform PlatformType) string {
	u := url.URL{
		Scheme:   "http",
		Host:     p.Host,
		Path:     "/index.bundle",
		RawQuery: url.Values{"platform": {string(platform)}}.Encode(),
	}
	return u.String()
}

func (p *HTTPPackager) PrewarmBundleCache(ctx context.Context, platform PlatformType) error {
	l := p.Logger
	if l == nil {
		l = slog.Default()
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultPrewarmTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	err := p.fetch(ctx, p.BundleURL(platform))
	if err != nil {
		l.Warn("could not prewarm the bundle cache", "platform", platform, "error", err)
		return nil
	}
	l.Info("the bundle cache was prewarmed", "platform", platform)
	return nil
}

func (p *HTTPPackager) fetch(ctx context.Context, u string) error {
	c := p.Client
	if c == nil {
		c = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}
