// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHTTPPackager(t *testing.T) {
	var gotPath, gotPlatform string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPlatform = r.URL.Query().Get("platform")
		w.Write([]byte("bundle"))
	}))
	defer srv.Close()

	logs := &bytes.Buffer{}
	p := &HTTPPackager{
		Host:   strings.TrimPrefix(srv.URL, "http://"),
		Logger: slog.New(slog.NewTextHandler(logs, nil)),
	}
	assert.NoError(t, p.PrewarmBundleCache(context.Background(), MacOS))
	assert.Equal(t, "/index.bundle", gotPath)
	assert.Equal(t, "macos", gotPlatform)
	assert.Contains(t, logs.String(), "prewarmed")
}

func TestHTTPPackagerFailureIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "broken", http.StatusInternalServerError)
	}))
	defer srv.Close()

	logs := &bytes.Buffer{}
	p := &HTTPPackager{
		Host:   strings.TrimPrefix(srv.URL, "http://"),
		Logger: slog.New(slog.NewTextHandler(logs, nil)),
	}
	assert.NoError(t, p.PrewarmBundleCache(context.Background(), Android))
	assert.Contains(t, logs.String(), "could not prewarm")
}

func TestHTTPPackagerTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(30 * time.Second):
		}
	}))
	defer srv.Close()

	logs := &bytes.Buffer{}
	p := &HTTPPackager{
		Host:    strings.TrimPrefix(srv.URL, "http://"),
		Timeout: 50 * time.Millisecond,
		Logger:  slog.New(slog.NewTextHandler(logs, nil)),
	}
	start := time.Now()
	assert.NoError(t, p.PrewarmBundleCache(context.Background(), IOS))
	assert.Less(t, time.Since(start), 10*time.Second)
	assert.Contains(t, logs.String(), "could not prewarm")
	assert.Contains(t, logs.String(), "deadline exceeded")
}

func TestBundleURL(t *testing.T) {
	p := &HTTPPackager{Host: DefaultPackagerHost}
	assert.Equal(t, "http://localhost:8081/index.bundle?platform=ios", p.BundleURL(IOS))
}

func TestNopPackager(t *testing.T) {
	assert.NoError(t, NopPackager{}.PrewarmBundleCache(context.Background(), Windows))
}
