package cmd

import "testing"

func TestParseHeaders(t *testing.T) {
	headers, err := parseHeaders([]string{"X-Trace=abc", "Accept = application/json"})
	if err != nil {
		t.Fatalf("parseHeaders() error: %v", err)
	}
	if headers.Get("X-Trace") != "abc" {
		t.Errorf("X-Trace = %q", headers.Get("X-Trace"))
	}
	if headers.Get("Accept") != "application/json" {
		t.Errorf("Accept = %q, expected whitespace trimmed", headers.Get("Accept"))
	}

	if _, err := parseHeaders([]string{"no-separator"}); err == nil {
		t.Error("expected error for header without =")
	}
}

func TestCompilerConfigEnvFallback(t *testing.T) {
	t.Setenv("API_TOKEN", "env-token")
	t.Setenv("API_BASE_URL", "http://env.example.com")

	f := &compileFlags{}
	cfg, err := f.compilerConfig()
	if err != nil {
		t.Fatalf("compilerConfig() error: %v", err)
	}
	if cfg.Token != "env-token" {
		t.Errorf("Token = %q, expected env fallback", cfg.Token)
	}
	if cfg.BaseURL != "http://env.example.com" {
		t.Errorf("BaseURL = %q, expected env fallback", cfg.BaseURL)
	}

	f = &compileFlags{apiToken: "flag-token", baseURL: "http://flag.example.com"}
	cfg, err = f.compilerConfig()
	if err != nil {
		t.Fatalf("compilerConfig() error: %v", err)
	}
	if cfg.Token != "flag-token" || cfg.BaseURL != "http://flag.example.com" {
		t.Errorf("flags should win over env: %+v", cfg)
	}
}
