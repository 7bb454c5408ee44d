package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/saucenao"
	"github.com/kailas-cloud/saucenao/internal/config"
	"github.com/kailas-cloud/saucenao/internal/saucetest"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"canceled", fmt.Errorf("lookup: %w", context.Canceled), ExitInterrupt},
		{"short limit", saucenao.ErrShortLimit, ExitRateLimit},
		{"daily limit", saucenao.ErrDailyLimit, ExitRateLimit},
		{"too many failed", saucenao.ErrTooManyFailedRequests, ExitRateLimit},
		{"invalid key", saucenao.ErrInvalidAPIKey, ExitSetup},
		{"banned", saucenao.ErrBanned, ExitSetup},
		{"invalid image", saucenao.ErrInvalidImage, ExitRejected},
		{"unknown status", saucenao.ErrUnknownStatus, ExitRejected},
		{"other", errors.New("boom"), ExitGeneral},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := exitCode(tc.err); got != tc.want {
				t.Errorf("exitCode(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func testConfig(srv *saucetest.Server) *config.Config {
	cfg := config.Config{}
	cfg.SauceNAO.BaseURL = srv.SearchURL()
	cfg.Relations.BaseURL = srv.RelationsURL()
	cfg.ApplyDefaults()
	return &cfg
}

func run(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(cfg, zap.NewNop())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestURLCommand(t *testing.T) {
	srv := saucetest.NewServer()
	defer srv.Close()
	srv.SetRelations(saucetest.SampleAniDBID, saucetest.SampleRelations)

	out, err := run(t, testConfig(srv), "url", "https://example.com/a.png", "--min-similarity", "60", "--resolve")
	if err != nil {
		t.Fatalf("url command failed: %v", err)
	}
	if !strings.Contains(out, "3 result(s)") {
		t.Errorf("unexpected summary:\n%s", out)
	}
	if !strings.Contains(out, "https://anilist.co/anime/2167") {
		t.Errorf("expected resolved anilist link:\n%s", out)
	}
	if strings.Contains(out, "deviantart") {
		t.Errorf("low similarity match should be filtered:\n%s", out)
	}
}

func TestTestCommand_Failure(t *testing.T) {
	srv := saucetest.NewServer()
	defer srv.Close()
	srv.RespondSearch(http.StatusForbidden, "")

	out, err := run(t, testConfig(srv), "test")
	if !errors.Is(err, saucenao.ErrInvalidAPIKey) {
		t.Fatalf("expected ErrInvalidAPIKey, got %v", err)
	}
	if !strings.Contains(out, "status:  failed") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestURLCommand_Args(t *testing.T) {
	srv := saucetest.NewServer()
	defer srv.Close()

	if _, err := run(t, testConfig(srv), "url"); err == nil {
		t.Fatal("expected usage error")
	}
}

func TestURLCommand_LogsCarryCommand(t *testing.T) {
	srv := saucetest.NewServer()
	defer srv.Close()
	srv.FailRelations()

	core, logs := observer.New(zapcore.ErrorLevel)
	cmd := newRootCmd(testConfig(srv), zap.New(core))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"url", "https://example.com/a.png", "--resolve"})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("url command failed: %v", err)
	}

	entries := logs.FilterMessage("Relation lookup failed").All()
	if len(entries) == 0 {
		t.Fatal("expected relation failure to be logged")
	}
	if got := entries[0].ContextMap()["command"]; got != "url" {
		t.Errorf("command field = %v, want url", got)
	}
}

func TestURLCommand_ExplicitZeroConfig(t *testing.T) {
	srv := saucetest.NewServer()
	defer srv.Close()

	cfg := testConfig(srv)
	db, tolerance := 0, 0.0
	cfg.SauceNAO.DB = &db
	cfg.Ranking.Tolerance = &tolerance

	out, err := run(t, cfg, "url", "https://example.com/a.png", "--priority", "9")
	if err != nil {
		t.Fatalf("url command failed: %v", err)
	}

	reqs := srv.Requests()
	if len(reqs) != 1 || reqs[0].Params.Get("db") != "0" {
		t.Fatalf("expected db=0 to be sent, got %+v", reqs)
	}
	// A zero tolerance disables the window, so the low booru match leads.
	first := out[strings.Index(out, "#1 "):]
	first = first[:strings.Index(first, "\n")]
	if !strings.Contains(first, "55.10%") {
		t.Errorf("first result = %q, want the prioritized booru match", first)
	}
}
