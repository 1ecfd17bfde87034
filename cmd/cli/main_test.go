package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/counterbook/counterbook/internal/domain"
	"github.com/counterbook/counterbook/internal/infrastructure/auth"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

// pointAt aims the client globals at a test server and restores them.
func pointAt(t *testing.T, server *httptest.Server) {
	t.Helper()

	origURL, origTimeout, origToken, origKey := baseURL, timeout, authToken, idempotencyKey
	baseURL = server.URL
	timeout = 5 * time.Second

	t.Cleanup(func() {
		baseURL, timeout, authToken, idempotencyKey = origURL, origTimeout, origToken, origKey
	})
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected short unchanged, got %q", got)
	}

	if got := truncate("longerstring", 6); got != "lon..." {
		t.Fatalf("expected lon..., got %q", got)
	}
}

func TestPrintJSON(t *testing.T) {
	out := captureOutput(t, func() {
		printJSON(struct {
			A int `json:"a"`
		}{A: 1})
	})

	expected := "{\n  \"a\": 1\n}\n"
	if out != expected {
		t.Fatalf("unexpected json output:\n%s", out)
	}
}

func TestReadDocumentMissingFile(t *testing.T) {
	if _, err := readDocument(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestTokenCmd(t *testing.T) {
	cmd := tokenCmd()
	cmd.SetArgs([]string{"--user", "u-1", "--secret", "cli-secret", "--role", "manager"})

	out := captureOutput(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	claims, err := auth.NewJWTManager("cli-secret", time.Hour).Verify(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("minted token does not verify: %v", err)
	}

	if claims.UserID != "u-1" {
		t.Fatalf("expected user u-1, got %s", claims.UserID)
	}
	if claims.Role != domain.RoleManager {
		t.Fatalf("expected role manager, got %s", claims.Role)
	}
}

func TestTokenCmdRejectsUnknownRole(t *testing.T) {
	cmd := tokenCmd()
	cmd.SetArgs([]string{"--user", "u-1", "--secret", "s", "--role", "bookkeeper"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for an unknown role")
	}
}

func TestVoucherSubmitCmdSendsHeaders(t *testing.T) {
	var gotPath, gotKey, gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("Idempotency-Key")
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"posted":true}`))
	}))
	defer server.Close()

	pointAt(t, server)
	authToken = "test-token"

	file := filepath.Join(t.TempDir(), "voucher.json")
	if err := os.WriteFile(file, []byte(`{"type":"journal_entry"}`), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cmd := voucherSubmitCmd()
	cmd.SetArgs([]string{"-f", file, "--idempotency-key", "submit-42"})

	out := captureOutput(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	if gotPath != "/api/v1/vouchers" {
		t.Fatalf("expected /api/v1/vouchers, got %s", gotPath)
	}
	if gotKey != "submit-42" {
		t.Fatalf("expected idempotency key submit-42, got %q", gotKey)
	}
	if gotAuth != "Bearer test-token" {
		t.Fatalf("expected bearer token, got %q", gotAuth)
	}
	if !strings.Contains(out, `"posted": true`) {
		t.Fatalf("expected response echoed, got %q", out)
	}
}

func TestVoucherSubmitCmdReportsFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"duplicate voucher"}`))
	}))
	defer server.Close()

	pointAt(t, server)

	file := filepath.Join(t.TempDir(), "voucher.json")
	if err := os.WriteFile(file, []byte(`{}`), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cmd := voucherSubmitCmd()
	cmd.SetArgs([]string{"-f", file})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected an error for a conflict response")
	}
	if !strings.Contains(err.Error(), "409") {
		t.Fatalf("expected the status in the error, got %v", err)
	}
}

func TestTrialBalanceCmdRendersTable(t *testing.T) {
	var gotPath, gotQuery string

	tb := domain.TrialBalance{
		CompanyID: "co-1",
		Currency:  "EUR",
		FromDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ToDate:    time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Rows: []domain.TrialBalanceRow{{
			AccountID:    "acc-cash",
			AccountCode:  "1100",
			AccountName:  "Cash at Bank",
			PeriodDebit:  decimal.NewFromInt(500),
			ClosingDebit: decimal.NewFromInt(500),
		}},
		Totals: domain.TrialBalanceTotals{
			PeriodDebit:  decimal.NewFromInt(500),
			ClosingDebit: decimal.NewFromInt(500),
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		writeTestJSON(t, w, tb)
	}))
	defer server.Close()

	pointAt(t, server)

	cmd := trialBalanceCmd()
	cmd.SetArgs([]string{"--company", "co-1", "--from", "2025-01-01", "--to", "2025-03-31"})

	out := captureOutput(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	if gotPath != "/api/v1/companies/co-1/reports/trial-balance" {
		t.Fatalf("unexpected path %s", gotPath)
	}
	if !strings.Contains(gotQuery, "from=2025-01-01") || !strings.Contains(gotQuery, "to=2025-03-31") {
		t.Fatalf("expected window in query, got %s", gotQuery)
	}

	for _, want := range []string{"1100", "Cash at Bank", "500.00", "TOTAL"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table output:\n%s", want, out)
		}
	}
}

func TestConsistencyCmdFailsOnDirtyLedger(t *testing.T) {
	report := domain.ConsistencyReport{
		CompanyID:       "co-1",
		VouchersChecked: 10,
		Unbalanced: []domain.VoucherCheck{{
			VoucherType:   domain.VoucherJournalEntry,
			VoucherNumber: "JV-7",
			TotalDebit:    decimal.NewFromInt(100),
			TotalCredit:   decimal.NewFromInt(90),
		}},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(t, w, report)
	}))
	defer server.Close()

	pointAt(t, server)

	cmd := consistencyCmd()
	cmd.SetArgs([]string{"--company", "co-1"})

	var err error
	captureOutput(t, func() { err = cmd.Execute() })

	if err == nil {
		t.Fatal("expected an error for an unbalanced ledger")
	}
	if !strings.Contains(err.Error(), "1 unbalanced") {
		t.Fatalf("expected the unbalanced count, got %v", err)
	}
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}
	_, _ = w.Write(data)
}
