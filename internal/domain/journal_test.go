package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLedgerLine_WellFormed(t *testing.T) {
	tests := []struct {
		name string
		line LedgerLine
		want bool
	}{
		{
			name: "debit only",
			line: LedgerLine{AccountID: "a1", Debit: d("100")},
			want: true,
		},
		{
			name: "credit only",
			line: LedgerLine{AccountID: "a1", Credit: d("100")},
			want: true,
		},
		{
			name: "both sides set",
			line: LedgerLine{AccountID: "a1", Debit: d("50"), Credit: d("50")},
			want: false,
		},
		{
			name: "neither side set",
			line: LedgerLine{AccountID: "a1"},
			want: false,
		},
		{
			name: "negative debit",
			line: LedgerLine{AccountID: "a1", Debit: d("-10")},
			want: false,
		},
		{
			name: "negative credit",
			line: LedgerLine{AccountID: "a1", Credit: d("-10")},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.WellFormed(); got != tt.want {
				t.Errorf("WellFormed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJournal_Balanced(t *testing.T) {
	tests := []struct {
		name  string
		lines []LedgerLine
		want  bool
	}{
		{
			name: "exactly balanced",
			lines: []LedgerLine{
				{AccountID: "a1", Debit: d("100")},
				{AccountID: "a2", Credit: d("100")},
			},
			want: true,
		},
		{
			name: "off by exactly the tolerance",
			lines: []LedgerLine{
				{AccountID: "a1", Debit: d("100.01")},
				{AccountID: "a2", Credit: d("100")},
			},
			want: true,
		},
		{
			name: "off by more than the tolerance",
			lines: []LedgerLine{
				{AccountID: "a1", Debit: d("100.011")},
				{AccountID: "a2", Credit: d("100")},
			},
			want: false,
		},
		{
			name: "grossly unbalanced",
			lines: []LedgerLine{
				{AccountID: "a1", Debit: d("500")},
				{AccountID: "a2", Credit: d("100")},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := &Journal{Lines: tt.lines}
			if got := j.Balanced(); got != tt.want {
				t.Errorf("Balanced() = %v, want %v (difference %s)", got, tt.want, j.Difference())
			}
		})
	}
}

func TestJournal_Totals(t *testing.T) {
	j := &Journal{Lines: []LedgerLine{
		{AccountID: "a1", Debit: d("60")},
		{AccountID: "a2", Debit: d("40")},
		{AccountID: "a3", Credit: d("100")},
	}}

	if !j.TotalDebit().Equal(d("100")) {
		t.Errorf("TotalDebit() = %s, want 100", j.TotalDebit())
	}

	if !j.TotalCredit().Equal(d("100")) {
		t.Errorf("TotalCredit() = %s, want 100", j.TotalCredit())
	}

	if !j.Difference().IsZero() {
		t.Errorf("Difference() = %s, want 0", j.Difference())
	}
}

func TestJournal_AccountIDs(t *testing.T) {
	j := &Journal{Lines: []LedgerLine{
		{AccountID: "cash", Debit: d("100")},
		{AccountID: "revenue", Credit: d("60")},
		{AccountID: "cash", Credit: d("40")},
		{AccountID: "tax", Credit: d("0")},
	}}

	got := j.AccountIDs()
	want := []string{"cash", "revenue", "tax"}

	if len(got) != len(want) {
		t.Fatalf("AccountIDs() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AccountIDs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(d("100"), d("100.01")) {
		t.Error("expected 100 and 100.01 to be within tolerance")
	}

	if WithinTolerance(d("100"), d("100.02")) {
		t.Error("expected 100 and 100.02 to be outside tolerance")
	}
}
