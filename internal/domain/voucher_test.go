package domain

import (
	"testing"
	"time"
)

func TestVoucher_Journal(t *testing.T) {
	posting := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	v := &Voucher{
		Type:        VoucherSalesInvoice,
		Number:      "SINV-001",
		CompanyID:   "co-1",
		PostingDate: posting,
		Currency:    "USD",
		Entries: []VoucherEntry{
			{AccountID: "ar", Debit: d("110"), PartyType: PartyCustomer, PartyID: "cust-1"},
			{AccountID: "sales", Credit: d("100"), Remarks: "widgets"},
			{AccountID: "vat", Credit: d("10")},
		},
		Context: PostingContext{UserID: "u1", Role: RoleAccountant},
	}

	j := v.Journal()

	if j.Number != "SINV-001" || j.Currency != "USD" || !j.PostingDate.Equal(posting) {
		t.Errorf("header not carried over: %+v", j)
	}

	if j.Context.CompanyID != "co-1" {
		t.Errorf("expected company filled from voucher, got %q", j.Context.CompanyID)
	}

	if len(j.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(j.Lines))
	}

	if j.Lines[1].Description != "widgets" {
		t.Errorf("expected remarks projected to description, got %q", j.Lines[1].Description)
	}

	if !j.Balanced() {
		t.Errorf("expected projected journal balanced, difference %s", j.Difference())
	}
}

func TestVoucher_Action(t *testing.T) {
	tests := []struct {
		vtype VoucherType
		want  Action
	}{
		{VoucherSalesInvoice, ActionPostInvoice},
		{VoucherPurchaseInvoice, ActionPostInvoice},
		{VoucherPaymentEntry, ActionPostPayment},
		{VoucherJournalEntry, ActionPostJournal},
	}

	for _, tt := range tests {
		v := &Voucher{Type: tt.vtype}
		if got := v.Action(); got != tt.want {
			t.Errorf("Action() for %s = %s, want %s", tt.vtype, got, tt.want)
		}
	}
}

func TestVoucherType_IsValid(t *testing.T) {
	for _, vt := range []VoucherType{VoucherSalesInvoice, VoucherPurchaseInvoice, VoucherPaymentEntry, VoucherJournalEntry} {
		if !vt.IsValid() {
			t.Errorf("expected %s to be valid", vt)
		}
	}

	if VoucherType("credit_note").IsValid() {
		t.Error("expected unknown type to be invalid")
	}
}

func TestVoucherEntry_HasAgainstVoucher(t *testing.T) {
	e := VoucherEntry{AgainstVoucherType: VoucherSalesInvoice, AgainstVoucherNumber: "SINV-001"}
	if !e.HasAgainstVoucher() {
		t.Error("expected against voucher link")
	}

	if (VoucherEntry{}).HasAgainstVoucher() {
		t.Error("expected no against voucher link")
	}
}
