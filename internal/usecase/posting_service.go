package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/counterbook/counterbook/internal/domain"
	"github.com/counterbook/counterbook/internal/infrastructure/metrics"
)

// PostingService turns validated documents into posted vouchers. It
// owns the write path: validate, begin a transaction, insert the
// voucher header and its entries, record the audit trail, commit.
// Reads stay in the validators and report use cases.
type PostingService struct {
	txManager TransactionManager
	vouchers  *VoucherValidator
	invoices  *InvoicePosting
	payments  *PaymentPosting
	writer    LedgerWriter
	ledger    LedgerQuery
	audit     AuditRepository
	authz     AuthorizationPolicy
	idGen     IDGenerator
	retrier   Retrier
	metrics   *metrics.Metrics
}

// NewPostingService creates a new PostingService.
func NewPostingService(
	txManager TransactionManager,
	vouchers *VoucherValidator,
	invoices *InvoicePosting,
	payments *PaymentPosting,
	writer LedgerWriter,
	ledger LedgerQuery,
	audit AuditRepository,
	authz AuthorizationPolicy,
	idGen IDGenerator,
) *PostingService {
	return &PostingService{
		txManager: txManager,
		vouchers:  vouchers,
		invoices:  invoices,
		payments:  payments,
		writer:    writer,
		ledger:    ledger,
		audit:     audit,
		authz:     authz,
		idGen:     idGen,
	}
}

// WithRetrier makes voucher persistence replay the whole transaction
// on transient storage conflicts. Without it, conflicts surface to the
// caller on the first attempt.
func (s *PostingService) WithRetrier(r Retrier) *PostingService {
	s.retrier = r
	return s
}

// WithMetrics enables posting instrumentation. m may be nil.
func (s *PostingService) WithMetrics(m *metrics.Metrics) *PostingService {
	s.metrics = m
	return s
}

func (s *PostingService) withRetry(ctx context.Context, op func() error) error {
	if s.retrier == nil {
		return op()
	}

	return s.retrier.Retry(ctx, op)
}

// SubmitVoucherResult reports what happened to a submitted voucher.
type SubmitVoucherResult struct {
	Posted           bool
	Record           *domain.VoucherRecord
	RequiresApproval bool
	ApproverRoles    []domain.Role
	Validation       *domain.VoucherValidation
}

// PostDocumentResult pairs a builder's outcome with the submit outcome.
// Submit is nil when the build failed or the caller asked for a preview.
type PostDocumentResult struct {
	Build  *domain.PostingResult
	Submit *SubmitVoucherResult
}

// SubmitVoucher validates the voucher and, if it passes, posts it
// atomically. Validation failures come back on the result; the error
// return carries infrastructure failures and storage conflicts such as
// a duplicate voucher number.
func (s *PostingService) SubmitVoucher(ctx context.Context, vch *domain.Voucher) (*SubmitVoucherResult, error) {
	start := time.Now()

	validation, err := s.vouchers.Validate(ctx, vch)
	if err != nil {
		return nil, err
	}

	result := &SubmitVoucherResult{Validation: validation}
	if !validation.Valid {
		if s.metrics != nil {
			s.metrics.VouchersSubmitted.WithLabelValues(string(vch.Type), "rejected").Inc()
		}
		return result, nil
	}

	decision, err := s.authz.CheckSegregationOfDuties(ctx, vch.Action(), vch.Context.Role)
	if err != nil {
		return nil, err
	}

	result.RequiresApproval = decision.RequiresApproval
	result.ApproverRoles = decision.ApproverRoles

	record, err := s.persistVoucher(ctx, vch)
	if err != nil {
		return nil, err
	}

	result.Posted = true
	result.Record = record

	if s.metrics != nil {
		s.metrics.VouchersSubmitted.WithLabelValues(string(vch.Type), "posted").Inc()
		s.metrics.PostingDuration.Observe(time.Since(start).Seconds())
		s.metrics.PostedAmount.Observe(record.TotalDebit.InexactFloat64())
	}

	return result, nil
}

func (s *PostingService) persistVoucher(ctx context.Context, vch *domain.Voucher) (*domain.VoucherRecord, error) {
	now := time.Now().UTC()
	currency := domain.NormalizeCurrency(vch.Currency)

	number := vch.Number
	if number == "" {
		number = fmt.Sprintf("%s-%s", voucherPrefix(vch.Type), s.idGen.Generate())
	}

	projection := vch.Journal()

	record := &domain.VoucherRecord{
		ID:          s.idGen.Generate(),
		CompanyID:   vch.CompanyID,
		Type:        vch.Type,
		Number:      number,
		PostingDate: vch.PostingDate,
		FiscalYear:  domain.FiscalYearOf(vch.PostingDate),
		Currency:    currency,
		TotalDebit:  projection.TotalDebit(),
		TotalCredit: projection.TotalCredit(),
		CreatedBy:   vch.Context.UserID,
		CreatedAt:   now,
	}

	for _, e := range vch.Entries {
		if e.PartyID != "" {
			record.PartyType = e.PartyType
			record.PartyID = e.PartyID
			break
		}
	}

	entries := make([]*domain.LedgerEntry, 0, len(vch.Entries))
	for _, e := range vch.Entries {
		entries = append(entries, &domain.LedgerEntry{
			ID:            s.idGen.Generate(),
			CompanyID:     vch.CompanyID,
			AccountID:     e.AccountID,
			VoucherType:   vch.Type,
			VoucherNumber: number,
			PostingDate:   vch.PostingDate,
			FiscalYear:    record.FiscalYear,
			Debit:         e.Debit,
			Credit:        e.Credit,
			Currency:      currency,
			PartyType:     e.PartyType,
			PartyID:       e.PartyID,
			CostCenter:    e.CostCenter,
			Project:       e.Project,
			AgainstType:   e.AgainstVoucherType,
			AgainstNumber: e.AgainstVoucherNumber,
			Remarks:       e.Remarks,
			CreatedBy:     vch.Context.UserID,
			CreatedAt:     now,
		})
	}

	auditLog := &domain.AuditLog{
		ID:           s.idGen.Generate(),
		UserID:       vch.Context.UserID,
		Action:       string(domain.AuditActionVoucherSubmit),
		ResourceType: "voucher",
		ResourceID:   record.ID,
		AfterState:   domain.MarshalState(record),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    now,
	}

	err := s.withRetry(ctx, func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := s.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer tx.Rollback(txCtx)

		if err := s.writer.InsertVoucher(txCtx, tx, record, entries); err != nil {
			return err
		}

		if err := s.audit.CreateTx(txCtx, tx, auditLog); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// CancelVoucher marks a posted voucher and its entries cancelled.
// Cancellation keeps the rows; reports simply stop counting them.
func (s *PostingService) CancelVoucher(ctx context.Context, pctx domain.PostingContext, vtype domain.VoucherType, number string) (*domain.VoucherRecord, error) {
	decision, err := s.authz.CheckSegregationOfDuties(ctx, domain.ActionCancelVoucher, pctx.Role)
	if err != nil {
		return nil, err
	}

	if !decision.Allowed {
		return nil, fmt.Errorf("%w: %s", domain.ErrForbidden, decision.Reason)
	}

	record, err := s.ledger.FindVoucher(ctx, pctx.CompanyID, vtype, number)
	if err != nil {
		return nil, err
	}

	if record.IsCancelled {
		return nil, domain.ErrVoucherCancelled
	}

	now := time.Now().UTC()

	auditLog := &domain.AuditLog{
		ID:           s.idGen.Generate(),
		UserID:       pctx.UserID,
		Action:       string(domain.AuditActionVoucherCancel),
		ResourceType: "voucher",
		ResourceID:   record.ID,
		BeforeState:  domain.MarshalState(record),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    now,
	}

	err = s.withRetry(ctx, func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := s.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer tx.Rollback(txCtx)

		if err := s.writer.CancelVoucher(txCtx, tx, pctx.CompanyID, vtype, number, pctx.UserID, now); err != nil {
			return err
		}

		if err := s.audit.CreateTx(txCtx, tx, auditLog); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	})
	if err != nil {
		return nil, err
	}

	record.IsCancelled = true
	record.CancelledBy = pctx.UserID
	record.CancelledAt = &now

	if s.metrics != nil {
		s.metrics.VouchersCancelled.Inc()
	}

	return record, nil
}

// PostInvoice builds the invoice journal and, when post is true and the
// build succeeded, submits it as a voucher.
func (s *PostingService) PostInvoice(ctx context.Context, inv *domain.Invoice, post bool) (*PostDocumentResult, error) {
	build, err := s.invoices.Build(ctx, inv)
	if err != nil {
		return nil, err
	}

	result := &PostDocumentResult{Build: build}
	if !build.Success || !post {
		return result, nil
	}

	vch := voucherFromJournal(inv.Kind.VoucherType(), inv.CompanyID, build.Journal)

	// Re-attach party and cost-center detail the plain journal cannot
	// carry, one invoice line per entry in emit order.
	centers := make(map[string][]string)
	for _, line := range inv.Lines {
		centers[line.AccountID] = append(centers[line.AccountID], line.CostCenter)
	}

	for i := range vch.Entries {
		if vch.Entries[i].AccountID == inv.ControlAccountID {
			vch.Entries[i].PartyType = inv.PartyType
			vch.Entries[i].PartyID = inv.PartyID
			continue
		}

		if queue := centers[vch.Entries[i].AccountID]; len(queue) > 0 {
			vch.Entries[i].CostCenter = queue[0]
			centers[vch.Entries[i].AccountID] = queue[1:]
		}
	}

	submit, err := s.SubmitVoucher(ctx, vch)
	if err != nil {
		return nil, err
	}

	result.Submit = submit

	if s.metrics != nil && submit.Posted {
		s.metrics.InvoicesPosted.WithLabelValues(string(inv.Kind)).Inc()
	}

	return result, nil
}

// PostPayment builds the payment journal and, when post is true and the
// build succeeded, submits it as a voucher. Allocation lines carry
// their party and settle their against voucher.
func (s *PostingService) PostPayment(ctx context.Context, pay *domain.Payment, post bool) (*PostDocumentResult, error) {
	build, err := s.payments.Build(ctx, pay)
	if err != nil {
		return nil, err
	}

	result := &PostDocumentResult{Build: build}
	if !build.Success || !post {
		return result, nil
	}

	vch := voucherFromJournal(domain.VoucherPaymentEntry, pay.CompanyID, build.Journal)

	// Re-attach allocation detail to the matching entries, one
	// allocation per line in emit order.
	pending := make(map[string][]domain.PaymentAllocation)
	for _, a := range pay.Allocations {
		pending[a.AccountID] = append(pending[a.AccountID], a)
	}

	for i := range vch.Entries {
		id := vch.Entries[i].AccountID
		if id != "" && (id == pay.BankChargesAccountID || id == pay.WithholdingAccountID) {
			vch.Entries[i].CostCenter = pay.CostCenter
			continue
		}

		queue := pending[vch.Entries[i].AccountID]
		if len(queue) == 0 {
			continue
		}

		alloc := queue[0]
		pending[vch.Entries[i].AccountID] = queue[1:]

		vch.Entries[i].PartyType = alloc.PartyType
		vch.Entries[i].PartyID = alloc.PartyID
		vch.Entries[i].AgainstVoucherType = alloc.VoucherType
		vch.Entries[i].AgainstVoucherNumber = alloc.VoucherNumber
	}

	submit, err := s.SubmitVoucher(ctx, vch)
	if err != nil {
		return nil, err
	}

	result.Submit = submit

	if s.metrics != nil && submit.Posted {
		s.metrics.PaymentsPosted.Inc()
	}

	return result, nil
}

func voucherFromJournal(vtype domain.VoucherType, companyID string, j *domain.Journal) *domain.Voucher {
	entries := make([]domain.VoucherEntry, len(j.Lines))
	for i, line := range j.Lines {
		entries[i] = domain.VoucherEntry{
			AccountID: line.AccountID,
			Debit:     line.Debit,
			Credit:    line.Credit,
			Remarks:   line.Description,
		}
	}

	return &domain.Voucher{
		Type:        vtype,
		Number:      j.Number,
		CompanyID:   companyID,
		PostingDate: j.PostingDate,
		Currency:    j.Currency,
		Entries:     entries,
		Context:     j.Context,
	}
}

func voucherPrefix(vtype domain.VoucherType) string {
	switch vtype {
	case domain.VoucherSalesInvoice:
		return "SINV"
	case domain.VoucherPurchaseInvoice:
		return "PINV"
	case domain.VoucherPaymentEntry:
		return "PAY"
	default:
		return "JV"
	}
}
