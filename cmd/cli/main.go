package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/counterbook/counterbook/internal/adapter/http/middleware"
	"github.com/counterbook/counterbook/internal/domain"
	"github.com/counterbook/counterbook/internal/infrastructure/auth"
)

var (
	baseURL        string
	timeout        time.Duration
	authToken      string
	idempotencyKey string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "counterbook-cli",
		Short:         "Counterbook CLI tool",
		Long:          `A command line interface for the Counterbook posting and reporting API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Counterbook API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", "", "Bearer token sent with every request")

	rootCmd.AddCommand(
		journalCmd(),
		voucherCmd(),
		invoiceCmd(),
		paymentCmd(),
		reportCmd(),
		ledgerCmd(),
		tokenCmd(),
	)

	return rootCmd
}

// Journal commands

func journalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Journal operations",
	}

	cmd.AddCommand(journalValidateCmd())

	return cmd
}

func journalValidateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a journal without posting it",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(file)
			if err != nil {
				return err
			}

			return postAndPrint("/api/v1/journals/validate", doc)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Journal JSON document, - for stdin")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// Voucher commands

func voucherCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voucher",
		Short: "Voucher operations",
	}

	cmd.AddCommand(voucherValidateCmd(), voucherSubmitCmd(), voucherCancelCmd())

	return cmd
}

func voucherValidateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a voucher against the full business rule set",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(file)
			if err != nil {
				return err
			}

			return postAndPrint("/api/v1/vouchers/validate", doc)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Voucher JSON document, - for stdin")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func voucherSubmitCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate a voucher and post it to the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(file)
			if err != nil {
				return err
			}

			return postAndPrint("/api/v1/vouchers", doc)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Voucher JSON document, - for stdin")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Replay-safe key for retried submissions")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func voucherCancelCmd() *cobra.Command {
	var (
		company string
		user    string
		role    string
		reason  string
	)

	cmd := &cobra.Command{
		Use:   "cancel TYPE NUMBER",
		Short: "Cancel a posted voucher",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := json.Marshal(map[string]any{
				"context": map[string]string{
					"company_id": company,
					"user_id":    user,
					"role":       role,
				},
				"reason": reason,
			})
			if err != nil {
				return err
			}

			path := fmt.Sprintf("/api/v1/vouchers/%s/%s/cancel", url.PathEscape(args[0]), url.PathEscape(args[1]))

			return postAndPrint(path, body)
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "Company owning the voucher")
	cmd.Flags().StringVar(&user, "user", "", "Acting user id")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleManager), "Acting role")
	cmd.Flags().StringVar(&reason, "reason", "", "Cancellation reason")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

// Invoice and payment commands

func invoiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Invoice posting",
	}

	cmd.AddCommand(documentPostCmd("invoice", "/api/v1/invoices"))

	return cmd
}

func paymentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Payment posting",
	}

	cmd.AddCommand(documentPostCmd("payment", "/api/v1/payments"))

	return cmd
}

// documentPostCmd builds the shared post subcommand for invoices and
// payments. Both expand into a journal server-side; --preview returns
// the journal without posting.
func documentPostCmd(kind, path string) *cobra.Command {
	var (
		file    string
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "post",
		Short: fmt.Sprintf("Expand a %s into a journal and post it", kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(file)
			if err != nil {
				return err
			}

			target := path
			if preview {
				target += "/preview"
			}

			return postAndPrint(target, doc)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", fmt.Sprintf("%s JSON document, - for stdin", kind))
	cmd.Flags().BoolVar(&preview, "preview", false, "Build the journal without posting")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Replay-safe key for retried submissions")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// Report commands

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Financial reports",
	}

	cmd.AddCommand(trialBalanceCmd(), balanceSheetCmd())

	return cmd
}

func trialBalanceCmd() *cobra.Command {
	var (
		company     string
		from        string
		to          string
		includeZero bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Per-account balances for a date window",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("from", from)
			q.Set("to", to)
			if includeZero {
				q.Set("include_zero", "true")
			}

			path := fmt.Sprintf("/api/v1/companies/%s/reports/trial-balance?%s", url.PathEscape(company), q.Encode())

			body, status, err := apiGet(path)
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return requestError(status, body)
			}

			if asJSON {
				return printBody(body)
			}

			var tb domain.TrialBalance
			if err := json.Unmarshal(body, &tb); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			printTrialBalance(&tb)

			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "Company to report on")
	cmd.Flags().StringVar(&from, "from", "", "Window start, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "Window end, YYYY-MM-DD")
	cmd.Flags().BoolVar(&includeZero, "include-zero", false, "Keep accounts with no balance and no activity")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw JSON report")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func balanceSheetCmd() *cobra.Command {
	var (
		company string
		asOf    string
		compare string
	)

	cmd := &cobra.Command{
		Use:   "balance-sheet",
		Short: "Statement of position as of a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("as_of", asOf)
			if compare != "" {
				q.Set("compare", compare)
			}

			path := fmt.Sprintf("/api/v1/companies/%s/reports/balance-sheet?%s", url.PathEscape(company), q.Encode())

			body, status, err := apiGet(path)
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return requestError(status, body)
			}

			return printBody(body)
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "Company to report on")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Statement date, YYYY-MM-DD")
	cmd.Flags().StringVar(&compare, "compare", "", "Second statement date for a comparative view")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("as-of")

	return cmd
}

// Ledger commands

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger maintenance",
	}

	cmd.AddCommand(consistencyCmd())

	return cmd
}

func consistencyCmd() *cobra.Command {
	var company string

	cmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check that every posted voucher still balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/companies/%s/ledger/consistency", url.PathEscape(company))

			body, status, err := apiGet(path)
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return requestError(status, body)
			}

			var report domain.ConsistencyReport
			if err := json.Unmarshal(body, &report); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			if report.Clean() {
				fmt.Printf("Consistency check PASSED: %d vouchers checked\n", report.VouchersChecked)
				return nil
			}

			printJSON(report)

			return fmt.Errorf("consistency check FAILED: %d unbalanced vouchers", len(report.Unbalanced))
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "Company whose ledger to check")
	_ = cmd.MarkFlagRequired("company")

	return cmd
}

// tokenCmd mints a signed JWT locally for a server sharing the same
// secret. Development convenience; production tokens come from the
// identity provider.
func tokenCmd() *cobra.Command {
	var (
		user   string
		email  string
		role   string
		secret string
		expiry time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development JWT",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := domain.Role(role)
			if !r.IsValid() {
				return fmt.Errorf("unknown role %q", role)
			}

			token, err := auth.NewJWTManager(secret, expiry).Generate(&domain.User{
				ID:    user,
				Email: email,
				Role:  r,
			})
			if err != nil {
				return err
			}

			fmt.Println(token)

			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "User id claim")
	cmd.Flags().StringVar(&email, "email", "", "Email claim")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleAccountant), "Role claim")
	cmd.Flags().StringVar(&secret, "secret", "", "Signing secret shared with the server")
	cmd.Flags().DurationVar(&expiry, "expiry", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("secret")

	return cmd
}

// HTTP plumbing

func doRequest(method, path string, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return nil, 0, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	if idempotencyKey != "" {
		req.Header.Set(middleware.IdempotencyKeyHeader, idempotencyKey)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	return data, resp.StatusCode, nil
}

func apiGet(path string) ([]byte, int, error) {
	return doRequest(http.MethodGet, path, nil)
}

func apiPost(path string, body []byte) ([]byte, int, error) {
	return doRequest(http.MethodPost, path, body)
}

func postAndPrint(path string, body []byte) error {
	data, status, err := apiPost(path, body)
	if err != nil {
		return err
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return requestError(status, data)
	}

	return printBody(data)
}

func requestError(status int, body []byte) error {
	return fmt.Errorf("request failed (status %d): %s", status, strings.TrimSpace(string(body)))
}

func readDocument(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return data, nil
}

// printBody re-indents a JSON response; anything else passes through.
func printBody(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		fmt.Println(string(data))
		return nil
	}

	printJSON(v)

	return nil
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render response: %v\n", err)
		return
	}

	fmt.Println(string(data))
}

func printTrialBalance(tb *domain.TrialBalance) {
	fmt.Printf("Trial balance for %s (%s) %s to %s\n\n",
		tb.CompanyID, tb.Currency,
		tb.FromDate.Format("2006-01-02"), tb.ToDate.Format("2006-01-02"))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "CODE\tACCOUNT\tOPEN DR\tOPEN CR\tPERIOD DR\tPERIOD CR\tCLOSE DR\tCLOSE CR\t")

	for _, row := range tb.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			row.AccountCode, truncate(row.AccountName, 28),
			row.OpeningDebit.StringFixed(2), row.OpeningCredit.StringFixed(2),
			row.PeriodDebit.StringFixed(2), row.PeriodCredit.StringFixed(2),
			row.ClosingDebit.StringFixed(2), row.ClosingCredit.StringFixed(2))
	}

	fmt.Fprintf(w, "\tTOTAL\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
		tb.Totals.OpeningDebit.StringFixed(2), tb.Totals.OpeningCredit.StringFixed(2),
		tb.Totals.PeriodDebit.StringFixed(2), tb.Totals.PeriodCredit.StringFixed(2),
		tb.Totals.ClosingDebit.StringFixed(2), tb.Totals.ClosingCredit.StringFixed(2))

	_ = w.Flush()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	if n <= 3 {
		return s[:n]
	}

	return s[:n-3] + "..."
}
