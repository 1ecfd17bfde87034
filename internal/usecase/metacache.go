package usecase

import (
	"context"
	"time"

	"github.com/counterbook/counterbook/internal/domain"
)

// metaCache memoizes account metadata and company facts for one
// validation pass. Every entry carries an explicit expiry; expired
// entries and misses always go back to the source. A cache lives only
// as long as the pass that created it, so nothing leaks between
// unrelated calls and staleness is bounded by the TTL.
type metaCache struct {
	ttl time.Duration
	now func() time.Time

	accounts      map[string]accountEntry
	currencies    map[string]currencyEntry
	policies      map[string]policyEntry
	closedPeriods map[string]closedPeriodEntry
}

type accountEntry struct {
	account   *domain.Account
	expiresAt time.Time
}

type currencyEntry struct {
	currency  string
	expiresAt time.Time
}

type policyEntry struct {
	flags     domain.PolicyFlags
	expiresAt time.Time
}

type closedPeriodEntry struct {
	end       *time.Time
	expiresAt time.Time
}

func newMetaCache(ttl time.Duration) *metaCache {
	if ttl <= 0 {
		ttl = DefaultMetadataTTL
	}

	return &metaCache{
		ttl:           ttl,
		now:           time.Now,
		accounts:      make(map[string]accountEntry),
		currencies:    make(map[string]currencyEntry),
		policies:      make(map[string]policyEntry),
		closedPeriods: make(map[string]closedPeriodEntry),
	}
}

// Prefetch resolves the given account ids in one batched lookup,
// memoizes the hits, and returns every account found. Missing ids are
// simply absent from the result; they are never negatively cached.
func (c *metaCache) Prefetch(ctx context.Context, dir AccountDirectory, ids []string) (map[string]*domain.Account, error) {
	found := make(map[string]*domain.Account, len(ids))

	var missing []string
	for _, id := range ids {
		if e, ok := c.accounts[id]; ok && c.now().Before(e.expiresAt) {
			found[id] = e.account
			continue
		}

		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return found, nil
	}

	fetched, err := dir.GetAccounts(ctx, missing)
	if err != nil {
		return nil, err
	}

	expiry := c.now().Add(c.ttl)
	for id, acc := range fetched {
		c.accounts[id] = accountEntry{account: acc, expiresAt: expiry}
		found[id] = acc
	}

	return found, nil
}

// BaseCurrency returns the company's base currency, memoized.
func (c *metaCache) BaseCurrency(ctx context.Context, companies CompanyFacts, companyID string) (string, error) {
	if e, ok := c.currencies[companyID]; ok && c.now().Before(e.expiresAt) {
		return e.currency, nil
	}

	currency, err := companies.BaseCurrency(ctx, companyID)
	if err != nil {
		return "", err
	}

	c.currencies[companyID] = currencyEntry{currency: currency, expiresAt: c.now().Add(c.ttl)}

	return currency, nil
}

// PolicyFlags returns the company's validation policy flags, memoized.
func (c *metaCache) PolicyFlags(ctx context.Context, companies CompanyFacts, companyID string) (domain.PolicyFlags, error) {
	if e, ok := c.policies[companyID]; ok && c.now().Before(e.expiresAt) {
		return e.flags, nil
	}

	flags, err := companies.PolicyFlags(ctx, companyID)
	if err != nil {
		return domain.PolicyFlags{}, err
	}

	c.policies[companyID] = policyEntry{flags: flags, expiresAt: c.now().Add(c.ttl)}

	return flags, nil
}

// ClosedPeriodEnd returns the company's latest closed period end,
// memoized. A nil end (no period closed yet) is a valid answer and is
// memoized as such.
func (c *metaCache) ClosedPeriodEnd(ctx context.Context, ledger LedgerQuery, companyID string) (*time.Time, error) {
	if e, ok := c.closedPeriods[companyID]; ok && c.now().Before(e.expiresAt) {
		return e.end, nil
	}

	end, err := ledger.LatestClosedPeriodEnd(ctx, companyID)
	if err != nil {
		return nil, err
	}

	c.closedPeriods[companyID] = closedPeriodEntry{end: end, expiresAt: c.now().Add(c.ttl)}

	return end, nil
}
