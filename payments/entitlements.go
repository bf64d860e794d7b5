package payments

import (
	"context"
	"time"

	"taskforge/types"

	"github.com/plutov/paypal/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/subscription"
	"go.uber.org/zap"
)

const (
	cacheActive = "active"
	cacheLapsed = "lapsed"
)

type OrganizationStore interface {
	OrganizationByID(ctx context.Context, orgID string) (*types.Organization, error)
}

// Checker reduces an organization's provider-side subscription state to a
// single active/lapsed bit, cached in redis so sweeps don't hammer the
// payment providers.
type Checker struct {
	Store    OrganizationStore
	Redis    *redis.Client
	Paypal   *paypal.Client
	Logger   *zap.SugaredLogger
	CacheTTL time.Duration
}

func (c *Checker) Active(ctx context.Context, orgID string) (bool, error) {
	cacheKey := "entitlement:" + orgID

	if c.Redis != nil {
		switch c.Redis.Get(ctx, cacheKey).Val() {
		case cacheActive:
			return true, nil
		case cacheLapsed:
			return false, nil
		}
	}

	org, err := c.Store.OrganizationByID(ctx, orgID)

	if err != nil {
		return false, err
	}

	active, err := c.providerActive(ctx, org)

	if err != nil {
		return false, err
	}

	if c.Redis != nil {
		v := cacheLapsed
		if active {
			v = cacheActive
		}

		err := c.Redis.Set(ctx, cacheKey, v, c.CacheTTL).Err()

		if err != nil {
			c.Logger.Errorw("Error caching entitlement", "error", err, "org_id", orgID)
		}
	}

	return active, nil
}

func (c *Checker) providerActive(ctx context.Context, org *types.Organization) (bool, error) {
	// Organizations without a configured subscription have not been moved to
	// billing enforcement yet and stay on
	if org.BillingProvider == "" || org.SubscriptionID == "" {
		return true, nil
	}

	switch org.BillingProvider {
	case types.BillingProviderStripe:
		sub, err := subscription.Get(org.SubscriptionID, nil)

		if err != nil {
			return false, err
		}

		return sub.Status == stripe.SubscriptionStatusActive || sub.Status == stripe.SubscriptionStatusTrialing, nil
	case types.BillingProviderPaypal:
		sub, err := c.Paypal.GetSubscriptionDetails(ctx, org.SubscriptionID)

		if err != nil {
			return false, err
		}

		return sub.SubscriptionStatus == paypal.SubscriptionStatusActive, nil
	default:
		c.Logger.Warnw("Unknown billing provider, treating as lapsed", "org_id", org.ID, "provider", org.BillingProvider)
		return false, nil
	}
}
