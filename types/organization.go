package types

import "time"

type BillingProvider string

const (
	BillingProviderStripe BillingProvider = "stripe"
	BillingProviderPaypal BillingProvider = "paypal"
)

type Organization struct {
	ID              string          `db:"id" json:"id" description:"The organization's ID"`
	Name            string          `db:"name" json:"name" validate:"required"`
	BillingProvider BillingProvider `db:"billing_provider" json:"billing_provider" description:"Which payment provider holds the organization's subscription, empty if none"`
	SubscriptionID  string          `db:"subscription_id" json:"subscription_id" description:"Provider-side subscription ID, empty if none"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// PushSubscription is one browser push registration for a member.
type PushSubscription struct {
	NotifID  string `db:"notif_id" json:"notif_id"`
	MemberID string `db:"member_id" json:"member_id"`
	Endpoint string `db:"endpoint" json:"endpoint"`
	Auth     string `db:"auth" json:"-"`
	P256dh   string `db:"p256dh" json:"-"`
}
