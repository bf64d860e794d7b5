package config

import (
	_ "embed"
	"strings"

	"taskforge/validators/timex"
)

const (
	CurrentEnvProd    = "prod"
	CurrentEnvStaging = "staging"
)

//go:embed current-env
var CurrentEnv string

func init() {
	CurrentEnv = strings.TrimSpace(CurrentEnv)

	if CurrentEnv != CurrentEnvProd && CurrentEnv != CurrentEnvStaging {
		panic("invalid environment")
	}
}

// Common struct for values that differ between staging and production environments
type Differs[T any] struct {
	Staging T `yaml:"staging" comment:"Staging value" validate:"required"`
	Prod    T `yaml:"prod" comment:"Production value" validate:"required"`
}

func (d *Differs[T]) Parse() T {
	if CurrentEnv == CurrentEnvProd {
		return d.Prod
	} else if CurrentEnv == CurrentEnvStaging {
		return d.Staging
	} else {
		panic("invalid environment")
	}
}

type Config struct {
	Sites         Sites         `yaml:"sites" validate:"required"`
	Engine        Engine        `yaml:"engine" validate:"required"`
	Notifications Notifications `yaml:"notifications" validate:"required"`
	Meta          Meta          `yaml:"meta" validate:"required"`
}

type Sites struct {
	Frontend string          `yaml:"frontend" default:"https://app.taskforge.dev" comment:"Frontend URL" validate:"required"`
	API      Differs[string] `yaml:"api" default:"https://api.taskforge.dev" comment:"API URL" validate:"required"`
}

// Engine holds the activity/deadline engine constants. These are deployment
// constants, not tenant settings.
type Engine struct {
	DueSoonWindow timex.Duration `yaml:"due_soon_window" default:"72h" comment:"How close a due date must be before an item counts as due-soon" validate:"required"`
	RecencyWindow timex.Duration `yaml:"recency_window" default:"720h" comment:"Lookback horizon for every timeline source query" validate:"required"`
	FetchTimeout  timex.Duration `yaml:"fetch_timeout" default:"5s" comment:"Per-call budget for the four timeline source fetches" validate:"required"`
	CacheTTL      timex.Duration `yaml:"cache_ttl" default:"60s" comment:"TTL for cached timeline pages" validate:"required"`
	PageSize      int            `yaml:"page_size" default:"10" comment:"Timeline page size" validate:"required"`
	FetchCap      int            `yaml:"fetch_cap" default:"200" comment:"Maximum records fetched per timeline source" validate:"required"`
	SweepInterval timex.Duration `yaml:"sweep_interval" default:"300s" comment:"How often the in-binary sweep runner checks for missed tasks" validate:"required"`
}

type Notifications struct {
	VapidPublicKey  string `yaml:"vapid_public_key" comment:"Vapid Public Key (https://www.stephane-quantin.com/en/tools/generators/vapid-keys)" validate:"required"`
	VapidPrivateKey string `yaml:"vapid_private_key" comment:"Vapid Private Key (https://www.stephane-quantin.com/en/tools/generators/vapid-keys)" validate:"required"`
	Subscriber      string `yaml:"subscriber" default:"alerts@taskforge.dev" comment:"Subscriber address presented to push services" validate:"required"`
}

type Meta struct {
	PostgresURL      string          `yaml:"postgres_url" default:"postgresql:///taskforge" comment:"Postgres URL" validate:"required"`
	RedisURL         string          `yaml:"redis_url" default:"redis://localhost:6379" comment:"Redis URL" validate:"required"`
	Port             Differs[string] `yaml:"port" default:":8081" comment:"Port to run the server on" validate:"required"`
	SentryDSN        string          `yaml:"sentry_dsn" default:"" comment:"Sentry DSN, leave empty to disable"`
	PaypalClientID   Differs[string] `yaml:"paypal_client_id" default:"" comment:"Paypal Client ID" validate:"required"`
	PaypalSecret     Differs[string] `yaml:"paypal_secret" default:"" comment:"Paypal Secret" validate:"required"`
	PaypalUseSandbox bool            `yaml:"paypal_use_sandbox" default:"true" comment:"Use paypal sandbox?"`
	StripeSecretKey  Differs[string] `yaml:"stripe_secret_key" default:"" comment:"Stripe Secret Key" validate:"required"`
}
