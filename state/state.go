package state

import (
	"context"
	"os"

	"taskforge/config"

	"github.com/getsentry/sentry-go"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/infinitybotlist/eureka/genconfig"
	"github.com/infinitybotlist/eureka/snippets"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/plutov/paypal/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v75"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	Pool      *pgxpool.Pool
	Paypal    *paypal.Client
	Redis     *redis.Client
	Logger    *zap.SugaredLogger
	Context   = context.Background()
	Validator = validator.New()

	Config *config.Config
)

func Setup() {
	Validator.RegisterValidation("notblank", validators.NotBlank)
	Validator.RegisterValidation("nospaces", snippets.ValidatorNoSpaces)
	Validator.RegisterValidation("https", snippets.ValidatorIsHttps)

	genconfig.GenConfig(config.Config{})

	cfg, err := os.ReadFile("config.yaml")

	if err != nil {
		panic(err)
	}

	err = yaml.Unmarshal(cfg, &Config)

	if err != nil {
		panic(err)
	}

	err = Validator.Struct(Config)

	if err != nil {
		panic("configError: " + err.Error())
	}

	Logger = snippets.CreateZap().Sugar()

	Pool, err = pgxpool.New(Context, Config.Meta.PostgresURL)

	if err != nil {
		panic(err)
	}

	rOptions, err := redis.ParseURL(Config.Meta.RedisURL)

	if err != nil {
		panic(err)
	}

	Redis = redis.NewClient(rOptions)

	if Config.Meta.SentryDSN != "" {
		err = sentry.Init(sentry.ClientOptions{
			Dsn:         Config.Meta.SentryDSN,
			Environment: config.CurrentEnv,
		})

		if err != nil {
			panic(err)
		}
	}

	Paypal, err = CreatePaypalClient()

	if err != nil {
		panic(err)
	}

	_, err = Paypal.GetAccessToken(Context)

	if err != nil {
		panic(err)
	}

	stripe.Key = Config.Meta.StripeSecretKey.Parse()
}
