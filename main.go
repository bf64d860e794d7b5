package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"taskforge/api"
	"taskforge/constants"
	"taskforge/migrations"
	"taskforge/notifications"
	"taskforge/payments"
	"taskforge/routes/alerts"
	"taskforge/routes/plans"
	"taskforge/routes/sweeps"
	timelineRoutes "taskforge/routes/timeline"
	"taskforge/routes/timeline/assets"
	"taskforge/state"
	"taskforge/store"
	"taskforge/sweep"
	"taskforge/timeline"

	_ "embed"

	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/zapchi"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/js"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:embed docs/assets/ext.js
var extUnminified string

//go:embed docs/assets/docs.html
var docsHTML string

var openapi []byte

func init() {
	m := minify.New()
	m.AddFunc("application/javascript", js.Minify)

	strWriter := &strings.Builder{}

	if err := m.Minify("application/javascript", strWriter, strings.NewReader(extUnminified)); err != nil {
		panic(err)
	}

	docsHTML = strings.Replace(docsHTML, "[JS]", strWriter.String(), 1)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// limit body to 10mb
		r.Body = http.MaxBytesReader(w, r.Body, 10*1024*1024)

		if r.Header.Get("Origin") == state.Config.Sites.Frontend || strings.HasPrefix(r.Header.Get("Origin"), "http://localhost:") {
			w.Header().Set("Access-Control-Allow-Origin", r.Header.Get("Origin"))
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE")

		if r.Method == "OPTIONS" {
			w.Write([]byte{})
			return
		}

		w.Header().Set("Content-Type", "application/json")

		next.ServeHTTP(w, r)
	})
}

func main() {
	state.Setup()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		migrations.Migrate(state.Context, state.Pool)
		return
	}

	api.Setup()

	st := store.New(state.Pool)

	builder := &timeline.Builder{
		Sources:       st,
		Logger:        state.Logger,
		DueSoonWindow: state.Config.Engine.DueSoonWindow.Duration(),
		RecencyWindow: state.Config.Engine.RecencyWindow.Duration(),
		FetchTimeout:  state.Config.Engine.FetchTimeout.Duration(),
		PageSize:      state.Config.Engine.PageSize,
		FetchCap:      state.Config.Engine.FetchCap,
	}

	sweeper := &sweep.Sweeper{
		Store: st,
		Entitlements: &payments.Checker{
			Store:    st,
			Redis:    state.Redis,
			Paypal:   state.Paypal,
			Logger:   state.Logger,
			CacheTTL: 10 * time.Minute,
		},
		Notifier: notifications.AlertPusher{},
		Logger:   state.Logger,
	}

	assets.Setup(builder, sweeper)
	notifications.Setup(st, sweeper)
	notifications.StartTaskMgr()

	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer,
		middleware.RealIP,
		middleware.CleanPath,
		corsMiddleware,
		zapchi.Logger(state.Logger, "api"),
		middleware.Timeout(30*time.Second),
	)

	routers := []api.APIRouter{
		// Use same order as routes folder
		alerts.Router{},
		plans.Router{},
		sweeps.Router{},
		timelineRoutes.Router{},
	}

	for _, router := range routers {
		name, desc := router.Tag()
		if name == "" {
			panic("Router tag name cannot be empty")
		}

		docs.AddTag(name, desc)

		router.Routes(r)
	}

	r.Get("/openapi", func(w http.ResponseWriter, r *http.Request) {
		w.Write(openapi)
	})

	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(docsHTML))
	})

	// Marshal the schema once here instead of on every request
	var err error
	openapi, err = json.Marshal(docs.GetSchema())

	if err != nil {
		panic(err)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(constants.NotFoundPage))
	})

	state.Logger.Info("Starting server on ", state.Config.Meta.Port.Parse())

	err = http.ListenAndServe(state.Config.Meta.Port.Parse(), r)

	if err != nil {
		state.Logger.Fatal(err)
	}
}
