package create_sweep

import (
	"net/http"
	"time"

	"taskforge/routes/timeline/assets"
	"taskforge/state"
	"taskforge/types"

	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"github.com/infinitybotlist/eureka/ratelimit"
	"go.uber.org/zap"
)

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Create Sweep",
		Description: "Runs a missed-task sweep for the organization right now instead of waiting for the scheduled one. Sweeps are idempotent: re-running over the same missed tasks creates no duplicate alerts.",
		Resp:        types.SweepResult{},
		Params: []docs.Parameter{
			{
				Name:        "id",
				Description: "Organization ID",
				Required:    true,
				In:          "path",
				Schema:      docs.IdSchema,
			},
		},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	limit, err := ratelimit.Ratelimit{
		Expiry:      1 * time.Minute,
		MaxRequests: 3,
		Bucket:      "sweeps",
	}.Limit(d.Context, r)

	if err != nil {
		state.Logger.Error("Error handling ratelimit", zap.Error(err))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	if limit.Exceeded {
		return uapi.HttpResponse{
			Json: types.ApiError{
				Message: "You are being ratelimited. Please try again in " + limit.TimeToReset.String(),
			},
			Headers: limit.Headers(),
			Status:  http.StatusTooManyRequests,
		}
	}

	created, err := assets.Sweeper.Run(d.Context, d.Auth.ID, time.Now())

	if err != nil {
		state.Logger.Error("Error running sweep", zap.Error(err), zap.String("orgID", d.Auth.ID))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	if len(created) > 0 {
		assets.InvalidateTimelineCache(d.Context, d.Auth.ID)
	}

	return uapi.HttpResponse{
		Json: types.SweepResult{
			AlertsCreated: len(created),
		},
		Headers: limit.Headers(),
	}
}
