package get_org_timeline

import (
	"net/http"
	"strconv"
	"time"

	"taskforge/constants"
	"taskforge/routes/timeline/assets"
	"taskforge/state"
	"taskforge/types"

	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Get Organization Timeline",
		Description: "Gets one page of an organization's merged activity timeline, ranked by urgency and recency. The overdue count covers the full merged set, not just the returned page.",
		Resp:        types.TimelinePage{},
		Params: []docs.Parameter{
			{
				Name:        "id",
				Description: "Organization ID",
				Required:    true,
				In:          "path",
				Schema:      docs.IdSchema,
			},
			{
				Name:        "page",
				Description: "The page number",
				Required:    false,
				In:          "query",
				Schema:      docs.IdSchema,
			},
		},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	page := r.URL.Query().Get("page")

	if page == "" {
		page = "1"
	}

	pageNum, err := strconv.ParseUint(page, 10, 32)

	if err != nil {
		return uapi.HttpResponse{
			Status: http.StatusBadRequest,
			Json: types.ApiError{
				Message: "Page must be an integer",
			},
		}
	}

	if cached, ok := assets.GetCachedTimeline(d.Context, d.Auth.ID, pageNum); ok {
		return uapi.HttpResponse{
			Data: string(cached),
		}
	}

	tp, err := assets.Builder.Build(d.Context, d.Auth.ID, time.Now(), int(pageNum))

	if err != nil {
		// No partial timelines: a broken merge would misreport overdue counts
		state.Logger.Error("Error building timeline", zap.Error(err), zap.String("orgID", d.Auth.ID), zap.Uint64("page", pageNum))
		return uapi.HttpResponse{
			Status: http.StatusServiceUnavailable,
			Data:   constants.TimelineUnavailable,
		}
	}

	if payload, err := json.Marshal(tp); err == nil {
		assets.SetCachedTimeline(d.Context, d.Auth.ID, pageNum, payload)
	}

	return uapi.HttpResponse{
		Json: tp,
	}
}
