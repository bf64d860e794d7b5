package patch_member_alerts

import (
	"net/http"

	"taskforge/constants"
	"taskforge/state"
	"taskforge/types"

	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
	"go.uber.org/zap"
)

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Mark Member Alerts Read",
		Description: "Marks all of a members alerts as read. Read alerts no longer block a new missed-task alert for the same template.",
		Resp:        types.ApiError{},
		Params: []docs.Parameter{
			{
				Name:        "id",
				Description: "Member ID",
				Required:    true,
				In:          "path",
				Schema:      docs.IdSchema,
			},
		},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	_, err := state.Pool.Exec(d.Context, "UPDATE alerts SET is_read = true WHERE assignee_id = $1", d.Auth.ID)

	if err != nil {
		state.Logger.Error("Error marking alerts read", zap.Error(err), zap.String("memberID", d.Auth.ID))
		return uapi.DefaultResponse(http.StatusInternalServerError)
	}

	return uapi.HttpResponse{
		Data: constants.Success,
	}
}
