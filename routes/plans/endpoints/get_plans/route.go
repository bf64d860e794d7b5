package get_plans

import (
	"net/http"

	"taskforge/payments"

	docs "github.com/infinitybotlist/eureka/doclib"
	"github.com/infinitybotlist/eureka/uapi"
)

func Docs() *docs.Doc {
	return &docs.Doc{
		Summary:     "Get Plans",
		Description: "Gets the current subscription plan list.",
		Resp:        []payments.Plan{},
	}
}

func Route(d uapi.RouteData, r *http.Request) uapi.HttpResponse {
	return uapi.HttpResponse{
		Json: payments.Plans,
	}
}
