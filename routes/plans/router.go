package plans

import (
	"taskforge/routes/plans/endpoints/get_plans"

	"github.com/go-chi/chi/v5"
	"github.com/infinitybotlist/eureka/uapi"
)

const tagName = "Plans"

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "These API endpoints are related to subscription plans"
}

func (b Router) Routes(r *chi.Mux) {
	uapi.Route{
		Pattern: "/plans",
		OpId:    "get_plans",
		Method:  uapi.GET,
		Docs:    get_plans.Docs,
		Handler: get_plans.Route,
	}.Route(r)
}
