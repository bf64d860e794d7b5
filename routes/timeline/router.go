package timeline

import (
	"taskforge/api"
	"taskforge/routes/timeline/endpoints/get_org_timeline"

	"github.com/go-chi/chi/v5"
	"github.com/infinitybotlist/eureka/uapi"
)

const tagName = "Timeline"

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "These API endpoints are related to the unified activity timeline"
}

func (b Router) Routes(r *chi.Mux) {
	uapi.Route{
		Pattern: "/organizations/{id}/timeline",
		OpId:    "get_org_timeline",
		Method:  uapi.GET,
		Docs:    get_org_timeline.Docs,
		Handler: get_org_timeline.Route,
		Auth: []uapi.AuthType{
			{
				URLVar: "id",
				Type:   api.TargetTypeOrganization,
			},
		},
	}.Route(r)
}
