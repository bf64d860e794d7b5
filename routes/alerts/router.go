package alerts

import (
	"taskforge/api"
	"taskforge/routes/alerts/endpoints/get_member_alerts"
	"taskforge/routes/alerts/endpoints/patch_member_alerts"

	"github.com/go-chi/chi/v5"
	"github.com/infinitybotlist/eureka/uapi"
)

const tagName = "Alerts"

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "These API endpoints are related to missed-task alerts"
}

func (b Router) Routes(r *chi.Mux) {
	uapi.Route{
		Pattern: "/members/{id}/alerts",
		OpId:    "get_member_alerts",
		Method:  uapi.GET,
		Docs:    get_member_alerts.Docs,
		Handler: get_member_alerts.Route,
		Auth: []uapi.AuthType{
			{
				URLVar: "id",
				Type:   api.TargetTypeMember,
			},
		},
	}.Route(r)

	uapi.Route{
		Pattern: "/members/{id}/alerts",
		OpId:    "patch_member_alerts",
		Method:  uapi.PATCH,
		Docs:    patch_member_alerts.Docs,
		Handler: patch_member_alerts.Route,
		Auth: []uapi.AuthType{
			{
				URLVar: "id",
				Type:   api.TargetTypeMember,
			},
		},
	}.Route(r)
}
