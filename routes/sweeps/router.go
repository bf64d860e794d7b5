package sweeps

import (
	"taskforge/api"
	"taskforge/routes/sweeps/endpoints/create_sweep"

	"github.com/go-chi/chi/v5"
	"github.com/infinitybotlist/eureka/uapi"
)

const tagName = "Sweeps"

type Router struct{}

func (b Router) Tag() (string, string) {
	return tagName, "These API endpoints are related to missed-task sweeps"
}

func (b Router) Routes(r *chi.Mux) {
	uapi.Route{
		Pattern: "/organizations/{id}/sweeps",
		OpId:    "create_sweep",
		Method:  uapi.POST,
		Docs:    create_sweep.Docs,
		Handler: create_sweep.Route,
		Auth: []uapi.AuthType{
			{
				URLVar: "id",
				Type:   api.TargetTypeOrganization,
			},
		},
	}.Route(r)
}
