// Binds onto eureka uapi
package api

import (
	"net/http"
	"strings"

	"taskforge/constants"
	"taskforge/state"
	"taskforge/types"

	"github.com/go-chi/chi/v5"
	"github.com/infinitybotlist/eureka/uapi"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	TargetTypeMember       = "member"
	TargetTypeOrganization = "organization"
)

type DefaultResponder struct{}

func (d DefaultResponder) New(err string, ctx map[string]string) any {
	return types.ApiError{
		Message: err,
		Context: ctx,
	}
}

// Authorizes a request. Member tokens authenticate the member directly and,
// for organization-scoped routes, the organization the member belongs to.
func Authorize(r uapi.Route, req *http.Request) (uapi.AuthData, uapi.HttpResponse, bool) {
	authHeader := req.Header.Get("Authorization")

	if len(r.Auth) > 0 && authHeader == "" && !r.AuthOptional {
		return uapi.AuthData{}, uapi.DefaultResponse(http.StatusUnauthorized), false
	}

	authData := uapi.AuthData{}

	for _, auth := range r.Auth {
		if authData.Authorized {
			break
		}

		if authHeader == "" {
			continue
		}

		token := strings.Replace(authHeader, "Member ", "", 1)

		var memberID pgtype.Text
		var orgID pgtype.Text

		err := state.Pool.QueryRow(state.Context, "SELECT member_id, organization_id FROM members WHERE api_token = $1", token).Scan(&memberID, &orgID)

		if err != nil {
			continue
		}

		if !memberID.Valid || !orgID.Valid {
			continue
		}

		switch auth.Type {
		case TargetTypeMember:
			authData = uapi.AuthData{
				TargetType: TargetTypeMember,
				ID:         memberID.String,
				Authorized: true,
			}

			if auth.URLVar != "" && chi.URLParam(req, auth.URLVar) != memberID.String {
				authData = uapi.AuthData{} // Remove auth data
			}
		case TargetTypeOrganization:
			authData = uapi.AuthData{
				TargetType: TargetTypeOrganization,
				ID:         orgID.String,
				Authorized: true,
			}

			if auth.URLVar != "" && chi.URLParam(req, auth.URLVar) != orgID.String {
				authData = uapi.AuthData{} // Remove auth data
			}
		}
	}

	if len(r.Auth) > 0 && !authData.Authorized && !r.AuthOptional {
		return uapi.AuthData{}, uapi.DefaultResponse(http.StatusUnauthorized), false
	}

	return authData, uapi.HttpResponse{}, true
}

func Setup() {
	uapi.SetupState(uapi.UAPIState{
		Logger:    state.Logger.Desugar(),
		Authorize: Authorize,
		AuthTypeMap: map[string]string{
			TargetTypeMember:       "member",
			TargetTypeOrganization: "organization",
		},
		Context: state.Context,
		Constants: &uapi.UAPIConstants{
			ResourceNotFound:    constants.NotFound,
			BadRequest:          constants.BadRequest,
			Forbidden:           constants.Forbidden,
			Unauthorized:        constants.Unauthorized,
			InternalServerError: constants.InternalError,
			MethodNotAllowed:    constants.MethodNotAllowed,
			BodyRequired:        constants.BodyRequired,
		},
		DefaultResponder: DefaultResponder{},
	})
}
