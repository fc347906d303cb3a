package http

import (
	"net/url"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const actorRoleHeader = "X-Actor-Role"

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromBytes(id[:])
}

// queryUUID returns ok=false when the parameter is absent.
func queryUUID(params url.Values, name string) (kernel.UUID, bool, error) {
	var id *openapi_types.UUID
	if err := runtime.BindQueryParameter("form", true, false, name, params, &id); err != nil {
		return kernel.UUID{}, false, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if id == nil {
		return kernel.UUID{}, false, nil
	}
	parsed, err := kernel.UUIDFromBytes(id[:])
	return parsed, err == nil, err
}

func queryString(params url.Values, name string, required bool) (string, error) {
	var value *string
	if err := runtime.BindQueryParameter("form", true, required, name, params, &value); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if value == nil {
		return "", nil
	}
	return *value, nil
}

func queryStrings(params url.Values, name string) ([]string, error) {
	var values []string
	if err := runtime.BindQueryParameter("form", true, false, name, params, &values); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return values, nil
}

func queryTime(params url.Values, name string) (time.Time, error) {
	var t time.Time
	if err := runtime.BindQueryParameter("form", true, true, name, params, &t); err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return t, nil
}

func actorRole(ctx echo.Context) (kernel.Role, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", actorRoleHeader, ctx.Request().Header.Get(actorRoleHeader), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		return kernel.RoleUnknown, errs.NewValueIsRequiredErrorWithCause("role", err)
	}
	return kernel.ParseRole(raw)
}
