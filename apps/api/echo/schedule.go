package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/harmonyhs/harmony/core"
	"github.com/harmonyhs/harmony/core/schedule"
)

type scheduleApi struct {
	svc      *schedule.Service
	validate *validator.Validate
}

func registerScheduleAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *schedule.Service, validate *validator.Validate) {
	api := scheduleApi{svc: svc, validate: validate}

	sg := g.Group("/schedule", jwt)
	sg.GET("", api.retrieveSettings)
	sg.PUT("", api.updateSettings)
	sg.GET("/week", api.week)
	sg.GET("/overrides", api.queryOverrides)
	sg.PUT("/overrides", api.setOverride)
	sg.DELETE("/overrides/:date", api.removeOverride)
}

func (api *scheduleApi) retrieveSettings(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	settings, err := api.svc.GetSettings(ctx.Request().Context(), accountID)
	if err != nil {
		return errors.Wrap(err, "getting schedule settings")
	}
	return ctx.JSON(http.StatusOK, settings)
}

func (api *scheduleApi) updateSettings(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	var data schedule.UpdateSettings
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSettings")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	settings, err := api.svc.SetSettings(ctx.Request().Context(), accountID, data)
	if err != nil {
		return errors.Wrap(err, "saving schedule settings")
	}
	return ctx.JSON(http.StatusOK, settings)
}

func (api *scheduleApi) week(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	dateKey := ctx.QueryParam("date")
	if dateKey == "" {
		dateKey = todayKey()
	} else if _, err := parseDateParam(dateKey); err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "invalid date"})
	}

	wk, err := api.svc.Week(ctx.Request().Context(), accountID, dateKey)
	if err != nil {
		return errors.Wrap(err, "computing school week")
	}
	return ctx.JSON(http.StatusOK, wk)
}

func (api *scheduleApi) queryOverrides(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	overrides, err := api.svc.Overrides(ctx.Request().Context(), accountID)
	if err != nil {
		return errors.Wrap(err, "querying day overrides")
	}
	if overrides == nil {
		overrides = []schedule.DayOverride{}
	}
	return ctx.JSON(http.StatusOK, overrides)
}

func (api *scheduleApi) setOverride(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	var data schedule.NewDayOverride
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewDayOverride")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	override, err := api.svc.SetOverride(ctx.Request().Context(), accountID, data)
	if err != nil {
		return errors.Wrap(err, "saving day override")
	}
	return ctx.JSON(http.StatusOK, override)
}

func (api *scheduleApi) removeOverride(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	date := ctx.Param("date")
	if _, err := parseDateParam(date); err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "invalid date"})
	}

	if err := api.svc.RemoveOverride(ctx.Request().Context(), accountID, date); err != nil {
		if errors.Cause(err) == schedule.ErrOverrideNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "removing day override")
	}
	return ctx.NoContent(http.StatusNoContent)
}
