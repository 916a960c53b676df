package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/harmonyhs/harmony/core/reading"
)

type readingApi struct {
	svc      *reading.Service
	validate *validator.Validate
}

func registerReadingAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *reading.Service, validate *validator.Validate) {
	api := readingApi{svc: svc, validate: validate}

	rg := g.Group("/reading", jwt)
	rg.POST("", api.create)
	rg.GET("", api.query)
	rg.GET("/totals", api.totals)
	rg.GET("/:id", api.retrieve)
	rg.PUT("/:id", api.update)
	rg.DELETE("/:id", api.destroy)
}

func (api *readingApi) create(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	var data reading.NewEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEntry")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	e, err := api.svc.Create(ctx.Request().Context(), accountID, data)
	if err != nil {
		return errors.Wrap(err, "creating reading entry")
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (api *readingApi) query(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	filter := new(reading.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []reading.Entry{})
	}

	entries, err := api.svc.Filter(ctx.Request().Context(), accountID, *filter)
	if err != nil {
		return errors.Wrap(err, "querying reading entries")
	}
	if entries == nil {
		entries = []reading.Entry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *readingApi) totals(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	filter := new(reading.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []reading.ChildTotals{})
	}

	totals, err := api.svc.Totals(ctx.Request().Context(), accountID, *filter)
	if err != nil {
		return errors.Wrap(err, "totalling reading entries")
	}
	if totals == nil {
		totals = []reading.ChildTotals{}
	}
	return ctx.JSON(http.StatusOK, totals)
}

func (api *readingApi) retrieve(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	e, err := api.svc.GetByID(ctx.Request().Context(), accountID, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == reading.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting reading entry")
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *readingApi) update(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	orig, err := api.svc.GetByID(ctx.Request().Context(), accountID, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == reading.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting reading entry")
	}

	var data reading.UpdateEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEntry")
	}
	if err := data.Validate(api.validate, orig); err != nil {
		return err
	}

	e, err := api.svc.Update(ctx.Request().Context(), accountID, orig.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating reading entry")
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *readingApi) destroy(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Delete(ctx.Request().Context(), accountID, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting reading entry")
	}
	return ctx.NoContent(http.StatusNoContent)
}
