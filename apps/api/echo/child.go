package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/harmonyhs/harmony/core/child"
)

type childApi struct {
	svc      *child.Service
	validate *validator.Validate
}

func registerChildAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *child.Service, validate *validator.Validate) {
	api := childApi{svc: svc, validate: validate}

	cg := g.Group("/children", jwt)
	cg.POST("", api.create)
	cg.GET("", api.query)
	cg.GET("/:id", api.retrieve)
	cg.PUT("/:id", api.update)
	cg.DELETE("/:id", api.destroy)
}

func (api *childApi) create(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	var data child.NewChild
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewChild")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Create(ctx.Request().Context(), accountID, data)
	if err != nil {
		return errors.Wrap(err, "creating child")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *childApi) query(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	filter := new(child.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []child.Child{})
	}
	filter.Clean()

	var children []child.Child
	if filter.IsEmpty() {
		children, err = api.svc.QueryAll(ctx.Request().Context(), accountID)
	} else {
		children, err = api.svc.Filter(ctx.Request().Context(), accountID, *filter)
	}
	if err != nil {
		return errors.Wrap(err, "querying children")
	}
	if children == nil {
		children = []child.Child{}
	}
	return ctx.JSON(http.StatusOK, children)
}

func (api *childApi) retrieve(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	c, err := api.svc.GetByID(ctx.Request().Context(), accountID, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == child.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting child")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *childApi) update(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	orig, err := api.svc.GetByID(ctx.Request().Context(), accountID, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == child.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting child")
	}

	var data child.UpdateChild
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateChild")
	}
	if err := data.Validate(api.validate, orig); err != nil {
		return err
	}

	c, err := api.svc.Update(ctx.Request().Context(), accountID, orig.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating child")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *childApi) destroy(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Delete(ctx.Request().Context(), accountID, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting child")
	}
	return ctx.NoContent(http.StatusNoContent)
}
