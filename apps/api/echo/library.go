package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/harmonyhs/harmony/core/library"
)

type libraryApi struct {
	svc      *library.Service
	validate *validator.Validate
}

func registerLibraryAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *library.Service, validate *validator.Validate) {
	api := libraryApi{svc: svc, validate: validate}

	lg := g.Group("/library", jwt)

	rg := lg.Group("/resources")
	rg.POST("", api.createResource)
	rg.GET("", api.queryResources)
	rg.GET("/:id", api.retrieveResource)
	rg.PUT("/:id", api.updateResource)
	rg.DELETE("/:id", api.destroyResource)

	bg := lg.Group("/booklist")
	bg.POST("", api.createBooklistEntry)
	bg.GET("", api.queryBooklist)
	bg.GET("/:id", api.retrieveBooklistEntry)
	bg.PUT("/:id", api.updateBooklistEntry)
	bg.DELETE("/:id", api.destroyBooklistEntry)
}

func (api *libraryApi) createResource(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	var data library.NewResource
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewResource")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	r, err := api.svc.CreateResource(ctx.Request().Context(), accountID, data)
	if err != nil {
		return errors.Wrap(err, "creating resource")
	}
	return ctx.JSON(http.StatusCreated, r)
}

func (api *libraryApi) queryResources(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	filter := new(library.ResourceFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []library.Resource{})
	}

	resources, err := api.svc.FilterResources(ctx.Request().Context(), accountID, *filter)
	if err != nil {
		return errors.Wrap(err, "querying resources")
	}
	if resources == nil {
		resources = []library.Resource{}
	}
	return ctx.JSON(http.StatusOK, resources)
}

func (api *libraryApi) retrieveResource(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	r, err := api.svc.GetResourceByID(ctx.Request().Context(), accountID, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == library.ErrResourceNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting resource")
	}
	return ctx.JSON(http.StatusOK, r)
}

func (api *libraryApi) updateResource(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	orig, err := api.svc.GetResourceByID(ctx.Request().Context(), accountID, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == library.ErrResourceNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting resource")
	}

	var data library.UpdateResource
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateResource")
	}
	if err := data.Validate(api.validate, orig); err != nil {
		return err
	}

	r, err := api.svc.UpdateResource(ctx.Request().Context(), accountID, orig.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating resource")
	}
	return ctx.JSON(http.StatusOK, r)
}

func (api *libraryApi) destroyResource(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.DeleteResources(ctx.Request().Context(), accountID, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting resource")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *libraryApi) createBooklistEntry(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	var data library.NewBooklistEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBooklistEntry")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	b, err := api.svc.CreateBooklistEntry(ctx.Request().Context(), accountID, data)
	if err != nil {
		return errors.Wrap(err, "creating booklist entry")
	}
	return ctx.JSON(http.StatusCreated, b)
}

func (api *libraryApi) queryBooklist(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	filter := new(library.BooklistFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []library.BooklistEntry{})
	}

	entries, err := api.svc.FilterBooklist(ctx.Request().Context(), accountID, *filter)
	if err != nil {
		return errors.Wrap(err, "querying booklist")
	}
	if entries == nil {
		entries = []library.BooklistEntry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *libraryApi) retrieveBooklistEntry(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	b, err := api.svc.GetBooklistEntryByID(ctx.Request().Context(), accountID, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == library.ErrBooklistNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting booklist entry")
	}
	return ctx.JSON(http.StatusOK, b)
}

func (api *libraryApi) updateBooklistEntry(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	orig, err := api.svc.GetBooklistEntryByID(ctx.Request().Context(), accountID, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == library.ErrBooklistNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting booklist entry")
	}

	var data library.UpdateBooklistEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateBooklistEntry")
	}
	if err := data.Validate(api.validate, orig); err != nil {
		return err
	}

	b, err := api.svc.UpdateBooklistEntry(ctx.Request().Context(), accountID, orig.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating booklist entry")
	}
	return ctx.JSON(http.StatusOK, b)
}

func (api *libraryApi) destroyBooklistEntry(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.DeleteBooklistEntries(ctx.Request().Context(), accountID, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting booklist entry")
	}
	return ctx.NoContent(http.StatusNoContent)
}
