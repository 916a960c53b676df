package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/harmonyhs/harmony/core/subject"
)

type subjectApi struct {
	svc      *subject.Service
	validate *validator.Validate
}

func registerSubjectAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *subject.Service, validate *validator.Validate) {
	api := subjectApi{svc: svc, validate: validate}

	sg := g.Group("/subjects", jwt)
	sg.POST("", api.create)
	sg.GET("", api.query)
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)

	cg := g.Group("/curricula", jwt)
	cg.POST("", api.createCurriculum)
	cg.GET("", api.queryCurricula)
	cg.GET("/:id", api.retrieveCurriculum)
	cg.PUT("/:id", api.updateCurriculum)
	cg.DELETE("/:id", api.destroyCurriculum)
}

func (api *subjectApi) create(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	var data subject.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.Create(ctx.Request().Context(), accountID, data)
	if err != nil {
		return errors.Wrap(err, "creating subject")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *subjectApi) query(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	subjects, err := api.svc.QueryAll(ctx.Request().Context(), accountID)
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	if subjects == nil {
		subjects = []subject.Subject{}
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *subjectApi) retrieve(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	s, err := api.svc.GetByID(ctx.Request().Context(), accountID, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == subject.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting subject")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *subjectApi) update(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	orig, err := api.svc.GetByID(ctx.Request().Context(), accountID, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == subject.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting subject")
	}

	var data subject.UpdateSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSubject")
	}
	if err := data.Validate(api.validate, orig); err != nil {
		return err
	}

	s, err := api.svc.Update(ctx.Request().Context(), accountID, orig.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating subject")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *subjectApi) destroy(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Delete(ctx.Request().Context(), accountID, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *subjectApi) createCurriculum(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	var data subject.NewCurriculum
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCurriculum")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.CreateCurriculum(ctx.Request().Context(), accountID, data)
	if err != nil {
		return errors.Wrap(err, "creating curriculum")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *subjectApi) queryCurricula(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	filter := new(subject.CurriculumFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []subject.Curriculum{})
	}

	curricula, err := api.svc.FilterCurricula(ctx.Request().Context(), accountID, *filter)
	if err != nil {
		return errors.Wrap(err, "querying curricula")
	}
	if curricula == nil {
		curricula = []subject.Curriculum{}
	}
	return ctx.JSON(http.StatusOK, curricula)
}

func (api *subjectApi) retrieveCurriculum(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	c, err := api.svc.GetCurriculumByID(ctx.Request().Context(), accountID, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == subject.ErrCurriculumNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting curriculum")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *subjectApi) updateCurriculum(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	orig, err := api.svc.GetCurriculumByID(ctx.Request().Context(), accountID, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == subject.ErrCurriculumNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting curriculum")
	}

	var data subject.UpdateCurriculum
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCurriculum")
	}
	if err := data.Validate(api.validate, orig); err != nil {
		return err
	}

	c, err := api.svc.UpdateCurriculum(ctx.Request().Context(), accountID, orig.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating curriculum")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *subjectApi) destroyCurriculum(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.DeleteCurricula(ctx.Request().Context(), accountID, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting curriculum")
	}
	return ctx.NoContent(http.StatusNoContent)
}
