package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/harmonyhs/harmony/core"
	"github.com/harmonyhs/harmony/core/lesson"
)

type lessonApi struct {
	svc      *lesson.Service
	validate *validator.Validate
}

func registerLessonAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *lesson.Service, validate *validator.Validate) {
	api := lessonApi{svc: svc, validate: validate}

	lg := g.Group("/lessons", jwt)
	lg.POST("", api.create)
	lg.GET("", api.query)
	lg.GET("/week", api.week)
	lg.GET("/:id", api.retrieve)
	lg.PUT("/:id", api.update)
	lg.PUT("/:id/grade", api.setGrade)
	lg.DELETE("/:id/grade", api.clearGrade)
	lg.DELETE("/:id", api.destroy)
}

func (api *lessonApi) create(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	var data lesson.NewLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLesson")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	l, err := api.svc.Create(ctx.Request().Context(), accountID, data)
	if err != nil {
		return errors.Wrap(err, "creating lesson")
	}
	return ctx.JSON(http.StatusCreated, l)
}

func (api *lessonApi) query(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	filter := new(lesson.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []lesson.Lesson{})
	}

	lessons, err := api.svc.Filter(ctx.Request().Context(), accountID, *filter)
	if err != nil {
		return errors.Wrap(err, "querying lessons")
	}
	if lessons == nil {
		lessons = []lesson.Lesson{}
	}
	return ctx.JSON(http.StatusOK, lessons)
}

// week returns the planner view for the week containing ?date=
// (today when omitted).
func (api *lessonApi) week(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	date := ctx.QueryParam("date")
	if date == "" {
		date = todayKey()
	}
	if _, err := parseDateParam(date); err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "invalid date"})
	}

	plan, err := api.svc.Week(ctx.Request().Context(), accountID, date)
	if err != nil {
		return errors.Wrap(err, "building week plan")
	}
	return ctx.JSON(http.StatusOK, plan)
}

func (api *lessonApi) retrieve(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	l, err := api.svc.GetByID(ctx.Request().Context(), accountID, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == lesson.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting lesson")
	}
	return ctx.JSON(http.StatusOK, l)
}

func (api *lessonApi) update(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	orig, err := api.svc.GetByID(ctx.Request().Context(), accountID, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == lesson.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting lesson")
	}

	var data lesson.UpdateLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateLesson")
	}
	if err := data.Validate(api.validate, orig); err != nil {
		return err
	}

	l, err := api.svc.Update(ctx.Request().Context(), accountID, orig.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating lesson")
	}
	return ctx.JSON(http.StatusOK, l)
}

func (api *lessonApi) setGrade(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	var data lesson.SetGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SetGrade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	l, err := api.svc.AssignGrade(ctx.Request().Context(), accountID, ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == lesson.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "assigning grade")
	}
	return ctx.JSON(http.StatusOK, l)
}

func (api *lessonApi) clearGrade(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	l, err := api.svc.ClearGrade(ctx.Request().Context(), accountID, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == lesson.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "clearing grade")
	}
	return ctx.JSON(http.StatusOK, l)
}

func (api *lessonApi) destroy(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Delete(ctx.Request().Context(), accountID, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting lesson")
	}
	return ctx.NoContent(http.StatusNoContent)
}
