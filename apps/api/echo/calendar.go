package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/harmonyhs/harmony/core"
	"github.com/harmonyhs/harmony/core/calendar"
	"github.com/harmonyhs/harmony/core/lesson"
)

type calendarApi struct {
	svc       *calendar.Service
	lessonSvc *lesson.Service
	conf      *core.Config
	validate  *validator.Validate
}

// Agenda is the merged calendar view for a date range: expanded event
// occurrences alongside the lessons scheduled within the same range.
type Agenda struct {
	From        string                `json:"from"`
	To          string                `json:"to"`
	Occurrences []calendar.Occurrence `json:"occurrences"`
	Lessons     []lesson.Lesson       `json:"lessons"`
}

func registerCalendarAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *calendar.Service, lessonSvc *lesson.Service, conf *core.Config, validate *validator.Validate) {
	api := calendarApi{svc: svc, lessonSvc: lessonSvc, conf: conf, validate: validate}

	cg := g.Group("/calendar", jwt)
	cg.GET("", api.agenda)
	cg.GET("/export.ics", api.exportICS)

	eg := cg.Group("/events")
	eg.POST("", api.create)
	eg.GET("", api.query)
	eg.GET("/:id", api.retrieve)
	eg.PUT("/:id", api.update)
	eg.PUT("/:id/exceptions", api.addException)
	eg.DELETE("/:id", api.destroy)
}

func (api *calendarApi) create(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	var data calendar.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ev, err := api.svc.Create(ctx.Request().Context(), accountID, data)
	if err != nil {
		return errors.Wrap(err, "creating event")
	}
	return ctx.JSON(http.StatusCreated, ev)
}

func (api *calendarApi) query(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	events, err := api.svc.QueryAll(ctx.Request().Context(), accountID)
	if err != nil {
		return errors.Wrap(err, "querying events")
	}
	if events == nil {
		events = []calendar.Event{}
	}
	return ctx.JSON(http.StatusOK, events)
}

func (api *calendarApi) retrieve(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	ev, err := api.svc.GetByID(ctx.Request().Context(), accountID, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == calendar.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting event")
	}
	return ctx.JSON(http.StatusOK, ev)
}

func (api *calendarApi) update(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	var data calendar.UpdateEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEvent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ev, err := api.svc.Update(ctx.Request().Context(), accountID, ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == calendar.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating event")
	}
	return ctx.JSON(http.StatusOK, ev)
}

type addExceptionRequest struct {
	Date string `json:"date" validate:"required,datekey"`
}

func (api *calendarApi) addException(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	var data addExceptionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to addExceptionRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	ev, err := api.svc.AddException(ctx.Request().Context(), accountID, ctx.Param("id"), data.Date)
	if err != nil {
		if errors.Cause(err) == calendar.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "adding exception date")
	}
	return ctx.JSON(http.StatusOK, ev)
}

func (api *calendarApi) destroy(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Delete(ctx.Request().Context(), accountID, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting event")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *calendarApi) agenda(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	from, to, err := rangeParams(ctx)
	if err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()
	occurrences, err := api.svc.Occurrences(reqCtx, accountID, from, to)
	if err != nil {
		return errors.Wrap(err, "expanding occurrences")
	}
	lessons, err := api.lessonSvc.Filter(reqCtx, accountID, lesson.QueryFilter{From: from, To: to})
	if err != nil {
		return errors.Wrap(err, "querying scheduled lessons")
	}

	if occurrences == nil {
		occurrences = []calendar.Occurrence{}
	}
	scheduled := make([]lesson.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if l.Date != "" {
			scheduled = append(scheduled, l)
		}
	}
	return ctx.JSON(http.StatusOK, Agenda{From: from, To: to, Occurrences: occurrences, Lessons: scheduled})
}

func (api *calendarApi) exportICS(ctx echo.Context) error {
	accountID, err := contextAccountID(ctx)
	if err != nil {
		return err
	}

	from, to, err := rangeParams(ctx)
	if err != nil {
		return err
	}

	occurrences, err := api.svc.Occurrences(ctx.Request().Context(), accountID, from, to)
	if err != nil {
		return errors.Wrap(err, "expanding occurrences")
	}

	ics := calendar.BuildICS(api.conf.AppName, occurrences)
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="calendar.ics"`)
	return ctx.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}

// rangeParams reads the from/to query params, defaulting to the
// current day when either is missing.
func rangeParams(ctx echo.Context) (from, to string, err error) {
	from = ctx.QueryParam("from")
	to = ctx.QueryParam("to")
	if from == "" {
		from = todayKey()
	} else if _, err := parseDateParam(from); err != nil {
		return "", "", core.NewValidationError(nil, core.FieldError{Field: "from", Error: "invalid date"})
	}
	if to == "" {
		to = from
	} else if _, err := parseDateParam(to); err != nil {
		return "", "", core.NewValidationError(nil, core.FieldError{Field: "to", Error: "invalid date"})
	}
	if to < from {
		return "", "", core.NewValidationError(nil, core.FieldError{Field: "to", Error: "must not precede from"})
	}
	return from, to, nil
}
