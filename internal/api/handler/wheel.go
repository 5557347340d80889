package handler

import (
	"strconv"
	"time"

	"prizewheel/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupWheel struct {
	container *do.Injector
}

func (gr *groupWheel) GetWheel(c echo.Context) error {
	serviceWheel, err := do.Invoke[*services.ServiceWheel](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	user, err := ResolveValidUser(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	wheel, err := serviceWheel.GetWheel(c.Request().Context(), user.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, wheelError(err))
	}

	return httpx.RestAbort(c, wheel, nil)
}

func (gr *groupWheel) GetEligibility(c echo.Context) error {
	serviceWheel, err := do.Invoke[*services.ServiceWheel](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	user, err := ResolveValidUser(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	eligibility, err := serviceWheel.CheckEligibility(c.Request().Context(), user.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, wheelError(err))
	}

	return httpx.RestAbort(c, eligibility, nil)
}

func (gr *groupWheel) Spin(c echo.Context) error {
	serviceWheel, err := do.Invoke[*services.ServiceWheel](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	user, err := ResolveValidUser(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	result, err := serviceWheel.Spin(c.Request().Context(), user.ID)
	if err != nil {
		return httpx.RestAbort(c, nil, wheelError(err))
	}

	return httpx.RestAbort(c, spinResult(result), nil)
}

func (gr *groupWheel) GetHistory(c echo.Context) error {
	user, err := ResolveValidUser(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return gr.history(c, user.ID)
}

func (gr *groupWheel) GetUserHistory(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	return gr.history(c, userID)
}

func (gr *groupWheel) history(c echo.Context, userID int64) error {
	serviceWheel, err := do.Invoke[*services.ServiceWheel](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	records, err := serviceWheel.ListUserDraws(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return httpx.RestAbort(c, nil, wheelError(err))
	}

	return httpx.RestAbort(c, records, nil)
}

func (gr *groupWheel) GetStats(c echo.Context) error {
	user, err := ResolveValidUser(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return gr.stats(c, user.ID)
}

func (gr *groupWheel) GetUserStats(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	return gr.stats(c, userID)
}

func (gr *groupWheel) stats(c echo.Context, userID int64) error {
	serviceWheel, err := do.Invoke[*services.ServiceWheel](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	stats, err := serviceWheel.GetUserStats(c.Request().Context(), userID)
	if err != nil {
		return httpx.RestAbort(c, nil, wheelError(err))
	}

	return httpx.RestAbort(c, stats, nil)
}

func (gr *groupWheel) GetReport(c echo.Context) error {
	serviceWheel, err := do.Invoke[*services.ServiceWheel](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	report, err := serviceWheel.GetWheelReport(c.Request().Context(), reportSince(c.QueryParam("hours"), time.Now()))
	if err != nil {
		return httpx.RestAbort(c, nil, wheelError(err))
	}

	return httpx.RestAbort(c, report, nil)
}
