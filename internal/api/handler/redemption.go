package handler

import (
	"strconv"

	"prizewheel/internal/models"
	"prizewheel/internal/services"

	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

func (gr *groupWheel) GetRedemption(c echo.Context) error {
	serviceWheel, err := do.Invoke[*services.ServiceWheel](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	redemption, err := serviceWheel.GetRedemption(c.Request().Context(), id)
	if err != nil {
		return httpx.RestAbort(c, nil, wheelError(err))
	}

	return httpx.RestAbort(c, redemption, nil)
}

func (gr *groupWheel) UpdateRedemption(c echo.Context) error {
	serviceWheel, err := do.Invoke[*services.ServiceWheel](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	var input models.RedemptionInput
	if err := c.Bind(&input); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}
	if err := c.Validate(&input); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	redemption, err := serviceWheel.UpdateRedemption(c.Request().Context(), id, &input)
	if err != nil {
		return httpx.RestAbort(c, nil, wheelError(err))
	}

	return httpx.RestAbort(c, redemption, nil)
}

func (gr *groupWheel) ListUsers(c echo.Context) error {
	serviceWheel, err := do.Invoke[*services.ServiceWheel](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	users, err := serviceWheel.ListUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return httpx.RestAbort(c, nil, wheelError(err))
	}

	return httpx.RestAbort(c, users, nil)
}
