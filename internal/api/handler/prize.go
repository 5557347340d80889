package handler

import (
	"strconv"

	"prizewheel/internal/models"
	"prizewheel/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupPrize struct {
	container *do.Injector
}

func (gr *groupPrize) GetCatalog(c echo.Context) error {
	servicePrize, err := do.Invoke[*services.ServicePrize](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	catalog, err := servicePrize.GetCatalog(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, wheelError(err))
	}

	return httpx.RestAbort(c, catalog, nil)
}

func (gr *groupPrize) CreatePrize(c echo.Context) error {
	servicePrize, err := do.Invoke[*services.ServicePrize](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var input models.PrizeInput
	if err := c.Bind(&input); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}
	if err := c.Validate(&input); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	prize, err := servicePrize.CreatePrize(c.Request().Context(), &input)
	if err != nil {
		return httpx.RestAbort(c, nil, wheelError(err))
	}

	return httpx.RestAbort(c, prize, nil)
}

func (gr *groupPrize) SetPrizeActive(c echo.Context) error {
	servicePrize, err := do.Invoke[*services.ServicePrize](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	var input models.PrizeActiveInput
	if err := c.Bind(&input); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}
	if err := c.Validate(&input); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	prize, err := servicePrize.SetPrizeActive(c.Request().Context(), id, *input.Active)
	if err != nil {
		return httpx.RestAbort(c, nil, wheelError(err))
	}

	return httpx.RestAbort(c, prize, nil)
}

func (gr *groupPrize) DeletePrize(c echo.Context) error {
	servicePrize, err := do.Invoke[*services.ServicePrize](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	if err := servicePrize.DeletePrize(c.Request().Context(), id); err != nil {
		return httpx.RestAbort(c, nil, wheelError(err))
	}

	return httpx.RestAbort(c, nil, nil)
}
