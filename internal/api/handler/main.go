package handler

import (
	"net/http"

	"prizewheel/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Validator = &requestValidator{validator.New()}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "🎡")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
		authentication, err := do.Invoke[*services.Authentication](cfg.Container)
		if err != nil {
			return nil, err
		}
		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})

		routesAPIv1.Use(cors)
		routesAPIv1.Use(Authn(authentication)) // Authn will NOT terminate unauthenticated request.
		routesAPIv1.GET("", Hello)

		w := groupWheel{cfg.Container}
		routesAPIv1Wheel := routesAPIv1.Group("/wheel")
		{
			routesAPIv1Wheel.GET("", w.GetWheel)
			routesAPIv1Wheel.GET("/eligibility", w.GetEligibility)
			routesAPIv1Wheel.POST("/spin", w.Spin)
			routesAPIv1Wheel.GET("/history", w.GetHistory)
			routesAPIv1Wheel.GET("/stats", w.GetStats)
		}

		routesAPIv1Admin := routesAPIv1.Group("/admin")
		routesAPIv1Admin.Use(RequireStaff())
		{
			p := groupPrize{cfg.Container}
			routesAPIv1Admin.GET("/prizes", p.GetCatalog)
			routesAPIv1Admin.POST("/prizes", p.CreatePrize)
			routesAPIv1Admin.PATCH("/prizes/:id", p.SetPrizeActive)
			routesAPIv1Admin.DELETE("/prizes/:id", p.DeletePrize)

			routesAPIv1Admin.GET("/users", w.ListUsers)
			routesAPIv1Admin.GET("/users/:id/stats", w.GetUserStats)
			routesAPIv1Admin.GET("/users/:id/history", w.GetUserHistory)
			routesAPIv1Admin.GET("/report", w.GetReport)

			routesAPIv1Admin.GET("/redemptions/:id", w.GetRedemption)
			routesAPIv1Admin.PATCH("/redemptions/:id", w.UpdateRedemption)
		}
	}

	return r, nil
}

func Hello(c echo.Context) error {
	return httpx.RestAbort(c, "hello world", nil)
}
