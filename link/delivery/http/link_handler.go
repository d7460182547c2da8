package http

import (
	"context"
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ravikgupta/affilink/backend/domain"
	"github.com/ravikgupta/affilink/backend/expiry"
	"github.com/ravikgupta/affilink/backend/linkgen"
	"github.com/ravikgupta/affilink/backend/web"
	"github.com/ravikgupta/affilink/backend/web/auth"
)

// displayURLLength is the cutoff for the truncated link shown in listings
const displayURLLength = 30

// LinkHandler represent the http handler for affiliate links
type LinkHandler struct {
	linkUsecase   domain.LinkUsecase
	authenticator *auth.Authenticator
	validator     *web.AppValidator
	logger        *zap.Logger
	tracer        trace.Tracer
	calc          *expiry.Calculator
}

// LinkView decorates an affiliate link with display fields computed at
// response time
type LinkView struct {
	*domain.AffiliateLink
	DisplayURL    string          `json:"display_url"`
	TimeLeft      expiry.TimeLeft `json:"time_left"`
	ExpiryDisplay string          `json:"expiry_display"`
}

// NewLinkHandler will initialize the links/ resources endpoint
func NewLinkHandler(us domain.LinkUsecase, authenticator *auth.Authenticator, v *web.AppValidator, logger *zap.Logger, tracer trace.Tracer, calc *expiry.Calculator) (*LinkHandler, error) {
	handler := &LinkHandler{
		linkUsecase:   us,
		authenticator: authenticator,
		validator:     v,
		logger:        logger,
		tracer:        tracer,
		calc:          calc,
	}

	err := handler.RegisterValidation()
	if err != nil {
		return nil, err
	}

	return handler, nil
}

// RegisterRoutes registers routes for a path with matching handler
func (lh *LinkHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/v1/links", lh.Fetch)
	e.GET("/v1/links/:id", lh.GetByID)
	e.POST("/v1/links", lh.Store, echojwt.WithConfig(lh.authenticator.JWTConfig))
	e.PUT("/v1/links/:id", lh.Update, echojwt.WithConfig(lh.authenticator.JWTConfig))
	e.DELETE("/v1/links/:id", lh.Delete, echojwt.WithConfig(lh.authenticator.JWTConfig))
}

// RegisterValidation will initialize validation for link handler
func (lh *LinkHandler) RegisterValidation() error {
	err := lh.validator.V.RegisterValidation("platform", checkPlatform)
	if err != nil {
		return err
	}

	err = lh.validator.V.RegisterTranslation("platform", lh.validator.Translator, func(ut ut.Translator) error {
		return ut.Add("platform", "{0} must be one of WhatsApp, Facebook, Instagram, Telegram, Email, SMS, Custom", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("platform", fe.Field())
		return t
	})
	if err != nil {
		return err
	}

	return nil
}

func checkPlatform(fl validator.FieldLevel) bool {
	return domain.Platform(fl.Field().String()).Valid()
}

func (lh *LinkHandler) view(l *domain.AffiliateLink) LinkView {
	return LinkView{
		AffiliateLink: l,
		DisplayURL:    linkgen.TruncateURL(l.URL, displayURLLength),
		TimeLeft:      lh.calc.Countdown(l.ExpiryUnix),
		ExpiryDisplay: lh.calc.FormatAbsolute(l.ExpiryUnix),
	}
}

// Fetch will fetch affiliate links filtered by the platform, status and
// search query parameters
func (lh *LinkHandler) Fetch(c echo.Context) error {
	ctx := c.Request().Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := lh.tracer.Start(
		ctx,
		"http Fetch",
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	filter := new(domain.LinkFilter)
	if err := c.Bind(filter); err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Error: err.Error()})
	}
	filter.Normalize()

	if err := c.Validate(filter); err != nil {
		span.RecordError(err)
		fields := lh.validator.Translate(err)
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Error: "validation error", Fields: fields})
	}

	list, err := lh.linkUsecase.Fetch(ctx, *filter)
	if err != nil {
		span.RecordError(err)
		return c.JSON(domain.GetStatusCode(err, lh.logger), domain.ResponseError{Error: err.Error()})
	}

	views := make([]LinkView, 0, len(list))
	for _, l := range list {
		views = append(views, lh.view(l))
	}

	span.SetStatus(codes.Ok, "success")
	return c.JSON(http.StatusOK, views)
}

// GetByID will get affiliate link by given id
func (lh *LinkHandler) GetByID(c echo.Context) error {
	id := c.Param("id")

	ctx := c.Request().Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := lh.tracer.Start(
		ctx,
		"http GetByID",
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	err := lh.validator.V.Var(id, "required,max=40")
	if err != nil {
		span.RecordError(err)
		fields := lh.validator.Translate(err)
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Error: "validation error", Fields: fields})
	}

	l, err := lh.linkUsecase.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return c.JSON(domain.GetStatusCode(err, lh.logger), domain.ResponseError{Error: err.Error()})
	}
	span.SetAttributes(
		attribute.String("linkid", id),
	)

	return c.JSON(http.StatusOK, lh.view(l))
}

// Store will store the affiliate link of authenticated user by given
// request body
func (lh *LinkHandler) Store(c echo.Context) error {
	ctx := c.Request().Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := lh.tracer.Start(
		ctx,
		"http Store",
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	user, err := lh.claims(c)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusForbidden, domain.ResponseError{Error: domain.ErrForbidden.Error()})
	}

	l := new(domain.CreateLink)
	if err = c.Bind(l); err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Error: err.Error()})
	}
	l.UserID = user.Subject

	if err = c.Validate(l); err != nil {
		span.RecordError(err)
		fields := lh.validator.Translate(err)
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Error: "validation error", Fields: fields})
	}

	result, err := lh.linkUsecase.Store(ctx, *l, requestOrigin(c))
	if err != nil {
		span.RecordError(err)
		return c.JSON(domain.GetStatusCode(err, lh.logger), domain.ResponseError{Error: err.Error()})
	}

	span.SetAttributes(
		attribute.String("userid", user.Subject),
		attribute.String("linkid", result.ID),
	)

	return c.JSON(http.StatusCreated, lh.view(result))
}

// Update will update the affiliate link by given request body
func (lh *LinkHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := lh.tracer.Start(
		ctx,
		"http Update",
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	user, err := lh.claims(c)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusForbidden, domain.ResponseError{Error: domain.ErrForbidden.Error()})
	}

	l := new(domain.UpdateLink)
	if err = c.Bind(l); err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Error: err.Error()})
	}
	l.ID = c.Param("id")

	if err = c.Validate(l); err != nil {
		span.RecordError(err)
		fields := lh.validator.Translate(err)
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Error: "validation error", Fields: fields})
	}

	result, err := lh.linkUsecase.Update(ctx, *l, user)
	if err != nil {
		span.RecordError(err)
		return c.JSON(domain.GetStatusCode(err, lh.logger), domain.ResponseError{Error: err.Error()})
	}

	span.SetAttributes(
		attribute.String("userid", user.Subject),
		attribute.String("linkid", l.ID),
	)

	return c.JSON(http.StatusOK, lh.view(result))
}

// Delete will delete affiliate link by given id
func (lh *LinkHandler) Delete(c echo.Context) error {
	id := c.Param("id")

	ctx := c.Request().Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := lh.tracer.Start(
		ctx,
		"http Delete",
		trace.WithSpanKind(trace.SpanKindServer),
	)
	defer span.End()

	err := lh.validator.V.Var(id, "required,max=40")
	if err != nil {
		span.RecordError(err)
		fields := lh.validator.Translate(err)
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Error: "validation error", Fields: fields})
	}

	user, err := lh.claims(c)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusForbidden, domain.ResponseError{Error: domain.ErrForbidden.Error()})
	}

	if err = lh.linkUsecase.Delete(ctx, id, user); err != nil {
		span.RecordError(err)
		return c.JSON(domain.GetStatusCode(err, lh.logger), domain.ResponseError{Error: err.Error()})
	}

	span.SetAttributes(
		attribute.String("userid", user.Subject),
		attribute.String("linkid", id),
	)

	return c.JSON(http.StatusNoContent, nil)
}

func (lh *LinkHandler) claims(c echo.Context) (*auth.Claims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, domain.ErrForbidden
	}
	user, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, fmt.Errorf("%w can't convert jwt.Claims to auth.Claims", domain.ErrInternalServerError)
	}
	return user, nil
}

// requestOrigin reconstructs the origin the request was made against so
// generated links point back at the serving host
func requestOrigin(c echo.Context) string {
	if c.Request() == nil || c.Request().Host == "" {
		return ""
	}
	return c.Scheme() + "://" + c.Request().Host
}
