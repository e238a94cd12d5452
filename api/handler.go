package api

import (
	"crypto/subtle"
	"errors"
	"html"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"

	"github.com/pthm/postboard/posts"
)

// Handler serves a Backend as the JSON posts API Client speaks.
type Handler struct {
	backend Backend
	key     string
	logger  *slog.Logger
	policy  *bluemonday.Policy
}

// NewHandler serves b. A non-empty key must match every request's ?key=.
func NewHandler(b Backend, key string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{backend: b, key: key, logger: logger, policy: bluemonday.StrictPolicy()}
}

// Register adds the posts routes to g.
func (h *Handler) Register(g *echo.Group) {
	g.Use(h.checkKey)
	g.GET("/posts", h.list)
	g.POST("/posts", h.create)
	g.GET("/posts/:id", h.get)
	g.DELETE("/posts/:id", h.remove)
}

func (h *Handler) checkKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.key != "" && subtle.ConstantTimeCompare([]byte(c.QueryParam("key")), []byte(h.key)) != 1 {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid key")
		}
		return next(c)
	}
}

func (h *Handler) list(c echo.Context) error {
	ps, err := h.backend.ListPosts(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, ps)
}

func (h *Handler) get(c echo.Context) error {
	p, err := h.backend.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) create(c echo.Context) error {
	var v posts.Values
	if err := c.Bind(&v); err != nil {
		return err
	}
	errs := posts.Validate(v)
	h.rejectMarkup(v, errs)
	if !errs.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]any{"errors": errs})
	}

	p, err := h.backend.CreatePost(c.Request().Context(), v)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// rejectMarkup adds an error for each field the strict policy would alter.
// Entities compare decoded so escaped text is accepted as typed.
func (h *Handler) rejectMarkup(v posts.Values, errs map[string]string) {
	fields := map[string]string{
		posts.FieldTitle:      v.Title,
		posts.FieldCategories: v.Categories,
		posts.FieldContent:    v.Content,
	}
	for name, s := range fields {
		if _, ok := errs[name]; ok {
			continue
		}
		if html.UnescapeString(h.policy.Sanitize(s)) != html.UnescapeString(s) {
			errs[name] = "HTML markup is not allowed."
		}
	}
}

func (h *Handler) remove(c echo.Context) error {
	id := c.Param("id")
	p, err := h.backend.GetPost(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.backend.DeletePost(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) fail(c echo.Context, err error) error {
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	h.logger.Error("posts api", "method", c.Request().Method, "path", c.Path(), "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
}
