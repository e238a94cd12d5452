package server

import (
	"github.com/labstack/echo/v4"

	hxcmpecho "github.com/pthm/postboard/adapters/echo"
)

func (s *Server) index(c echo.Context) error {
	return hxcmpecho.Render(c, layout("Posts", s.components.Index.Mount(c.Request().Context())))
}

func (s *Server) newPost(c echo.Context) error {
	return hxcmpecho.Render(c, layout("New Post", s.components.New.Mount(c.Request().Context())))
}

func (s *Server) showPost(c echo.Context) error {
	return hxcmpecho.Render(c, layout("Post", s.components.Show.Mount(c.Request().Context(), c.Param("id"))))
}
