package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	SessionName = "showcase"

	visitorKey    = "visitor_id"
	sessionMaxAge = 365 * 24 * 60 * 60
)

// Visitor присваивает посетителю постоянный идентификатор в cookie-сессии.
// Всё состояние страницы (тема, модальные окна, виджет) хранится по нему.
func Visitor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// при битой cookie gorilla возвращает новую сессию вместе с ошибкой
		sess, err := session.Get(SessionName, c)
		if sess == nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "session store unavailable").SetInternal(err)
		}

		id, _ := sess.Values[visitorKey].(string)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			sess.Values[visitorKey] = id
			sess.Options = &sessions.Options{
				Path:     "/",
				MaxAge:   sessionMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			}
			if err := sess.Save(c.Request(), c.Response()); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to save session").SetInternal(err)
			}
		}

		c.Set(visitorKey, id)

		return next(c)
	}
}

func VisitorID(c echo.Context) string {
	id, _ := c.Get(visitorKey).(string)
	return id
}
