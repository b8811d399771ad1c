package middleware

import "github.com/labstack/echo/v4"

const (
	contextUserIDKey  = "auth_user_id"
	contextEmailKey   = "auth_email"
	contextRoleKey    = "auth_role"
	contextIsAdminKey = "auth_is_admin"
)

func SetAuthContext(c echo.Context, userID int64, email string, role string, isAdmin bool) {
	c.Set(contextUserIDKey, userID)
	c.Set(contextEmailKey, email)
	c.Set(contextRoleKey, role)
	c.Set(contextIsAdminKey, isAdmin)
}

func UserIDFromContext(c echo.Context) (int64, bool) {
	value := c.Get(contextUserIDKey)
	userID, ok := value.(int64)
	return userID, ok
}

func EmailFromContext(c echo.Context) (string, bool) {
	value := c.Get(contextEmailKey)
	email, ok := value.(string)
	return email, ok
}

func RoleFromContext(c echo.Context) (string, bool) {
	value := c.Get(contextRoleKey)
	role, ok := value.(string)
	return role, ok
}

func IsAdminFromContext(c echo.Context) bool {
	value := c.Get(contextIsAdminKey)
	isAdmin, ok := value.(bool)
	return ok && isAdmin
}
