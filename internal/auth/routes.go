//   This project is the class information backend: homework and assessment notices, the weekly timetable and school meals.
//   Class Info Copyright (C) 2025 Class Info contributors
//       This program is free software: you can redistribute it and/or modify
//       it under the terms of the GNU General Public License as published by
//       the Free Software Foundation, either version 3 of the License, or
//       (at your option) any later version.

//       This program is distributed in the hope that it will be useful,
//       but WITHOUT ANY WARRANTY; without even the implied warranty of
//       MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//       GNU General Public License for more details.

//       You should have received a copy of the GNU General Public License
//       along with this program.  If not, see <https://www.gnu.org/licenses/>.

package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the PIN gate routes under /api
func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	router.POST("/verify-pin", handler.VerifyPin)

	admin := router.Group("/admin")
	{
		admin.POST("/login", handler.Login)
		admin.POST("/logout", handler.Logout)
		admin.GET("/session", handler.Session)
	}
}

// RegisterAdminRoutes registers session-protected settings routes on an
// already guarded group
func RegisterAdminRoutes(admin *gin.RouterGroup, handler *Handler) {
	admin.PUT("/pin", handler.SetPin)
}
