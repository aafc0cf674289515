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

package notices

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the public notice routes
func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	notices := rg.Group("/notices")
	{
		notices.GET("", h.List)
		notices.GET("/current", h.Current)
		notices.GET("/past", h.PastMonths)
		notices.GET("/past/:month", h.PastByMonth)
		notices.GET("/overview", h.Overview)
		notices.GET("/copy-text", h.CopyText)
		notices.GET("/:id", h.Detail)
		notices.GET("/:id/files", h.Files)
	}
}

// RegisterAdminRoutes registers notice mutations on an already guarded group
func RegisterAdminRoutes(admin *gin.RouterGroup, h *Handler) {
	notices := admin.Group("/notices")
	{
		notices.GET("/:id", h.GetByID)
		notices.POST("", h.Create)
		notices.PUT("/:id", h.Update)
		notices.DELETE("/:id", h.Remove)
	}
}
