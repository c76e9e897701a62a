package handler

import "github.com/gin-gonic/gin"

// Handlers groups the HTTP handlers mounted under the API prefix.
type Handlers struct {
	Session    *SessionHandler
	Dashboard  *DashboardHandler
	Students   *StudentHandler
	Courses    *CourseHandler
	Attendance *AttendanceHandler
}

// RegisterRoutes mounts the API. Login and the remembered email stay public;
// everything else runs behind guard.
func RegisterRoutes(api *gin.RouterGroup, h Handlers, guard gin.HandlerFunc) {
	session := api.Group("/session")
	session.POST("/login", h.Session.Login)
	session.GET("/remembered", h.Session.Remembered)

	protected := api.Group("")
	protected.Use(guard)

	protected.GET("/session", h.Session.Current)
	protected.POST("/session/logout", h.Session.Logout)

	protected.GET("/dashboard", h.Dashboard.Summary)

	students := protected.Group("/students")
	students.GET("", h.Students.List)
	students.POST("", h.Students.Create)
	students.GET("/stats", h.Students.Stats)
	students.GET("/recent", h.Students.Recent)
	students.GET("/classes", h.Students.Classes)
	students.GET("/profile", h.Students.Profile)
	students.GET("/:id", h.Students.Get)
	students.PUT("/:id", h.Students.Update)
	students.DELETE("/:id", h.Students.Delete)
	students.GET("/:id/attendance", h.Students.Attendance)

	courses := protected.Group("/courses")
	courses.GET("", h.Courses.List)
	courses.POST("", h.Courses.Create)
	courses.GET("/stats", h.Courses.Stats)
	courses.GET("/:id", h.Courses.Get)
	courses.PUT("/:id", h.Courses.Update)
	courses.DELETE("/:id", h.Courses.Delete)

	attendance := protected.Group("/attendance")
	attendance.GET("", h.Attendance.Sheet)
	attendance.GET("/:date", h.Attendance.Daily)
	attendance.GET("/:date/export.csv", h.Attendance.ExportCSV)
	attendance.GET("/:date/export.pdf", h.Attendance.ExportPDF)
	attendance.PUT("/:date/:studentId", h.Attendance.SetStatus)
	attendance.POST("/:date/mark-all", h.Attendance.MarkAll)
}
