package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/gediyoneyasu/WCU-CS-management/config"
	"github.com/gediyoneyasu/WCU-CS-management/database"
	"github.com/gediyoneyasu/WCU-CS-management/handlers"
	"github.com/gediyoneyasu/WCU-CS-management/middlewares"
	"github.com/gediyoneyasu/WCU-CS-management/models"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(cfg)
	std := handlers.NewStudentHandler()
	tch := handlers.NewTeacherHandler()
	par := handlers.NewParentHandler()
	att := handlers.NewAttendanceHandler()
	grd := handlers.NewGradeHandler()
	pay := handlers.NewPaymentHandler()
	hw := handlers.NewHomeworkHandler()
	lib := handlers.NewLibraryHandler()
	evt := handlers.NewEventHandler()
	ann := handlers.NewAnnouncementHandler()
	stats := handlers.NewStatsHandler()
	inst := handlers.NewInstallHandler()

	// session cookie → identity on every request
	store := &middlewares.GormSessionStore{DB: database.DB}
	e.Use(middlewares.LoadSession(cfg.SessionSecret, store))

	// ===== Public =====
	e.GET("/health", handlers.Health)
	e.POST("/install", inst.Install)

	e.POST("/admin/login", auth.AdminLogin)
	e.POST("/teacher/login", auth.TeacherLogin)
	e.POST("/parent/login", auth.ParentLogin)
	e.POST("/parent/register", auth.ParentRegister)
	e.POST("/logout", auth.Logout)

	e.POST("/payments", pay.Submit) // public fee submission (screenshot upload)
	e.GET("/events", evt.List)
	e.GET("/announcements", ann.List)
	e.GET("/library/books", lib.ListBooks)
	e.GET("/api/stats", stats.Live) // polled by the landing page

	// ===== Admin =====
	admin := e.Group("/admin",
		middlewares.RequireRole("/admin/login", models.RoleAdmin))

	admin.POST("/students", std.Register)
	admin.GET("/students", std.List)
	admin.GET("/students/:student_id", std.Get)
	admin.PUT("/students/:student_id", std.Update)
	admin.POST("/students/:student_id/deactivate", std.Deactivate)

	admin.GET("/teachers", tch.List)
	admin.POST("/teachers", tch.Create)
	admin.PUT("/teachers/:teacher_id", tch.Update)
	admin.DELETE("/teachers/:teacher_id", tch.Delete)

	admin.GET("/parents", par.List)
	admin.POST("/parents/:parent_id/students", par.LinkStudent)

	admin.GET("/payments", pay.List)
	admin.POST("/payments/:id/approve", pay.Approve)
	admin.POST("/payments/:id/reject", pay.Reject)

	admin.POST("/library/books", lib.CreateBook)
	admin.POST("/library/borrow", lib.Borrow)
	admin.POST("/library/return", lib.Return)
	admin.GET("/library/loans", lib.ListLoans)

	admin.POST("/events", evt.Create)
	admin.PUT("/events/:id", evt.Update)
	admin.DELETE("/events/:id", evt.Delete)

	admin.POST("/announcements", ann.Create)
	admin.PUT("/announcements/:id", ann.Update)
	admin.DELETE("/announcements/:id", ann.Delete)

	// ===== Teacher (admins included) =====
	teacher := e.Group("/teacher",
		middlewares.RequireRole("/teacher/login", models.RoleTeacher, models.RoleAdmin))

	teacher.POST("/attendance", att.Record)
	teacher.GET("/attendance", att.List)

	teacher.POST("/grades", grd.Post)
	teacher.GET("/grades", grd.List)

	teacher.POST("/homework", hw.Create)
	teacher.GET("/homework", hw.List)
	teacher.GET("/homework/:id/submissions", hw.ListSubmissions)
	teacher.PUT("/submissions/:id/grade", hw.GradeSubmission)

	teacher.GET("/students", std.List)
	teacher.PUT("/password", tch.ChangePassword)

	// ===== Parent =====
	parent := e.Group("/parent",
		middlewares.RequireRole("/parent/login", models.RoleParent))

	parent.GET("/children", par.Children)
	parent.GET("/children/:student_id/attendance", att.ListForChild)
	parent.GET("/children/:student_id/grades", grd.ListForChild)
	parent.GET("/children/:student_id/payments", pay.ListForChild)
	parent.GET("/homework", hw.List)
	parent.POST("/homework/:id/submit", hw.Submit)
}
