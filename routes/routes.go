package routes

import (
	"net/http"

	"tutorly/handlers"
	"tutorly/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Register wires every endpoint onto the router. Health stays open; the
// rest of the API sits behind rate limiting and bearer auth.
func Register(r *gin.Engine, scheduleH *handlers.ScheduleHandler, studentH *handlers.StudentHandler, earningsH *handlers.EarningsHandler) {
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware())
	api.Use(middleware.JWTAuthMiddleware())

	sched := api.Group("/schedule")
	{
		sched.GET("/occurrences", scheduleH.GetOccurrences)
		sched.POST("/conflicts", scheduleH.CheckConflicts)
		sched.GET("/suggestions", scheduleH.SuggestSlots)
		sched.POST("/bookings", scheduleH.AddBooking)
		sched.PUT("/bookings/:id", scheduleH.UpdateBooking)
		sched.DELETE("/bookings/:id", scheduleH.DeleteBooking)
		sched.POST("/exceptions", scheduleH.AddException)
		sched.DELETE("/exceptions/:id", scheduleH.RemoveException)
	}

	students := api.Group("/students")
	{
		students.GET("", studentH.List)
		students.POST("", studentH.Add)
		students.GET("/:id", studentH.Get)
		students.PUT("/:id", studentH.Update)
		students.DELETE("/:id", studentH.Remove)
	}

	earningsGroup := api.Group("/earnings")
	{
		earningsGroup.GET("/transactions", earningsH.ListTransactions)
		earningsGroup.POST("/transactions", earningsH.AddManualTransaction)
		earningsGroup.DELETE("/transactions/:id", earningsH.RemoveTransaction)
		earningsGroup.POST("/accrue", earningsH.RunAccrual)
		earningsGroup.GET("/summary", earningsH.GetSummary)
	}
}
