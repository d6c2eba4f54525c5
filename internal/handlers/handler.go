package handlers

import (
	"net/http"

	"pinboard/internal/logger"
	"pinboard/internal/service"
	"pinboard/web"

	"github.com/gin-gonic/gin"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(web.Templates())
	router.Use(h.sessionMiddleware)

	// Health endpoint
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerNoteRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	r.GET("/register", h.showRegister)
	r.POST("/register", h.register)
	r.GET("/login", h.showLogin)
	r.POST("/login", h.login)
	r.GET("/logout", h.logout)
}

func (h *Handler) registerNoteRoutes(r *gin.Engine) {
	r.GET("/", h.index)
	r.POST("/", h.createNote)
	r.GET("/edit/:id", h.showEdit)
	r.POST("/edit/:id", h.editNote)
	r.POST("/toggle_pin/:id", h.togglePin)
	r.POST("/delete/:id", h.deleteNote)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
