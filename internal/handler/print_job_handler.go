package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"printshop/internal/middleware"
	"printshop/internal/service"
	"printshop/internal/storage"
	"printshop/internal/web"

	"github.com/gin-gonic/gin"
)

// multipart framing allowance on top of the file size limit
const formOverhead = 1 << 20

// PrintJobHandler handles the student and staff dashboards
type PrintJobHandler struct {
	service      service.PrintJobService
	auth         service.AuthService
	flashes      *web.FlashStore
	maxUpload    int64
	cookieSecure bool
}

// NewPrintJobHandler creates a new PrintJobHandler. A maxUpload of zero leaves the body unbounded.
func NewPrintJobHandler(s service.PrintJobService, auth service.AuthService, flashes *web.FlashStore, maxUpload int64, cookieSecure bool) *PrintJobHandler {
	return &PrintJobHandler{service: s, auth: auth, flashes: flashes, maxUpload: maxUpload, cookieSecure: cookieSecure}
}

type submitForm struct {
	Copies int    `form:"copies" binding:"required,min=1"`
	Color  string `form:"color"`
}

func (h *PrintJobHandler) StudentDashboard(c *gin.Context) {
	user, ok := currentUser(c, h.auth, h.flashes, h.cookieSecure)
	if !ok {
		return
	}
	identity, _ := middleware.CurrentIdentity(c)

	jobs, err := h.service.ListForUser(c.Request.Context(), identity)
	if err != nil {
		fail(c, h.flashes, err, "/login")
		return
	}
	c.HTML(http.StatusOK, "student.html", page(c, h.flashes, "My print jobs", gin.H{
		"User":      user,
		"Jobs":      jobs,
		"MaxCopies": service.MaxCopies,
		"RateMono":  service.RatePerPageMono,
		"RateColor": service.RatePerPageColor,
	}))
}

func (h *PrintJobHandler) SubmitJob(c *gin.Context) {
	if _, ok := currentUser(c, h.auth, h.flashes, h.cookieSecure); !ok {
		return
	}
	identity, _ := middleware.CurrentIdentity(c)
	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+formOverhead)
	}

	var form submitForm
	if err := c.ShouldBind(&form); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, h.flashes, storage.ErrFileTooLarge, "/student")
			return
		}
		fail(c, h.flashes, service.ErrInvalidQuantity, "/student")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, h.flashes, storage.ErrFileTooLarge, "/student")
			return
		}
		fail(c, h.flashes, storage.ErrNoFileSelected, "/student")
		return
	}

	job, err := h.service.Submit(c.Request.Context(), identity, fileHeader, form.Copies, form.Color == "color")
	if err != nil {
		fail(c, h.flashes, err, "/student")
		return
	}
	flashRedirect(c, h.flashes, "info", fmt.Sprintf("Uploaded. Cost: ₹%d", job.Cost), "/student")
}

func (h *PrintJobHandler) StaffDashboard(c *gin.Context) {
	if _, ok := currentUser(c, h.auth, h.flashes, h.cookieSecure); !ok {
		return
	}
	identity, _ := middleware.CurrentIdentity(c)

	queue, err := h.service.Queue(c.Request.Context(), identity, service.DefaultFinishedLimit)
	if err != nil {
		fail(c, h.flashes, err, "/login")
		return
	}
	c.HTML(http.StatusOK, "staff.html", page(c, h.flashes, "Print queue", gin.H{"Queue": queue}))
}

func (h *PrintJobHandler) UpdateStatus(c *gin.Context) {
	if _, ok := currentUser(c, h.auth, h.flashes, h.cookieSecure); !ok {
		return
	}
	identity, _ := middleware.CurrentIdentity(c)

	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, h.flashes, service.ErrJobNotFound, "/staff")
		return
	}

	job, err := h.service.SetStatus(c.Request.Context(), identity, jobID, c.PostForm("status"))
	if err != nil {
		fail(c, h.flashes, err, "/staff")
		return
	}
	flashRedirect(c, h.flashes, "info", fmt.Sprintf("Job #%d is now %s", job.ID, job.Status), "/staff")
}

func (h *PrintJobHandler) Download(c *gin.Context) {
	if _, ok := currentUser(c, h.auth, h.flashes, h.cookieSecure); !ok {
		return
	}
	identity, _ := middleware.CurrentIdentity(c)
	back := identity.Role.Dashboard()

	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, h.flashes, service.ErrJobNotFound, back)
		return
	}

	path, name, err := h.service.DocumentFor(c.Request.Context(), identity, jobID)
	if err != nil {
		fail(c, h.flashes, err, back)
		return
	}
	c.FileAttachment(path, name)
}

// RegisterPrintJobRoutes registers the dashboard routes behind the session gates
func (h *PrintJobHandler) RegisterPrintJobRoutes(r gin.IRouter) {
	loggedIn := r.Group("/", middleware.RequireLogin())
	{
		loggedIn.GET("/download/:id", h.Download)
	}

	students := r.Group("/", middleware.RequireLogin(), middleware.StudentOnly())
	{
		students.GET("/student", h.StudentDashboard)
		students.POST("/submit_job", h.SubmitJob)
	}

	staff := r.Group("/", middleware.RequireLogin(), middleware.StaffOnly())
	{
		staff.GET("/staff", h.StaffDashboard)
		staff.POST("/update_status/:id", h.UpdateStatus)
	}
}
