package resumes

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/util"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes mounts the owner-scoped resume routes under /resume and the
// public render and template routes directly on api.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	group := api.Group("/resume", requireAuth)
	group.POST("", h.create)
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.delete)
	group.GET("/:id/render", h.renderSaved)

	api.POST("/render", h.renderPayload)
	api.GET("/templates", h.templates)
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid json body", nil)
		return
	}
	data, ok := parseData(c, req.Data)
	if !ok {
		return
	}
	res, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), CreateInput{
		Title:     req.Title,
		Template:  req.Template,
		Thumbnail: req.Thumbnail,
		Data:      data,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.ResumeIDKey, res.ID)
	respond.Created(c, newResumeResponse(res))
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, newResumeSummaries(list))
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)
	res, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, newResumeResponse(res))
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid json body", nil)
		return
	}
	in := UpdateInput{Title: req.Title, Template: req.Template, Thumbnail: req.Thumbnail}
	if !isAbsent(req.Data) {
		data, ok := parseData(c, req.Data)
		if !ok {
			return
		}
		in.Data = &data
	}
	res, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, newResumeResponse(res))
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		writeError(c, err)
		return
	}
	respond.NoContent(c)
}

// renderSaved lays out a stored resume. Query: style, width, format=json|html.
func (h *Handler) renderSaved(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)
	width, ok := parseWidth(c, c.Query("width"))
	if !ok {
		return
	}
	doc, err := h.Svc.Render(c.Request.Context(), middleware.UserIDFromContext(c), id, c.Query("style"), width)
	if err != nil {
		writeError(c, err)
		return
	}
	writeDocument(c, doc)
}

func (h *Handler) renderPayload(c *gin.Context) {
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid json body", nil)
		return
	}
	if req.Width < 0 {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "width must not be negative", nil)
		return
	}
	data, ok := parseData(c, req.Data)
	if !ok {
		return
	}
	doc, err := h.Svc.RenderData(req.Style, data, req.Width)
	if err != nil {
		writeError(c, err)
		return
	}
	writeDocument(c, doc)
}

func (h *Handler) templates(c *gin.Context) {
	styles := h.Svc.StyleList()
	out := make([]styleResponse, 0, len(styles))
	for _, st := range styles {
		out = append(out, styleResponse{Name: st.Name, Aliases: st.Aliases, Layout: st.Layout})
	}
	respond.OK(c, out)
}

// writeDocument serves doc as JSON or HTML with a content ETag. With
// download=1 the HTML page is sent as an attachment named after the resume.
func writeDocument(c *gin.Context, doc render.Document) {
	var (
		body        []byte
		contentType string
	)
	switch format := strings.ToLower(strings.TrimSpace(c.Query("format"))); format {
	case "", "json":
		encoded, err := json.Marshal(doc)
		if err != nil {
			respond.Internal(c, err)
			return
		}
		body, contentType = encoded, "application/json; charset=utf-8"
	case "html":
		var buf bytes.Buffer
		if err := render.WriteHTML(&buf, doc); err != nil {
			respond.Internal(c, err)
			return
		}
		body, contentType = buf.Bytes(), "text/html; charset=utf-8"
		if download, _ := strconv.ParseBool(c.Query("download")); download {
			c.Header("Content-Disposition", `attachment; filename="`+downloadName(doc)+`.html"`)
		}
	default:
		respond.Error(c, http.StatusBadRequest, "invalid_request", "format must be json or html", nil)
		return
	}

	etag := util.ETag(body)
	c.Header("ETag", etag)
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, contentType, body)
}

func downloadName(doc render.Document) string {
	if name, err := util.SanitizeFileName(doc.Header.FullName); err == nil {
		return name
	}
	return "resume"
}

func parseWidth(c *gin.Context, raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	width, err := strconv.ParseFloat(raw, 64)
	if err != nil || width < 0 {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "width must be a non-negative number", nil)
		return 0, false
	}
	return width, true
}

func isAbsent(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// parseData validates a request's resume payload. A missing or null payload is
// the empty resume.
func parseData(c *gin.Context, raw []byte) (model.ResumeData, bool) {
	if isAbsent(raw) {
		return model.ResumeData{}, true
	}
	data, err := model.Parse(raw)
	if err == nil {
		return data, true
	}
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		respond.Error(c, http.StatusBadRequest, "invalid_resume", "resume data does not match the schema", verr.Fields)
		return model.ResumeData{}, false
	}
	respond.Error(c, http.StatusBadRequest, "invalid_resume", err.Error(), nil)
	return model.ResumeData{}, false
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnknownStyle):
		respond.Error(c, http.StatusBadRequest, "unknown_style", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Resume not found", nil)
	default:
		respond.Internal(c, err)
	}
}
