package main

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/metrics"
)

//go:embed templates/*.html
var templatesFS embed.FS

// inputNames are the form input names the templates post for each field.
var inputNames = map[contact.Field]string{
	contact.FieldName:    "fullName",
	contact.FieldEmail:   "email",
	contact.FieldMessage: "message",
}

var fieldLabels = map[contact.Field]string{
	contact.FieldName:    "Full name",
	contact.FieldEmail:   "Email",
	contact.FieldMessage: "Message",
}

type fieldView struct {
	Field contact.Field
	Input string
	Label string
	Value string
	Error string
	Focus bool
}

type formView struct {
	Fields []fieldView
}

func newFormView(snap contact.Snapshot, focus contact.Field) formView {
	view := formView{}
	for _, f := range contact.Fields {
		view.Fields = append(view.Fields, fieldView{
			Field: f,
			Input: inputNames[f],
			Label: fieldLabels[f],
			Value: snap.Values.Get(f),
			Error: snap.Errors[f],
			Focus: f == focus,
		})
	}
	return view
}

type server struct {
	content  *Content
	sessions *Sessions
	log      *slog.Logger
}

func newRouter(s *server) (*gin.Engine, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := gin.Default()
	r.SetHTMLTemplate(tmpl)

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	r.GET("/", s.handleIndex)
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// Mounting and unmounting the form own the session lifecycle.
	r.GET("/contact-form", s.handleMount)
	r.DELETE("/contact-form", s.handleUnmount)

	group := r.Group("/contact", s.sessions.sessionMiddleware())
	group.POST("", s.handleSubmit)
	group.POST("/field/:field", s.handleField)
	group.GET("/status", s.handleStatus)
	group.POST("/dismiss", s.handleDismiss)

	return r, nil
}

func (s *server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"content": s.content,
	})
}

func (s *server) handleMount(c *gin.Context) {
	if id, err := c.Cookie(sessionCookie); err == nil {
		s.sessions.Unmount(id)
	}
	sess := s.sessions.Mount()
	s.sessions.setCookie(c, sess.id)
	c.HTML(http.StatusOK, "contact.html", newFormView(sess.ctrl.Snapshot(), ""))
}

func (s *server) handleUnmount(c *gin.Context) {
	if id, err := c.Cookie(sessionCookie); err == nil {
		s.sessions.Unmount(id)
	}
	s.sessions.clearCookie(c)
	c.Status(http.StatusNoContent)
}

// handleField applies a keystroke or blur event and renders the field's inline
// error.
func (s *server) handleField(c *gin.Context) {
	f, err := contact.ParseField(c.Param("field"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	sess := sessionFrom(c)
	value := c.PostForm(inputNames[f])

	if c.PostForm("event") == "blur" {
		err = sess.ctrl.OnBlur(f, value)
	} else {
		err = sess.ctrl.OnChange(f, value)
	}
	if err != nil {
		s.abort(c, err)
		return
	}

	c.HTML(http.StatusOK, "contact-error.html", gin.H{
		"Field": f,
		"Error": sess.ctrl.Snapshot().Errors[f],
	})
}

func (s *server) handleSubmit(c *gin.Context) {
	sess := sessionFrom(c)

	// A plain form post carries every value; they are applied only if the
	// form is idle.
	posted := make(map[contact.Field]string)
	for _, f := range contact.Fields {
		if value, ok := c.GetPostForm(inputNames[f]); ok {
			posted[f] = value
		}
	}

	res, err := sess.ctrl.SubmitWith(posted)
	if err != nil {
		s.abort(c, err)
		return
	}
	metrics.SubmissionsTotal.WithLabelValues(res.Outcome.String()).Inc()

	switch res.Outcome {
	case contact.SubmitInvalid:
		for f := range res.Errors {
			metrics.ValidationFailuresTotal.WithLabelValues(string(f)).Inc()
		}
		c.Header("HX-Trigger", `{"contact:focus":"`+inputNames[res.Focus]+`"}`)
		c.HTML(http.StatusOK, "contact.html", newFormView(sess.ctrl.Snapshot(), res.Focus))
	case contact.SubmitAccepted:
		s.log.Info("Contact message sending", "session", sess.id)
		c.HTML(http.StatusOK, "contact-sending.html", nil)
	case contact.SubmitBusy:
		s.renderStatus(c, http.StatusConflict, sess)
	}
}

func (s *server) handleStatus(c *gin.Context) {
	s.renderStatus(c, http.StatusOK, sessionFrom(c))
}

func (s *server) handleDismiss(c *gin.Context) {
	sess := sessionFrom(c)
	if sess.ctrl.Dismiss() {
		metrics.DismissedTotal.Inc()
	}
	s.renderStatus(c, http.StatusOK, sess)
}

func (s *server) renderStatus(c *gin.Context, code int, sess *session) {
	snap := sess.ctrl.Snapshot()
	switch snap.State {
	case contact.StateSending:
		c.HTML(code, "contact-sending.html", nil)
	case contact.StateSucceeded:
		c.HTML(code, "contact-success.html", gin.H{
			"success": "Thank you for your message! I'll get back to you soon.",
		})
	default:
		c.HTML(code, "contact.html", newFormView(snap, ""))
	}
}

func (s *server) abort(c *gin.Context, err error) {
	switch {
	case errors.Is(err, contact.ErrUnknownField):
		c.String(http.StatusBadRequest, err.Error())
	case errors.Is(err, contact.ErrClosed):
		// The session was swept between lookup and use.
		s.sessions.clearCookie(c)
		c.String(http.StatusGone, "This form has expired. Please reload the page.")
	default:
		s.log.Error("Contact request failed", "err", err)
		c.String(http.StatusInternalServerError, "Sorry, something went wrong.")
	}
}
