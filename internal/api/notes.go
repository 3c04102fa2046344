package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/palette"
	"github.com/aretw0/jotter/pkg/render"
)

// noteRequest is the body of POST and PUT /notes. Omitted fields keep their
// current value on update.
type noteRequest struct {
	Title           *string        `json:"title"`
	Content         *string        `json:"content"`
	TextColor       *palette.Color `json:"text_color"`
	BackgroundColor *palette.Color `json:"background_color"`
	// ScheduledDate is YYYY-MM-DD; an empty string unschedules the note.
	ScheduledDate *string `json:"scheduled_date"`
}

func (r noteRequest) apply(n *core.Note) error {
	if r.Title != nil {
		n.Title = *r.Title
	}
	if r.Content != nil {
		n.Content = *r.Content
	}
	if r.TextColor != nil {
		n.TextColor = *r.TextColor
	}
	if r.BackgroundColor != nil {
		n.BackgroundColor = *r.BackgroundColor
	}
	if r.ScheduledDate != nil {
		if *r.ScheduledDate == "" {
			n.ScheduledDate = nil
		} else {
			day, err := time.ParseInLocation(DateLayout, *r.ScheduledDate, time.Local)
			if err != nil {
				return err
			}
			n.ScheduledDate = &day
		}
	}
	return nil
}

type noteResponse struct {
	core.Note
	Plain   string `json:"plain"`
	Preview string `json:"preview"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

func toResponse(n core.Note) noteResponse {
	return noteResponse{
		Note:    n,
		Plain:   n.PlainText(),
		Preview: n.Preview(core.PreviewLength),
		Date:    n.FormattedDate(),
		Time:    n.FormattedTime(),
	}
}

func noteID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid note id "+strconv.Quote(c.Param("id")))
		return 0, false
	}
	return id, true
}

// listNotes handles GET /notes and GET /notes?date=YYYY-MM-DD.
func (s *Server) listNotes(c *gin.Context) {
	var (
		notes []core.Note
		err   error
	)
	if date := strings.TrimSpace(c.Query("date")); date != "" {
		day, perr := time.ParseInLocation(DateLayout, date, time.Local)
		if perr != nil {
			badRequest(c, "invalid date, want "+DateLayout)
			return
		}
		notes, err = s.svc.NotesOn(c.Request.Context(), day)
	} else {
		notes, err = s.svc.ListNotes(c.Request.Context())
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	out := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toResponse(n))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getNote(c *gin.Context) {
	id, ok := noteID(c)
	if !ok {
		return
	}
	n, err := s.svc.GetNote(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(n))
}

// noteHTML renders the note content as an HTML fragment.
func (s *Server) noteHTML(c *gin.Context) {
	id, ok := noteID(c)
	if !ok {
		return
	}
	n, err := s.svc.GetNote(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	out, err := render.HTML(n.Content)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}

func (s *Server) createNote(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	var n core.Note
	if err := req.apply(&n); err != nil {
		badRequest(c, "invalid scheduled_date, want "+DateLayout)
		return
	}

	saved, err := s.svc.SaveNote(c.Request.Context(), n)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(saved))
}

func (s *Server) updateNote(c *gin.Context) {
	id, ok := noteID(c)
	if !ok {
		return
	}
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	n, err := s.svc.GetNote(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := req.apply(&n); err != nil {
		badRequest(c, "invalid scheduled_date, want "+DateLayout)
		return
	}

	saved, err := s.svc.SaveNote(c.Request.Context(), n)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(saved))
}

func (s *Server) deleteNote(c *gin.Context) {
	id, ok := noteID(c)
	if !ok {
		return
	}
	if err := s.svc.DeleteNote(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
