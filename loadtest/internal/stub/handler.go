package stub

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	storage    *NoteStorage
	apiKey     string
	failStatus int
}

// NewHandler serves the entry notes API. An empty apiKey skips
// authentication; a non-zero failStatus rejects every note with that status.
func NewHandler(storage *NoteStorage, apiKey string, failStatus int) *Handler {
	return &Handler{
		storage:    storage,
		apiKey:     apiKey,
		failStatus: failStatus,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	v1 := r.Group("/v1")
	{
		v1.POST("/entries/:id/notes", h.HandleAddNote)
		v1.GET("/entries/:id/notes", h.HandleListEntryNotes)
	}
	r.GET("/notes", h.HandleListNotes)
	r.POST("/reset", h.HandleReset)
}

func (h *Handler) HandleAddNote(c *gin.Context) {
	entryID := c.Param("id")

	if h.apiKey != "" && c.GetHeader("X-Api-Key") != h.apiKey {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
		return
	}

	if h.failStatus != 0 {
		slog.Info("rejecting note", slog.String("entry_id", entryID), slog.Int("status", h.failStatus))
		c.JSON(h.failStatus, gin.H{"error": "injected failure"})
		return
	}

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note := h.storage.Add(entryID, req, c.GetHeader("x-request-id"))

	slog.Info("note recorded",
		slog.String("entry_id", entryID),
		slog.String("note_id", note.ID),
		slog.Bool("private", note.Private),
		slog.String("body", note.Body),
	)

	c.JSON(http.StatusCreated, gin.H{"data": note})
}

func (h *Handler) HandleListEntryNotes(c *gin.Context) {
	notes := h.storage.ForEntry(c.Param("id"))
	c.JSON(http.StatusOK, NotesResponse{Notes: notes, Count: len(notes)})
}

func (h *Handler) HandleListNotes(c *gin.Context) {
	notes := h.storage.All()
	if notes == nil {
		notes = []Note{}
	}
	c.JSON(http.StatusOK, NotesResponse{Notes: notes, Count: len(notes)})
}

func (h *Handler) HandleReset(c *gin.Context) {
	h.storage.Reset()
	slog.Info("notes reset")
	c.JSON(http.StatusOK, gin.H{"status": "reset complete"})
}
