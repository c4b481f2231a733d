package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/mirror-server/internal/domain/journal"
	"github.com/janhq/mirror-server/internal/interfaces/httpserver/requests"
	"github.com/janhq/mirror-server/internal/interfaces/httpserver/responses"
	"github.com/janhq/mirror-server/internal/utils/platformerrors"
)

const (
	defaultRecentCount = 10
	maxRecentCount     = 100
)

// JournalHandler exposes journal entries and the follow-up interview.
type JournalHandler struct {
	flows    JournalFlows
	journal  journal.Service
	settings JournalSettings
	log      zerolog.Logger
}

func NewJournalHandler(flows JournalFlows, journalService journal.Service, settings JournalSettings, log zerolog.Logger) *JournalHandler {
	if settings.SearchLimit <= 0 {
		settings.SearchLimit = 5
	}
	return &JournalHandler{
		flows:    flows,
		journal:  journalService,
		settings: settings,
		log:      log.With().Str("handler", "journal").Logger(),
	}
}

// Create handles POST /v1/journal/entries
// @Summary Write a journal entry
// @Description Stores the entry and returns an insight plus follow-up questions
// @Tags Journal
// @Accept json
// @Produce json
// @Param request body requests.CreateJournalEntryRequest true "Entry"
// @Success 201 {object} council.IngestReply
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Router /v1/journal/entries [post]
func (h *JournalHandler) Create(c *gin.Context) {
	var req requests.CreateJournalEntryRequest
	if !bindJSON(c, &req, false) {
		return
	}

	reply, err := h.flows.IngestJournal(c.Request.Context(), owner(c), req.Content, req.Tags())
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reply)
}

// Recent handles GET /v1/journal/entries/recent
// @Summary List recent entries
// @Tags Journal
// @Produce json
// @Param limit query int false "Number of entries" default(10)
// @Success 200 {object} responses.ListResponse[journal.Entry]
// @Router /v1/journal/entries/recent [get]
func (h *JournalHandler) Recent(c *gin.Context) {
	limit := defaultRecentCount
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxRecentCount {
			platformerrors.WriteValidationError(c, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	entries, err := h.journal.FindRecent(c.Request.Context(), owner(c), limit)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.NewList(entries))
}

// Get handles GET /v1/journal/entries/:entry_id
// @Summary Get an entry
// @Tags Journal
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} journal.Entry
// @Failure 404 {object} platformerrors.HTTPErrorResponse
// @Router /v1/journal/entries/{entry_id} [get]
func (h *JournalHandler) Get(c *gin.Context) {
	entryID, ok := pathUUID(c, "entry_id")
	if !ok {
		return
	}

	entry, err := h.journal.Get(c.Request.Context(), owner(c), entryID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// FollowUp handles POST /v1/journal/entries/:entry_id/follow-ups
// @Summary Answer follow-up questions
// @Description Stores the answers and a synthesized entry combining them with the original
// @Tags Journal
// @Accept json
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Param request body requests.FollowUpRequest true "Answers"
// @Success 201 {object} council.FollowUpReply
// @Failure 404 {object} platformerrors.HTTPErrorResponse
// @Failure 500 {object} responses.LinkErrorResponse
// @Router /v1/journal/entries/{entry_id}/follow-ups [post]
func (h *JournalHandler) FollowUp(c *gin.Context) {
	entryID, ok := pathUUID(c, "entry_id")
	if !ok {
		return
	}
	var req requests.FollowUpRequest
	if !bindJSON(c, &req, false) {
		return
	}

	reply, err := h.flows.FollowUp(c.Request.Context(), owner(c), entryID, req.ToQA())
	if err != nil {
		var linkErr *journal.LinkError
		if errors.As(err, &linkErr) {
			responses.HandleLinkError(c, linkErr, reply)
			return
		}
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reply)
}

// Link handles POST /v1/journal/follow-ups/:followup_id/link
// @Summary Link a followup to its synthesized entry
// @Description Retries a failed link; linking the same entry again is a no-op
// @Tags Journal
// @Accept json
// @Param followup_id path string true "Followup ID"
// @Param request body requests.LinkFollowupRequest true "Entry to link"
// @Success 200 {object} journal.Followup
// @Failure 409 {object} platformerrors.HTTPErrorResponse
// @Router /v1/journal/follow-ups/{followup_id}/link [post]
func (h *JournalHandler) Link(c *gin.Context) {
	followupID, ok := pathUUID(c, "followup_id")
	if !ok {
		return
	}
	var req requests.LinkFollowupRequest
	if !bindJSON(c, &req, false) {
		return
	}

	ctx := c.Request.Context()
	if err := h.journal.LinkSynthesized(ctx, owner(c), followupID, req.EntryID); err != nil {
		responses.HandleError(c, err)
		return
	}
	f, err := h.journal.GetFollowup(ctx, owner(c), followupID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// Search handles POST /v1/journal/search
// @Summary Similarity search
// @Tags Journal
// @Accept json
// @Produce json
// @Param request body requests.SearchJournalRequest true "Query"
// @Success 200 {object} responses.ListResponse[journal.ScoredEntry]
// @Failure 502 {object} platformerrors.HTTPErrorResponse
// @Router /v1/journal/search [post]
func (h *JournalHandler) Search(c *gin.Context) {
	var req requests.SearchJournalRequest
	if !bindJSON(c, &req, false) {
		return
	}
	threshold := h.settings.SearchThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	limit := h.settings.SearchLimit
	if req.Limit > 0 {
		limit = req.Limit
	}

	results, err := h.journal.FindSimilar(c.Request.Context(), owner(c), req.Query, threshold, limit)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.NewList(results))
}

// Archive handles POST /v1/journal/archive
// @Summary Archive old entries
// @Tags Journal
// @Accept json
// @Produce json
// @Param request body requests.ArchiveJournalRequest true "Age"
// @Success 200 {object} responses.ArchiveResponse
// @Router /v1/journal/archive [post]
func (h *JournalHandler) Archive(c *gin.Context) {
	var req requests.ArchiveJournalRequest
	if !bindJSON(c, &req, false) {
		return
	}
	age, err := time.ParseDuration(req.OlderThan)
	if err != nil || age <= 0 {
		platformerrors.WriteValidationError(c, "older_than must be a positive duration such as 720h")
		return
	}

	count, err := h.journal.ArchiveOlderThan(c.Request.Context(), owner(c), age)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.ArchiveResponse{Archived: count})
}

// Session handles GET /v1/journal/session
// @Summary Get the pending follow-up interview
// @Tags Journal
// @Produce json
// @Success 200 {object} responses.InterviewResponse
// @Router /v1/journal/session [get]
func (h *JournalHandler) Session(c *gin.Context) {
	interview, pending, err := h.flows.JournalSession(c.Request.Context(), owner(c))
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.InterviewResponse{Pending: pending, Interview: interview})
}
