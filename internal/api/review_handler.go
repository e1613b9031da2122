package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/langcontrol/langcontrol-api/internal/api/shared"
	"github.com/langcontrol/langcontrol-api/internal/domain"
	"github.com/langcontrol/langcontrol-api/internal/platform/logger"
	"github.com/langcontrol/langcontrol-api/internal/platform/session"
	"github.com/langcontrol/langcontrol-api/internal/redact"
	"github.com/langcontrol/langcontrol-api/internal/service/review"
)

// NowFunc supplies the current UTC instant. Injected so tests can pin time.
type NowFunc func() time.Time

// ReviewHandler handles review-session HTTP requests.
type ReviewHandler struct {
	reviewService review.ReviewService
	sessions      *session.Store
	defaultLimit  int
	now           NowFunc
	logger        *slog.Logger
}

// HandlerOption configures a ReviewHandler.
type HandlerOption func(*ReviewHandler)

// WithNowFunc overrides the handler's clock source.
func WithNowFunc(now NowFunc) HandlerOption {
	return func(h *ReviewHandler) {
		h.now = now
	}
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(
	reviewService review.ReviewService,
	sessions *session.Store,
	defaultLimit int,
	log *slog.Logger,
	opts ...HandlerOption,
) *ReviewHandler {
	if reviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reviewService cannot be nil for ReviewHandler")
	}
	if sessions == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("sessions cannot be nil for ReviewHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	h := &ReviewHandler{
		reviewService: reviewService,
		sessions:      sessions,
		defaultLimit:  defaultLimit,
		now:           func() time.Time { return time.Now().UTC() },
		logger:        log.With(slog.String("component", "review_handler")),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// StartSession handles POST /reviews requests.
// It selects the deck's due cards, seeds a session queue, and registers the
// session. Responds 204 when the deck has no due cards.
func (h *ReviewHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req StartSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	limit := req.Limit
	if limit == 0 {
		limit = h.defaultLimit
	}

	now := h.now()
	queue, err := h.reviewService.StartSession(r.Context(), req.DeckID, req.Timezone, now, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	// No due cards: a valid outcome, the caller returns to the deck list.
	if queue.Len() == 0 {
		log.Debug("no cards due", slog.Int64("deck_id", req.DeckID))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	sess := h.sessions.Create(req.DeckID, req.Timezone, queue, now)

	log.Debug("review session started",
		slog.String("session_id", sess.ID.String()),
		slog.Int64("deck_id", req.DeckID),
		slog.Int("queue_len", queue.Len()))

	h.respondWithSessionState(w, r, sess)
}

// CurrentCard handles GET /reviews/{sessionID} requests.
// It returns the card at the head of the session queue and its display mode.
func (h *ReviewHandler) CurrentCard(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookupSession(w, r)
	if !ok {
		return
	}

	h.respondWithSessionState(w, r, sess)
}

// SubmitRating handles POST /reviews/{sessionID}/ratings requests.
// It applies the rating to the head card, advances the queue, and reports
// either the next card or session completion.
func (h *ReviewHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sess, ok := h.lookupSession(w, r)
	if !ok {
		return
	}

	var req RatingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("session_id", sess.ID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	input := domain.RatingInput{
		FlashcardID: req.FlashcardID,
		Rating:      domain.RatingType(req.Rating),
	}

	action, err := h.reviewService.SubmitRating(r.Context(), sess.Queue, input, h.now(), sess.TimezoneID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if action == review.NextActionComplete {
		h.sessions.Delete(sess.ID)
		log.Debug("review session complete", slog.String("session_id", sess.ID.String()))
		shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{
			Status: StatusSessionComplete,
		})
		return
	}

	h.respondWithSessionState(w, r, sess)
}

// AbandonSession handles DELETE /reviews/{sessionID} requests.
// Abandoning a session discards its queue; already-persisted card schedules
// are unaffected.
func (h *ReviewHandler) AbandonSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	h.sessions.Delete(sessionID)
	log.Debug("review session abandoned", slog.String("session_id", sessionID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// lookupSession parses the session ID from the URL and loads the session.
// On failure it writes the error response and returns ok=false.
func (h *ReviewHandler) lookupSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	raw := chi.URLParam(r, "sessionID")
	sessionID, err := uuid.Parse(raw)
	if err != nil {
		log.Warn("invalid session ID format", slog.String("session_id", raw))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID format")
		return nil, false
	}

	sess, err := h.sessions.Get(sessionID, h.now())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return nil, false
	}
	return sess, true
}

// respondWithSessionState writes the current card, its display mode, and the
// remaining queue length for an active session.
func (h *ReviewHandler) respondWithSessionState(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	card, mode, err := sess.Queue.Current()
	if err != nil {
		// An empty queue should have been torn down at completion; treat a
		// surviving one as already complete.
		h.sessions.Delete(sess.ID)
		shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{
			Status: StatusSessionComplete,
		})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{
		SessionID:   sess.ID.String(),
		Status:      StatusReviewing,
		CurrentCard: cardToResponse(card),
		DisplayMode: string(mode),
		Remaining:   sess.Queue.Len(),
	})
}
