package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusdine/eatery-availability/internal/domain"
	"github.com/campusdine/eatery-availability/internal/service/directory"
	"github.com/campusdine/eatery-availability/internal/service/filter"
	"github.com/campusdine/eatery-availability/internal/service/timing"
)

// DirectoryHandler serves the eatery listing and detail endpoints.
type DirectoryHandler struct {
	service *directory.Service
}

func NewDirectoryHandler(service *directory.Service) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

// HandleList serves GET /api/v1/eateries.
//
// Query parameters:
//
//	at        RFC3339 reference instant, defaults to the server clock
//	under10   "true" restricts to eateries within a 10 minute walk
//	payment   comma-separated tender types (cash, credit, swipe, brb)
//	favorites "true" restricts to favorited eateries
//	area      comma-separated campus areas
//	lat, lng  user coordinates, required by under10 and used for timing
func (h *DirectoryHandler) HandleList(c *gin.Context) {
	ctx := c.Request.Context()

	now, ok := h.referenceTime(c)
	if !ok {
		return
	}

	f, ok := h.parseFilter(c)
	if !ok {
		return
	}

	entries, err := h.service.List(ctx, f, now)
	if err != nil {
		if errors.Is(err, domain.ErrFeedEmpty) {
			respondError(c, http.StatusServiceUnavailable, "eatery feed has not loaded yet")
			return
		}
		slog.ErrorContext(ctx, "directory listing failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, listResponse{
		At:       now.Format(time.RFC3339),
		Filtered: f.Enabled(),
		Eateries: toEntryResponses(entries),
	})
}

// HandleGet serves GET /api/v1/eateries/:id.
func (h *DirectoryHandler) HandleGet(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.eateryID(c)
	if !ok {
		return
	}
	now, ok := h.referenceTime(c)
	if !ok {
		return
	}
	origin, ok := h.parseOrigin(c)
	if !ok {
		return
	}

	entry, err := h.service.Get(ctx, id, origin, now)
	if err != nil {
		if errors.Is(err, domain.ErrEateryNotFound) {
			respondError(c, http.StatusNotFound, "eatery not found")
			return
		}
		if errors.Is(err, domain.ErrFeedEmpty) {
			respondError(c, http.StatusServiceUnavailable, "eatery feed has not loaded yet")
			return
		}
		slog.ErrorContext(ctx, "eatery lookup failed",
			slog.Int64("eatery_id", id),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, toEntryResponse(entry))
}

// HandleGetStatus serves GET /api/v1/eateries/:id/status, a trimmed answer
// for clients that only need the open/closed indicator.
func (h *DirectoryHandler) HandleGetStatus(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.eateryID(c)
	if !ok {
		return
	}
	now, ok := h.referenceTime(c)
	if !ok {
		return
	}

	entry, err := h.service.Get(ctx, id, nil, now)
	if err != nil {
		if errors.Is(err, domain.ErrEateryNotFound) {
			respondError(c, http.StatusNotFound, "eatery not found")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, statusResponse{
		EateryID: id,
		At:       now.Format(time.RFC3339),
		Status:   toStatusBody(entry.Status),
		Open:     entry.Status.IsOpen(),
	})
}

// HandleGetTiming serves GET /api/v1/eateries/:id/timing.
func (h *DirectoryHandler) HandleGetTiming(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.eateryID(c)
	if !ok {
		return
	}
	now, ok := h.referenceTime(c)
	if !ok {
		return
	}
	origin, ok := h.parseOrigin(c)
	if !ok {
		return
	}

	entry, err := h.service.Get(ctx, id, origin, now)
	if err != nil {
		if errors.Is(err, domain.ErrEateryNotFound) {
			respondError(c, http.StatusNotFound, "eatery not found")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, timingResponse{
		EateryID: id,
		At:       now.Format(time.RFC3339),
		Timing:   toTimingBody(entry.Timing),
	})
}

func (h *DirectoryHandler) eateryID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid eatery id")
		return 0, false
	}
	return id, true
}

// referenceTime resolves the instant every classification in the request is
// made at. An explicit at parameter pins it for reproducible queries.
func (h *DirectoryHandler) referenceTime(c *gin.Context) (time.Time, bool) {
	atStr := c.Query("at")
	if atStr == "" {
		return time.Now(), true
	}

	parsed, err := time.Parse(time.RFC3339, atStr)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid at time format, expected RFC3339")
		return time.Time{}, false
	}
	slog.InfoContext(c.Request.Context(), "using virtual time",
		slog.Time("virtual_now", parsed),
	)
	return parsed, true
}

func (h *DirectoryHandler) parseFilter(c *gin.Context) (filter.Filter, bool) {
	var f filter.Filter

	f.Under10Minutes = c.Query("under10") == "true"
	f.FavoritesOnly = c.Query("favorites") == "true"

	if raw := c.Query("payment"); raw != "" {
		methods, err := parsePaymentMethods(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return filter.Filter{}, false
		}
		f.PaymentMethods = methods
	}

	if raw := c.Query("area"); raw != "" {
		for _, a := range strings.Split(raw, ",") {
			if a = strings.TrimSpace(a); a != "" {
				f.CampusAreas = append(f.CampusAreas, a)
			}
		}
	}

	origin, ok := h.parseOrigin(c)
	if !ok {
		return filter.Filter{}, false
	}
	f.Origin = origin

	return f, true
}

func (h *DirectoryHandler) parseOrigin(c *gin.Context) (*domain.Point, bool) {
	latStr := c.Query("lat")
	lngStr := c.Query("lng")
	if latStr == "" && lngStr == "" {
		return nil, true
	}
	if latStr == "" || lngStr == "" {
		respondError(c, http.StatusBadRequest, "lat and lng must be provided together")
		return nil, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid lat")
		return nil, false
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid lng")
		return nil, false
	}

	return &domain.Point{Latitude: lat, Longitude: lng}, true
}

func parsePaymentMethods(raw string) ([]domain.PaymentMethod, error) {
	parts := strings.Split(raw, ",")
	methods := make([]domain.PaymentMethod, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.ToLower(p))
		if p == "" {
			continue
		}
		switch m := domain.PaymentMethod(p); m {
		case domain.PaymentCash, domain.PaymentCredit, domain.PaymentSwipe, domain.PaymentBRB:
			methods = append(methods, m)
		default:
			return nil, errors.New("unknown payment method: " + p)
		}
	}
	return methods, nil
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"error":   http.StatusText(status),
		"message": message,
	})
}

type listResponse struct {
	At       string          `json:"at"`
	Filtered bool            `json:"filtered"`
	Eateries []entryResponse `json:"eateries"`
}

type entryResponse struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name"`
	CampusArea     string        `json:"campus_area,omitempty"`
	Coordinates    *pointBody    `json:"coordinates,omitempty"`
	PaymentMethods []string      `json:"payment_methods,omitempty"`
	Status         statusBody    `json:"status"`
	Salient        *eventBody    `json:"salient_event,omitempty"`
	Favorite       bool          `json:"favorite"`
	Timing         timingBody    `json:"timing"`
	Events         []eventBody   `json:"events,omitempty"`
}

type statusResponse struct {
	EateryID int64      `json:"eatery_id"`
	At       string     `json:"at"`
	Status   statusBody `json:"status"`
	Open     bool       `json:"open"`
}

type timingResponse struct {
	EateryID int64      `json:"eatery_id"`
	At       string     `json:"at"`
	Timing   timingBody `json:"timing"`
}

type pointBody struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type statusBody struct {
	Kind  string     `json:"kind"`
	Event *eventBody `json:"event,omitempty"`
}

type eventBody struct {
	Day   string         `json:"day"`
	Start string         `json:"start"`
	End   string         `json:"end"`
	Label string         `json:"label,omitempty"`
	Menu  []categoryBody `json:"menu,omitempty"`
}

type categoryBody struct {
	Category string     `json:"category"`
	Items    []itemBody `json:"items"`
}

type itemBody struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy,omitempty"`
}

type timingBody struct {
	WalkKnown       bool   `json:"walk_known"`
	WalkMinutes     int    `json:"walk_minutes,omitempty"`
	WaitKnown       bool   `json:"wait_known"`
	WaitLowSeconds  int64  `json:"wait_low_seconds,omitempty"`
	WaitSeconds     int64  `json:"wait_expected_seconds,omitempty"`
	WaitHighSeconds int64  `json:"wait_high_seconds,omitempty"`
	WaitSampledAt   string `json:"wait_sampled_at,omitempty"`
}

func toEntryResponses(entries []directory.Entry) []entryResponse {
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	return out
}

func toEntryResponse(e directory.Entry) entryResponse {
	resp := entryResponse{
		ID:         e.Eatery.ID,
		Name:       e.Eatery.Name,
		CampusArea: e.Eatery.CampusArea,
		Status:     toStatusBody(e.Status),
		Favorite:   e.Favorite,
		Timing:     toTimingBody(e.Timing),
	}

	if e.Eatery.Coordinates != nil {
		resp.Coordinates = &pointBody{
			Latitude:  e.Eatery.Coordinates.Latitude,
			Longitude: e.Eatery.Coordinates.Longitude,
		}
	}
	for _, m := range e.Eatery.PaymentMethods {
		resp.PaymentMethods = append(resp.PaymentMethods, m.String())
	}
	if e.Salient != nil {
		body := toEventBody(*e.Salient)
		resp.Salient = &body
	}
	for _, ev := range e.Eatery.Events {
		resp.Events = append(resp.Events, toEventBody(ev))
	}

	return resp
}

func toStatusBody(s domain.Status) statusBody {
	body := statusBody{Kind: s.Kind.String()}
	if s.Event != nil {
		ev := toEventBody(*s.Event)
		body.Event = &ev
	}
	return body
}

func toEventBody(e domain.Event) eventBody {
	body := eventBody{
		Day:   e.Day.String(),
		Start: e.Start.Format(time.RFC3339),
		End:   e.End.Format(time.RFC3339),
		Label: e.Label,
	}
	for _, cat := range e.Menu {
		cb := categoryBody{Category: cat.Category}
		for _, item := range cat.Items {
			cb.Items = append(cb.Items, itemBody{Name: item.Name, Healthy: item.Healthy})
		}
		body.Menu = append(body.Menu, cb)
	}
	return body
}

func toTimingBody(t timing.Estimate) timingBody {
	body := timingBody{
		WalkKnown: t.WalkKnown,
		WaitKnown: t.WaitKnown,
	}
	if t.WalkKnown {
		body.WalkMinutes = timing.WalkMinutes(t.Walk)
	}
	if t.WaitKnown {
		body.WaitLowSeconds = int64(t.Wait.Low / time.Second)
		body.WaitSeconds = int64(t.Wait.Expected / time.Second)
		body.WaitHighSeconds = int64(t.Wait.High / time.Second)
		body.WaitSampledAt = t.Wait.Timestamp.Format(time.RFC3339)
	}
	return body
}
