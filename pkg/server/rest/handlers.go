package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"patrolx/pkg/datastructure"
	"patrolx/pkg/server"
	"patrolx/pkg/server/rest/service"
	"patrolx/pkg/zone"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type RouteOptimizerService interface {
	SolvePatrolRoute(ctx context.Context, zoneName string, startLat, startLon float64,
		when time.Time) (service.RouteResult, error)
	SolveDeliveryRoute(ctx context.Context, startLat, startLon float64,
		stops []datastructure.Coordinate) (service.RouteResult, error)
	Zones() []*zone.Zone
}

type OptimizerHandler struct {
	svc     RouteOptimizerService
	metrics *Metrics
}

func OptimizerRouter(r *chi.Mux, svc RouteOptimizerService, m *Metrics) {
	handler := &OptimizerHandler{svc: svc, metrics: m}

	r.Group(func(r chi.Router) {
		r.Route("/api", func(r chi.Router) {
			r.Route("/routes", func(r chi.Router) {
				r.Post("/patrol", handler.PatrolRoute)
				r.Post("/delivery", handler.DeliveryRoute)
			})
			r.Get("/zones", handler.Zones)
		})
	})
}

// Coord model info
//
//	@Description	one lat/lon coordinate
type Coord struct {
	Lat float64 `json:"lat" validate:"required,lt=90,gt=-90"`
	Lon float64 `json:"lon" validate:"required,lt=180,gt=-180"`
}

// PatrolRouteRequest model info
//
//	@Description	request body for a full coverage patrol route of one zone
type PatrolRouteRequest struct {
	Zone  string `json:"zone" validate:"required"`
	Start Coord  `json:"start" validate:"required"`
	When  string `json:"when,omitempty"`
}

func (s *PatrolRouteRequest) Bind(r *http.Request) error {
	if s.Zone == "" {
		return errors.New("invalid request")
	}
	if s.When != "" {
		if _, err := time.Parse(time.RFC3339, s.When); err != nil {
			return fmt.Errorf("bad when timestamp: %w", err)
		}
	}
	return nil
}

// DeliveryRouteRequest model info
//
//	@Description	request body for a closed delivery tour over a set of stops
type DeliveryRouteRequest struct {
	Start Coord   `json:"start" validate:"required"`
	Stops []Coord `json:"stops" validate:"required,min=1,dive"`
}

func (s *DeliveryRouteRequest) Bind(r *http.Request) error {
	if len(s.Stops) == 0 {
		return errors.New("invalid request")
	}
	return nil
}

// RouteStats model info
//
//	@Description	solver counters of one route computation
type RouteStats struct {
	UnbalancedNodes   int  `json:"unbalanced_nodes"`
	PathsDuplicated   int  `json:"paths_duplicated"`
	ResidualImbalance int  `json:"residual_imbalance"`
	SegmentsExpanded  int  `json:"segments_expanded"`
	NonAdjacentJumps  int  `json:"non_adjacent_jumps"`
	StartRelocated    bool `json:"start_relocated"`
	CircuitFallback   bool `json:"circuit_fallback"`
	TourFallback      bool `json:"tour_fallback"`
}

// RouteResponse model info
//
//	@Description	response body for a solved route
type RouteResponse struct {
	Polyline string     `json:"polyline"`
	Route    []int32    `json:"route"`
	Distance float64    `json:"distance_meters"`
	Stats    RouteStats `json:"stats"`
	Cached   bool       `json:"cached"`
}

func RenderRouteResponse(result service.RouteResult) *RouteResponse {
	return &RouteResponse{
		Polyline: result.Polyline,
		Route:    result.Route,
		Distance: result.Distance,
		Stats: RouteStats{
			UnbalancedNodes:   result.Stats.UnbalancedNodes,
			PathsDuplicated:   result.Stats.PathsDuplicated,
			ResidualImbalance: result.Stats.ResidualImbalance,
			SegmentsExpanded:  result.Stats.SegmentsExpanded,
			NonAdjacentJumps:  result.Stats.NonAdjacentJumps,
			StartRelocated:    result.Stats.StartRelocated,
			CircuitFallback:   result.Stats.CircuitFallback,
			TourFallback:      result.Stats.TourFallback,
		},
		Cached: result.Cached,
	}
}

// PatrolRoute
//
//	@Summary		compute a patrol route covering every street of a zone at least once
//	@Description	compute a patrol route covering every street of a zone at least once, starting from the street node nearest to the given coordinate
//	@Tags			routes
//	@Param			body	body	PatrolRouteRequest	true	"request body patrol route"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/routes/patrol [post]
//	@Success		200	{object}	RouteResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *OptimizerHandler) PatrolRoute(w http.ResponseWriter, r *http.Request) {
	data := &PatrolRouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	when := time.Time{}
	if data.When != "" {
		when, _ = time.Parse(time.RFC3339, data.When)
	}

	result, err := h.svc.SolvePatrolRoute(r.Context(), data.Zone, data.Start.Lat, data.Start.Lon, when)
	if err != nil {
		render.Render(w, r, renderServiceError(err))
		return
	}
	h.metrics.ObserveSolve("chinese_postman", result.Stats.CircuitFallback || result.Stats.TourFallback)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderRouteResponse(result))
}

// DeliveryRoute
//
//	@Summary		compute a closed delivery tour visiting every stop once
//	@Description	compute a closed delivery tour visiting every stop once, starting and ending at the street node nearest to the start coordinate
//	@Tags			routes
//	@Param			body	body	DeliveryRouteRequest	true	"request body delivery route"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/routes/delivery [post]
//	@Success		200	{object}	RouteResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *OptimizerHandler) DeliveryRoute(w http.ResponseWriter, r *http.Request) {
	data := &DeliveryRouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	stops := make([]datastructure.Coordinate, 0, len(data.Stops))
	for _, stop := range data.Stops {
		stops = append(stops, datastructure.NewCoordinate(stop.Lat, stop.Lon))
	}

	result, err := h.svc.SolveDeliveryRoute(r.Context(), data.Start.Lat, data.Start.Lon, stops)
	if err != nil {
		render.Render(w, r, renderServiceError(err))
		return
	}
	h.metrics.ObserveSolve("traveling_salesman", result.Stats.TourFallback)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderRouteResponse(result))
}

// ZoneResponse model info
//
//	@Description	one patrol zone record
type ZoneResponse struct {
	Name              string   `json:"name"`
	Color             string   `json:"color,omitempty"`
	ScheduleStart     string   `json:"schedule_start,omitempty"`
	ScheduleEnd       string   `json:"schedule_end,omitempty"`
	Weekdays          []string `json:"weekdays,omitempty"`
	ProhibitedStreets []string `json:"prohibited_streets,omitempty"`
}

// ZonesResponse model info
//
//	@Description	response body for the zone listing
type ZonesResponse struct {
	Zones []ZoneResponse `json:"zones"`
}

// Zones
//
//	@Summary		list the configured patrol zones
//	@Description	list the configured patrol zones with their schedules
//	@Tags			zones
//	@Produce		application/json
//	@Router			/zones [get]
//	@Success		200	{object}	ZonesResponse
func (h *OptimizerHandler) Zones(w http.ResponseWriter, r *http.Request) {
	zones := h.svc.Zones()

	resp := ZonesResponse{Zones: make([]ZoneResponse, 0, len(zones))}
	for _, z := range zones {
		resp.Zones = append(resp.Zones, ZoneResponse{
			Name:              z.Name,
			Color:             z.Color,
			ScheduleStart:     z.ScheduleStart,
			ScheduleEnd:       z.ScheduleEnd,
			Weekdays:          z.Weekdays,
			ProhibitedStreets: z.ProhibitedStreets,
		})
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func renderServiceError(err error) render.Renderer {
	var svcErr *server.Error
	if errors.As(err, &svcErr) {
		switch svcErr.Code() {
		case server.ErrInvalidInput:
			return ErrInvalidRequest(err)
		case server.ErrNotFound:
			return ErrNotFoundRend(err)
		}
	}
	return ErrInternalServerErrorRend(errors.New("internal server error"))
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

// ErrResponse model info
//
//	@Description	model for error responses
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrNotFoundRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 404,
		StatusText:     "Resource not found.",
		ErrorText:      err.Error(),
	}
}

func ErrInternalServerErrorRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 500,
		StatusText:     "Internal server error.",
		ErrorText:      err.Error(),
	}
}
