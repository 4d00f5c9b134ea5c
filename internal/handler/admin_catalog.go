package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/railway-reservation/internal/model"
	"github.com/iliyamo/railway-reservation/internal/repository"
)

// AdminCatalogHandler owns the catalog management surface: stations,
// classes, trains, compartments and schedules.  Everything here runs
// behind JWTAuth + RequireRole("ADMIN").  Deactivation is the only
// teardown offered; rows referenced by bookings are never deleted.
type AdminCatalogHandler struct {
	Stations     *repository.StationRepo
	Classes      *repository.ClassRepo
	Trains       *repository.TrainRepo
	Compartments *repository.CompartmentRepo
	Schedules    *repository.ScheduleRepo
}

func NewAdminCatalogHandler(stations *repository.StationRepo, classes *repository.ClassRepo, trains *repository.TrainRepo, compartments *repository.CompartmentRepo, schedules *repository.ScheduleRepo) *AdminCatalogHandler {
	if stations == nil || classes == nil || trains == nil || compartments == nil || schedules == nil {
		panic("nil repository passed to NewAdminCatalogHandler")
	}
	return &AdminCatalogHandler{Stations: stations, Classes: classes, Trains: trains, Compartments: compartments, Schedules: schedules}
}

// isDup reports a MySQL duplicate-key error (1062).
func isDup(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

type compartmentResp struct {
	ID                uint64 `json:"id"`
	TrainID           uint64 `json:"train_id"`
	ClassID           uint64 `json:"class_id"`
	CompartmentNumber uint32 `json:"compartment_number"`
	TotalSeats        uint32 `json:"total_seats"`
}

func toCompartmentResp(c model.Compartment) compartmentResp {
	return compartmentResp{
		ID:                c.ID,
		TrainID:           c.TrainID,
		ClassID:           c.ClassID,
		CompartmentNumber: c.CompartmentNumber,
		TotalSeats:        c.TotalSeats,
	}
}

type scheduleResp struct {
	ID              uint64 `json:"id"`
	TrainID         uint64 `json:"train_id"`
	FromStationID   uint64 `json:"from_station_id"`
	ToStationID     uint64 `json:"to_station_id"`
	DepartureTime   string `json:"departure_time"`
	ArrivalTime     string `json:"arrival_time"`
	DistanceKm      uint32 `json:"distance_km"`
	DaysOfOperation string `json:"days_of_operation"`
	IsActive        bool   `json:"is_active"`
}

// CreateStation handles POST /v1/admin/stations.
func (h *AdminCatalogHandler) CreateStation(c echo.Context) error {
	var req struct {
		Name  string `json:"name"`
		City  string `json:"city"`
		State string `json:"state"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.City = strings.TrimSpace(req.City)
	if req.Name == "" || req.City == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and city are required"})
	}
	s := &model.Station{Name: req.Name, City: req.City, State: strings.TrimSpace(req.State)}
	if err := h.Stations.Create(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create station failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": PublicStation{ID: s.ID, Name: s.Name, City: s.City, State: s.State}})
}

// CreateClass handles POST /v1/admin/classes.
func (h *AdminCatalogHandler) CreateClass(c echo.Context) error {
	var req struct {
		Name           string  `json:"name"`
		FareMultiplier float64 `json:"fare_multiplier"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if !(req.FareMultiplier > 0) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "fare_multiplier must be positive"})
	}
	cl := &model.TrainClass{Name: req.Name, FareMultiplier: req.FareMultiplier}
	if err := h.Classes.Create(c.Request().Context(), cl); err != nil {
		if isDup(err) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "class already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create class failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": PublicClass{ID: cl.ID, Name: cl.Name, FareMultiplier: cl.FareMultiplier}})
}

// CreateTrain handles POST /v1/admin/trains.
func (h *AdminCatalogHandler) CreateTrain(c echo.Context) error {
	var req struct {
		Name      string  `json:"name"`
		FarePerKm float64 `json:"fare_per_km"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if !(req.FarePerKm > 0) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "fare_per_km must be positive"})
	}
	t := &model.Train{Name: req.Name, FarePerKm: req.FarePerKm, IsActive: true}
	if err := h.Trains.Create(c.Request().Context(), t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create train failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": PublicTrain{ID: t.ID, Name: t.Name, FarePerKm: t.FarePerKm}})
}

// CreateCompartment handles POST /v1/admin/trains/:id/compartments.
// The compartment layout is what seat slots are derived from, so seat
// counts are bounded and the (train, compartment_number) pair is
// unique.
func (h *AdminCatalogHandler) CreateCompartment(c echo.Context) error {
	trainID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid train id"})
	}
	var req struct {
		ClassID           uint64 `json:"class_id"`
		CompartmentNumber uint32 `json:"compartment_number"`
		TotalSeats        uint32 `json:"total_seats"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.CompartmentNumber == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "compartment_number must be positive"})
	}
	if req.TotalSeats == 0 || req.TotalSeats > 200 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "total_seats must be between 1 and 200"})
	}

	ctx := c.Request().Context()
	if _, err := h.Trains.GetByID(ctx, trainID); err != nil {
		if errors.Is(err, repository.ErrTrainNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "train not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if _, err := h.Classes.GetByID(ctx, req.ClassID); err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "class not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	comp := &model.Compartment{
		TrainID:           trainID,
		ClassID:           req.ClassID,
		CompartmentNumber: req.CompartmentNumber,
		TotalSeats:        req.TotalSeats,
	}
	if err := h.Compartments.Create(ctx, comp); err != nil {
		if isDup(err) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "compartment number already used on this train"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create compartment failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toCompartmentResp(*comp)})
}

// ListCompartments handles GET /v1/admin/trains/:id/compartments.
func (h *AdminCatalogHandler) ListCompartments(c echo.Context) error {
	trainID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid train id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Trains.GetByID(ctx, trainID); err != nil {
		if errors.Is(err, repository.ErrTrainNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "train not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	comps, err := h.Compartments.ListByTrain(ctx, trainID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]compartmentResp, 0, len(comps))
	for _, comp := range comps {
		out = append(out, toCompartmentResp(comp))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// CreateSchedule handles POST /v1/admin/schedules.  Referenced rows
// must already exist; there is no on-the-fly fabrication of trains or
// stations.
func (h *AdminCatalogHandler) CreateSchedule(c echo.Context) error {
	var req struct {
		TrainID         uint64 `json:"train_id"`
		FromStationID   uint64 `json:"from_station_id"`
		ToStationID     uint64 `json:"to_station_id"`
		DepartureTime   string `json:"departure_time"`
		ArrivalTime     string `json:"arrival_time"`
		DistanceKm      uint32 `json:"distance_km"`
		DaysOfOperation string `json:"days_of_operation"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.FromStationID == req.ToStationID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from and to stations must differ"})
	}
	if req.DistanceKm == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "distance_km must be positive"})
	}
	if !validTimeOfDay(req.DepartureTime) || !validTimeOfDay(req.ArrivalTime) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "departure_time and arrival_time must be HH:MM or HH:MM:SS"})
	}

	ctx := c.Request().Context()
	if _, err := h.Trains.GetByID(ctx, req.TrainID); err != nil {
		if errors.Is(err, repository.ErrTrainNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "train not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	for _, sid := range []uint64{req.FromStationID, req.ToStationID} {
		if _, err := h.Stations.GetByID(ctx, sid); err != nil {
			if errors.Is(err, repository.ErrStationNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "station not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}

	s := &model.Schedule{
		TrainID:         req.TrainID,
		FromStationID:   req.FromStationID,
		ToStationID:     req.ToStationID,
		DepartureTime:   req.DepartureTime,
		ArrivalTime:     req.ArrivalTime,
		DistanceKm:      req.DistanceKm,
		DaysOfOperation: strings.TrimSpace(req.DaysOfOperation),
		IsActive:        true,
	}
	if err := h.Schedules.Create(ctx, s); err != nil {
		if isDup(err) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "schedule already exists for this train and departure"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create schedule failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": scheduleResp{
		ID:              s.ID,
		TrainID:         s.TrainID,
		FromStationID:   s.FromStationID,
		ToStationID:     s.ToStationID,
		DepartureTime:   s.DepartureTime,
		ArrivalTime:     s.ArrivalTime,
		DistanceKm:      s.DistanceKm,
		DaysOfOperation: s.DaysOfOperation,
		IsActive:        s.IsActive,
	}})
}

// SetTrainActive handles PATCH /v1/admin/trains/:id/active.
func (h *AdminCatalogHandler) SetTrainActive(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid train id"})
	}
	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil || req.IsActive == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "is_active is required"})
	}
	if err := h.Trains.SetActive(c.Request().Context(), id, *req.IsActive); err != nil {
		if errors.Is(err, repository.ErrTrainNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "train not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update train failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "is_active": *req.IsActive})
}

// SetScheduleActive handles PATCH /v1/admin/schedules/:id/active.
// Deactivating closes the schedule for new bookings; existing ones
// keep their reference.
func (h *AdminCatalogHandler) SetScheduleActive(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
	}
	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil || req.IsActive == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "is_active is required"})
	}
	if err := h.Schedules.SetActive(c.Request().Context(), id, *req.IsActive); err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update schedule failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "is_active": *req.IsActive})
}

// validTimeOfDay accepts "HH:MM" or "HH:MM:SS" within range.
func validTimeOfDay(v string) bool {
	parts := strings.Split(v, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return false
	}
	bounds := []int{23, 59, 59}
	for i, p := range parts {
		if len(p) != 2 {
			return false
		}
		n := 0
		for _, ch := range p {
			if ch < '0' || ch > '9' {
				return false
			}
			n = n*10 + int(ch-'0')
		}
		if n > bounds[i] {
			return false
		}
	}
	return true
}
