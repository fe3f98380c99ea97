package controllers

import (
	"strconv"

	"github.com/Deji-py/eco-rider/entity"
	"github.com/Deji-py/eco-rider/pkg/resp"
	"github.com/Deji-py/eco-rider/services"
	"github.com/Deji-py/eco-rider/utils"

	"github.com/gin-gonic/gin"
)

type RiderController struct{ Svc *services.RiderService }

func NewRiderController(s *services.RiderService) *RiderController { return &RiderController{Svc: s} }

// ======================== Profile ========================

type SubmitProfileReq struct {
	FirstName      string `json:"firstname" binding:"required"`
	LastName       string `json:"lastname" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	VehicleType    string `json:"vehicleType" binding:"required"`
	VehicleNumber  string `json:"vehicleNumber" binding:"required"`
	LocalGovArea   string `json:"localGovArea" binding:"required"`
	State          string `json:"state" binding:"required"`
	ProfilePicture string `json:"profilePicture"`
}

type UpdateProfileReq struct {
	Phone          *string `json:"phone"`
	VehicleNumber  *string `json:"vehicleNumber"`
	LocalGovArea   *string `json:"localGovArea"`
	State          *string `json:"state"`
	ProfilePicture *string `json:"profilePicture"`
}

// GET /rider/me
func (h *RiderController) Me(c *gin.Context) {
	snap, err := h.Svc.GetProfileSnapshot(utils.CurrentUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, snap)
}

// POST /rider/me — profile submission, completes the session
func (h *RiderController) Submit(c *gin.Context) {
	var req SubmitProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rider, err := h.Svc.SubmitProfile(utils.CurrentUserID(c), services.SubmitProfileInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		VehicleType:    req.VehicleType,
		VehicleNumber:  req.VehicleNumber,
		LocalGovArea:   req.LocalGovArea,
		State:          req.State,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, rider)
}

// PATCH /rider/me
func (h *RiderController) Update(c *gin.Context) {
	var req UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	updates := map[string]any{}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.VehicleNumber != nil {
		updates["vehicle_number"] = *req.VehicleNumber
	}
	if req.LocalGovArea != nil {
		updates["local_gov_area"] = *req.LocalGovArea
	}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.ProfilePicture != nil {
		updates["profile_picture"] = *req.ProfilePicture
	}
	if len(updates) == 0 {
		resp.BadRequest(c, "nothing to update")
		return
	}

	rider, err := h.Svc.UpdateProfile(utils.CurrentUserID(c), updates)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, rider)
}

// ======================== Availability / location ========================

type AvailabilityReq struct {
	Status string `json:"status" binding:"required,oneof=available offline"`
}

type LocationReq struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

// PATCH /rider/availability
func (h *RiderController) Availability(c *gin.Context) {
	var req AvailabilityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.SetAvailability(utils.CurrentUserID(c), entity.RiderStatus(req.Status)); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"status": req.Status})
}

// POST /rider/location
func (h *RiderController) Location(c *gin.Context) {
	var req LocationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	written, err := h.Svc.UpdateLocation(utils.CurrentUserID(c), req.Latitude, req.Longitude)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"written": written})
}

// ======================== Push / nearby / vehicles ========================

type PushTokenReq struct {
	Token string `json:"token" binding:"required"`
}

// POST /rider/push-token
func (h *RiderController) PushToken(c *gin.Context) {
	var req PushTokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	deviceID, err := h.Svc.RegisterPushDevice(utils.CurrentUserID(c), req.Token)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"deviceId": deviceID})
}

// GET /rider/nearby?lat=&lon=&radius=
func (h *RiderController) Nearby(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lon, err2 := strconv.ParseFloat(c.Query("lon"), 64)
	if err1 != nil || err2 != nil {
		resp.BadRequest(c, "lat and lon are required")
		return
	}
	radius, _ := strconv.ParseFloat(c.DefaultQuery("radius", "5"), 64)

	riders, err := h.Svc.Nearby(lat, lon, radius)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, riders)
}

// GET /vehicle-types
func (h *RiderController) VehicleTypes(c *gin.Context) {
	types, err := h.Svc.VehicleTypes()
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, types)
}
