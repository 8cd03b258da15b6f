package http

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AccessHandler interface {
	ListWifiIPs(w http.ResponseWriter, r *http.Request)
	AddWifiIP(w http.ResponseWriter, r *http.Request)
	DeleteWifiIP(w http.ResponseWriter, r *http.Request)
	ListDeviceIPs(w http.ResponseWriter, r *http.Request)
	AddDeviceIP(w http.ResponseWriter, r *http.Request)
	DeleteDeviceIP(w http.ResponseWriter, r *http.Request)
	ClientIP(w http.ResponseWriter, r *http.Request)
}

type accessHandlerImpl struct {
	accessService access.AccessService
}

func NewAccessHandler(accessService access.AccessService) AccessHandler {
	return &accessHandlerImpl{accessService: accessService}
}

// ipParam reads an {ip} segment; IPv6 addresses arrive percent-encoded.
func ipParam(r *http.Request) string {
	raw := chi.URLParam(r, "ip")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return attendance.NormalizeIP(decoded)
	}
	return attendance.NormalizeIP(raw)
}

func (h *accessHandlerImpl) ListWifiIPs(w http.ResponseWriter, r *http.Request) {
	result, err := h.accessService.ListWifiIPs(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *accessHandlerImpl) AddWifiIP(w http.ResponseWriter, r *http.Request) {
	var req access.AddWifiIPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.accessService.AddWifiIP(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Wi-Fi IP added", result)
}

func (h *accessHandlerImpl) DeleteWifiIP(w http.ResponseWriter, r *http.Request) {
	if err := h.accessService.DeleteWifiIP(r.Context(), ipParam(r)); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Wi-Fi IP deleted", nil)
}

func (h *accessHandlerImpl) ListDeviceIPs(w http.ResponseWriter, r *http.Request) {
	result, err := h.accessService.ListDeviceIPs(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *accessHandlerImpl) AddDeviceIP(w http.ResponseWriter, r *http.Request) {
	var req access.AddDeviceIPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	result, err := h.accessService.AddDeviceIP(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Device IP added", result)
}

func (h *accessHandlerImpl) DeleteDeviceIP(w http.ResponseWriter, r *http.Request) {
	if err := h.accessService.DeleteDeviceIP(r.Context(), chi.URLParam(r, "employeeID"), ipParam(r)); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Device IP deleted", nil)
}

// ClientIP echoes the caller's normalized address so admins can register it
func (h *accessHandlerImpl) ClientIP(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{"ip": attendance.NormalizeIP(clientIP(r))})
}
