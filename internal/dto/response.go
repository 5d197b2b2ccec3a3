package dto

import (
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/models"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/report"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

type SessionResponse struct {
	User models.User `json:"user"`
}

type RevenueResponse struct {
	Today float64 `json:"today"`
	Week  float64 `json:"week"`
	Month float64 `json:"month"`
}

type RangeRevenueResponse struct {
	Start string  `json:"start"`
	End   string  `json:"end"`
	Total float64 `json:"total"`
}

// ServiceMixResponse carries the non-zero shares sorted by revenue plus the
// full fixed menu with zero-share services rendered at 0%.
type ServiceMixResponse struct {
	Top  []report.ServiceShare `json:"top"`
	Menu []report.ServiceShare `json:"menu"`
}

func ToServiceMixResponse(shares []report.ServiceShare) ServiceMixResponse {
	byName := make(map[string]report.ServiceShare, len(shares))
	for _, s := range shares {
		byName[s.Name] = s
	}

	menu := make([]report.ServiceShare, 0, len(models.DefaultServices))
	for _, svc := range models.DefaultServices {
		if s, ok := byName[svc.Name]; ok {
			menu = append(menu, s)
		} else {
			menu = append(menu, report.ServiceShare{Name: svc.Name})
		}
	}

	return ServiceMixResponse{Top: shares, Menu: menu}
}

type ImageResponse struct {
	ImageBase64 string `json:"imageBase64"`
}
