package mapper

import (
	"sparkle-booking/modules/catalog/dto"
	"sparkle-booking/modules/catalog/entity"
)

func ToServiceResponse(svc *entity.Service) dto.ServiceResponse {
	return dto.ServiceResponse{
		ID:          svc.ID,
		Slug:        svc.Slug,
		Name:        svc.Name,
		Description: svc.Description,
		PriceCents:  svc.PriceCents,
		Kind:        svc.Kind,
	}
}

// ToCatalogResponse splits services into base packages and add-ons, keeping their order.
func ToCatalogResponse(services []entity.Service) *dto.CatalogResponse {
	resp := &dto.CatalogResponse{
		Base:   []dto.ServiceResponse{},
		Addons: []dto.ServiceResponse{},
	}
	for i := range services {
		switch services[i].Kind {
		case entity.KindBase:
			resp.Base = append(resp.Base, ToServiceResponse(&services[i]))
		case entity.KindAddon:
			resp.Addons = append(resp.Addons, ToServiceResponse(&services[i]))
		}
	}
	return resp
}
