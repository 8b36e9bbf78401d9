package service

import (
	"context"

	"sparkle-booking/core/constants"
	"sparkle-booking/core/errors"
	"sparkle-booking/core/logger"
	"sparkle-booking/core/params"
	"sparkle-booking/modules/booking/dto"
	"sparkle-booking/modules/booking/entity"
	"sparkle-booking/modules/booking/mapper"
	"sparkle-booking/modules/booking/repository"

	"github.com/google/uuid"
)

type OrderServiceInterface interface {
	PrivateGetOrders(ctx context.Context, params params.QueryParams) (*dto.PaginatedOrderResponse, *errors.AppError)
	PrivateGetOrderByID(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, *errors.AppError)
}

type OrderService struct {
	repo repository.OrderRepositoryInterface
}

func NewOrderService(repo repository.OrderRepositoryInterface) *OrderService {
	return &OrderService{repo: repo}
}

func (s *OrderService) PrivateGetOrders(ctx context.Context, params params.QueryParams) (*dto.PaginatedOrderResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if params.Status != "" && !entity.IsValidStatus(params.Status) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "unknown order status", nil)
	}

	page, err := s.repo.List(ctx, params)
	if err != nil {
		logger.Error("OrderService:PrivateGetOrders:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list orders", err)
	}
	return mapper.ToPaginatedOrderResponse(page), nil
}

func (s *OrderService) PrivateGetOrderByID(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.Error("OrderService:PrivateGetOrderByID:Error", "id", id, "error", err)
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get order", err)
	}
	if order == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "order not found", nil)
	}

	resp := mapper.ToOrderResponse(order)
	return &resp, nil
}
