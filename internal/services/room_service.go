package services

import (
	"context"
	"errors"

	"pg-backend/internal/cache"
	"pg-backend/internal/models"
	"pg-backend/internal/repositories"
)

type RoomService struct {
	rooms *repositories.RoomRepository
}

func NewRoomService(rooms *repositories.RoomRepository) *RoomService {
	return &RoomService{rooms: rooms}
}

func (s *RoomService) CreateRoom(ctx context.Context, req *models.CreateRoomRequest) (*models.Room, error) {
	if req.Number == "" {
		return nil, errors.New("room number is required")
	}
	if req.Capacity < 1 || req.Capacity > 26 {
		return nil, errors.New("room capacity must be between 1 and 26")
	}

	room := &models.Room{
		PGID:     req.PGID,
		Number:   req.Number,
		Floor:    req.Floor,
		Capacity: req.Capacity,
	}
	if err := s.rooms.CreateWithBeds(ctx, room); err != nil {
		return nil, err
	}

	cache.InvalidateRoomCaches(ctx)
	return room, nil
}

func (s *RoomService) GetRoom(ctx context.Context, id int) (*models.Room, error) {
	return s.rooms.Get(ctx, id)
}

func (s *RoomService) ListRooms(ctx context.Context, pgID int) ([]*models.Room, error) {
	return s.rooms.List(ctx, pgID)
}

func (s *RoomService) Occupancy(ctx context.Context, pgID int) ([]*models.RoomOccupancy, error) {
	return s.rooms.Occupancy(ctx, pgID)
}
