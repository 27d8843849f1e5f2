package handlers

import (
	"encoding/json"
	"net/http"

	"pg-backend/internal/models"
	"pg-backend/internal/services"
	"pg-backend/pkg/utils"
)

type RoomHandler struct {
	rooms *services.RoomService
}

func NewRoomHandler(rooms *services.RoomService) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// Create adds a room with one bed row per capacity slot.
// POST /api/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	room, err := h.rooms.CreateRoom(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, room)
}

// List returns all rooms of a PG.
// GET /api/rooms?pg_id=1
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	pgID := queryInt(r, "pg_id", 1)

	rooms, err := h.rooms.ListRooms(r.Context(), pgID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, rooms)
}

// Get returns one room with its beds.
// GET /api/rooms/{id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	room, err := h.rooms.GetRoom(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, room)
}

// Occupancy returns the bed occupancy map per room.
// GET /api/rooms/occupancy?pg_id=1
func (h *RoomHandler) Occupancy(w http.ResponseWriter, r *http.Request) {
	pgID := queryInt(r, "pg_id", 1)

	occupancy, err := h.rooms.Occupancy(r.Context(), pgID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, occupancy)
}
