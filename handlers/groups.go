package handlers

import (
	"log"
	"net/http"
	"strings"

	"student-groups/database"
	"student-groups/models"
	"student-groups/persistence"

	"github.com/google/uuid"
)

type GroupHandler struct {
	store persistence.Store
}

func NewGroupHandler(store persistence.Store) *GroupHandler {
	return &GroupHandler{store: store}
}

func (h *GroupHandler) GetGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.store.ListGroups(r.Context())
	if err != nil {
		log.Printf("❌ Error fetching groups: %v", err)
		respondInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, models.GroupListResponse{Groups: groups})
}

func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "group_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid group ID")
		return
	}

	group, err := h.store.GetGroupByID(r.Context(), id)
	if err != nil {
		log.Printf("❌ Error fetching group %s: %v", id, err)
		respondInternalError(w)
		return
	}
	if group == nil {
		respondError(w, http.StatusNotFound, "Group not found")
		return
	}

	respondJSON(w, http.StatusOK, group)
}

func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGroupRequest
	if err := decodeBody(r, &req); err != nil {
		log.Printf("❌ Error decoding JSON: %v", err)
		respondError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Number = strings.TrimSpace(req.Number)
	if req.ID == uuid.Nil || req.Name == "" || req.Number == "" {
		log.Printf("❌ Validation failed: id, name and number are required")
		respondError(w, http.StatusBadRequest, "ID, name and number are required")
		return
	}

	existing, err := h.store.GetGroupByID(r.Context(), req.ID)
	if err != nil {
		log.Printf("❌ Error checking group existence: %v", err)
		respondInternalError(w)
		return
	}
	if existing != nil {
		log.Printf("❌ Group with ID %s already exists", req.ID)
		respondError(w, http.StatusConflict, "Group with this ID already exists")
		return
	}

	log.Printf("➕ Creating group: Name='%s', Number='%s'", req.Name, req.Number)

	group, err := h.store.CreateGroup(r.Context(), models.Group{
		ID:     req.ID,
		Name:   req.Name,
		Number: req.Number,
	})
	if err != nil {
		if database.IsDuplicateKey(err) {
			respondError(w, http.StatusConflict, "Group with this ID already exists")
			return
		}
		log.Printf("❌ Database error creating group: %v", err)
		respondInternalError(w)
		return
	}

	log.Printf("✅ Group created successfully with ID: %s", group.ID)
	respondJSON(w, http.StatusCreated, group)
}

func (h *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "group_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid group ID")
		return
	}

	group, err := h.store.GetGroupByID(r.Context(), id)
	if err != nil {
		log.Printf("❌ Error checking group existence: %v", err)
		respondInternalError(w)
		return
	}
	if group == nil {
		log.Printf("❌ Group with ID %s not found", id)
		respondError(w, http.StatusNotFound, "Group not found")
		return
	}

	if err := h.store.DeleteGroup(r.Context(), id); err != nil {
		log.Printf("❌ Error deleting group: %v", err)
		respondInternalError(w)
		return
	}

	log.Printf("🗑️ Group %s deleted", id)
	respondJSON(w, http.StatusOK, models.GroupDeleteResponse{
		Success: true,
		Message: "Group successfully deleted",
		GroupID: id,
	})
}

func (h *GroupHandler) GetGroupStudents(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "group_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid group ID")
		return
	}

	group, err := h.store.GetGroupByID(r.Context(), id)
	if err != nil {
		log.Printf("❌ Error checking group existence: %v", err)
		respondInternalError(w)
		return
	}
	if group == nil {
		respondError(w, http.StatusNotFound, "Group not found")
		return
	}

	students, err := h.store.ListGroupStudents(r.Context(), id)
	if err != nil {
		log.Printf("❌ Error fetching students of group %s: %v", id, err)
		respondInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, models.GroupStudentsResponse{
		GroupID:   group.ID,
		GroupName: group.Name,
		Students:  students,
	})
}
