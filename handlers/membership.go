package handlers

import (
	"context"
	"log"
	"net/http"

	"student-groups/models"
	"student-groups/persistence"

	"github.com/google/uuid"
)

// MembershipHandler управляет составом групп. Перед изменением связей
// проверяется существование студента и групп.
type MembershipHandler struct {
	store persistence.Store
}

func NewMembershipHandler(store persistence.Store) *MembershipHandler {
	return &MembershipHandler{store: store}
}

func (h *MembershipHandler) AssignStudent(w http.ResponseWriter, r *http.Request) {
	var req models.AssignStudentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if !h.checkStudentAndGroups(w, r.Context(), req.StudentID, groupRef{req.GroupID, "Group not found"}) {
		return
	}

	if err := h.store.AssignStudentToGroup(r.Context(), req.StudentID, req.GroupID); err != nil {
		log.Printf("❌ Error assigning student %s to group %s: %v", req.StudentID, req.GroupID, err)
		respondInternalError(w)
		return
	}

	log.Printf("✅ Student %s assigned to group %s", req.StudentID, req.GroupID)
	respondJSON(w, http.StatusOK, models.MessageResponse{Message: "Student successfully assigned to group"})
}

func (h *MembershipHandler) RemoveStudent(w http.ResponseWriter, r *http.Request) {
	var req models.RemoveStudentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if !h.checkStudentAndGroups(w, r.Context(), req.StudentID, groupRef{req.GroupID, "Group not found"}) {
		return
	}

	if err := h.store.RemoveStudentFromGroup(r.Context(), req.StudentID, req.GroupID); err != nil {
		log.Printf("❌ Error removing student %s from group %s: %v", req.StudentID, req.GroupID, err)
		respondInternalError(w)
		return
	}

	log.Printf("✅ Student %s removed from group %s", req.StudentID, req.GroupID)
	respondJSON(w, http.StatusOK, models.MessageResponse{Message: "Student successfully removed from group"})
}

func (h *MembershipHandler) TransferStudent(w http.ResponseWriter, r *http.Request) {
	var req models.TransferStudentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	ok := h.checkStudentAndGroups(w, r.Context(), req.StudentID,
		groupRef{req.FromGroupID, "Source group not found"},
		groupRef{req.ToGroupID, "Destination group not found"},
	)
	if !ok {
		return
	}

	if err := h.store.TransferStudentBetweenGroups(r.Context(), req.StudentID, req.FromGroupID, req.ToGroupID); err != nil {
		log.Printf("❌ Error transferring student %s from %s to %s: %v",
			req.StudentID, req.FromGroupID, req.ToGroupID, err)
		respondInternalError(w)
		return
	}

	log.Printf("✅ Student %s transferred from group %s to group %s", req.StudentID, req.FromGroupID, req.ToGroupID)
	respondJSON(w, http.StatusOK, models.MessageResponse{Message: "Student successfully transferred between groups"})
}

type groupRef struct {
	id       uuid.UUID
	notFound string
}

// checkStudentAndGroups отвечает 404 и возвращает false, если студент
// или одна из групп не найдены
func (h *MembershipHandler) checkStudentAndGroups(w http.ResponseWriter, ctx context.Context, studentID uuid.UUID, groups ...groupRef) bool {
	student, err := h.store.GetStudentByID(ctx, studentID)
	if err != nil {
		log.Printf("❌ Error checking student existence: %v", err)
		respondInternalError(w)
		return false
	}
	if student == nil {
		respondError(w, http.StatusNotFound, "Student not found")
		return false
	}

	for _, ref := range groups {
		group, err := h.store.GetGroupByID(ctx, ref.id)
		if err != nil {
			log.Printf("❌ Error checking group existence: %v", err)
			respondInternalError(w)
			return false
		}
		if group == nil {
			respondError(w, http.StatusNotFound, ref.notFound)
			return false
		}
	}
	return true
}
