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

type StudentHandler struct {
	store persistence.Store
}

func NewStudentHandler(store persistence.Store) *StudentHandler {
	return &StudentHandler{store: store}
}

func (h *StudentHandler) GetStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.store.ListStudents(r.Context())
	if err != nil {
		log.Printf("❌ Error fetching students: %v", err)
		respondInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, models.StudentListResponse{Students: students})
}

func (h *StudentHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "student_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	student, err := h.store.GetStudentByID(r.Context(), id)
	if err != nil {
		log.Printf("❌ Error fetching student %s: %v", id, err)
		respondInternalError(w)
		return
	}
	if student == nil {
		respondError(w, http.StatusNotFound, "Student not found")
		return
	}

	respondJSON(w, http.StatusOK, student)
}

func (h *StudentHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	log.Printf("📨 POST /api/v1/students - Content-Type: %s, Content-Length: %d",
		r.Header.Get("Content-Type"), r.ContentLength)

	var req models.CreateStudentRequest
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

	existing, err := h.store.GetStudentByID(r.Context(), req.ID)
	if err != nil {
		log.Printf("❌ Error checking student existence: %v", err)
		respondInternalError(w)
		return
	}
	if existing != nil {
		log.Printf("❌ Student with ID %s already exists", req.ID)
		respondError(w, http.StatusConflict, "Student with this ID already exists")
		return
	}

	log.Printf("➕ Creating student: Name='%s', Number='%s'", req.Name, req.Number)

	student, err := h.store.CreateStudent(r.Context(), models.Student{
		ID:     req.ID,
		Name:   req.Name,
		Number: req.Number,
	})
	if err != nil {
		if database.IsDuplicateKey(err) {
			respondError(w, http.StatusConflict, "Student with this ID already exists")
			return
		}
		log.Printf("❌ Database error creating student: %v", err)
		respondInternalError(w)
		return
	}

	log.Printf("✅ Student created successfully with ID: %s", student.ID)
	respondJSON(w, http.StatusCreated, student)
}

func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "student_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	student, err := h.store.GetStudentByID(r.Context(), id)
	if err != nil {
		log.Printf("❌ Error checking student existence: %v", err)
		respondInternalError(w)
		return
	}
	if student == nil {
		log.Printf("❌ Student with ID %s not found", id)
		respondError(w, http.StatusNotFound, "Student not found")
		return
	}

	if err := h.store.DeleteStudent(r.Context(), id); err != nil {
		log.Printf("❌ Error deleting student: %v", err)
		respondInternalError(w)
		return
	}

	log.Printf("🗑️ Student %s deleted", id)
	respondJSON(w, http.StatusOK, models.StudentDeleteResponse{
		Success:   true,
		Message:   "Student successfully deleted",
		StudentID: id,
	})
}
