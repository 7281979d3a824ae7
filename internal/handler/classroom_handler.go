package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/school-admin-api/internal/service"
	appErrors "github.com/campuskit/school-admin-api/pkg/errors"
	"github.com/campuskit/school-admin-api/pkg/response"
)

// ClassroomHandler exposes classroom and roster endpoints.
type ClassroomHandler struct {
	classrooms *service.ClassroomService
}

// NewClassroomHandler constructs ClassroomHandler.
func NewClassroomHandler(classrooms *service.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{classrooms: classrooms}
}

// List godoc
// @Summary List classrooms
// @Tags Classrooms
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /classrooms [get]
func (h *ClassroomHandler) List(c *gin.Context) {
	classrooms, err := h.classrooms.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classrooms)
}

// Get godoc
// @Summary Get classroom
// @Tags Classrooms
// @Produce json
// @Param id path int true "Classroom ID"
// @Success 200 {object} response.Envelope
// @Router /classrooms/{id} [get]
func (h *ClassroomHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	classroom, err := h.classrooms.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classroom)
}

// Create godoc
// @Summary Create classroom
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param payload body service.ClassroomRequest true "Classroom payload"
// @Success 201 {object} response.Envelope
// @Router /classrooms [post]
func (h *ClassroomHandler) Create(c *gin.Context) {
	var req service.ClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	classroom, err := h.classrooms.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, classroom)
}

// Update godoc
// @Summary Update classroom
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param id path int true "Classroom ID"
// @Param payload body service.ClassroomRequest true "Classroom payload"
// @Success 200 {object} response.Envelope
// @Router /classrooms/{id} [put]
func (h *ClassroomHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.ClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	classroom, err := h.classrooms.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classroom)
}

// Delete godoc
// @Summary Delete classroom
// @Tags Classrooms
// @Produce json
// @Param id path int true "Classroom ID"
// @Success 204
// @Router /classrooms/{id} [delete]
func (h *ClassroomHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.classrooms.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddStudent godoc
// @Summary Enroll a student into a classroom
// @Tags Classrooms
// @Produce json
// @Param id path int true "Classroom ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /classrooms/{id}/add_student/{studentId} [post]
func (h *ClassroomHandler) AddStudent(c *gin.Context) {
	classroomID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	studentID, err := pathID(c, "studentId")
	if err != nil {
		response.Error(c, err)
		return
	}
	classroom, err := h.classrooms.AddStudent(c.Request.Context(), classroomID, studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classroom)
}

// RemoveStudent godoc
// @Summary Unenroll a student from a classroom
// @Tags Classrooms
// @Produce json
// @Param id path int true "Classroom ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /classrooms/{id}/remove_student/{studentId} [post]
func (h *ClassroomHandler) RemoveStudent(c *gin.Context) {
	classroomID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	studentID, err := pathID(c, "studentId")
	if err != nil {
		response.Error(c, err)
		return
	}
	classroom, err := h.classrooms.RemoveStudent(c.Request.Context(), classroomID, studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classroom)
}

// Students godoc
// @Summary List a classroom's students
// @Tags Classrooms
// @Produce json
// @Param id path int true "Classroom ID"
// @Success 200 {object} response.Envelope
// @Router /classrooms/{id}/students [get]
func (h *ClassroomHandler) Students(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	students, err := h.classrooms.ListStudents(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}
