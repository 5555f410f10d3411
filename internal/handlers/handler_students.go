package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/hammamsawalma/edusystem/internal/core/ports/services"
	"github.com/hammamsawalma/edusystem/internal/dto"
)

type studentHandler struct {
	studentService portssvc.StudentSvcFacade
}

func newStudentHandler(ss portssvc.StudentSvcFacade) *studentHandler {
	return &studentHandler{studentService: ss}
}

func registerStudentRoutes(rg *gin.RouterGroup, studentService portssvc.StudentSvcFacade) {
	h := newStudentHandler(studentService)

	students := rg.Group("/students")
	{
		students.POST("", h.createStudent)
		students.GET("", h.listStudents)
		students.GET("/:student_id", h.getStudent)
		students.PUT("/:student_id", h.updateStudent)
		students.DELETE("/:student_id", h.deleteStudent)
	}
}

// createStudent godoc
// @Summary Enroll a student
// @Tags students
// @Accept json
// @Produce json
// @Param student body dto.CreateStudentRequest true "Student details"
// @Success 201 {object} dto.Envelope{data=domain.Student}
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /students [post]
func (h *studentHandler) createStudent(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	student, err := h.studentService.CreateStudent(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusCreated, student)
}

// listStudents godoc
// @Summary List students
// @Description Teachers only see their own students
// @Tags students
// @Produce json
// @Param activeOnly query bool false "Only active students"
// @Success 200 {object} dto.Envelope{data=[]domain.Student}
// @Security BearerAuth
// @Router /students [get]
func (h *studentHandler) listStudents(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	students, err := h.studentService.ListStudents(c.Request.Context(), actor, c.Query("activeOnly") == "true")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, students)
}

// getStudent godoc
// @Summary Get a student
// @Tags students
// @Produce json
// @Param student_id path string true "Student ID"
// @Success 200 {object} dto.Envelope{data=domain.Student}
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /students/{student_id} [get]
func (h *studentHandler) getStudent(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	student, err := h.studentService.GetStudentByID(c.Request.Context(), actor, c.Param("student_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, student)
}

// updateStudent godoc
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Param student_id path string true "Student ID"
// @Param student body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.Envelope{data=domain.Student}
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /students/{student_id} [put]
func (h *studentHandler) updateStudent(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	student, err := h.studentService.UpdateStudent(c.Request.Context(), actor, c.Param("student_id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto.Respond(c, http.StatusOK, student)
}

// deleteStudent godoc
// @Summary Delete a student
// @Description Soft delete; admin only
// @Tags students
// @Produce json
// @Param student_id path string true "Student ID"
// @Success 200 {object} dto.Envelope
// @Failure 403 {object} dto.Envelope
// @Security BearerAuth
// @Router /students/{student_id} [delete]
func (h *studentHandler) deleteStudent(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.studentService.DeleteStudent(c.Request.Context(), actor, c.Param("student_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	dto.RespondMessage(c, http.StatusOK, "Student deleted")
}
