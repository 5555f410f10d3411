package dto

// CreateStudentRequest is the payload for enrolling a student.
type CreateStudentRequest struct {
	Name      string `json:"name" binding:"required"`
	TeacherID string `json:"teacherID" binding:"required"`
}

// UpdateStudentRequest is the payload for updating a student. Nil fields
// are left unchanged. Payment-summary fields are engine-owned and cannot
// be set here.
type UpdateStudentRequest struct {
	Name      *string `json:"name,omitempty"`
	TeacherID *string `json:"teacherID,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}
