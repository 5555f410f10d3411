package domain

// Role describes what an authenticated user is allowed to see.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
)

// Actor identifies the authenticated caller of an operation. Aggregations
// take it as an explicit parameter so services stay testable without an
// HTTP layer: admins see everything, teachers are scoped to their own
// records.
type Actor struct {
	ID   string
	Role Role
}

// IsAdmin reports whether the actor has unrestricted visibility.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// ScopeTeacher narrows an optional teacher filter to the actor's own ID
// when the actor is a teacher. Admins keep whatever filter they asked for.
func (a Actor) ScopeTeacher(teacherID *string) *string {
	if a.Role == RoleTeacher {
		id := a.ID
		return &id
	}
	return teacherID
}
