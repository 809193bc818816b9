package role

import "errors"

const (
	Learner    = "Learner"
	HR         = "HR"
	Manager    = "Manager"
	Instructor = "Instructor"

	// Default is assigned when signup names no role.
	Default = Learner
)

var ErrNotFound = errors.New("role not found")

type Role struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
