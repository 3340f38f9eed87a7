package constants

import "fmt"

const (
	RoleUser    = "user"
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleTrainer = "trainer"
	RoleOwner   = "owner"
)

// Role error message templates
const (
	ErrOnlyStaffCanAccess    = "❌ Only admin or owner may access %s."
	ErrOnlyTrainersCanAccess = "❌ Only trainers may access %s."
)

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorTrainer(feature string) string {
	return fmt.Sprintf(ErrOnlyTrainersCanAccess, feature)
}
