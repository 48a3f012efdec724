package constants

import "fmt"

const (
	RoleWarden = "warden"
	RoleAdmin  = "admin"
)

const (
	ErrOnlyWardensCanAccess = "Only wardens may %s."
)

func RoleErrorWarden(feature string) string {
	return fmt.Sprintf(ErrOnlyWardensCanAccess, feature)
}

var (
	AllRoles = []string{
		RoleWarden,
		RoleAdmin,
	}

	WardenOnly = []string{
		RoleWarden,
	}
)
