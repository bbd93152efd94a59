package model

// UserRole 来自 JWT 的角色，用户账户本身由外部身份系统管理
type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleInstructor UserRole = "instructor"
	RoleAdmin      UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// CanAuthor 讲师和管理员可以编辑课程内容
func (r UserRole) CanAuthor() bool {
	return r == RoleInstructor || r == RoleAdmin
}
