package service

import (
	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/util"
)

// Viewer 发起请求的用户，匿名访问时 UserID 为空
type Viewer struct {
	UserID string
	Role   model.UserRole
}

func ViewerFrom(claims *util.Claims) Viewer {
	if claims == nil {
		return Viewer{}
	}
	return Viewer{UserID: claims.UserID(), Role: claims.Role}
}

func (v Viewer) IsAnonymous() bool {
	return v.UserID == ""
}

func (v Viewer) CanAuthor() bool {
	return v.Role.CanAuthor()
}

func (v Viewer) IsAdmin() bool {
	return v.Role == model.RoleAdmin
}
