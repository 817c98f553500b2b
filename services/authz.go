package services

import (
	"github.com/google/uuid"

	"github.com/vnkhanh/podcast-catalog-api/models"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Actor là danh tính đã xác thực của request. nil = khách vãng lai.
type Actor struct {
	ID   uuid.UUID
	Role models.UserRole
}

// OwnedResource là tài nguyên biết chủ sở hữu của mình (user id).
// Podcast trả về host_id, Episode đi qua podcast cha, Host trả về user_id.
type OwnedResource interface {
	OwnerID() uuid.UUID
}

// Decide là bảng quyết định duy nhất cho Podcast/Episode/Host,
// duyệt theo thứ tự, khớp luật nào trước thì dừng ở đó:
//  1. read luôn cho phép (catalog công khai)
//  2. chưa đăng nhập thì không được ghi
//  3. admin ghi không giới hạn
//  4. host được create tự do; update/delete chỉ trên tài nguyên của mình
//  5. còn lại (role user) chỉ đọc
//
// Kiểm tra sở hữu dùng chủ sở hữu HIỆN TẠI của bản ghi đã load,
// phải gọi lại cho từng request, không cache.
func Decide(actor *Actor, action Action, resource OwnedResource) error {
	if action == ActionRead {
		return nil
	}

	if actor == nil {
		return ErrUnauthenticated("Bạn cần đăng nhập để thực hiện thao tác này")
	}

	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleHost:
		if action == ActionCreate {
			return nil
		}
		if resource != nil && resource.OwnerID() == actor.ID {
			return nil
		}
		return ErrForbidden("Bạn chỉ có thể sửa hoặc xóa nội dung của chính mình")
	default:
		return ErrForbidden("Tài khoản của bạn không có quyền ghi")
	}
}

// DecideAccountWrite áp cho thao tác ghi lên tài khoản người dùng:
// chỉ admin được phép.
func DecideAccountWrite(actor *Actor) error {
	if actor == nil {
		return ErrUnauthenticated("Bạn cần đăng nhập để thực hiện thao tác này")
	}
	if actor.Role != models.RoleAdmin {
		return ErrForbidden("Chỉ admin mới được quản lý tài khoản")
	}
	return nil
}
