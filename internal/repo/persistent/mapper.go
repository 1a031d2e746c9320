package persistent

import (
	"snapfeed/internal/entity"
	"snapfeed/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:        m.ID,
		UserID:    m.UserID,
		Caption:   m.Caption,
		URL:       m.URL,
		FileType:  entity.FileType(m.FileType),
		FileName:  m.FileName,
		CreatedAt: m.CreatedAt,
	}
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Caption:   e.Caption,
		URL:       e.URL,
		FileType:  string(e.FileType),
		FileName:  e.FileName,
		CreatedAt: e.CreatedAt,
	}
}

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:        m.ID,
		Email:     m.Email,
		Password:  m.Password,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:        e.ID,
		Email:     e.Email,
		Password:  e.Password,
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
	}
}
