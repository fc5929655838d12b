package profile

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/auth"
	"github.com/seekers-automation/mes-hr-backend-go/internal/domain/user"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/storage"
	"github.com/seekers-automation/mes-hr-backend-go/internal/pkg/validator"
)

// photoExtensions whitelists the accepted profile photo types.
var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type ProfileServiceImpl struct {
	userRepo user.Repository
	storage  storage.FileStorage
}

func NewProfileService(userRepo user.Repository, fileStorage storage.FileStorage) user.ProfileService {
	return &ProfileServiceImpl{
		userRepo: userRepo,
		storage:  fileStorage,
	}
}

// Get implements user.ProfileService.
func (s *ProfileServiceImpl) Get(ctx context.Context) (user.UserResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}

	return s.toResponse(ctx, u), nil
}

// Update implements user.ProfileService. Only the fields present in the
// request are touched.
func (s *ProfileServiceImpl) Update(ctx context.Context, req user.UpdateProfileRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	userID, err := currentUserID(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.Department != nil {
		u.Department = req.Department
	}
	if req.Position != nil {
		u.Position = req.Position
	}
	if req.DateOfBirth != nil {
		dob, _ := time.Parse("2006-01-02", *req.DateOfBirth)
		u.DateOfBirth = &dob
	}

	updated, err := s.userRepo.Update(ctx, u)
	if err != nil {
		return user.UserResponse{}, err
	}

	return s.toResponse(ctx, updated), nil
}

// UploadPhoto implements user.ProfileService. The previous photo is
// removed best-effort after the new one is persisted.
func (s *ProfileServiceImpl) UploadPhoto(ctx context.Context, file io.Reader, filename, contentType string) (user.UserResponse, error) {
	ext, ok := photoExtensions[contentType]
	if !ok {
		return user.UserResponse{}, validator.ValidationErrors{{
			Field:   "photo",
			Message: "photo must be a JPEG, PNG or WebP image",
		}}
	}

	userID, err := currentUserID(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}

	path := fmt.Sprintf("profiles/%s/%s%s", userID, uuid.New().String(), ext)
	storedPath, err := s.storage.Upload(ctx, file, path, contentType)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to store profile photo: %w", err)
	}

	oldPath := u.ProfilePhotoPath
	u.ProfilePhotoPath = &storedPath

	updated, err := s.userRepo.Update(ctx, u)
	if err != nil {
		_ = s.storage.Delete(ctx, storedPath)
		return user.UserResponse{}, err
	}

	if oldPath != nil && *oldPath != storedPath {
		_ = s.storage.Delete(ctx, *oldPath)
	}

	return s.toResponse(ctx, updated), nil
}

func (s *ProfileServiceImpl) toResponse(ctx context.Context, u user.User) user.UserResponse {
	resp := user.NewUserResponse(u)
	if u.ProfilePhotoPath != nil {
		if url, err := s.storage.GetURL(ctx, *u.ProfilePhotoPath, 0); err == nil {
			resp.ProfilePhotoURL = &url
		}
	}
	return resp
}

func currentUserID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", auth.ErrInvalidToken
	}

	return userID, nil
}
