package server

import (
	"errors"

	"gigmarket/internal/models"
	"gigmarket/internal/permissions"
	"gigmarket/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// profileResponse is the flat profile shape: user fields and profile fields
// merged into one object, keyed by the user id.
type profileResponse struct {
	User         uint            `json:"user"`
	Username     string          `json:"username"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	File         string          `json:"file"`
	Location     string          `json:"location"`
	Tel          string          `json:"tel"`
	Description  string          `json:"description"`
	WorkingHours string          `json:"working_hours,omitempty"`
	Type         models.UserType `json:"type"`
	Email        string          `json:"email"`
	CreatedAt    string          `json:"created_at"`
}

func businessProfileResponse(p *models.BusinessProfile) profileResponse {
	return profileResponse{
		User:         p.UserID,
		Username:     p.User.Username,
		FirstName:    p.User.FirstName,
		LastName:     p.User.LastName,
		File:         p.ProfilePicture,
		Location:     p.Location,
		Tel:          p.Phone,
		Description:  p.Description,
		WorkingHours: p.WorkingHours,
		Type:         models.UserTypeBusiness,
		Email:        p.Email,
		CreatedAt:    p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func customerProfileResponse(p *models.CustomerProfile) profileResponse {
	return profileResponse{
		User:        p.UserID,
		Username:    p.User.Username,
		FirstName:   p.User.FirstName,
		LastName:    p.User.LastName,
		File:        p.ProfilePicture,
		Location:    p.Location,
		Tel:         p.Phone,
		Description: p.Bio,
		Type:        models.UserTypeCustomer,
		Email:       p.Email,
		CreatedAt:   p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// loadProfileResponse resolves a user id to its flat profile shape.
func (s *Server) loadProfileResponse(c *fiber.Ctx, userID uint) (*profileResponse, error) {
	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Profile", userID)
		}
		return nil, models.NewInternalError(err)
	}

	var out profileResponse
	if user.IsBusiness() {
		profile, err := s.userRepo.GetBusinessProfile(c.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("Profile", userID)
			}
			return nil, models.NewInternalError(err)
		}
		out = businessProfileResponse(profile)
	} else {
		profile, err := s.userRepo.GetCustomerProfile(c.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("Profile", userID)
			}
			return nil, models.NewInternalError(err)
		}
		out = customerProfileResponse(profile)
	}
	return &out, nil
}

// GetProfile handles GET /api/profile/:pk/
// @Summary Get a profile
// @Description Return the profile of the user with the given id
// @Tags profiles
// @Produce json
// @Param pk path int true "User ID"
// @Success 200 {object} profileResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /profile/{pk}/ [get]
func (s *Server) GetProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "pk")
	if err != nil {
		return nil
	}

	profile, err := s.loadProfileResponse(c, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(profile)
}

// UpdateProfile handles PATCH /api/profile/:pk/
// @Summary Update own profile
// @Description Patch profile fields; only the owner may update
// @Tags profiles
// @Accept json
// @Produce json
// @Param pk path int true "User ID"
// @Success 200 {object} profileResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /profile/{pk}/ [patch]
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "pk")
	if err != nil {
		return nil
	}
	caller, err := s.currentUser(c)
	if err != nil {
		return nil
	}

	target, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithAppError(c, models.NewNotFoundError("Profile", userID))
		}
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}

	var req struct {
		FirstName    *string `json:"first_name"`
		LastName     *string `json:"last_name"`
		Email        *string `json:"email"`
		File         *string `json:"file"`
		Location     *string `json:"location"`
		Tel          *string `json:"tel"`
		Description  *string `json:"description"`
		WorkingHours *string `json:"working_hours"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c,
			models.NewValidationError("Invalid request body"))
	}
	if req.Email != nil {
		if err := validation.ValidateEmail(*req.Email); err != nil {
			return models.RespondWithAppError(c, models.NewValidationError(err.Error()))
		}
	}

	if req.FirstName != nil {
		target.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		target.LastName = *req.LastName
	}

	if target.IsBusiness() {
		profile, err := s.userRepo.GetBusinessProfile(c.Context(), userID)
		if err != nil {
			return models.RespondWithAppError(c, models.NewInternalError(err))
		}
		if !permissions.IsOwner(caller, profile) {
			return models.RespondWithAppError(c,
				models.NewForbiddenError("You may only edit your own profile"))
		}
		if req.Email != nil {
			profile.Email = *req.Email
		}
		if req.File != nil {
			profile.ProfilePicture = *req.File
		}
		if req.Location != nil {
			profile.Location = *req.Location
		}
		if req.Tel != nil {
			profile.Phone = *req.Tel
		}
		if req.Description != nil {
			profile.Description = *req.Description
		}
		if req.WorkingHours != nil {
			profile.WorkingHours = *req.WorkingHours
		}
		if err := s.userRepo.SaveUser(c.Context(), target); err != nil {
			return models.RespondWithAppError(c, models.NewInternalError(err))
		}
		if err := s.userRepo.SaveBusinessProfile(c.Context(), profile); err != nil {
			return models.RespondWithAppError(c, models.NewInternalError(err))
		}
	} else {
		profile, err := s.userRepo.GetCustomerProfile(c.Context(), userID)
		if err != nil {
			return models.RespondWithAppError(c, models.NewInternalError(err))
		}
		if !permissions.IsOwner(caller, profile) {
			return models.RespondWithAppError(c,
				models.NewForbiddenError("You may only edit your own profile"))
		}
		if req.Email != nil {
			profile.Email = *req.Email
		}
		if req.File != nil {
			profile.ProfilePicture = *req.File
		}
		if req.Location != nil {
			profile.Location = *req.Location
		}
		if req.Tel != nil {
			profile.Phone = *req.Tel
		}
		if req.Description != nil {
			profile.Bio = *req.Description
		}
		if err := s.userRepo.SaveUser(c.Context(), target); err != nil {
			return models.RespondWithAppError(c, models.NewInternalError(err))
		}
		if err := s.userRepo.SaveCustomerProfile(c.Context(), profile); err != nil {
			return models.RespondWithAppError(c, models.NewInternalError(err))
		}
	}

	updated, err := s.loadProfileResponse(c, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(updated)
}

// ListBusinessProfiles handles GET /api/profiles/business/
// @Summary List business profiles
// @Tags profiles
// @Produce json
// @Success 200 {array} profileResponse
// @Security BearerAuth
// @Router /profiles/business/ [get]
func (s *Server) ListBusinessProfiles(c *fiber.Ctx) error {
	profiles, err := s.userRepo.ListBusinessProfiles(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}

	out := make([]profileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, businessProfileResponse(p))
	}
	return c.JSON(out)
}

// ListCustomerProfiles handles GET /api/profiles/customer/
// @Summary List customer profiles
// @Tags profiles
// @Produce json
// @Success 200 {array} profileResponse
// @Security BearerAuth
// @Router /profiles/customer/ [get]
func (s *Server) ListCustomerProfiles(c *fiber.Ctx) error {
	profiles, err := s.userRepo.ListCustomerProfiles(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}

	out := make([]profileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, customerProfileResponse(p))
	}
	return c.JSON(out)
}
