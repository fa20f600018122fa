// Package donors serves the donor's own profile form.
package donors

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"medisecure/internal/api"
	"medisecure/internal/apperr"
	"medisecure/internal/database"
	"medisecure/internal/flash"
	"medisecure/internal/model"
	"medisecure/internal/session"
	"medisecure/internal/store"
	"medisecure/internal/view"

	"github.com/labstack/echo/v4"
)

// DonorDirectory is told when a donor's listing changes.
type DonorDirectory interface {
	InvalidateDonors(ctx context.Context)
}

var (
	getDonorProfile   = store.GetDonorProfile
	upsertDonorDetail = store.UpsertDonorDetail
)

// EditProfileHandler 顯示捐血者資料表單
// @Summary     Donor profile form
// @Tags        donors
// @Produce     html
// @Success     200
// @Success     302
// @Failure     500 {object} dto.HTTPError
// @Router      /edit_donor_profile [get]
func EditProfileHandler(db database.Querier) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := session.FromContext(c)
		if !ok {
			return c.Redirect(http.StatusFound, "/login")
		}
		profile, err := getDonorProfile(c.Request().Context(), db, id.UserID)
		if errors.Is(err, apperr.ErrNotFound) {
			return flash.Redirect(c, "/dashboard", flash.Error("Donor not found."))
		}
		if err != nil {
			return err
		}
		return c.Render(http.StatusOK, view.DonorForm, profile)
	}
}

// UpdateProfileHandler 更新捐血者資料
// @Summary     Update donor profile
// @Description 儲存血型、地點、年齡與上次捐血距今月數，之後即出現在受血者的捐血者清單
// @Tags        donors
// @Accept      application/x-www-form-urlencoded
// @Produce     html
// @Param       blood_group   formData string true "血型"
// @Param       location      formData string true "地點"
// @Param       age           formData int    true "年齡"
// @Param       last_donation formData int    false "上次捐血距今 (月)"
// @Success     302
// @Failure     500 {object} dto.HTTPError
// @Router      /update_donor [post]
func UpdateProfileHandler(db database.Querier, dir DonorDirectory) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := session.FromContext(c)
		if !ok {
			return c.Redirect(http.StatusFound, "/login")
		}
		var req api.DonorProfileRequest
		if err := c.Bind(&req); err != nil {
			return flash.Redirect(c, "/edit_donor_profile", flash.Error("Invalid form data."))
		}
		if err := c.Validate(&req); err != nil {
			return flash.Redirect(c, "/edit_donor_profile", flash.Error("Please check the highlighted values and try again."))
		}

		location := strings.TrimSpace(req.Location)
		ctx := c.Request().Context()
		err := upsertDonorDetail(ctx, db, model.DonorDetail{
			UserID:             id.UserID,
			BloodGroup:         req.BloodGroup,
			Location:           &location,
			Age:                &req.Age,
			LastDonationMonths: &req.LastDonation,
		})
		if err != nil {
			return err
		}
		dir.InvalidateDonors(ctx)
		return flash.Redirect(c, "/dashboard",
			flash.Success("Thank you! Your information has been updated. You are now visible to receivers."))
	}
}
