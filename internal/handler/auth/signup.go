// File: internal/handler/auth/signup.go
package auth

import (
	"errors"
	"net/http"
	"strings"

	"medisecure/internal/api"
	"medisecure/internal/apperr"
	"medisecure/internal/database"
	"medisecure/internal/flash"
	"medisecure/internal/model"

	"github.com/labstack/echo/v4"
)

// SignupHandler 建立帳號；捐血者的 donor_details 在同一交易內建立
// @Summary     Create an account
// @Description 依 user_type 建立帳號；醫院與社團需 hospital_id，捐血者需 blood_group。Email 重複時帶 flash 導回註冊頁
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     html
// @Param       user_type   formData string true  "donor, receiver, hospital or club"
// @Param       name        formData string true  "姓名"
// @Param       email       formData string true  "Email"
// @Param       password    formData string true  "密碼"
// @Param       contact_no  formData string true  "聯絡電話"
// @Param       hospital_id formData string false "醫院或社團登記編號"
// @Param       blood_group formData string false "血型 (捐血者)"
// @Success     302
// @Failure     500 {object} dto.HTTPError
// @Router      /signup [post]
func SignupHandler(db database.DB, dir DonorDirectory) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.SignupRequest
		if err := c.Bind(&req); err != nil {
			return flash.Redirect(c, "/", flash.Error("Invalid form data."))
		}
		ut := model.UserType(req.UserType)
		if !ut.Valid() {
			return c.Redirect(http.StatusFound, "/")
		}
		back := "/signup/" + req.UserType
		if err := c.Validate(&req); err != nil {
			return flash.Redirect(c, back, flash.Error("Please fill in every field with valid values."))
		}
		if ut.RequiresRegistrationID() && strings.TrimSpace(req.HospitalID) == "" {
			return flash.Redirect(c, back, flash.Error("Registration ID is required."))
		}
		if ut == model.UserTypeDonor && !model.ValidBloodGroup(req.BloodGroup) {
			return flash.Redirect(c, back, flash.Error("Please choose a valid blood group."))
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return err
		}

		user := &model.User{
			Name:         strings.TrimSpace(req.Name),
			Email:        strings.ToLower(strings.TrimSpace(req.Email)),
			PasswordHash: hash,
			ContactNo:    strings.TrimSpace(req.ContactNo),
			UserType:     ut,
		}
		if ut.RequiresRegistrationID() {
			id := strings.TrimSpace(req.HospitalID)
			user.HospitalID = &id
		}

		ctx := c.Request().Context()
		err = withTx(ctx, db, func(q database.Querier) error {
			created, err := createUser(ctx, q, user)
			if err != nil {
				return err
			}
			if ut != model.UserTypeDonor {
				return nil
			}
			return createDonorDetail(ctx, q, model.DonorDetail{UserID: created.ID, BloodGroup: req.BloodGroup})
		})
		if errors.Is(err, apperr.ErrUniquenessViolation) {
			return flash.Redirect(c, back, flash.Error("Email address already registered."))
		}
		if err != nil {
			return err
		}

		if ut == model.UserTypeDonor {
			dir.InvalidateDonors(ctx)
		}
		return flash.Redirect(c, "/login", flash.Success("Registration successful. Please log in."))
	}
}
