// File: internal/handler/auth/pages.go
package auth

import (
	"net/http"

	"medisecure/internal/model"
	"medisecure/internal/view"

	"github.com/labstack/echo/v4"
)

var signupLabels = map[model.UserType]string{
	model.UserTypeDonor:    "a donor",
	model.UserTypeReceiver: "a receiver",
	model.UserTypeHospital: "a hospital",
	model.UserTypeClub:     "a blood donation club",
}

// IndexHandler 首頁
// @Summary     Landing page
// @Tags        pages
// @Produce     html
// @Success     200
// @Router      / [get]
func IndexHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, view.Index, nil)
	}
}

// SignupPageHandler 依角色顯示註冊表單，未知角色導回首頁
// @Summary     Signup form
// @Tags        pages
// @Produce     html
// @Param       user_type path string true "donor, receiver, hospital or club"
// @Success     200
// @Success     302
// @Router      /signup/{user_type} [get]
func SignupPageHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		ut := model.UserType(c.Param("user_type"))
		if !ut.Valid() {
			return c.Redirect(http.StatusFound, "/")
		}
		return c.Render(http.StatusOK, view.Signup, view.SignupData{
			UserType:            ut,
			Label:               signupLabels[ut],
			NeedsRegistrationID: ut.RequiresRegistrationID(),
			IsDonor:             ut == model.UserTypeDonor,
		})
	}
}

// LoginPageHandler 登入表單
// @Summary     Login form
// @Tags        pages
// @Produce     html
// @Success     200
// @Router      /login [get]
func LoginPageHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, view.Login, nil)
	}
}
