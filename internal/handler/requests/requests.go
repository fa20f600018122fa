// Package requests exposes the blood request lifecycle over HTTP.
package requests

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"medisecure/internal/apperr"
	"medisecure/internal/flash"
	"medisecure/internal/model"
	"medisecure/internal/session"

	"github.com/labstack/echo/v4"
)

// Lifecycle creates and resolves requests.
type Lifecycle interface {
	Create(ctx context.Context, who session.Identity, donorID int) (*model.Request, error)
	Transition(ctx context.Context, who session.Identity, requestID int, action string) (*model.Request, error)
}

// RequestBloodHandler 受血者向捐血者送出請求
// @Summary     Request blood from a donor
// @Description 建立 pending 請求並即時通知捐血者 (WebSocket + Email)
// @Tags        requests
// @Produce     html
// @Param       donor_id path int true "捐血者 ID"
// @Success     302
// @Failure     500 {object} dto.HTTPError
// @Router      /request_blood/{donor_id} [get]
func RequestBloodHandler(lc Lifecycle) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := session.FromContext(c)
		if !ok {
			return c.Redirect(http.StatusFound, "/login")
		}
		donorID, err := strconv.Atoi(c.Param("donor_id"))
		if err != nil {
			return flash.Redirect(c, "/dashboard", flash.Error("Donor not found."))
		}

		_, err = lc.Create(c.Request().Context(), id, donorID)
		switch {
		case err == nil:
			return flash.Redirect(c, "/dashboard", flash.Success("Request sent successfully."))
		case errors.Is(err, apperr.ErrNotFound):
			return flash.Redirect(c, "/dashboard", flash.Error("Donor not found."))
		case errors.Is(err, apperr.ErrAuthorizationDenied):
			return c.Redirect(http.StatusFound, "/login")
		}
		return err
	}
}

// HandleRequestHandler 捐血者接受或拒絕請求
// @Summary     Accept or reject a request
// @Tags        requests
// @Produce     html
// @Param       request_id path int    true "請求 ID"
// @Param       action     path string true "accepted or rejected"
// @Success     302
// @Failure     500 {object} dto.HTTPError
// @Router      /handle_request/{request_id}/{action} [get]
func HandleRequestHandler(lc Lifecycle) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := session.FromContext(c)
		if !ok {
			return c.Redirect(http.StatusFound, "/login")
		}
		requestID, err := strconv.Atoi(c.Param("request_id"))
		if err != nil {
			return flash.Redirect(c, "/dashboard", flash.Error("Invalid request."))
		}

		updated, err := lc.Transition(c.Request().Context(), id, requestID, c.Param("action"))
		switch {
		case err == nil:
			return flash.Redirect(c, "/dashboard", flash.Success(fmt.Sprintf("Request has been %s.", updated.Status)))
		case errors.Is(err, apperr.ErrInvalidAction):
			return c.Redirect(http.StatusFound, "/dashboard")
		case errors.Is(err, apperr.ErrNotFound), errors.Is(err, apperr.ErrAuthorizationDenied):
			return flash.Redirect(c, "/dashboard", flash.Error("Invalid request."))
		case errors.Is(err, apperr.ErrInvalidTransition):
			return flash.Redirect(c, "/dashboard", flash.Info("This request has already been answered."))
		}
		return err
	}
}
