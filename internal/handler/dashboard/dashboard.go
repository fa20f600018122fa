// Package dashboard renders the per-role landing page after login.
package dashboard

import (
	"context"
	"net/http"

	"medisecure/internal/model"
	"medisecure/internal/session"
	"medisecure/internal/view"

	"github.com/labstack/echo/v4"
)

// Requests is the read side of the request lifecycle.
type Requests interface {
	ListForDonor(ctx context.Context, donorID int, status model.RequestStatus) ([]model.DonorInboxItem, error)
	ListForReceiver(ctx context.Context, requesterID int) ([]model.SentRequestItem, error)
	Donors(ctx context.Context, bloodGroup string) ([]model.DonorListing, error)
}

// Handler 依角色顯示儀表板
// @Summary     Dashboard
// @Description 捐血者看到待處理與已接受的請求；受血者看到捐血者清單 (可依 blood_group 篩選) 與已送出的請求
// @Tags        pages
// @Produce     html
// @Param       blood_group query string false "血型篩選 (受血者)"
// @Success     200
// @Success     302
// @Failure     500 {object} dto.HTTPError
// @Router      /dashboard [get]
func Handler(reqs Requests) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := session.FromContext(c)
		if !ok {
			return c.Redirect(http.StatusFound, "/login")
		}
		ctx := c.Request().Context()

		switch id.UserType {
		case model.UserTypeDonor:
			pending, err := reqs.ListForDonor(ctx, id.UserID, model.RequestPending)
			if err != nil {
				return err
			}
			accepted, err := reqs.ListForDonor(ctx, id.UserID, model.RequestAccepted)
			if err != nil {
				return err
			}
			return c.Render(http.StatusOK, view.DashboardDonor, view.DonorDashboardData{
				Pending:  pending,
				Accepted: accepted,
			})

		case model.UserTypeReceiver:
			group := c.QueryParam("blood_group")
			if !model.ValidBloodGroup(group) {
				group = ""
			}
			donors, err := reqs.Donors(ctx, group)
			if err != nil {
				return err
			}
			sent, err := reqs.ListForReceiver(ctx, id.UserID)
			if err != nil {
				return err
			}
			return c.Render(http.StatusOK, view.DashboardReceiver, view.ReceiverDashboardData{
				BloodGroup: group,
				Donors:     donors,
				Requests:   sent,
			})

		case model.UserTypeHospital:
			return c.Render(http.StatusOK, view.DashboardHospital, nil)
		case model.UserTypeClub:
			return c.Render(http.StatusOK, view.DashboardClub, nil)
		}
		return c.Redirect(http.StatusFound, "/login")
	}
}
