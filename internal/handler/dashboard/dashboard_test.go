package dashboard

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"medisecure/internal/model"
	"medisecure/internal/session"
	"medisecure/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type fakeRequests struct {
	ListForDonorFn    func(ctx context.Context, donorID int, status model.RequestStatus) ([]model.DonorInboxItem, error)
	ListForReceiverFn func(ctx context.Context, requesterID int) ([]model.SentRequestItem, error)
	DonorsFn          func(ctx context.Context, bloodGroup string) ([]model.DonorListing, error)
}

func (f fakeRequests) ListForDonor(ctx context.Context, donorID int, status model.RequestStatus) ([]model.DonorInboxItem, error) {
	return f.ListForDonorFn(ctx, donorID, status)
}

func (f fakeRequests) ListForReceiver(ctx context.Context, requesterID int) ([]model.SentRequestItem, error) {
	return f.ListForReceiverFn(ctx, requesterID)
}

func (f fakeRequests) Donors(ctx context.Context, bloodGroup string) ([]model.DonorListing, error) {
	return f.DonorsFn(ctx, bloodGroup)
}

type stubRenderer struct {
	name string
	data any
}

func (s *stubRenderer) Render(_ io.Writer, name string, data interface{}, _ echo.Context) error {
	s.name, s.data = name, data
	return nil
}

func newCtx(target string, id *session.Identity) (echo.Context, *httptest.ResponseRecorder, *stubRenderer) {
	e := echo.New()
	r := &stubRenderer{}
	e.Renderer = r
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)
	if id != nil {
		session.WithIdentity(c, *id)
	}
	return c, rec, r
}

func TestDonorDashboard(t *testing.T) {
	var statuses []model.RequestStatus
	reqs := fakeRequests{ListForDonorFn: func(_ context.Context, donorID int, status model.RequestStatus) ([]model.DonorInboxItem, error) {
		require.Equal(t, 4, donorID)
		statuses = append(statuses, status)
		return []model.DonorInboxItem{{ID: len(statuses), Status: status}}, nil
	}}
	c, rec, r := newCtx("/dashboard", &session.Identity{UserID: 4, UserType: model.UserTypeDonor})

	require.NoError(t, Handler(reqs)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, view.DashboardDonor, r.name)
	require.Equal(t, []model.RequestStatus{model.RequestPending, model.RequestAccepted}, statuses)
	data := r.data.(view.DonorDashboardData)
	require.Equal(t, model.RequestPending, data.Pending[0].Status)
	require.Equal(t, model.RequestAccepted, data.Accepted[0].Status)
}

func TestReceiverDashboard(t *testing.T) {
	var groups []string
	reqs := fakeRequests{
		DonorsFn: func(_ context.Context, g string) ([]model.DonorListing, error) {
			groups = append(groups, g)
			return []model.DonorListing{{ID: 1, BloodGroup: "O-"}}, nil
		},
		ListForReceiverFn: func(_ context.Context, id int) ([]model.SentRequestItem, error) {
			require.Equal(t, 7, id)
			return []model.SentRequestItem{{ID: 2}}, nil
		},
	}
	id := &session.Identity{UserID: 7, UserType: model.UserTypeReceiver}

	c, _, r := newCtx("/dashboard?blood_group=O-", id)
	require.NoError(t, Handler(reqs)(c))
	require.Equal(t, view.DashboardReceiver, r.name)
	data := r.data.(view.ReceiverDashboardData)
	require.Equal(t, "O-", data.BloodGroup)
	require.Len(t, data.Donors, 1)
	require.Len(t, data.Requests, 1)

	// 未知血型視為不篩選
	c, _, r = newCtx("/dashboard?blood_group=Z", id)
	require.NoError(t, Handler(reqs)(c))
	require.Empty(t, r.data.(view.ReceiverDashboardData).BloodGroup)
	require.Equal(t, []string{"O-", ""}, groups)
}

func TestStaticDashboards(t *testing.T) {
	c, _, r := newCtx("/dashboard", &session.Identity{UserID: 1, UserType: model.UserTypeHospital})
	require.NoError(t, Handler(fakeRequests{})(c))
	require.Equal(t, view.DashboardHospital, r.name)

	c, _, r = newCtx("/dashboard", &session.Identity{UserID: 1, UserType: model.UserTypeClub})
	require.NoError(t, Handler(fakeRequests{})(c))
	require.Equal(t, view.DashboardClub, r.name)

	c, rec, _ := newCtx("/dashboard", nil)
	require.NoError(t, Handler(fakeRequests{})(c))
	require.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestDashboardErrors(t *testing.T) {
	boom := errors.New("db down")
	reqs := fakeRequests{
		ListForDonorFn: func(context.Context, int, model.RequestStatus) ([]model.DonorInboxItem, error) { return nil, boom },
		DonorsFn:       func(context.Context, string) ([]model.DonorListing, error) { return nil, boom },
	}
	c, _, _ := newCtx("/dashboard", &session.Identity{UserID: 1, UserType: model.UserTypeDonor})
	require.ErrorIs(t, Handler(reqs)(c), boom)

	c, _, _ = newCtx("/dashboard", &session.Identity{UserID: 1, UserType: model.UserTypeReceiver})
	require.ErrorIs(t, Handler(reqs)(c), boom)
}
