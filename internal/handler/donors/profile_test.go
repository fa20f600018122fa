package donors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"medisecure/internal/api"
	"medisecure/internal/apperr"
	"medisecure/internal/database"
	"medisecure/internal/flash"
	"medisecure/internal/model"
	"medisecure/internal/session"
	"medisecure/internal/store"
	"medisecure/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restore() {
	getDonorProfile = store.GetDonorProfile
	upsertDonorDetail = store.UpsertDonorDetail
}

type stubRenderer struct {
	name string
	data any
}

func (s *stubRenderer) Render(_ io.Writer, name string, data interface{}, _ echo.Context) error {
	s.name, s.data = name, data
	return nil
}

type fakeDirectory struct{ invalidated int }

func (f *fakeDirectory) InvalidateDonors(context.Context) { f.invalidated++ }

var donor = session.Identity{UserID: 5, UserType: model.UserTypeDonor, Name: "Ann"}

func newCtx(method string, form url.Values, withSession bool) (echo.Context, *httptest.ResponseRecorder, *stubRenderer) {
	e := echo.New()
	e.Validator = api.NewValidator()
	r := &stubRenderer{}
	e.Renderer = r
	req := httptest.NewRequest(method, "/update_donor", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if withSession {
		session.WithIdentity(c, donor)
	}
	return c, rec, r
}

func flashMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	ck, err := http.ParseSetCookie(rec.Header().Get("Set-Cookie"))
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(ck)
	n, ok := flash.Pop(echo.New().NewContext(req, httptest.NewRecorder()))
	require.True(t, ok)
	return n.Message
}

func TestEditProfileHandler(t *testing.T) {
	t.Run("renders profile", func(t *testing.T) {
		t.Cleanup(restore)
		getDonorProfile = func(_ context.Context, _ database.Querier, id int) (*model.DonorProfile, error) {
			require.Equal(t, 5, id)
			return &model.DonorProfile{Name: "Ann", DonorDetail: model.DonorDetail{UserID: 5, BloodGroup: "B-"}}, nil
		}
		c, rec, r := newCtx(http.MethodGet, nil, true)
		require.NoError(t, EditProfileHandler(nil)(c))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, view.DonorForm, r.name)
		require.Equal(t, "B-", r.data.(*model.DonorProfile).BloodGroup)
	})

	t.Run("not a donor row", func(t *testing.T) {
		t.Cleanup(restore)
		getDonorProfile = func(context.Context, database.Querier, int) (*model.DonorProfile, error) {
			return nil, fmt.Errorf("GetDonorProfile: %w", apperr.ErrNotFound)
		}
		c, rec, _ := newCtx(http.MethodGet, nil, true)
		require.NoError(t, EditProfileHandler(nil)(c))
		require.Equal(t, "/dashboard", rec.Header().Get("Location"))
		require.Equal(t, "Donor not found.", flashMessage(t, rec))
	})

	t.Run("errors and anonymous", func(t *testing.T) {
		t.Cleanup(restore)
		getDonorProfile = func(context.Context, database.Querier, int) (*model.DonorProfile, error) {
			return nil, errors.New("db down")
		}
		c, _, _ := newCtx(http.MethodGet, nil, true)
		require.EqualError(t, EditProfileHandler(nil)(c), "db down")

		c, rec, _ := newCtx(http.MethodGet, nil, false)
		require.NoError(t, EditProfileHandler(nil)(c))
		require.Equal(t, "/login", rec.Header().Get("Location"))
	})
}

func TestUpdateProfileHandler(t *testing.T) {
	form := url.Values{
		"blood_group":   {"AB-"},
		"location":      {" Pune "},
		"age":           {"30"},
		"last_donation": {"4"},
	}

	t.Run("saves and invalidates", func(t *testing.T) {
		t.Cleanup(restore)
		var got model.DonorDetail
		upsertDonorDetail = func(_ context.Context, _ database.Querier, d model.DonorDetail) error {
			got = d
			return nil
		}
		dir := &fakeDirectory{}
		c, rec, _ := newCtx(http.MethodPost, form, true)

		require.NoError(t, UpdateProfileHandler(nil, dir)(c))
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/dashboard", rec.Header().Get("Location"))
		require.Contains(t, flashMessage(t, rec), "You are now visible to receivers.")
		require.Equal(t, 5, got.UserID)
		require.Equal(t, "AB-", got.BloodGroup)
		require.Equal(t, "Pune", *got.Location)
		require.Equal(t, 30, *got.Age)
		require.Equal(t, 4, *got.LastDonationMonths)
		require.Equal(t, 1, dir.invalidated)
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Cleanup(restore)
		upsertDonorDetail = func(context.Context, database.Querier, model.DonorDetail) error {
			t.Fatal("nothing should be written")
			return nil
		}
		bad := url.Values{"blood_group": {"AB-"}, "location": {"Pune"}, "age": {"12"}}
		c, rec, _ := newCtx(http.MethodPost, bad, true)
		require.NoError(t, UpdateProfileHandler(nil, &fakeDirectory{})(c))
		require.Equal(t, "/edit_donor_profile", rec.Header().Get("Location"))

		bad = url.Values{"blood_group": {"AB-"}, "location": {"Pune"}, "age": {"thirty"}}
		c, rec, _ = newCtx(http.MethodPost, bad, true)
		require.NoError(t, UpdateProfileHandler(nil, &fakeDirectory{})(c))
		require.Equal(t, "/edit_donor_profile", rec.Header().Get("Location"))
	})

	t.Run("write failure", func(t *testing.T) {
		t.Cleanup(restore)
		upsertDonorDetail = func(context.Context, database.Querier, model.DonorDetail) error {
			return errors.New("db down")
		}
		dir := &fakeDirectory{}
		c, _, _ := newCtx(http.MethodPost, form, true)
		require.EqualError(t, UpdateProfileHandler(nil, dir)(c), "db down")
		require.Zero(t, dir.invalidated)
	})
}
