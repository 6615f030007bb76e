package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"referral_tracker/internal/middleware"
	"referral_tracker/internal/model"
	"referral_tracker/internal/policy"
	"referral_tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubReferralService returns canned results so the tests can pin down the
// error-to-status-code mapping without a database.
type stubReferralService struct {
	referral *model.Referral
	list     []model.Referral
	err      error
}

func (s *stubReferralService) CreateReferral(context.Context, policy.Requester, model.CreateReferralRequest) (*model.Referral, error) {
	return s.referral, s.err
}
func (s *stubReferralService) GetReferrals(context.Context, policy.Requester) ([]model.Referral, error) {
	return s.list, s.err
}
func (s *stubReferralService) GetReferralByID(context.Context, policy.Requester, int64) (*model.Referral, error) {
	return s.referral, s.err
}
func (s *stubReferralService) UpdateReferralStatus(context.Context, policy.Requester, int64, string) (*model.Referral, error) {
	return s.referral, s.err
}
func (s *stubReferralService) UpdateReferral(context.Context, policy.Requester, int64, model.UpdateReferralRequest) (*model.Referral, error) {
	return s.referral, s.err
}
func (s *stubReferralService) DeleteReferral(context.Context, policy.Requester, int64) (*model.Referral, error) {
	return s.referral, s.err
}

// fakeAuth seeds the context the way the JWT middleware would
func fakeAuth(userID int, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.AuthUserKey, userID)
		c.Set(middleware.AuthRoleKey, role)
		c.Next()
	}
}

func newReferralRouter(svc service.ReferralService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	NewReferralHandler(svc).RegisterReferralRoutes(api, fakeAuth(1, model.RoleEmployee))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sampleReferral() *model.Referral {
	return &model.Referral{
		ID:             10,
		CandidateName:  "Jane Doe",
		CandidateEmail: "jane@x.com",
		Position:       "Engineer",
		Experience:     3,
		Status:         model.StatusSubmitted,
		ReferredBy:     1,
	}
}

func TestCreateReferral_Created(t *testing.T) {
	router := newReferralRouter(&stubReferralService{referral: sampleReferral()})

	w := doJSON(t, router, http.MethodPost, "/api/v1/referrals", gin.H{
		"candidate_name":  "Jane Doe",
		"candidate_email": "jane@x.com",
		"position":        "Engineer",
		"experience":      3,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateReferral_MissingFields(t *testing.T) {
	router := newReferralRouter(&stubReferralService{referral: sampleReferral()})

	// position and experience absent
	w := doJSON(t, router, http.MethodPost, "/api/v1/referrals", gin.H{
		"candidate_name":  "Jane Doe",
		"candidate_email": "jane@x.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReferrals_OK(t *testing.T) {
	router := newReferralRouter(&stubReferralService{list: []model.Referral{*sampleReferral()}})

	w := doJSON(t, router, http.MethodGet, "/api/v1/referrals", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var got []model.Referral
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 1)
}

func TestGetReferralByID_NotFound(t *testing.T) {
	router := newReferralRouter(&stubReferralService{err: service.ErrReferralNotFound})

	w := doJSON(t, router, http.MethodGet, "/api/v1/referrals/10", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetReferralByID_InvalidID(t *testing.T) {
	router := newReferralRouter(&stubReferralService{referral: sampleReferral()})

	w := doJSON(t, router, http.MethodGet, "/api/v1/referrals/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateReferralStatus_StatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, http.StatusOK},
		{"invalid status", service.ErrInvalidStatus, http.StatusBadRequest},
		{"not hr", service.ErrForbidden, http.StatusForbidden},
		{"missing", service.ErrReferralNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newReferralRouter(&stubReferralService{referral: sampleReferral(), err: tc.err})
			w := doJSON(t, router, http.MethodPut, "/api/v1/referrals/10/status", gin.H{"status": "screening"})
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestUpdateReferral_NotFoundCoversNotOwned(t *testing.T) {
	router := newReferralRouter(&stubReferralService{err: service.ErrReferralNotFound})

	w := doJSON(t, router, http.MethodPut, "/api/v1/referrals/10", gin.H{"position": "Senior Engineer"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteReferral_StatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, http.StatusOK},
		{"not owner", service.ErrForbidden, http.StatusForbidden},
		{"missing", service.ErrReferralNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newReferralRouter(&stubReferralService{referral: sampleReferral(), err: tc.err})
			w := doJSON(t, router, http.MethodDelete, "/api/v1/referrals/10", nil)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestDeleteReferral_ReturnsConfirmationPayload(t *testing.T) {
	router := newReferralRouter(&stubReferralService{referral: sampleReferral()})

	w := doJSON(t, router, http.MethodDelete, "/api/v1/referrals/10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string         `json:"message"`
		Deleted model.Referral `json:"deleted_referral"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Referral removed", resp.Message)
	assert.Equal(t, int64(10), resp.Deleted.ID)
}
