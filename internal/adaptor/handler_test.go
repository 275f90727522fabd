package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"booking-service/internal/data/entity"
	"booking-service/internal/dto/request"
	"booking-service/internal/dto/response"
	"booking-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockAnnouncementService struct{ mock.Mock }

func (m *mockAnnouncementService) Create(ctx context.Context, actor entity.Actor, movieID uuid.UUID, req *request.CreateAnnouncementRequest) (*response.AnnouncementDetailResponse, error) {
	args := m.Called(ctx, actor, movieID, req)
	detail, _ := args.Get(0).(*response.AnnouncementDetailResponse)
	return detail, args.Error(1)
}

func (m *mockAnnouncementService) GetOne(ctx context.Context, id uuid.UUID) (*response.AnnouncementDetailResponse, error) {
	args := m.Called(ctx, id)
	detail, _ := args.Get(0).(*response.AnnouncementDetailResponse)
	return detail, args.Error(1)
}

func (m *mockAnnouncementService) Update(ctx context.Context, actor entity.Actor, id uuid.UUID, req *request.UpdateAnnouncementRequest) (*response.AnnouncementDetailResponse, error) {
	args := m.Called(ctx, actor, id, req)
	detail, _ := args.Get(0).(*response.AnnouncementDetailResponse)
	return detail, args.Error(1)
}

func (m *mockAnnouncementService) Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockAnnouncementService) List(ctx context.Context, actor entity.Actor, query request.AnnouncementQuery) ([]response.AnnouncementResponse, error) {
	args := m.Called(ctx, actor, query)
	list, _ := args.Get(0).([]response.AnnouncementResponse)
	return list, args.Error(1)
}

func (m *mockAnnouncementService) GetToReview(ctx context.Context, id, guestID uuid.UUID) (*response.AnnouncementReviewResponse, error) {
	args := m.Called(ctx, id, guestID)
	review, _ := args.Get(0).(*response.AnnouncementReviewResponse)
	return review, args.Error(1)
}

type mockBookingService struct{ mock.Mock }

func (m *mockBookingService) Create(ctx context.Context, actor entity.Actor, announcementID uuid.UUID) (*response.BookingDetailResponse, error) {
	args := m.Called(ctx, actor, announcementID)
	detail, _ := args.Get(0).(*response.BookingDetailResponse)
	return detail, args.Error(1)
}

func (m *mockBookingService) GetOne(ctx context.Context, actor entity.Actor, id uuid.UUID) (*response.BookingDetailResponse, error) {
	args := m.Called(ctx, actor, id)
	detail, _ := args.Get(0).(*response.BookingDetailResponse)
	return detail, args.Error(1)
}

func (m *mockBookingService) Update(ctx context.Context, actor entity.Actor, id uuid.UUID, req *request.UpdateBookingRequest) (*response.BookingDetailResponse, error) {
	args := m.Called(ctx, actor, id, req)
	detail, _ := args.Get(0).(*response.BookingDetailResponse)
	return detail, args.Error(1)
}

func (m *mockBookingService) Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockBookingService) List(ctx context.Context, actor entity.Actor, query request.BookingQuery) ([]response.BookingResponse, error) {
	args := m.Called(ctx, actor, query)
	list, _ := args.Get(0).([]response.BookingResponse)
	return list, args.Error(1)
}

func (m *mockBookingService) SudoList(ctx context.Context, actor entity.Actor, query request.SudoBookingQuery) ([]response.BookingResponse, error) {
	args := m.Called(ctx, actor, query)
	list, _ := args.Get(0).([]response.BookingResponse)
	return list, args.Error(1)
}

var testActor = entity.Actor{ID: uuid.New(), Permissions: []int{entity.PermissionUser}}

func withActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(utils.SetActorContext(r.Context(), testActor)))
	})
}

func newTestRouter(a *mockAnnouncementService, b *mockBookingService, authenticated bool) http.Handler {
	ah := NewAnnouncementHandler(a, zap.NewNop())
	bh := NewBookingHandler(b, zap.NewNop())

	r := chi.NewRouter()
	if authenticated {
		r.Use(withActor)
	}
	r.Post("/announcement/{movie_id}", ah.Create)
	r.Get("/announcement/{announce_id}", ah.GetOne)
	r.Put("/announcement/{announce_id}", ah.Update)
	r.Delete("/announcement/{announce_id}", ah.Delete)
	r.Get("/announcements", ah.List)
	r.Get("/announcement/{announce_id}/review/{guest_id}", ah.GetToReview)
	r.Post("/booking/{announcement_id}", bh.Create)
	r.Get("/booking/{booking_id}", bh.GetOne)
	r.Put("/booking/{booking_id}", bh.Update)
	r.Delete("/booking/{booking_id}", bh.Delete)
	r.Get("/bookings", bh.List)
	r.Get("/_bookings", bh.SudoList)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, utils.Response) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("booking x: %w", entity.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("update: %w", entity.ErrNoAccess), http.StatusForbidden},
		{fmt.Errorf("create: %w", entity.ErrUniqueConstraint), http.StatusUnprocessableEntity},
		{fmt.Errorf("role: %w", entity.ErrValueMissing), http.StatusUnprocessableEntity},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, zap.NewNop(), tt.err, "test")
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestAnnouncementHandlerCreate(t *testing.T) {
	movieID := uuid.New()
	body := `{"status":"Alive","title":"Premiere","tickets_count":2,"event_time":"2030-01-02T18:00:00Z","event_location":"Hall"}`

	t.Run("created", func(t *testing.T) {
		svc := &mockAnnouncementService{}
		svc.On("Create", mock.Anything, testActor, movieID, mock.AnythingOfType("*request.CreateAnnouncementRequest")).
			Return(&response.AnnouncementDetailResponse{ID: "a1", Title: "Premiere"}, nil)

		rec, resp := do(t, newTestRouter(svc, &mockBookingService{}, true), http.MethodPost, "/announcement/"+movieID.String(), body)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.True(t, resp.Status)
		svc.AssertExpectations(t)
	})

	t.Run("bad movie id", func(t *testing.T) {
		svc := &mockAnnouncementService{}
		rec, _ := do(t, newTestRouter(svc, &mockBookingService{}, true), http.MethodPost, "/announcement/not-a-uuid", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Create")
	})

	t.Run("validation", func(t *testing.T) {
		svc := &mockAnnouncementService{}
		rec, resp := do(t, newTestRouter(svc, &mockBookingService{}, true), http.MethodPost, "/announcement/"+movieID.String(), `{"status":"Done"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NotNil(t, resp.Errors)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		rec, _ := do(t, newTestRouter(&mockAnnouncementService{}, &mockBookingService{}, false), http.MethodPost, "/announcement/"+movieID.String(), body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("conflict", func(t *testing.T) {
		svc := &mockAnnouncementService{}
		svc.On("Create", mock.Anything, testActor, movieID, mock.Anything).
			Return(nil, fmt.Errorf("create announcement: %w", entity.ErrUniqueConstraint))

		rec, _ := do(t, newTestRouter(svc, &mockBookingService{}, true), http.MethodPost, "/announcement/"+movieID.String(), body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestAnnouncementHandlerList(t *testing.T) {
	author := uuid.New()

	svc := &mockAnnouncementService{}
	svc.On("List", mock.Anything, testActor, mock.MatchedBy(func(q request.AnnouncementQuery) bool {
		return q.Sub && q.Author != nil && *q.Author == author && q.Free != nil && *q.Free && q.Date != nil
	})).Return([]response.AnnouncementResponse{}, nil)

	values := url.Values{}
	values.Set("filter[author]", author.String())
	values.Set("filter[sub]", "true")
	values.Set("filter[free]", "1")
	values.Set("filter[date]", "2030-01-02T18:00:00")

	rec, resp := do(t, newTestRouter(svc, &mockBookingService{}, true), http.MethodGet, "/announcements?"+values.Encode(), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, resp.Data)
	svc.AssertExpectations(t)

	rec, resp = do(t, newTestRouter(svc, &mockBookingService{}, true), http.MethodGet, "/announcements?filter%5Bticket%5D=many", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"ticket": "must be an integer"}, resp.Errors)
}

func TestAnnouncementHandlerGetToReview(t *testing.T) {
	id, guestID := uuid.New(), uuid.New()
	svc := &mockAnnouncementService{}
	svc.On("GetToReview", mock.Anything, id, guestID).Return(nil, fmt.Errorf("announcement %s: %w", id, entity.ErrNotFound))

	rec, _ := do(t, newTestRouter(svc, &mockBookingService{}, false), http.MethodGet, "/announcement/"+id.String()+"/review/"+guestID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingHandlerUpdate(t *testing.T) {
	id := uuid.New()

	t.Run("my_status is required", func(t *testing.T) {
		svc := &mockBookingService{}
		rec, _ := do(t, newTestRouter(&mockAnnouncementService{}, svc, true), http.MethodPut, "/booking/"+id.String(), `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Update")
	})

	t.Run("no access", func(t *testing.T) {
		svc := &mockBookingService{}
		svc.On("Update", mock.Anything, testActor, id, mock.MatchedBy(func(req *request.UpdateBookingRequest) bool {
			return req.MyStatus != nil && !*req.MyStatus
		})).Return(nil, fmt.Errorf("update booking: %w", entity.ErrNoAccess))

		rec, _ := do(t, newTestRouter(&mockAnnouncementService{}, svc, true), http.MethodPut, "/booking/"+id.String(), `{"my_status":false}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		svc.AssertExpectations(t)
	})
}

func TestBookingHandlerList(t *testing.T) {
	t.Run("defaults to author side", func(t *testing.T) {
		svc := &mockBookingService{}
		svc.On("List", mock.Anything, testActor, request.BookingQuery{Role: "author"}).
			Return([]response.BookingResponse{{ID: "b1"}}, nil)

		rec, _ := do(t, newTestRouter(&mockAnnouncementService{}, svc, true), http.MethodGet, "/bookings", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("unknown side", func(t *testing.T) {
		svc := &mockBookingService{}
		svc.On("List", mock.Anything, testActor, request.BookingQuery{Role: "host"}).
			Return(nil, fmt.Errorf("listing role: %w", entity.ErrValueMissing))

		rec, _ := do(t, newTestRouter(&mockAnnouncementService{}, svc, true), http.MethodGet, "/bookings?filter%5Bself%5D=host", "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestBookingHandlerDelete(t *testing.T) {
	id := uuid.New()
	svc := &mockBookingService{}
	svc.On("Delete", mock.Anything, testActor, id).Return(nil)

	rec, resp := do(t, newTestRouter(&mockAnnouncementService{}, svc, true), http.MethodDelete, "/booking/"+id.String(), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Status)

	rec, _ = do(t, newTestRouter(&mockAnnouncementService{}, svc, true), http.MethodDelete, "/booking/123", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseQueries(t *testing.T) {
	movie := uuid.New()
	values := url.Values{}
	values.Set("filter[movie]", movie.String())
	values.Set("filter[date]", "2030-01-02 18:00:00")
	values.Set("filter[location]", " Hall 2 ")

	q, errs := parseAnnouncementQuery(values)
	require.Nil(t, errs)
	assert.Equal(t, movie, *q.Movie)
	assert.Equal(t, 18, q.Date.Hour())
	assert.Equal(t, "Hall 2", *q.Location)
	assert.False(t, q.Sub)

	values.Set("filter[author]", "nope")
	_, errs = parseSudoBookingQuery(values)
	assert.Contains(t, errs, "author")

	bq, errs := parseBookingQuery(url.Values{"filter[self]": {"guest"}})
	require.Nil(t, errs)
	assert.Equal(t, "guest", bq.Role)
}
