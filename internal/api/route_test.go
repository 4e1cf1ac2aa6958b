package api

import (
	"Mapdrop/internal/api/config"
	"Mapdrop/internal/api/dto"
	"Mapdrop/internal/api/handler"
	"Mapdrop/internal/pkg/storage"
	"Mapdrop/internal/service"
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type fakePostService struct {
	created *dto.PostDTO
	latest  *dto.PostDTO
	err     error
}

func (s *fakePostService) CreatePost(ctx context.Context, req *dto.CreatePostDTO) (*dto.PostDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.created, nil
}

func (s *fakePostService) GetPost(ctx context.Context, id string) (*dto.PostDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.created, nil
}

func (s *fakePostService) UpdatePost(ctx context.Context, id string, patch *dto.UpdatePostDTO) (*dto.PostDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.created, nil
}

func (s *fakePostService) FindNear(ctx context.Context, lng, lat, radiusMeters float64, limit int64) ([]*dto.PostDTO, error) {
	return nil, s.err
}

func (s *fakePostService) FindRecent(ctx context.Context, now time.Time, limit int64) ([]*dto.PostDTO, error) {
	return nil, s.err
}

func (s *fakePostService) FindLatest(ctx context.Context, deviceID string) (*dto.PostDTO, error) {
	return s.latest, s.err
}

func (s *fakePostService) FindHistory(ctx context.Context, deviceID string, limit int64) ([]*dto.PostDTO, error) {
	return nil, s.err
}

type fakeMediaService struct {
	res *dto.UploadResultDTO
	err error
}

func (s *fakeMediaService) Store(ctx context.Context, r io.ReadSeeker, size int64, declaredMime, filename string) (*dto.UploadResultDTO, error) {
	return s.res, s.err
}

func newTestRouter(t *testing.T, postSvc service.PostService, mediaSvc service.MediaService, maxUpload int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewLocalStore(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Storage: config.StorageConfig{PublicBase: "/uploads"},
		Upload:  config.UploadConfig{MaxSizeBytes: maxUpload},
	}

	group := &HandlersGroup{
		PostHandler:  handler.NewPostHandler(postSvc),
		MediaHandler: handler.NewMediaHandler(mediaSvc, maxUpload),
	}
	return SetupRouter(group, cfg, store)
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t, &fakePostService{}, &fakeMediaService{}, 1<<20)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestCreatePostReturns201(t *testing.T) {
	created := &dto.PostDTO{ID: "656f00000000000000000001", CreatedAt: time.Now()}
	r := newTestRouter(t, &fakePostService{created: created}, &fakeMediaService{}, 1<<20)

	body := `{"lng":-122.42,"lat":37.77,"mediaType":"img","url":"/uploads/1-a.jpg"}`
	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var res map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res["ok"] != true || res["id"] != created.ID {
		t.Errorf("body = %v", res)
	}
}

func TestCreatePostConflictReturns409(t *testing.T) {
	r := newTestRouter(t, &fakePostService{err: service.ErrIdempotencyKeyUsed}, &fakeMediaService{}, 1<<20)

	body := `{"lng":1,"lat":2,"mediaType":"img","url":"/uploads/1-a.jpg","idempotencyKey":"k"}`
	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "idempotency_conflict") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestFindNearRequiresCoordinates(t *testing.T) {
	r := newTestRouter(t, &fakePostService{}, &fakeMediaService{}, 1<<20)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts/near?lat=37.77", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestFindLatestNoneIsNull(t *testing.T) {
	r := newTestRouter(t, &fakePostService{latest: nil}, &fakeMediaService{}, 1<<20)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts/latest", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "null" {
		t.Errorf("body = %q, want null", w.Body.String())
	}
}

func TestUpdateAliasRoute(t *testing.T) {
	updated := &dto.PostDTO{ID: "656f00000000000000000002"}
	r := newTestRouter(t, &fakePostService{created: updated}, &fakeMediaService{}, 1<<20)

	body := `{"comment":"hi"}`
	req := httptest.NewRequest(http.MethodPost, "/api/posts/656f00000000000000000002/update", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	_ = mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestUploadWithoutFileIs400(t *testing.T) {
	r := newTestRouter(t, &fakePostService{}, &fakeMediaService{}, 1<<20)

	buf, contentType := multipartBody(t, "other", "x.png", []byte("data"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", buf)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestUploadTooLargeIs413(t *testing.T) {
	r := newTestRouter(t, &fakePostService{}, &fakeMediaService{}, 8)

	buf, contentType := multipartBody(t, "file", "x.png", []byte("way more than eight bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", buf)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestUploadSuccessIs201(t *testing.T) {
	res := &dto.UploadResultDTO{Ok: true, URL: "/uploads/1-a.png", Mime: "image/png"}
	r := newTestRouter(t, &fakePostService{}, &fakeMediaService{res: res}, 1<<20)

	buf, contentType := multipartBody(t, "file", "a.png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", buf)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"url":"/uploads/1-a.png"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}
