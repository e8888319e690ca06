package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
)

// Integration tests are opt-in: set DB_DSN_TEST=1 and DB_DSN to run them
// against a real Postgres.
func setupTestServer(t *testing.T) (*gin.Engine, *App) {
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	gin.SetMode(gin.TestMode)
	cfg := &Config{
		DBDSN:            os.Getenv("DB_DSN"),
		AutoMigrate:      true,
		JWTSecret:        []byte("itest-access-secret"),
		JWTRefreshSecret: []byte("itest-refresh-secret"),
		AccessTokenTTL:   time.Minute,
		RefreshTokenTTL:  time.Hour,
		UploadBaseDir:    t.TempDir(),
		ThumbnailWidth:   480,
	}
	db, err := InitDB(cfg)
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	app := NewApp(cfg, db)
	r := gin.New()
	app.SetupRoutes(r)
	return r, app
}

func request(r http.Handler, method, path string, body io.Reader, token, contentType string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v body=%s", err, rec.Body.String())
	}
	return body
}

func TestFullFlow(t *testing.T) {
	r, _ := setupTestServer(t)

	email := fmt.Sprintf("flow-%d@example.com", time.Now().UnixNano())

	// 1. Register
	regBody, _ := json.Marshal(map[string]string{"email": email, "password": "secret1", "name": "Flow Tester"})
	resp := request(r, http.MethodPost, "/api/auth/register", bytes.NewBuffer(regBody), "", "application/json")
	if resp.Code != http.StatusCreated {
		t.Fatalf("register failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 2. Login
	loginBody, _ := json.Marshal(map[string]string{"email": email, "password": "secret1"})
	resp = request(r, http.MethodPost, "/api/auth/login", bytes.NewBuffer(loginBody), "", "application/json")
	if resp.Code != http.StatusOK {
		t.Fatalf("login failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	data, _ := decodeEnvelope(t, resp)["data"].(map[string]any)
	token, _ := data["token"].(string)
	refreshToken, _ := data["refreshToken"].(string)
	if token == "" || refreshToken == "" {
		t.Fatalf("missing tokens in login response: %s", resp.Body.String())
	}

	// 3. Me
	resp = request(r, http.MethodGet, "/api/auth/me", nil, token, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("me failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 4. Upload a photo (multipart with a real image)
	imgPath := filepath.Join(t.TempDir(), "shot.jpg")
	if err := imaging.Save(imaging.New(800, 600, color.NRGBA{R: 10, G: 20, B: 30, A: 255}), imgPath); err != nil {
		t.Fatalf("write test image: %v", err)
	}
	imgData, _ := os.ReadFile(imgPath)
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	part, _ := mw.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="image"; filename="shot.jpg"`},
		"Content-Type":        {"image/jpeg"},
	})
	_, _ = part.Write(imgData)
	_ = mw.WriteField("title", "Test Shot")
	_ = mw.WriteField("category", "landscape")
	_ = mw.WriteField("tags", "test,flow")
	_ = mw.Close()
	resp = request(r, http.MethodPost, "/api/photos/upload", buf, token, mw.FormDataContentType())
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	upData, _ := decodeEnvelope(t, resp)["data"].(map[string]any)
	if upData["photoId"] == nil || upData["url"] == "" {
		t.Fatalf("upload response missing photoId/url: %s", resp.Body.String())
	}

	// 5. List photos
	resp = request(r, http.MethodGet, "/api/photos", nil, token, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("list photos failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 6. Create a gallery delivered to self
	meResp := request(r, http.MethodGet, "/api/auth/me", nil, token, "")
	meData, _ := decodeEnvelope(t, meResp)["data"].(map[string]any)
	myID := meData["id"]
	galBody, _ := json.Marshal(map[string]any{"title": "Flow Gallery", "clientId": myID})
	resp = request(r, http.MethodPost, "/api/galleries", bytes.NewBuffer(galBody), token, "application/json")
	if resp.Code != http.StatusCreated {
		t.Fatalf("create gallery failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 7. List galleries
	resp = request(r, http.MethodGet, "/api/galleries", nil, token, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("list galleries failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 8. Refresh rotates the session
	refBody, _ := json.Marshal(map[string]string{"refreshToken": refreshToken})
	resp = request(r, http.MethodPost, "/api/auth/refresh", bytes.NewBuffer(refBody), "", "application/json")
	if resp.Code != http.StatusOK {
		t.Fatalf("refresh failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	refData, _ := decodeEnvelope(t, resp)["data"].(map[string]any)
	newRefresh, _ := refData["refreshToken"].(string)
	if newRefresh == "" || newRefresh == refreshToken {
		t.Fatalf("refresh did not rotate the token")
	}

	// 9. The old refresh token is now revoked even though it is unexpired
	resp = request(r, http.MethodPost, "/api/auth/refresh", bytes.NewBuffer(refBody), "", "application/json")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for rotated refresh token, got %d body=%s", resp.Code, resp.Body.String())
	}

	// 10. Logout revokes the current session
	outBody, _ := json.Marshal(map[string]string{"refreshToken": newRefresh})
	resp = request(r, http.MethodPost, "/api/auth/logout", bytes.NewBuffer(outBody), "", "application/json")
	if resp.Code != http.StatusOK {
		t.Fatalf("logout failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = request(r, http.MethodPost, "/api/auth/refresh", bytes.NewBuffer(outBody), "", "application/json")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 after logout, got %d body=%s", resp.Code, resp.Body.String())
	}

	// 11. Protected route without a token
	resp = request(r, http.MethodGet, "/api/auth/me", nil, "", "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}
}
