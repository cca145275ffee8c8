package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dkazlou/gearhub/internal/client/models"
	"github.com/dkazlou/gearhub/internal/client/session"
	"github.com/dkazlou/gearhub/internal/logging"
)

// DefaultTimeout bounds every request issued by the client.
const DefaultTimeout = 30 * time.Second

// imageFieldName is the multipart form field carrying uploaded image bytes.
const imageFieldName = "image"

// HTTPClient implements Client over REST/JSON. Every request is issued
// exactly once: no retry, no backoff.
type HTTPClient struct {
	baseURL string
	httpc   *http.Client
	session *session.Store
	log     logging.Logger
}

// NewHTTPClient builds a client for the given base URL. A zero timeout
// falls back to DefaultTimeout.
func NewHTTPClient(baseURL string, timeout time.Duration, sess *session.Store, log logging.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		session: sess,
		log:     log,
	}
}

// request executes one JSON request and decodes a T from a 2xx body.
//
// Classification:
//   - 2xx: decode T; a decode failure surfaces as *DecodeError.
//   - 401: the session token is cleared, then ErrUnauthorized is returned.
//   - other non-2xx: the {success,message} envelope is tried; its message
//     becomes a *ServerError, else a synthetic "HTTP Error: <code>".
//   - transport failure: ErrInvalidURL for malformed requests, otherwise
//     *ServerError{"Invalid response"}.
func request[T any](ctx context.Context, c *HTTPClient, method, path string, body any, requiresAuth bool) (*T, error) {
	u, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, path)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, u)
	}
	req.Header.Set("Content-Type", "application/json")
	c.attachAuth(req, requiresAuth)

	return do[T](ctx, c, req)
}

// attachAuth sets the bearer header only when the endpoint requires it and a
// token is actually present.
func (c *HTTPClient) attachAuth(req *http.Request, requiresAuth bool) {
	if !requiresAuth {
		return
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// do issues the request once and classifies the response.
func do[T any](ctx context.Context, c *HTTPClient, req *http.Request) (*T, error) {
	c.log.Debug(ctx, "http request", "method", req.Method, "url", req.URL.String())

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Debug(ctx, "http transport failure", "method", req.Method, "url", req.URL.String(), "error", err)
		return nil, &ServerError{Message: "Invalid response"}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ServerError{Message: "Invalid response"}
	}

	c.log.Debug(ctx, "http response",
		"method", req.Method, "url", req.URL.String(),
		"status", resp.StatusCode, "body", string(data))

	return decode[T](ctx, c, resp.StatusCode, data)
}

func decode[T any](ctx context.Context, c *HTTPClient, status int, data []byte) (*T, error) {
	switch {
	case status >= 200 && status < 300:
		var out T
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, &DecodeError{Err: err}
		}
		return &out, nil

	case status == http.StatusUnauthorized:
		// A 401 anywhere invalidates the session immediately.
		if err := c.session.ClearToken(ctx); err != nil {
			c.log.Warn(ctx, "failed to clear session token after 401", "error", err)
		}
		return nil, ErrUnauthorized

	default:
		var envelope models.ErrorEnvelope
		if err := json.Unmarshal(data, &envelope); err == nil && envelope.Message != "" {
			return nil, &ServerError{Message: envelope.Message}
		}
		return nil, &ServerError{Message: fmt.Sprintf("HTTP Error: %d", status)}
	}
}

// upload posts one file as multipart/form-data. The multipart writer picks a
// random boundary. Response classification matches request.
func upload[T any](ctx context.Context, c *HTTPClient, path, fileName string, file []byte, requiresAuth bool) (*T, error) {
	u, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, path)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(imageFieldName, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(file); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, u)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.attachAuth(req, requiresAuth)

	return do[T](ctx, c, req)
}

// ---- Client implementation ----

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	body := models.LoginRequest{Email: email, Password: password}
	resp, err := request[models.AuthResponse](ctx, c, http.MethodPost, "/auth/login", body, false)
	if err != nil {
		return nil, err
	}
	if resp.Token != "" {
		if err := c.session.SetToken(ctx, resp.Token); err != nil {
			return nil, fmt.Errorf("failed to persist session token: %w", err)
		}
	}
	return resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, email, password, username string) (*models.AuthResponse, error) {
	body := models.RegisterRequest{Email: email, Password: password, Username: username}
	resp, err := request[models.AuthResponse](ctx, c, http.MethodPost, "/auth/register", body, false)
	if err != nil {
		return nil, err
	}
	if resp.Token != "" {
		if err := c.session.SetToken(ctx, resp.Token); err != nil {
			return nil, fmt.Errorf("failed to persist session token: %w", err)
		}
	}
	return resp, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.session.ClearToken(ctx)
}

func (c *HTTPClient) GetVehicles(ctx context.Context) ([]models.BackendVehicle, error) {
	resp, err := request[models.VehiclesEnvelope](ctx, c, http.MethodGet, "/cars", nil, false)
	if err != nil {
		return nil, err
	}
	return resp.Cars, nil
}

// CreateVehicle deliberately sends no auth header: the backend currently
// accepts unauthenticated creates, and the client mirrors the observed
// policy.
func (c *HTTPClient) CreateVehicle(ctx context.Context, reqBody models.VehicleRequest) (*models.BackendVehicle, error) {
	resp, err := request[models.VehicleEnvelope](ctx, c, http.MethodPost, "/cars", reqBody, false)
	if err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, &DecodeError{Err: fmt.Errorf("missing vehicle data in response")}
	}
	return resp.Data, nil
}

func (c *HTTPClient) UpdateVehicle(ctx context.Context, id int64, reqBody models.VehicleRequest) (*models.BackendVehicle, error) {
	path := fmt.Sprintf("/cars/%d", id)
	resp, err := request[models.VehicleEnvelope](ctx, c, http.MethodPut, path, reqBody, true)
	if err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, &DecodeError{Err: fmt.Errorf("missing vehicle data in response")}
	}
	return resp.Data, nil
}

func (c *HTTPClient) DeleteVehicle(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/cars/%d", id)
	_, err := request[models.ErrorEnvelope](ctx, c, http.MethodDelete, path, nil, true)
	return err
}

func (c *HTTPClient) UploadVehicleImage(ctx context.Context, id int64, image []byte) (string, error) {
	path := fmt.Sprintf("/cars/%d/image", id)
	fileName := fmt.Sprintf("car_%d.jpg", id)
	resp, err := upload[models.UploadResponse](ctx, c, path, fileName, image, true)
	if err != nil {
		return "", err
	}
	return resp.ImageURL, nil
}

func (c *HTTPClient) GetMeetups(ctx context.Context) ([]models.Meetup, error) {
	resp, err := request[models.MeetupsEnvelope](ctx, c, http.MethodGet, "/meets", nil, false)
	if err != nil {
		return nil, err
	}
	return resp.Meets, nil
}

func (c *HTTPClient) HealthCheck(ctx context.Context) error {
	resp, err := request[models.HealthResponse](ctx, c, http.MethodGet, "/health", nil, false)
	if err != nil {
		return err
	}
	if !strings.EqualFold(resp.Status, "ok") {
		return &ServerError{Message: fmt.Sprintf("unexpected health status: %s", resp.Status)}
	}
	return nil
}
