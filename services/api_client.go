package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"accounts/dto"
	"accounts/errors"
	"accounts/models"
	"accounts/services/logger"

	"github.com/goccy/go-json"
)

const (
	msgLoginFailed        = "Login failed. Please check your credentials and try again."
	msgSignupFailed       = "Something went wrong. Please try again."
	msgUnexpectedResponse = "Unexpected response. Please try again."
	msgInvalidUserData    = "Invalid user data in API response"

	msgEmployeesUnauthorized = "Unauthorized access. Please log in again."
	msgSlipsUnauthorized     = "Unauthorized access to salary slips"

	msgEmployeesNotArray = "Users data is not an array"
	msgSlipsNotArray     = "Salary slips data is not an array"
	msgFetchEmployees    = "Failed to fetch employees"
	msgFetchSlips        = "Failed to fetch salary slips"
	msgSaveEmployee      = "Failed to save employee"
	msgDeleteEmployee    = "Failed to delete employee"
	msgGenerateSlip      = "Failed to generate salary slip"
	msgDeleteSlip        = "Failed to delete"
	msgSlipDeleted       = "Salary slip deleted"
	msgDownloadSlip      = "Failed to download salary slip"
)

type BackendClientOptions struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     logger.Logger
}

// BackendClient gọi REST API của hệ thống quản lý lương
type BackendClient struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
}

func NewBackendClient(opts BackendClientOptions) *BackendClient {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewDefaultLogger(logger.InfoLevel)
	}
	return &BackendClient{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    httpClient,
		log:     log,
	}
}

// do gửi request; token rỗng nghĩa là không gắn header Authorization
func (c *BackendClient) do(ctx context.Context, method, path, token string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("%s %s failed: %v", method, path, err)
		return nil, err
	}
	c.log.Debug("%s %s -> %d (%s)", method, path, resp.StatusCode, time.Since(start))
	return resp, nil
}

// call gửi request có token và đọc toàn bộ body.
// 401/403 luôn được chuyển thành ErrCodeUnauthorized với unauthorizedMsg.
func (c *BackendClient) call(ctx context.Context, method, path, token string, payload interface{}, unauthorizedMsg, fallback string) (int, []byte, error) {
	if token == "" {
		return 0, nil, errors.ErrNoSession
	}

	resp, err := c.do(ctx, method, path, token, payload)
	if err != nil {
		return 0, nil, errors.NewAppError(errors.ErrCodeNetwork, fallback, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, errors.NewAppError(errors.ErrCodeNetwork, fallback, err)
	}

	if isUnauthorizedStatus(resp.StatusCode) {
		return resp.StatusCode, body, errors.NewAppError(errors.ErrCodeUnauthorized, unauthorizedMsg, nil).WithStatus(resp.StatusCode)
	}
	if !isSuccessStatus(resp.StatusCode) {
		msg := errorMessage(body, fallback)
		return resp.StatusCode, body, errors.NewAppError(errors.ErrCodeBackend, msg, nil).WithStatus(resp.StatusCode)
	}
	return resp.StatusCode, body, nil
}

func isSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}

func isUnauthorizedStatus(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

// errorMessage lấy trường error của body, nếu không có thì fallback
func errorMessage(body []byte, fallback string) string {
	var msg dto.APIMessage
	if err := json.Unmarshal(body, &msg); err == nil && msg.Error != "" {
		return msg.Error
	}
	return fallback
}

func isJSONArray(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func (c *BackendClient) Login(ctx context.Context, in dto.LoginInput) (*dto.AuthResponse, error) {
	return c.authenticate(ctx, "/auth/login", in, http.StatusOK, msgLoginFailed)
}

func (c *BackendClient) Signup(ctx context.Context, in dto.SignupInput) (*dto.AuthResponse, error) {
	return c.authenticate(ctx, "/user/signup", in, http.StatusCreated, msgSignupFailed)
}

// authenticate xử lý chung cho đăng nhập và đăng ký.
// 401 ở đây là sai thông tin đăng nhập, không phải phiên hết hạn.
func (c *BackendClient) authenticate(ctx context.Context, path string, payload interface{}, expect int, fallback string) (*dto.AuthResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, path, "", payload)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeNetwork, fallback, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeNetwork, fallback, err)
	}

	if !isSuccessStatus(resp.StatusCode) {
		var msg dto.APIMessage
		text := fallback
		if err := json.Unmarshal(body, &msg); err == nil && msg.Message != "" {
			text = msg.Message
		}
		return nil, errors.NewAppError(errors.ErrCodeBackend, text, nil).WithStatus(resp.StatusCode)
	}
	if resp.StatusCode != expect {
		return nil, errors.NewAppError(errors.ErrCodeInvalidResponse, msgUnexpectedResponse, nil).WithStatus(resp.StatusCode)
	}

	var out dto.AuthResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidResponse, msgInvalidUserData, err)
	}
	if out.User == nil || out.User.ID == "" || out.User.Username == "" || out.User.Role == "" {
		return nil, errors.NewAppError(errors.ErrCodeInvalidResponse, msgInvalidUserData, nil)
	}
	return &out, nil
}

func (c *BackendClient) ListEmployees(ctx context.Context, token string) ([]models.Employee, error) {
	_, body, err := c.call(ctx, http.MethodGet, "/api/employees", token, nil, msgEmployeesUnauthorized, msgFetchEmployees)
	if err != nil {
		return nil, err
	}
	if !isJSONArray(body) {
		return nil, errors.NewAppError(errors.ErrCodeInvalidResponse, errorMessage(body, msgEmployeesNotArray), nil)
	}

	employees := []models.Employee{}
	if err := json.Unmarshal(body, &employees); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidResponse, msgFetchEmployees, err)
	}
	return employees, nil
}

func (c *BackendClient) AddEmployee(ctx context.Context, token string, payload dto.EmployeePayload) error {
	return c.saveEmployee(ctx, http.MethodPost, "/api/add-employees", token, payload)
}

func (c *BackendClient) EditEmployee(ctx context.Context, token, id string, payload dto.EmployeePayload) error {
	return c.saveEmployee(ctx, http.MethodPut, "/api/edit-employees/"+url.PathEscape(id), token, payload)
}

// saveEmployee chỉ coi là thành công khi body có data khác null
func (c *BackendClient) saveEmployee(ctx context.Context, method, path, token string, payload dto.EmployeePayload) error {
	status, body, err := c.call(ctx, method, path, token, payload, msgEmployeesUnauthorized, msgSaveEmployee)
	if err != nil {
		return err
	}

	var result dto.MutationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidResponse, msgSaveEmployee, err).WithStatus(status)
	}
	if !result.HasData() {
		text := msgSaveEmployee
		if result.Error != "" {
			text = result.Error
		}
		return errors.NewAppError(errors.ErrCodeBackend, text, nil).WithStatus(status)
	}
	return nil
}

func (c *BackendClient) DeleteEmployee(ctx context.Context, token, id string) error {
	_, _, err := c.call(ctx, http.MethodDelete, "/api/delete-employees/"+url.PathEscape(id), token, nil, msgEmployeesUnauthorized, msgDeleteEmployee)
	return err
}

func (c *BackendClient) ListSalarySlips(ctx context.Context, token string) ([]models.SalarySlip, error) {
	_, body, err := c.call(ctx, http.MethodGet, "/api/salary-slips", token, nil, msgSlipsUnauthorized, msgFetchSlips)
	if err != nil {
		return nil, err
	}
	if !isJSONArray(body) {
		return nil, errors.NewAppError(errors.ErrCodeInvalidResponse, errorMessage(body, msgSlipsNotArray), nil)
	}

	slips := []models.SalarySlip{}
	if err := json.Unmarshal(body, &slips); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidResponse, msgFetchSlips, err)
	}
	return slips, nil
}

func (c *BackendClient) CreateSalarySlip(ctx context.Context, token string, payload dto.SalarySlipPayload) (*dto.SalarySlipCreated, error) {
	_, body, err := c.call(ctx, http.MethodPost, "/api/salary-slip", token, payload, msgSlipsUnauthorized, msgGenerateSlip)
	if err != nil {
		return nil, err
	}

	var created dto.SalarySlipCreated
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidResponse, msgGenerateSlip, err)
	}
	return &created, nil
}

// DeleteSalarySlip trả về thông báo của backend khi xoá thành công
func (c *BackendClient) DeleteSalarySlip(ctx context.Context, token, id string) (string, error) {
	_, body, err := c.call(ctx, http.MethodDelete, "/api/salary-slips/"+url.PathEscape(id), token, nil, msgSlipsUnauthorized, msgDeleteSlip)
	if err != nil {
		return "", err
	}

	var msg dto.APIMessage
	if err := json.Unmarshal(body, &msg); err == nil && msg.Message != "" {
		return msg.Message, nil
	}
	return msgSlipDeleted, nil
}

// DownloadSlip mở luồng file PDF của phiếu lương; người gọi phải Close
func (c *BackendClient) DownloadSlip(ctx context.Context, token, file string) (io.ReadCloser, string, error) {
	if token == "" {
		return nil, "", errors.ErrNoSession
	}

	resp, err := c.do(ctx, http.MethodGet, "/download/"+url.PathEscape(file), token, nil)
	if err != nil {
		return nil, "", errors.NewAppError(errors.ErrCodeNetwork, msgDownloadSlip, err)
	}
	if isUnauthorizedStatus(resp.StatusCode) {
		resp.Body.Close()
		return nil, "", errors.NewAppError(errors.ErrCodeUnauthorized, msgSlipsUnauthorized, nil).WithStatus(resp.StatusCode)
	}
	if !isSuccessStatus(resp.StatusCode) {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, "", errors.NewAppError(errors.ErrCodeBackend, errorMessage(body, msgDownloadSlip), nil).WithStatus(resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}
	return resp.Body, contentType, nil
}

// Ping giữ backend luôn thức; chỉ lỗi mạng hoặc 5xx mới coi là thất bại
func (c *BackendClient) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/", "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return nil
}
