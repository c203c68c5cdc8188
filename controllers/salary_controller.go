package controllers

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"accounts/constants"
	"accounts/dto"
	"accounts/errors"
	"accounts/middleware"
	"accounts/response"
	"accounts/services"
	"accounts/services/notification"

	"github.com/gin-gonic/gin"
)

const (
	accountsCurrentPath = constants.PathAccounts + "/current"
	xlsxContentType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// SlipDownloader mở file PDF của phiếu lương trên backend
type SlipDownloader interface {
	DownloadSlip(ctx context.Context, token, file string) (io.ReadCloser, string, error)
}

type SalaryController struct {
	Base
	dashboard  *services.SalaryDashboard
	downloader SlipDownloader
	now        func() time.Time
}

func NewSalaryController(base Base, dashboard *services.SalaryDashboard, downloader SlipDownloader) SalaryController {
	return SalaryController{Base: base, dashboard: dashboard, downloader: downloader, now: time.Now}
}

// Mount tải song song nhân viên và phiếu lương rồi hiển thị bảng
func (s SalaryController) Mount(c *gin.Context) {
	session := middleware.CurrentSession(c)
	screen, err := s.dashboard.Load(c.Request.Context(), middleware.SessionID(c), session.Token)
	if err != nil {
		if errors.IsUnauthorized(err) {
			s.expire(c, err)
			return
		}
		if isStorageError(err) {
			s.storageFailed(c, err)
			return
		}
		message := errors.Message(err, "Failed to fetch data")
		s.notify(c, notification.Error(message))
		s.renderPage(c, http.StatusBadGateway, nil, &dto.SalarySlipInput{}, message)
		return
	}

	s.renderPage(c, http.StatusOK, screen, &dto.SalarySlipInput{}, "")
}

// Current hiển thị lại bảng từ trạng thái màn hình
func (s SalaryController) Current(c *gin.Context) {
	screen, found, err := s.dashboard.Current(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		s.storageFailed(c, err)
		return
	}
	if !found {
		response.Redirect(c, constants.PathAccounts)
		return
	}
	s.renderPage(c, http.StatusOK, screen, &dto.SalarySlipInput{}, "")
}

func (s SalaryController) renderPage(c *gin.Context, status int, screen *services.SalaryScreen, form *dto.SalarySlipInput, loadError string) {
	data := gin.H{
		"Title":      "Salary Slips",
		"Months":     constants.Months,
		"Earnings":   dto.EarningFields,
		"Deductions": dto.DeductionFields,
		"MaxDays":    constants.MaxDaysWorked,
		"Form":       form,
		"Error":      loadError,
	}
	if screen != nil {
		data["Employees"] = screen.Employees
		data["Slips"] = screen.Slips
	}
	s.render(c, status, "accounts", data)
}

// Generate tạo phiếu lương từ form và thêm vào bảng
func (s SalaryController) Generate(c *gin.Context) {
	var input dto.SalarySlipInput
	_ = c.ShouldBind(&input)

	ctx := c.Request.Context()
	sid := middleware.SessionID(c)
	session := middleware.CurrentSession(c)

	slip, err := s.dashboard.Generate(ctx, sid, session.Token, &input)
	if err != nil {
		if errors.IsUnauthorized(err) {
			s.expire(c, err)
			return
		}
		if isStorageError(err) {
			s.storageFailed(c, err)
			return
		}
		s.notify(c, notification.Error(errors.Message(err, "Failed to generate salary slip")))

		screen, found, loadErr := s.dashboard.Current(ctx, sid)
		if loadErr != nil {
			s.storageFailed(c, loadErr)
			return
		}
		if !found {
			response.Redirect(c, constants.PathAccounts)
			return
		}
		s.renderPage(c, failureStatus(err), screen, &input, "")
		return
	}

	s.redirect(c, accountsCurrentPath, notification.Success("Salary slip generated for "+string(slip.Employee)+" - "+slip.Month))
}

// Delete chỉ xoá khi form gửi kèm confirmed=yes từ hộp thoại xác nhận
func (s SalaryController) Delete(c *gin.Context) {
	confirmed := c.PostForm("confirmed") == "yes"

	session := middleware.CurrentSession(c)
	message, err := s.dashboard.Delete(c.Request.Context(), middleware.SessionID(c), session.Token, c.Param("id"), confirmed)
	if err != nil {
		switch {
		case errors.IsUnauthorized(err):
			s.expire(c, err)
		case isStorageError(err):
			s.storageFailed(c, err)
		case errors.HasCode(err, errors.ErrCodeConfirmationRequired):
			response.Redirect(c, accountsCurrentPath)
		default:
			s.redirect(c, accountsCurrentPath, notification.Error(errors.Message(err, "Failed to delete")))
		}
		return
	}

	s.redirect(c, accountsCurrentPath, notification.Success(message))
}

func (s SalaryController) Export(c *gin.Context) {
	session := middleware.CurrentSession(c)
	export, err := s.dashboard.Export(c.Request.Context(), middleware.SessionID(c), session.Token, s.now())
	if err != nil {
		switch {
		case errors.IsUnauthorized(err):
			s.expire(c, err)
		case errors.HasCode(err, errors.ErrCodeNothingToExport):
			s.redirect(c, accountsCurrentPath, notification.Warning(errors.Message(err, "")))
		case isStorageError(err):
			s.storageFailed(c, err)
		default:
			s.redirect(c, accountsCurrentPath, notification.Error("Failed to export salary slips: "+errors.Message(err, "")))
		}
		return
	}

	s.notify(c, notification.Success("Salary slips exported successfully"))
	response.Attachment(c, export.FileName, xlsxContentType, export.Content)
}

// Download chuyển tiếp file PDF từ backend kèm token của phiên
func (s SalaryController) Download(c *gin.Context) {
	file := c.Param("file")
	ctx := c.Request.Context()
	session := middleware.CurrentSession(c)

	fileName := file
	if slip, found, err := s.dashboard.FindSlip(ctx, middleware.SessionID(c), file); err == nil && found {
		fileName = slip.DownloadName()
	}

	body, contentType, err := s.downloader.DownloadSlip(ctx, session.Token, file)
	if err != nil {
		if errors.IsUnauthorized(err) {
			s.expire(c, err)
			return
		}
		s.redirect(c, accountsCurrentPath, notification.Error(errors.Message(err, "Failed to download salary slip")))
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, -1, contentType, body, map[string]string{
		"Content-Disposition": "attachment; filename=" + strconv.Quote(fileName),
	})
}
