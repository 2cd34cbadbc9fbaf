package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"payroll-api/internal/domain"
	"payroll-api/internal/payroll"
	"payroll-api/internal/service"
	"payroll-api/internal/transport/http/middleware"
	"payroll-api/internal/transport/http/response"
)

type SalaryHandler struct {
	salaries *service.SalaryService
}

func NewSalaryHandler(salaries *service.SalaryService) *SalaryHandler {
	return &SalaryHandler{salaries: salaries}
}

// userRef is the payee/approver identity embedded in record views. Only
// identity fields; never the salary or password hash of the other party.
type userRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type recordView struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	User         *userRef   `json:"user,omitempty"`
	GrossAmount  float64    `json:"grossAmount"`
	IncomeTax    float64    `json:"incomeTax"`
	MilitaryLevy float64    `json:"militaryLevy"`
	NetAmount    float64    `json:"netAmount"`
	Comment      string     `json:"comment,omitempty"`
	AccrualDate  time.Time  `json:"accrualDate"`
	Status       string     `json:"status"`
	ApprovedBy   *userRef   `json:"approvedBy,omitempty"`
	ApprovedAt   *time.Time `json:"approvedAt,omitempty"`
}

func viewOf(r *domain.SalaryRecord) recordView {
	v := recordView{
		ID:           r.ID,
		UserID:       r.UserID,
		GrossAmount:  r.GrossAmount,
		IncomeTax:    r.IncomeTax,
		MilitaryLevy: r.MilitaryLevy,
		NetAmount:    r.NetAmount,
		Comment:      r.Comment,
		AccrualDate:  r.AccrualDate,
		Status:       string(r.Status),
		ApprovedAt:   r.ApprovedAt,
	}
	if r.User != nil {
		v.User = &userRef{ID: r.User.ID, Name: r.User.Name, Email: r.User.Email}
	}
	if r.Approver != nil {
		v.ApprovedBy = &userRef{ID: r.Approver.ID, Name: r.Approver.Name}
	}
	return v
}

func viewsOf(recs []domain.SalaryRecord) []recordView {
	out := make([]recordView, 0, len(recs))
	for i := range recs {
		out = append(out, viewOf(&recs[i]))
	}
	return out
}

// History lists one payee's accruals. Privileged roles may read anyone;
// a plain user only their own.
func (h *SalaryHandler) History(c *gin.Context) {
	userID := c.Param("userId")
	if !canReadPayee(c, userID) {
		response.Err(c, http.StatusForbidden, "forbidden")
		return
	}
	status, period, ok := parseFilters(c)
	if !ok {
		return
	}
	recs, err := h.salaries.History(c.Request.Context(), userID, status, period)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewsOf(recs))
}

// All is the manager view across every payee.
func (h *SalaryHandler) All(c *gin.Context) {
	status, period, ok := parseFilters(c)
	if !ok {
		return
	}
	recs, err := h.salaries.ListAll(c.Request.Context(), status, period)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewsOf(recs))
}

func (h *SalaryHandler) Accrue(c *gin.Context) {
	var in struct {
		UserID      string  `json:"userId" binding:"required"`
		GrossAmount float64 `json:"grossAmount" binding:"required"`
		Comment     string  `json:"comment"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	rec, err := h.salaries.Accrue(c.Request.Context(), service.AccrueInput{
		UserID:      in.UserID,
		GrossAmount: in.GrossAmount,
		Comment:     in.Comment,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, viewOf(rec))
}

func (h *SalaryHandler) Approve(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		response.Err(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	rec, err := h.salaries.Approve(c.Request.Context(), c.Param("id"), claims.UID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(rec))
}

// Average returns the mean net over approved records; 0 with no records.
func (h *SalaryHandler) Average(c *gin.Context) {
	userID := c.Param("userId")
	if !canReadPayee(c, userID) {
		response.Err(c, http.StatusForbidden, "forbidden")
		return
	}
	avg, err := h.salaries.AverageNet(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": userID, "averageNet": avg})
}

// Preview computes the deduction split for a gross amount. Advisory only:
// the binding breakdown is the one stored when the accrual is created.
func (h *SalaryHandler) Preview(c *gin.Context) {
	gross, _ := strconv.ParseFloat(c.Query("gross"), 64)
	c.JSON(http.StatusOK, payroll.Deductions(gross))
}

func canReadPayee(c *gin.Context, payeeID string) bool {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return false
	}
	if domain.Role(claims.Role) == domain.RoleUser {
		return claims.UID == payeeID
	}
	return true
}

func parseFilters(c *gin.Context) (domain.Status, domain.Period, bool) {
	var status domain.Status
	switch s := c.Query("status"); s {
	case "", "all":
	case string(domain.StatusPending):
		status = domain.StatusPending
	case string(domain.StatusApproved):
		status = domain.StatusApproved
	default:
		response.Err(c, http.StatusBadRequest, "unknown status filter")
		return "", "", false
	}

	var period domain.Period
	switch p := c.Query("period"); p {
	case "", "all":
	case string(domain.PeriodWeek), string(domain.PeriodMonth), string(domain.PeriodQuarter):
		period = domain.Period(p)
	default:
		response.Err(c, http.StatusBadRequest, "unknown period filter")
		return "", "", false
	}
	return status, period, true
}
