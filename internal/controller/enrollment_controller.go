package controller

import (
	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/service"
	"edu_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	Service *service.EnrollmentService
}

func NewEnrollmentController(svc *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{Service: svc}
}

type enrollRequest struct {
	PathID    string `json:"pathId" binding:"required"`
	StudentID string `json:"studentId,omitempty"`
}

type enrollmentStatusRequest struct {
	Status model.EnrollmentStatus `json:"status" binding:"required,enum"`
}

type paymentRequest struct {
	PaymentStatus model.PaymentStatus `json:"paymentStatus" binding:"required,enum"`
}

// @Summary 报名学习路径
// @Description 讲师和管理员可以通过 studentId 代学生报名
// @Tags 报名
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body enrollRequest true "报名信息"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Failure 409 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	v, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req enrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	studentID := v.UserID
	if req.StudentID != "" && v.CanAuthor() {
		studentID = req.StudentID
	}

	e, err := c.Service.Enroll(ctx.Request.Context(), v, studentID, req.PathID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, e)
}

// @Summary 报名列表
// @Description 学生看到自己的报名；讲师传 pathId 时列出该路径的全部报名
// @Tags 报名
// @Produce json
// @Security BearerAuth
// @Param pathId query string false "路径ID"
// @Param status query string false "报名状态"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=model.PageResult[model.Enrollment]}
// @Router /api/enrollments [get]
func (c *EnrollmentController) List(ctx *gin.Context) {
	v, ok := requireUser(ctx)
	if !ok {
		return
	}
	p, ok := bindPagination(ctx)
	if !ok {
		return
	}
	status := model.EnrollmentStatus(ctx.Query("status"))
	if status != "" && !status.IsValid() {
		util.BadRequest(ctx, "unknown enrollment status")
		return
	}

	page, err := c.Service.List(ctx.Request.Context(), v, ctx.Query("pathId"), status, p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// @Summary 获取报名
// @Tags 报名
// @Produce json
// @Security BearerAuth
// @Param id path string true "报名ID"
// @Success 200 {object} util.Response{data=model.Enrollment}
// @Router /api/enrollments/{id} [get]
func (c *EnrollmentController) Get(ctx *gin.Context) {
	v, ok := requireUser(ctx)
	if !ok {
		return
	}

	e, err := c.Service.Get(ctx.Request.Context(), v, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, e)
}

// @Summary 修改报名状态
// @Description 学生只能退课；激活要求付款已结清
// @Tags 报名
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "报名ID"
// @Param body body enrollmentStatusRequest true "状态"
// @Success 200 {object} util.Response{data=model.Enrollment}
// @Failure 409 {object} util.Response
// @Router /api/enrollments/{id}/status [put]
func (c *EnrollmentController) UpdateStatus(ctx *gin.Context) {
	v, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req enrollmentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	e, err := c.Service.UpdateStatus(ctx.Request.Context(), v, ctx.Param("id"), req.Status)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, e)
}

// @Summary 更新付款状态
// @Tags 报名
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "报名ID"
// @Param body body paymentRequest true "付款状态"
// @Success 200 {object} util.Response{data=model.Enrollment}
// @Router /api/enrollments/{id}/payment [put]
func (c *EnrollmentController) UpdatePayment(ctx *gin.Context) {
	var req paymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	e, err := c.Service.UpdatePayment(ctx.Request.Context(), ctx.Param("id"), req.PaymentStatus)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, e)
}

// @Summary 颁发证书
// @Description 按认证的通过条件检查，未满足时返回缺失项
// @Tags 报名
// @Produce json
// @Security BearerAuth
// @Param id path string true "报名ID"
// @Success 200 {object} util.Response{data=model.Enrollment}
// @Failure 422 {object} util.Response
// @Router /api/enrollments/{id}/certificate [post]
func (c *EnrollmentController) IssueCertificate(ctx *gin.Context) {
	e, err := c.Service.IssueCertificate(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, e)
}
