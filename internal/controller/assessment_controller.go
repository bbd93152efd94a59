package controller

import (
	"edu_platform_backend/internal/service"
	"edu_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AssessmentController 评估提交与批改
type AssessmentController struct {
	Service *service.AssessmentService
}

func NewAssessmentController(svc *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Service: svc}
}

// @Summary 提交评估
// @Description 超过最大尝试次数或截止时间后拒绝；有量表时按 rubricScores 求和
// @Tags 评估
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "评估ID"
// @Param body body service.ResultSubmission true "提交内容"
// @Success 201 {object} util.Response{data=model.AssessmentResult}
// @Failure 422 {object} util.Response
// @Router /api/assessments/{id}/results [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	v, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req service.ResultSubmission
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	result, err := c.Service.Record(ctx.Request.Context(), v, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// @Summary 评估提交列表
// @Description 学生只能看到自己的提交
// @Tags 评估
// @Produce json
// @Security BearerAuth
// @Param id path string true "评估ID"
// @Param studentId query string false "学生ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=model.PageResult[model.AssessmentResult]}
// @Router /api/assessments/{id}/results [get]
func (c *AssessmentController) ListResults(ctx *gin.Context) {
	v, ok := requireUser(ctx)
	if !ok {
		return
	}
	p, ok := bindPagination(ctx)
	if !ok {
		return
	}

	page, err := c.Service.ListResults(ctx.Request.Context(), v, ctx.Param("id"), ctx.Query("studentId"), p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// @Summary 获取评估提交
// @Tags 评估
// @Produce json
// @Security BearerAuth
// @Param id path string true "提交ID"
// @Success 200 {object} util.Response{data=model.AssessmentResult}
// @Router /api/results/{id} [get]
func (c *AssessmentController) GetResult(ctx *gin.Context) {
	v, ok := requireUser(ctx)
	if !ok {
		return
	}

	r, err := c.Service.GetResult(ctx.Request.Context(), v, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, r)
}

// @Summary 批改评估提交
// @Description 重新计算得分率和是否通过，并同步学生进度
// @Tags 评估
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "提交ID"
// @Param body body service.GradeInput true "批改内容"
// @Success 200 {object} util.Response{data=model.AssessmentResult}
// @Router /api/results/{id}/grade [put]
func (c *AssessmentController) Grade(ctx *gin.Context) {
	var req service.GradeInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	r, err := c.Service.Grade(ctx.Request.Context(), viewer(ctx), ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, r)
}
