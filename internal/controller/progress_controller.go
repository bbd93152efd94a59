package controller

import (
	"strconv"

	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/service"
	"edu_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Service *service.ProgressService
}

func NewProgressController(svc *service.ProgressService) *ProgressController {
	return &ProgressController{Service: svc}
}

// @Summary 上报学习进度
// @Description 记录课程、实验、评估或演练的进度；模块和路径进度自动汇总
// @Tags 学习进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ProgressUpdate true "进度"
// @Success 200 {object} util.Response{data=model.StudentProgress}
// @Failure 422 {object} util.Response
// @Router /api/progress [post]
func (c *ProgressController) Record(ctx *gin.Context) {
	v, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req service.ProgressUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	p, err := c.Service.Record(ctx.Request.Context(), v.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// @Summary 学习进度列表
// @Tags 学习进度
// @Produce json
// @Security BearerAuth
// @Param pathId query string false "路径ID"
// @Param moduleId query string false "模块ID"
// @Param studentId query string false "学生ID（讲师）"
// @Success 200 {object} util.Response{data=[]model.StudentProgress}
// @Router /api/progress [get]
func (c *ProgressController) List(ctx *gin.Context) {
	v, ok := requireUser(ctx)
	if !ok {
		return
	}

	list, err := c.Service.List(ctx.Request.Context(), studentScope(ctx, v), ctx.Query("pathId"), ctx.Query("moduleId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// @Summary 获取单项进度
// @Tags 学习进度
// @Produce json
// @Security BearerAuth
// @Param contentId path string true "内容ID"
// @Param studentId query string false "学生ID（讲师）"
// @Success 200 {object} util.Response{data=model.StudentProgress}
// @Router /api/progress/{contentId} [get]
func (c *ProgressController) Get(ctx *gin.Context) {
	v, ok := requireUser(ctx)
	if !ok {
		return
	}

	p, err := c.Service.Get(ctx.Request.Context(), studentScope(ctx, v), ctx.Param("contentId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// @Summary 添加书签
// @Tags 学习进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param contentId path string true "内容ID"
// @Param body body model.Bookmark true "书签"
// @Success 200 {object} util.Response{data=model.StudentProgress}
// @Router /api/progress/{contentId}/bookmarks [post]
func (c *ProgressController) AddBookmark(ctx *gin.Context) {
	v, ok := requireUser(ctx)
	if !ok {
		return
	}
	var b model.Bookmark
	if err := ctx.ShouldBindJSON(&b); err != nil {
		util.BindError(ctx, err)
		return
	}

	p, err := c.Service.AddBookmark(ctx.Request.Context(), v.UserID, ctx.Param("contentId"), b)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// @Summary 删除书签
// @Tags 学习进度
// @Produce json
// @Security BearerAuth
// @Param contentId path string true "内容ID"
// @Param index path int true "书签序号，从 0 开始"
// @Success 200 {object} util.Response{data=model.StudentProgress}
// @Router /api/progress/{contentId}/bookmarks/{index} [delete]
func (c *ProgressController) RemoveBookmark(ctx *gin.Context) {
	v, ok := requireUser(ctx)
	if !ok {
		return
	}
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		util.BadRequest(ctx, "index must be an integer")
		return
	}

	p, err := c.Service.RemoveBookmark(ctx.Request.Context(), v.UserID, ctx.Param("contentId"), index)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, p)
}
