package controller

import (
	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/service"
	"edu_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningPathController struct {
	Service *service.LearningPathService
}

func NewLearningPathController(svc *service.LearningPathService) *LearningPathController {
	return &LearningPathController{Service: svc}
}

type statusRequest struct {
	Status model.ContentStatus `json:"status" binding:"required,enum"`
}

// @Summary 创建学习路径
// @Description 可以同时提交模块及其课程、实验、评估；缺省字段按默认值填充
// @Tags 学习路径
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.LearningPath true "学习路径"
// @Success 201 {object} util.Response{data=model.LearningPath}
// @Failure 400 {object} util.Response
// @Router /api/paths [post]
func (c *LearningPathController) Create(ctx *gin.Context) {
	var p model.LearningPath
	if !decodeBody(ctx, &p) {
		return
	}

	created, err := c.Service.Create(ctx.Request.Context(), viewer(ctx), &p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, created)
}

// @Summary 检索学习路径
// @Tags 学习路径
// @Produce json
// @Param q query string false "关键字"
// @Param difficulty query []string false "难度" collectionFormat(multi)
// @Param category query string false "分类"
// @Param tags query []string false "标签" collectionFormat(multi)
// @Param instructorId query string false "讲师ID"
// @Param minDuration query number false "最短时长（小时）"
// @Param maxDuration query number false "最长时长（小时）"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Param sortBy query string false "排序字段" default(createdAt)
// @Param sortOrder query string false "排序方向" Enums(asc, desc)
// @Success 200 {object} util.Response{data=model.PageResult[model.LearningPath]}
// @Router /api/paths [get]
func (c *LearningPathController) List(ctx *gin.Context) {
	var f model.SearchFilters
	if err := ctx.ShouldBindQuery(&f); err != nil {
		util.BindError(ctx, err)
		return
	}
	p, ok := bindPagination(ctx)
	if !ok {
		return
	}

	page, err := c.Service.List(ctx.Request.Context(), viewer(ctx), f, p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// @Summary 获取学习路径详情
// @Tags 学习路径
// @Produce json
// @Param id path string true "路径ID"
// @Success 200 {object} util.Response{data=model.LearningPath}
// @Failure 404 {object} util.Response
// @Router /api/paths/{id} [get]
func (c *LearningPathController) Get(ctx *gin.Context) {
	p, err := c.Service.Get(ctx.Request.Context(), viewer(ctx), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// @Summary 更新学习路径
// @Tags 学习路径
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "路径ID"
// @Param body body model.LearningPath true "学习路径"
// @Success 200 {object} util.Response{data=model.LearningPath}
// @Router /api/paths/{id} [put]
func (c *LearningPathController) Update(ctx *gin.Context) {
	var p model.LearningPath
	if !decodeBody(ctx, &p) {
		return
	}

	updated, err := c.Service.Update(ctx.Request.Context(), ctx.Param("id"), &p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, updated)
}

// @Summary 修改学习路径状态
// @Tags 学习路径
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "路径ID"
// @Param body body statusRequest true "draft / published / archived"
// @Success 200 {object} util.Response{data=model.LearningPath}
// @Failure 409 {object} util.Response
// @Router /api/paths/{id}/status [put]
func (c *LearningPathController) SetStatus(ctx *gin.Context) {
	var req statusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	p, err := c.Service.SetStatus(ctx.Request.Context(), ctx.Param("id"), req.Status)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// @Summary 删除学习路径
// @Tags 学习路径
// @Produce json
// @Security BearerAuth
// @Param id path string true "路径ID"
// @Success 200 {object} util.Response
// @Router /api/paths/{id} [delete]
func (c *LearningPathController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.Service.Delete(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary 学习路径完成情况
// @Description 学生查看自己的进度；讲师可以通过 studentId 查看任意学生
// @Tags 学习路径
// @Produce json
// @Security BearerAuth
// @Param id path string true "路径ID"
// @Param studentId query string false "学生ID"
// @Success 200 {object} util.Response{data=service.PathCompletion}
// @Router /api/paths/{id}/completion [get]
func (c *LearningPathController) Completion(ctx *gin.Context) {
	v, ok := requireUser(ctx)
	if !ok {
		return
	}

	pc, err := c.Service.Completion(ctx.Request.Context(), studentScope(ctx, v), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, pc)
}

// @Summary 设置学习路径认证
// @Description 每条路径最多一个认证，重复设置会覆盖
// @Tags 学习路径
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "路径ID"
// @Param body body model.Certification true "认证"
// @Success 200 {object} util.Response{data=model.Certification}
// @Router /api/paths/{id}/certification [put]
func (c *LearningPathController) SetCertification(ctx *gin.Context) {
	var cert model.Certification
	if !decodeBody(ctx, &cert) {
		return
	}

	saved, err := c.Service.SetCertification(ctx.Request.Context(), ctx.Param("id"), &cert)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, saved)
}

// @Summary 删除学习路径认证
// @Tags 学习路径
// @Produce json
// @Security BearerAuth
// @Param id path string true "路径ID"
// @Success 200 {object} util.Response
// @Router /api/paths/{id}/certification [delete]
func (c *LearningPathController) DeleteCertification(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.Service.DeleteCertification(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary 添加模块
// @Tags 模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "路径ID"
// @Param body body model.LearningModule true "模块"
// @Success 201 {object} util.Response{data=model.LearningModule}
// @Router /api/paths/{id}/modules [post]
func (c *LearningPathController) AddModule(ctx *gin.Context) {
	var m model.LearningModule
	if !decodeBody(ctx, &m) {
		return
	}

	created, err := c.Service.AddModule(ctx.Request.Context(), ctx.Param("id"), &m)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, created)
}

// @Summary 获取模块详情
// @Tags 模块
// @Produce json
// @Param id path string true "模块ID"
// @Success 200 {object} util.Response{data=model.LearningModule}
// @Router /api/modules/{id} [get]
func (c *LearningPathController) GetModule(ctx *gin.Context) {
	m, err := c.Service.GetModule(ctx.Request.Context(), viewer(ctx), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, m)
}

// @Summary 更新模块
// @Tags 模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "模块ID"
// @Param body body model.LearningModule true "模块"
// @Success 200 {object} util.Response{data=model.LearningModule}
// @Router /api/modules/{id} [put]
func (c *LearningPathController) UpdateModule(ctx *gin.Context) {
	var m model.LearningModule
	if !decodeBody(ctx, &m) {
		return
	}

	updated, err := c.Service.UpdateModule(ctx.Request.Context(), ctx.Param("id"), &m)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, updated)
}

// @Summary 删除模块
// @Tags 模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "模块ID"
// @Success 200 {object} util.Response
// @Router /api/modules/{id} [delete]
func (c *LearningPathController) DeleteModule(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.Service.DeleteModule(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary 模块完成情况
// @Tags 模块
// @Produce json
// @Security BearerAuth
// @Param id path string true "模块ID"
// @Param studentId query string false "学生ID"
// @Success 200 {object} util.Response{data=service.ModuleCompletion}
// @Router /api/modules/{id}/completion [get]
func (c *LearningPathController) ModuleCompletion(ctx *gin.Context) {
	v, ok := requireUser(ctx)
	if !ok {
		return
	}

	mc, err := c.Service.ModuleCompletion(ctx.Request.Context(), studentScope(ctx, v), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, mc)
}
