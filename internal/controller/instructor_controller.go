package controller

import (
	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/service"
	"edu_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type InstructorController struct {
	Service *service.InstructorService
}

func NewInstructorController(svc *service.InstructorService) *InstructorController {
	return &InstructorController{Service: svc}
}

// @Summary 创建讲师
// @Tags 讲师
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.Instructor true "讲师"
// @Success 201 {object} util.Response{data=model.Instructor}
// @Failure 409 {object} util.Response "邮箱已存在"
// @Router /api/instructors [post]
func (c *InstructorController) Create(ctx *gin.Context) {
	var in model.Instructor
	if !decodeBody(ctx, &in) {
		return
	}

	created, err := c.Service.Create(ctx.Request.Context(), &in)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, created)
}

// @Summary 讲师列表
// @Tags 讲师
// @Produce json
// @Param status query string false "状态"
// @Param expertise query string false "专长"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=model.PageResult[model.Instructor]}
// @Router /api/instructors [get]
func (c *InstructorController) List(ctx *gin.Context) {
	p, ok := bindPagination(ctx)
	if !ok {
		return
	}

	page, err := c.Service.List(ctx.Request.Context(), model.InstructorStatus(ctx.Query("status")), ctx.Query("expertise"), p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// @Summary 获取讲师
// @Tags 讲师
// @Produce json
// @Param id path string true "讲师ID"
// @Success 200 {object} util.Response{data=model.Instructor}
// @Router /api/instructors/{id} [get]
func (c *InstructorController) Get(ctx *gin.Context) {
	in, err := c.Service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, in)
}

// @Summary 更新讲师
// @Tags 讲师
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "讲师ID"
// @Param body body model.Instructor true "讲师"
// @Success 200 {object} util.Response{data=model.Instructor}
// @Router /api/instructors/{id} [put]
func (c *InstructorController) Update(ctx *gin.Context) {
	var in model.Instructor
	if !decodeBody(ctx, &in) {
		return
	}

	updated, err := c.Service.Update(ctx.Request.Context(), ctx.Param("id"), &in)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, updated)
}

// @Summary 删除讲师
// @Tags 讲师
// @Produce json
// @Security BearerAuth
// @Param id path string true "讲师ID"
// @Success 200 {object} util.Response
// @Router /api/instructors/{id} [delete]
func (c *InstructorController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.Service.Delete(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}
