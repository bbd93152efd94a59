package controller

import (
	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/service"
	"edu_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type KnowledgeBaseController struct {
	Service *service.KnowledgeBaseService
}

func NewKnowledgeBaseController(svc *service.KnowledgeBaseService) *KnowledgeBaseController {
	return &KnowledgeBaseController{Service: svc}
}

type feedbackRequest struct {
	Helpful *bool `json:"helpful" binding:"required"`
}

// @Summary 创建知识库文章
// @Description 未指定 slug 时由标题生成，重复时追加序号
// @Tags 知识库
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.KnowledgeBaseArticle true "文章"
// @Success 201 {object} util.Response{data=model.KnowledgeBaseArticle}
// @Router /api/kb [post]
func (c *KnowledgeBaseController) Create(ctx *gin.Context) {
	var a model.KnowledgeBaseArticle
	if !decodeBody(ctx, &a) {
		return
	}

	created, err := c.Service.Create(ctx.Request.Context(), viewer(ctx), &a)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, created)
}

// @Summary 检索知识库
// @Tags 知识库
// @Produce json
// @Param q query string false "关键字"
// @Param category query string false "分类"
// @Param tags query []string false "标签" collectionFormat(multi)
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=model.PageResult[model.KnowledgeBaseArticle]}
// @Router /api/kb [get]
func (c *KnowledgeBaseController) Search(ctx *gin.Context) {
	var f model.SearchFilters
	if err := ctx.ShouldBindQuery(&f); err != nil {
		util.BindError(ctx, err)
		return
	}
	p, ok := bindPagination(ctx)
	if !ok {
		return
	}

	page, err := c.Service.Search(ctx.Request.Context(), viewer(ctx), f, p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// @Summary 获取知识库文章
// @Description 支持 ID 或 slug；同一访客半小时内只计一次浏览
// @Tags 知识库
// @Produce json
// @Param id path string true "文章ID或slug"
// @Success 200 {object} util.Response{data=model.KnowledgeBaseArticle}
// @Router /api/kb/{id} [get]
func (c *KnowledgeBaseController) Get(ctx *gin.Context) {
	v := viewer(ctx)
	viewerKey := v.UserID
	if viewerKey == "" {
		viewerKey = "ip:" + ctx.ClientIP()
	}

	a, err := c.Service.Get(ctx.Request.Context(), v, ctx.Param("id"), viewerKey)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// @Summary 更新知识库文章
// @Tags 知识库
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "文章ID"
// @Param body body model.KnowledgeBaseArticle true "文章"
// @Success 200 {object} util.Response{data=model.KnowledgeBaseArticle}
// @Router /api/kb/{id} [put]
func (c *KnowledgeBaseController) Update(ctx *gin.Context) {
	var a model.KnowledgeBaseArticle
	if !decodeBody(ctx, &a) {
		return
	}

	updated, err := c.Service.Update(ctx.Request.Context(), ctx.Param("id"), &a)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, updated)
}

// @Summary 修改知识库文章状态
// @Tags 知识库
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "文章ID"
// @Param body body statusRequest true "状态"
// @Success 200 {object} util.Response{data=model.KnowledgeBaseArticle}
// @Router /api/kb/{id}/status [put]
func (c *KnowledgeBaseController) SetStatus(ctx *gin.Context) {
	var req statusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	a, err := c.Service.SetStatus(ctx.Request.Context(), ctx.Param("id"), req.Status)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// @Summary 文章反馈
// @Tags 知识库
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "文章ID"
// @Param body body feedbackRequest true "是否有帮助"
// @Success 200 {object} util.Response{data=model.KnowledgeBaseArticle}
// @Router /api/kb/{id}/feedback [post]
func (c *KnowledgeBaseController) Feedback(ctx *gin.Context) {
	var req feedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	a, err := c.Service.Feedback(ctx.Request.Context(), ctx.Param("id"), *req.Helpful)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// @Summary 上传文章附件
// @Tags 知识库
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "文章ID"
// @Param file formData file true "附件"
// @Success 200 {object} util.Response{data=model.KnowledgeBaseArticle}
// @Router /api/kb/{id}/attachments [post]
func (c *KnowledgeBaseController) AddAttachment(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "File is required")
		return
	}

	a, err := c.Service.AddAttachment(ctx.Request.Context(), ctx.Param("id"), file)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// @Summary 删除知识库文章
// @Tags 知识库
// @Produce json
// @Security BearerAuth
// @Param id path string true "文章ID"
// @Success 200 {object} util.Response
// @Router /api/kb/{id} [delete]
func (c *KnowledgeBaseController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.Service.Delete(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}
