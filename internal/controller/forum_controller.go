package controller

import (
	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/repository"
	"edu_platform_backend/internal/service"
	"edu_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ForumController struct {
	Service *service.ForumService
}

func NewForumController(svc *service.ForumService) *ForumController {
	return &ForumController{Service: svc}
}

type editPostRequest struct {
	Content string `json:"content" binding:"required"`
}

type voteRequest struct {
	Value int `json:"value" binding:"min=-1,max=1"`
}

type flagRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type moderateRequest struct {
	Hidden bool `json:"hidden"`
}

type threadStatusRequest struct {
	Status model.ThreadStatus `json:"status" binding:"required,enum"`
}

type pinRequest struct {
	Pinned bool `json:"pinned"`
}

type acceptRequest struct {
	PostID string `json:"postId" binding:"required"`
}

// @Summary 发布主题
// @Tags 论坛
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.NewThread true "主题"
// @Success 201 {object} util.Response{data=model.ForumThread}
// @Router /api/forum/threads [post]
func (c *ForumController) CreateThread(ctx *gin.Context) {
	v, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req service.NewThread
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	t, err := c.Service.CreateThread(ctx.Request.Context(), v, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, t)
}

// @Summary 主题列表
// @Description 置顶主题排在最前
// @Tags 论坛
// @Produce json
// @Param pathId query string false "路径ID"
// @Param moduleId query string false "模块ID"
// @Param category query string false "分类"
// @Param tag query string false "标签"
// @Param status query string false "状态"
// @Param q query string false "标题关键字"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=model.PageResult[model.ForumThread]}
// @Router /api/forum/threads [get]
func (c *ForumController) ListThreads(ctx *gin.Context) {
	p, ok := bindPagination(ctx)
	if !ok {
		return
	}
	q := repository.ThreadQuery{
		PathID:   ctx.Query("pathId"),
		ModuleID: ctx.Query("moduleId"),
		Category: ctx.Query("category"),
		Tag:      ctx.Query("tag"),
		Status:   model.ThreadStatus(ctx.Query("status")),
		Search:   ctx.Query("q"),
	}

	page, err := c.Service.ListThreads(ctx.Request.Context(), q, p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// @Summary 主题详情
// @Description 返回主题和分页的回复，并累计浏览量
// @Tags 论坛
// @Produce json
// @Param id path string true "主题ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=service.ThreadDetail}
// @Router /api/forum/threads/{id} [get]
func (c *ForumController) GetThread(ctx *gin.Context) {
	p, ok := bindPagination(ctx)
	if !ok {
		return
	}

	detail, err := c.Service.GetThread(ctx.Request.Context(), viewer(ctx), ctx.Param("id"), p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary 订阅主题实时回复
// @Description WebSocket；浏览器无法设置请求头时可用 token 查询参数
// @Tags 论坛
// @Security BearerAuth
// @Param id path string true "主题ID"
// @Router /api/forum/threads/{id}/live [get]
func (c *ForumController) Live(ctx *gin.Context) {
	topic, err := c.Service.LiveTopic(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	serveLive(ctx, c.Service.Live, topic)
}

// @Summary 删除主题
// @Tags 论坛
// @Produce json
// @Security BearerAuth
// @Param id path string true "主题ID"
// @Success 200 {object} util.Response
// @Router /api/forum/threads/{id} [delete]
func (c *ForumController) DeleteThread(ctx *gin.Context) {
	v, ok := requireUser(ctx)
	if !ok {
		return
	}
	id := ctx.Param("id")
	if err := c.Service.DeleteThread(ctx.Request.Context(), v, id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary 回复主题
// @Tags 论坛
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "主题ID"
// @Param body body service.NewPost true "回复"
// @Success 201 {object} util.Response{data=model.ForumPost}
// @Failure 422 {object} util.Response
// @Router /api/forum/threads/{id}/posts [post]
func (c *ForumController) Reply(ctx *gin.Context) {
	v, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req service.NewPost
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	post, err := c.Service.Reply(ctx.Request.Context(), v, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, post)
}

// @Summary 采纳答案
// @Description 主题作者或讲师采纳，主题变为已解决
// @Tags 论坛
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "主题ID"
// @Param body body acceptRequest true "回复ID"
// @Success 200 {object} util.Response
// @Router /api/forum/threads/{id}/accept [post]
func (c *ForumController) AcceptAnswer(ctx *gin.Context) {
	v, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req acceptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	if err := c.Service.AcceptAnswer(ctx.Request.Context(), v, ctx.Param("id"), req.PostID); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"threadId": ctx.Param("id"), "acceptedPostId": req.PostID})
}

// @Summary 为主题投票
// @Description value 为 1、-1，0 表示撤销
// @Tags 论坛
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "主题ID"
// @Param body body voteRequest true "投票"
// @Success 200 {object} util.Response{data=service.VoteResult}
// @Router /api/forum/threads/{id}/vote [post]
func (c *ForumController) VoteThread(ctx *gin.Context) {
	c.vote(ctx, model.VoteThread)
}

// @Summary 为回复投票
// @Tags 论坛
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "回复ID"
// @Param body body voteRequest true "投票"
// @Success 200 {object} util.Response{data=service.VoteResult}
// @Router /api/forum/posts/{id}/vote [post]
func (c *ForumController) VotePost(ctx *gin.Context) {
	c.vote(ctx, model.VotePost)
}

func (c *ForumController) vote(ctx *gin.Context, target model.VoteTarget) {
	v, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req voteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	res, err := c.Service.Vote(ctx.Request.Context(), v, target, ctx.Param("id"), req.Value)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// @Summary 编辑回复
// @Tags 论坛
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "回复ID"
// @Param body body editPostRequest true "内容"
// @Success 200 {object} util.Response{data=model.ForumPost}
// @Router /api/forum/posts/{id} [put]
func (c *ForumController) EditPost(ctx *gin.Context) {
	v, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req editPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	post, err := c.Service.EditPost(ctx.Request.Context(), v, ctx.Param("id"), req.Content)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, post)
}

// @Summary 上传回复附件
// @Tags 论坛
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "回复ID"
// @Param file formData file true "附件"
// @Success 200 {object} util.Response{data=model.ForumPost}
// @Router /api/forum/posts/{id}/attachments [post]
func (c *ForumController) AddAttachment(ctx *gin.Context) {
	v, ok := requireUser(ctx)
	if !ok {
		return
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "File is required")
		return
	}

	post, err := c.Service.AddAttachment(ctx.Request.Context(), v, ctx.Param("id"), file)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, post)
}

// @Summary 举报回复
// @Tags 论坛
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "回复ID"
// @Param body body flagRequest true "原因"
// @Success 200 {object} util.Response{data=model.ForumPost}
// @Router /api/forum/posts/{id}/flag [post]
func (c *ForumController) Flag(ctx *gin.Context) {
	var req flagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	post, err := c.Service.Flag(ctx.Request.Context(), ctx.Param("id"), req.Reason)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, post)
}

// @Summary 审核回复
// @Description 隐藏或恢复回复，同时清除举报标记
// @Tags 论坛管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "回复ID"
// @Param body body moderateRequest true "是否隐藏"
// @Success 200 {object} util.Response{data=model.ForumPost}
// @Router /api/forum/posts/{id}/moderate [put]
func (c *ForumController) Moderate(ctx *gin.Context) {
	var req moderateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	post, err := c.Service.Moderate(ctx.Request.Context(), viewer(ctx), ctx.Param("id"), req.Hidden)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, post)
}

// @Summary 修改主题状态
// @Tags 论坛管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "主题ID"
// @Param body body threadStatusRequest true "open / resolved / closed / locked"
// @Success 200 {object} util.Response{data=model.ForumThread}
// @Router /api/forum/threads/{id}/status [put]
func (c *ForumController) SetThreadStatus(ctx *gin.Context) {
	var req threadStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	t, err := c.Service.SetThreadStatus(ctx.Request.Context(), ctx.Param("id"), req.Status)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, t)
}

// @Summary 置顶主题
// @Tags 论坛管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "主题ID"
// @Param body body pinRequest true "是否置顶"
// @Success 200 {object} util.Response{data=model.ForumThread}
// @Router /api/forum/threads/{id}/pin [put]
func (c *ForumController) SetPinned(ctx *gin.Context) {
	var req pinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindError(ctx, err)
		return
	}

	t, err := c.Service.SetPinned(ctx.Request.Context(), ctx.Param("id"), req.Pinned)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, t)
}
