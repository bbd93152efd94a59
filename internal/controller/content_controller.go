package controller

import (
	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/service"
	"edu_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ContentController 模块下的课程、实验和评估
type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// @Summary 创建课程
// @Tags 课程
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "模块ID"
// @Param body body model.Lesson true "课程"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 400 {object} util.Response
// @Router /api/modules/{id}/lessons [post]
func (c *ContentController) CreateLesson(ctx *gin.Context) {
	var l model.Lesson
	if !decodeBody(ctx, &l) {
		return
	}

	created, err := c.ContentService.CreateLesson(ctx.Request.Context(), ctx.Param("id"), &l)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, created)
}

// @Summary 模块下的课程列表
// @Tags 课程
// @Produce json
// @Param id path string true "模块ID"
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Router /api/modules/{id}/lessons [get]
func (c *ContentController) ListLessons(ctx *gin.Context) {
	list, err := c.ContentService.ListLessons(ctx.Request.Context(), viewer(ctx), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// @Summary 获取课程
// @Description 学生看到的测验不包含答案
// @Tags 课程
// @Produce json
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/lessons/{id} [get]
func (c *ContentController) GetLesson(ctx *gin.Context) {
	l, err := c.ContentService.GetLesson(ctx.Request.Context(), viewer(ctx), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, l)
}

// @Summary 更新课程
// @Tags 课程
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "课程ID"
// @Param body body model.Lesson true "课程"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/lessons/{id} [put]
func (c *ContentController) UpdateLesson(ctx *gin.Context) {
	var l model.Lesson
	if !decodeBody(ctx, &l) {
		return
	}

	updated, err := c.ContentService.UpdateLesson(ctx.Request.Context(), ctx.Param("id"), &l)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, updated)
}

// @Summary 删除课程
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id} [delete]
func (c *ContentController) DeleteLesson(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.ContentService.DeleteLesson(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary 设置课程测验
// @Tags 课程
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "课程ID"
// @Param body body model.Quiz true "测验"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/lessons/{id}/quiz [put]
func (c *ContentController) SetQuiz(ctx *gin.Context) {
	var q model.Quiz
	if !decodeBody(ctx, &q) {
		return
	}

	l, err := c.ContentService.SetLessonQuiz(ctx.Request.Context(), ctx.Param("id"), &q)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, l)
}

// @Summary 删除课程测验
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/lessons/{id}/quiz [delete]
func (c *ContentController) RemoveQuiz(ctx *gin.Context) {
	l, err := c.ContentService.SetLessonQuiz(ctx.Request.Context(), ctx.Param("id"), nil)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, l)
}

// @Summary 上传课程视频
// @Description 上传后课程内容替换为视频，时长和缩略图自动生成
// @Tags 课程
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "课程ID"
// @Param file formData file true "视频文件"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 400 {object} util.Response
// @Router /api/lessons/{id}/video [post]
func (c *ContentController) UploadVideo(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "File is required")
		return
	}

	l, err := c.ContentService.UploadLessonVideo(ctx.Request.Context(), ctx.Param("id"), file)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, l)
}

// @Summary 实验模板
// @Description 按平台配置预填环境和资源限制
// @Tags 实验
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.Lab}
// @Router /api/labs/template [get]
func (c *ContentController) LabTemplate(ctx *gin.Context) {
	util.Success(ctx, c.ContentService.LabTemplate())
}

// @Summary 创建实验
// @Tags 实验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "模块ID"
// @Param body body model.Lab true "实验"
// @Success 201 {object} util.Response{data=model.Lab}
// @Router /api/modules/{id}/labs [post]
func (c *ContentController) CreateLab(ctx *gin.Context) {
	var l model.Lab
	if !decodeBody(ctx, &l) {
		return
	}

	created, err := c.ContentService.CreateLab(ctx.Request.Context(), ctx.Param("id"), &l)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, created)
}

// @Summary 模块下的实验列表
// @Tags 实验
// @Produce json
// @Param id path string true "模块ID"
// @Success 200 {object} util.Response{data=[]model.Lab}
// @Router /api/modules/{id}/labs [get]
func (c *ContentController) ListLabs(ctx *gin.Context) {
	list, err := c.ContentService.ListLabs(ctx.Request.Context(), viewer(ctx), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// @Summary 获取实验
// @Description 学生看到的实验不包含参考答案和隐藏提示
// @Tags 实验
// @Produce json
// @Param id path string true "实验ID"
// @Success 200 {object} util.Response{data=model.Lab}
// @Router /api/labs/{id} [get]
func (c *ContentController) GetLab(ctx *gin.Context) {
	l, err := c.ContentService.GetLab(ctx.Request.Context(), viewer(ctx), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, l)
}

// @Summary 更新实验
// @Tags 实验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "实验ID"
// @Param body body model.Lab true "实验"
// @Success 200 {object} util.Response{data=model.Lab}
// @Router /api/labs/{id} [put]
func (c *ContentController) UpdateLab(ctx *gin.Context) {
	var l model.Lab
	if !decodeBody(ctx, &l) {
		return
	}

	updated, err := c.ContentService.UpdateLab(ctx.Request.Context(), ctx.Param("id"), &l)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, updated)
}

// @Summary 删除实验
// @Tags 实验
// @Produce json
// @Security BearerAuth
// @Param id path string true "实验ID"
// @Success 200 {object} util.Response
// @Router /api/labs/{id} [delete]
func (c *ContentController) DeleteLab(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.ContentService.DeleteLab(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary 创建评估
// @Tags 评估
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "模块ID"
// @Param body body model.Assessment true "评估"
// @Success 201 {object} util.Response{data=model.Assessment}
// @Router /api/modules/{id}/assessments [post]
func (c *ContentController) CreateAssessment(ctx *gin.Context) {
	var a model.Assessment
	if !decodeBody(ctx, &a) {
		return
	}

	created, err := c.ContentService.CreateAssessment(ctx.Request.Context(), ctx.Param("id"), &a)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, created)
}

// @Summary 模块下的评估列表
// @Tags 评估
// @Produce json
// @Param id path string true "模块ID"
// @Success 200 {object} util.Response{data=[]model.Assessment}
// @Router /api/modules/{id}/assessments [get]
func (c *ContentController) ListAssessments(ctx *gin.Context) {
	list, err := c.ContentService.ListAssessments(ctx.Request.Context(), viewer(ctx), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// @Summary 获取评估
// @Tags 评估
// @Produce json
// @Param id path string true "评估ID"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Router /api/assessments/{id} [get]
func (c *ContentController) GetAssessment(ctx *gin.Context) {
	a, err := c.ContentService.GetAssessment(ctx.Request.Context(), viewer(ctx), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// @Summary 更新评估
// @Tags 评估
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "评估ID"
// @Param body body model.Assessment true "评估"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Router /api/assessments/{id} [put]
func (c *ContentController) UpdateAssessment(ctx *gin.Context) {
	var a model.Assessment
	if !decodeBody(ctx, &a) {
		return
	}

	updated, err := c.ContentService.UpdateAssessment(ctx.Request.Context(), ctx.Param("id"), &a)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, updated)
}

// @Summary 删除评估
// @Tags 评估
// @Produce json
// @Security BearerAuth
// @Param id path string true "评估ID"
// @Success 200 {object} util.Response
// @Router /api/assessments/{id} [delete]
func (c *ContentController) DeleteAssessment(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.ContentService.DeleteAssessment(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}
