package controller

import (
	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/repository"
	"edu_platform_backend/internal/service"
	"edu_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ScenarioController struct {
	Service *service.ScenarioService
}

func NewScenarioController(svc *service.ScenarioService) *ScenarioController {
	return &ScenarioController{Service: svc}
}

// @Summary 创建演练场景
// @Tags 演练场景
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.TrainingScenario true "场景"
// @Success 201 {object} util.Response{data=model.TrainingScenario}
// @Router /api/scenarios [post]
func (c *ScenarioController) Create(ctx *gin.Context) {
	var sc model.TrainingScenario
	if !decodeBody(ctx, &sc) {
		return
	}

	created, err := c.Service.Create(ctx.Request.Context(), &sc)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, created)
}

// @Summary 演练场景列表
// @Tags 演练场景
// @Produce json
// @Param type query string false "场景类型"
// @Param difficulty query string false "难度"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=model.PageResult[model.TrainingScenario]}
// @Router /api/scenarios [get]
func (c *ScenarioController) List(ctx *gin.Context) {
	p, ok := bindPagination(ctx)
	if !ok {
		return
	}
	q := repository.ScenarioQuery{
		Type:       model.ScenarioType(ctx.Query("type")),
		Difficulty: model.Difficulty(ctx.Query("difficulty")),
		Status:     model.ContentStatus(ctx.Query("status")),
	}

	page, err := c.Service.List(ctx.Request.Context(), viewer(ctx), q, p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// @Summary 获取演练场景
// @Description 学生只能看到已揭示的时间线事件
// @Tags 演练场景
// @Produce json
// @Param id path string true "场景ID"
// @Success 200 {object} util.Response{data=model.TrainingScenario}
// @Router /api/scenarios/{id} [get]
func (c *ScenarioController) Get(ctx *gin.Context) {
	sc, err := c.Service.Get(ctx.Request.Context(), viewer(ctx), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sc)
}

// @Summary 更新演练场景
// @Tags 演练场景
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "场景ID"
// @Param body body model.TrainingScenario true "场景"
// @Success 200 {object} util.Response{data=model.TrainingScenario}
// @Router /api/scenarios/{id} [put]
func (c *ScenarioController) Update(ctx *gin.Context) {
	var sc model.TrainingScenario
	if !decodeBody(ctx, &sc) {
		return
	}

	updated, err := c.Service.Update(ctx.Request.Context(), ctx.Param("id"), &sc)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, updated)
}

// @Summary 揭示时间线事件
// @Tags 演练场景
// @Produce json
// @Security BearerAuth
// @Param id path string true "场景ID"
// @Param eventId path string true "事件ID"
// @Success 200 {object} util.Response{data=model.TrainingScenario}
// @Router /api/scenarios/{id}/events/{eventId}/reveal [post]
func (c *ScenarioController) RevealEvent(ctx *gin.Context) {
	sc, err := c.Service.RevealEvent(ctx.Request.Context(), ctx.Param("id"), ctx.Param("eventId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sc)
}

// @Summary 订阅场景事件
// @Description WebSocket，讲师揭示事件时推送
// @Tags 演练场景
// @Security BearerAuth
// @Param id path string true "场景ID"
// @Router /api/scenarios/{id}/live [get]
func (c *ScenarioController) Live(ctx *gin.Context) {
	topic, err := c.Service.LiveTopic(ctx.Request.Context(), viewer(ctx), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	serveLive(ctx, c.Service.Live, topic)
}

// @Summary 删除演练场景
// @Tags 演练场景
// @Produce json
// @Security BearerAuth
// @Param id path string true "场景ID"
// @Success 200 {object} util.Response
// @Router /api/scenarios/{id} [delete]
func (c *ScenarioController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.Service.Delete(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}
