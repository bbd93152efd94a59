package controller

import (
	"edu_platform_backend/internal/service"
	"edu_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatisticsController struct {
	Service *service.StatisticsService
}

func NewStatisticsController(svc *service.StatisticsService) *StatisticsController {
	return &StatisticsController{Service: svc}
}

// @Summary 学习统计
// @Description 不传 pathId 时统计全平台
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param pathId query string false "路径ID"
// @Success 200 {object} util.Response{data=model.LearningStatistics}
// @Router /api/statistics [get]
func (c *StatisticsController) Get(ctx *gin.Context) {
	stats, err := c.Service.Compute(ctx.Request.Context(), ctx.Query("pathId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
