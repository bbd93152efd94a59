package controller

import (
	"encoding/json"
	"errors"
	"io"

	"edu_platform_backend/internal/model"
	"edu_platform_backend/internal/service"
	"edu_platform_backend/internal/util"
	"edu_platform_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// viewer 当前请求的用户，未登录时为匿名
func viewer(ctx *gin.Context) service.Viewer {
	return service.ViewerFrom(util.GetUserFromContext(ctx))
}

// requireUser 需要登录的接口，未登录时已写出 401
func requireUser(ctx *gin.Context) (service.Viewer, bool) {
	v := viewer(ctx)
	if v.IsAnonymous() {
		util.Unauthorized(ctx)
		return v, false
	}
	return v, true
}

// bindPagination 读取 page、limit、sortBy、sortOrder，缺省值来自 form 标签
func bindPagination(ctx *gin.Context) (model.Pagination, bool) {
	var p model.Pagination
	if err := ctx.ShouldBindQuery(&p); err != nil {
		util.BindError(ctx, err)
		return p, false
	}
	return p, true
}

// decodeBody 只解析 JSON，不做规则校验。
// 服务端补齐的字段（作者、学生 ID 等）在服务层赋值后再统一校验。
func decodeBody(ctx *gin.Context, v any) bool {
	if err := json.NewDecoder(ctx.Request.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			util.BadRequest(ctx, "request body is empty")
			return false
		}
		util.BadRequest(ctx, err.Error())
		return false
	}
	return true
}

// studentScope 学生只能查看自己的数据；讲师和管理员可以通过 studentId 参数查看任意学生
func studentScope(ctx *gin.Context, v service.Viewer) string {
	if v.CanAuthor() {
		if id := ctx.Query("studentId"); id != "" {
			return id
		}
	}
	return v.UserID
}

// serveLive 升级为 WebSocket 并订阅 topic；未启用推送时按功能关闭处理
func serveLive(ctx *gin.Context, hub *service.LiveHub, topic string) {
	if hub == nil {
		util.HandleError(ctx, util.ErrFeatureDisabled)
		return
	}
	if err := hub.ServeWs(ctx.Writer, ctx.Request, topic, viewer(ctx).UserID); err != nil {
		logger.Log.Warn("WebSocket upgrade failed", zap.String("topic", topic), zap.Error(err))
	}
}
