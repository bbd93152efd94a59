package controller

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"edu_platform_backend/internal/config"
	"edu_platform_backend/internal/schema"
	"edu_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const maxDocumentSize = 4 << 20

// SchemaController 记录校验和平台配置
type SchemaController struct {
	Edu *config.EducationStore
}

func NewSchemaController(edu *config.EducationStore) *SchemaController {
	return &SchemaController{Edu: edu}
}

// @Summary 可校验的记录类型
// @Tags 校验
// @Produce json
// @Success 200 {object} util.Response{data=[]string}
// @Router /api/schemas [get]
func (c *SchemaController) Kinds(ctx *gin.Context) {
	util.Success(ctx, schema.Kinds())
}

// @Summary 校验记录
// @Description 解析 JSON 或 YAML 文档，填充缺省值后校验；Content-Type 含 yaml 或 format=yaml 时按 YAML 解析
// @Tags 校验
// @Accept json
// @Accept application/x-yaml
// @Produce json
// @Param kind path string true "记录类型"
// @Param format query string false "json / yaml"
// @Success 200 {object} util.Response "校验通过，data.record 为填充缺省值后的记录"
// @Failure 400 {object} util.Response "data.errors 为逐字段错误"
// @Failure 404 {object} util.Response "未知类型"
// @Router /api/schemas/{kind}/validate [post]
func (c *SchemaController) Validate(ctx *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxDocumentSize))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	format := schema.Format(ctx.Query("format"))
	if format == "" {
		format = schema.FormatJSON
		if strings.Contains(ctx.ContentType(), "yaml") {
			format = schema.FormatYAML
		}
	}

	record, err := schema.Decode(ctx.Param("kind"), data, format)
	if err != nil {
		if errors.Is(err, schema.ErrUnknownKind) {
			util.Error(ctx, http.StatusNotFound, err.Error())
			return
		}
		if ve, ok := schema.AsValidationErrors(err); ok {
			util.ValidationFailed(ctx, ve)
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"valid": true, "record": record})
}

// @Summary 平台教学配置
// @Description 当前生效的评分、实验、报名、认证和功能开关配置
// @Tags 配置
// @Produce json
// @Success 200 {object} util.Response{data=config.EducationalConfig}
// @Router /api/config/educational [get]
func (c *SchemaController) EducationalConfig(ctx *gin.Context) {
	util.Success(ctx, c.Edu.Load())
}
