package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"backend/customerrors"
	"backend/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultCountry = "IN"
	defaultCodes   = "NY.GDP.MKTP.CD,SP.POP.TOTL"
	defaultStart   = "2000"
	defaultEnd     = "2023"
)

type IndicatorController struct {
	indicatorSvc service.IndicatorService
}

func NewIndicatorController(indicatorSvc service.IndicatorService) *IndicatorController {
	return &IndicatorController{indicatorSvc: indicatorSvc}
}

func (ctrl *IndicatorController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/indicators/", ctrl.GetIndicators)
}

// GetIndicators godoc
// @Summary      Get Indicator Series
// @Description  Fetches World Bank series for the requested codes and reshapes them for charting
// @Tags         Indicators
// @Produce      json
// @Param        country  query     string  false  "ISO country code"           default(IN)
// @Param        codes    query     string  false  "Comma-joined indicator codes" default(NY.GDP.MKTP.CD,SP.POP.TOTL)
// @Param        start    query     string  false  "Start year"                 default(2000)
// @Param        end      query     string  false  "End year"                   default(2023)
// @Success      200      {object}  model.IndicatorResponse
// @Failure      400      {object}  map[string]string
// @Failure      502      {object}  map[string]string
// @Router       /indicators/ [get]
func (ctrl *IndicatorController) GetIndicators(c *gin.Context) {
	country := c.DefaultQuery("country", defaultCountry)
	codesParam := c.DefaultQuery("codes", defaultCodes)

	start, err := strconv.Atoi(strings.TrimSpace(c.DefaultQuery("start", defaultStart)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "start and end must be years"})
		return
	}
	end, err := strconv.Atoi(strings.TrimSpace(c.DefaultQuery("end", defaultEnd)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "start and end must be years"})
		return
	}

	codes := strings.Split(codesParam, ",")

	resp, err := ctrl.indicatorSvc.GetIndicators(c.Request.Context(), country, codes, start, end)
	if err != nil {
		ctrl.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// handleError maps the failure taxonomy to HTTP statuses: upstream status
// and transport failures are 502, everything else is a processing error.
func (ctrl *IndicatorController) handleError(c *gin.Context, err error) {
	var upstream *customerrors.UpstreamError
	if errors.As(err, &upstream) {
		if upstream.Err != nil {
			c.JSON(http.StatusBadGateway, gin.H{
				"detail": "Failed to fetch data from World Bank",
				"error":  upstream.Err.Error(),
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"detail": "world bank error",
			"code":   upstream.Code,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
}
