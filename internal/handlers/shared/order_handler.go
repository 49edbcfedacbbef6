package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cybertrax/internal/models"
	"cybertrax/internal/services"
	"cybertrax/internal/utils"
	"cybertrax/internal/validators"
	"cybertrax/pkg/logger"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type OrderHandler struct {
	orderService   services.OrderService
	pricingService services.PricingService
	exportService  services.ExportService
	logger         *logger.Logger
}

func NewOrderHandler(
	orderService services.OrderService,
	pricingService services.PricingService,
	exportService services.ExportService,
	log *logger.Logger,
) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		pricingService: pricingService,
		exportService:  exportService,
		logger:         log,
	}
}

// PreviewOrder prices a route without creating an order
func (h *OrderHandler) PreviewOrder(c *gin.Context) {
	var request models.PreviewRequest
	if !bindJSON(c, &request) {
		return
	}
	if validationFailed(c, validators.ValidatePreview(&request)) {
		return
	}

	quote, err := h.pricingService.Preview(c.Request.Context(), &request)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, quote)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var request models.CreateOrderRequest
	if !bindJSON(c, &request) {
		return
	}
	if validationFailed(c, validators.ValidateCreateOrder(&request)) {
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &request)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, order)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	filter, err := parseOrderFilter(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	params, err := utils.GetPaginationParams(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	filter.Page = params.Page
	filter.Limit = params.Limit

	page, err := h.orderService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, page)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// PayOrder is the client-side payment confirmation.
func (h *OrderHandler) PayOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.PayOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, order)
}

// UpdatePaymentStatus takes the status from ?new_status= or from a JSON body
// {"payment_status": "..."}.
func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var request models.UpdatePaymentStatusRequest
	if status := c.Query("new_status"); status != "" {
		request.PaymentStatus = models.PaymentStatus(status)
	} else if !bindJSON(c, &request) {
		return
	}
	if validationFailed(c, validators.ValidatePaymentStatus(&request)) {
		return
	}

	order, err := h.orderService.UpdatePaymentStatus(c.Request.Context(), id, request.PaymentStatus)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, order)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.NoContentResponse(c)
}

// ExportOrders streams the filtered orders as an XLSX workbook.
func (h *OrderHandler) ExportOrders(c *gin.Context) {
	filter, err := parseOrderFilter(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	var buf bytes.Buffer
	if _, err := h.exportService.ExportOrders(c.Request.Context(), filter, &buf); err != nil {
		respondError(c, h.logger, err)
		return
	}

	filename := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func parseOrderFilter(c *gin.Context) (*models.OrderFilter, error) {
	filter := &models.OrderFilter{}

	var err error
	if filter.UserID, err = queryInt64(c, "user_id"); err != nil {
		return nil, err
	}
	if filter.FromCityID, err = queryInt64(c, "from_city_id"); err != nil {
		return nil, err
	}
	if filter.ToCityID, err = queryInt64(c, "to_city_id"); err != nil {
		return nil, err
	}
	if filter.StartFrom, err = queryDate(c, "start_from"); err != nil {
		return nil, err
	}
	if filter.StartTo, err = queryDate(c, "start_to"); err != nil {
		return nil, err
	}

	if raw := c.Query("payment_status"); raw != "" {
		status := models.PaymentStatus(strings.ToUpper(raw))
		if !status.IsValid() {
			return nil, services.ErrInvalidPaymentStatus
		}
		filter.PaymentStatus = &status
	}

	if raw := c.Query("order_by"); raw != "" {
		switch sort := models.OrderSort(strings.ToLower(raw)); sort {
		case models.OrderSortCreated, models.OrderSortStart, models.OrderSortEta, models.OrderSortCost:
			filter.OrderBy = sort
		default:
			return nil, fmt.Errorf("order_by must be one of created, start, eta, cost")
		}
	}

	if raw := c.Query("order_by_cost"); raw != "" {
		byCost, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("order_by_cost must be a boolean")
		}
		if byCost {
			filter.OrderBy = models.OrderSortCost
		}
	}

	return filter, nil
}

func queryInt64(c *gin.Context, key string) (*int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	return &value, nil
}

func queryDate(c *gin.Context, key string) (*models.Date, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	value, err := models.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &value, nil
}
