package services

import (
	"context"
	"fmt"
	"io"

	"cybertrax/internal/models"
	"cybertrax/internal/utils"
	"cybertrax/pkg/logger"

	"github.com/xuri/excelize/v2"
)

const (
	ordersSheetName = "Заявки"
	exportBatchSize = 500
)

var orderExportHeaders = []string{
	"ID заявки", "Создана", "Клиент", "Телефон", "Автомобиль",
	"Откуда", "Куда", "Дата отправки", "Дата прибытия", "Расстояние, км",
	"Цена за км", "Фиксированный маршрут", "Перевозка, ₽", "Страховка, ₽",
	"В пути, ч", "Статус оплаты",
}

var paymentStatusDisplay = map[models.PaymentStatus]string{
	models.PaymentStatusPending: "Ожидает оплаты",
	models.PaymentStatusPaid:    "Оплачено",
	models.PaymentStatusManual:  "Оплачено вручную",
}

type ExportService interface {
	// ExportOrders writes every order matching filter as an XLSX workbook.
	// Paging fields of the filter are ignored.
	ExportOrders(ctx context.Context, filter *models.OrderFilter, w io.Writer) (int, error)
}

type exportService struct {
	orders OrderService
	logger *logger.Logger
}

func NewExportService(orders OrderService, log *logger.Logger) ExportService {
	return &exportService{orders: orders, logger: log}
}

func (s *exportService) ExportOrders(ctx context.Context, filter *models.OrderFilter, w io.Writer) (int, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(ordersSheetName)
	if err != nil {
		return 0, fmt.Errorf("failed to create sheet: %w", err)
	}
	_ = f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for i, header := range orderExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(ordersSheetName, cell, header)
	}

	query := models.OrderFilter{}
	if filter != nil {
		query = *filter
	}
	query.Limit = exportBatchSize

	written := 0
	for page := 1; ; page++ {
		query.Page = page
		result, err := s.orders.ListOrders(ctx, &query)
		if err != nil {
			return 0, err
		}

		for _, order := range result.Items {
			if err := writeOrderRow(f, written+2, order); err != nil {
				return 0, err
			}
			written++
		}

		if page >= result.Pages {
			break
		}
	}

	_ = f.SetColWidth(ordersSheetName, "A", "P", 18)

	if err := f.Write(w); err != nil {
		return 0, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.WithField("rows", written).Info("Orders exported")
	return written, nil
}

func writeOrderRow(f *excelize.File, row int, o *models.Order) error {
	var pricePerKm interface{} = ""
	if o.AppliedPricePerKm != nil {
		pricePerKm = *o.AppliedPricePerKm
	}
	fixed := "Нет"
	if o.IsFixedRoute {
		fixed = "Да"
	}
	status, ok := paymentStatusDisplay[o.PaymentStatus]
	if !ok {
		status = string(o.PaymentStatus)
	}

	values := []interface{}{
		o.ID,
		utils.FormatTime(o.CreatedAt, ""),
		o.UserFullName,
		o.UserPhone,
		o.CarBrandModel,
		o.FromCity,
		o.ToCity,
		o.StartDate.Format("02.01.2006"),
		o.EtaDate.Format("02.01.2006"),
		o.DistanceKm,
		pricePerKm,
		fixed,
		o.TransportPrice,
		o.InsurancePrice,
		o.DurationHours,
		status,
	}

	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(ordersSheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write order %d: %w", o.ID, err)
	}
	return nil
}
